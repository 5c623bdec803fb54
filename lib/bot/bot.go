package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"obrabot/lib/data"
	"obrabot/lib/reports"
	"obrabot/lib/storage"
	"obrabot/lib/ui"
)

// Bot wires the Telegram API to the repositories and renders every screen.
// One instance serves all users; per-user conversation state lives in the
// session store.
type Bot struct {
	API       *tgbotapi.BotAPI
	Logger    *logrus.Logger
	Sessions  *Store
	Calendar  *ui.Calendar
	Photos    *storage.PhotoStore
	Broadcast *reports.Broadcaster

	Users       data.UserRepository
	Ubicaciones data.UbicacionRepository
	Almacen     data.AlmacenRepository
	Avances     data.AvanceRepository
	Incidencias data.IncidenciaRepository
	Prevencion  data.PrevencionRepository
	Pedidos     data.PedidoRepository
	Solicitudes data.SolicitudRepository
	Ordenes     data.OrdenRepository
	Registros   data.RegistroRepository
	Trabajos    data.TrabajoRepository
	Averias     data.AveriaRepository
}

// send delivers a plain text message. Send failures are logged and
// swallowed; a user who blocked the bot must not break the update loop.
func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.API.Send(msg); err != nil {
		b.Logger.WithFields(logrus.Fields{
			"chat_id": chatID,
			"error":   err.Error(),
		}).Error("Failed to send message")
	}
}

// sendKeyboard delivers a message with an inline keyboard.
func (b *Bot) sendKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := b.API.Send(msg); err != nil {
		b.Logger.WithFields(logrus.Fields{
			"chat_id": chatID,
			"error":   err.Error(),
		}).Error("Failed to send keyboard message")
	}
}

// sendPhoto delivers photo bytes with a caption.
func (b *Bot) sendPhoto(chatID int64, caption string, photo []byte) {
	msg := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "foto.jpg", Bytes: photo})
	msg.Caption = caption
	if _, err := b.API.Send(msg); err != nil {
		b.Logger.WithFields(logrus.Fields{
			"chat_id": chatID,
			"error":   err.Error(),
		}).Error("Failed to send photo")
	}
}

// sendDocument delivers an in-memory file, used for report exports.
func (b *Bot) sendDocument(chatID int64, name string, contents []byte) {
	msg := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: contents})
	if _, err := b.API.Send(msg); err != nil {
		b.Logger.WithFields(logrus.Fields{
			"chat_id": chatID,
			"file":    name,
			"error":   err.Error(),
		}).Error("Failed to send document")
	}
}

// sendMenu shows the user their role menu, or the pending-role notice when
// no role has been assigned yet.
func (b *Bot) sendMenu(ctx context.Context, chatID, userID int64) {
	role, err := b.Users.GetRole(ctx, userID)
	if errors.Is(err, data.ErrNotFound) {
		b.send(chatID, "No estás registrado. Usa /start para darte de alta.")
		return
	}
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Failed to look up user role")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}

	kb, ok := RootMenu(role)
	if !ok {
		b.send(chatID, "Tu cuenta está pendiente de activación. Un administrador debe asignarte un rol.")
		return
	}
	b.sendKeyboard(chatID, "¿Qué quieres hacer?", kb)
}

// notifyRole fans a message out to every user holding a role. Delivery
// failures are per-recipient and already logged by send.
func (b *Bot) notifyRole(ctx context.Context, role, text string) {
	users, err := b.Users.GetByRole(ctx, role)
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"role":  role,
			"error": err.Error(),
		}).Error("Failed to list users for notification")
		return
	}
	for _, u := range users {
		b.send(u.ID, text)
	}
}

// downloadPhoto fetches the bytes of the largest size of an incoming photo.
func (b *Bot) downloadPhoto(m *tgbotapi.Message) ([]byte, error) {
	if len(m.Photo) == 0 {
		return nil, fmt.Errorf("message carries no photo")
	}
	largest := m.Photo[len(m.Photo)-1]

	url, err := b.API.GetFileDirectURL(largest.FileID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve photo URL: %w", err)
	}
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("photo download returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
