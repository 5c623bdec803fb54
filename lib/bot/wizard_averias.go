package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"obrabot/lib/constants"
	"obrabot/lib/storage"
)

// startAveria opens the machine breakdown wizard.
func (b *Bot) startAveria(chatID int64, sess *Session) {
	sess.State = StateAveriaMaquina
	sess.Text = &TextDraft{}
	b.sendKeyboard(chatID, "¿Qué máquina está averiada?",
		tgbotapi.NewInlineKeyboardMarkup(cancelRow()))
}

func (b *Bot) averiaMaquinaText(ctx context.Context, chatID int64, sess *Session, text string) {
	if sess.Text == nil {
		return
	}
	sess.Text.First = text
	sess.State = StateAveriaDesc
	b.send(chatID, "Describe la avería:")
}

func (b *Bot) averiaDescText(ctx context.Context, chatID int64, sess *Session, text string) {
	if sess.Text == nil {
		return
	}
	sess.Text.Second = text
	sess.State = StateAveriaFoto

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭ Sin foto", cbSkipFoto),
		),
		cancelRow(),
	)
	b.sendKeyboard(chatID, "Envía una foto de la avería, o continúa sin ella.", kb)
}

func (b *Bot) averiaPhoto(ctx context.Context, chatID, userID int64, sess *Session, m *tgbotapi.Message) {
	bytes, err := b.downloadPhoto(m)
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to download avería photo")
		b.send(chatID, "No he podido descargar la foto. Envíala de nuevo o continúa sin ella.")
		return
	}
	path, err := b.Photos.Save(storage.PhotoAveria, userID, bytes)
	if err != nil {
		b.send(chatID, "No he podido guardar la foto. Envíala de nuevo o continúa sin ella.")
		return
	}
	b.averiaDone(ctx, chatID, userID, sess, path)
}

func (b *Bot) averiaDone(ctx context.Context, chatID, userID int64, sess *Session, fotoPath string) {
	if sess.Text == nil {
		b.sendMenu(ctx, chatID, userID)
		return
	}
	maquina, descripcion := sess.Text.First, sess.Text.Second

	id, err := b.Averias.Create(ctx, userID, maquina, descripcion, fotoPath)
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"maquina": maquina,
			"error":   err.Error(),
		}).Error("Failed to create avería")
		b.send(chatID, "No se ha podido registrar la avería. Inténtalo de nuevo.")
		return
	}

	b.Sessions.Reset(userID)
	b.send(chatID, fmt.Sprintf("🔧 Avería #%d registrada.", id))
	b.notifyRole(ctx, constants.RoleTecnico,
		fmt.Sprintf("🔧 Nueva avería #%d en %s: %s", id, maquina, descripcion))
	b.sendMenu(ctx, chatID, userID)
}

// listAverias shows the open breakdowns with a resolve shortcut per row.
func (b *Bot) listAverias(ctx context.Context, chatID int64) {
	averias, err := b.Averias.GetByEstado(ctx, []string{constants.IncidenciaPendiente})
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to list averías")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}
	if len(averias) == 0 {
		b.sendKeyboard(chatID, "No hay averías pendientes. 🎉",
			tgbotapi.NewInlineKeyboardMarkup(backToMenuRow()))
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, a := range averias {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("#%d · %s (%s)", a.ID, a.Maquina, a.FechaReporte.Format("02/01")), cbNoop),
			tgbotapi.NewInlineKeyboardButtonData("✅", fmt.Sprintf("averia_resolve_%d", a.ID)),
		))
	}
	rows = append(rows, backToMenuRow())
	b.sendKeyboard(chatID, "Averías pendientes:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) resolveAveria(ctx context.Context, chatID, userID int64, averiaID int64) {
	if err := b.Averias.Resolve(ctx, averiaID, userID); err != nil {
		b.Logger.WithFields(logrus.Fields{
			"averia_id": averiaID,
			"error":     err.Error(),
		}).Error("Failed to resolve avería")
		b.send(chatID, "No se ha podido resolver la avería. Inténtalo de nuevo.")
		return
	}
	b.send(chatID, fmt.Sprintf("✅ Avería #%d marcada como resuelta.", averiaID))
	b.listAverias(ctx, chatID)
}
