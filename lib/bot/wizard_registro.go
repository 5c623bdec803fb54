package bot

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"obrabot/lib/models"
)

// startRegistro opens the daily headcount wizard. Re-running it the same
// day overwrites the previous entry.
func (b *Bot) startRegistro(ctx context.Context, chatID int64, sess *Session) {
	exists, err := b.Registros.ExistsForToday(ctx)
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to check today's headcount")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}

	sess.Registro = &RegistroDraft{}
	sess.State = StateRegistroEnObra

	texto := "¿Cuántas personas hay hoy en obra?"
	if exists {
		texto = "Hoy ya hay un registro; se sobrescribirá.\n\n" + texto
	}
	b.sendKeyboard(chatID, texto, tgbotapi.NewInlineKeyboardMarkup(cancelRow()))
}

func (b *Bot) registroEnObraText(ctx context.Context, chatID int64, sess *Session, text string) {
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		b.send(chatID, "Escribe un número entero, por ejemplo 25.")
		return
	}
	if sess.Registro == nil {
		return
	}
	sess.Registro.EnObra = n
	sess.State = StateRegistroFaltas
	b.send(chatID, "¿Cuántas faltas?")
}

func (b *Bot) registroFaltasText(ctx context.Context, chatID int64, sess *Session, text string) {
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		b.send(chatID, "Escribe un número entero, por ejemplo 2.")
		return
	}
	if sess.Registro == nil {
		return
	}
	sess.Registro.Faltas = n
	sess.State = StateRegistroBajas
	b.send(chatID, "¿Cuántas bajas?")
}

func (b *Bot) registroBajasText(ctx context.Context, chatID, userID int64, sess *Session, text string) {
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		b.send(chatID, "Escribe un número entero, por ejemplo 1.")
		return
	}
	draft := sess.Registro
	if draft == nil {
		return
	}

	now := b.Calendar.Now()
	registro := &models.RegistroPersonal{
		Fecha:           now,
		EnObra:          draft.EnObra,
		Faltas:          draft.Faltas,
		Bajas:           n,
		RegistradoPorID: userID,
	}
	if err := b.Registros.Upsert(ctx, registro); err != nil {
		b.Logger.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Failed to upsert daily headcount")
		b.send(chatID, "No se ha podido guardar el registro. Inténtalo de nuevo.")
		return
	}

	b.Sessions.Reset(userID)
	b.send(chatID, fmt.Sprintf("🧮 Registro de hoy guardado: %d en obra, %d faltas, %d bajas.",
		draft.EnObra, draft.Faltas, n))
	b.sendMenu(ctx, chatID, userID)
}
