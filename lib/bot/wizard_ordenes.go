package bot

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"obrabot/lib/constants"
	"obrabot/lib/data"
	"obrabot/lib/storage"
	"obrabot/lib/util"
)

// startOrden opens the work order wizard for the técnico.
func (b *Bot) startOrden(chatID int64, sess *Session) {
	sess.State = StateOrdenDesc
	sess.Text = &TextDraft{}
	b.sendKeyboard(chatID, "Describe la orden de trabajo:",
		tgbotapi.NewInlineKeyboardMarkup(cancelRow()))
}

func (b *Bot) ordenDescText(ctx context.Context, chatID int64, sess *Session, text string) {
	if sess.Text == nil {
		return
	}
	sess.Text.First = text
	sess.State = StateOrdenFoto

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭ Sin foto", cbSkipFoto),
		),
		cancelRow(),
	)
	b.sendKeyboard(chatID, "Envía una foto de referencia, o continúa sin ella.", kb)
}

func (b *Bot) ordenPhoto(ctx context.Context, chatID, userID int64, sess *Session, m *tgbotapi.Message) {
	bytes, err := b.downloadPhoto(m)
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to download work order photo")
		b.send(chatID, "No he podido descargar la foto. Envíala de nuevo o continúa sin ella.")
		return
	}
	path, err := b.Photos.Save(storage.PhotoOrden, userID, bytes)
	if err != nil {
		b.send(chatID, "No he podido guardar la foto. Envíala de nuevo o continúa sin ella.")
		return
	}
	b.ordenDone(ctx, chatID, userID, sess, path)
}

func (b *Bot) ordenDone(ctx context.Context, chatID, userID int64, sess *Session, fotoPath string) {
	if sess.Text == nil {
		b.sendMenu(ctx, chatID, userID)
		return
	}
	descripcion := sess.Text.First

	id, err := b.Ordenes.Create(ctx, userID, descripcion, fotoPath)
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Failed to create work order")
		b.send(chatID, "No se ha podido crear la orden. Inténtalo de nuevo.")
		return
	}

	b.Sessions.Reset(userID)
	b.send(chatID, fmt.Sprintf("📌 Orden de trabajo #%d creada.", id))
	b.notifyRole(ctx, constants.RoleEncargado,
		fmt.Sprintf("📌 Nueva orden de trabajo #%d: %s", id, util.Truncate(descripcion, 100)))
	b.sendMenu(ctx, chatID, userID)
}

// listOrdenes shows the open work orders.
func (b *Bot) listOrdenes(ctx context.Context, chatID, userID int64) {
	ordenes, err := b.Ordenes.GetByEstado(ctx, []string{constants.OrdenPendiente})
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to list work orders")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}
	if len(ordenes) == 0 {
		b.sendKeyboard(chatID, "No hay órdenes de trabajo pendientes. 🎉",
			tgbotapi.NewInlineKeyboardMarkup(backToMenuRow()))
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, o := range ordenes {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("#%d · %s (%s)", o.ID, util.Truncate(o.Descripcion, 30), o.FechaCreacion.Format("02/01")),
				fmt.Sprintf("view_orden_%d", o.ID),
			),
		))
	}
	rows = append(rows, backToMenuRow())
	b.sendKeyboard(chatID, "Órdenes de trabajo pendientes:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) viewOrden(ctx context.Context, chatID, userID int64, ordenID int64) {
	orden, err := b.Ordenes.GetByID(ctx, ordenID)
	if errors.Is(err, data.ErrNotFound) {
		b.send(chatID, "Esa orden ya no existe.")
		return
	}
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"orden_id": ordenID,
			"error":    err.Error(),
		}).Error("Failed to load work order")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}

	detalle := fmt.Sprintf("📌 Orden #%d\n\nEstado: %s\nCreada por: %s\nFecha: %s\n\n%s",
		orden.ID, orden.Estado, orden.CreadorName,
		orden.FechaCreacion.Format("02/01/2006"), orden.Descripcion)

	var rows [][]tgbotapi.InlineKeyboardButton
	if orden.FotoPath != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📷 Ver Foto", fmt.Sprintf("ver_foto_orden_%d", orden.ID)),
		))
	}
	if orden.Estado == constants.OrdenPendiente {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Marcar realizada", fmt.Sprintf("resolve_orden_%d", orden.ID)),
		))
	}
	rows = append(rows, backToMenuRow())
	b.sendKeyboard(chatID, detalle, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) resolveOrden(ctx context.Context, chatID, userID int64, ordenID int64) {
	if err := b.Ordenes.Resolve(ctx, ordenID, userID); err != nil {
		b.Logger.WithFields(logrus.Fields{
			"orden_id": ordenID,
			"error":    err.Error(),
		}).Error("Failed to resolve work order")
		b.send(chatID, "No se ha podido cerrar la orden. Inténtalo de nuevo.")
		return
	}

	b.send(chatID, fmt.Sprintf("✅ Orden #%d marcada como realizada.", ordenID))
	if orden, err := b.Ordenes.GetByID(ctx, ordenID); err == nil && orden.CreadorID != userID {
		b.send(orden.CreadorID, fmt.Sprintf("✅ Tu orden de trabajo #%d ha sido realizada.", ordenID))
	}
}

func (b *Bot) sendOrdenFoto(ctx context.Context, chatID int64, ordenID int64) {
	orden, err := b.Ordenes.GetByID(ctx, ordenID)
	if err != nil {
		b.send(chatID, "No se ha encontrado la foto de esa orden.")
		return
	}
	foto, ok := b.Photos.Open(orden.FotoPath)
	if !ok {
		b.send(chatID, "La foto de esa orden ya no está disponible.")
		return
	}
	b.sendPhoto(chatID, fmt.Sprintf("Foto de la orden #%d", ordenID), foto)
}
