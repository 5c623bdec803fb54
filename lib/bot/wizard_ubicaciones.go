package bot

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"obrabot/lib/data"
	"obrabot/lib/ui"
)

// showUbicacionTipos lists the hierarchy levels so the técnico picks which
// one to manage. Levels come out in canonical order.
func (b *Bot) showUbicacionTipos(ctx context.Context, chatID int64) {
	tipos, err := b.Ubicaciones.GetDistinctTipos(ctx)
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to load location types")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}
	levels, err := ui.SortLevels(tipos)
	if err != nil {
		levels = []string{"Edificio", "Planta", "Zona", "Trabajo"}
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, tipo := range levels {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(tipo, cbUbiTipoPrefix+tipo),
		))
	}
	rows = append(rows, backToMenuRow())
	b.sendKeyboard(chatID, "¿Qué nivel quieres gestionar?", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// showUbicacionesOfTipo lists the values of one level with rename and
// delete controls per row, plus the add button.
func (b *Bot) showUbicacionesOfTipo(ctx context.Context, chatID int64, sess *Session, tipo string) {
	sess.Filter = tipo

	ubicaciones, err := b.Ubicaciones.GetByTipo(ctx, tipo)
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"tipo":  tipo,
			"error": err.Error(),
		}).Error("Failed to load locations")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, u := range ubicaciones {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(u.Nombre, cbNoop),
			tgbotapi.NewInlineKeyboardButtonData("✏️", fmt.Sprintf("ubicacion_ren_%d", u.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🗑", fmt.Sprintf("ubicacion_del_%d", u.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Añadir", cbUbicacionAdd),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Niveles", cbGestUbicaciones),
	))
	rows = append(rows, backToMenuRow())

	texto := fmt.Sprintf("Ubicaciones de tipo %s:", tipo)
	if len(ubicaciones) == 0 {
		texto = fmt.Sprintf("No hay ubicaciones de tipo %s todavía.", tipo)
	}
	b.sendKeyboard(chatID, texto, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) startUbicacionAdd(chatID int64, sess *Session) {
	if sess.Filter == "" {
		b.send(chatID, "Primero elige el nivel a gestionar.")
		return
	}
	sess.State = StateUbicacionAdd
	b.sendKeyboard(chatID, fmt.Sprintf("Escribe el nombre del nuevo %s:", sess.Filter),
		tgbotapi.NewInlineKeyboardMarkup(cancelRow()))
}

func (b *Bot) ubicacionAddText(ctx context.Context, chatID, userID int64, sess *Session, nombre string) {
	tipo := sess.Filter
	err := b.Ubicaciones.Add(ctx, tipo, nombre)
	if errors.Is(err, data.ErrDuplicate) {
		b.send(chatID, fmt.Sprintf("Ya existe un %s llamado %q. Escribe otro nombre.", tipo, nombre))
		return
	}
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"tipo":  tipo,
			"error": err.Error(),
		}).Error("Failed to add location")
		b.send(chatID, "No se ha podido crear la ubicación. Inténtalo de nuevo.")
		return
	}

	sess.State = StateIdle
	b.send(chatID, fmt.Sprintf("✅ %s %q creado.", tipo, nombre))
	b.showUbicacionesOfTipo(ctx, chatID, sess, tipo)
}

func (b *Bot) startUbicacionRename(chatID int64, sess *Session, id int64) {
	sess.State = StateUbicacionRename
	sess.TargetID = id
	b.sendKeyboard(chatID, "Escribe el nuevo nombre:", tgbotapi.NewInlineKeyboardMarkup(cancelRow()))
}

func (b *Bot) ubicacionRenameText(ctx context.Context, chatID, userID int64, sess *Session, nombre string) {
	err := b.Ubicaciones.Rename(ctx, sess.TargetID, nombre)
	if errors.Is(err, data.ErrDuplicate) {
		b.send(chatID, fmt.Sprintf("Ya existe una ubicación llamada %q en ese nivel. Escribe otro nombre.", nombre))
		return
	}
	if errors.Is(err, data.ErrNotFound) {
		b.send(chatID, "Esa ubicación ya no existe.")
		sess.State = StateIdle
		return
	}
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"ubicacion_id": sess.TargetID,
			"error":        err.Error(),
		}).Error("Failed to rename location")
		b.send(chatID, "No se ha podido renombrar la ubicación. Inténtalo de nuevo.")
		return
	}

	sess.State = StateIdle
	b.send(chatID, fmt.Sprintf("✅ Ubicación renombrada a %q.", nombre))
	if sess.Filter != "" {
		b.showUbicacionesOfTipo(ctx, chatID, sess, sess.Filter)
	}
}

// deleteUbicacion removes a location value. Values referenced by historic
// data are protected by the foreign keys and reported as in use.
func (b *Bot) deleteUbicacion(ctx context.Context, chatID int64, sess *Session, id int64) {
	err := b.Ubicaciones.Delete(ctx, id)
	if errors.Is(err, data.ErrInUse) {
		b.send(chatID, "No se puede borrar: esa ubicación tiene datos asociados.")
		return
	}
	if errors.Is(err, data.ErrNotFound) {
		b.send(chatID, "Esa ubicación ya no existe.")
		return
	}
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"ubicacion_id": id,
			"error":        err.Error(),
		}).Error("Failed to delete location")
		b.send(chatID, "No se ha podido borrar la ubicación. Inténtalo de nuevo.")
		return
	}

	b.send(chatID, "🗑 Ubicación borrada.")
	if sess.Filter != "" {
		b.showUbicacionesOfTipo(ctx, chatID, sess, sess.Filter)
	}
}
