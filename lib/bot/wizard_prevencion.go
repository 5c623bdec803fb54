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

// startPrev opens the safety incident wizard.
func (b *Bot) startPrev(chatID int64, sess *Session) {
	sess.State = StatePrevUbicacion
	sess.Text = &TextDraft{}
	b.sendKeyboard(chatID, "¿Dónde se ha detectado el problema de seguridad?",
		tgbotapi.NewInlineKeyboardMarkup(cancelRow()))
}

func (b *Bot) prevUbicacionText(ctx context.Context, chatID int64, sess *Session, text string) {
	if sess.Text == nil {
		return
	}
	sess.Text.First = text
	sess.State = StatePrevDesc
	b.send(chatID, "Describe el problema:")
}

func (b *Bot) prevDescText(ctx context.Context, chatID int64, sess *Session, text string) {
	if sess.Text == nil {
		return
	}
	sess.Text.Second = text
	sess.State = StatePrevFoto

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭ Sin foto", cbSkipFoto),
		),
		cancelRow(),
	)
	b.sendKeyboard(chatID, "Envía una foto del problema, o continúa sin ella.", kb)
}

func (b *Bot) prevPhoto(ctx context.Context, chatID, userID int64, sess *Session, m *tgbotapi.Message) {
	bytes, err := b.downloadPhoto(m)
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to download safety photo")
		b.send(chatID, "No he podido descargar la foto. Envíala de nuevo o continúa sin ella.")
		return
	}
	path, err := b.Photos.Save(storage.PhotoPrevencion, userID, bytes)
	if err != nil {
		b.send(chatID, "No he podido guardar la foto. Envíala de nuevo o continúa sin ella.")
		return
	}
	b.prevDone(ctx, chatID, userID, sess, path)
}

// prevDone persists the report and broadcasts it: safety issues are always
// visible to the whole group, photo included.
func (b *Bot) prevDone(ctx context.Context, chatID, userID int64, sess *Session, fotoPath string) {
	if sess.Text == nil {
		b.sendMenu(ctx, chatID, userID)
		return
	}
	ubicacion, descripcion := sess.Text.First, sess.Text.Second

	id, err := b.Prevencion.Create(ctx, userID, ubicacion, descripcion, fotoPath)
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Failed to create safety incidencia")
		b.send(chatID, "No se ha podido registrar la incidencia. Inténtalo de nuevo.")
		return
	}

	b.Sessions.Reset(userID)
	b.send(chatID, fmt.Sprintf("🛡 Incidencia de seguridad #%d registrada.", id))

	texto := fmt.Sprintf("🛡 *Incidencia de seguridad* \\#%d\n📍 %s\n\n%s",
		id, util.EscapeMarkdown(ubicacion), util.EscapeMarkdown(descripcion))
	foto, _ := b.Photos.Open(fotoPath)
	b.Broadcast.Send(texto, foto)

	b.notifyRole(ctx, constants.RoleTecnico,
		fmt.Sprintf("🛡 Nueva incidencia de seguridad #%d en %s.", id, ubicacion))
	b.sendMenu(ctx, chatID, userID)
}

// listMisPrev shows the caller's own safety reports with their states.
func (b *Bot) listMisPrev(ctx context.Context, chatID, userID int64) {
	incidencias, err := b.Prevencion.GetByReporter(ctx, userID)
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to list own safety incidencias")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}
	if len(incidencias) == 0 {
		b.sendKeyboard(chatID, "No has registrado incidencias de seguridad.",
			tgbotapi.NewInlineKeyboardMarkup(backToMenuRow()))
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, inc := range incidencias {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("#%d · %s · %s", inc.ID, inc.Estado, inc.FechaReporte.Format("02/01")),
				fmt.Sprintf("prev_view_%d", inc.ID),
			),
		))
	}
	rows = append(rows, backToMenuRow())
	b.sendKeyboard(chatID, "Tus incidencias de seguridad:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// listPrevAbiertas shows every open or disputed safety incidencia.
func (b *Bot) listPrevAbiertas(ctx context.Context, chatID, userID int64) {
	incidencias, err := b.Prevencion.GetByEstado(ctx,
		[]string{constants.PrevencionAbierta, constants.PrevencionEnDisputa})
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to list open safety incidencias")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}
	if len(incidencias) == 0 {
		b.sendKeyboard(chatID, "No hay incidencias de seguridad abiertas. 🎉",
			tgbotapi.NewInlineKeyboardMarkup(backToMenuRow()))
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, inc := range incidencias {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("#%d · %s · %s", inc.ID, inc.Estado, util.Truncate(inc.Ubicacion, 25)),
				fmt.Sprintf("prev_view_%d", inc.ID),
			),
		))
	}
	rows = append(rows, backToMenuRow())
	b.sendKeyboard(chatID, "Incidencias de seguridad abiertas:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// viewPrev shows the report detail with the actions the caller's role can
// take: técnicos dispute with a comment, prevención closes.
func (b *Bot) viewPrev(ctx context.Context, chatID, userID int64, incidenciaID int64) {
	inc, err := b.Prevencion.GetByID(ctx, incidenciaID)
	if errors.Is(err, data.ErrNotFound) {
		b.send(chatID, "Esa incidencia ya no existe.")
		return
	}
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"incidencia_id": incidenciaID,
			"error":         err.Error(),
		}).Error("Failed to load safety incidencia")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}
	role, err := b.Users.GetRole(ctx, userID)
	if err != nil {
		role = ""
	}

	detalle := fmt.Sprintf("🛡 Incidencia de seguridad #%d\n\nEstado: %s\nUbicación: %s\nReportada por: %s\nFecha: %s\n\n%s",
		inc.ID, inc.Estado, inc.Ubicacion, inc.ReporterName,
		inc.FechaReporte.Format("02/01/2006 15:04"), inc.Descripcion)

	var rows [][]tgbotapi.InlineKeyboardButton
	if inc.FotoPath != "" || inc.HasFoto {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📷 Ver Foto", fmt.Sprintf("prev_photo_%d", inc.ID)),
		))
	}
	if inc.Estado != constants.PrevencionCerrada {
		if role == constants.RoleTecnico || role == constants.RoleAdmin {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("💬 Comentar", fmt.Sprintf("prev_comment_%d", inc.ID)),
			))
		}
		if role == constants.RolePrevencion || role == constants.RoleAdmin {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔒 Cerrar", fmt.Sprintf("prev_close_%d", inc.ID)),
			))
		}
	}
	rows = append(rows, backToMenuRow())
	b.sendKeyboard(chatID, detalle, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) startPrevComentario(chatID int64, sess *Session, incidenciaID int64) {
	sess.State = StatePrevComentario
	sess.TargetID = incidenciaID
	b.sendKeyboard(chatID, "Escribe tu comentario; la incidencia pasará a «En Disputa»:",
		tgbotapi.NewInlineKeyboardMarkup(cancelRow()))
}

func (b *Bot) prevComentarioText(ctx context.Context, chatID, userID int64, sess *Session, text string) {
	incidenciaID := sess.TargetID
	if err := b.Prevencion.AddComentario(ctx, incidenciaID, userID, text); err != nil {
		b.Logger.WithFields(logrus.Fields{
			"incidencia_id": incidenciaID,
			"error":         err.Error(),
		}).Error("Failed to comment on safety incidencia")
		b.send(chatID, "No se ha podido guardar el comentario. Inténtalo de nuevo.")
		return
	}

	b.Sessions.Reset(userID)
	b.send(chatID, fmt.Sprintf("💬 Comentario añadido; la incidencia #%d queda en disputa.", incidenciaID))
	b.notifyRole(ctx, constants.RolePrevencion,
		fmt.Sprintf("💬 Nuevo comentario en la incidencia de seguridad #%d: %s", incidenciaID, text))
	b.sendMenu(ctx, chatID, userID)
}

func (b *Bot) closePrev(ctx context.Context, chatID, userID int64, incidenciaID int64) {
	if err := b.Prevencion.Close(ctx, incidenciaID, userID); err != nil {
		b.Logger.WithFields(logrus.Fields{
			"incidencia_id": incidenciaID,
			"error":         err.Error(),
		}).Error("Failed to close safety incidencia")
		b.send(chatID, "No se ha podido cerrar la incidencia. Inténtalo de nuevo.")
		return
	}

	b.send(chatID, fmt.Sprintf("🔒 Incidencia de seguridad #%d cerrada.", incidenciaID))
	if inc, err := b.Prevencion.GetByID(ctx, incidenciaID); err == nil && inc.ReportaID != userID {
		b.send(inc.ReportaID, fmt.Sprintf("🔒 Tu incidencia de seguridad #%d ha sido cerrada.", incidenciaID))
	}
}

func (b *Bot) sendPrevFoto(ctx context.Context, chatID int64, incidenciaID int64) {
	inc, err := b.Prevencion.GetByID(ctx, incidenciaID)
	if err != nil {
		b.send(chatID, "No se ha encontrado la foto de esa incidencia.")
		return
	}
	foto, ok := b.Photos.Open(inc.FotoPath)
	if !ok {
		b.send(chatID, "La foto de esa incidencia ya no está disponible.")
		return
	}
	b.sendPhoto(chatID, fmt.Sprintf("Foto de la incidencia de seguridad #%d", incidenciaID), foto)
}

// startComunicado asks for the text of a safety broadcast to the group.
func (b *Bot) startComunicado(chatID int64, sess *Session) {
	sess.State = StateComunicado
	b.sendKeyboard(chatID, "Escribe el comunicado que se enviará al grupo de obra:",
		tgbotapi.NewInlineKeyboardMarkup(cancelRow()))
}

func (b *Bot) comunicadoText(ctx context.Context, chatID, userID int64, sess *Session, text string) {
	b.Broadcast.Send("📢 *Comunicado de Prevención*\n\n"+util.EscapeMarkdown(text), nil)
	b.Sessions.Reset(userID)
	b.send(chatID, "📢 Comunicado enviado al grupo.")
	b.sendMenu(ctx, chatID, userID)
}
