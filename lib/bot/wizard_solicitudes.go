package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"obrabot/lib/constants"
	"obrabot/lib/data"
	"obrabot/lib/models"
)

// startSolicitud opens the staffing request wizard on its first puesto.
func (b *Bot) startSolicitud(chatID int64, sess *Session) {
	sess.Solicitud = &SolicitudDraft{}
	b.promptPuesto(chatID, sess)
}

func (b *Bot) promptPuesto(chatID int64, sess *Session) {
	if sess.Solicitud == nil {
		sess.Solicitud = &SolicitudDraft{}
	}
	sess.State = StateSolicitudPuesto
	b.sendKeyboard(chatID, "¿Qué puesto necesitas? (por ejemplo: Oficial de primera)",
		tgbotapi.NewInlineKeyboardMarkup(cancelRow()))
}

func (b *Bot) solicitudPuestoText(ctx context.Context, chatID int64, sess *Session, text string) {
	if sess.Solicitud == nil {
		return
	}
	sess.Solicitud.CurrentPuesto = text
	sess.State = StateSolicitudCantidad
	b.send(chatID, fmt.Sprintf("¿Cuántas personas de %s?", text))
}

func (b *Bot) solicitudCantidadText(ctx context.Context, chatID int64, sess *Session, text string) {
	cantidad, err := strconv.Atoi(text)
	if err != nil || cantidad <= 0 {
		b.send(chatID, "Escribe un número entero mayor que cero.")
		return
	}
	draft := sess.Solicitud
	if draft == nil {
		return
	}

	draft.Puestos = append(draft.Puestos, models.SolicitudItem{
		Puesto:   draft.CurrentPuesto,
		Cantidad: cantidad,
	})
	sess.State = StateIdle

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Otro puesto", cbAddPuesto),
			tgbotapi.NewInlineKeyboardButtonData("✅ Continuar", cbFinalizarSol),
		),
		cancelRow(),
	)
	b.sendKeyboard(chatID, fmt.Sprintf("Añadido: %d x %s.", cantidad, draft.CurrentPuesto), kb)
}

// promptSolicitudFecha asks for the incorporation date; past days are
// disabled on the calendar.
func (b *Bot) promptSolicitudFecha(chatID int64, sess *Session) {
	if sess.Solicitud == nil || len(sess.Solicitud.Puestos) == 0 {
		b.send(chatID, "La solicitud está vacía. Añade al menos un puesto.")
		return
	}
	sess.State = StateSolicitudFecha

	now := b.Calendar.Now()
	sess.CalYear, sess.CalMonth = now.Year(), int(now.Month())
	b.sendKeyboard(chatID, "¿Para qué fecha necesitas la incorporación?",
		b.Calendar.Render(sess.CalYear, sess.CalMonth, false))
}

func (b *Bot) solicitudFechaChosen(ctx context.Context, chatID, userID int64, sess *Session, date time.Time) {
	if sess.Solicitud == nil {
		b.sendMenu(ctx, chatID, userID)
		return
	}
	sess.Solicitud.Fecha = date
	sess.State = StateSolicitudNotas

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭ Sin notas", cbSkipNotas),
		),
		cancelRow(),
	)
	b.sendKeyboard(chatID, "Añade notas para el técnico, o continúa sin ellas.", kb)
}

func (b *Bot) solicitudNotasText(ctx context.Context, chatID, userID int64, sess *Session, text string) {
	draft := sess.Solicitud
	if draft == nil || len(draft.Puestos) == 0 {
		b.sendMenu(ctx, chatID, userID)
		return
	}

	id, err := b.Solicitudes.Create(ctx, userID, draft.Puestos, draft.Fecha, text)
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Failed to create solicitud")
		b.send(chatID, "No se ha podido registrar la solicitud. Inténtalo de nuevo.")
		return
	}

	b.Sessions.Reset(userID)
	b.send(chatID, fmt.Sprintf("👷 Solicitud de personal #%d enviada para aprobación.", id))
	b.notifyRole(ctx, constants.RoleTecnico,
		fmt.Sprintf("👷 Nueva solicitud de personal #%d pendiente de aprobación.", id))
	b.sendMenu(ctx, chatID, userID)
}

func (b *Bot) listMisSolicitudes(ctx context.Context, chatID, userID int64) {
	solicitudes, err := b.Solicitudes.GetBySolicitante(ctx, userID)
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to list own solicitudes")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}
	b.renderSolicitudes(chatID, "Tus solicitudes de personal:", "No has registrado solicitudes.", solicitudes)
}

// listSolicitudesPendientes feeds the técnico/gerente approval queue.
func (b *Bot) listSolicitudesPendientes(ctx context.Context, chatID, userID int64) {
	solicitudes, err := b.Solicitudes.GetByEstado(ctx, []string{constants.SolicitudPendiente})
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to list pending solicitudes")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}
	b.renderSolicitudes(chatID, "Solicitudes pendientes de aprobación:",
		"No hay solicitudes pendientes. 🎉", solicitudes)
}

// listSolicitudesRRHH feeds the RRHH work queue: approved requests plus
// the ones already being sourced.
func (b *Bot) listSolicitudesRRHH(ctx context.Context, chatID int64) {
	solicitudes, err := b.Solicitudes.GetByEstado(ctx,
		[]string{constants.SolicitudAprobada, constants.SolicitudEnBusqueda})
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to list solicitudes for RRHH")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}
	b.renderSolicitudes(chatID, "Solicitudes en curso:", "No hay solicitudes en curso.", solicitudes)
}

func (b *Bot) renderSolicitudes(chatID int64, titulo, vacio string, solicitudes []models.SolicitudPersonal) {
	if len(solicitudes) == 0 {
		b.sendKeyboard(chatID, vacio, tgbotapi.NewInlineKeyboardMarkup(backToMenuRow()))
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, s := range solicitudes {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("#%d · %s · %s", s.ID, s.PuestosResumen, s.Estado),
				fmt.Sprintf("view_solicitud_%d", s.ID),
			),
		))
	}
	rows = append(rows, backToMenuRow())
	b.sendKeyboard(chatID, titulo, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// viewSolicitud shows the request detail with the next step for the
// caller's role: técnico endorses first, gerente grants final approval,
// RRHH works the approved ones.
func (b *Bot) viewSolicitud(ctx context.Context, chatID, userID int64, solicitudID int64) {
	s, err := b.Solicitudes.GetByID(ctx, solicitudID)
	if errors.Is(err, data.ErrNotFound) {
		b.send(chatID, "Esa solicitud ya no existe.")
		return
	}
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"solicitud_id": solicitudID,
			"error":        err.Error(),
		}).Error("Failed to load solicitud")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}
	role, err := b.Users.GetRole(ctx, userID)
	if err != nil {
		role = ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👷 Solicitud #%d\n\nSolicitante: %s\nEstado: %s\nIncorporación: %s\n\nPuestos:\n",
		s.ID, s.SolicitanteName, s.Estado, s.FechaIncorporacion.Format("02/01/2006")))
	for _, p := range s.Puestos {
		sb.WriteString(fmt.Sprintf("  • %d x %s\n", p.Cantidad, p.Puesto))
	}
	if s.NotasSolicitud != "" {
		sb.WriteString("\nNotas: " + s.NotasSolicitud + "\n")
	}
	if s.TecnicoName != "" {
		sb.WriteString("\nVisto bueno técnico: " + s.TecnicoName + "\n")
	}
	if len(s.NotasRRHH) > 0 {
		sb.WriteString("\nSeguimiento RRHH:\n")
		for _, n := range s.NotasRRHH {
			sb.WriteString(fmt.Sprintf("  • [%s] %s: %s\n", n.FechaNota.Format("02/01"), n.AutorName, n.Nota))
		}
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	switch {
	case s.Estado == constants.SolicitudPendiente && s.TecnicoID == nil &&
		(role == constants.RoleTecnico || role == constants.RoleAdmin):
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Dar visto bueno", fmt.Sprintf("sol_aprobar_%d", s.ID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Rechazar", fmt.Sprintf("sol_rechazar_%d", s.ID)),
		))
	case s.Estado == constants.SolicitudPendiente && s.TecnicoID != nil &&
		(role == constants.RoleGerente || role == constants.RoleAdmin):
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Aprobar", fmt.Sprintf("sol_aprobar_%d", s.ID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Rechazar", fmt.Sprintf("sol_rechazar_%d", s.ID)),
		))
	case (s.Estado == constants.SolicitudAprobada || s.Estado == constants.SolicitudEnBusqueda) &&
		(role == constants.RoleRRHH || role == constants.RoleAdmin):
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Añadir nota", fmt.Sprintf("sol_nota_%d", s.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🔒 Cerrar", fmt.Sprintf("sol_cerrar_%d", s.ID)),
		))
	}
	rows = append(rows, backToMenuRow())
	b.sendKeyboard(chatID, sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// startSolicitudDecision records who is deciding and what the outcome will
// be, then asks for an optional note. A técnico approval endorses the
// request without changing its state; the gerente's approval finalizes it.
func (b *Bot) startSolicitudDecision(ctx context.Context, chatID, userID int64, sess *Session, solicitudID int64, approve bool) {
	role, err := b.Users.GetRole(ctx, userID)
	if err != nil {
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}

	estado := constants.SolicitudRechazada
	if approve {
		if role == constants.RoleTecnico {
			estado = constants.SolicitudPendiente
		} else {
			estado = constants.SolicitudAprobada
		}
	}

	sess.State = StateSolicitudDecision
	sess.TargetID = solicitudID
	sess.Filter = estado
	sess.Text = &TextDraft{First: role}

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭ Sin notas", cbSkipNotas),
		),
		cancelRow(),
	)
	b.sendKeyboard(chatID, "Añade una nota a tu decisión, o continúa sin ella.", kb)
}

func (b *Bot) solicitudDecisionText(ctx context.Context, chatID, userID int64, sess *Session, text string) {
	if sess.Text == nil {
		b.sendMenu(ctx, chatID, userID)
		return
	}
	solicitudID, estado, role := sess.TargetID, sess.Filter, sess.Text.First

	if err := b.Solicitudes.UpdateStatus(ctx, solicitudID, userID, estado, text, role); err != nil {
		b.Logger.WithFields(logrus.Fields{
			"solicitud_id": solicitudID,
			"estado":       estado,
			"error":        err.Error(),
		}).Error("Failed to update solicitud status")
		b.send(chatID, "No se ha podido actualizar la solicitud. Inténtalo de nuevo.")
		return
	}

	b.Sessions.Reset(userID)
	b.send(chatID, fmt.Sprintf("Decisión registrada para la solicitud #%d.", solicitudID))

	if s, err := b.Solicitudes.GetByID(ctx, solicitudID); err == nil {
		switch {
		case estado == constants.SolicitudRechazada:
			b.send(s.SolicitanteID, fmt.Sprintf("❌ Tu solicitud de personal #%d ha sido rechazada.", solicitudID))
		case estado == constants.SolicitudAprobada:
			b.send(s.SolicitanteID, fmt.Sprintf("✅ Tu solicitud de personal #%d ha sido aprobada.", solicitudID))
			b.notifyRole(ctx, constants.RoleRRHH,
				fmt.Sprintf("👷 Solicitud de personal #%d aprobada, pendiente de búsqueda.", solicitudID))
		case role == constants.RoleTecnico:
			b.notifyRole(ctx, constants.RoleGerente,
				fmt.Sprintf("👷 Solicitud de personal #%d con visto bueno técnico, pendiente de tu aprobación.", solicitudID))
		}
	}
	b.sendMenu(ctx, chatID, userID)
}

func (b *Bot) startSolicitudNotaRRHH(chatID int64, sess *Session, solicitudID int64) {
	sess.State = StateSolicitudNotaRRHH
	sess.TargetID = solicitudID
	b.sendKeyboard(chatID, "Escribe la nota de seguimiento:",
		tgbotapi.NewInlineKeyboardMarkup(cancelRow()))
}

func (b *Bot) solicitudNotaRRHHText(ctx context.Context, chatID, userID int64, sess *Session, text string) {
	solicitudID := sess.TargetID
	if err := b.Solicitudes.AddRRHHNote(ctx, solicitudID, userID, text); err != nil {
		b.Logger.WithFields(logrus.Fields{
			"solicitud_id": solicitudID,
			"error":        err.Error(),
		}).Error("Failed to add RRHH note")
		b.send(chatID, "No se ha podido guardar la nota. Inténtalo de nuevo.")
		return
	}

	b.Sessions.Reset(userID)
	b.send(chatID, fmt.Sprintf("📝 Nota añadida a la solicitud #%d.", solicitudID))
	if s, err := b.Solicitudes.GetByID(ctx, solicitudID); err == nil {
		b.send(s.SolicitanteID,
			fmt.Sprintf("📝 Novedades en tu solicitud de personal #%d: %s", solicitudID, text))
	}
	b.sendMenu(ctx, chatID, userID)
}

func (b *Bot) closeSolicitud(ctx context.Context, chatID, userID int64, solicitudID int64) {
	if err := b.Solicitudes.UpdateStatus(ctx, solicitudID, userID,
		constants.SolicitudCerrada, "", constants.RoleRRHH); err != nil {
		b.Logger.WithFields(logrus.Fields{
			"solicitud_id": solicitudID,
			"error":        err.Error(),
		}).Error("Failed to close solicitud")
		b.send(chatID, "No se ha podido cerrar la solicitud. Inténtalo de nuevo.")
		return
	}

	b.send(chatID, fmt.Sprintf("🔒 Solicitud #%d cerrada.", solicitudID))
	if s, err := b.Solicitudes.GetByID(ctx, solicitudID); err == nil {
		b.send(s.SolicitanteID, fmt.Sprintf("🔒 Tu solicitud de personal #%d ha sido cerrada.", solicitudID))
	}
}
