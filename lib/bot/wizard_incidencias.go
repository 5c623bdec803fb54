package bot

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"obrabot/lib/constants"
	"obrabot/lib/data"
	"obrabot/lib/util"
)

// listIncidencias shows the pending avance-linked issues to the técnico.
func (b *Bot) listIncidencias(ctx context.Context, chatID int64) {
	incidencias, err := b.Incidencias.GetByEstado(ctx, []string{constants.IncidenciaPendiente})
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to list incidencias")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}
	if len(incidencias) == 0 {
		b.sendKeyboard(chatID, "No hay incidencias pendientes. 🎉",
			tgbotapi.NewInlineKeyboardMarkup(backToMenuRow()))
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, inc := range incidencias {
		lugar := inc.AvanceUbicacion
		if lugar == "" {
			lugar = inc.ItemName
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("#%d · %s (%s)", inc.ID, util.Truncate(lugar, 30), inc.FechaReporte.Format("02/01")),
				fmt.Sprintf("inc_view_%d", inc.ID),
			),
		))
	}
	rows = append(rows, backToMenuRow())
	b.sendKeyboard(chatID, "Incidencias pendientes:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) viewIncidencia(ctx context.Context, chatID, userID int64, incidenciaID int64) {
	inc, err := b.Incidencias.GetByID(ctx, incidenciaID)
	if errors.Is(err, data.ErrNotFound) {
		b.send(chatID, "Esa incidencia ya no existe.")
		return
	}
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"incidencia_id": incidenciaID,
			"error":         err.Error(),
		}).Error("Failed to load incidencia")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}

	detalle := fmt.Sprintf("⚠️ Incidencia #%d\n\nEstado: %s\nReportada por: %s\nFecha: %s\n\n%s",
		inc.ID, inc.Estado, inc.ReporterName, inc.FechaReporte.Format("02/01/2006 15:04"), inc.Descripcion)
	if inc.AvanceUbicacion != "" {
		detalle += "\n\n📍 Avance: " + inc.AvanceUbicacion
	}
	if inc.Estado == constants.IncidenciaResuelta {
		detalle += fmt.Sprintf("\n\n✅ Resuelta por %s: %s", inc.ResolverName, inc.ResolucionDesc)
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	if inc.FotoPath != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📷 Ver Foto", fmt.Sprintf("ver_foto_incidencia_%d", inc.ID)),
		))
	}
	if inc.Estado == constants.IncidenciaPendiente {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Resolver", fmt.Sprintf("inc_resolve_%d", inc.ID)),
		))
	}
	rows = append(rows, backToMenuRow())
	b.sendKeyboard(chatID, detalle, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// startIncResolucion asks for the resolution text of an avance or tool
// incidencia. The same step serves both families.
func (b *Bot) startIncResolucion(chatID int64, sess *Session, incidenciaID int64, kind string) {
	sess.State = StateIncResolucion
	sess.TargetID = incidenciaID
	sess.Filter = kind
	b.sendKeyboard(chatID, "Describe cómo se ha resuelto la incidencia:",
		tgbotapi.NewInlineKeyboardMarkup(cancelRow()))
}

func (b *Bot) incResolucionText(ctx context.Context, chatID, userID int64, sess *Session, text string) {
	incidenciaID := sess.TargetID
	if err := b.Incidencias.Resolve(ctx, incidenciaID, userID, text); err != nil {
		b.Logger.WithFields(logrus.Fields{
			"incidencia_id": incidenciaID,
			"error":         err.Error(),
		}).Error("Failed to resolve incidencia")
		b.send(chatID, "No se ha podido resolver la incidencia. Inténtalo de nuevo.")
		return
	}

	b.Sessions.Reset(userID)
	b.send(chatID, fmt.Sprintf("✅ Incidencia #%d resuelta.", incidenciaID))

	// Tell whoever reported it.
	if inc, err := b.Incidencias.GetByID(ctx, incidenciaID); err == nil {
		b.send(inc.ReportaID, fmt.Sprintf("✅ Tu incidencia #%d ha sido resuelta: %s", incidenciaID, text))
	}
	b.sendMenu(ctx, chatID, userID)
}

func (b *Bot) sendIncidenciaFoto(ctx context.Context, chatID int64, incidenciaID int64) {
	path, err := b.Incidencias.GetFotoPath(ctx, incidenciaID)
	if err != nil {
		b.send(chatID, "No se ha encontrado la foto de esa incidencia.")
		return
	}
	foto, ok := b.Photos.Open(path)
	if !ok {
		b.send(chatID, "La foto de esa incidencia ya no está disponible.")
		return
	}
	b.sendPhoto(chatID, fmt.Sprintf("Foto de la incidencia #%d", incidenciaID), foto)
}
