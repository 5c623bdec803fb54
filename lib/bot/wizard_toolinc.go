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
	"obrabot/lib/ui"
	"obrabot/lib/util"
)

// startToolInc opens the tool fault wizard on the tool catalogue.
func (b *Bot) startToolInc(ctx context.Context, chatID int64, sess *Session) {
	sess.Pager = pagerToolItems
	sess.Page = 0
	b.showToolItemsPage(ctx, chatID, sess)
}

func (b *Bot) showToolItemsPage(ctx context.Context, chatID int64, sess *Session) {
	items, totalPages, err := b.Almacen.GetPaginated(ctx, []string{"Herramienta"}, sess.Page, constants.ItemsPerPage)
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to list tools")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}
	if clamped := ui.ClampPage(sess.Page, totalPages); clamped != sess.Page {
		sess.Page = clamped
		items, totalPages, err = b.Almacen.GetPaginated(ctx, []string{"Herramienta"}, sess.Page, constants.ItemsPerPage)
		if err != nil {
			b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
			return
		}
	}
	if len(items) == 0 {
		b.sendKeyboard(chatID, "No hay herramientas en el inventario.",
			tgbotapi.NewInlineKeyboardMarkup(backToMenuRow()))
		return
	}

	page := ui.Page{Index: sess.Page, TotalPages: totalPages}
	for _, item := range items {
		page.Items = append(page.Items, ui.PageItem{
			Label:    util.Truncate(item.Nombre, 40),
			Callback: fmt.Sprintf("toolinc_item_%d", item.ID),
		})
	}

	texto := fmt.Sprintf("¿Qué herramienta presenta el problema? (página %d/%d)", sess.Page+1, totalPages)
	b.sendKeyboard(chatID, texto, page.Keyboard(cbPagePrev, cbPageNext, "❌ Cancelar", cbCancel))
}

func (b *Bot) toolIncItemChosen(chatID int64, sess *Session, itemID int64) {
	sess.TargetID = itemID
	sess.State = StateToolIncDesc
	b.sendKeyboard(chatID, "Describe el problema de la herramienta:",
		tgbotapi.NewInlineKeyboardMarkup(cancelRow()))
}

func (b *Bot) toolIncDescText(ctx context.Context, chatID int64, sess *Session, text string) {
	sess.Text = &TextDraft{First: text}
	sess.State = StateToolIncFoto

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭ Sin foto", cbSkipFoto),
		),
		cancelRow(),
	)
	b.sendKeyboard(chatID, "Envía una foto del problema, o continúa sin ella.", kb)
}

func (b *Bot) toolIncPhoto(ctx context.Context, chatID, userID int64, sess *Session, m *tgbotapi.Message) {
	bytes, err := b.downloadPhoto(m)
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to download tool incidencia photo")
		b.send(chatID, "No he podido descargar la foto. Envíala de nuevo o continúa sin ella.")
		return
	}
	path, err := b.Photos.Save(storage.PhotoIncidencia, userID, bytes)
	if err != nil {
		b.send(chatID, "No he podido guardar la foto. Envíala de nuevo o continúa sin ella.")
		return
	}
	b.toolIncDone(ctx, chatID, userID, sess, path)
}

func (b *Bot) toolIncDone(ctx context.Context, chatID, userID int64, sess *Session, fotoPath string) {
	if sess.Text == nil {
		b.sendMenu(ctx, chatID, userID)
		return
	}
	id, err := b.Incidencias.CreateForTool(ctx, userID, sess.TargetID, sess.Text.First, fotoPath)
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"item_id": sess.TargetID,
			"error":   err.Error(),
		}).Error("Failed to create tool incidencia")
		b.send(chatID, "No se ha podido registrar la incidencia. Inténtalo de nuevo.")
		return
	}

	b.Sessions.Reset(userID)
	b.send(chatID, fmt.Sprintf("🛠 Incidencia de herramienta #%d registrada.", id))
	b.notifyRole(ctx, constants.RoleTecnico,
		fmt.Sprintf("🛠 Nueva incidencia de herramienta #%d pendiente de revisar.", id))
	b.sendMenu(ctx, chatID, userID)
}

// listToolIncs shows the pending tool faults.
func (b *Bot) listToolIncs(ctx context.Context, chatID int64) {
	incidencias, err := b.Incidencias.GetToolIncidencias(ctx, []string{constants.IncidenciaPendiente})
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to list tool incidencias")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}
	if len(incidencias) == 0 {
		b.sendKeyboard(chatID, "No hay incidencias de herramientas pendientes. 🎉",
			tgbotapi.NewInlineKeyboardMarkup(backToMenuRow()))
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, inc := range incidencias {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("#%d · %s (%s)", inc.ID, util.Truncate(inc.ItemName, 30), inc.FechaReporte.Format("02/01")),
				fmt.Sprintf("toolinc_view_%d", inc.ID),
			),
		))
	}
	rows = append(rows, backToMenuRow())
	b.sendKeyboard(chatID, "Incidencias de herramientas pendientes:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) viewToolInc(ctx context.Context, chatID, userID int64, incidenciaID int64) {
	inc, err := b.Incidencias.GetToolIncidenciaDetails(ctx, incidenciaID)
	if errors.Is(err, data.ErrNotFound) {
		b.send(chatID, "Esa incidencia ya no existe.")
		return
	}
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"incidencia_id": incidenciaID,
			"error":         err.Error(),
		}).Error("Failed to load tool incidencia")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}

	detalle := fmt.Sprintf("🛠 Incidencia #%d\n\nHerramienta: %s\nEstado: %s\nReportada por: %s\nFecha: %s\n\n%s",
		inc.ID, inc.ItemName, inc.Estado, inc.ReporterName,
		inc.FechaReporte.Format("02/01/2006 15:04"), inc.Descripcion)

	var rows [][]tgbotapi.InlineKeyboardButton
	if inc.FotoPath != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📷 Ver Foto", fmt.Sprintf("ver_foto_incidencia_%d", inc.ID)),
		))
	}
	if inc.Estado == constants.IncidenciaPendiente {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Resolver", fmt.Sprintf("resolve_toolinc_%d", inc.ID)),
		))
	}
	rows = append(rows, backToMenuRow())
	b.sendKeyboard(chatID, detalle, tgbotapi.NewInlineKeyboardMarkup(rows...))
}
