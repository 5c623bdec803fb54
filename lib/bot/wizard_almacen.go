package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"obrabot/lib/constants"
	"obrabot/lib/data"
	"obrabot/lib/models"
	"obrabot/lib/ui"
	"obrabot/lib/util"
)

// showAlmacenPage renders one page of the full inventory with per-item
// detail buttons and the add control.
func (b *Bot) showAlmacenPage(ctx context.Context, chatID int64, sess *Session) {
	items, totalPages, err := b.Almacen.GetPaginated(ctx, nil, sess.Page, constants.ItemsPerPage)
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to list inventory")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}
	if clamped := ui.ClampPage(sess.Page, totalPages); clamped != sess.Page {
		sess.Page = clamped
		items, totalPages, err = b.Almacen.GetPaginated(ctx, nil, sess.Page, constants.ItemsPerPage)
		if err != nil {
			b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
			return
		}
	}

	page := ui.Page{Index: sess.Page, TotalPages: totalPages}
	for _, item := range items {
		page.Items = append(page.Items, ui.PageItem{
			Label:    fmt.Sprintf("%s (%d) · %s", util.Truncate(item.Nombre, 30), item.Cantidad, item.Tipo),
			Callback: fmt.Sprintf("view_item_%d", item.ID),
		})
	}

	kb := page.Keyboard(cbPagePrev, cbPageNext, "➕ Añadir artículo", cbAlmacenAdd)
	kb.InlineKeyboard = append(kb.InlineKeyboard, backToMenuRow())

	texto := "El inventario está vacío."
	if len(items) > 0 {
		texto = fmt.Sprintf("Inventario (página %d/%d):", sess.Page+1, totalPages)
	}
	b.sendKeyboard(chatID, texto, kb)
}

func (b *Bot) viewAlmacenItem(ctx context.Context, chatID int64, itemID int64) {
	item, err := b.Almacen.GetByID(ctx, itemID)
	if errors.Is(err, data.ErrNotFound) {
		b.send(chatID, "Ese artículo ya no existe.")
		return
	}
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"item_id": itemID,
			"error":   err.Error(),
		}).Error("Failed to load inventory item")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}

	detalle := fmt.Sprintf("📦 %s\n\nTipo: %s\nCantidad: %d", item.Nombre, item.Tipo, item.Cantidad)
	if item.Descripcion != "" {
		detalle += "\nDescripción: " + item.Descripcion
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔢 Cambiar cantidad", fmt.Sprintf("item_qty_%d", item.ID)),
			tgbotapi.NewInlineKeyboardButtonData("✏️ Editar", fmt.Sprintf("item_name_%d", item.ID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Borrar", fmt.Sprintf("item_del_%d", item.ID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Inventario", cbGestAlmacen),
		),
		backToMenuRow(),
	)
	b.sendKeyboard(chatID, detalle, kb)
}

func (b *Bot) startAlmacenAdd(chatID int64, sess *Session) {
	sess.Almacen = &AlmacenDraft{}
	sess.State = StateAlmacenNombre
	b.sendKeyboard(chatID, "Escribe el nombre del artículo:",
		tgbotapi.NewInlineKeyboardMarkup(cancelRow()))
}

func (b *Bot) almacenNombreText(ctx context.Context, chatID int64, sess *Session, text string) {
	if sess.Almacen == nil {
		return
	}
	sess.Almacen.Nombre = text
	sess.State = StateAlmacenCantidad
	b.send(chatID, "¿Qué cantidad entra en el almacén?")
}

func (b *Bot) almacenCantidadText(ctx context.Context, chatID int64, sess *Session, text string) {
	cantidad, err := strconv.Atoi(text)
	if err != nil || cantidad < 0 {
		b.send(chatID, "Escribe un número entero válido, por ejemplo 12.")
		return
	}
	if sess.Almacen == nil {
		return
	}
	sess.Almacen.Cantidad = cantidad
	sess.State = StateAlmacenTipo

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛠 Herramienta", cbTipoHerramienta),
			tgbotapi.NewInlineKeyboardButtonData("🧱 Material", cbTipoMaterial),
		),
		cancelRow(),
	)
	b.sendKeyboard(chatID, "¿Es herramienta o material?", kb)
}

func (b *Bot) almacenTipoChosen(ctx context.Context, chatID, userID int64, sess *Session, tipo string) {
	if sess.State != StateAlmacenTipo || sess.Almacen == nil {
		b.send(chatID, "Esa selección ya no corresponde a ninguna operación en curso.")
		return
	}
	sess.Almacen.Tipo = tipo
	sess.State = StateAlmacenDesc
	b.send(chatID, "Escribe una descripción, o «-» para omitirla:")
}

// almacenDescText closes the add wizard. Adding an existing name
// accumulates stock instead of failing.
func (b *Bot) almacenDescText(ctx context.Context, chatID, userID int64, sess *Session, text string) {
	draft := sess.Almacen
	if draft == nil {
		return
	}
	descripcion := strings.TrimSpace(text)
	if descripcion == "-" {
		descripcion = ""
	}

	item := &models.AlmacenItem{
		Nombre:      draft.Nombre,
		Cantidad:    draft.Cantidad,
		Tipo:        draft.Tipo,
		Descripcion: descripcion,
	}
	if err := b.Almacen.AddOrUpdate(ctx, item); err != nil {
		b.Logger.WithFields(logrus.Fields{
			"nombre": draft.Nombre,
			"error":  err.Error(),
		}).Error("Failed to add inventory item")
		b.send(chatID, "No se ha podido guardar el artículo. Inténtalo de nuevo.")
		return
	}

	b.Sessions.Reset(userID)
	sess = b.Sessions.Get(userID)
	sess.Pager = pagerAlmacen
	b.send(chatID, fmt.Sprintf("✅ Artículo %q guardado.", draft.Nombre))
	b.showAlmacenPage(ctx, chatID, sess)
}

func (b *Bot) startAlmacenEditCantidad(chatID int64, sess *Session, itemID int64) {
	sess.State = StateAlmacenEditCantidad
	sess.TargetID = itemID
	b.sendKeyboard(chatID, "Escribe la nueva cantidad total:",
		tgbotapi.NewInlineKeyboardMarkup(cancelRow()))
}

func (b *Bot) almacenEditCantidadText(ctx context.Context, chatID, userID int64, sess *Session, text string) {
	cantidad, err := strconv.Atoi(text)
	if err != nil || cantidad < 0 {
		b.send(chatID, "Escribe un número entero válido, por ejemplo 12.")
		return
	}

	if err := b.Almacen.UpdateQuantity(ctx, sess.TargetID, cantidad); err != nil {
		if errors.Is(err, data.ErrNotFound) {
			b.send(chatID, "Ese artículo ya no existe.")
			sess.State = StateIdle
			return
		}
		b.Logger.WithFields(logrus.Fields{
			"item_id": sess.TargetID,
			"error":   err.Error(),
		}).Error("Failed to update item quantity")
		b.send(chatID, "No se ha podido actualizar la cantidad. Inténtalo de nuevo.")
		return
	}

	sess.State = StateIdle
	b.send(chatID, "✅ Cantidad actualizada.")
	b.viewAlmacenItem(ctx, chatID, sess.TargetID)
}

func (b *Bot) startAlmacenEditNombre(chatID int64, sess *Session, itemID int64) {
	sess.State = StateAlmacenEditNombre
	sess.TargetID = itemID
	sess.Text = &TextDraft{}
	b.sendKeyboard(chatID, "Escribe el nuevo nombre del artículo:",
		tgbotapi.NewInlineKeyboardMarkup(cancelRow()))
}

func (b *Bot) almacenEditNombreText(ctx context.Context, chatID int64, sess *Session, text string) {
	if sess.Text == nil {
		return
	}
	sess.Text.First = text
	sess.State = StateAlmacenEditDesc
	b.send(chatID, "Escribe la nueva descripción, o «-» para dejarla vacía:")
}

func (b *Bot) almacenEditDescText(ctx context.Context, chatID, userID int64, sess *Session, text string) {
	if sess.Text == nil {
		return
	}
	descripcion := strings.TrimSpace(text)
	if descripcion == "-" {
		descripcion = ""
	}

	err := b.Almacen.UpdateDetails(ctx, sess.TargetID, sess.Text.First, descripcion)
	if errors.Is(err, data.ErrDuplicate) {
		b.send(chatID, "Ya existe un artículo con ese nombre. Empieza de nuevo con otro nombre.")
		sess.State = StateIdle
		return
	}
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"item_id": sess.TargetID,
			"error":   err.Error(),
		}).Error("Failed to update item details")
		b.send(chatID, "No se han podido actualizar los datos. Inténtalo de nuevo.")
		return
	}

	sess.State = StateIdle
	b.send(chatID, "✅ Artículo actualizado.")
	b.viewAlmacenItem(ctx, chatID, sess.TargetID)
}

func (b *Bot) deleteAlmacenItem(ctx context.Context, chatID, userID int64, itemID int64) {
	err := b.Almacen.Delete(ctx, itemID)
	if errors.Is(err, data.ErrInUse) {
		b.send(chatID, "No se puede borrar: ese artículo aparece en pedidos o incidencias.")
		return
	}
	if errors.Is(err, data.ErrNotFound) {
		b.send(chatID, "Ese artículo ya no existe.")
		return
	}
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"item_id": itemID,
			"error":   err.Error(),
		}).Error("Failed to delete inventory item")
		b.send(chatID, "No se ha podido borrar el artículo. Inténtalo de nuevo.")
		return
	}

	sess := b.Sessions.Get(userID)
	sess.Pager = pagerAlmacen
	b.send(chatID, "🗑 Artículo borrado.")
	b.showAlmacenPage(ctx, chatID, sess)
}

// sendInventarioCompleto dumps the whole inventory as one message, tools
// first, then materials.
func (b *Bot) sendInventarioCompleto(ctx context.Context, chatID int64) {
	items, err := b.Almacen.GetFullInventory(ctx)
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to load full inventory")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}
	if len(items) == 0 {
		b.sendKeyboard(chatID, "El inventario está vacío.",
			tgbotapi.NewInlineKeyboardMarkup(backToMenuRow()))
		return
	}

	var sb strings.Builder
	sb.WriteString("📑 Inventario completo\n")
	lastTipo := ""
	for _, item := range items {
		if item.Tipo != lastTipo {
			sb.WriteString(fmt.Sprintf("\n%s:\n", item.Tipo))
			lastTipo = item.Tipo
		}
		sb.WriteString(fmt.Sprintf("  • %s: %d\n", item.Nombre, item.Cantidad))
	}
	b.sendKeyboard(chatID, sb.String(), tgbotapi.NewInlineKeyboardMarkup(backToMenuRow()))
}

// sendMaterialEnObra sums the material already approved or delivered to
// site, so the gerente sees what left the warehouse.
func (b *Bot) sendMaterialEnObra(ctx context.Context, chatID int64) {
	material, err := b.Almacen.GetMaterialEnObra(ctx)
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to load material on site")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}
	if len(material) == 0 {
		b.sendKeyboard(chatID, "No hay material en obra todavía.",
			tgbotapi.NewInlineKeyboardMarkup(backToMenuRow()))
		return
	}

	var sb strings.Builder
	sb.WriteString("🚚 Material en obra\n\n")
	for _, m := range material {
		sb.WriteString(fmt.Sprintf("  • %s: %d\n", m.Nombre, m.Cantidad))
	}
	b.sendKeyboard(chatID, sb.String(), tgbotapi.NewInlineKeyboardMarkup(backToMenuRow()))
}
