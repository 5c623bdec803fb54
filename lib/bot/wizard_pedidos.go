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

// startPedido opens the material request wizard on the material catalogue.
func (b *Bot) startPedido(ctx context.Context, chatID int64, sess *Session) {
	sess.Pedido = &PedidoDraft{}
	sess.Pager = pagerPedidoItems
	sess.Page = 0
	b.showPedidoItemsPage(ctx, chatID, sess)
}

// showPedidoItemsPage lists the requestable materials one page at a time.
func (b *Bot) showPedidoItemsPage(ctx context.Context, chatID int64, sess *Session) {
	items, totalPages, err := b.Almacen.GetPaginated(ctx, []string{"Material"}, sess.Page, constants.ItemsPerPage)
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to list materials")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}
	if clamped := ui.ClampPage(sess.Page, totalPages); clamped != sess.Page {
		sess.Page = clamped
		items, totalPages, err = b.Almacen.GetPaginated(ctx, []string{"Material"}, sess.Page, constants.ItemsPerPage)
		if err != nil {
			b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
			return
		}
	}
	if len(items) == 0 {
		b.sendKeyboard(chatID, "No hay materiales en el almacén.",
			tgbotapi.NewInlineKeyboardMarkup(backToMenuRow()))
		return
	}

	page := ui.Page{Index: sess.Page, TotalPages: totalPages}
	for _, item := range items {
		page.Items = append(page.Items, ui.PageItem{
			Label:    fmt.Sprintf("%s (%d disponibles)", util.Truncate(item.Nombre, 35), item.Cantidad),
			Callback: fmt.Sprintf("pedido_item_%d", item.ID),
		})
	}

	backLabel, backCallback := "❌ Cancelar", cbCancel
	if sess.Pedido != nil && len(sess.Pedido.Items) > 0 {
		backLabel, backCallback = "✅ Finalizar pedido", cbFinalizarPedido
	}
	kb := page.Keyboard(cbPagePrev, cbPageNext, backLabel, backCallback)
	if backCallback == cbFinalizarPedido {
		kb.InlineKeyboard = append(kb.InlineKeyboard, cancelRow())
	}

	texto := fmt.Sprintf("Elige un material (página %d/%d):", sess.Page+1, totalPages)
	if sess.Pedido != nil && len(sess.Pedido.Items) > 0 {
		texto += fmt.Sprintf("\nLlevas %d artículos en el pedido.", len(sess.Pedido.Items))
	}
	b.sendKeyboard(chatID, texto, kb)
}

func (b *Bot) pedidoItemChosen(ctx context.Context, chatID int64, sess *Session, itemID int64) {
	if sess.Pedido == nil {
		b.send(chatID, "Empieza el pedido desde el menú principal.")
		return
	}
	item, err := b.Almacen.GetByID(ctx, itemID)
	if errors.Is(err, data.ErrNotFound) {
		b.send(chatID, "Ese artículo ya no existe.")
		return
	}
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"item_id": itemID,
			"error":   err.Error(),
		}).Error("Failed to load material")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}

	sess.Pedido.CurrentItemID = item.ID
	sess.Pedido.CurrentItemName = item.Nombre
	sess.State = StatePedidoCantidad
	b.sendKeyboard(chatID, fmt.Sprintf("¿Cuántas unidades de %s necesitas?", item.Nombre),
		tgbotapi.NewInlineKeyboardMarkup(cancelRow()))
}

func (b *Bot) pedidoCantidadText(ctx context.Context, chatID int64, sess *Session, text string) {
	cantidad, err := strconv.Atoi(text)
	if err != nil || cantidad <= 0 {
		b.send(chatID, "Escribe un número entero mayor que cero.")
		return
	}
	draft := sess.Pedido
	if draft == nil {
		return
	}

	draft.Items = append(draft.Items, models.PedidoItem{
		ItemID:             draft.CurrentItemID,
		NombreItem:         draft.CurrentItemName,
		CantidadSolicitada: cantidad,
	})
	sess.State = StateIdle

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Añadir otro", cbAddItem),
			tgbotapi.NewInlineKeyboardButtonData("✅ Finalizar", cbFinalizarPedido),
		),
		cancelRow(),
	)
	b.sendKeyboard(chatID, fmt.Sprintf("Añadido: %d x %s.", cantidad, draft.CurrentItemName), kb)
}

func (b *Bot) promptPedidoNotas(chatID int64, sess *Session) {
	if sess.Pedido == nil || len(sess.Pedido.Items) == 0 {
		b.send(chatID, "El pedido está vacío. Añade al menos un artículo.")
		return
	}
	sess.State = StatePedidoNotas

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭ Sin notas", cbSkipNotas),
		),
		cancelRow(),
	)
	b.sendKeyboard(chatID, "Añade notas para el técnico, o continúa sin ellas.", kb)
}

// pedidoNotasText persists the request and pings the técnicos for approval.
func (b *Bot) pedidoNotasText(ctx context.Context, chatID, userID int64, sess *Session, text string) {
	draft := sess.Pedido
	if draft == nil || len(draft.Items) == 0 {
		b.sendMenu(ctx, chatID, userID)
		return
	}

	pedido := &models.Pedido{
		SolicitanteID:  userID,
		NotasSolicitud: text,
		Items:          draft.Items,
	}
	id, err := b.Pedidos.Create(ctx, pedido)
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Failed to create pedido")
		b.send(chatID, "No se ha podido registrar el pedido. Inténtalo de nuevo.")
		return
	}

	b.Sessions.Reset(userID)
	b.send(chatID, fmt.Sprintf("📦 Pedido #%d enviado para aprobación.", id))
	b.notifyRole(ctx, constants.RoleTecnico,
		fmt.Sprintf("📦 Nuevo pedido de material #%d pendiente de aprobación.", id))
	b.sendMenu(ctx, chatID, userID)
}

// listPedidos shows every pedido in a lifecycle state as detail buttons.
func (b *Bot) listPedidos(ctx context.Context, chatID int64, estado string) {
	pedidos, err := b.Pedidos.GetByEstado(ctx, estado)
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"estado": estado,
			"error":  err.Error(),
		}).Error("Failed to list pedidos")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}
	if len(pedidos) == 0 {
		b.sendKeyboard(chatID, fmt.Sprintf("No hay pedidos en estado %q.", estado),
			tgbotapi.NewInlineKeyboardMarkup(backToMenuRow()))
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, p := range pedidos {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("#%d · %s (%s)", p.ID, p.SolicitanteName, p.FechaSolicitud.Format("02/01")),
				fmt.Sprintf("view_pedido_%d", p.ID),
			),
		))
	}
	rows = append(rows, backToMenuRow())
	b.sendKeyboard(chatID, fmt.Sprintf("Pedidos en estado %q:", estado),
		tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// listPedidosListos shows the caller's own pedidos ready for pickup.
func (b *Bot) listPedidosListos(ctx context.Context, chatID, userID int64) {
	pedidos, err := b.Pedidos.GetByEstado(ctx, constants.PedidoListo)
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to list ready pedidos")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, p := range pedidos {
		if p.SolicitanteID != userID {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("#%d (%s)", p.ID, p.FechaSolicitud.Format("02/01")),
				fmt.Sprintf("view_pedido_%d", p.ID),
			),
		))
	}
	if len(rows) == 0 {
		b.sendKeyboard(chatID, "No tienes pedidos listos para recoger.",
			tgbotapi.NewInlineKeyboardMarkup(backToMenuRow()))
		return
	}
	rows = append(rows, backToMenuRow())
	b.sendKeyboard(chatID, "Tus pedidos listos para recoger:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// viewPedido shows the request detail with the actions the caller's role
// can take in its current state.
func (b *Bot) viewPedido(ctx context.Context, chatID, userID int64, pedidoID int64) {
	pedido, err := b.Pedidos.GetByID(ctx, pedidoID)
	if errors.Is(err, data.ErrNotFound) {
		b.send(chatID, "Ese pedido ya no existe.")
		return
	}
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"pedido_id": pedidoID,
			"error":     err.Error(),
		}).Error("Failed to load pedido")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}
	role, err := b.Users.GetRole(ctx, userID)
	if err != nil {
		role = ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📦 Pedido #%d\n\nSolicitante: %s\nEstado: %s\nFecha: %s\n\nArtículos:\n",
		pedido.ID, pedido.SolicitanteName, pedido.Estado, pedido.FechaSolicitud.Format("02/01/2006")))
	for _, item := range pedido.Items {
		sb.WriteString(fmt.Sprintf("  • %d x %s\n", item.CantidadSolicitada, item.NombreItem))
	}
	if pedido.NotasSolicitud != "" {
		sb.WriteString("\nNotas: " + pedido.NotasSolicitud + "\n")
	}
	if pedido.NotasDecision != "" {
		sb.WriteString("\nDecisión: " + pedido.NotasDecision + "\n")
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	switch {
	case pedido.Estado == constants.PedidoPendiente &&
		(role == constants.RoleTecnico || role == constants.RoleAdmin):
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Aprobar", fmt.Sprintf("aprobar_%d", pedido.ID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Rechazar", fmt.Sprintf("rechazar_%d", pedido.ID)),
		))
	case pedido.Estado == constants.PedidoAprobado && role == constants.RoleAlmacen:
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📦 Marcar listo", fmt.Sprintf("pedido_listo_%d", pedido.ID)),
		))
	case pedido.Estado == constants.PedidoListo && pedido.SolicitanteID == userID:
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛒 Confirmar recogida", fmt.Sprintf("pedido_entregado_%d", pedido.ID)),
		))
	}
	rows = append(rows, backToMenuRow())

	b.sendKeyboard(chatID, sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) startPedidoDecision(chatID int64, sess *Session, pedidoID int64, estado string) {
	sess.State = StatePedidoDecision
	sess.TargetID = pedidoID
	sess.Filter = estado

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭ Sin notas", cbSkipNotas),
		),
		cancelRow(),
	)
	b.sendKeyboard(chatID, "Añade una nota para el solicitante, o continúa sin ella.", kb)
}

// pedidoDecisionText records the approval or rejection and tells the
// requester.
func (b *Bot) pedidoDecisionText(ctx context.Context, chatID, userID int64, sess *Session, text string) {
	pedidoID, estado := sess.TargetID, sess.Filter
	if err := b.Pedidos.UpdateStatus(ctx, pedidoID, userID, estado, text); err != nil {
		b.Logger.WithFields(logrus.Fields{
			"pedido_id": pedidoID,
			"estado":    estado,
			"error":     err.Error(),
		}).Error("Failed to update pedido status")
		b.send(chatID, "No se ha podido actualizar el pedido. Inténtalo de nuevo.")
		return
	}

	b.Sessions.Reset(userID)
	b.send(chatID, fmt.Sprintf("Pedido #%d marcado como %q.", pedidoID, estado))

	if solicitanteID, err := b.Pedidos.GetSolicitanteID(ctx, pedidoID); err == nil {
		aviso := fmt.Sprintf("Tu pedido #%d ha sido %s.", pedidoID, strings.ToLower(estado))
		if text != "" {
			aviso += "\nNota: " + text
		}
		b.send(solicitanteID, aviso)
	}
	if estado == constants.PedidoAprobado {
		b.notifyRole(ctx, constants.RoleAlmacen,
			fmt.Sprintf("📦 Pedido #%d aprobado, pendiente de preparar.", pedidoID))
	}
	b.sendMenu(ctx, chatID, userID)
}

// markPedidoListo moves an approved pedido to ready-for-pickup.
func (b *Bot) markPedidoListo(ctx context.Context, chatID, userID int64, pedidoID int64) {
	if err := b.Pedidos.UpdateStatus(ctx, pedidoID, userID, constants.PedidoListo, ""); err != nil {
		b.Logger.WithFields(logrus.Fields{
			"pedido_id": pedidoID,
			"error":     err.Error(),
		}).Error("Failed to mark pedido ready")
		b.send(chatID, "No se ha podido actualizar el pedido. Inténtalo de nuevo.")
		return
	}

	b.send(chatID, fmt.Sprintf("Pedido #%d marcado como listo para recoger.", pedidoID))
	if solicitanteID, err := b.Pedidos.GetSolicitanteID(ctx, pedidoID); err == nil {
		b.send(solicitanteID, fmt.Sprintf("📦 Tu pedido #%d está listo para recoger en el almacén.", pedidoID))
	}
}

// markPedidoEntregado closes the loop when the encargado picks the order up.
func (b *Bot) markPedidoEntregado(ctx context.Context, chatID, userID int64, pedidoID int64) {
	if err := b.Pedidos.UpdateStatus(ctx, pedidoID, userID, constants.PedidoEntregado, ""); err != nil {
		b.Logger.WithFields(logrus.Fields{
			"pedido_id": pedidoID,
			"error":     err.Error(),
		}).Error("Failed to mark pedido delivered")
		b.send(chatID, "No se ha podido actualizar el pedido. Inténtalo de nuevo.")
		return
	}

	b.send(chatID, fmt.Sprintf("🛒 Recogida del pedido #%d confirmada.", pedidoID))
	b.notifyRole(ctx, constants.RoleAlmacen,
		fmt.Sprintf("🛒 El pedido #%d ha sido recogido.", pedidoID))
}
