package bot

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"obrabot/lib/constants"
	"obrabot/lib/data"
	"obrabot/lib/ui"
	"obrabot/lib/util"
)

// assignableRoles is the order roles appear on the admin keyboard.
var assignableRoles = []string{
	constants.RoleEncargado,
	constants.RoleTecnico,
	constants.RoleGerente,
	constants.RoleAlmacen,
	constants.RoleRRHH,
	constants.RolePrevencion,
	constants.RoleAdmin,
}

// showUsuariosPage lists every registered user so the admin can pick one
// to re-role. Users without a role sort the same as everyone else but are
// flagged in the label.
func (b *Bot) showUsuariosPage(ctx context.Context, chatID int64, sess *Session) {
	usuarios, err := b.Users.GetAll(ctx)
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to list users")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}
	if len(usuarios) == 0 {
		b.sendKeyboard(chatID, "No hay usuarios registrados.",
			tgbotapi.NewInlineKeyboardMarkup(backToMenuRow()))
		return
	}

	totalPages := ui.TotalPages(len(usuarios), constants.ItemsPerPage)
	sess.Page = ui.ClampPage(sess.Page, totalPages)
	desde := sess.Page * constants.ItemsPerPage
	hasta := desde + constants.ItemsPerPage
	if hasta > len(usuarios) {
		hasta = len(usuarios)
	}

	page := ui.Page{Index: sess.Page, TotalPages: totalPages}
	for _, u := range usuarios[desde:hasta] {
		rol := util.ConditionalString(u.Role != "", u.Role, "sin rol")
		page.Items = append(page.Items, ui.PageItem{
			Label:    fmt.Sprintf("%s · %s", u.FirstName, rol),
			Callback: fmt.Sprintf("mngrole_user_%d", u.ID),
		})
	}

	texto := fmt.Sprintf("Usuarios registrados (página %d/%d):", sess.Page+1, totalPages)
	b.sendKeyboard(chatID, texto, page.Keyboard(cbPagePrev, cbPageNext, "🔙 Menú Principal", cbMenu))
}

// showRoleKeyboard offers the role choices for one user.
func (b *Bot) showRoleKeyboard(ctx context.Context, chatID int64, sess *Session, targetID int64) {
	usuario, err := b.Users.GetByID(ctx, targetID)
	if errors.Is(err, data.ErrNotFound) {
		b.send(chatID, "Ese usuario ya no existe.")
		return
	}
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"target_id": targetID,
			"error":     err.Error(),
		}).Error("Failed to load user for role change")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}

	sess.TargetID = targetID
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, role := range assignableRoles {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(role, "mngrole_set_"+role),
		))
	}
	rows = append(rows, backToMenuRow())

	rol := util.ConditionalString(usuario.Role != "", usuario.Role, "sin rol")
	b.sendKeyboard(chatID, fmt.Sprintf("Elige el nuevo rol de %s (actual: %s):", usuario.FirstName, rol),
		tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// setUserRole applies the chosen role and tells the affected user, who
// gets their new menu on the next /start.
func (b *Bot) setUserRole(ctx context.Context, chatID, userID int64, sess *Session, role string) {
	valido := false
	for _, r := range assignableRoles {
		if r == role {
			valido = true
			break
		}
	}
	if !valido || sess.TargetID == 0 {
		b.send(chatID, "Selección de rol no válida.")
		return
	}

	targetID := sess.TargetID
	if err := b.Users.UpdateRole(ctx, targetID, role); err != nil {
		if errors.Is(err, data.ErrNotFound) {
			b.send(chatID, "Ese usuario ya no existe.")
			return
		}
		b.Logger.WithFields(logrus.Fields{
			"target_id": targetID,
			"role":      role,
			"error":     err.Error(),
		}).Error("Failed to update user role")
		b.send(chatID, "No se ha podido cambiar el rol. Inténtalo de nuevo.")
		return
	}

	sess.TargetID = 0
	b.send(chatID, fmt.Sprintf("✅ Rol actualizado a %s.", role))
	b.send(targetID, fmt.Sprintf("Tu rol ha cambiado a %s. Usa /start para ver tu nuevo menú.", role))
	b.sendMenu(ctx, chatID, userID)
}
