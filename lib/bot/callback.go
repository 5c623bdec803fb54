package bot

import (
	"strconv"
	"strings"

	"obrabot/lib/ui"
)

// ActionKind tags a decoded callback payload.
type ActionKind int

const (
	// ActionStatic is a fixed menu or navigation payload with no fields.
	ActionStatic ActionKind = iota
	// ActionSelect is "<prefix>_<numeric id>": an entity was picked.
	ActionSelect
	// ActionCalDay is a concrete calendar day selection.
	ActionCalDay
	// ActionCalNav is a calendar month navigation tap.
	ActionCalNav
	// ActionCalIgnore is a tap on a non-interactive calendar cell.
	ActionCalIgnore
	// ActionCalToday is the today-shortcut accelerator.
	ActionCalToday
	// ActionSetRole is "mngrole_set_<role>" from the admin role wizard.
	ActionSetRole
)

// Action is the decoded form of a callback payload. Payloads are parsed
// once here at the boundary and dispatched on Kind, instead of re-splitting
// the raw string inside every handler.
type Action struct {
	Kind ActionKind

	// Raw is the original payload, kept for static dispatch.
	Raw string

	// Prefix and ID are set for ActionSelect.
	Prefix string
	ID     int64

	// Calendar fields.
	Year      int
	Month     int
	Day       int
	Direction string
	AllowPast bool

	// Role is set for ActionSetRole.
	Role string
}

// selectPrefixes are the payload families that carry a trailing numeric
// entity ID.
var selectPrefixes = []string{
	"view_avance", "ver_foto_avance", "reportinc",
	"inc_view", "inc_resolve", "ver_foto_incidencia",
	"view_pedido", "aprobar", "rechazar",
	"pedido_listo", "pedido_entregado", "pedido_item",
	"view_item", "item_qty", "item_name", "item_del",
	"toolinc_item", "toolinc_view", "resolve_toolinc",
	"view_solicitud", "sol_aprobar", "sol_rechazar", "sol_nota", "sol_cerrar",
	"prev_view", "prev_comment", "prev_close", "prev_photo",
	"view_orden", "resolve_orden", "ver_foto_orden",
	"averia_resolve", "mngrole_user",
	"ubicacion_del", "ubicacion_ren",
}

// Decode parses a callback payload into an Action.
func Decode(data string) Action {
	switch data {
	case ui.CalIgnore:
		return Action{Kind: ActionCalIgnore, Raw: data}
	case ui.CalToday:
		return Action{Kind: ActionCalToday, Raw: data}
	}

	if strings.HasPrefix(data, "cal_day_") {
		parts := strings.Split(data, "_")
		if len(parts) == 5 {
			year, errY := strconv.Atoi(parts[2])
			month, errM := strconv.Atoi(parts[3])
			day, errD := strconv.Atoi(parts[4])
			if errY == nil && errM == nil && errD == nil {
				return Action{Kind: ActionCalDay, Raw: data, Year: year, Month: month, Day: day}
			}
		}
		return Action{Kind: ActionStatic, Raw: data}
	}

	if strings.HasPrefix(data, "cal_prev_") || strings.HasPrefix(data, "cal_next_") {
		parts := strings.Split(data, "_")
		if len(parts) == 5 {
			year, errY := strconv.Atoi(parts[2])
			month, errM := strconv.Atoi(parts[3])
			if errY == nil && errM == nil {
				return Action{
					Kind:      ActionCalNav,
					Raw:       data,
					Direction: parts[1],
					Year:      year,
					Month:     month,
					AllowPast: parts[4] == "1",
				}
			}
		}
		return Action{Kind: ActionStatic, Raw: data}
	}

	if strings.HasPrefix(data, "mngrole_set_") {
		return Action{Kind: ActionSetRole, Raw: data, Role: strings.TrimPrefix(data, "mngrole_set_")}
	}

	for _, prefix := range selectPrefixes {
		withSep := prefix + "_"
		if strings.HasPrefix(data, withSep) {
			if id, err := strconv.ParseInt(strings.TrimPrefix(data, withSep), 10, 64); err == nil {
				return Action{Kind: ActionSelect, Raw: data, Prefix: prefix, ID: id}
			}
		}
	}

	return Action{Kind: ActionStatic, Raw: data}
}
