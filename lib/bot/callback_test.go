package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Decode_CalendarDay(t *testing.T) {
	//Act
	action := Decode("cal_day_2026_3_10")

	//Assert
	assert.Equal(t, ActionCalDay, action.Kind)
	assert.Equal(t, 2026, action.Year)
	assert.Equal(t, 3, action.Month)
	assert.Equal(t, 10, action.Day)
}

func Test_Decode_CalendarNav(t *testing.T) {
	//Act
	prev := Decode("cal_prev_2026_1_0")
	next := Decode("cal_next_2025_12_1")

	//Assert
	assert.Equal(t, ActionCalNav, prev.Kind)
	assert.Equal(t, "prev", prev.Direction)
	assert.Equal(t, 2026, prev.Year)
	assert.Equal(t, 1, prev.Month)
	assert.False(t, prev.AllowPast)

	assert.Equal(t, ActionCalNav, next.Kind)
	assert.Equal(t, "next", next.Direction)
	assert.True(t, next.AllowPast)
}

func Test_Decode_CalendarShortcuts(t *testing.T) {
	assert.Equal(t, ActionCalIgnore, Decode("cal_ignore").Kind)
	assert.Equal(t, ActionCalToday, Decode("cal_today").Kind)
}

func Test_Decode_SetRole(t *testing.T) {
	//Act
	action := Decode("mngrole_set_Tecnico")

	//Assert
	assert.Equal(t, ActionSetRole, action.Kind)
	assert.Equal(t, "Tecnico", action.Role)
}

func Test_Decode_Select(t *testing.T) {
	//Act
	avance := Decode("view_avance_42")
	solicitud := Decode("sol_aprobar_7")

	//Assert
	assert.Equal(t, ActionSelect, avance.Kind)
	assert.Equal(t, "view_avance", avance.Prefix)
	assert.Equal(t, int64(42), avance.ID)

	// "sol_aprobar" must not be swallowed by the shorter "aprobar" family.
	assert.Equal(t, ActionSelect, solicitud.Kind)
	assert.Equal(t, "sol_aprobar", solicitud.Prefix)
	assert.Equal(t, int64(7), solicitud.ID)
}

func Test_Decode_StaticFallback(t *testing.T) {
	//Act & Assert: plain menu payloads and malformed families stay static.
	assert.Equal(t, ActionStatic, Decode("registrar_avance").Kind)
	assert.Equal(t, ActionStatic, Decode("cal_day_x_y_z").Kind)
	assert.Equal(t, ActionStatic, Decode("view_avance_abc").Kind)
	assert.Equal(t, ActionStatic, Decode(cbMenu).Kind)
}
