package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obrabot/lib/constants"
)

func Test_RootMenu_KnownRoles(t *testing.T) {
	roles := []string{
		constants.RoleEncargado,
		constants.RoleTecnico,
		constants.RoleGerente,
		constants.RoleAlmacen,
		constants.RoleRRHH,
		constants.RolePrevencion,
		constants.RoleAdmin,
	}

	for _, role := range roles {
		//Act
		kb, ok := RootMenu(role)

		//Assert
		require.True(t, ok, role)
		require.NotEmpty(t, kb.InlineKeyboard, role)
		for _, row := range kb.InlineKeyboard {
			assert.LessOrEqual(t, len(row), 2, role)
		}
	}
}

func Test_RootMenu_UnknownRole(t *testing.T) {
	//Act
	_, ok := RootMenu("Visitante")

	//Assert
	assert.False(t, ok)
}
