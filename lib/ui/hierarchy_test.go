package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SortLevels_CanonicalOrder(t *testing.T) {
	//Arrange
	discovered := []string{"Zona", "Edificio", "Sector", "Planta"}

	//Act
	levels, err := SortLevels(discovered)

	//Assert: known levels in canonical order, unknown ones appended.
	require.NoError(t, err)
	assert.Equal(t, []string{"Edificio", "Planta", "Zona", "Sector"}, levels)
}

func Test_SortLevels_Empty(t *testing.T) {
	//Act
	_, err := SortLevels(nil)

	//Assert
	assert.ErrorIs(t, err, ErrNoLevels)
}

func Test_Walk_SelectAndBack(t *testing.T) {
	//Arrange
	walk := NewWalk([]string{"Edificio", "Planta"})

	//Act & Assert
	assert.Equal(t, "Edificio", walk.CurrentLevel())
	assert.False(t, walk.Select("Torre A"))
	assert.Equal(t, "Planta", walk.CurrentLevel())
	assert.True(t, walk.Select("Planta 2"))
	assert.True(t, walk.Done())
	assert.Equal(t, "Torre A / Planta 2", walk.Path())

	assert.False(t, walk.Back())
	assert.Equal(t, "Planta", walk.CurrentLevel())
	assert.True(t, walk.Back())
	assert.Equal(t, "", walk.Path())
}

func Test_SplitPath(t *testing.T) {
	assert.Equal(t, []string{"Torre A", "Planta 2", "Zona Norte"}, SplitPath("Torre A / Planta 2 / Zona Norte"))
	assert.Nil(t, SplitPath(""))
}
