package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Filter_Empty(t *testing.T) {
	//Arrange
	var f Filter

	//Assert
	assert.True(t, f.Empty())
	assert.Equal(t, "", f.Where())
	assert.Empty(t, f.Args())
}

func Test_Filter_CombinesClauses(t *testing.T) {
	//Arrange
	var f Filter

	//Act
	f.Equals("estado", "Finalizado").
		LikePrefix("ubicacion_completa", "Torre A").
		Between("fecha_trabajo", "2026-01-01", "2026-01-31")

	//Assert: placeholders numbered in insertion order, Between takes two.
	expected := " WHERE estado = $1 AND ubicacion_completa LIKE $2 AND fecha_trabajo BETWEEN $3 AND $4"
	assert.Equal(t, expected, f.Where())
	assert.Equal(t, []interface{}{"Finalizado", "Torre A%", "2026-01-01", "2026-01-31"}, f.Args())
}

func Test_Filter_AnyOf(t *testing.T) {
	//Arrange
	var f Filter

	//Act
	f.AnyOf("estado", []string{"Pendiente", "Resuelta"})

	//Assert
	assert.Equal(t, " WHERE estado = ANY($1)", f.Where())
	assert.Len(t, f.Args(), 1)
}
