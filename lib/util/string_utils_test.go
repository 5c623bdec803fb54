package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ConditionalString(t *testing.T) {
	assert.Equal(t, "Tecnico", ConditionalString(true, "Tecnico", "sin rol"))
	assert.Equal(t, "sin rol", ConditionalString(false, "Tecnico", "sin rol"))
}

func Test_EscapeMarkdown(t *testing.T) {
	assert.Equal(t, `Torre A \- Planta 2\.`, EscapeMarkdown("Torre A - Planta 2."))
	assert.Equal(t, "sin cambios", EscapeMarkdown("sin cambios"))
}

func Test_Truncate(t *testing.T) {
	assert.Equal(t, "corto", Truncate("corto", 10))
	assert.Equal(t, "alicat…", Truncate("alicatado de baños", 7))
}
