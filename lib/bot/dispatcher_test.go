package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_StepPage_NeverNegative(t *testing.T) {
	//Act & Assert: a stale "previous" tap on the first page must land on
	// page zero, never produce a negative query offset.
	assert.Equal(t, 0, stepPage(0, -1))
	assert.Equal(t, 0, stepPage(-1, -1))
	assert.Equal(t, 0, stepPage(1, -1))
	assert.Equal(t, 2, stepPage(1, 1))
}
