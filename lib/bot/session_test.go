package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Store_GetCreatesAndReuses(t *testing.T) {
	//Arrange
	store := NewStore()

	//Act
	first := store.Get(100)
	first.State = StateAvanceWalk
	again := store.Get(100)

	//Assert
	require.NotNil(t, first)
	assert.Same(t, first, again)
	assert.Equal(t, StateAvanceWalk, again.State)
}

func Test_Store_ResetClearsState(t *testing.T) {
	//Arrange
	store := NewStore()
	sess := store.Get(100)
	sess.State = StatePedidoNotas
	sess.Pedido = &PedidoDraft{CurrentItemName: "taladro"}

	//Act
	fresh := store.Reset(100)

	//Assert
	assert.Equal(t, StateIdle, fresh.State)
	assert.Nil(t, fresh.Pedido)
	assert.Same(t, fresh, store.Get(100))
}
