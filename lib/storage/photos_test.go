package storage

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_FileName(t *testing.T) {
	//Arrange
	at := time.Date(2026, time.March, 10, 9, 30, 45, 0, time.UTC)

	//Act
	name := FileName(PhotoAvance, 12345, at)

	//Assert
	assert.Equal(t, "avance_12345_20260310_093045.jpg", name)
}

func Test_SaveAndOpen(t *testing.T) {
	//Arrange
	store, err := NewPhotoStore(t.TempDir(), logrus.New())
	require.NoError(t, err)

	//Act
	path, err := store.Save(PhotoAveria, 7, []byte("jpeg bytes"))
	require.NoError(t, err)
	data, ok := store.Open(path)

	//Assert
	assert.True(t, ok)
	assert.Equal(t, []byte("jpeg bytes"), data)
}

func Test_Open_Missing(t *testing.T) {
	//Arrange
	store, err := NewPhotoStore(t.TempDir(), logrus.New())
	require.NoError(t, err)

	//Act & Assert
	data, ok := store.Open("")
	assert.False(t, ok)
	assert.Nil(t, data)

	data, ok = store.Open("/nonexistent/avance_fotos/foo.jpg")
	assert.False(t, ok)
	assert.Nil(t, data)
}
