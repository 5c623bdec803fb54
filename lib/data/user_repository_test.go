package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obrabot/lib/models"
)

func newUserDao(t *testing.T) (*UserDao, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &UserDao{DB: db, Logger: logrus.New()}, mock
}

func Test_GetRole_Success(t *testing.T) {
	//Arrange
	dao, mock := newUserDao(t)
	mock.ExpectQuery("SELECT role FROM usuarios").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("Tecnico"))

	//Act
	role, err := dao.GetRole(context.Background(), 5)

	//Assert
	assert.NoError(t, err)
	assert.Equal(t, "Tecnico", role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_GetRole_NotFound(t *testing.T) {
	//Arrange
	dao, mock := newUserDao(t)
	mock.ExpectQuery("SELECT role FROM usuarios").
		WithArgs(int64(5)).
		WillReturnError(sql.ErrNoRows)

	//Act
	_, err := dao.GetRole(context.Background(), 5)

	//Assert
	assert.ErrorIs(t, err, ErrNotFound)
}

func Test_Upsert_Success(t *testing.T) {
	//Arrange
	dao, mock := newUserDao(t)
	mock.ExpectExec("INSERT INTO usuarios").
		WithArgs(int64(5), "Luis", "luis88", "Encargado").
		WillReturnResult(sqlmock.NewResult(0, 1))

	//Act
	err := dao.Upsert(context.Background(), &models.Usuario{
		ID:        5,
		FirstName: "Luis",
		Username:  "luis88",
		Role:      "Encargado",
	})

	//Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_UpdateRole_NotFound(t *testing.T) {
	//Arrange
	dao, mock := newUserDao(t)
	mock.ExpectExec("UPDATE usuarios SET role").
		WithArgs("Gerente", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	//Act
	err := dao.UpdateRole(context.Background(), 99, "Gerente")

	//Assert
	assert.ErrorIs(t, err, ErrNotFound)
}
