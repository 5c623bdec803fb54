package data

import (
	"context"
	"database/sql"
	"fmt"

	"obrabot/lib/models"

	"github.com/sirupsen/logrus"
)

// UserRepository defines the interface for usuario data operations
type UserRepository interface {
	// GetRole returns the role assigned to a user, or ErrNotFound when the
	// user is not registered.
	GetRole(ctx context.Context, userID int64) (string, error)

	// GetByID retrieves a single user with all their details.
	GetByID(ctx context.Context, userID int64) (*models.Usuario, error)

	// GetByRole retrieves every user holding the given role.
	GetByRole(ctx context.Context, role string) ([]models.Usuario, error)

	// GetAll retrieves every registered user ordered by first name.
	GetAll(ctx context.Context) ([]models.Usuario, error)

	// Upsert inserts a user or updates their name, username and role.
	Upsert(ctx context.Context, user *models.Usuario) error

	// UpdateRole changes only the role of an existing user.
	UpdateRole(ctx context.Context, userID int64, role string) error
}

// UserDao implements UserRepository using PostgreSQL
type UserDao struct {
	DB     *sql.DB
	Logger *logrus.Logger
}

func (dao *UserDao) GetRole(ctx context.Context, userID int64) (string, error) {
	var role string
	err := dao.DB.QueryRowContext(ctx,
		`SELECT role FROM usuarios WHERE user_id = $1`, userID).Scan(&role)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrNotFound
		}
		dao.Logger.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Failed to get user role")
		return "", fmt.Errorf("failed to get user role: %w", err)
	}
	return role, nil
}

func (dao *UserDao) GetByID(ctx context.Context, userID int64) (*models.Usuario, error) {
	var user models.Usuario
	var username sql.NullString
	err := dao.DB.QueryRowContext(ctx, `
		SELECT user_id, first_name, username, role
		FROM usuarios
		WHERE user_id = $1
	`, userID).Scan(&user.ID, &user.FirstName, &username, &user.Role)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		dao.Logger.WithError(err).Error("Failed to get user details")
		return nil, fmt.Errorf("failed to get user details: %w", err)
	}
	user.Username = username.String
	return &user, nil
}

func (dao *UserDao) GetByRole(ctx context.Context, role string) ([]models.Usuario, error) {
	rows, err := dao.DB.QueryContext(ctx, `
		SELECT user_id, first_name, username, role
		FROM usuarios
		WHERE role = $1
		ORDER BY first_name ASC
	`, role)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"role":  role,
			"error": err.Error(),
		}).Error("Failed to query users by role")
		return nil, fmt.Errorf("failed to query users by role: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

func (dao *UserDao) GetAll(ctx context.Context) ([]models.Usuario, error) {
	rows, err := dao.DB.QueryContext(ctx, `
		SELECT user_id, first_name, username, role
		FROM usuarios
		ORDER BY first_name ASC
	`)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to query all users")
		return nil, fmt.Errorf("failed to query all users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

func (dao *UserDao) Upsert(ctx context.Context, user *models.Usuario) error {
	_, err := dao.DB.ExecContext(ctx, `
		INSERT INTO usuarios (user_id, first_name, username, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			username = EXCLUDED.username,
			role = EXCLUDED.role
	`, user.ID, user.FirstName, user.Username, user.Role)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"user_id": user.ID,
			"role":    user.Role,
			"error":   err.Error(),
		}).Error("Failed to upsert user")
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	dao.Logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("Successfully upserted user")
	return nil
}

func (dao *UserDao) UpdateRole(ctx context.Context, userID int64, role string) error {
	result, err := dao.DB.ExecContext(ctx,
		`UPDATE usuarios SET role = $1 WHERE user_id = $2`, role, userID)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"user_id": userID,
			"role":    role,
			"error":   err.Error(),
		}).Error("Failed to update user role")
		return fmt.Errorf("failed to update user role: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	dao.Logger.WithFields(logrus.Fields{
		"user_id": userID,
		"role":    role,
	}).Info("Successfully updated user role")
	return nil
}

func scanUsers(rows *sql.Rows) ([]models.Usuario, error) {
	var users []models.Usuario
	for rows.Next() {
		var user models.Usuario
		var username sql.NullString
		if err := rows.Scan(&user.ID, &user.FirstName, &username, &user.Role); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		user.Username = username.String
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}
