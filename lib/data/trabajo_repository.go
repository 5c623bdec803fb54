package data

import (
	"context"
	"database/sql"
	"fmt"

	"obrabot/lib/models"

	"github.com/sirupsen/logrus"
)

// TrabajoRepository defines the interface for work-type catalog data
type TrabajoRepository interface {
	// GetAll lists the selectable work types ordered by name.
	GetAll(ctx context.Context) ([]models.TipoTrabajo, error)

	// Add inserts a new work type, typically from a custom entry typed
	// during avance registration. Returns ErrDuplicate when it exists.
	Add(ctx context.Context, nombre string) error
}

// TrabajoDao implements TrabajoRepository using PostgreSQL
type TrabajoDao struct {
	DB     *sql.DB
	Logger *logrus.Logger
}

func (dao *TrabajoDao) GetAll(ctx context.Context) ([]models.TipoTrabajo, error) {
	rows, err := dao.DB.QueryContext(ctx,
		`SELECT id, nombre FROM tipos_trabajo ORDER BY nombre ASC`)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to query tipos de trabajo")
		return nil, fmt.Errorf("failed to query tipos de trabajo: %w", err)
	}
	defer rows.Close()

	var tipos []models.TipoTrabajo
	for rows.Next() {
		var t models.TipoTrabajo
		if err := rows.Scan(&t.ID, &t.Nombre); err != nil {
			return nil, fmt.Errorf("failed to scan tipo de trabajo: %w", err)
		}
		tipos = append(tipos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tipos de trabajo: %w", err)
	}
	return tipos, nil
}

func (dao *TrabajoDao) Add(ctx context.Context, nombre string) error {
	_, err := dao.DB.ExecContext(ctx,
		`INSERT INTO tipos_trabajo (nombre) VALUES ($1)`, nombre)
	if err != nil {
		if mapped := mapError(err); mapped == ErrDuplicate {
			return ErrDuplicate
		}
		dao.Logger.WithFields(logrus.Fields{
			"nombre": nombre,
			"error":  err.Error(),
		}).Error("Failed to add tipo de trabajo")
		return fmt.Errorf("failed to add tipo de trabajo: %w", err)
	}
	return nil
}
