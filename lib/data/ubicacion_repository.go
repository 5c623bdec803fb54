package data

import (
	"context"
	"database/sql"
	"fmt"

	"obrabot/lib/models"

	"github.com/sirupsen/logrus"
)

// UbicacionRepository defines the interface for location configuration data
type UbicacionRepository interface {
	// GetDistinctTipos returns every distinct location type stored in
	// ubicaciones_config, in no particular order. An empty result means the
	// table has no rows and location flows must abort.
	GetDistinctTipos(ctx context.Context) ([]string, error)

	// GetByTipo returns every location of one type, ordered by name.
	GetByTipo(ctx context.Context, tipo string) ([]models.Ubicacion, error)

	// Add inserts a new location. Returns ErrDuplicate when the (tipo,
	// nombre) pair already exists.
	Add(ctx context.Context, tipo, nombre string) error

	// Rename changes the name of a location. Returns ErrDuplicate when the
	// new name is taken and ErrNotFound when the row is gone.
	Rename(ctx context.Context, id int64, nombre string) error

	// Delete removes a location. Returns ErrInUse when avances still
	// reference it and ErrNotFound when the row is gone.
	Delete(ctx context.Context, id int64) error
}

// UbicacionDao implements UbicacionRepository using PostgreSQL
type UbicacionDao struct {
	DB     *sql.DB
	Logger *logrus.Logger
}

func (dao *UbicacionDao) GetDistinctTipos(ctx context.Context) ([]string, error) {
	rows, err := dao.DB.QueryContext(ctx,
		`SELECT DISTINCT tipo FROM ubicaciones_config`)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to query distinct location types")
		return nil, fmt.Errorf("failed to query location types: %w", err)
	}
	defer rows.Close()

	var tipos []string
	for rows.Next() {
		var tipo string
		if err := rows.Scan(&tipo); err != nil {
			return nil, fmt.Errorf("failed to scan location type: %w", err)
		}
		tipos = append(tipos, tipo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating location types: %w", err)
	}
	return tipos, nil
}

func (dao *UbicacionDao) GetByTipo(ctx context.Context, tipo string) ([]models.Ubicacion, error) {
	rows, err := dao.DB.QueryContext(ctx, `
		SELECT id, tipo, nombre
		FROM ubicaciones_config
		WHERE tipo = $1
		ORDER BY nombre ASC
	`, tipo)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"tipo":  tipo,
			"error": err.Error(),
		}).Error("Failed to query locations by type")
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	var ubicaciones []models.Ubicacion
	for rows.Next() {
		var u models.Ubicacion
		if err := rows.Scan(&u.ID, &u.Tipo, &u.Nombre); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		ubicaciones = append(ubicaciones, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locations: %w", err)
	}
	return ubicaciones, nil
}

func (dao *UbicacionDao) Add(ctx context.Context, tipo, nombre string) error {
	_, err := dao.DB.ExecContext(ctx,
		`INSERT INTO ubicaciones_config (tipo, nombre) VALUES ($1, $2)`, tipo, nombre)
	if err != nil {
		if mapped := mapError(err); mapped == ErrDuplicate {
			return ErrDuplicate
		}
		dao.Logger.WithFields(logrus.Fields{
			"tipo":   tipo,
			"nombre": nombre,
			"error":  err.Error(),
		}).Error("Failed to add location")
		return fmt.Errorf("failed to add location: %w", err)
	}

	dao.Logger.WithFields(logrus.Fields{
		"tipo":   tipo,
		"nombre": nombre,
	}).Info("Successfully added location")
	return nil
}

func (dao *UbicacionDao) Rename(ctx context.Context, id int64, nombre string) error {
	result, err := dao.DB.ExecContext(ctx,
		`UPDATE ubicaciones_config SET nombre = $1 WHERE id = $2`, nombre, id)
	if err != nil {
		if mapped := mapError(err); mapped == ErrDuplicate {
			return ErrDuplicate
		}
		dao.Logger.WithFields(logrus.Fields{
			"ubicacion_id": id,
			"error":        err.Error(),
		}).Error("Failed to rename location")
		return fmt.Errorf("failed to rename location: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (dao *UbicacionDao) Delete(ctx context.Context, id int64) error {
	result, err := dao.DB.ExecContext(ctx,
		`DELETE FROM ubicaciones_config WHERE id = $1`, id)
	if err != nil {
		if mapped := mapError(err); mapped == ErrInUse {
			return ErrInUse
		}
		dao.Logger.WithFields(logrus.Fields{
			"ubicacion_id": id,
			"error":        err.Error(),
		}).Error("Failed to delete location")
		return fmt.Errorf("failed to delete location: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	dao.Logger.WithField("ubicacion_id", id).Info("Successfully deleted location")
	return nil
}
