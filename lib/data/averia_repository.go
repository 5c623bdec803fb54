package data

import (
	"context"
	"database/sql"
	"fmt"

	"obrabot/lib/constants"
	"obrabot/lib/models"

	"github.com/sirupsen/logrus"
)

// AveriaRepository defines the interface for machine breakdown data
type AveriaRepository interface {
	// Create registers a machine breakdown with an optional photo.
	Create(ctx context.Context, reportaID int64, maquina, descripcion, fotoPath string) (int64, error)

	// GetByEstado lists breakdowns in any of the given states, newest first.
	GetByEstado(ctx context.Context, estados []string) ([]models.Averia, error)

	// Resolve marks a breakdown repaired.
	Resolve(ctx context.Context, averiaID, resolutorID int64) error
}

// AveriaDao implements AveriaRepository using PostgreSQL
type AveriaDao struct {
	DB     *sql.DB
	Logger *logrus.Logger
}

func (dao *AveriaDao) Create(ctx context.Context, reportaID int64, maquina, descripcion, fotoPath string) (int64, error) {
	var id int64
	err := dao.DB.QueryRowContext(ctx, `
		INSERT INTO averias (reporta_id, maquina, descripcion, foto_path, estado, fecha_reporte)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id
	`, reportaID, maquina, descripcion, nullString(fotoPath), constants.IncidenciaPendiente).Scan(&id)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"reporta_id": reportaID,
			"maquina":    maquina,
			"error":      err.Error(),
		}).Error("Failed to create averia")
		return 0, fmt.Errorf("failed to create averia: %w", err)
	}

	dao.Logger.WithFields(logrus.Fields{
		"averia_id": id,
		"maquina":   maquina,
	}).Info("Successfully created averia")
	return id, nil
}

func (dao *AveriaDao) GetByEstado(ctx context.Context, estados []string) ([]models.Averia, error) {
	var f Filter
	f.AnyOf("estado", estados)

	rows, err := dao.DB.QueryContext(ctx, `
		SELECT id, maquina, fecha_reporte
		FROM averias`+
		f.Where()+`
		ORDER BY fecha_reporte DESC
	`, f.Args()...)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to query averias")
		return nil, fmt.Errorf("failed to query averias: %w", err)
	}
	defer rows.Close()

	var averias []models.Averia
	for rows.Next() {
		var a models.Averia
		if err := rows.Scan(&a.ID, &a.Maquina, &a.FechaReporte); err != nil {
			return nil, fmt.Errorf("failed to scan averia: %w", err)
		}
		averias = append(averias, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating averias: %w", err)
	}
	return averias, nil
}

func (dao *AveriaDao) Resolve(ctx context.Context, averiaID, resolutorID int64) error {
	result, err := dao.DB.ExecContext(ctx, `
		UPDATE averias
		SET estado = $1, resolutor_id = $2, fecha_resolucion = NOW()
		WHERE id = $3
	`, constants.IncidenciaResuelta, resolutorID, averiaID)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"averia_id": averiaID,
			"error":     err.Error(),
		}).Error("Failed to resolve averia")
		return fmt.Errorf("failed to resolve averia: %w", err)
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
