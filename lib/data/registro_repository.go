package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"obrabot/lib/models"

	"github.com/sirupsen/logrus"
)

// RegistroRepository defines the interface for daily headcount data
type RegistroRepository interface {
	// Upsert stores the headcount for a date, replacing any earlier record
	// for the same day.
	Upsert(ctx context.Context, registro *models.RegistroPersonal) error

	// ExistsForToday reports whether today's registro has been filed.
	ExistsForToday(ctx context.Context) (bool, error)

	// GetForRange lists registros inside a date range, oldest first, with
	// the registering user's name joined in.
	GetForRange(ctx context.Context, start, end time.Time) ([]models.RegistroPersonal, error)
}

// RegistroDao implements RegistroRepository using PostgreSQL
type RegistroDao struct {
	DB     *sql.DB
	Logger *logrus.Logger
}

func (dao *RegistroDao) Upsert(ctx context.Context, registro *models.RegistroPersonal) error {
	_, err := dao.DB.ExecContext(ctx, `
		INSERT INTO registros_personal (fecha, en_obra, faltas, bajas, registrado_por_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (fecha) DO UPDATE SET
			en_obra = EXCLUDED.en_obra,
			faltas = EXCLUDED.faltas,
			bajas = EXCLUDED.bajas,
			registrado_por_id = EXCLUDED.registrado_por_id,
			fecha_registro = NOW()
	`, registro.Fecha, registro.EnObra, registro.Faltas, registro.Bajas, registro.RegistradoPorID)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"fecha": registro.Fecha.Format("2006-01-02"),
			"error": err.Error(),
		}).Error("Failed to upsert registro de personal")
		return fmt.Errorf("failed to upsert registro: %w", err)
	}

	dao.Logger.WithFields(logrus.Fields{
		"fecha":   registro.Fecha.Format("2006-01-02"),
		"en_obra": registro.EnObra,
		"faltas":  registro.Faltas,
		"bajas":   registro.Bajas,
	}).Info("Successfully upserted registro de personal")
	return nil
}

func (dao *RegistroDao) ExistsForToday(ctx context.Context) (bool, error) {
	var id int64
	err := dao.DB.QueryRowContext(ctx,
		`SELECT id FROM registros_personal WHERE fecha = CURRENT_DATE`).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to check today's registro")
		return false, fmt.Errorf("failed to check today's registro: %w", err)
	}
	return true, nil
}

func (dao *RegistroDao) GetForRange(ctx context.Context, start, end time.Time) ([]models.RegistroPersonal, error) {
	rows, err := dao.DB.QueryContext(ctx, `
		SELECT r.fecha, r.en_obra, r.faltas, r.bajas, u.first_name
		FROM registros_personal r
		JOIN usuarios u ON r.registrado_por_id = u.user_id
		WHERE r.fecha BETWEEN $1 AND $2
		ORDER BY r.fecha ASC
	`, start, end)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to query registros de personal")
		return nil, fmt.Errorf("failed to query registros: %w", err)
	}
	defer rows.Close()

	var registros []models.RegistroPersonal
	for rows.Next() {
		var r models.RegistroPersonal
		if err := rows.Scan(&r.Fecha, &r.EnObra, &r.Faltas, &r.Bajas, &r.RegistradoPor); err != nil {
			return nil, fmt.Errorf("failed to scan registro: %w", err)
		}
		registros = append(registros, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registros: %w", err)
	}
	return registros, nil
}
