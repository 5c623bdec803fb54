package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"obrabot/lib/constants"
	"obrabot/lib/models"

	"github.com/sirupsen/logrus"
)

// AvanceRepository defines the interface for work-progress data operations
type AvanceRepository interface {
	// Create inserts a new avance. The ubicacion_completa string is split
	// into its level columns in canonical hierarchy order (Edificio /
	// Planta / Zona / Trabajo); a malformed path is rejected.
	Create(ctx context.Context, avance *models.Avance) (int64, error)

	// GetFinalizadosPaginated returns one page of finished avances ordered
	// by work date descending, plus the total page count.
	GetFinalizadosPaginated(ctx context.Context, page, perPage int) ([]models.AvanceResumen, int, error)

	// GetByID retrieves a single avance with the encargado name joined in.
	GetByID(ctx context.Context, avanceID int64) (*models.Avance, error)

	// GetForReport returns avances matching the location prefix and
	// optional date range, newest first.
	GetForReport(ctx context.Context, filter models.AvanceReportFilter) ([]models.Avance, error)

	// GetFotoPath returns the stored photo path of an avance, empty when
	// no photo was attached.
	GetFotoPath(ctx context.Context, avanceID int64) (string, error)
}

// AvanceDao implements AvanceRepository using PostgreSQL
type AvanceDao struct {
	DB     *sql.DB
	Logger *logrus.Logger
}

func (dao *AvanceDao) Create(ctx context.Context, avance *models.Avance) (int64, error) {
	parts := strings.Split(avance.UbicacionCompleta, constants.PathSeparator)
	if len(parts) != 4 {
		return 0, fmt.Errorf("malformed location path %q: expected Edificio / Planta / Zona / Trabajo", avance.UbicacionCompleta)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var avanceID int64
	err := dao.DB.QueryRowContext(ctx, `
		INSERT INTO avances (
			encargado_id, ubicacion_edificio, ubicacion_planta, ubicacion_zona,
			ubicacion_trabajo, ubicacion_completa, trabajo, foto_path, estado,
			fecha_registro, fecha_trabajo
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), $10)
		RETURNING id
	`, avance.EncargadoID, parts[0], parts[1], parts[2], parts[3],
		avance.UbicacionCompleta, avance.Trabajo, nullString(avance.FotoPath),
		avance.Estado, avance.FechaTrabajo).Scan(&avanceID)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"encargado_id": avance.EncargadoID,
			"ubicacion":    avance.UbicacionCompleta,
			"error":        err.Error(),
		}).Error("Failed to create avance")
		return 0, fmt.Errorf("failed to create avance: %w", err)
	}

	dao.Logger.WithFields(logrus.Fields{
		"avance_id":    avanceID,
		"encargado_id": avance.EncargadoID,
		"ubicacion":    avance.UbicacionCompleta,
	}).Info("Successfully created avance")
	return avanceID, nil
}

func (dao *AvanceDao) GetFinalizadosPaginated(ctx context.Context, page, perPage int) ([]models.AvanceResumen, int, error) {
	offset := page * perPage
	rows, err := dao.DB.QueryContext(ctx, `
		SELECT id, trabajo, ubicacion_completa, fecha_trabajo
		FROM avances
		WHERE estado = $1
		ORDER BY fecha_trabajo DESC, id DESC
		LIMIT $2 OFFSET $3
	`, constants.AvanceFinalizado, perPage, offset)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"page":  page,
			"error": err.Error(),
		}).Error("Failed to query finished avances")
		return nil, 0, fmt.Errorf("failed to query finished avances: %w", err)
	}
	defer rows.Close()

	var avances []models.AvanceResumen
	for rows.Next() {
		var a models.AvanceResumen
		if err := rows.Scan(&a.ID, &a.Trabajo, &a.UbicacionCompleta, &a.FechaTrabajo); err != nil {
			return nil, 0, fmt.Errorf("failed to scan avance: %w", err)
		}
		avances = append(avances, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating avances: %w", err)
	}

	var total int
	err = dao.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM avances WHERE estado = $1`, constants.AvanceFinalizado).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count finished avances: %w", err)
	}

	return avances, totalPages(total, perPage), nil
}

func (dao *AvanceDao) GetByID(ctx context.Context, avanceID int64) (*models.Avance, error) {
	var a models.Avance
	var fotoPath sql.NullString
	err := dao.DB.QueryRowContext(ctx, `
		SELECT a.id, a.ubicacion_completa, a.trabajo, a.foto_path,
		       a.estado, a.fecha_trabajo, a.encargado_id, u.first_name
		FROM avances a
		JOIN usuarios u ON a.encargado_id = u.user_id
		WHERE a.id = $1
	`, avanceID).Scan(&a.ID, &a.UbicacionCompleta, &a.Trabajo, &fotoPath,
		&a.Estado, &a.FechaTrabajo, &a.EncargadoID, &a.EncargadoName)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		dao.Logger.WithFields(logrus.Fields{
			"avance_id": avanceID,
			"error":     err.Error(),
		}).Error("Failed to get avance")
		return nil, fmt.Errorf("failed to get avance: %w", err)
	}
	a.FotoPath = fotoPath.String
	return &a, nil
}

func (dao *AvanceDao) GetForReport(ctx context.Context, filter models.AvanceReportFilter) ([]models.Avance, error) {
	var f Filter

	// Location levels combine into a single LIKE prefix, stopping at the
	// first unset level so deeper values cannot skip an intermediate one.
	var prefixParts []string
	for _, level := range []string{filter.Edificio, filter.Planta, filter.Zona, filter.Trabajo} {
		if level == "" {
			break
		}
		prefixParts = append(prefixParts, level)
	}
	if len(prefixParts) > 0 {
		f.LikePrefix("a.ubicacion_completa", strings.Join(prefixParts, constants.PathSeparator))
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		f.Between("a.fecha_trabajo", *filter.StartDate, *filter.EndDate)
	}

	query := `
		SELECT a.id, a.ubicacion_completa, a.trabajo, a.estado, a.fecha_trabajo,
		       u.first_name, u.username
		FROM avances a
		JOIN usuarios u ON a.encargado_id = u.user_id` +
		f.Where() + `
		ORDER BY a.fecha_trabajo DESC, a.id DESC`

	rows, err := dao.DB.QueryContext(ctx, query, f.Args()...)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to query avances for report")
		return nil, fmt.Errorf("failed to query avances for report: %w", err)
	}
	defer rows.Close()

	var avances []models.Avance
	for rows.Next() {
		var a models.Avance
		var username sql.NullString
		if err := rows.Scan(&a.ID, &a.UbicacionCompleta, &a.Trabajo, &a.Estado,
			&a.FechaTrabajo, &a.EncargadoName, &username); err != nil {
			return nil, fmt.Errorf("failed to scan avance: %w", err)
		}
		a.EncargadoUsername = username.String
		avances = append(avances, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating avances: %w", err)
	}

	dao.Logger.WithField("count", len(avances)).Debug("Retrieved avances for report")
	return avances, nil
}

func (dao *AvanceDao) GetFotoPath(ctx context.Context, avanceID int64) (string, error) {
	var fotoPath sql.NullString
	err := dao.DB.QueryRowContext(ctx,
		`SELECT foto_path FROM avances WHERE id = $1`, avanceID).Scan(&fotoPath)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get avance photo path: %w", err)
	}
	return fotoPath.String, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
