package data

import (
	"context"
	"database/sql"
	"fmt"

	"obrabot/lib/constants"
	"obrabot/lib/models"

	"github.com/sirupsen/logrus"
)

// IncidenciaRepository defines the interface for incident data operations.
// Avance-linked reports and tool faults share the incidencias table.
type IncidenciaRepository interface {
	// CreateForAvance registers an incident against an existing avance.
	CreateForAvance(ctx context.Context, avanceID, reportaID int64, descripcion string) (int64, error)

	// CreateForTool registers a tool fault with an optional photo.
	CreateForTool(ctx context.Context, reportaID, itemID int64, descripcion, fotoPath string) (int64, error)

	// GetByEstado lists incidents in any of the given states with reporter,
	// resolver, avance and item names joined in, newest first.
	GetByEstado(ctx context.Context, estados []string) ([]models.Incidencia, error)

	// GetByID returns the ownership fields of an incident.
	GetByID(ctx context.Context, incidenciaID int64) (*models.Incidencia, error)

	// Resolve marks an incident resolved with the technician's description.
	Resolve(ctx context.Context, incidenciaID, resolutorID int64, resolucionDesc string) error

	// GetFotoPath returns an incident's photo path, empty when absent.
	GetFotoPath(ctx context.Context, incidenciaID int64) (string, error)

	// AddComentario stores a follow-up comment on an incident.
	AddComentario(ctx context.Context, incidenciaID, usuarioID int64, comentario string) error

	// GetToolIncidencias lists tool faults in the given states with the
	// tool name joined in, newest first.
	GetToolIncidencias(ctx context.Context, estados []string) ([]models.Incidencia, error)

	// GetToolIncidenciaDetails returns the full detail view of a tool fault.
	GetToolIncidenciaDetails(ctx context.Context, incidenciaID int64) (*models.Incidencia, error)
}

// IncidenciaDao implements IncidenciaRepository using PostgreSQL
type IncidenciaDao struct {
	DB     *sql.DB
	Logger *logrus.Logger
}

func (dao *IncidenciaDao) CreateForAvance(ctx context.Context, avanceID, reportaID int64, descripcion string) (int64, error) {
	var id int64
	err := dao.DB.QueryRowContext(ctx, `
		INSERT INTO incidencias (avance_id, descripcion, estado, fecha_reporte, reporta_id)
		VALUES ($1, $2, $3, NOW(), $4)
		RETURNING id
	`, avanceID, descripcion, constants.IncidenciaPendiente, reportaID).Scan(&id)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"avance_id":  avanceID,
			"reporta_id": reportaID,
			"error":      err.Error(),
		}).Error("Failed to create avance incidencia")
		return 0, fmt.Errorf("failed to create incidencia: %w", err)
	}

	dao.Logger.WithFields(logrus.Fields{
		"incidencia_id": id,
		"avance_id":     avanceID,
	}).Info("Successfully created avance incidencia")
	return id, nil
}

func (dao *IncidenciaDao) CreateForTool(ctx context.Context, reportaID, itemID int64, descripcion, fotoPath string) (int64, error) {
	var id int64
	err := dao.DB.QueryRowContext(ctx, `
		INSERT INTO incidencias (reporta_id, item_id, descripcion, foto_path, estado, fecha_reporte)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id
	`, reportaID, itemID, descripcion, nullString(fotoPath), constants.IncidenciaPendiente).Scan(&id)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"reporta_id": reportaID,
			"item_id":    itemID,
			"error":      err.Error(),
		}).Error("Failed to create tool incidencia")
		return 0, fmt.Errorf("failed to create tool incidencia: %w", err)
	}

	dao.Logger.WithFields(logrus.Fields{
		"incidencia_id": id,
		"item_id":       itemID,
	}).Info("Successfully created tool incidencia")
	return id, nil
}

func (dao *IncidenciaDao) GetByEstado(ctx context.Context, estados []string) ([]models.Incidencia, error) {
	var f Filter
	f.AnyOf("i.estado", estados)

	rows, err := dao.DB.QueryContext(ctx, `
		SELECT i.id, i.descripcion, i.foto_path,
		       reporter.first_name AS reporter_name,
		       resolver.first_name AS resolver_name,
		       a.ubicacion_completa AS avance_ubicacion,
		       item.nombre AS item_name,
		       i.resolucion_desc, i.fecha_reporte
		FROM incidencias i
		JOIN usuarios reporter ON i.reporta_id = reporter.user_id
		LEFT JOIN avances a ON i.avance_id = a.id
		LEFT JOIN almacen_items item ON i.item_id = item.id
		LEFT JOIN usuarios resolver ON i.tecnico_resolutor_id = resolver.user_id`+
		f.Where()+`
		ORDER BY i.fecha_reporte DESC
	`, f.Args()...)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"estados": estados,
			"error":   err.Error(),
		}).Error("Failed to query incidencias")
		return nil, fmt.Errorf("failed to query incidencias: %w", err)
	}
	defer rows.Close()

	var incidencias []models.Incidencia
	for rows.Next() {
		var inc models.Incidencia
		var fotoPath, resolverName, avanceUbicacion, itemName, resolucion sql.NullString
		if err := rows.Scan(&inc.ID, &inc.Descripcion, &fotoPath, &inc.ReporterName,
			&resolverName, &avanceUbicacion, &itemName, &resolucion, &inc.FechaReporte); err != nil {
			return nil, fmt.Errorf("failed to scan incidencia: %w", err)
		}
		inc.FotoPath = fotoPath.String
		inc.ResolverName = resolverName.String
		inc.AvanceUbicacion = avanceUbicacion.String
		inc.ItemName = itemName.String
		inc.ResolucionDesc = resolucion.String
		incidencias = append(incidencias, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating incidencias: %w", err)
	}
	return incidencias, nil
}

func (dao *IncidenciaDao) GetByID(ctx context.Context, incidenciaID int64) (*models.Incidencia, error) {
	var inc models.Incidencia
	var avanceID sql.NullInt64
	err := dao.DB.QueryRowContext(ctx, `
		SELECT i.id, i.reporta_id, i.avance_id
		FROM incidencias i
		WHERE i.id = $1
	`, incidenciaID).Scan(&inc.ID, &inc.ReportaID, &avanceID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get incidencia: %w", err)
	}
	if avanceID.Valid {
		inc.AvanceID = &avanceID.Int64
	}
	return &inc, nil
}

func (dao *IncidenciaDao) Resolve(ctx context.Context, incidenciaID, resolutorID int64, resolucionDesc string) error {
	result, err := dao.DB.ExecContext(ctx, `
		UPDATE incidencias
		SET estado = $1, tecnico_resolutor_id = $2, resolucion_desc = $3, fecha_resolucion = NOW()
		WHERE id = $4
	`, constants.IncidenciaResuelta, resolutorID, resolucionDesc, incidenciaID)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"incidencia_id": incidenciaID,
			"error":         err.Error(),
		}).Error("Failed to resolve incidencia")
		return fmt.Errorf("failed to resolve incidencia: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	dao.Logger.WithFields(logrus.Fields{
		"incidencia_id": incidenciaID,
		"resolutor_id":  resolutorID,
	}).Info("Successfully resolved incidencia")
	return nil
}

func (dao *IncidenciaDao) GetFotoPath(ctx context.Context, incidenciaID int64) (string, error) {
	var fotoPath sql.NullString
	err := dao.DB.QueryRowContext(ctx,
		`SELECT foto_path FROM incidencias WHERE id = $1`, incidenciaID).Scan(&fotoPath)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get incidencia photo path: %w", err)
	}
	return fotoPath.String, nil
}

func (dao *IncidenciaDao) AddComentario(ctx context.Context, incidenciaID, usuarioID int64, comentario string) error {
	_, err := dao.DB.ExecContext(ctx, `
		INSERT INTO incidencia_comentarios (incidencia_id, usuario_id, comentario)
		VALUES ($1, $2, $3)
	`, incidenciaID, usuarioID, comentario)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"incidencia_id": incidenciaID,
			"usuario_id":    usuarioID,
			"error":         err.Error(),
		}).Error("Failed to add incidencia comment")
		return fmt.Errorf("failed to add incidencia comment: %w", err)
	}
	return nil
}

func (dao *IncidenciaDao) GetToolIncidencias(ctx context.Context, estados []string) ([]models.Incidencia, error) {
	var f Filter
	f.AnyOf("i.estado", estados)

	rows, err := dao.DB.QueryContext(ctx, `
		SELECT i.id, i.descripcion, i.fecha_reporte, item.nombre AS item_name
		FROM incidencias i
		JOIN almacen_items item ON i.item_id = item.id`+
		f.Where()+` AND i.item_id IS NOT NULL
		ORDER BY i.fecha_reporte DESC
	`, f.Args()...)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to query tool incidencias")
		return nil, fmt.Errorf("failed to query tool incidencias: %w", err)
	}
	defer rows.Close()

	var incidencias []models.Incidencia
	for rows.Next() {
		var inc models.Incidencia
		if err := rows.Scan(&inc.ID, &inc.Descripcion, &inc.FechaReporte, &inc.ItemName); err != nil {
			return nil, fmt.Errorf("failed to scan tool incidencia: %w", err)
		}
		incidencias = append(incidencias, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tool incidencias: %w", err)
	}
	return incidencias, nil
}

func (dao *IncidenciaDao) GetToolIncidenciaDetails(ctx context.Context, incidenciaID int64) (*models.Incidencia, error) {
	var inc models.Incidencia
	var resolucion, resolverName, fotoPath sql.NullString
	var fechaResolucion sql.NullTime
	err := dao.DB.QueryRowContext(ctx, `
		SELECT i.id, i.descripcion, i.estado, i.fecha_reporte, i.resolucion_desc,
		       i.fecha_resolucion,
		       reporter.first_name AS reporter_name,
		       resolver.first_name AS resolver_name,
		       item.nombre AS item_name,
		       i.foto_path
		FROM incidencias i
		JOIN usuarios reporter ON i.reporta_id = reporter.user_id
		JOIN almacen_items item ON i.item_id = item.id
		LEFT JOIN usuarios resolver ON i.tecnico_resolutor_id = resolver.user_id
		WHERE i.id = $1
	`, incidenciaID).Scan(&inc.ID, &inc.Descripcion, &inc.Estado, &inc.FechaReporte,
		&resolucion, &fechaResolucion, &inc.ReporterName, &resolverName,
		&inc.ItemName, &fotoPath)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		dao.Logger.WithError(err).Error("Failed to get tool incidencia details")
		return nil, fmt.Errorf("failed to get tool incidencia details: %w", err)
	}
	inc.ResolucionDesc = resolucion.String
	inc.ResolverName = resolverName.String
	inc.FotoPath = fotoPath.String
	if fechaResolucion.Valid {
		inc.FechaResolucion = &fechaResolucion.Time
	}
	return &inc, nil
}
