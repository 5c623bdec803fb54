package data

import (
	"context"
	"database/sql"
	"fmt"

	"obrabot/lib/constants"
	"obrabot/lib/models"

	"github.com/sirupsen/logrus"
)

// PrevencionRepository defines the interface for safety incident data
type PrevencionRepository interface {
	// Create registers a new safety incident, state Abierta.
	Create(ctx context.Context, reportaID int64, ubicacion, descripcion, fotoPath string) (int64, error)

	// GetByEstado lists safety incidents in any of the given states,
	// newest first.
	GetByEstado(ctx context.Context, estados []string) ([]models.PrevencionIncidencia, error)

	// GetByReporter lists the incidents reported by one user, newest first.
	GetByReporter(ctx context.Context, reporterID int64) ([]models.PrevencionIncidencia, error)

	// GetByID returns the full detail view of a safety incident.
	GetByID(ctx context.Context, incidenciaID int64) (*models.PrevencionIncidencia, error)

	// AddComentario stores a comment and moves the incident to En Disputa,
	// atomically.
	AddComentario(ctx context.Context, incidenciaID, usuarioID int64, comentario string) error

	// Close marks the incident Cerrada, recording who closed it.
	Close(ctx context.Context, incidenciaID, userID int64) error
}

// PrevencionDao implements PrevencionRepository using PostgreSQL
type PrevencionDao struct {
	DB     *sql.DB
	Logger *logrus.Logger
}

func (dao *PrevencionDao) Create(ctx context.Context, reportaID int64, ubicacion, descripcion, fotoPath string) (int64, error) {
	var id int64
	err := dao.DB.QueryRowContext(ctx, `
		INSERT INTO prevencion_incidencias (reporta_id, ubicacion, descripcion, foto_path, estado)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, reportaID, ubicacion, descripcion, nullString(fotoPath), constants.PrevencionAbierta).Scan(&id)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"reporta_id": reportaID,
			"error":      err.Error(),
		}).Error("Failed to create prevencion incidencia")
		return 0, fmt.Errorf("failed to create prevencion incidencia: %w", err)
	}

	dao.Logger.WithFields(logrus.Fields{
		"incidencia_id": id,
		"reporta_id":    reportaID,
	}).Info("Successfully created prevencion incidencia")
	return id, nil
}

func (dao *PrevencionDao) GetByEstado(ctx context.Context, estados []string) ([]models.PrevencionIncidencia, error) {
	var f Filter
	f.AnyOf("pi.estado", estados)

	rows, err := dao.DB.QueryContext(ctx, `
		SELECT pi.id, pi.ubicacion, pi.descripcion, pi.estado, pi.fecha_reporte,
		       u.first_name, pi.foto_path IS NOT NULL AS has_foto
		FROM prevencion_incidencias pi
		JOIN usuarios u ON pi.reporta_id = u.user_id`+
		f.Where()+`
		ORDER BY pi.fecha_reporte DESC
	`, f.Args()...)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to query prevencion incidencias")
		return nil, fmt.Errorf("failed to query prevencion incidencias: %w", err)
	}
	defer rows.Close()

	var incidencias []models.PrevencionIncidencia
	for rows.Next() {
		var inc models.PrevencionIncidencia
		if err := rows.Scan(&inc.ID, &inc.Ubicacion, &inc.Descripcion, &inc.Estado,
			&inc.FechaReporte, &inc.ReporterName, &inc.HasFoto); err != nil {
			return nil, fmt.Errorf("failed to scan prevencion incidencia: %w", err)
		}
		incidencias = append(incidencias, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prevencion incidencias: %w", err)
	}
	return incidencias, nil
}

func (dao *PrevencionDao) GetByReporter(ctx context.Context, reporterID int64) ([]models.PrevencionIncidencia, error) {
	rows, err := dao.DB.QueryContext(ctx, `
		SELECT id, descripcion, estado, fecha_reporte
		FROM prevencion_incidencias
		WHERE reporta_id = $1
		ORDER BY fecha_reporte DESC
	`, reporterID)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"reporter_id": reporterID,
			"error":       err.Error(),
		}).Error("Failed to query prevencion incidencias by reporter")
		return nil, fmt.Errorf("failed to query prevencion incidencias by reporter: %w", err)
	}
	defer rows.Close()

	var incidencias []models.PrevencionIncidencia
	for rows.Next() {
		var inc models.PrevencionIncidencia
		if err := rows.Scan(&inc.ID, &inc.Descripcion, &inc.Estado, &inc.FechaReporte); err != nil {
			return nil, fmt.Errorf("failed to scan prevencion incidencia: %w", err)
		}
		incidencias = append(incidencias, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prevencion incidencias: %w", err)
	}
	return incidencias, nil
}

func (dao *PrevencionDao) GetByID(ctx context.Context, incidenciaID int64) (*models.PrevencionIncidencia, error) {
	var inc models.PrevencionIncidencia
	var fotoPath, resolutorName sql.NullString
	var fechaCierre sql.NullTime
	err := dao.DB.QueryRowContext(ctx, `
		SELECT pi.id, pi.ubicacion, pi.descripcion, pi.estado, pi.fecha_reporte,
		       pi.foto_path, pi.reporta_id,
		       u_cerrado.first_name AS resolutor_nombre, pi.fecha_cierre
		FROM prevencion_incidencias pi
		LEFT JOIN usuarios u_cerrado ON pi.cerrado_por_id = u_cerrado.user_id
		WHERE pi.id = $1
	`, incidenciaID).Scan(&inc.ID, &inc.Ubicacion, &inc.Descripcion, &inc.Estado,
		&inc.FechaReporte, &fotoPath, &inc.ReportaID, &resolutorName, &fechaCierre)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		dao.Logger.WithError(err).Error("Failed to get prevencion incidencia")
		return nil, fmt.Errorf("failed to get prevencion incidencia: %w", err)
	}
	inc.FotoPath = fotoPath.String
	inc.ResolutorName = resolutorName.String
	if fechaCierre.Valid {
		inc.FechaCierre = &fechaCierre.Time
	}
	return &inc, nil
}

func (dao *PrevencionDao) AddComentario(ctx context.Context, incidenciaID, usuarioID int64, comentario string) error {
	tx, err := dao.DB.BeginTx(ctx, nil)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to start transaction for prevencion comment")
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO prevencion_incidencia_comentarios (incidencia_id, usuario_id, comentario)
		VALUES ($1, $2, $3)
	`, incidenciaID, usuarioID, comentario)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"incidencia_id": incidenciaID,
			"error":         err.Error(),
		}).Error("Failed to add prevencion comment")
		return fmt.Errorf("failed to add prevencion comment: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE prevencion_incidencias SET estado = $1 WHERE id = $2
	`, constants.PrevencionEnDisputa, incidenciaID)
	if err != nil {
		return fmt.Errorf("failed to update prevencion state: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	dao.Logger.WithFields(logrus.Fields{
		"incidencia_id": incidenciaID,
		"usuario_id":    usuarioID,
	}).Info("Added prevencion comment and moved incidencia to dispute")
	return nil
}

func (dao *PrevencionDao) Close(ctx context.Context, incidenciaID, userID int64) error {
	result, err := dao.DB.ExecContext(ctx, `
		UPDATE prevencion_incidencias
		SET estado = $1, cerrado_por_id = $2, fecha_cierre = NOW()
		WHERE id = $3
	`, constants.PrevencionCerrada, userID, incidenciaID)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"incidencia_id": incidenciaID,
			"error":         err.Error(),
		}).Error("Failed to close prevencion incidencia")
		return fmt.Errorf("failed to close prevencion incidencia: %w", err)
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
		"user_id":       userID,
	}).Info("Successfully closed prevencion incidencia")
	return nil
}
