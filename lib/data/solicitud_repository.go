package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"obrabot/lib/constants"
	"obrabot/lib/models"

	"github.com/sirupsen/logrus"
)

// SolicitudRepository defines the interface for staffing request data
type SolicitudRepository interface {
	// Create inserts a solicitud with its puesto items in one transaction.
	Create(ctx context.Context, solicitanteID int64, puestos []models.SolicitudItem, fecha time.Time, notas string) (int64, error)

	// GetBySolicitante lists the requests of one user, newest first, with
	// the puestos aggregated into a summary string.
	GetBySolicitante(ctx context.Context, solicitanteID int64) ([]models.SolicitudPersonal, error)

	// GetByEstado lists requests in any of the given states, oldest first.
	GetByEstado(ctx context.Context, estados []string) ([]models.SolicitudPersonal, error)

	// GetByID returns a request with puestos and RRHH note history.
	GetByID(ctx context.Context, solicitudID int64) (*models.SolicitudPersonal, error)

	// UpdateStatus transitions a request, recording the deciding técnico or
	// gerente when the role matches.
	UpdateStatus(ctx context.Context, solicitudID, userID int64, estado, notas, rolUsuario string) error

	// AddRRHHNote stores a follow-up note and moves the request to
	// En Busqueda, atomically.
	AddRRHHNote(ctx context.Context, solicitudID, rrhhID int64, nota string) error
}

// SolicitudDao implements SolicitudRepository using PostgreSQL
type SolicitudDao struct {
	DB     *sql.DB
	Logger *logrus.Logger
}

func (dao *SolicitudDao) Create(ctx context.Context, solicitanteID int64, puestos []models.SolicitudItem, fecha time.Time, notas string) (int64, error) {
	tx, err := dao.DB.BeginTx(ctx, nil)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to start transaction for solicitud creation")
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var solicitudID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO solicitudes_personal (solicitante_id, fecha_incorporacion, notas_solicitud, estado)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, solicitanteID, fecha, notas, constants.SolicitudPendiente).Scan(&solicitudID)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"solicitante_id": solicitanteID,
			"error":          err.Error(),
		}).Error("Failed to create solicitud")
		return 0, fmt.Errorf("failed to create solicitud: %w", err)
	}

	for _, item := range puestos {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO solicitud_personal_items (solicitud_id, puesto, cantidad)
			VALUES ($1, $2, $3)
		`, solicitudID, item.Puesto, item.Cantidad)
		if err != nil {
			return 0, fmt.Errorf("failed to add puesto to solicitud: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	dao.Logger.WithFields(logrus.Fields{
		"solicitud_id":   solicitudID,
		"solicitante_id": solicitanteID,
		"puestos":        len(puestos),
	}).Info("Successfully created solicitud de personal")
	return solicitudID, nil
}

func (dao *SolicitudDao) GetBySolicitante(ctx context.Context, solicitanteID int64) ([]models.SolicitudPersonal, error) {
	rows, err := dao.DB.QueryContext(ctx, `
		SELECT s.id, s.fecha_incorporacion, s.estado,
		       STRING_AGG(spi.cantidad || 'x ' || spi.puesto, ', ') AS puestos_agregados
		FROM solicitudes_personal s
		JOIN solicitud_personal_items spi ON s.id = spi.solicitud_id
		WHERE s.solicitante_id = $1
		GROUP BY s.id, s.fecha_incorporacion, s.estado, s.fecha_solicitud
		ORDER BY s.fecha_solicitud DESC
	`, solicitanteID)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"solicitante_id": solicitanteID,
			"error":          err.Error(),
		}).Error("Failed to query solicitudes by solicitante")
		return nil, fmt.Errorf("failed to query solicitudes: %w", err)
	}
	defer rows.Close()

	var solicitudes []models.SolicitudPersonal
	for rows.Next() {
		var s models.SolicitudPersonal
		if err := rows.Scan(&s.ID, &s.FechaIncorporacion, &s.Estado, &s.PuestosResumen); err != nil {
			return nil, fmt.Errorf("failed to scan solicitud: %w", err)
		}
		solicitudes = append(solicitudes, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating solicitudes: %w", err)
	}
	return solicitudes, nil
}

func (dao *SolicitudDao) GetByEstado(ctx context.Context, estados []string) ([]models.SolicitudPersonal, error) {
	var f Filter
	f.AnyOf("s.estado", estados)

	rows, err := dao.DB.QueryContext(ctx, `
		SELECT s.id, u.first_name,
		       STRING_AGG(spi.cantidad || 'x ' || spi.puesto, ', ') AS puestos_agregados
		FROM solicitudes_personal s
		JOIN usuarios u ON s.solicitante_id = u.user_id
		JOIN solicitud_personal_items spi ON s.id = spi.solicitud_id`+
		f.Where()+`
		GROUP BY s.id, u.first_name, s.fecha_solicitud
		ORDER BY s.fecha_solicitud ASC
	`, f.Args()...)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"estados": estados,
			"error":   err.Error(),
		}).Error("Failed to query solicitudes by estado")
		return nil, fmt.Errorf("failed to query solicitudes: %w", err)
	}
	defer rows.Close()

	var solicitudes []models.SolicitudPersonal
	for rows.Next() {
		var s models.SolicitudPersonal
		if err := rows.Scan(&s.ID, &s.SolicitanteName, &s.PuestosResumen); err != nil {
			return nil, fmt.Errorf("failed to scan solicitud: %w", err)
		}
		solicitudes = append(solicitudes, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating solicitudes: %w", err)
	}
	return solicitudes, nil
}

func (dao *SolicitudDao) GetByID(ctx context.Context, solicitudID int64) (*models.SolicitudPersonal, error) {
	var s models.SolicitudPersonal
	var notasSolicitud, notasDecision, tecnicoName, gerenteName sql.NullString
	var tecnicoID sql.NullInt64
	err := dao.DB.QueryRowContext(ctx, `
		SELECT s.id, s.fecha_incorporacion, s.estado, s.notas_solicitud, s.notas_decision,
		       u_solicitante.first_name, u_tecnico.first_name, u_gerente.first_name,
		       s.solicitante_id, s.tecnico_id
		FROM solicitudes_personal s
		JOIN usuarios u_solicitante ON s.solicitante_id = u_solicitante.user_id
		LEFT JOIN usuarios u_tecnico ON s.tecnico_id = u_tecnico.user_id
		LEFT JOIN usuarios u_gerente ON s.gerente_id = u_gerente.user_id
		WHERE s.id = $1
	`, solicitudID).Scan(&s.ID, &s.FechaIncorporacion, &s.Estado, &notasSolicitud,
		&notasDecision, &s.SolicitanteName, &tecnicoName, &gerenteName,
		&s.SolicitanteID, &tecnicoID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		dao.Logger.WithFields(logrus.Fields{
			"solicitud_id": solicitudID,
			"error":        err.Error(),
		}).Error("Failed to get solicitud")
		return nil, fmt.Errorf("failed to get solicitud: %w", err)
	}
	s.NotasSolicitud = notasSolicitud.String
	s.NotasDecision = notasDecision.String
	s.TecnicoName = tecnicoName.String
	s.GerenteName = gerenteName.String
	if tecnicoID.Valid {
		s.TecnicoID = &tecnicoID.Int64
	}

	itemRows, err := dao.DB.QueryContext(ctx, `
		SELECT puesto, cantidad
		FROM solicitud_personal_items
		WHERE solicitud_id = $1
		ORDER BY id
	`, solicitudID)
	if err != nil {
		return nil, fmt.Errorf("failed to query solicitud puestos: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.SolicitudItem
		if err := itemRows.Scan(&item.Puesto, &item.Cantidad); err != nil {
			return nil, fmt.Errorf("failed to scan puesto: %w", err)
		}
		s.Puestos = append(s.Puestos, item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating puestos: %w", err)
	}

	noteRows, err := dao.DB.QueryContext(ctx, `
		SELECT n.nota, n.fecha_nota, u.first_name
		FROM solicitud_personal_notas n
		JOIN usuarios u ON n.rrhh_id = u.user_id
		WHERE n.solicitud_id = $1
		ORDER BY n.fecha_nota ASC
	`, solicitudID)
	if err != nil {
		return nil, fmt.Errorf("failed to query solicitud notes: %w", err)
	}
	defer noteRows.Close()

	for noteRows.Next() {
		var nota models.SolicitudNota
		if err := noteRows.Scan(&nota.Nota, &nota.FechaNota, &nota.AutorName); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		s.NotasRRHH = append(s.NotasRRHH, nota)
	}
	if err := noteRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}

	return &s, nil
}

func (dao *SolicitudDao) UpdateStatus(ctx context.Context, solicitudID, userID int64, estado, notas, rolUsuario string) error {
	var result sql.Result
	var err error

	// Técnico and gerente decisions are attributed to their own column;
	// other callers only move the state.
	switch rolUsuario {
	case constants.RoleTecnico:
		result, err = dao.DB.ExecContext(ctx, `
			UPDATE solicitudes_personal
			SET estado = $1, tecnico_id = $2, notas_decision = $3, fecha_decision = NOW()
			WHERE id = $4
		`, estado, userID, notas, solicitudID)
	case constants.RoleGerente:
		result, err = dao.DB.ExecContext(ctx, `
			UPDATE solicitudes_personal
			SET estado = $1, gerente_id = $2, notas_decision = $3, fecha_decision = NOW()
			WHERE id = $4
		`, estado, userID, notas, solicitudID)
	default:
		result, err = dao.DB.ExecContext(ctx, `
			UPDATE solicitudes_personal
			SET estado = $1, notas_decision = $2, fecha_decision = NOW()
			WHERE id = $3
		`, estado, notas, solicitudID)
	}
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"solicitud_id": solicitudID,
			"estado":       estado,
			"error":        err.Error(),
		}).Error("Failed to update solicitud status")
		return fmt.Errorf("failed to update solicitud status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	dao.Logger.WithFields(logrus.Fields{
		"solicitud_id": solicitudID,
		"estado":       estado,
		"user_id":      userID,
	}).Info("Successfully updated solicitud status")
	return nil
}

func (dao *SolicitudDao) AddRRHHNote(ctx context.Context, solicitudID, rrhhID int64, nota string) error {
	tx, err := dao.DB.BeginTx(ctx, nil)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to start transaction for RRHH note")
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO solicitud_personal_notas (solicitud_id, rrhh_id, nota)
		VALUES ($1, $2, $3)
	`, solicitudID, rrhhID, nota)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"solicitud_id": solicitudID,
			"error":        err.Error(),
		}).Error("Failed to add RRHH note")
		return fmt.Errorf("failed to add RRHH note: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE solicitudes_personal SET estado = $1 WHERE id = $2
	`, constants.SolicitudEnBusqueda, solicitudID)
	if err != nil {
		return fmt.Errorf("failed to update solicitud state: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
