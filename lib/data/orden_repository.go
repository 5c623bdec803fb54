package data

import (
	"context"
	"database/sql"
	"fmt"

	"obrabot/lib/constants"
	"obrabot/lib/models"

	"github.com/sirupsen/logrus"
)

// OrdenRepository defines the interface for work order data operations
type OrdenRepository interface {
	// Create inserts a new orden de trabajo, state Pendiente.
	Create(ctx context.Context, creadorID int64, descripcion, fotoPath string) (int64, error)

	// GetByEstado lists ordenes in any of the given states with the
	// creator name joined in, oldest first.
	GetByEstado(ctx context.Context, estados []string) ([]models.OrdenTrabajo, error)

	// GetByID returns the full detail view of an orden.
	GetByID(ctx context.Context, ordenID int64) (*models.OrdenTrabajo, error)

	// Resolve marks an orden Realizada, recording who resolved it.
	Resolve(ctx context.Context, ordenID, resolutorID int64) error
}

// OrdenDao implements OrdenRepository using PostgreSQL
type OrdenDao struct {
	DB     *sql.DB
	Logger *logrus.Logger
}

func (dao *OrdenDao) Create(ctx context.Context, creadorID int64, descripcion, fotoPath string) (int64, error) {
	var id int64
	err := dao.DB.QueryRowContext(ctx, `
		INSERT INTO ordenes_trabajo (creador_id, descripcion, foto_path, estado)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, creadorID, descripcion, nullString(fotoPath), constants.OrdenPendiente).Scan(&id)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"creador_id": creadorID,
			"error":      err.Error(),
		}).Error("Failed to create orden de trabajo")
		return 0, fmt.Errorf("failed to create orden: %w", err)
	}

	dao.Logger.WithFields(logrus.Fields{
		"orden_id":   id,
		"creador_id": creadorID,
	}).Info("Successfully created orden de trabajo")
	return id, nil
}

func (dao *OrdenDao) GetByEstado(ctx context.Context, estados []string) ([]models.OrdenTrabajo, error) {
	var f Filter
	f.AnyOf("o.estado", estados)

	rows, err := dao.DB.QueryContext(ctx, `
		SELECT o.id, o.descripcion, u.first_name AS creador_nombre, o.fecha_creacion
		FROM ordenes_trabajo o
		JOIN usuarios u ON o.creador_id = u.user_id`+
		f.Where()+`
		ORDER BY o.fecha_creacion ASC
	`, f.Args()...)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"estados": estados,
			"error":   err.Error(),
		}).Error("Failed to query ordenes de trabajo")
		return nil, fmt.Errorf("failed to query ordenes: %w", err)
	}
	defer rows.Close()

	var ordenes []models.OrdenTrabajo
	for rows.Next() {
		var o models.OrdenTrabajo
		if err := rows.Scan(&o.ID, &o.Descripcion, &o.CreadorName, &o.FechaCreacion); err != nil {
			return nil, fmt.Errorf("failed to scan orden: %w", err)
		}
		ordenes = append(ordenes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ordenes: %w", err)
	}
	return ordenes, nil
}

func (dao *OrdenDao) GetByID(ctx context.Context, ordenID int64) (*models.OrdenTrabajo, error) {
	var o models.OrdenTrabajo
	var fotoPath, resolutorName sql.NullString
	var fechaResolucion sql.NullTime
	err := dao.DB.QueryRowContext(ctx, `
		SELECT o.id, o.descripcion, o.foto_path, o.estado, o.fecha_creacion,
		       u_creador.first_name AS creador_nombre,
		       u_resolutor.first_name AS resolutor_nombre, o.fecha_resolucion
		FROM ordenes_trabajo o
		JOIN usuarios u_creador ON o.creador_id = u_creador.user_id
		LEFT JOIN usuarios u_resolutor ON o.resolutor_id = u_resolutor.user_id
		WHERE o.id = $1
	`, ordenID).Scan(&o.ID, &o.Descripcion, &fotoPath, &o.Estado, &o.FechaCreacion,
		&o.CreadorName, &resolutorName, &fechaResolucion)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		dao.Logger.WithFields(logrus.Fields{
			"orden_id": ordenID,
			"error":    err.Error(),
		}).Error("Failed to get orden de trabajo")
		return nil, fmt.Errorf("failed to get orden: %w", err)
	}
	o.FotoPath = fotoPath.String
	o.ResolutorName = resolutorName.String
	if fechaResolucion.Valid {
		o.FechaResolucion = &fechaResolucion.Time
	}
	return &o, nil
}

func (dao *OrdenDao) Resolve(ctx context.Context, ordenID, resolutorID int64) error {
	result, err := dao.DB.ExecContext(ctx, `
		UPDATE ordenes_trabajo
		SET estado = $1, resolutor_id = $2, fecha_resolucion = NOW()
		WHERE id = $3
	`, constants.OrdenRealizada, resolutorID, ordenID)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"orden_id": ordenID,
			"error":    err.Error(),
		}).Error("Failed to resolve orden de trabajo")
		return fmt.Errorf("failed to resolve orden: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	dao.Logger.WithFields(logrus.Fields{
		"orden_id":     ordenID,
		"resolutor_id": resolutorID,
	}).Info("Successfully resolved orden de trabajo")
	return nil
}
