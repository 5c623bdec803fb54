package data

import (
	"context"
	"database/sql"
	"fmt"

	"obrabot/lib/constants"
	"obrabot/lib/models"

	"github.com/sirupsen/logrus"
)

// PedidoRepository defines the interface for material request data
type PedidoRepository interface {
	// Create inserts a pedido together with its requested items in one
	// transaction. Item names are denormalized at request time.
	Create(ctx context.Context, pedido *models.Pedido) (int64, error)

	// GetByEstado lists pedidos in one state with the requester name
	// joined in, oldest first so the queue is worked in order.
	GetByEstado(ctx context.Context, estado string) ([]models.Pedido, error)

	// GetByID returns a pedido with its items.
	GetByID(ctx context.Context, pedidoID int64) (*models.Pedido, error)

	// GetSolicitanteID returns only the requester of a pedido.
	GetSolicitanteID(ctx context.Context, pedidoID int64) (int64, error)

	// UpdateStatus transitions a pedido. Approval decisions record the
	// approver and notes; preparation records the warehouse clerk.
	UpdateStatus(ctx context.Context, pedidoID, userID int64, estado, notas string) error
}

// PedidoDao implements PedidoRepository using PostgreSQL
type PedidoDao struct {
	DB     *sql.DB
	Logger *logrus.Logger
}

func (dao *PedidoDao) Create(ctx context.Context, pedido *models.Pedido) (int64, error) {
	tx, err := dao.DB.BeginTx(ctx, nil)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to start transaction for pedido creation")
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var pedidoID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO pedidos (solicitante_id, notas_solicitud, estado, group_chat_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, pedido.SolicitanteID, pedido.NotasSolicitud, constants.PedidoPendiente,
		pedido.GroupChatID).Scan(&pedidoID)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"solicitante_id": pedido.SolicitanteID,
			"error":          err.Error(),
		}).Error("Failed to create pedido")
		return 0, fmt.Errorf("failed to create pedido: %w", err)
	}

	for _, item := range pedido.Items {
		var nombre string
		err = tx.QueryRowContext(ctx,
			`SELECT nombre FROM almacen_items WHERE id = $1`, item.ItemID).Scan(&nombre)
		if err != nil {
			if err == sql.ErrNoRows {
				return 0, fmt.Errorf("item %d: %w", item.ItemID, ErrNotFound)
			}
			return 0, fmt.Errorf("failed to look up item name: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO pedido_items (pedido_id, item_id, cantidad_solicitada, nombre_item)
			VALUES ($1, $2, $3, $4)
		`, pedidoID, item.ItemID, item.CantidadSolicitada, nombre)
		if err != nil {
			dao.Logger.WithFields(logrus.Fields{
				"pedido_id": pedidoID,
				"item_id":   item.ItemID,
				"error":     err.Error(),
			}).Error("Failed to add item to pedido")
			return 0, fmt.Errorf("failed to add item to pedido: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		dao.Logger.WithError(err).Error("Failed to commit pedido creation transaction")
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	dao.Logger.WithFields(logrus.Fields{
		"pedido_id":      pedidoID,
		"solicitante_id": pedido.SolicitanteID,
		"items":          len(pedido.Items),
	}).Info("Successfully created pedido")
	return pedidoID, nil
}

func (dao *PedidoDao) GetByEstado(ctx context.Context, estado string) ([]models.Pedido, error) {
	rows, err := dao.DB.QueryContext(ctx, `
		SELECT p.id, u.first_name, p.fecha_solicitud
		FROM pedidos p
		JOIN usuarios u ON p.solicitante_id = u.user_id
		WHERE p.estado = $1
		ORDER BY p.fecha_solicitud ASC
	`, estado)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"estado": estado,
			"error":  err.Error(),
		}).Error("Failed to query pedidos by estado")
		return nil, fmt.Errorf("failed to query pedidos: %w", err)
	}
	defer rows.Close()

	var pedidos []models.Pedido
	for rows.Next() {
		var p models.Pedido
		if err := rows.Scan(&p.ID, &p.SolicitanteName, &p.FechaSolicitud); err != nil {
			return nil, fmt.Errorf("failed to scan pedido: %w", err)
		}
		pedidos = append(pedidos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pedidos: %w", err)
	}
	return pedidos, nil
}

func (dao *PedidoDao) GetByID(ctx context.Context, pedidoID int64) (*models.Pedido, error) {
	var p models.Pedido
	var notasSolicitud, notasDecision sql.NullString
	err := dao.DB.QueryRowContext(ctx, `
		SELECT p.id, u.first_name, p.estado, p.notas_solicitud, p.notas_decision,
		       p.fecha_solicitud, p.solicitante_id
		FROM pedidos p
		JOIN usuarios u ON p.solicitante_id = u.user_id
		WHERE p.id = $1
	`, pedidoID).Scan(&p.ID, &p.SolicitanteName, &p.Estado, &notasSolicitud,
		&notasDecision, &p.FechaSolicitud, &p.SolicitanteID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		dao.Logger.WithFields(logrus.Fields{
			"pedido_id": pedidoID,
			"error":     err.Error(),
		}).Error("Failed to get pedido")
		return nil, fmt.Errorf("failed to get pedido: %w", err)
	}
	p.NotasSolicitud = notasSolicitud.String
	p.NotasDecision = notasDecision.String

	rows, err := dao.DB.QueryContext(ctx, `
		SELECT nombre_item, cantidad_solicitada
		FROM pedido_items
		WHERE pedido_id = $1
	`, pedidoID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pedido items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.PedidoItem
		if err := rows.Scan(&item.NombreItem, &item.CantidadSolicitada); err != nil {
			return nil, fmt.Errorf("failed to scan pedido item: %w", err)
		}
		p.Items = append(p.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pedido items: %w", err)
	}
	return &p, nil
}

func (dao *PedidoDao) GetSolicitanteID(ctx context.Context, pedidoID int64) (int64, error) {
	var solicitanteID int64
	err := dao.DB.QueryRowContext(ctx,
		`SELECT solicitante_id FROM pedidos WHERE id = $1`, pedidoID).Scan(&solicitanteID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to get pedido solicitante: %w", err)
	}
	return solicitanteID, nil
}

func (dao *PedidoDao) UpdateStatus(ctx context.Context, pedidoID, userID int64, estado, notas string) error {
	var result sql.Result
	var err error

	switch estado {
	case constants.PedidoAprobado, constants.PedidoRechazado:
		result, err = dao.DB.ExecContext(ctx, `
			UPDATE pedidos
			SET estado = $1, aprobador_id = $2, notas_decision = $3, fecha_decision = NOW()
			WHERE id = $4
		`, estado, userID, notas, pedidoID)
	case constants.PedidoListo:
		result, err = dao.DB.ExecContext(ctx, `
			UPDATE pedidos
			SET estado = $1, almacen_id = $2, fecha_preparado = NOW()
			WHERE id = $3
		`, estado, userID, pedidoID)
	default:
		result, err = dao.DB.ExecContext(ctx,
			`UPDATE pedidos SET estado = $1 WHERE id = $2`, estado, pedidoID)
	}
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"pedido_id": pedidoID,
			"estado":    estado,
			"error":     err.Error(),
		}).Error("Failed to update pedido status")
		return fmt.Errorf("failed to update pedido status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	dao.Logger.WithFields(logrus.Fields{
		"pedido_id": pedidoID,
		"estado":    estado,
		"user_id":   userID,
	}).Info("Successfully updated pedido status")
	return nil
}
