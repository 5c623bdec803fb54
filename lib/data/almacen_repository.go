package data

import (
	"context"
	"database/sql"
	"fmt"

	"obrabot/lib/constants"
	"obrabot/lib/models"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// AlmacenRepository defines the interface for warehouse inventory data
type AlmacenRepository interface {
	// AddOrUpdate inserts an item or, when the name exists, accumulates the
	// quantity and refreshes description and type.
	AddOrUpdate(ctx context.Context, item *models.AlmacenItem) error

	// GetPaginated returns one page of items matching any of the given
	// types, ordered by name, plus the total page count for that filter.
	GetPaginated(ctx context.Context, tipos []string, page, perPage int) ([]models.AlmacenItem, int, error)

	// GetByID retrieves a single item with all its fields.
	GetByID(ctx context.Context, itemID int64) (*models.AlmacenItem, error)

	// UpdateQuantity sets the absolute stock quantity of an item.
	UpdateQuantity(ctx context.Context, itemID int64, cantidad int) error

	// UpdateDetails renames an item and replaces its description. Returns
	// ErrDuplicate when the new name is taken.
	UpdateDetails(ctx context.Context, itemID int64, nombre, descripcion string) error

	// Delete removes an item. Returns ErrInUse when pedidos or incidencias
	// still reference it.
	Delete(ctx context.Context, itemID int64) error

	// GetFullInventory returns every item ordered by type then name.
	GetFullInventory(ctx context.Context) ([]models.AlmacenItem, error)

	// GetMaterialEnObra aggregates quantities of material already approved
	// for site use across delivered and in-flight pedidos.
	GetMaterialEnObra(ctx context.Context) ([]models.MaterialEnObra, error)
}

// AlmacenDao implements AlmacenRepository using PostgreSQL
type AlmacenDao struct {
	DB     *sql.DB
	Logger *logrus.Logger
}

func (dao *AlmacenDao) AddOrUpdate(ctx context.Context, item *models.AlmacenItem) error {
	_, err := dao.DB.ExecContext(ctx, `
		INSERT INTO almacen_items (nombre, cantidad, descripcion, tipo)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (nombre) DO UPDATE SET
			cantidad = almacen_items.cantidad + EXCLUDED.cantidad,
			descripcion = EXCLUDED.descripcion,
			tipo = EXCLUDED.tipo
	`, item.Nombre, item.Cantidad, item.Descripcion, item.Tipo)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"nombre": item.Nombre,
			"error":  err.Error(),
		}).Error("Failed to upsert inventory item")
		return fmt.Errorf("failed to upsert inventory item: %w", err)
	}

	dao.Logger.WithFields(logrus.Fields{
		"nombre":   item.Nombre,
		"cantidad": item.Cantidad,
	}).Info("Successfully upserted inventory item")
	return nil
}

func (dao *AlmacenDao) GetPaginated(ctx context.Context, tipos []string, page, perPage int) ([]models.AlmacenItem, int, error) {
	offset := page * perPage
	rows, err := dao.DB.QueryContext(ctx, `
		SELECT id, nombre, cantidad
		FROM almacen_items
		WHERE tipo = ANY($1)
		ORDER BY nombre ASC
		LIMIT $2 OFFSET $3
	`, pq.Array(tipos), perPage, offset)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"tipos": tipos,
			"page":  page,
			"error": err.Error(),
		}).Error("Failed to query inventory page")
		return nil, 0, fmt.Errorf("failed to query inventory page: %w", err)
	}
	defer rows.Close()

	var items []models.AlmacenItem
	for rows.Next() {
		var item models.AlmacenItem
		if err := rows.Scan(&item.ID, &item.Nombre, &item.Cantidad); err != nil {
			return nil, 0, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating inventory items: %w", err)
	}

	var total int
	err = dao.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM almacen_items WHERE tipo = ANY($1)`, pq.Array(tipos)).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count inventory items: %w", err)
	}

	return items, totalPages(total, perPage), nil
}

func (dao *AlmacenDao) GetByID(ctx context.Context, itemID int64) (*models.AlmacenItem, error) {
	var item models.AlmacenItem
	var descripcion sql.NullString
	err := dao.DB.QueryRowContext(ctx, `
		SELECT id, nombre, cantidad, descripcion, tipo
		FROM almacen_items
		WHERE id = $1
	`, itemID).Scan(&item.ID, &item.Nombre, &item.Cantidad, &descripcion, &item.Tipo)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		dao.Logger.WithError(err).Error("Failed to get inventory item")
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	item.Descripcion = descripcion.String
	return &item, nil
}

func (dao *AlmacenDao) UpdateQuantity(ctx context.Context, itemID int64, cantidad int) error {
	result, err := dao.DB.ExecContext(ctx,
		`UPDATE almacen_items SET cantidad = $1 WHERE id = $2`, cantidad, itemID)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"item_id": itemID,
			"error":   err.Error(),
		}).Error("Failed to update item quantity")
		return fmt.Errorf("failed to update item quantity: %w", err)
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

func (dao *AlmacenDao) UpdateDetails(ctx context.Context, itemID int64, nombre, descripcion string) error {
	result, err := dao.DB.ExecContext(ctx,
		`UPDATE almacen_items SET nombre = $1, descripcion = $2 WHERE id = $3`,
		nombre, descripcion, itemID)
	if err != nil {
		if mapped := mapError(err); mapped == ErrDuplicate {
			return ErrDuplicate
		}
		dao.Logger.WithFields(logrus.Fields{
			"item_id": itemID,
			"error":   err.Error(),
		}).Error("Failed to update item details")
		return fmt.Errorf("failed to update item details: %w", err)
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

func (dao *AlmacenDao) Delete(ctx context.Context, itemID int64) error {
	result, err := dao.DB.ExecContext(ctx,
		`DELETE FROM almacen_items WHERE id = $1`, itemID)
	if err != nil {
		if mapped := mapError(err); mapped == ErrInUse {
			dao.Logger.WithField("item_id", itemID).Warn("Item still referenced, delete rejected")
			return ErrInUse
		}
		dao.Logger.WithFields(logrus.Fields{
			"item_id": itemID,
			"error":   err.Error(),
		}).Error("Failed to delete inventory item")
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	dao.Logger.WithField("item_id", itemID).Info("Successfully deleted inventory item")
	return nil
}

func (dao *AlmacenDao) GetFullInventory(ctx context.Context) ([]models.AlmacenItem, error) {
	rows, err := dao.DB.QueryContext(ctx, `
		SELECT nombre, cantidad, tipo
		FROM almacen_items
		ORDER BY tipo, nombre
	`)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to query full inventory")
		return nil, fmt.Errorf("failed to query full inventory: %w", err)
	}
	defer rows.Close()

	var items []models.AlmacenItem
	for rows.Next() {
		var item models.AlmacenItem
		if err := rows.Scan(&item.Nombre, &item.Cantidad, &item.Tipo); err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory items: %w", err)
	}
	return items, nil
}

func (dao *AlmacenDao) GetMaterialEnObra(ctx context.Context) ([]models.MaterialEnObra, error) {
	rows, err := dao.DB.QueryContext(ctx, `
		SELECT pi.nombre_item, SUM(pi.cantidad_solicitada) AS total_cantidad
		FROM pedido_items pi
		JOIN pedidos p ON pi.pedido_id = p.id
		WHERE p.estado IN ($1, $2, $3)
		GROUP BY pi.nombre_item
		ORDER BY pi.nombre_item ASC
	`, constants.PedidoAprobado, constants.PedidoListo, constants.PedidoEntregado)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to query material en obra")
		return nil, fmt.Errorf("failed to query material en obra: %w", err)
	}
	defer rows.Close()

	var material []models.MaterialEnObra
	for rows.Next() {
		var m models.MaterialEnObra
		if err := rows.Scan(&m.Nombre, &m.Cantidad); err != nil {
			return nil, fmt.Errorf("failed to scan material row: %w", err)
		}
		material = append(material, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating material rows: %w", err)
	}
	return material, nil
}

// totalPages computes ceil(total/perPage); zero when perPage is not positive.
func totalPages(total, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
