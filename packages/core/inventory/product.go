package inventory

import (
	"context"
	"net/http"
	"strconv"
	Error "warehouse/packages/common/errors"
	"warehouse/packages/common/logger"
	"warehouse/packages/core/directive"
	"warehouse/packages/core/entity"
	"warehouse/packages/core/store"
)

var ProductNotInSourceWarehouse = Error.NewStatusError(
	"Product isn't located in the source warehouse",
	http.StatusBadRequest,
)

func (s *Service) checkProductReferences(ctx context.Context, categoryID *int64, warehouseID *int64) *Error.Status {
	if categoryID != nil {
		if err := mustExist(ctx, s.store.Categories(), "category", *categoryID); err != nil {
			return err
		}
	}
	if warehouseID != nil {
		if err := mustExist(ctx, s.store.Warehouses(), "warehouse", *warehouseID); err != nil {
			return err
		}
	}
	return nil
}

// Creates product on behalf of the actor.
// Category and warehouse must exist.
func (s *Service) CreateProduct(ctx context.Context, in *entity.ProductCreate, actor *entity.User, meta logger.Meta) (*entity.Product, *Error.Status) {
	inventoryLogger.Info("Creating product "+in.Name+"...", meta)

	if err := s.checkProductReferences(ctx, &in.CategoryID, &in.WarehouseID); err != nil {
		inventoryLogger.Error("Failed to create product "+in.Name, err.Error(), meta)
		return nil, err
	}

	p := in.Build(actor.ID, s.now())

	if err := s.store.Products().Create(ctx, p); err != nil {
		inventoryLogger.Error("Failed to create product "+in.Name, err.Error(), meta)
		return nil, onCreate(err)
	}

	inventoryLogger.Info("Creating product "+in.Name+": OK", meta)

	return p, nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*entity.Product, *Error.Status) {
	return s.store.Products().GetByID(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context, q *directive.Query, meta logger.Meta) ([]*entity.Product, *Error.Status) {
	return list(ctx, s.store.Products(), entity.ProductSchema, q, meta)
}

// Updates product on behalf of the actor, changed category and warehouse must exist.
func (s *Service) UpdateProduct(ctx context.Context, id int64, patch *entity.ProductUpdate, actor *entity.User, meta logger.Meta) (*entity.Product, *Error.Status) {
	idStr := strconv.FormatInt(id, 10)

	inventoryLogger.Info("Updating product "+idStr+"...", meta)

	if _, err := s.store.Products().GetByID(ctx, id); err != nil {
		inventoryLogger.Error("Failed to update product "+idStr, err.Error(), meta)
		return nil, err
	}

	if err := s.checkProductReferences(ctx, patch.CategoryID, patch.WarehouseID); err != nil {
		inventoryLogger.Error("Failed to update product "+idStr, err.Error(), meta)
		return nil, err
	}

	now := s.now()
	patch.UpdatedBy = &actor.ID
	patch.UpdatedAt = &now

	p, err := s.store.Products().Update(ctx, id, patch)
	if err != nil {
		inventoryLogger.Error("Failed to update product "+idStr, err.Error(), meta)
		return nil, err
	}

	inventoryLogger.Info("Updating product "+idStr+": OK", meta)

	return p, nil
}

// Moves product to the destination warehouse.
// If source warehouse is specified, product must be located in it.
// Returns moved product and destination warehouse.
func (s *Service) MoveProduct(ctx context.Context, id int64, move *entity.ProductMove, actor *entity.User, meta logger.Meta) (*entity.Product, *entity.Warehouse, *Error.Status) {
	idStr := strconv.FormatInt(id, 10)
	dstStr := strconv.FormatInt(move.DestinationWarehouseID, 10)

	inventoryLogger.Info("Moving product "+idStr+" to warehouse "+dstStr+"...", meta)

	var moved *entity.Product
	var destination *entity.Warehouse

	err := s.store.Atomic(ctx, func(tx store.Store) *Error.Status {
		product, err := tx.Products().GetByID(ctx, id)
		if err != nil {
			return err
		}

		if move.SourceWarehouseID != nil {
			if _, err := tx.Warehouses().GetByID(ctx, *move.SourceWarehouseID); err != nil {
				return err
			}
		}

		destination, err = tx.Warehouses().GetByID(ctx, move.DestinationWarehouseID)
		if err != nil {
			return err
		}

		if move.SourceWarehouseID != nil && product.WarehouseID != *move.SourceWarehouseID {
			return ProductNotInSourceWarehouse
		}

		now := s.now()

		moved, err = tx.Products().Update(ctx, id, &entity.ProductUpdate{
			WarehouseID: &move.DestinationWarehouseID,
			UpdatedBy:   &actor.ID,
			UpdatedAt:   &now,
		})
		return err
	})
	if err != nil {
		inventoryLogger.Error("Failed to move product "+idStr+" to warehouse "+dstStr, err.Error(), meta)
		return nil, nil, err
	}

	inventoryLogger.Info("Moving product "+idStr+" to warehouse "+dstStr+": OK", meta)

	return moved, destination, nil
}

// Deletes product with all its attributes.
func (s *Service) DeleteProduct(ctx context.Context, id int64, meta logger.Meta) *Error.Status {
	idStr := strconv.FormatInt(id, 10)

	inventoryLogger.Info("Deleting product "+idStr+"...", meta)

	err := s.store.Atomic(ctx, func(tx store.Store) *Error.Status {
		if _, err := tx.Products().GetByID(ctx, id); err != nil {
			return err
		}
		return deleteProducts(ctx, tx, []int64{id})
	})
	if err != nil {
		inventoryLogger.Error("Failed to delete product "+idStr, err.Error(), meta)
		return err
	}

	inventoryLogger.Info("Deleting product "+idStr+": OK", meta)

	return nil
}
