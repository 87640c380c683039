package inventory

import (
	"context"
	"strconv"
	Error "warehouse/packages/common/errors"
	"warehouse/packages/common/logger"
	"warehouse/packages/core/directive"
	"warehouse/packages/core/entity"
	"warehouse/packages/core/store"
)

func (s *Service) CreateWarehouse(ctx context.Context, in *entity.WarehouseCreate, meta logger.Meta) (*entity.Warehouse, *Error.Status) {
	inventoryLogger.Info("Creating warehouse "+in.Name+"...", meta)

	w := in.Build()

	if err := s.store.Warehouses().Create(ctx, w); err != nil {
		inventoryLogger.Error("Failed to create warehouse "+in.Name, err.Error(), meta)
		return nil, onCreate(err)
	}

	inventoryLogger.Info("Creating warehouse "+in.Name+": OK", meta)

	return w, nil
}

func (s *Service) GetWarehouse(ctx context.Context, id int64) (*entity.Warehouse, *Error.Status) {
	return s.store.Warehouses().GetByID(ctx, id)
}

func (s *Service) ListWarehouses(ctx context.Context, q *directive.Query, meta logger.Meta) ([]*entity.Warehouse, *Error.Status) {
	return list(ctx, s.store.Warehouses(), entity.WarehouseSchema, q, meta)
}

func (s *Service) UpdateWarehouse(ctx context.Context, id int64, patch *entity.WarehouseUpdate, meta logger.Meta) (*entity.Warehouse, *Error.Status) {
	idStr := strconv.FormatInt(id, 10)

	inventoryLogger.Info("Updating warehouse "+idStr+"...", meta)

	w, err := s.store.Warehouses().Update(ctx, id, patch)
	if err != nil {
		inventoryLogger.Error("Failed to update warehouse "+idStr, err.Error(), meta)
		return nil, err
	}

	inventoryLogger.Info("Updating warehouse "+idStr+": OK", meta)

	return w, nil
}

// Deletes warehouse with all products located in it.
func (s *Service) DeleteWarehouse(ctx context.Context, id int64, meta logger.Meta) *Error.Status {
	idStr := strconv.FormatInt(id, 10)

	inventoryLogger.Info("Deleting warehouse "+idStr+"...", meta)

	err := cascadeDelete(ctx, s.store,
		func(tx store.Store) store.Repository[entity.Warehouse] { return tx.Warehouses() },
		id,
		func(tx store.Store) *Error.Status {
			return deleteProductsBy(ctx, tx, "warehouse_id", id)
		},
	)
	if err != nil {
		inventoryLogger.Error("Failed to delete warehouse "+idStr, err.Error(), meta)
		return err
	}

	inventoryLogger.Info("Deleting warehouse "+idStr+": OK", meta)

	return nil
}
