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

func (s *Service) CreateCategory(ctx context.Context, in *entity.CategoryCreate, meta logger.Meta) (*entity.Category, *Error.Status) {
	inventoryLogger.Info("Creating category "+in.Name+"...", meta)

	c := in.Build()

	if err := s.store.Categories().Create(ctx, c); err != nil {
		inventoryLogger.Error("Failed to create category "+in.Name, err.Error(), meta)
		return nil, onCreate(err)
	}

	inventoryLogger.Info("Creating category "+in.Name+": OK", meta)

	return c, nil
}

func (s *Service) GetCategory(ctx context.Context, id int64) (*entity.Category, *Error.Status) {
	return s.store.Categories().GetByID(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context, q *directive.Query, meta logger.Meta) ([]*entity.Category, *Error.Status) {
	return list(ctx, s.store.Categories(), entity.CategorySchema, q, meta)
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, patch *entity.CategoryUpdate, meta logger.Meta) (*entity.Category, *Error.Status) {
	idStr := strconv.FormatInt(id, 10)

	inventoryLogger.Info("Updating category "+idStr+"...", meta)

	c, err := s.store.Categories().Update(ctx, id, patch)
	if err != nil {
		inventoryLogger.Error("Failed to update category "+idStr, err.Error(), meta)
		return nil, err
	}

	inventoryLogger.Info("Updating category "+idStr+": OK", meta)

	return c, nil
}

// Deletes category with all its products.
func (s *Service) DeleteCategory(ctx context.Context, id int64, meta logger.Meta) *Error.Status {
	idStr := strconv.FormatInt(id, 10)

	inventoryLogger.Info("Deleting category "+idStr+"...", meta)

	err := cascadeDelete(ctx, s.store,
		func(tx store.Store) store.Repository[entity.Category] { return tx.Categories() },
		id,
		func(tx store.Store) *Error.Status {
			return deleteProductsBy(ctx, tx, "category_id", id)
		},
	)
	if err != nil {
		inventoryLogger.Error("Failed to delete category "+idStr, err.Error(), meta)
		return err
	}

	inventoryLogger.Info("Deleting category "+idStr+": OK", meta)

	return nil
}
