package inventory

import (
	"context"
	"strconv"
	Error "warehouse/packages/common/errors"
	"warehouse/packages/common/logger"
	"warehouse/packages/core/directive"
	"warehouse/packages/core/entity"
)

func (s *Service) CreateAttribute(ctx context.Context, in *entity.AttributeCreate, meta logger.Meta) (*entity.Attribute, *Error.Status) {
	inventoryLogger.Info("Creating attribute "+in.Name+"...", meta)

	if err := mustExist(ctx, s.store.Products(), "product", in.ProductID); err != nil {
		inventoryLogger.Error("Failed to create attribute "+in.Name, err.Error(), meta)
		return nil, err
	}

	a := in.Build()

	if err := s.store.Attributes().Create(ctx, a); err != nil {
		inventoryLogger.Error("Failed to create attribute "+in.Name, err.Error(), meta)
		return nil, onCreate(err)
	}

	inventoryLogger.Info("Creating attribute "+in.Name+": OK", meta)

	return a, nil
}

func (s *Service) GetAttribute(ctx context.Context, id int64) (*entity.Attribute, *Error.Status) {
	return s.store.Attributes().GetByID(ctx, id)
}

func (s *Service) ListAttributes(ctx context.Context, q *directive.Query, meta logger.Meta) ([]*entity.Attribute, *Error.Status) {
	return list(ctx, s.store.Attributes(), entity.AttributeSchema, q, meta)
}

func (s *Service) UpdateAttribute(ctx context.Context, id int64, patch *entity.AttributeUpdate, meta logger.Meta) (*entity.Attribute, *Error.Status) {
	idStr := strconv.FormatInt(id, 10)

	inventoryLogger.Info("Updating attribute "+idStr+"...", meta)

	a, err := s.store.Attributes().Update(ctx, id, patch)
	if err != nil {
		inventoryLogger.Error("Failed to update attribute "+idStr, err.Error(), meta)
		return nil, err
	}

	inventoryLogger.Info("Updating attribute "+idStr+": OK", meta)

	return a, nil
}

func (s *Service) DeleteAttribute(ctx context.Context, id int64, meta logger.Meta) *Error.Status {
	idStr := strconv.FormatInt(id, 10)

	inventoryLogger.Info("Deleting attribute "+idStr+"...", meta)

	if err := s.store.Attributes().Delete(ctx, id); err != nil {
		inventoryLogger.Error("Failed to delete attribute "+idStr, err.Error(), meta)
		return err
	}

	inventoryLogger.Info("Deleting attribute "+idStr+": OK", meta)

	return nil
}
