package inventory

import (
	"context"
	Error "warehouse/packages/common/errors"
	"warehouse/packages/core/directive"
	"warehouse/packages/core/entity"
	"warehouse/packages/core/store"
)

// Deletion policy:
//   - user: products created or updated by the user
//   - warehouse: products located in it
//   - category: products of it
//   - product: its attributes
//
// Dependants are always deleted before the parent.

// Deletes attributes of the given products, then products itself.
func deleteProducts(ctx context.Context, tx store.Store, ids []int64) *Error.Status {
	if len(ids) == 0 {
		return nil
	}

	plan, err := directive.Where(entity.AttributeSchema, "product_id", directive.In, anyOf(ids))
	if err != nil {
		return err
	}

	attributes, err := tx.Attributes().FindIDs(ctx, plan)
	if err != nil {
		return err
	}

	if err := tx.Attributes().DeleteByIDs(ctx, attributes); err != nil {
		return err
	}

	return tx.Products().DeleteByIDs(ctx, ids)
}

// Deletes all products which field is equal to id.
func deleteProductsBy(ctx context.Context, tx store.Store, field string, id int64) *Error.Status {
	plan, err := directive.Where(entity.ProductSchema, field, directive.Equal, id)
	if err != nil {
		return err
	}

	ids, err := tx.Products().FindIDs(ctx, plan)
	if err != nil {
		return err
	}

	return deleteProducts(ctx, tx, ids)
}

func cascadeDelete[T any](
	ctx context.Context,
	s store.Store,
	repo func(tx store.Store) store.Repository[T],
	id int64,
	dependants func(tx store.Store) *Error.Status,
) *Error.Status {
	return s.Atomic(ctx, func(tx store.Store) *Error.Status {
		if _, err := repo(tx).GetByID(ctx, id); err != nil {
			return err
		}

		if err := dependants(tx); err != nil {
			return err
		}

		return repo(tx).Delete(ctx, id)
	})
}
