// Application services of the warehouse domain.
// Checks references, resolves conflicts and applies cascade deletion policy
// on top of the entity store.
package inventory

import (
	"context"
	"net/http"
	"sync"
	"time"
	Error "warehouse/packages/common/errors"
	"warehouse/packages/common/logger"
	"warehouse/packages/core/directive"
	"warehouse/packages/core/schema"
	"warehouse/packages/core/store"
)

var inventoryLogger = logger.NewSource("INVENTORY", logger.Default)

type Hasher interface {
	Hash(plaintext string) (string, *Error.Status)
	Verify(plaintext string, hash string) bool
}

type Service struct {
	store  store.Store
	hasher Hasher
	now    func() time.Time

	// Hash checked on login of unknown user, so it takes as long as a real check.
	placeholderHash     string
	placeholderHashOnce sync.Once
}

func New(s store.Store, hasher Hasher) *Service {
	return &Service{
		store:  s,
		hasher: hasher,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Unique violation on creation is reported with 400, as any other invalid input.
func onCreate(err *Error.Status) *Error.Status {
	if err != nil && err.Status() == http.StatusConflict {
		return Error.NewConflict(err.Error(), http.StatusBadRequest)
	}
	return err
}

func list[T any](
	ctx context.Context,
	repo store.Repository[T],
	s *schema.Schema[T],
	q *directive.Query,
	meta logger.Meta,
) ([]*T, *Error.Status) {
	inventoryLogger.Trace("Listing "+s.Table+"...", meta)

	plan, err := directive.Compile(s, q)
	if err != nil {
		inventoryLogger.Error("Failed to list "+s.Table, err.Error(), meta)
		return nil, err
	}

	records, err := repo.List(ctx, plan)
	if err != nil {
		inventoryLogger.Error("Failed to list "+s.Table, err.Error(), meta)
		return nil, err
	}

	inventoryLogger.Trace("Listing "+s.Table+": OK", meta)

	return records, nil
}

// Checks that record with the given id exists.
// Returns ValidationError otherwise, since missing reference is invalid input.
func mustExist[T any](ctx context.Context, repo store.Repository[T], entity string, id int64) *Error.Status {
	_, err := repo.GetByID(ctx, id)
	if err != nil && err.Status() == http.StatusNotFound {
		return Error.NewValidationStatus(entity + " not found")
	}
	return err
}

func anyOf(ids []int64) []any {
	values := make([]any, len(ids))
	for i, id := range ids {
		values[i] = id
	}
	return values
}
