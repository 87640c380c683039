package inventory

import (
	"context"
	"net/http"
	"strconv"
	Error "warehouse/packages/common/errors"
	"warehouse/packages/common/logger"
	"warehouse/packages/core/entity"
	"warehouse/packages/core/store"
)

var InvalidCredentials = Error.NewStatusError(
	"Invalid username or password",
	http.StatusUnauthorized,
)

var UserNotFound = Error.NewStatusError(
	"User not found",
	http.StatusUnauthorized,
)

func (s *Service) Register(ctx context.Context, in *entity.UserCreate, meta logger.Meta) (*entity.User, *Error.Status) {
	inventoryLogger.Info("Registering user "+in.Username+"...", meta)

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		inventoryLogger.Error("Failed to register user "+in.Username, err.Error(), meta)
		return nil, err
	}

	u := in.Build(hash)

	if err := s.store.Users().Create(ctx, u); err != nil {
		inventoryLogger.Error("Failed to register user "+in.Username, err.Error(), meta)
		return nil, onCreate(err)
	}

	inventoryLogger.Info("Registering user "+in.Username+": OK", meta)

	return u, nil
}

// Returns user with the given credentials.
// Missing user and wrong password are indistinguishable for the caller.
func (s *Service) Authenticate(ctx context.Context, username string, password string, meta logger.Meta) (*entity.User, *Error.Status) {
	inventoryLogger.Info("Authenticating user "+username+"...", meta)

	u, err := s.store.Users().GetByUsername(ctx, username)
	if err != nil {
		if err.Status() != http.StatusNotFound {
			inventoryLogger.Error("Failed to authenticate user "+username, err.Error(), meta)
			return nil, err
		}
		s.hasher.Verify(password, s.getPlaceholderHash())
		inventoryLogger.Error("Failed to authenticate user "+username, "user not found", meta)
		return nil, InvalidCredentials
	}

	if !s.hasher.Verify(password, u.HashedPassword) {
		inventoryLogger.Error("Failed to authenticate user "+username, "password mismatch", meta)
		return nil, InvalidCredentials
	}

	inventoryLogger.Info("Authenticating user "+username+": OK", meta)

	return u, nil
}

func (s *Service) getPlaceholderHash() string {
	s.placeholderHashOnce.Do(func() {
		hash, err := s.hasher.Hash("placeholder-password")
		if err != nil {
			inventoryLogger.Error("Failed to hash placeholder password", err.Error(), nil)
			return
		}
		s.placeholderHash = hash
	})
	return s.placeholderHash
}

// Resolves token subject to the user.
func (s *Service) CurrentUser(ctx context.Context, username string) (*entity.User, *Error.Status) {
	u, err := s.store.Users().GetByUsername(ctx, username)
	if err != nil {
		if err.Status() == http.StatusNotFound {
			return nil, UserNotFound
		}
		return nil, err
	}
	return u, nil
}

func checkSelf(actor *entity.User, id int64, action string) *Error.Status {
	if actor.ID != id {
		return Error.NewForbidden("Can't " + action + " another user")
	}
	return nil
}

// Updates user profile. Users can update only themselves.
func (s *Service) UpdateUser(ctx context.Context, id int64, patch *entity.UserUpdate, actor *entity.User, meta logger.Meta) (*entity.User, *Error.Status) {
	idStr := strconv.FormatInt(id, 10)

	inventoryLogger.Info("Updating user "+idStr+"...", meta)

	if err := checkSelf(actor, id, "update"); err != nil {
		inventoryLogger.Error("Failed to update user "+idStr, err.Error(), meta)
		return nil, err
	}

	if patch.Password != nil {
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			inventoryLogger.Error("Failed to update user "+idStr, err.Error(), meta)
			return nil, err
		}
		patch.HashedPassword = &hash
	}

	u, err := s.store.Users().Update(ctx, id, patch)
	if err != nil {
		inventoryLogger.Error("Failed to update user "+idStr, err.Error(), meta)
		return nil, err
	}

	inventoryLogger.Info("Updating user "+idStr+": OK", meta)

	return u, nil
}

// Deletes user with all products created or updated by this user.
// Users can delete only themselves.
func (s *Service) DeleteUser(ctx context.Context, id int64, actor *entity.User, meta logger.Meta) *Error.Status {
	idStr := strconv.FormatInt(id, 10)

	inventoryLogger.Info("Deleting user "+idStr+"...", meta)

	if err := checkSelf(actor, id, "delete"); err != nil {
		inventoryLogger.Error("Failed to delete user "+idStr, err.Error(), meta)
		return err
	}

	err := cascadeDelete(ctx, s.store,
		func(tx store.Store) store.Repository[entity.User] { return tx.Users() },
		id,
		func(tx store.Store) *Error.Status {
			if err := deleteProductsBy(ctx, tx, "created_by", id); err != nil {
				return err
			}
			return deleteProductsBy(ctx, tx, "updated_by", id)
		},
	)
	if err != nil {
		inventoryLogger.Error("Failed to delete user "+idStr, err.Error(), meta)
		return err
	}

	inventoryLogger.Info("Deleting user "+idStr+": OK", meta)

	return nil
}
