package authn

import (
	"net/http"
	Error "warehouse/packages/common/errors"
	"warehouse/packages/common/logger"

	"golang.org/x/crypto/bcrypt"
)

var authnLogger = logger.NewSource("AUTHN", logger.Default)

const DefaultCost = 12

var InvalidAuthCredentials = Error.NewStatusError(
	"Invalid username or password",
	http.StatusUnauthorized,
)

type Hasher struct {
	cost int
}

// Zero cost means DefaultCost.
// Cost out of the bcrypt range causes panic.
func NewHasher(cost int) *Hasher {
	if cost == 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		authnLogger.Panic("Failed to create hasher", "invalid bcrypt cost", nil)
	}
	return &Hasher{cost}
}

// IMPORTANT: This is expensive operation! (Takes about 200-220 ms with default cost)
//
// Returns salted hash of the plaintext, so each call produces different output.
func (h *Hasher) Hash(plaintext string) (string, *Error.Status) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		// Plaintext isn't logged on purpose
		authnLogger.Error("Failed to hash password", err.Error(), nil)
		return "", Error.StatusInternalError
	}
	return string(hash), nil
}

// Returns false on mismatch or if hash is malformed.
func (h *Hasher) Verify(plaintext string, hash string) bool {
	return CompareHashAndPassword(hash, plaintext) == nil
}

// IMPORTANT: This is expensive operation!
//
// Compares hashed password with its possible plaintext equivalent.
// Returns nil on success, otherwise returns InvalidAuthCredentials error.
func CompareHashAndPassword(hash string, password string) *Error.Status {
	if e := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); e != nil {
		return InvalidAuthCredentials
	}
	return nil
}
