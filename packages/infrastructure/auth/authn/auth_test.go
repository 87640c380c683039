package authn

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCompareHashAndPassword(t *testing.T) {
	password := "testPassword123"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name     string
		hash     string
		password string
		wantErr  bool
	}{
		{"valid password comparison", string(hash), password, false},
		{"invalid password comparison", string(hash), "wrongPassword", true},
		{"empty password with valid hash", string(hash), "", true},
		{"empty hash with password", "", password, true},
		{"both empty strings", "", "", true},
		{"malformed hash", "not-a-valid-hash", password, true},
		{"hash with wrong format", "$2a$10$", password, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CompareHashAndPassword(tt.hash, tt.password)

			if tt.wantErr {
				assert.Equal(t, InvalidAuthCredentials, err)
				assert.Equal(t, 401, err.Status())
				return
			}

			assert.Nil(t, err)
		})
	}
}

func TestHasher(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("secret")
	require.Nil(t, err)
	second, err := h.Hash("secret")
	require.Nil(t, err)

	// Salted
	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, "secret")

	assert.True(t, h.Verify("secret", first))
	assert.True(t, h.Verify("secret", second))
	assert.False(t, h.Verify("other", first))
	assert.False(t, h.Verify("secret", "malformed"))

	other, err := h.Hash("other")
	require.Nil(t, err)
	assert.False(t, h.Verify("secret", other))
}

func TestHasherCost(t *testing.T) {
	assert.Equal(t, DefaultCost, NewHasher(0).cost)

	for _, cost := range []int{bcrypt.MinCost, bcrypt.MinCost + 1} {
		t.Run(fmt.Sprintf("cost_%d", cost), func(t *testing.T) {
			h := NewHasher(cost)

			hash, err := h.Hash("password")
			require.Nil(t, err)

			actual, e := bcrypt.Cost([]byte(hash))
			require.NoError(t, e)
			assert.Equal(t, cost, actual)
		})
	}
}

func BenchmarkCompareHashAndPassword(b *testing.B) {
	password := "benchmarkPassword123"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		b.Fatalf("Failed to generate test hash: %v", err)
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		CompareHashAndPassword(string(hash), password)
	}
}
