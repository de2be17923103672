package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordService_Hash(t *testing.T) {
	ps := NewPasswordServiceWithCost(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"plain", "secret", false},
		{"symbols", "p@$$w0rd!#%", false},
		{"at bcrypt limit", strings.Repeat("a", maxPasswordBytes), false},
		{"over bcrypt limit", strings.Repeat("a", maxPasswordBytes+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := ps.Hash(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, hash)
				return
			}
			require.NoError(t, err)

			cost, err := bcrypt.Cost([]byte(hash))
			require.NoError(t, err)
			assert.Equal(t, bcrypt.MinCost, cost)
			assert.NoError(t, ps.Verify(hash, tt.password))
		})
	}
}

func TestPasswordService_HashIsSalted(t *testing.T) {
	ps := NewPasswordServiceWithCost(bcrypt.MinCost)

	a, err := ps.Hash("secret")
	require.NoError(t, err)
	b, err := ps.Hash("secret")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestPasswordService_Verify(t *testing.T) {
	ps := NewPasswordServiceWithCost(bcrypt.MinCost)
	hash, err := ps.Hash("secret")
	require.NoError(t, err)

	assert.ErrorIs(t, ps.Verify(hash, "Secret"), ErrInvalidPassword)
	assert.ErrorIs(t, ps.Verify(hash, ""), ErrInvalidPassword)

	err = ps.Verify("not-a-bcrypt-hash", "secret")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidPassword, "a corrupt hash is not a wrong password")
}

func TestNewPasswordService_DefaultCost(t *testing.T) {
	assert.Equal(t, defaultCost, NewPasswordService().cost)
}
