package auth

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Epiphane/wedding-site/internal/domain"
)

func TestBcryptHasher_GenerateSalt(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	hexRe := regexp.MustCompile(`^[0-9a-f]{64}$`)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		salt, err := h.GenerateSalt()
		require.NoError(t, err)
		assert.Regexp(t, hexRe, salt)
		assert.False(t, seen[salt], "salts repeat")
		seen[salt] = true
	}
}

func TestBcryptHasher_Compare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	salt, err := h.GenerateSalt()
	require.NoError(t, err)
	otherSalt, err := h.GenerateSalt()
	require.NoError(t, err)

	long := strings.Repeat("redwoods ", 20)
	hash, err := h.Hash(salt, long)
	require.NoError(t, err)

	tests := []struct {
		name     string
		salt     string
		password string
		wantErr  bool
	}{
		{name: "matching password", salt: salt, password: long},
		{name: "wrong password", salt: salt, password: "thomas", wantErr: true},
		{name: "differs past 72 bytes", salt: salt, password: long + "x", wantErr: true},
		{name: "wrong salt", salt: otherSalt, password: long, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.Compare(hash, tt.salt, tt.password)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidCredentials)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
