package domain

import (
	"context"
	"time"
)

// AdminRole is the role claim carried by admin tokens.
const AdminRole = "admin"

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues signed tokens for a subject.
type TokenIssuer interface {
	Issue(subject string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns its subject and roles.
type TokenVerifier interface {
	Verify(token string) (subject string, roles []string, err error)
}

// AdminAuthenticator gates the guest-management endpoints behind the shared admin password.
type AdminAuthenticator interface {
	CheckPassword(password string) bool
	Login(ctx context.Context, password string) (token string, err error)
	VerifyToken(token string) error
}
