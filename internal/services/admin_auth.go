package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Epiphane/wedding-site/internal/domain"
)

const adminSubject = "admin"

type adminAuthService struct {
	hasher   domain.PasswordHasher
	issuer   domain.TokenIssuer
	verifier domain.TokenVerifier
	salt     string
	hash     string
	tokenTTL time.Duration
}

// NewAdminAuthService hashes the shared admin password once so requests compare against the hash.
func NewAdminAuthService(hasher domain.PasswordHasher, issuer domain.TokenIssuer, verifier domain.TokenVerifier, password string, tokenTTL time.Duration) (domain.AdminAuthenticator, error) {
	if password == "" {
		return nil, errors.New("admin password must not be empty")
	}
	salt, err := hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("admin password salt: %w", err)
	}
	hash, err := hasher.Hash(salt, password)
	if err != nil {
		return nil, fmt.Errorf("admin password hash: %w", err)
	}
	return &adminAuthService{
		hasher:   hasher,
		issuer:   issuer,
		verifier: verifier,
		salt:     salt,
		hash:     hash,
		tokenTTL: tokenTTL,
	}, nil
}

func (s *adminAuthService) CheckPassword(password string) bool {
	return s.hasher.Compare(s.hash, s.salt, password) == nil
}

func (s *adminAuthService) Login(_ context.Context, password string) (string, error) {
	if !s.CheckPassword(password) {
		return "", domain.ErrInvalidCredentials
	}
	token, err := s.issuer.Issue(adminSubject, []string{domain.AdminRole}, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("issue admin token: %w", err)
	}
	return token, nil
}

func (s *adminAuthService) VerifyToken(token string) error {
	_, roles, err := s.verifier.Verify(token)
	if err != nil {
		return err
	}
	if !slices.Contains(roles, domain.AdminRole) {
		return domain.ErrInvalidCredentials
	}
	return nil
}
