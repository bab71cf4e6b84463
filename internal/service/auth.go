package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"blog_cms/internal/config"
	"blog_cms/internal/domain"
)

// AuthService verifies credentials and issues/validates session tokens.
type AuthService struct {
	principals PrincipalStore
	tokens     TokenIssuer
	logger     *slog.Logger
	config     config.AuthConfig
}

func NewAuthService(
	principals PrincipalStore,
	tokens TokenIssuer,
	logger *slog.Logger,
	cfg config.AuthConfig,
) *AuthService {
	return &AuthService{
		principals: principals,
		tokens:     tokens,
		logger:     logger.With("service", "auth"),
		config:     cfg,
	}
}

// Login checks the credentials and issues a signed token. A missing
// principal and a wrong password both return the same ErrUnauthorized so
// the response never reveals which check failed.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Principal, error) {
	principal, err := s.principals.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrUnauthorized
		}
		s.logger.Error("lookup principal", "error", err)
		return "", nil, fmt.Errorf("%w: lookup principal", domain.ErrStorage)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(principal.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrUnauthorized
	}

	tok, err := s.tokens.Issue(principal.ID, principal.Username)
	if err != nil {
		s.logger.Error("issue token", "error", err)
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("login succeeded", "username", principal.Username)
	return tok, principal, nil
}

// Verify validates the token and confirms the encoded principal still
// exists. Deleting a principal revokes every token it ever held.
func (s *AuthService) Verify(ctx context.Context, tokenStr string) (*domain.AuthContext, error) {
	if tokenStr == "" {
		return nil, domain.ErrUnauthorized
	}

	claims, err := s.tokens.Verify(tokenStr)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	principal, err := s.principals.GetByID(ctx, claims.PrincipalID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		s.logger.Error("lookup principal", "error", err)
		return nil, fmt.Errorf("%w: lookup principal", domain.ErrStorage)
	}

	return &domain.AuthContext{
		PrincipalID: principal.ID,
		Username:    principal.Username,
	}, nil
}

// EnsureBootstrapPrincipal provisions the default admin account when no
// principal exists yet. Idempotent; run once at process start. The default
// credential pair is a documented setup convenience the operator is
// expected to rotate, not a security boundary.
func (s *AuthService) EnsureBootstrapPrincipal(ctx context.Context) error {
	count, err := s.principals.Count(ctx)
	if err != nil {
		return fmt.Errorf("count principals: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.config.BootstrapPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}

	principal := &domain.Principal{
		ID:           uuid.NewString(),
		Username:     s.config.BootstrapUsername,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.principals.Create(ctx, principal); err != nil {
		return fmt.Errorf("create bootstrap principal: %w", err)
	}

	s.logger.Info("bootstrap principal created, rotate the default credentials",
		"username", principal.Username,
	)
	return nil
}
