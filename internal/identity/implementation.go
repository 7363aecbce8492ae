// internal/identity/implementation.go
package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"paddock/internal/apperr"
)

const tokenTTL = 24 * time.Hour

// service implements the Service interface.
type service struct {
	repo        Repository
	secret      []byte
	rateLimiter *rate.Limiter
}

// NewService creates a new identity service instance. secret signs the
// session tokens.
func NewService(repo Repository, secret []byte) Service {
	return &service{
		repo:        repo,
		secret:      secret,
		rateLimiter: rate.NewLimiter(rate.Every(time.Minute), 10), // 10 auth attempts per minute
	}
}

// Signup registers a new account and issues its first session token.
func (s *service) Signup(ctx context.Context, name, email, password, role string) (*User, string, error) {
	if !s.rateLimiter.Allow() {
		return nil, "", apperr.Conflict("too many authentication attempts, try again later")
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || email == "" {
		return nil, "", apperr.Validation("name and email are required")
	}
	if len(password) < 8 {
		return nil, "", apperr.Validation("password must be at least 8 characters")
	}
	if role != RoleAdmin && role != RoleEngineer {
		return nil, "", apperr.Validation(fmt.Sprintf("unknown role %q", role))
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, "", apperr.Conflict("that email is already registered")
	}

	passwordHash, salt, err := hashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: passwordHash,
		Salt:         salt,
		CreatedAt:    time.Now().UTC(),
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := signToken(s.secret, created.ID, created.Role, tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}
	return created, token, nil
}

// Login verifies credentials and issues a session token.
func (s *service) Login(ctx context.Context, email, password string) (*User, string, error) {
	if !s.rateLimiter.Allow() {
		return nil, "", apperr.Conflict("too many authentication attempts, try again later")
	}

	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, "", apperr.Unauthorized("invalid credentials")
	}

	ok, err := verifyPassword(password, user.Salt, user.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, "", apperr.Unauthorized("invalid credentials")
	}

	token, err := signToken(s.secret, user.ID, user.Role, tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}
	return user, token, nil
}

// Me resolves the account behind a session.
func (s *service) Me(ctx context.Context, userID uuid.UUID) (*User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, apperr.Unauthorized("invalid session")
	}
	return user, nil
}

// Verify parses and validates a session token.
func (s *service) Verify(token string) (*Session, error) {
	session, err := verifyToken(s.secret, token)
	if err != nil {
		return nil, apperr.Unauthorized("invalid or expired token")
	}
	return session, nil
}
