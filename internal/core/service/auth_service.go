package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/elegance/jewelry-catalog/internal/core/domain"
	"github.com/elegance/jewelry-catalog/internal/core/ports"
)

const (
	passwordCost      = 12
	minPasswordLength = 6
)

// AuthService implements admin self-registration, login and boot-time seeding.
type AuthService struct {
	repo   ports.AdminRepository
	tokens *TokenManager
	cost   int
	log    zerolog.Logger
}

func NewAuthService(repo ports.AdminRepository, tokens *TokenManager, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, cost: passwordCost, log: log}
}

// Register stores a new pending admin. No token is issued: the account must be
// approved by the main admin before it can log in.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*domain.Admin, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || name == "" {
		return nil, domain.Validationf("email and name are required")
	}
	if len(password) < minPasswordLength {
		return nil, domain.Validationf("password must be at least %d characters", minPasswordLength)
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrAdminNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	admin, err := s.create(ctx, email, password, name, domain.RolePending)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("admin_id", admin.ID).Str("email", admin.Email).Msg("admin registered, awaiting approval")
	return admin, nil
}

// Login verifies credentials and returns a signed token plus the public profile.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Admin, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.Validationf("email and password are required")
	}

	admin, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if admin.Role == domain.RolePending {
		return "", nil, domain.ErrPendingApproval
	}

	token, err := s.tokens.Issue(admin)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("admin_id", admin.ID).Str("role", string(admin.Role)).Msg("admin logged in")
	return token, admin, nil
}

// SeedMainAdmin creates the main admin when no admin exists yet.
// It reports whether a record was created.
func (s *AuthService) SeedMainAdmin(ctx context.Context, email, password, name string) (bool, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("seed: count admins: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	if password == "" {
		return false, domain.ErrSeedPasswordRequired
	}

	admin, err := s.create(ctx, normalizeEmail(email), password, strings.TrimSpace(name), domain.RoleMain)
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}

	s.log.Warn().Str("admin_id", admin.ID).Str("email", admin.Email).Msg("seeded main admin, rotate SEED_ADMIN_PASSWORD after first login")
	return true, nil
}

func (s *AuthService) create(ctx context.Context, email, password, name string, role domain.Role) (*domain.Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, &domain.Admin{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
