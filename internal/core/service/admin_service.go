package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/elegance/jewelry-catalog/internal/core/domain"
	"github.com/elegance/jewelry-catalog/internal/core/ports"
)

type adminService struct {
	repo       ports.AdminRepository
	revocation ports.RevocationStore
	tokenTTL   time.Duration
	log        zerolog.Logger
}

// NewAdminService returns the main-admin management use cases. revocation may be
// nil, in which case tokens of removed admins stay valid until they expire.
func NewAdminService(
	repo ports.AdminRepository,
	revocation ports.RevocationStore,
	tokenTTL time.Duration,
	log zerolog.Logger,
) ports.AdminService {
	return &adminService{
		repo:       repo,
		revocation: revocation,
		tokenTTL:   tokenTTL,
		log:        log,
	}
}

func (s *adminService) ListPending(ctx context.Context) ([]*domain.Admin, error) {
	role := domain.RolePending
	return s.repo.List(ctx, &role)
}

func (s *adminService) ListAll(ctx context.Context) ([]*domain.Admin, error) {
	return s.repo.List(ctx, nil)
}

// Approve promotes a pending admin. Approving an approved admin is a no-op.
func (s *adminService) Approve(ctx context.Context, id string) (*domain.Admin, error) {
	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch admin.Role {
	case domain.RoleApproved:
		return admin, nil
	case domain.RoleMain:
		return nil, domain.ErrProtectedRole
	case domain.RolePending:
	default:
		return nil, fmt.Errorf("approve: unexpected role %q", admin.Role)
	}

	approved, err := s.repo.UpdateRole(ctx, id, domain.RoleApproved)
	if err != nil {
		return nil, fmt.Errorf("approve: %w", err)
	}

	s.log.Info().Str("admin_id", id).Str("email", approved.Email).Msg("admin approved")
	return approved, nil
}

// Reject removes a pending registration outright.
func (s *adminService) Reject(ctx context.Context, id string) error {
	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if admin.Role != domain.RolePending {
		return domain.ErrNotPending
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("reject: %w", err)
	}
	s.revoke(ctx, id)

	s.log.Info().Str("admin_id", id).Str("email", admin.Email).Msg("admin registration rejected")
	return nil
}

func (s *adminService) Delete(ctx context.Context, actor domain.Claims, id string) error {
	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if target.ID == actor.AdminID {
		return domain.ErrSelfDeletion
	}
	if target.Role == domain.RoleMain {
		return domain.ErrProtectedRole
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	s.revoke(ctx, id)

	s.log.Info().
		Str("admin_id", id).
		Str("deleted_by", actor.AdminID).
		Msg("admin deleted")
	return nil
}

// revoke is best effort; an unrevoked token still expires after tokenTTL.
func (s *adminService) revoke(ctx context.Context, id string) {
	if s.revocation == nil {
		return
	}
	if err := s.revocation.Revoke(ctx, id, s.tokenTTL); err != nil {
		s.log.Warn().Err(err).Str("admin_id", id).Msg("failed to revoke admin tokens")
	}
}
