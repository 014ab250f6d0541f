package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/elegance/jewelry-catalog/internal/core/domain"
	"github.com/elegance/jewelry-catalog/internal/core/ports"
)

// StoreService owns the global online/offline flag.
type StoreService struct {
	repo ports.StoreStatusRepository
	now  func() time.Time
	log  zerolog.Logger
}

func NewStoreService(repo ports.StoreStatusRepository, log zerolog.Logger) *StoreService {
	return &StoreService{repo: repo, now: time.Now, log: log}
}

// Status returns the current flag, persisting "online" on the very first read.
func (s *StoreService) Status(ctx context.Context) (*domain.StoreStatus, error) {
	return s.repo.GetOrInit(ctx, domain.StoreStatus{
		Status:    domain.StoreOnline,
		UpdatedAt: s.now().UTC(),
	})
}

func (s *StoreService) SetStatus(ctx context.Context, state domain.StoreState) (*domain.StoreStatus, error) {
	if !state.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	status, err := s.repo.Set(ctx, domain.StoreStatus{
		Status:    state,
		UpdatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("status", string(status.Status)).Msg("store status changed")
	return status, nil
}
