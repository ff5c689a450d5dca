package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/agencyops/timeclock/internal/clock"
	"github.com/agencyops/timeclock/internal/domain"
	"github.com/agencyops/timeclock/internal/repository"
	"github.com/google/uuid"
)

type workerService struct {
	workers repository.WorkerRepo
	clock   clock.Clock
}

func NewWorkerService(workers repository.WorkerRepo, clk clock.Clock) WorkerService {
	return &workerService{workers: workers, clock: clk}
}

func (s *workerService) Register(ctx context.Context, displayName string) (*domain.Worker, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, fmt.Errorf("display name is required")
	}

	w := &domain.Worker{
		ID:          uuid.New().String(),
		DisplayName: displayName,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.workers.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *workerService) GetByID(ctx context.Context, id string) (*domain.Worker, error) {
	return s.workers.GetByID(ctx, id)
}

func (s *workerService) List(ctx context.Context) ([]*domain.Worker, error) {
	return s.workers.List(ctx)
}
