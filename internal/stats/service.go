package stats

import (
	"context"
	"fmt"
)

type Repository interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	d, err := s.repo.Dashboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading dashboard stats: %w", err)
	}

	return d, nil
}
