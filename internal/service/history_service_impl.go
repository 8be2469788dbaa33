package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/askjira/internal/app"
	"github.com/alexanderramin/askjira/internal/domain"
	"github.com/alexanderramin/askjira/internal/repository"
)

type historyService struct {
	runs repository.RunRepo
}

func NewHistoryService(runs repository.RunRepo) app.HistoryUseCase {
	return &historyService{runs: runs}
}

func (s *historyService) ListRuns(ctx context.Context, limit int) ([]*domain.Run, error) {
	runs, err := s.runs.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing journal: %w", err)
	}
	return runs, nil
}

func (s *historyService) ShowRun(ctx context.Context, idPrefix string) (*app.RunDetail, error) {
	run, err := s.runs.GetByPrefix(ctx, idPrefix)
	if err != nil {
		return nil, err
	}
	items, err := s.runs.ListItems(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	return &app.RunDetail{Run: run, Items: items}, nil
}
