package service

import (
	"context"

	"yatube/internal/repository"
)

type TablesService interface {
	GetRowCounts(ctx context.Context) (map[string]int, error)
}

type tablesService struct {
	tablesRepo repository.TablesRepository
}

func NewTablesService(tablesRepo repository.TablesRepository) TablesService {
	return &tablesService{tablesRepo: tablesRepo}
}

func (t *tablesService) GetRowCounts(ctx context.Context) (map[string]int, error) {
	return t.tablesRepo.CountRows(ctx)
}
