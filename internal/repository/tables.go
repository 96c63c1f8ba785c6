package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Tables is the list of application tables reported by CountRows.
var Tables = []string{"users", "post_groups", "posts", "comments", "follows"}

type tablesRepository struct {
	db *sqlx.DB
}

func NewTablesRepository(db *sqlx.DB) TablesRepository {
	return &tablesRepository{db: db}
}

func (r *tablesRepository) CountRows(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(Tables))

	for _, table := range Tables {
		var count int
		// table names come from the fixed list above
		err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM `+table)
		if err != nil {
			return nil, fmt.Errorf("ошибка при подсчёте строк таблицы %s: %w", table, err)
		}
		counts[table] = count
	}

	return counts, nil
}
