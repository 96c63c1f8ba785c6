package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"yatube/internal/models"
)

type GroupRepositoryImpl struct {
	db *sqlx.DB
}

func NewGroupRepository(db *sqlx.DB) *GroupRepositoryImpl {
	return &GroupRepositoryImpl{db: db}
}

func (r *GroupRepositoryImpl) Create(ctx context.Context, group *models.Group) error {
	query := r.db.Rebind(`
		INSERT INTO post_groups (title, slug, description)
		VALUES (?, ?, ?)
		RETURNING group_id
	`)

	err := r.db.QueryRowxContext(ctx, query, group.Title, group.Slug, group.Description).Scan(&group.GroupID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("группа со slug %s: %w", group.Slug, ErrAlreadyExists)
		}
		return fmt.Errorf("ошибка при создании группы: %w", err)
	}

	return nil
}

func (r *GroupRepositoryImpl) GetByID(ctx context.Context, groupID int64) (*models.Group, error) {
	query := r.db.Rebind(`SELECT group_id, title, slug, description FROM post_groups WHERE group_id = ?`)

	var group models.Group
	err := r.db.GetContext(ctx, &group, query, groupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("группа с ID %d: %w", groupID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении группы: %w", err)
	}

	return &group, nil
}

func (r *GroupRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	query := r.db.Rebind(`SELECT group_id, title, slug, description FROM post_groups WHERE slug = ?`)

	var group models.Group
	err := r.db.GetContext(ctx, &group, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("группа %s: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении группы: %w", err)
	}

	return &group, nil
}

func (r *GroupRepositoryImpl) GetAll(ctx context.Context) ([]models.Group, error) {
	query := `SELECT group_id, title, slug, description FROM post_groups ORDER BY title`

	groups := []models.Group{}
	err := r.db.SelectContext(ctx, &groups, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении групп: %w", err)
	}

	return groups, nil
}
