package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"yatube/internal/models"
)

type FollowRepositoryImpl struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) *FollowRepositoryImpl {
	return &FollowRepositoryImpl{db: db}
}

// Create inserts the (user, author) edge; an existing edge is left untouched.
func (r *FollowRepositoryImpl) Create(ctx context.Context, userID, authorID int64) error {
	query := r.db.Rebind(`
		INSERT INTO follows (user_id, author_id)
		VALUES (?, ?)
		ON CONFLICT (user_id, author_id) DO NOTHING
	`)

	_, err := r.db.ExecContext(ctx, query, userID, authorID)
	if err != nil {
		return fmt.Errorf("ошибка при создании подписки: %w", err)
	}

	return nil
}

// Delete removes the edge if present. Missing edge is not an error.
func (r *FollowRepositoryImpl) Delete(ctx context.Context, userID, authorID int64) error {
	query := r.db.Rebind(`DELETE FROM follows WHERE user_id = ? AND author_id = ?`)

	_, err := r.db.ExecContext(ctx, query, userID, authorID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении подписки: %w", err)
	}

	return nil
}

func (r *FollowRepositoryImpl) Exists(ctx context.Context, userID, authorID int64) (bool, error) {
	query := r.db.Rebind(`SELECT COUNT(*) FROM follows WHERE user_id = ? AND author_id = ?`)

	var count int
	err := r.db.GetContext(ctx, &count, query, userID, authorID)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке подписки: %w", err)
	}

	return count > 0, nil
}

func (r *FollowRepositoryImpl) GetByUserID(ctx context.Context, userID int64) ([]models.Follow, error) {
	query := r.db.Rebind(`
		SELECT f.follow_id, f.user_id, f.author_id,
		       u.username AS username,
		       a.username AS author_username
		FROM follows f
		JOIN users u ON u.user_id = f.user_id
		JOIN users a ON a.user_id = f.author_id
		WHERE f.user_id = ?
		ORDER BY a.username
	`)

	follows := []models.Follow{}
	err := r.db.SelectContext(ctx, &follows, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении подписок: %w", err)
	}

	return follows, nil
}
