package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"yatube/internal/models"
)

type PostRepositoryImpl struct {
	db *sqlx.DB
}

type CreatePostRequest struct {
	AuthorID int64        `json:"author_id"`
	Text     string       `json:"text"`
	GroupID  *int64       `json:"group_id"`
	Image    *ImageUpload `json:"-"`
}

type UpdatePostRequest struct {
	PostID     int64        `json:"post_id"`
	UserID     int64        `json:"user_id"`
	Text       string       `json:"text"`
	GroupID    *int64       `json:"group_id"`
	Image      *ImageUpload `json:"-"`
	ClearImage bool         `json:"clear_image"`
}

// ImageUpload is an uploaded file already read into memory and checked.
type ImageUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

const selectPosts = `
	SELECT p.post_id, p.text, p.created_at, p.author_id, p.group_id, p.image,
	       u.username AS author_username,
	       g.title AS group_title,
	       g.slug AS group_slug
	FROM posts p
	JOIN users u ON u.user_id = p.author_id
	LEFT JOIN post_groups g ON g.group_id = p.group_id
`

const orderPosts = ` ORDER BY p.created_at DESC, p.post_id DESC`

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := r.db.Rebind(`
		INSERT INTO posts (text, created_at, author_id, group_id, image)
		VALUES (?, ?, ?, ?, ?)
		RETURNING post_id
	`)

	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}

	err := r.db.QueryRowxContext(ctx, query,
		post.Text,
		post.CreatedAt,
		post.AuthorID,
		post.GroupID,
		post.Image,
	).Scan(&post.PostID)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	query := r.db.Rebind(selectPosts + ` WHERE p.post_id = ?`)

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %d: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) GetAll(ctx context.Context) ([]models.Post, error) {
	return r.selectPosts(ctx, selectPosts+orderPosts)
}

func (r *PostRepositoryImpl) GetByGroupID(ctx context.Context, groupID int64) ([]models.Post, error) {
	return r.selectPosts(ctx, selectPosts+` WHERE p.group_id = ?`+orderPosts, groupID)
}

func (r *PostRepositoryImpl) GetByAuthorID(ctx context.Context, authorID int64) ([]models.Post, error) {
	return r.selectPosts(ctx, selectPosts+` WHERE p.author_id = ?`+orderPosts, authorID)
}

// GetFollowed returns posts of every author userID follows.
func (r *PostRepositoryImpl) GetFollowed(ctx context.Context, userID int64) ([]models.Post, error) {
	return r.selectPosts(ctx, selectPosts+`
	WHERE p.author_id IN (SELECT f.author_id FROM follows f WHERE f.user_id = ?)`+orderPosts, userID)
}

func (r *PostRepositoryImpl) selectPosts(ctx context.Context, query string, args ...interface{}) ([]models.Post, error) {
	posts := []models.Post{}
	err := r.db.SelectContext(ctx, &posts, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := r.db.Rebind(`
		UPDATE posts SET
			text = ?,
			group_id = ?,
			image = ?
		WHERE post_id = ? AND author_id = ?
	`)

	result, err := r.db.ExecContext(ctx, query, post.Text, post.GroupID, post.Image, post.PostID, post.AuthorID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %d: %w", post.PostID, ErrNotFound)
	}

	return nil
}
