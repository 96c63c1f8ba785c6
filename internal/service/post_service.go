package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/models"
	"yatube/internal/repository"
	"yatube/internal/storage"
)

type PostService interface {
	GetIndexPosts(ctx context.Context) ([]models.Post, error)
	GetGroupPosts(ctx context.Context, slug string) (*models.Group, []models.Post, error)
	GetAuthorPosts(ctx context.Context, authorID int64) ([]models.Post, error)
	GetPost(ctx context.Context, postID int64) (*models.Post, error)
	GetGroups(ctx context.Context) ([]models.Group, error)
	CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, req repository.UpdatePostRequest) (*models.Post, error)
}

type postService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
	storage   storage.Storage
	cache     cache.Cache
	cfg       *config.Config
}

func NewPostService(postRepo repository.PostRepository, groupRepo repository.GroupRepository, storage storage.Storage, store cache.Cache, cfg *config.Config) PostService {
	return &postService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
		storage:   storage,
		cache:     store,
		cfg:       cfg,
	}
}

// GetIndexPosts returns all posts through the listing cache.
func (p *postService) GetIndexPosts(ctx context.Context) ([]models.Post, error) {
	return cache.Remember(ctx, p.cache, p.cfg.Cache.IndexKey, p.cfg.Cache.IndexTTL, p.postRepo.GetAll)
}

func (p *postService) GetGroupPosts(ctx context.Context, slug string) (*models.Group, []models.Post, error) {
	group, err := p.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	posts, err := p.postRepo.GetByGroupID(ctx, group.GroupID)
	if err != nil {
		return nil, nil, err
	}

	return group, posts, nil
}

func (p *postService) GetAuthorPosts(ctx context.Context, authorID int64) ([]models.Post, error) {
	return p.postRepo.GetByAuthorID(ctx, authorID)
}

func (p *postService) GetPost(ctx context.Context, postID int64) (*models.Post, error) {
	return p.postRepo.GetByID(ctx, postID)
}

func (p *postService) GetGroups(ctx context.Context) ([]models.Group, error) {
	return p.groupRepo.GetAll(ctx)
}

func (p *postService) CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		AuthorID: req.AuthorID,
		Text:     req.Text,
		GroupID:  req.GroupID,
	}

	if req.Image != nil {
		objectName, err := p.uploadImage(ctx, req.Image)
		if err != nil {
			return nil, err
		}
		post.Image = objectName
	}

	err := p.postRepo.Create(ctx, post)
	if err != nil {
		// the row was not written, drop the orphaned object
		p.deleteImage(ctx, post.Image)
		return nil, err
	}

	return post, nil
}

// UpdatePost applies an edit made by req.UserID. Only the author may edit.
func (p *postService) UpdatePost(ctx context.Context, req repository.UpdatePostRequest) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != req.UserID {
		return nil, ErrForbidden
	}

	oldImage := post.Image

	post.Text = req.Text
	post.GroupID = req.GroupID

	switch {
	case req.Image != nil:
		objectName, err := p.uploadImage(ctx, req.Image)
		if err != nil {
			return nil, err
		}
		post.Image = objectName
	case req.ClearImage:
		post.Image = ""
	}

	err = p.postRepo.Update(ctx, post)
	if err != nil {
		if post.Image != oldImage {
			p.deleteImage(ctx, post.Image)
		}
		return nil, err
	}

	if post.Image != oldImage {
		p.deleteImage(ctx, oldImage)
	}

	return post, nil
}

func (p *postService) uploadImage(ctx context.Context, image *repository.ImageUpload) (string, error) {
	objectName, err := p.storage.UploadImage(ctx, image.FileName, bytes.NewReader(image.Data), int64(len(image.Data)), image.ContentType)
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки изображения: %w", err)
	}
	return objectName, nil
}

func (p *postService) deleteImage(ctx context.Context, objectName string) {
	if objectName == "" {
		return
	}
	if err := p.storage.DeleteImage(ctx, objectName); err != nil {
		log.Printf("Предупреждение: не удалось удалить изображение %s: %v", objectName, err)
	}
}
