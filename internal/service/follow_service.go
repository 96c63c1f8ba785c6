package service

import (
	"context"

	"yatube/internal/models"
	"yatube/internal/repository"
)

type FollowService interface {
	Follow(ctx context.Context, userID int64, authorUsername string) (*models.User, error)
	Unfollow(ctx context.Context, userID int64, authorUsername string) (*models.User, error)
	IsFollowing(ctx context.Context, userID, authorID int64) (bool, error)
	GetFeed(ctx context.Context, userID int64) ([]models.Post, error)
	GetFollows(ctx context.Context, userID int64) ([]models.Follow, error)
}

type followService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	postRepo   repository.PostRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository, postRepo repository.PostRepository) FollowService {
	return &followService{
		followRepo: followRepo,
		userRepo:   userRepo,
		postRepo:   postRepo,
	}
}

// Follow subscribes userID to the author. Following yourself is ignored,
// following twice keeps a single edge.
func (s *followService) Follow(ctx context.Context, userID int64, authorUsername string) (*models.User, error) {
	author, err := s.userRepo.GetUserByUsername(ctx, authorUsername)
	if err != nil {
		return nil, err
	}

	if author.UserID == userID {
		return author, nil
	}

	if err := s.followRepo.Create(ctx, userID, author.UserID); err != nil {
		return nil, err
	}

	return author, nil
}

func (s *followService) Unfollow(ctx context.Context, userID int64, authorUsername string) (*models.User, error) {
	author, err := s.userRepo.GetUserByUsername(ctx, authorUsername)
	if err != nil {
		return nil, err
	}

	if err := s.followRepo.Delete(ctx, userID, author.UserID); err != nil {
		return nil, err
	}

	return author, nil
}

func (s *followService) IsFollowing(ctx context.Context, userID, authorID int64) (bool, error) {
	if userID == authorID {
		return false, nil
	}
	return s.followRepo.Exists(ctx, userID, authorID)
}

func (s *followService) GetFeed(ctx context.Context, userID int64) ([]models.Post, error) {
	return s.postRepo.GetFollowed(ctx, userID)
}

func (s *followService) GetFollows(ctx context.Context, userID int64) ([]models.Follow, error) {
	return s.followRepo.GetByUserID(ctx, userID)
}
