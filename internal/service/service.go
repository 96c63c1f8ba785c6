package service

import (
	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/repository"
	"yatube/internal/storage"
)

type Service struct {
	User    UserService
	Post    PostService
	Comment CommentService
	Follow  FollowService
	Auth    AuthService
	Tables  TablesService
	Health  HealthService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, store cache.Cache, db Checker) *Service {
	return &Service{
		User:    NewUserService(rep.User),
		Post:    NewPostService(rep.Post, rep.Group, storage, store, cfg),
		Comment: NewCommentService(rep.Comment, rep.Post),
		Follow:  NewFollowService(rep.Follow, rep.User, rep.Post),
		Auth:    NewAuthService(rep.User, cfg),
		Tables:  NewTablesService(rep.Tables),
		Health:  NewHealthService(db, CheckerFunc(store.Ping), storage),
	}
}
