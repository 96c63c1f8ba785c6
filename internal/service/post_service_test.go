package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"yatube/internal/cache"
	"yatube/internal/models"
	"yatube/internal/repository"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func newTestPostService(postRepo *MockPostRepository, groupRepo *MockGroupRepository, store *MockStorage) PostService {
	return NewPostService(postRepo, groupRepo, store, cache.NewMemoryCache(), testConfig())
}

func TestPostService_GetIndexPostsCached(t *testing.T) {
	postRepo := new(MockPostRepository)
	postRepo.On("GetAll", mock.Anything).
		Return([]models.Post{{PostID: 2, Text: "Второй"}, {PostID: 1, Text: "Первый"}}, nil).
		Once()

	svc := newTestPostService(postRepo, new(MockGroupRepository), new(MockStorage))

	first, err := svc.GetIndexPosts(context.Background())
	require.NoError(t, err)
	second, err := svc.GetIndexPosts(context.Background())
	require.NoError(t, err)

	require.Len(t, second, 2)
	assert.Equal(t, first[0].PostID, second[0].PostID)
	assert.Equal(t, "Первый", second[1].Text)
	postRepo.AssertNumberOfCalls(t, "GetAll", 1)
}

func TestPostService_GetGroupPosts(t *testing.T) {
	t.Run("Группа найдена", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		groupRepo := new(MockGroupRepository)
		groupRepo.On("GetBySlug", mock.Anything, "cats").Return(&models.Group{GroupID: 3, Slug: "cats"}, nil)
		postRepo.On("GetByGroupID", mock.Anything, int64(3)).Return([]models.Post{{PostID: 1}}, nil)

		group, posts, err := newTestPostService(postRepo, groupRepo, new(MockStorage)).GetGroupPosts(context.Background(), "cats")
		require.NoError(t, err)
		assert.Equal(t, int64(3), group.GroupID)
		assert.Len(t, posts, 1)
	})

	t.Run("Группа не найдена", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		groupRepo := new(MockGroupRepository)
		groupRepo.On("GetBySlug", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

		_, _, err := newTestPostService(postRepo, groupRepo, new(MockStorage)).GetGroupPosts(context.Background(), "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		postRepo.AssertNotCalled(t, "GetByGroupID", mock.Anything, mock.Anything)
	})
}

func TestPostService_CreatePost(t *testing.T) {
	image := &repository.ImageUpload{FileName: "small.gif", ContentType: "image/gif", Data: []byte("GIF")}

	t.Run("Пост с картинкой", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		store := new(MockStorage)
		store.On("UploadImage", mock.Anything, "small.gif", mock.Anything, int64(3), "image/gif").
			Return("posts/2024/01/x.gif", nil)
		postRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
			return p.Image == "posts/2024/01/x.gif" && p.Text == "Тестовый текст" && *p.GroupID == 2
		})).Return(nil)

		post, err := newTestPostService(postRepo, new(MockGroupRepository), store).CreatePost(context.Background(), repository.CreatePostRequest{
			AuthorID: 1,
			Text:     "Тестовый текст",
			GroupID:  int64Ptr(2),
			Image:    image,
		})

		require.NoError(t, err)
		assert.Equal(t, "posts/2024/01/x.gif", post.Image)
		store.AssertExpectations(t)
		postRepo.AssertExpectations(t)
	})

	t.Run("Пост без картинки", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		store := new(MockStorage)
		postRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Post")).Return(nil)

		post, err := newTestPostService(postRepo, new(MockGroupRepository), store).CreatePost(context.Background(), repository.CreatePostRequest{
			AuthorID: 1,
			Text:     "Текст",
		})

		require.NoError(t, err)
		assert.Empty(t, post.Image)
		store.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Ошибка БД удаляет загруженный файл", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		store := new(MockStorage)
		store.On("UploadImage", mock.Anything, "small.gif", mock.Anything, int64(3), "image/gif").
			Return("posts/2024/01/x.gif", nil)
		store.On("DeleteImage", mock.Anything, "posts/2024/01/x.gif").Return(nil)
		postRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("database error"))

		post, err := newTestPostService(postRepo, new(MockGroupRepository), store).CreatePost(context.Background(), repository.CreatePostRequest{
			AuthorID: 1,
			Text:     "Текст",
			Image:    image,
		})

		assert.Error(t, err)
		assert.Nil(t, post)
		store.AssertExpectations(t)
	})
}

func TestPostService_UpdatePost(t *testing.T) {
	existing := func() *models.Post {
		return &models.Post{PostID: 5, AuthorID: 1, Text: "Старый текст", Image: "posts/old.gif"}
	}

	t.Run("Чужой пост не меняется", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, int64(5)).Return(existing(), nil)

		_, err := newTestPostService(postRepo, new(MockGroupRepository), new(MockStorage)).UpdatePost(context.Background(), repository.UpdatePostRequest{
			PostID: 5,
			UserID: 2,
			Text:   "Взлом",
		})

		assert.ErrorIs(t, err, ErrForbidden)
		postRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Картинка сохраняется без новой загрузки", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		store := new(MockStorage)
		postRepo.On("GetByID", mock.Anything, int64(5)).Return(existing(), nil)
		postRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
			return p.Text == "Новый текст" && p.Image == "posts/old.gif" && p.GroupID == nil
		})).Return(nil)

		post, err := newTestPostService(postRepo, new(MockGroupRepository), store).UpdatePost(context.Background(), repository.UpdatePostRequest{
			PostID: 5,
			UserID: 1,
			Text:   "Новый текст",
		})

		require.NoError(t, err)
		assert.Equal(t, "posts/old.gif", post.Image)
		store.AssertNotCalled(t, "DeleteImage", mock.Anything, mock.Anything)
	})

	t.Run("Очистка картинки", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		store := new(MockStorage)
		postRepo.On("GetByID", mock.Anything, int64(5)).Return(existing(), nil)
		postRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
			return p.Image == ""
		})).Return(nil)
		store.On("DeleteImage", mock.Anything, "posts/old.gif").Return(nil)

		_, err := newTestPostService(postRepo, new(MockGroupRepository), store).UpdatePost(context.Background(), repository.UpdatePostRequest{
			PostID:     5,
			UserID:     1,
			Text:       "Новый текст",
			ClearImage: true,
		})

		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("Замена картинки", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		store := new(MockStorage)
		postRepo.On("GetByID", mock.Anything, int64(5)).Return(existing(), nil)
		store.On("UploadImage", mock.Anything, "new.gif", mock.Anything, int64(3), "image/gif").Return("posts/new.gif", nil)
		postRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
			return p.Image == "posts/new.gif"
		})).Return(nil)
		store.On("DeleteImage", mock.Anything, "posts/old.gif").Return(nil)

		post, err := newTestPostService(postRepo, new(MockGroupRepository), store).UpdatePost(context.Background(), repository.UpdatePostRequest{
			PostID: 5,
			UserID: 1,
			Text:   "Новый текст",
			Image:  &repository.ImageUpload{FileName: "new.gif", ContentType: "image/gif", Data: []byte("GIF")},
		})

		require.NoError(t, err)
		assert.Equal(t, "posts/new.gif", post.Image)
		store.AssertExpectations(t)
	})

	t.Run("Пост не найден", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, int64(5)).Return(nil, repository.ErrNotFound)

		_, err := newTestPostService(postRepo, new(MockGroupRepository), new(MockStorage)).UpdatePost(context.Background(), repository.UpdatePostRequest{
			PostID: 5,
			UserID: 1,
		})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
