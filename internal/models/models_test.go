package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModelsString(t *testing.T) {
	slug := "test-slug"
	groupID := int64(1)

	tests := []struct {
		name     string
		model    interface{ String() string }
		expected string
	}{
		{
			name:     "Группа выводит заголовок",
			model:    Group{Title: "Тестовая группа", Slug: "test-slug"},
			expected: "Тестовая группа",
		},
		{
			name:     "Короткий пост выводится целиком",
			model:    Post{Text: "Тестовый пост"},
			expected: "Тестовый пост",
		},
		{
			name:     "Длинный пост обрезается до 15 символов",
			model:    Post{Text: "Очень длинный текст тестового поста", GroupID: &groupID, GroupSlug: &slug},
			expected: "Очень длинный т",
		},
		{
			name:     "Комментарий",
			model:    Comment{Text: "Тест коммент"},
			expected: "Тест коммент",
		},
		{
			name:     "Подписка",
			model:    Follow{Username: "auth", AuthorUsername: "auth2"},
			expected: "auth -> auth2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.model.String())
		})
	}
}

func TestUserFullName(t *testing.T) {
	assert.Equal(t, "Лев Толстой", User{Username: "leo", FirstName: "Лев", LastName: "Толстой"}.FullName())
	assert.Equal(t, "Лев", User{Username: "leo", FirstName: "Лев"}.FullName())
	assert.Equal(t, "leo", User{Username: "leo"}.FullName())
}

func TestPostHasGroup(t *testing.T) {
	slug := "cats"
	id := int64(3)

	assert.False(t, Post{}.HasGroup())
	assert.True(t, Post{GroupID: &id, GroupSlug: &slug}.HasGroup())
}
