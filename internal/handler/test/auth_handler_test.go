package test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSignup(t *testing.T) {
	t.Run("Успешная регистрация", func(t *testing.T) {
		app := newTestApp(t)

		rr := app.postForm(t, "/auth/signup/", url.Values{
			"first_name": {"Лев"},
			"last_name":  {"Толстой"},
			"username":   {"leo"},
			"email":      {"leo@example.com"},
			"password":   {"password123"},
		}, nil)

		require.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/", rr.Header().Get("Location"))

		cookie := findCookie(rr.Result().Cookies(), app.cfg.Auth.CookieName)
		require.NotNil(t, cookie)
		assert.NotEmpty(t, cookie.Value)
		assert.True(t, cookie.HttpOnly)

		user, err := app.repo.User.GetUserByUsername(context.Background(), "leo")
		require.NoError(t, err)
		assert.Equal(t, "Лев Толстой", user.FullName())
		assert.NotEqual(t, "password123", user.PasswordHash)
	})

	t.Run("Имя уже занято", func(t *testing.T) {
		app := newTestApp(t)
		app.createUser(t, "leo")

		rr := app.postForm(t, "/auth/signup/", url.Values{
			"username": {"leo"},
			"password": {"password123"},
		}, nil)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Пользователь с таким именем уже существует.")
		assert.Nil(t, findCookie(rr.Result().Cookies(), app.cfg.Auth.CookieName))
	})

	invalid := []struct {
		name    string
		values  url.Values
		message string
	}{
		{
			name:    "Без имени пользователя",
			values:  url.Values{"password": {"password123"}},
			message: "Обязательное поле.",
		},
		{
			name:    "Короткий пароль",
			values:  url.Values{"username": {"leo"}, "password": {"short"}},
			message: "не менее 8 символов",
		},
		{
			name:    "Недопустимые символы в имени",
			values:  url.Values{"username": {"leo tolstoy"}, "password": {"password123"}},
			message: "Введите правильное имя пользователя.",
		},
		{
			name:    "Неверный email",
			values:  url.Values{"username": {"leo"}, "email": {"not-an-email"}, "password": {"password123"}},
			message: "Введите правильный адрес электронной почты.",
		},
		{
			name:    "Пароль длиннее 72 байт",
			values:  url.Values{"username": {"longpass"}, "password": {strings.Repeat("a", 80)}},
			message: "Пароль слишком длинный.",
		},
		{
			name:    "Пароль из 40 кириллических букв",
			values:  url.Values{"username": {"longpass"}, "password": {strings.Repeat("я", 40)}},
			message: "Пароль слишком длинный.",
		},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)

			rr := app.postForm(t, "/auth/signup/", tt.values, nil)

			require.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.message)

			counts, err := app.repo.Tables.CountRows(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 0, counts["users"])
		})
	}
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "auth")

	tests := []struct {
		name             string
		values           url.Values
		expectedStatus   int
		expectedLocation string
		expectCookie     bool
	}{
		{
			name:             "Успешный вход",
			values:           url.Values{"username": {"auth"}, "password": {"password123"}},
			expectedStatus:   http.StatusFound,
			expectedLocation: "/",
			expectCookie:     true,
		},
		{
			name:             "Вход с переходом на next",
			values:           url.Values{"username": {"auth"}, "password": {"password123"}, "next": {"/create/"}},
			expectedStatus:   http.StatusFound,
			expectedLocation: "/create/",
			expectCookie:     true,
		},
		{
			name:             "Внешний next игнорируется",
			values:           url.Values{"username": {"auth"}, "password": {"password123"}, "next": {"//evil.example.com/"}},
			expectedStatus:   http.StatusFound,
			expectedLocation: "/",
			expectCookie:     true,
		},
		{
			name:             "Абсолютный URL в next игнорируется",
			values:           url.Values{"username": {"auth"}, "password": {"password123"}, "next": {"https://evil.example.com/"}},
			expectedStatus:   http.StatusFound,
			expectedLocation: "/",
			expectCookie:     true,
		},
		{
			name:           "Неверный пароль",
			values:         url.Values{"username": {"auth"}, "password": {"wrong"}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Несуществующий пользователь",
			values:         url.Values{"username": {"ghost"}, "password": {"password123"}},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := app.postForm(t, "/auth/login/", tt.values, nil)

			assert.Equal(t, tt.expectedStatus, rr.Code)

			cookie := findCookie(rr.Result().Cookies(), app.cfg.Auth.CookieName)
			if tt.expectCookie {
				assert.Equal(t, tt.expectedLocation, rr.Header().Get("Location"))
				require.NotNil(t, cookie)

				user, err := app.services.Auth.GetUserFromToken(context.Background(), cookie.Value)
				require.NoError(t, err)
				assert.Equal(t, "auth", user.Username)
			} else {
				assert.Nil(t, cookie)
				assert.Contains(t, rr.Body.String(), "Пожалуйста, введите правильные имя пользователя и пароль.")
			}
		})
	}
}

func TestLogin_NextInForm(t *testing.T) {
	app := newTestApp(t)

	rr := app.get(t, "/auth/login/?next=/follow/", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `name="next" value="/follow/"`)
}

func TestLogout(t *testing.T) {
	app := newTestApp(t)
	user := app.createUser(t, "auth")

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/auth/logout/", nil)

			rr := app.do(t, req, user)

			require.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), "Вы вышли из своей учётной записи.")
			assert.Contains(t, rr.Body.String(), `href="/auth/login/"`)

			cookie := findCookie(rr.Result().Cookies(), app.cfg.Auth.CookieName)
			require.NotNil(t, cookie)
			assert.Empty(t, cookie.Value)
			assert.Less(t, cookie.MaxAge, 0)
		})
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/create/", nil)
	req.AddCookie(&http.Cookie{Name: app.cfg.Auth.CookieName, Value: "garbage"})

	rr := app.do(t, req, nil)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/auth/login/?next=/create/", rr.Header().Get("Location"))
}
