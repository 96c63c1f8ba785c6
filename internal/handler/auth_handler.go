package handlers

import (
	"errors"
	"net/http"
	"strings"

	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/render"
	"yatube/internal/repository"
	"yatube/internal/service"
)

// safeNext accepts only local absolute paths.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	return next
}

func (h *Handlers) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cfg.Auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Cfg.Auth.CookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cfg.Auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	form := &SignupForm{Errors: FieldErrors{}}

	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "signup", render.Context{"form": form})
		return
	}

	form.FirstName = strings.TrimSpace(r.FormValue("first_name"))
	form.LastName = strings.TrimSpace(r.FormValue("last_name"))
	form.Username = strings.TrimSpace(r.FormValue("username"))
	form.Email = strings.TrimSpace(r.FormValue("email"))
	form.Password = r.FormValue("password")

	h.validateForm(form, form.Errors)
	if len(form.Errors) > 0 {
		h.render(w, r, http.StatusOK, "signup", render.Context{"form": form})
		return
	}

	user, err := h.AuthService.Register(r.Context(), repository.CreateUserRequest{
		Username:  form.Username,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Password:  form.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyExists):
			form.Errors.Add("username", msgUsernameTaken)
		case errors.Is(err, service.ErrPasswordTooLong):
			form.Errors.Add("password", msgPasswordLong)
		default:
			h.serverError(w, r, err)
			return
		}
		h.render(w, r, http.StatusOK, "signup", render.Context{"form": form})
		return
	}

	token, err := h.AuthService.GenerateToken(user)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.setAuthCookie(w, token)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	form := &LoginForm{Errors: FieldErrors{}}
	next := safeNext(r.FormValue("next"))

	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "login", render.Context{"form": form, "next": next})
		return
	}

	form.Username = strings.TrimSpace(r.FormValue("username"))
	form.Password = r.FormValue("password")

	h.validateForm(form, form.Errors)
	if len(form.Errors) > 0 {
		h.render(w, r, http.StatusOK, "login", render.Context{"form": form, "next": next})
		return
	}

	_, token, err := h.AuthService.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			form.Errors.Add("login", msgBadLogin)
			h.render(w, r, http.StatusOK, "login", render.Context{"form": form, "next": next})
			return
		}
		h.serverError(w, r, err)
		return
	}

	h.setAuthCookie(w, token)

	if next == "" {
		next = "/"
	}
	http.Redirect(w, r, next, http.StatusFound)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearAuthCookie(w)

	// the page is rendered for an anonymous visitor
	r = r.WithContext(middleware.WithUser(r.Context(), (*models.User)(nil)))
	h.render(w, r, http.StatusOK, "logged_out", nil)
}
