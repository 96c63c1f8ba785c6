package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"yatube/internal/config"
	"yatube/internal/middleware"
	"yatube/internal/render"
	"yatube/internal/service"
)

type Handlers struct {
	AuthService    service.AuthService
	UserService    service.UserService
	PostService    service.PostService
	CommentService service.CommentService
	FollowService  service.FollowService
	TablesService  service.TablesService
	HealthService  service.HealthService
	Renderer       *render.Renderer
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(service *service.Service, renderer *render.Renderer, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:    service.Auth,
		UserService:    service.User,
		PostService:    service.Post,
		CommentService: service.Comment,
		FollowService:  service.Follow,
		TablesService:  service.Tables,
		HealthService:  service.Health,
		Renderer:       renderer,
		Cfg:            config,
		Validate:       NewValidator(),
	}
}

// page builds the template context shared by every page.
func (h *Handlers) page(r *http.Request, data render.Context) render.Context {
	if data == nil {
		data = render.Context{}
	}
	data["user"] = middleware.CurrentUser(r.Context())
	return data
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, name string, data render.Context) {
	h.Renderer.HTML(w, status, name, h.page(r, data))
}
