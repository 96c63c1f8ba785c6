package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"yatube/internal/middleware"
	"yatube/internal/render"
)

// Profile lists the posts of one author.
func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	author, err := h.UserService.GetByUsername(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	posts, err := h.PostService.GetAuthorPosts(r.Context(), author.UserID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	user := middleware.CurrentUser(r.Context())
	canFollow := user != nil && user.UserID != author.UserID

	following := false
	if canFollow {
		following, err = h.FollowService.IsFollowing(r.Context(), user.UserID, author.UserID)
		if err != nil {
			h.serverError(w, r, err)
			return
		}
	}

	h.render(w, r, http.StatusOK, "profile", render.Context{
		"author":      author,
		"page_obj":    h.paginate(r, posts),
		"posts_count": len(posts),
		"following":   following,
		"can_follow":  canFollow,
	})
}
