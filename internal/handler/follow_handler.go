package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"yatube/internal/middleware"
	"yatube/internal/render"
)

// FollowIndex is the feed of posts by followed authors, with the list
// of those authors.
func (h *Handlers) FollowIndex(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	posts, err := h.FollowService.GetFeed(r.Context(), user.UserID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	follows, err := h.FollowService.GetFollows(r.Context(), user.UserID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "follow", render.Context{
		"page_obj": h.paginate(r, posts),
		"follows":  follows,
	})
}

func (h *Handlers) ProfileFollow(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	author, err := h.FollowService.Follow(r.Context(), user.UserID, mux.Vars(r)["username"])
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	http.Redirect(w, r, profileURL(author.Username), http.StatusFound)
}

func (h *Handlers) ProfileUnfollow(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	author, err := h.FollowService.Unfollow(r.Context(), user.UserID, mux.Vars(r)["username"])
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	http.Redirect(w, r, profileURL(author.Username), http.StatusFound)
}
