package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/paginator"
	"yatube/internal/render"
	"yatube/internal/repository"
	"yatube/internal/service"
)

func (h *Handlers) paginate(r *http.Request, posts []models.Post) paginator.Page[models.Post] {
	return paginator.Paginate(posts, h.Cfg.PostsPerPage, r.URL.Query().Get("page"))
}

func postIDFromRequest(r *http.Request) (int64, bool) {
	postID, err := strconv.ParseInt(mux.Vars(r)["post_id"], 10, 64)
	if err != nil {
		return 0, false
	}
	return postID, true
}

func postDetailURL(postID int64) string {
	return fmt.Sprintf("/posts/%d/", postID)
}

func profileURL(username string) string {
	return "/profile/" + username + "/"
}

// Index shows all posts, newest first. The list is cached.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.GetIndexPosts(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "index", render.Context{
		"page_obj": h.paginate(r, posts),
	})
}

func (h *Handlers) GroupPosts(w http.ResponseWriter, r *http.Request) {
	group, posts, err := h.PostService.GetGroupPosts(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "group_list", render.Context{
		"group":    group,
		"page_obj": h.paginate(r, posts),
	})
}

func (h *Handlers) PostDetail(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDFromRequest(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	comments, err := h.CommentService.GetComments(r.Context(), postID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	authorPosts, err := h.PostService.GetAuthorPosts(r.Context(), post.AuthorID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	user := middleware.CurrentUser(r.Context())

	h.render(w, r, http.StatusOK, "post_detail", render.Context{
		"post":               post,
		"comments":           comments,
		"author_posts_count": len(authorPosts),
		"is_author":          user != nil && user.UserID == post.AuthorID,
		"form":               &CommentForm{Errors: FieldErrors{}},
	})
}

func (h *Handlers) renderPostForm(w http.ResponseWriter, r *http.Request, form *PostForm, groups []models.Group, postID int64) {
	h.render(w, r, http.StatusOK, "create_post", render.Context{
		"form":    form,
		"groups":  groups,
		"is_edit": postID != 0,
		"post_id": postID,
	})
}

func (h *Handlers) PostCreate(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	groups, err := h.PostService.GetGroups(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	if r.Method != http.MethodPost {
		h.renderPostForm(w, r, &PostForm{Errors: FieldErrors{}}, groups, 0)
		return
	}

	form, image := h.parsePostForm(w, r, groups)
	if !form.Valid() {
		h.renderPostForm(w, r, form, groups, 0)
		return
	}

	_, err = h.PostService.CreatePost(r.Context(), repository.CreatePostRequest{
		AuthorID: user.UserID,
		Text:     form.Text,
		GroupID:  form.GroupID(),
		Image:    image,
	})
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, profileURL(user.Username), http.StatusFound)
}

// PostEdit lets the author change a post. Anyone else is sent back to
// the post page.
func (h *Handlers) PostEdit(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	postID, ok := postIDFromRequest(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if post.AuthorID != user.UserID {
		http.Redirect(w, r, postDetailURL(postID), http.StatusFound)
		return
	}

	groups, err := h.PostService.GetGroups(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	if r.Method != http.MethodPost {
		h.renderPostForm(w, r, postFormFromPost(post), groups, postID)
		return
	}

	form, image := h.parsePostForm(w, r, groups)
	form.Image = post.Image
	form.keep(postFormFromPost(post))
	if !form.Valid() {
		h.renderPostForm(w, r, form, groups, postID)
		return
	}

	_, err = h.PostService.UpdatePost(r.Context(), repository.UpdatePostRequest{
		PostID:     postID,
		UserID:     user.UserID,
		Text:       form.Text,
		GroupID:    form.GroupID(),
		Image:      image,
		ClearImage: form.ClearImage,
	})
	if err != nil && !errors.Is(err, service.ErrForbidden) {
		h.handleError(w, r, err)
		return
	}

	http.Redirect(w, r, postDetailURL(postID), http.StatusFound)
}

// AddComment stores a comment and returns to the post. Invalid input and
// non-POST requests redirect without saving.
func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	postID, ok := postIDFromRequest(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	if _, err := h.PostService.GetPost(r.Context(), postID); err != nil {
		h.handleError(w, r, err)
		return
	}

	if r.Method != http.MethodPost {
		http.Redirect(w, r, postDetailURL(postID), http.StatusFound)
		return
	}

	form := &CommentForm{
		Text:   strings.TrimSpace(r.FormValue("text")),
		Errors: FieldErrors{},
	}
	h.validateForm(form, form.Errors)

	if len(form.Errors) == 0 {
		_, err := h.CommentService.AddComment(r.Context(), repository.CreateCommentRequest{
			PostID:   postID,
			AuthorID: user.UserID,
			Text:     form.Text,
		})
		if err != nil {
			h.handleError(w, r, err)
			return
		}
	}

	http.Redirect(w, r, postDetailURL(postID), http.StatusFound)
}
