package models

import (
	"fmt"
	"time"
)

// length of the text preview used by Post and Comment String()
const previewLength = 15

type User struct {
	UserID       int64     `json:"userId" db:"user_id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

func (u User) String() string {
	return u.Username
}

// FullName returns "first last", or the username when both are empty.
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Username
}

type Group struct {
	GroupID     int64  `json:"groupId" db:"group_id"`
	Title       string `json:"title" db:"title"`
	Slug        string `json:"slug" db:"slug"`
	Description string `json:"description" db:"description"`
}

func (g Group) String() string {
	return g.Title
}

type Post struct {
	PostID    int64     `json:"postId" db:"post_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	GroupID   *int64    `json:"groupId" db:"group_id"`
	Image     string    `json:"image" db:"image"`

	// joined columns
	AuthorUsername string  `json:"authorUsername" db:"author_username"`
	GroupTitle     *string `json:"groupTitle" db:"group_title"`
	GroupSlug      *string `json:"groupSlug" db:"group_slug"`
}

func (p Post) String() string {
	return preview(p.Text)
}

func (p Post) HasGroup() bool {
	return p.GroupID != nil && p.GroupSlug != nil
}

type Comment struct {
	CommentID int64     `json:"commentId" db:"comment_id"`
	PostID    int64     `json:"postId" db:"post_id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	AuthorUsername string `json:"authorUsername" db:"author_username"`
}

func (c Comment) String() string {
	return preview(c.Text)
}

type Follow struct {
	FollowID       int64  `json:"followId" db:"follow_id"`
	UserID         int64  `json:"userId" db:"user_id"`
	AuthorID       int64  `json:"authorId" db:"author_id"`
	Username       string `json:"username" db:"username"`
	AuthorUsername string `json:"authorUsername" db:"author_username"`
}

func (f Follow) String() string {
	return fmt.Sprintf("%s -> %s", f.Username, f.AuthorUsername)
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLength {
		return text
	}
	return string(runes[:previewLength])
}
