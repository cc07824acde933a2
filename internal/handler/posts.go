// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/im-saif/Blogify/internal/middleware"
	"github.com/im-saif/Blogify/internal/model"
	"github.com/im-saif/Blogify/internal/render"
	"github.com/im-saif/Blogify/internal/service"
	"github.com/im-saif/Blogify/internal/store"
)

// nameCaser title-cases author names from URLs so that /posts/jane%20doe
// finds the user stored as "Jane Doe".
var nameCaser = cases.Title(language.English)

// PostHandler handles blog post routes.
type PostHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	eventService   *service.EventService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager) *PostHandler {
	return &PostHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
		eventService:   service.NewEventService(db),
	}
}

// homeData is the template data for the post index page.
type homeData struct {
	Posts  []store.ListPostsRow
	Author string
}

// postPageData is the template data for a single post page.
type postPageData struct {
	Post       store.Post
	AuthorName string
	Comments   []store.ListCommentsForPostRow
}

// postFormData is the template data for the create/edit post form.
type postFormData struct {
	IsEdit bool
	Post   store.Post
	Action string
}

// Home renders the post index.
// GET /
func (h *PostHandler) Home(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.ListPosts(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list posts", "error", err)
		return
	}
	h.renderer.RenderPage(w, r, "index", render.TemplateData{
		Title: "Blogify",
		User:  middleware.GetUser(r),
		Data:  homeData{Posts: posts},
	})
}

// ByAuthor renders the index filtered to one author's posts. The name
// from the URL is title-cased before lookup, so /posts/jane%20doe
// matches the user stored as "Jane Doe".
// GET /posts/{name}
func (h *PostHandler) ByAuthor(w http.ResponseWriter, r *http.Request) {
	name := nameCaser.String(chi.URLParam(r, "name"))

	author, err := h.queries.GetUserByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "author not found", http.StatusNotFound)
			return
		}
		logAndInternalError(w, "failed to look up author", "error", err, "name", name)
		return
	}

	posts, err := h.queries.ListPostsByAuthor(r.Context(), author.ID)
	if err != nil {
		logAndInternalError(w, "failed to list posts by author", "error", err, "author_id", author.ID)
		return
	}

	h.renderer.RenderPage(w, r, "index", render.TemplateData{
		Title: fmt.Sprintf("Posts by %s", author.Name),
		User:  middleware.GetUser(r),
		Data:  homeData{Posts: posts, Author: author.Name},
	})
}

// Show renders a single post with its comments.
// GET /post/{id}
func (h *PostHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePostID(w, r)
	if !ok {
		return
	}

	post, ok := requireEntityWithError(w, "post", id, func(id int64) (store.Post, error) {
		return h.queries.GetPostByID(r.Context(), id)
	})
	if !ok {
		return
	}

	author, err := h.queries.GetUserByID(r.Context(), post.AuthorID)
	if err != nil {
		logAndInternalError(w, "failed to load post author", "error", err, "post_id", post.ID)
		return
	}

	comments, err := h.queries.ListCommentsForPost(r.Context(), post.ID)
	if err != nil {
		logAndInternalError(w, "failed to list comments", "error", err, "post_id", post.ID)
		return
	}

	h.renderer.RenderPage(w, r, "post", render.TemplateData{
		Title: post.Title,
		User:  middleware.GetUser(r),
		Data: postPageData{
			Post:       post,
			AuthorName: author.Name,
			Comments:   comments,
		},
	})
}

// NewForm renders the post creation form.
// GET /new-post
func (h *PostHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderPage(w, r, "make-post", render.TemplateData{
		Title: "New Post",
		User:  middleware.GetUser(r),
		Data:  postFormData{Action: RouteNewPost},
	})
}

// Create handles the post creation form submission. The display date is
// stamped from the server clock at creation time.
// POST /new-post
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteNewPost) {
		return
	}

	title := r.FormValue("title")
	subtitle := r.FormValue("subtitle")
	imageURL := r.FormValue("img_url")
	body := r.FormValue("body")

	if msg, ok := validatePostForm(title, subtitle, imageURL, body); !ok {
		flashError(w, r, h.renderer, RouteNewPost, msg)
		return
	}

	// Titles are unique across all posts
	if _, err := h.queries.GetPostByTitle(r.Context(), title); err == nil {
		flashError(w, r, h.renderer, RouteNewPost, "A post with that title already exists.")
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		logAndInternalError(w, "database error checking post title", "error", err)
		return
	}

	authorID := middleware.GetUserID(r)
	now := time.Now()
	post, err := h.queries.CreatePost(r.Context(), store.CreatePostParams{
		Title:       title,
		Subtitle:    subtitle,
		Body:        body,
		ImageURL:    imageURL,
		PublishedOn: now.Format(publishedOnLayout),
		AuthorID:    authorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		logAndInternalError(w, "failed to create post", "error", err, "title", title)
		return
	}

	_ = h.eventService.LogPostEvent(r.Context(), model.EventLevelInfo, "Post created", &authorID,
		map[string]any{"post_id": post.ID, "title": post.Title})

	flashSuccess(w, r, h.renderer, RouteRoot, "Post published.")
}

// EditForm renders the post edit form prefilled with the current values.
// GET /edit-post/{id}
func (h *PostHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePostID(w, r)
	if !ok {
		return
	}

	post, ok := requireEntityWithError(w, "post", id, func(id int64) (store.Post, error) {
		return h.queries.GetPostByID(r.Context(), id)
	})
	if !ok {
		return
	}

	h.renderer.RenderPage(w, r, "make-post", render.TemplateData{
		Title: "Edit Post",
		User:  middleware.GetUser(r),
		Data: postFormData{
			IsEdit: true,
			Post:   post,
			Action: fmt.Sprintf("/edit-post/%d", post.ID),
		},
	})
}

// Update handles the post edit form submission. The post is reassigned
// to the admin performing the edit, and the original display date is
// kept as-is.
// POST /edit-post/{id}
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePostID(w, r)
	if !ok {
		return
	}

	post, ok := requireEntityWithError(w, "post", id, func(id int64) (store.Post, error) {
		return h.queries.GetPostByID(r.Context(), id)
	})
	if !ok {
		return
	}

	editURL := fmt.Sprintf("/edit-post/%d", post.ID)
	if !parseFormOrRedirect(w, r, h.renderer, editURL) {
		return
	}

	title := r.FormValue("title")
	subtitle := r.FormValue("subtitle")
	imageURL := r.FormValue("img_url")
	body := r.FormValue("body")

	if msg, ok := validatePostForm(title, subtitle, imageURL, body); !ok {
		flashError(w, r, h.renderer, editURL, msg)
		return
	}

	// The unique title rule still applies, but the post may keep its own title
	if other, err := h.queries.GetPostByTitle(r.Context(), title); err == nil && other.ID != post.ID {
		flashError(w, r, h.renderer, editURL, "A post with that title already exists.")
		return
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		logAndInternalError(w, "database error checking post title", "error", err)
		return
	}

	editorID := middleware.GetUserID(r)
	if err := h.queries.UpdatePost(r.Context(), store.UpdatePostParams{
		Title:     title,
		Subtitle:  subtitle,
		Body:      body,
		ImageURL:  imageURL,
		AuthorID:  editorID,
		UpdatedAt: time.Now(),
		ID:        post.ID,
	}); err != nil {
		logAndInternalError(w, "failed to update post", "error", err, "post_id", post.ID)
		return
	}

	_ = h.eventService.LogPostEvent(r.Context(), model.EventLevelInfo, "Post updated", &editorID,
		map[string]any{"post_id": post.ID, "title": title})

	flashSuccess(w, r, h.renderer, fmt.Sprintf("/post/%d", post.ID), "Post updated.")
}

// Delete removes a post and, through the cascade rule, its comments.
// POST /delete/{id}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePostID(w, r)
	if !ok {
		return
	}

	post, ok := requireEntityWithError(w, "post", id, func(id int64) (store.Post, error) {
		return h.queries.GetPostByID(r.Context(), id)
	})
	if !ok {
		return
	}

	comments, err := h.queries.CountCommentsForPost(r.Context(), post.ID)
	if err != nil {
		logAndInternalError(w, "failed to count comments", "error", err, "post_id", post.ID)
		return
	}

	if err := h.queries.DeletePost(r.Context(), post.ID); err != nil {
		logAndInternalError(w, "failed to delete post", "error", err, "post_id", post.ID)
		return
	}

	adminID := middleware.GetUserID(r)
	_ = h.eventService.LogPostEvent(r.Context(), model.EventLevelInfo, "Post deleted", &adminID,
		map[string]any{"post_id": post.ID, "title": post.Title, "comments_removed": comments})

	flashSuccess(w, r, h.renderer, RouteRoot, "Post deleted.")
}

// parsePostID extracts the post ID from the URL. A non-numeric ID is
// treated the same as a missing post.
func parsePostID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		http.Error(w, "post not found", http.StatusNotFound)
		return 0, false
	}
	return id, true
}

// validatePostForm checks the shared fields of the create and edit forms.
// Returns a user-facing message and false when a field is invalid.
func validatePostForm(title, subtitle, imageURL, body string) (string, bool) {
	if title == "" || subtitle == "" || imageURL == "" || body == "" {
		return "Title, subtitle, image URL and body are required.", false
	}
	if err := validateImageURL(imageURL); err != nil {
		return err.Error(), false
	}
	return "", true
}
