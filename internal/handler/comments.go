// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/im-saif/Blogify/internal/middleware"
	"github.com/im-saif/Blogify/internal/model"
	"github.com/im-saif/Blogify/internal/render"
	"github.com/im-saif/Blogify/internal/service"
	"github.com/im-saif/Blogify/internal/store"
)

// CommentHandler handles comment submissions.
type CommentHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	eventService   *service.EventService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager) *CommentHandler {
	return &CommentHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
		eventService:   service.NewEventService(db),
	}
}

// Add attaches a comment to a post. Visitors without an account are sent
// to the login page and nothing is written.
// POST /post/{id}
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePostID(w, r)
	if !ok {
		return
	}

	user := middleware.GetUser(r)
	if user == nil {
		flashError(w, r, h.renderer, RouteLogin, "You need to login or register to comment.")
		return
	}

	post, ok := requireEntityWithError(w, "post", id, func(id int64) (store.Post, error) {
		return h.queries.GetPostByID(r.Context(), id)
	})
	if !ok {
		return
	}

	postURL := fmt.Sprintf("/post/%d", post.ID)
	if !parseFormOrRedirect(w, r, h.renderer, postURL) {
		return
	}

	body := strings.TrimSpace(r.FormValue("comment"))
	if body == "" {
		flashError(w, r, h.renderer, postURL, "Comment cannot be empty.")
		return
	}

	comment, err := h.queries.CreateComment(r.Context(), store.CreateCommentParams{
		Body:      body,
		AuthorID:  user.ID,
		PostID:    post.ID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		logAndInternalError(w, "failed to create comment", "error", err, "post_id", post.ID)
		return
	}

	_ = h.eventService.Log(r.Context(), model.EventLevelInfo, model.EventCategoryComment,
		"Comment added", &user.ID, map[string]any{"comment_id": comment.ID, "post_id": post.ID})

	http.Redirect(w, r, postURL, http.StatusSeeOther)
}
