// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"

	"github.com/im-saif/Blogify/internal/middleware"
	"github.com/im-saif/Blogify/internal/render"
	"github.com/im-saif/Blogify/internal/store"
)

// dashboardEventLimit caps the number of audit entries shown on the dashboard.
const dashboardEventLimit = 25

// AdminHandler handles the admin dashboard.
type AdminHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *sql.DB, renderer *render.Renderer) *AdminHandler {
	return &AdminHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// dashboardData is the template data for the admin dashboard.
type dashboardData struct {
	UserCount int64
	PostCount int64
	Events    []store.Event
}

// Dashboard renders site totals and the most recent audit entries.
// GET /admin
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	users, err := h.queries.CountUsers(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to count users", "error", err)
		return
	}

	posts, err := h.queries.CountPosts(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to count posts", "error", err)
		return
	}

	events, err := h.queries.ListRecentEvents(r.Context(), dashboardEventLimit)
	if err != nil {
		logAndInternalError(w, "failed to list events", "error", err)
		return
	}

	h.renderer.RenderPage(w, r, "dashboard", render.TemplateData{
		Title: "Dashboard",
		User:  middleware.GetUser(r),
		Data: dashboardData{
			UserCount: users,
			PostCount: posts,
			Events:    events,
		},
	})
}
