// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/im-saif/Blogify/internal/middleware"
	"github.com/im-saif/Blogify/internal/render"
)

// PageHandler serves static pages.
type PageHandler struct {
	renderer *render.Renderer
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(renderer *render.Renderer) *PageHandler {
	return &PageHandler{renderer: renderer}
}

// About renders the about page.
// GET /about
func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderPage(w, r, "about", render.TemplateData{
		Title: "About",
		User:  middleware.GetUser(r),
	})
}
