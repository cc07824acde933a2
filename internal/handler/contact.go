// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/im-saif/Blogify/internal/mailer"
	"github.com/im-saif/Blogify/internal/middleware"
	"github.com/im-saif/Blogify/internal/model"
	"github.com/im-saif/Blogify/internal/render"
	"github.com/im-saif/Blogify/internal/service"
)

// ContactHandler handles the contact form and relays submissions by email.
type ContactHandler struct {
	renderer      *render.Renderer
	eventService  *service.EventService
	sender        mailer.Sender
	operatorEmail string
}

// NewContactHandler creates a new ContactHandler. A nil sender disables
// the form: submissions are rejected with 502.
func NewContactHandler(db *sql.DB, renderer *render.Renderer, sender mailer.Sender, operatorEmail string) *ContactHandler {
	return &ContactHandler{
		renderer:      renderer,
		eventService:  service.NewEventService(db),
		sender:        sender,
		operatorEmail: operatorEmail,
	}
}

// Form renders the contact page.
// GET /contact
func (h *ContactHandler) Form(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderPage(w, r, "contact", render.TemplateData{
		Title: "Contact",
		User:  middleware.GetUser(r),
	})
}

// Submit validates the contact form and relays it: one notification to
// the site operator and one acknowledgment back to the submitter.
// POST /contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteContact) {
		return
	}

	req := mailer.ContactRequest{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Email:   strings.TrimSpace(r.FormValue("email")),
		Phone:   strings.TrimSpace(r.FormValue("phone")),
		Message: strings.TrimSpace(r.FormValue("message")),
	}

	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Message == "" {
		flashError(w, r, h.renderer, RouteContact, "All fields are required.")
		return
	}
	if err := validateEmail(req.Email); err != nil {
		flashError(w, r, h.renderer, RouteContact, err.Error())
		return
	}

	if h.sender == nil {
		slog.Warn("contact submission dropped, mail delivery not configured")
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
		return
	}

	if err := h.sender.Send(r.Context(), mailer.ComposeContact(req, h.operatorEmail)...); err != nil {
		slog.Error("contact mail delivery failed", "error", err)
		_ = h.eventService.LogContactEvent(r.Context(), model.EventLevelError,
			"Contact mail delivery failed", map[string]any{"from": req.Email})
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
		return
	}

	slog.Info("contact message relayed", "from", req.Email)
	_ = h.eventService.LogContactEvent(r.Context(), model.EventLevelInfo,
		"Contact message relayed", map[string]any{"from": req.Email, "name": req.Name})

	flashSuccess(w, r, h.renderer, RouteContact, "Your message has been sent. We'll be in touch soon!")
}
