// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides business logic services shared by handlers.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/im-saif/Blogify/internal/model"
	"github.com/im-saif/Blogify/internal/store"
	"github.com/im-saif/Blogify/internal/util"
)

// EventService records audit log entries.
type EventService struct {
	queries *store.Queries
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{queries: store.New(db)}
}

// Log writes an event with the given level and category.
func (s *EventService) Log(ctx context.Context, level, category, message string, userID *int64, metadata map[string]any) error {
	if !model.IsValidEventLevel(level) {
		return fmt.Errorf("invalid event level: %s", level)
	}

	meta := "{}"
	if len(metadata) > 0 {
		b, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("marshaling metadata: %w", err)
		}
		meta = string(b)
	}

	_, err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     level,
		Category:  category,
		Message:   message,
		UserID:    util.NullInt64FromPtr(userID),
		Metadata:  meta,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("creating event: %w", err)
	}
	return nil
}

// LogAuthEvent records an authentication-related event.
func (s *EventService) LogAuthEvent(ctx context.Context, level, message string, userID *int64, metadata map[string]any) error {
	return s.Log(ctx, level, model.EventCategoryAuth, message, userID, metadata)
}

// LogPostEvent records a post lifecycle event.
func (s *EventService) LogPostEvent(ctx context.Context, level, message string, userID *int64, metadata map[string]any) error {
	return s.Log(ctx, level, model.EventCategoryPost, message, userID, metadata)
}

// LogContactEvent records a contact form event.
func (s *EventService) LogContactEvent(ctx context.Context, level, message string, metadata map[string]any) error {
	return s.Log(ctx, level, model.EventCategoryContact, message, nil, metadata)
}
