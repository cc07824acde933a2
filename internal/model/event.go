// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Event levels.
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories.
const (
	EventCategoryAuth    = "auth"
	EventCategoryPost    = "post"
	EventCategoryComment = "comment"
	EventCategoryContact = "contact"
	EventCategoryUser    = "user"
	EventCategorySystem  = "system"
)

// ValidEventLevels contains all valid event levels.
var ValidEventLevels = []string{EventLevelInfo, EventLevelWarning, EventLevelError}

// IsValidEventLevel reports whether level is a known event level.
func IsValidEventLevel(level string) bool {
	for _, l := range ValidEventLevels {
		if l == level {
			return true
		}
	}
	return false
}
