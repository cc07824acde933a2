// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
)

const (
	minNameLength     = 2
	minPasswordLength = 8
)

// validateEmail checks that the address parses as a single RFC 5322 address.
func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email address")
	}
	// Reject display-name forms like "Bob <bob@example.com>"
	if addr.Address != email {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// validateName checks a user's display name.
func validateName(name string) error {
	if len(strings.TrimSpace(name)) < minNameLength {
		return fmt.Errorf("name must be at least %d characters", minNameLength)
	}
	return nil
}

// validatePassword checks a new password against the minimum length rule.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

// validateImageURL checks that the post header image is an absolute http(s) URL.
func validateImageURL(rawURL string) error {
	u, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return fmt.Errorf("invalid image URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("image URL must use http or https")
	}
	return nil
}
