// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains the HTTP handlers for all routes.
package handler

// Route paths used for redirects.
const (
	RouteRoot     = "/"
	RouteLogin    = "/login"
	RouteRegister = "/register"
	RouteContact  = "/contact"
	RouteNewPost  = "/new-post"
)

// loginFailedMessage is deliberately the same for an unknown email and a
// wrong password so the login form does not reveal which one it was.
const loginFailedMessage = "Incorrect email or password! try again!"

// publishedOnLayout is the display date format stamped on posts at
// creation time. The value is stored as text and never changes after
// the first write, even across edits.
const publishedOnLayout = "January 02, 2006"
