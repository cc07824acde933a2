// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package mailer

import "fmt"

// ContactRequest is a submission from the contact form.
type ContactRequest struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// ComposeContact builds the two messages a contact submission produces:
// a notification to the site operator and an acknowledgment to the
// submitter.
func ComposeContact(req ContactRequest, operatorEmail string) []Message {
	notification := Message{
		To:      operatorEmail,
		Subject: fmt.Sprintf("New contact message from %s", req.Name),
		Body: fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\n%s\n",
			req.Name, req.Email, req.Phone, req.Message),
	}
	acknowledgment := Message{
		To:      req.Email,
		Subject: "We received your message",
		Body: fmt.Sprintf("Hi %s,\n\nThanks for getting in touch. "+
			"We received your message and will reply as soon as we can.\n\n"+
			"Your message:\n%s\n",
			req.Name, req.Message),
	}
	return []Message{notification, acknowledgment}
}
