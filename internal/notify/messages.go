// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The fintrack Authors

package notify

import (
	"encoding/json"
	"time"
)

// MailMessage is a queued outbound email. The worker delivers it over SMTP;
// the API server only ever publishes.
type MailMessage struct {
	To       string    `json:"to"`
	Subject  string    `json:"subject"`
	Body     string    `json:"body"`
	QueuedAt time.Time `json:"queuedAt"`
}

func NewMailMessage(to, subject, body string) *MailMessage {
	return &MailMessage{
		To:       to,
		Subject:  subject,
		Body:     body,
		QueuedAt: time.Now(),
	}
}

func (m *MailMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MailMessageFromJSON(data []byte) (*MailMessage, error) {
	var msg MailMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
