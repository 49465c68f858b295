package notify

import (
	"testing"
	"time"
)

func TestNewMailMessage(t *testing.T) {
	msg := NewMailMessage("user@example.com", "Welcome", "hello")

	if msg.To != "user@example.com" {
		t.Errorf("To = %q, want %q", msg.To, "user@example.com")
	}
	if msg.Subject != "Welcome" {
		t.Errorf("Subject = %q, want %q", msg.Subject, "Welcome")
	}
	if msg.QueuedAt.IsZero() {
		t.Error("QueuedAt should not be zero")
	}
	if time.Since(msg.QueuedAt) > time.Second {
		t.Error("QueuedAt should be recent")
	}
}

func TestMailMessage_JSON(t *testing.T) {
	queuedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	msg := &MailMessage{
		To:       "user@example.com",
		Subject:  "Account verification",
		Body:     "Your verification code is 123456.",
		QueuedAt: queuedAt,
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := MailMessageFromJSON(data)
	if err != nil {
		t.Fatalf("MailMessageFromJSON() error = %v", err)
	}

	if parsed.To != msg.To {
		t.Errorf("parsed To = %q, want %q", parsed.To, msg.To)
	}
	if parsed.Subject != msg.Subject {
		t.Errorf("parsed Subject = %q, want %q", parsed.Subject, msg.Subject)
	}
	if parsed.Body != msg.Body {
		t.Errorf("parsed Body = %q, want %q", parsed.Body, msg.Body)
	}
	if !parsed.QueuedAt.Equal(msg.QueuedAt) {
		t.Errorf("parsed QueuedAt = %v, want %v", parsed.QueuedAt, msg.QueuedAt)
	}
}

func TestMailMessage_InvalidJSON(t *testing.T) {
	if _, err := MailMessageFromJSON([]byte(`{"to": 42}`)); err == nil {
		t.Error("MailMessageFromJSON() should fail on a non-string field")
	}
}
