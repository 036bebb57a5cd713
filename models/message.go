package models

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxMessageTextLength = 4000

// Message is a persisted direct message. Text always holds the sender's
// original input; only Seen ever changes after creation.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Text       *string   `json:"text"`  // nil for image-only messages
	Image      *string   `json:"image"` // public asset reference
	Seen       bool      `json:"seen"`
	CreatedAt  time.Time `json:"created_at"`
}

// HasText reports whether the message carries non-blank text.
func (m *Message) HasText() bool {
	return m.Text != nil && strings.TrimSpace(*m.Text) != ""
}

// MessageView is a per-reader projection of a Message. It is never stored.
type MessageView struct {
	Message
	IsTranslated bool `json:"is_translated"`
}

// ViewOf returns the untranslated projection of m.
func ViewOf(m Message) MessageView {
	return MessageView{Message: m}
}

// WithText returns a copy of v whose text is replaced by translated.
// IsTranslated is set only when the text actually changed.
func (v MessageView) WithText(translated string) MessageView {
	if v.Text == nil || *v.Text == translated {
		return v
	}
	v.Text = &translated
	v.IsTranslated = true
	return v
}

// SendMessageRequest is the body of POST /api/messages/send/{id}.
//
// Image is an inline base64 data URI; the asset store turns it into a public
// reference before the message is persisted.
type SendMessageRequest struct {
	Text  string `json:"text"`
	Image string `json:"image" validate:"omitempty,datauri"`
}

func (r *SendMessageRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" && r.Image == "" {
		return errors.New("text or image is required")
	}
	if utf8.RuneCountInString(r.Text) > maxMessageTextLength {
		return errors.New("text must be at most 4000 characters long")
	}
	return validateStruct(r)
}

// Sidebar is the payload of GET /api/messages/users. UnseenMessages only has
// entries for peers with at least one unseen message.
type Sidebar struct {
	Users          []User         `json:"users"`
	UnseenMessages map[string]int `json:"unseen_messages"`
}
