// Package models defines the domain types shared by every layer, along with
// the request payloads the HTTP layer decodes.
package models

import (
	"strings"
	"time"
)

// User is a chat participant. Accounts are managed elsewhere; the chat core
// only reads PreferredLanguage.
type User struct {
	ID                string    `json:"id"`
	FullName          string    `json:"full_name"`
	Email             string    `json:"email"`
	Bio               string    `json:"bio"`
	ProfilePic        string    `json:"profile_pic"`
	PreferredLanguage string    `json:"preferred_language"` // language code or LanguageDefault
	CreatedAt         time.Time `json:"created_at"`
}

// CreateUserRequest seeds an identity (used by the CLI).
type CreateUserRequest struct {
	FullName          string `json:"full_name" validate:"notblank,max=64"`
	Email             string `json:"email" validate:"required,email"`
	Bio               string `json:"bio" validate:"max=280"`
	PreferredLanguage string `json:"preferred_language"`
}

func (r *CreateUserRequest) Validate() error {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.PreferredLanguage = strings.TrimSpace(r.PreferredLanguage)
	if r.PreferredLanguage == "" {
		r.PreferredLanguage = LanguageDefault
	}
	return validateStruct(r)
}

// UpdateLanguageRequest is the body of PATCH /api/users/me/language.
type UpdateLanguageRequest struct {
	Language string `json:"language" validate:"notblank,max=16"`
}

func (r *UpdateLanguageRequest) Validate() error {
	r.Language = strings.TrimSpace(r.Language)
	return validateStruct(r)
}
