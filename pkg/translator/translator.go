// Package translator talks to language detection and translation providers.
//
// Backends report failures as errors; the fail-soft policy (fall back to the
// original text, to "en", to the built-in catalogue) lives one layer up in
// services.TranslationService.
package translator

import (
	"context"
	"errors"

	"github.com/akinalp/quickchat/models"
)

//go:generate go run go.uber.org/mock/mockgen -source=translator.go -destination=../../mocks/mock_backend.go -package=mocks

var (
	// ErrUnsupported is returned by backends that lack a capability.
	ErrUnsupported = errors.New("translator: operation not supported by backend")
	// ErrEmptyResult is returned when the provider answers without a result.
	ErrEmptyResult = errors.New("translator: empty result")
	// ErrProvider wraps non-retryable provider failures.
	ErrProvider = errors.New("translator: provider error")
)

// Backend is a language detection and translation capability.
type Backend interface {
	// Detect returns the ISO 639-1 code of text's language.
	Detect(ctx context.Context, text string) (string, error)
	// Translate rewrites text from source into target.
	Translate(ctx context.Context, text, source, target string) (string, error)
	// Languages lists the languages the backend can translate into.
	Languages(ctx context.Context) ([]models.Language, error)
}
