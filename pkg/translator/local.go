package translator

import (
	"context"
	"strings"

	"github.com/abadojack/whatlanggo"

	"github.com/akinalp/quickchat/models"
)

// LocalBackend detects languages offline with whatlanggo. It cannot
// translate, so messages are always delivered in their original language.
type LocalBackend struct {
	// MinConfidence below which a detection is treated as unknown.
	MinConfidence float64
}

func NewLocalBackend() *LocalBackend {
	return &LocalBackend{MinConfidence: 0.1}
}

func (b *LocalBackend) Detect(_ context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResult
	}

	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	if code == "" || info.Confidence < b.MinConfidence {
		return "", ErrEmptyResult
	}
	return code, nil
}

func (b *LocalBackend) Translate(context.Context, string, string, string) (string, error) {
	return "", ErrUnsupported
}

func (b *LocalBackend) Languages(context.Context) ([]models.Language, error) {
	return nil, ErrUnsupported
}
