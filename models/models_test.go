package models

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendMessageRequest_Validate(t *testing.T) {
	png := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\nfake"))

	tests := []struct {
		name    string
		req     SendMessageRequest
		wantErr string
	}{
		{name: "text only", req: SendMessageRequest{Text: "Hola"}},
		{name: "image only", req: SendMessageRequest{Image: png}},
		{name: "text and image", req: SendMessageRequest{Text: "look", Image: png}},
		{name: "nothing", req: SendMessageRequest{}, wantErr: "text or image is required"},
		{name: "whitespace text", req: SendMessageRequest{Text: "  \n\t"}, wantErr: "text or image is required"},
		{name: "too long", req: SendMessageRequest{Text: strings.Repeat("a", 4001)}, wantErr: "at most 4000"},
		{name: "not a data uri", req: SendMessageRequest{Image: "http://example.com/x.png"}, wantErr: "image must be a base64 data URI"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSendMessageRequest_KeepsOriginalText(t *testing.T) {
	req := SendMessageRequest{Text: "  Hola  "}
	require.NoError(t, req.Validate())
	require.Equal(t, "  Hola  ", req.Text)
}

func TestCreateUserRequest_Validate(t *testing.T) {
	t.Run("should normalize and default the language", func(t *testing.T) {
		req := require.New(t)
		r := CreateUserRequest{FullName: " Ana ", Email: " Ana@Example.COM "}
		req.NoError(r.Validate())
		req.Equal("Ana", r.FullName)
		req.Equal("ana@example.com", r.Email)
		req.Equal(LanguageDefault, r.PreferredLanguage)
	})

	t.Run("should report json field names", func(t *testing.T) {
		r := CreateUserRequest{FullName: "   ", Email: "nope"}
		err := r.Validate()
		require.ErrorContains(t, err, "full_name is required")
		require.ErrorContains(t, err, "email must be a valid email address")
	})
}

func TestMessageView_WithText(t *testing.T) {
	req := require.New(t)
	text := "Hola"
	view := ViewOf(Message{ID: "m1", Text: &text})

	same := view.WithText("Hola")
	req.False(same.IsTranslated)

	translated := view.WithText("Hello")
	req.True(translated.IsTranslated)
	req.Equal("Hello", *translated.Text)
	req.Equal("Hola", *view.Text, "the source view must not be mutated")

	imageOnly := ViewOf(Message{ID: "m2"}).WithText("anything")
	req.False(imageOnly.IsTranslated)
	req.Nil(imageOnly.Text)
}

func TestFallbackLanguages(t *testing.T) {
	req := require.New(t)
	langs := FallbackLanguages()
	req.GreaterOrEqual(len(langs), 13)
	req.Equal(LanguageDefault, langs[0].Code)

	langs[0].Code = "mutated"
	req.Equal(LanguageDefault, FallbackLanguages()[0].Code)
}
