package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/akinalp/quickchat/mocks"
	"github.com/akinalp/quickchat/models"
	"github.com/akinalp/quickchat/pkg/logger"
	"github.com/akinalp/quickchat/pkg/translator"
)

func newTranslation(t *testing.T) (*mocks.MockBackend, TranslationService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)
	return backend, NewTranslationService(backend, logger.Discard())
}

func TestTranslationService_Translate(t *testing.T) {
	ctx := context.Background()

	t.Run("should short-circuit without calling the backend", func(t *testing.T) {
		req := require.New(t)
		// No EXPECT: any backend call fails the test.
		_, svc := newTranslation(t)

		req.Equal("hello", svc.Translate(ctx, "hello", "en", "en"))
		req.Equal("hello", svc.Translate(ctx, "hello", models.LanguageDefault, ""))
		req.Equal("", svc.Translate(ctx, "", "fr", ""))
		req.Equal("  \n", svc.Translate(ctx, "  \n", "fr", ""))
	})

	t.Run("should detect the source when it is omitted", func(t *testing.T) {
		req := require.New(t)
		backend, svc := newTranslation(t)
		gomock.InOrder(
			backend.EXPECT().Detect(gomock.Any(), "Hola").Return("es", nil),
			backend.EXPECT().Translate(gomock.Any(), "Hola", "es", "en").Return("Hello", nil),
		)

		req.Equal("Hello", svc.Translate(ctx, "Hola", "en", ""))
	})

	t.Run("should skip translation when the detected source matches", func(t *testing.T) {
		req := require.New(t)
		backend, svc := newTranslation(t)
		backend.EXPECT().Detect(gomock.Any(), "Bonjour").Return("fr", nil)

		req.Equal("Bonjour", svc.Translate(ctx, "Bonjour", "fr", ""))
	})

	t.Run("should return the original text when the backend fails", func(t *testing.T) {
		req := require.New(t)
		backend, svc := newTranslation(t)
		backend.EXPECT().Detect(gomock.Any(), gomock.Any()).Return("", errBackendDown).AnyTimes()
		backend.EXPECT().Translate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errBackendDown).AnyTimes()

		req.Equal("hello", svc.Translate(ctx, "hello", "fr", ""))
		req.Equal("hello", svc.Translate(ctx, "hello", "fr", "en"))
	})

	t.Run("should keep the original on an empty translation", func(t *testing.T) {
		req := require.New(t)
		backend, svc := newTranslation(t)
		backend.EXPECT().Translate(gomock.Any(), "hello", "en", "fr").Return("", nil)

		req.Equal("hello", svc.Translate(ctx, "hello", "fr", "en"))
	})
}

func TestTranslationService_DetectLanguage(t *testing.T) {
	ctx := context.Background()

	t.Run("should default blank input without calling the backend", func(t *testing.T) {
		_, svc := newTranslation(t)
		require.Equal(t, models.DefaultDetectedLanguage, svc.DetectLanguage(ctx, "   "))
	})

	t.Run("should default on backend failure", func(t *testing.T) {
		backend, svc := newTranslation(t)
		backend.EXPECT().Detect(gomock.Any(), "hello").Return("", translator.ErrProvider)
		require.Equal(t, "en", svc.DetectLanguage(ctx, "hello"))
	})

	t.Run("should return the detected language", func(t *testing.T) {
		backend, svc := newTranslation(t)
		backend.EXPECT().Detect(gomock.Any(), "Hallo Welt").Return("de", nil)
		require.Equal(t, "de", svc.DetectLanguage(ctx, "Hallo Welt"))
	})
}

func TestTranslationService_SupportedLanguages(t *testing.T) {
	ctx := context.Background()

	t.Run("should fall back to the built-in catalogue", func(t *testing.T) {
		req := require.New(t)
		backend, svc := newTranslation(t)
		backend.EXPECT().Languages(gomock.Any()).Return(nil, translator.ErrUnsupported)

		langs := svc.SupportedLanguages(ctx)
		req.GreaterOrEqual(len(langs), 13)
		req.Equal(models.LanguageDefault, langs[0].Code)
		req.Equal(models.FallbackLanguages(), langs)
	})

	t.Run("should prepend the default sentinel to live results", func(t *testing.T) {
		req := require.New(t)
		backend, svc := newTranslation(t)
		backend.EXPECT().Languages(gomock.Any()).Return([]models.Language{
			{Code: "en", Name: "English"},
			{Code: "sw", Name: "Swahili"},
		}, nil)

		langs := svc.SupportedLanguages(ctx)
		req.Len(langs, 3)
		req.Equal(models.LanguageDefault, langs[0].Code)
		req.Equal("sw", langs[2].Code)
	})

	t.Run("should check membership", func(t *testing.T) {
		req := require.New(t)
		backend, svc := newTranslation(t)
		backend.EXPECT().Languages(gomock.Any()).Return(nil, translator.ErrUnsupported).Times(2)

		req.True(svc.IsLanguageSupported(ctx, models.LanguageDefault))
		req.True(svc.IsLanguageSupported(ctx, "ja"))
		req.False(svc.IsLanguageSupported(ctx, "tlh"))
	})
}
