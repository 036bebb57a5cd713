package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/akinalp/quickchat/models"
	"github.com/akinalp/quickchat/pkg/translator"
)

// TranslationService puts a fail-soft policy in front of a translator.Backend.
// None of its methods return errors: every failure degrades to a fixed
// fallback value.
type TranslationService interface {
	// DetectLanguage returns the language of text, or "en" for blank input
	// and on any backend failure.
	DetectLanguage(ctx context.Context, text string) string

	// Translate rewrites text into target. source may be empty, in which
	// case it is detected. Blank text, the "default" target and an
	// already-matching source return text unchanged without calling the
	// backend; a backend failure also returns text unchanged.
	Translate(ctx context.Context, text, target, source string) string

	// SupportedLanguages lists translatable languages, always led by the
	// "default" entry. It falls back to a built-in catalogue.
	SupportedLanguages(ctx context.Context) []models.Language

	IsLanguageSupported(ctx context.Context, code string) bool
}

type translationService struct {
	backend translator.Backend
	log     *slog.Logger
}

func NewTranslationService(backend translator.Backend, log *slog.Logger) TranslationService {
	return &translationService{
		backend: backend,
		log:     log.With("component", "translation"),
	}
}

func (s *translationService) DetectLanguage(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return models.DefaultDetectedLanguage
	}

	lang, err := s.backend.Detect(ctx, text)
	if err != nil || lang == "" {
		s.log.Debug("language detection failed, assuming default", "error", err)
		return models.DefaultDetectedLanguage
	}
	return lang
}

func (s *translationService) Translate(ctx context.Context, text, target, source string) string {
	if strings.TrimSpace(text) == "" || target == "" || target == models.LanguageDefault {
		return text
	}

	if source == "" {
		source = s.DetectLanguage(ctx, text)
	}
	if source == target {
		return text
	}

	translated, err := s.backend.Translate(ctx, text, source, target)
	if err != nil {
		s.log.Warn("translation failed, keeping original text", "source", source, "target", target, "error", err)
		return text
	}
	if strings.TrimSpace(translated) == "" {
		return text
	}
	return translated
}

func (s *translationService) SupportedLanguages(ctx context.Context) []models.Language {
	langs, err := s.backend.Languages(ctx)
	if err != nil || len(langs) == 0 {
		s.log.Debug("listing languages failed, serving fallback catalogue", "error", err)
		return models.FallbackLanguages()
	}

	langs = lo.Reject(langs, func(l models.Language, _ int) bool {
		return l.Code == models.LanguageDefault
	})
	return append([]models.Language{models.FallbackLanguages()[0]}, langs...)
}

func (s *translationService) IsLanguageSupported(ctx context.Context, code string) bool {
	if code == models.LanguageDefault {
		return true
	}
	return lo.ContainsBy(s.SupportedLanguages(ctx), func(l models.Language) bool {
		return l.Code == code
	})
}

// wantsTranslation reports whether m's text should be rewritten for a reader
// whose preferred language is lang.
func wantsTranslation(m *models.Message, lang string) bool {
	return lang != "" && lang != models.LanguageDefault && m.HasText()
}
