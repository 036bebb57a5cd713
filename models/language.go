package models

const (
	// LanguageDefault means "do not translate"; it is not a real language.
	LanguageDefault = "default"

	// DefaultDetectedLanguage is what detection answers when it cannot decide.
	DefaultDetectedLanguage = "en"
)

type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var fallbackLanguages = []Language{
	{Code: LanguageDefault, Name: "Default (No Translation)"},
	{Code: "en", Name: "English"},
	{Code: "hi", Name: "Hindi"},
	{Code: "es", Name: "Spanish"},
	{Code: "fr", Name: "French"},
	{Code: "de", Name: "German"},
	{Code: "it", Name: "Italian"},
	{Code: "pt", Name: "Portuguese"},
	{Code: "ru", Name: "Russian"},
	{Code: "ja", Name: "Japanese"},
	{Code: "ko", Name: "Korean"},
	{Code: "zh", Name: "Chinese"},
	{Code: "ar", Name: "Arabic"},
}

// FallbackLanguages returns a fresh copy of the built-in catalogue served when
// the translation backend cannot list its languages.
func FallbackLanguages() []Language {
	out := make([]Language, len(fallbackLanguages))
	copy(out, fallbackLanguages)
	return out
}
