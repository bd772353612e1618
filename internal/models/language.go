package models

import "fmt"

// Language identifies one of the two supported corpus languages.
type Language string

const (
	// English is the default language, used whenever detection is uncertain.
	English Language = "en"
	// Bengali covers any input containing Bengali script.
	Bengali Language = "bn"
)

// Languages lists the supported languages in partition order.
var Languages = []Language{English, Bengali}

// ParseLanguage converts a language code ("en", "bn") into a Language.
func ParseLanguage(code string) (Language, error) {
	switch Language(code) {
	case English, Bengali:
		return Language(code), nil
	default:
		return "", fmt.Errorf("unsupported language %q", code)
	}
}

// DisplayName returns the human-readable name shown to users.
func (l Language) DisplayName() string {
	if l == Bengali {
		return "Bengali (বাংলা)"
	}
	return "English"
}

// Index returns the partition index of l (0 for English, 1 for Bengali).
func (l Language) Index() int {
	if l == Bengali {
		return 1
	}
	return 0
}
