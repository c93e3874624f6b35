// Package i18n provides key based UI string lookup for the supported languages.
package i18n

import (
	"fmt"
	"strings"
	"sync"

	"healthmon/internal/domain"
)

// Language is a supported UI language tag.
type Language string

const (
	English  Language = "en"
	Hindi    Language = "hi"
	Assamese Language = "as"
)

// Default is the language a new Translator starts in.
const Default = English

// Languages lists the supported tags.
var Languages = []Language{English, Hindi, Assamese}

// ParseLanguage validates a language tag.
func ParseLanguage(s string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := catalogs[lang]; !ok {
		return "", fmt.Errorf("%q: %w", s, domain.ErrUnsupportedLanguage)
	}
	return lang, nil
}

// Translate returns the catalog string for key in lang, or key itself when
// the catalog has no entry. It never substitutes another language.
func Translate(lang Language, key string) string {
	if v, ok := catalogs[lang][key]; ok {
		return v
	}
	return key
}

// Catalog returns a copy of the catalog for lang, empty when unsupported.
func Catalog(lang Language) map[string]string {
	src := catalogs[lang]
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// RiskKey is the catalog key labelling a risk level.
func RiskKey(l domain.RiskLevel) string {
	if l == domain.RiskCritical {
		return "status.critical"
	}
	return "status." + string(l) + "_risk"
}

// RoleKey is the catalog key labelling a role.
func RoleKey(r domain.UserRole) string {
	return "auth." + string(r)
}

// Translator holds the active language for one user.
type Translator struct {
	mu   sync.RWMutex
	lang Language
}

// NewTranslator returns a Translator in lang.
func NewTranslator(lang Language) *Translator {
	return &Translator{lang: lang}
}

// SetLanguage switches the active language. Subsequent lookups use it.
func (t *Translator) SetLanguage(lang Language) {
	t.mu.Lock()
	t.lang = lang
	t.mu.Unlock()
}

// Language returns the active language.
func (t *Translator) Language() Language {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lang
}

// T translates key in the active language.
func (t *Translator) T(key string) string {
	return Translate(t.Language(), key)
}
