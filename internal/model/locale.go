package model

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Locale is the active content and UI language.
type Locale string

const (
	LocalePT Locale = "pt"
	LocaleEN Locale = "en"
	LocaleES Locale = "es"
)

const (
	// DefaultLocale is used when no locale has been persisted.
	DefaultLocale = LocalePT
	// SourceLocale is the language the recipe API publishes in. Content in
	// this locale is never translated.
	SourceLocale = LocaleEN
)

// ErrUnsupportedLocale is returned by ParseLocale for tags outside the supported set.
var ErrUnsupportedLocale = errors.New("unsupported locale")

// SupportedLocales lists the locales in display order.
func SupportedLocales() []Locale {
	return []Locale{LocalePT, LocaleEN, LocaleES}
}

// ParseLocale maps a BCP 47 tag such as "pt-BR" or "es" onto a supported Locale.
func ParseLocale(s string) (Locale, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty tag", ErrUnsupportedLocale)
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrUnsupportedLocale, s, err)
	}
	base, _ := tag.Base()
	for _, l := range SupportedLocales() {
		if base.String() == string(l) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLocale, s)
}

// NeedsTranslation reports whether content must be translated to be shown in l.
func (l Locale) NeedsTranslation() bool {
	return l != SourceLocale
}
