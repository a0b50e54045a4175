package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale identifies one of the languages the catalog stores content in
type Locale string

const (
	English Locale = "en"
	Arabic  Locale = "ar"

	// Default is used whenever a request does not resolve to a supported locale
	Default = English
)

// Supported lists the locales in matcher preference order; the first entry is the fallback
var Supported = []Locale{English, Arabic}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Arabic})

// FromCode maps a language code onto a supported locale.
// Only "ar" selects Arabic; every other value, including empty and unknown codes, yields English.
func FromCode(code string) Locale {
	if strings.EqualFold(strings.TrimSpace(code), string(Arabic)) {
		return Arabic
	}
	return Default
}

// Negotiate picks a locale from an Accept-Language header value.
// Regional variants resolve to their base language (ar-EG -> ar).
func Negotiate(acceptLanguage string) Locale {
	if strings.TrimSpace(acceptLanguage) == "" {
		return Default
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}

	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default
	}
	return Supported[index]
}

// IsSupported reports whether the code is exactly one of the supported locales
func IsSupported(code string) bool {
	for _, l := range Supported {
		if string(l) == code {
			return true
		}
	}
	return false
}

// Normalize returns l when it is supported and the default locale otherwise
func (l Locale) Normalize() Locale {
	if IsSupported(string(l)) {
		return l
	}
	return Default
}

func (l Locale) String() string {
	return string(l)
}
