package middleware

import (
	"github.com/franciscosanchezn/gin-recipe-api/internal/i18n"
	"github.com/gin-gonic/gin"
)

// ContextLocale holds the i18n.Locale resolved for the request
const ContextLocale = "locale"

// Locale resolves the request locale from the lang query parameter, falling back
// to Accept-Language negotiation, and echoes it in Content-Language
func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		var locale i18n.Locale
		if code, ok := c.GetQuery("lang"); ok {
			locale = i18n.FromCode(code)
		} else {
			locale = i18n.Negotiate(c.GetHeader("Accept-Language"))
		}

		c.Set(ContextLocale, locale)
		c.Header("Content-Language", locale.String())
		c.Header("Vary", "Accept-Language")
		c.Next()
	}
}

// GetLocale returns the locale stored by Locale, or the default locale
func GetLocale(c *gin.Context) i18n.Locale {
	if v, ok := c.Get(ContextLocale); ok {
		if locale, ok := v.(i18n.Locale); ok {
			return locale
		}
	}
	return i18n.Default
}
