package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/franciscosanchezn/gin-recipe-api/internal/i18n"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Locale())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetLocale(c).String())
	})

	testCases := []struct {
		name           string
		query          string
		acceptLanguage string
		expected       i18n.Locale
	}{
		{"no hints", "", "", i18n.English},
		{"arabic header", "", "ar", i18n.Arabic},
		{"regional arabic header", "", "ar-EG,ar;q=0.9", i18n.Arabic},
		{"weighted preference", "", "fr-FR,ar;q=0.8,en;q=0.5", i18n.Arabic},
		{"unsupported header", "", "de-DE", i18n.English},
		{"query wins over header", "?lang=en", "ar", i18n.English},
		{"arabic query", "?lang=AR", "", i18n.Arabic},
		{"unknown query code", "?lang=fr", "ar", i18n.English},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
			if tt.acceptLanguage != "" {
				req.Header.Set("Accept-Language", tt.acceptLanguage)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, string(tt.expected), w.Body.String())
			assert.Equal(t, string(tt.expected), w.Header().Get("Content-Language"))
		})
	}
}

func TestGetLocaleDefault(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, i18n.Default, GetLocale(c))
}
