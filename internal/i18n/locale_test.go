package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromCode(t *testing.T) {
	testCases := []struct {
		name     string
		code     string
		expected Locale
	}{
		{name: "arabic", code: "ar", expected: Arabic},
		{name: "arabic upper case", code: "AR", expected: Arabic},
		{name: "arabic with spaces", code: " ar ", expected: Arabic},
		{name: "english", code: "en", expected: English},
		{name: "empty falls back to english", code: "", expected: English},
		{name: "unsupported falls back to english", code: "fr", expected: English},
		{name: "regional arabic is not an exact code", code: "ar-EG", expected: English},
		{name: "garbage falls back to english", code: "??", expected: English},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromCode(tt.code))
		})
	}
}

func TestNegotiate(t *testing.T) {
	testCases := []struct {
		name   string
		header string
		want   Locale
	}{
		{name: "missing header", header: "", want: English},
		{name: "plain arabic", header: "ar", want: Arabic},
		{name: "regional arabic", header: "ar-EG,ar;q=0.9", want: Arabic},
		{name: "english preferred", header: "en-US,en;q=0.9,ar;q=0.5", want: English},
		{name: "arabic preferred over english", header: "ar;q=0.9,en;q=0.1", want: Arabic},
		{name: "unsupported only", header: "de-DE", want: English},
		{name: "malformed", header: ";;;q=", want: English},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Negotiate(tt.header))
		})
	}
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("en"))
	assert.True(t, IsSupported("ar"))
	assert.False(t, IsSupported("fr"))
	assert.False(t, IsSupported(""))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, English, English.Normalize())
	assert.Equal(t, Arabic, Arabic.Normalize())
	assert.Equal(t, English, Locale("fr").Normalize())
	assert.Equal(t, English, Locale("").Normalize())
	assert.Equal(t, English, Locale("AR").Normalize())
}
