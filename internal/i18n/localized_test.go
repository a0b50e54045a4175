package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizedGetDoesNotFallBack(t *testing.T) {
	title := Localized[string]{English: "Soup"}

	v, ok := title.Get(English)
	assert.True(t, ok)
	assert.Equal(t, "Soup", v)

	_, ok = title.Get(Arabic)
	assert.False(t, ok)
	assert.Nil(t, title.Ptr(Arabic))
}

func TestLocalizedWithKeepsOtherLocales(t *testing.T) {
	original := Localized[int]{English: 10}
	updated := original.With(Arabic, 20)

	assert.Equal(t, Localized[int]{English: 10, Arabic: 20}, updated)
	assert.Equal(t, Localized[int]{English: 10}, original, "With must not mutate the receiver")
}

func TestLocalizedValueAndScan(t *testing.T) {
	title := Localized[string]{English: "Soup", Arabic: "شوربة"}

	value, err := title.Value()
	require.NoError(t, err)

	var scanned Localized[string]
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, title, scanned)

	var fromBytes Localized[string]
	require.NoError(t, fromBytes.Scan([]byte(`{"ar":"شوربة"}`)))
	assert.Equal(t, "شوربة", fromBytes[Arabic])
}

func TestLocalizedEmptyRoundTrip(t *testing.T) {
	value, err := Localized[string]{}.Value()
	require.NoError(t, err)
	assert.Nil(t, value)

	var scanned Localized[string]
	require.NoError(t, scanned.Scan(nil))
	assert.NotNil(t, scanned)
	assert.Empty(t, scanned)
}

func TestLocalizedScanRejectsUnknownTypes(t *testing.T) {
	var scanned Localized[string]
	assert.Error(t, scanned.Scan(42))
	assert.Error(t, scanned.Scan("not json"))
}
