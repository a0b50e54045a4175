package i18n

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Localized holds one value per locale for a single logical field.
// It is persisted as a JSON object keyed by locale code.
type Localized[T any] map[Locale]T

// Get returns the value stored for exactly the given locale. No fallback to other locales is applied.
func (l Localized[T]) Get(locale Locale) (T, bool) {
	v, ok := l[locale]
	return v, ok
}

// Ptr returns a pointer to the value for the locale, or nil when the locale has no value
func (l Localized[T]) Ptr(locale Locale) *T {
	v, ok := l[locale]
	if !ok {
		return nil
	}
	return &v
}

// With returns a copy of l with the value for locale replaced
func (l Localized[T]) With(locale Locale, value T) Localized[T] {
	out := make(Localized[T], len(l)+1)
	for k, v := range l {
		out[k] = v
	}
	out[locale] = value
	return out
}

// GormDataType stores localized values in a text column on every dialect
func (Localized[T]) GormDataType() string {
	return "text"
}

// Value implements driver.Valuer
func (l Localized[T]) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(map[Locale]T(l))
	if err != nil {
		return nil, fmt.Errorf("marshal localized value: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (l *Localized[T]) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*l = Localized[T]{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported localized column type %T", value)
	}

	if len(raw) == 0 {
		*l = Localized[T]{}
		return nil
	}

	out := Localized[T]{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("unmarshal localized value: %w", err)
	}
	*l = out
	return nil
}
