// Package storage persists uploaded recipe images and resolves their public URLs.
package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// RecipeImageDir is the key prefix of every recipe image
const RecipeImageDir = "uploads/recipe"

// Storage writes objects under a key and exposes them through a public URL
type Storage interface {
	// Save stores the content under key, replacing any existing object
	Save(ctx context.Context, key string, content io.Reader, contentType string) error
	// URL returns the public location of the object stored under key
	URL(key string) string
}

// RecipeImageKey builds a collision-free key for an uploaded file: uploads/recipe/<uuid4><ext>.
// The extension of the original name is kept verbatim, including its leading dot and case.
func RecipeImageKey(filename string) string {
	return path.Join(RecipeImageDir, uuid.New().String()+extension(filename))
}

// extension returns the suffix starting at the last dot of the base name.
// Leading dots belong to the name, so ".hidden" has no extension.
func extension(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	trimmed := strings.TrimLeft(base, ".")
	if trimmed == "" {
		return ""
	}
	return path.Ext(trimmed)
}
