package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keyPattern = regexp.MustCompile(`^uploads/recipe/[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}(\..*)?$`)

func TestRecipeImageKey(t *testing.T) {
	testCases := []struct {
		filename string
		ext      string
	}{
		{filename: "pic.JPG", ext: ".JPG"},
		{filename: "photo.png", ext: ".png"},
		{filename: "archive.tar.gz", ext: ".gz"},
		{filename: "noext", ext: ""},
		{filename: ".hidden", ext: ""},
		{filename: "nested/dir/pic.webp", ext: ".webp"},
		{filename: `C:\Users\cook\pic.jpeg`, ext: ".jpeg"},
	}

	for _, tt := range testCases {
		t.Run(tt.filename, func(t *testing.T) {
			key := RecipeImageKey(tt.filename)
			assert.Regexp(t, keyPattern, key)
			if tt.ext == "" {
				assert.Len(t, key, len("uploads/recipe/")+36)
			} else {
				assert.True(t, len(key) > len(tt.ext) && key[len(key)-len(tt.ext):] == tt.ext, "key %s should end with %s", key, tt.ext)
			}
		})
	}
}

func TestRecipeImageKeyIsFreshEachTime(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key := RecipeImageKey("pic.JPG")
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
	}
}

func TestLocalStorage(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStorage(root, "/media/")

	key := RecipeImageKey("pic.png")
	require.NoError(t, store.Save(context.Background(), key, bytes.NewBufferString("image-bytes"), "image/png"))

	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(content))
	assert.Equal(t, "/media/"+key, store.URL(key))
}

func TestLocalStorageHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewLocalStorage(t.TempDir(), "/media")
	assert.Error(t, store.Save(ctx, "uploads/recipe/x.png", bytes.NewBufferString("x"), "image/png"))
}

type fakeS3 struct {
	input *s3.PutObjectInput
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	return &s3.PutObjectOutput{}, nil
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestLocalStorageReportsFailedWrite(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStorage(root, "/media/")

	err := store.Save(context.Background(), "uploads/recipe/broken.png", failingReader{}, "image/png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")

	_, statErr := os.Stat(filepath.Join(root, "uploads", "recipe", "broken.png"))
	assert.True(t, os.IsNotExist(statErr), "partial file is removed")
}

func TestS3Storage(t *testing.T) {
	client := &fakeS3{}
	store := NewS3Storage(client, "recipe-images", "")

	require.NoError(t, store.Save(context.Background(), "uploads/recipe/a.png", bytes.NewBufferString("x"), "image/png"))
	require.NotNil(t, client.input)
	assert.Equal(t, "recipe-images", *client.input.Bucket)
	assert.Equal(t, "uploads/recipe/a.png", *client.input.Key)
	assert.Equal(t, "image/png", *client.input.ContentType)

	assert.Equal(t, "https://recipe-images.s3.amazonaws.com/uploads/recipe/a.png", store.URL("uploads/recipe/a.png"))
	assert.Equal(t, "https://cdn.example.com/uploads/recipe/a.png",
		NewS3Storage(client, "recipe-images", "https://cdn.example.com/").URL("uploads/recipe/a.png"))
}
