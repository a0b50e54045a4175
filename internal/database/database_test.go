package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/franciscosanchezn/gin-recipe-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDatabaseConfigDSN(t *testing.T) {
	testCases := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "postgres from fields",
			cfg:  DatabaseConfig{Driver: "postgres", Host: "db", Port: "5432", User: "chef", Password: "pw", Name: "recipes", SSLMode: "disable"},
			want: "host=db user=chef password=pw dbname=recipes port=5432 sslmode=disable",
		},
		{
			name: "postgres url wins",
			cfg:  DatabaseConfig{Driver: "postgresql", URL: "postgres://chef@db/recipes", Host: "ignored"},
			want: "postgres://chef@db/recipes",
		},
		{
			name: "sqlite path",
			cfg:  DatabaseConfig{Driver: "sqlite", Path: "recipes.sqlite"},
			want: "recipes.sqlite?_foreign_keys=1",
		},
		{
			name: "sqlite path with params",
			cfg:  DatabaseConfig{Path: "file:recipes?mode=memory"},
			want: "file:recipes?mode=memory&_foreign_keys=1",
		},
		{
			name: "unknown driver",
			cfg:  DatabaseConfig{Driver: "oracle"},
			want: "",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}

func TestDatabaseConfigStringMasksPassword(t *testing.T) {
	cfg := DatabaseConfig{Driver: "postgres", Password: "hunter2"}
	assert.NotContains(t, cfg.String(), "hunter2")
}

func TestInitDatabaseUnsupportedDriver(t *testing.T) {
	_, err := InitDatabase(DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestInitDatabaseRetriesThenFails(t *testing.T) {
	original := retryDelays
	retryDelays = []time.Duration{time.Millisecond, time.Millisecond}
	t.Cleanup(func() { retryDelays = original })

	// A directory that does not exist cannot hold the database file
	_, err := InitDatabase(DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "missing", "dir", "test.sqlite"),
	})
	assert.Error(t, err)
}

func TestInitDatabaseSQLiteAndMigrate(t *testing.T) {
	db, err := InitDatabase(DatabaseConfig{Driver: "SQLite", Path: filepath.Join(t.TempDir(), "test.sqlite")})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, table := range []string{"users", "tags", "ingredients", "recipes", "recipe_tags", "recipe_ingredients", "oauth_clients", "oauth_tokens"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestUniqueConstraintsAreTranslated(t *testing.T) {
	db, err := InitDatabase(DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "test.sqlite")})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	user := models.User{Email: "cook@example.com", IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	err = db.Create(&models.User{Email: "cook@example.com", IsActive: true}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	require.NoError(t, db.Create(&models.Tag{Name: "spicy", UserID: user.ID}).Error)
	err = db.Create(&models.Tag{Name: "spicy", UserID: user.ID}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey, "tag names are unique per user at the storage layer")

	other := models.User{Email: "other@example.com", IsActive: true}
	require.NoError(t, db.Create(&other).Error)
	assert.NoError(t, db.Create(&models.Tag{Name: "spicy", UserID: other.ID}).Error)
}
