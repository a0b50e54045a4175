package services

import (
	"context"
	"strings"
	"testing"

	"github.com/franciscosanchezn/gin-recipe-api/internal/models"
	"github.com/franciscosanchezn/gin-recipe-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagNames(tags []models.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}

func TestGetOrCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("collapses duplicates and keeps first-seen order", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		user := testutil.CreateUser(t, db, "cook@example.com")
		svc := NewTagService(db)

		tags, err := svc.GetOrCreate(ctx, user.ID, []string{"veg", " spicy ", "veg"})
		require.NoError(t, err)
		assert.Equal(t, []string{"veg", "spicy"}, tagNames(tags))

		var count int64
		db.Model(&models.Tag{}).Where("user_id = ?", user.ID).Count(&count)
		assert.Equal(t, int64(2), count)
	})

	t.Run("resubmitting names reuses the existing rows", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		user := testutil.CreateUser(t, db, "cook@example.com")
		svc := NewIngredientService(db)

		first, err := svc.GetOrCreate(ctx, user.ID, []string{"salt"})
		require.NoError(t, err)
		second, err := svc.GetOrCreate(ctx, user.ID, []string{"salt", "pepper"})
		require.NoError(t, err)

		require.Len(t, second, 2)
		assert.Equal(t, first[0].ID, second[0].ID)

		var count int64
		db.Model(&models.Ingredient{}).Count(&count)
		assert.Equal(t, int64(2), count)
	})

	t.Run("names are scoped per user", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		alice := testutil.CreateUser(t, db, "alice@example.com")
		bob := testutil.CreateUser(t, db, "bob@example.com")
		svc := NewTagService(db)

		a, err := svc.GetOrCreate(ctx, alice.ID, []string{"veg"})
		require.NoError(t, err)
		b, err := svc.GetOrCreate(ctx, bob.ID, []string{"veg"})
		require.NoError(t, err)
		assert.NotEqual(t, a[0].ID, b[0].ID)
	})

	t.Run("blank and oversized names are rejected", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		user := testutil.CreateUser(t, db, "cook@example.com")
		svc := NewTagService(db)

		var validationErr *ValidationError
		_, err := svc.GetOrCreate(ctx, user.ID, []string{"ok", "  "})
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "tags", validationErr.Field)

		_, err = svc.GetOrCreate(ctx, user.ID, []string{strings.Repeat("x", 256)})
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestAttributeList(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")
	tags := NewTagService(db)
	recipes := NewRecipeService(db, tags, NewIngredientService(db), newMemoryStorage())

	_, err := tags.GetOrCreate(ctx, alice.ID, []string{"breakfast", "vegan", "dessert"})
	require.NoError(t, err)
	_, err = tags.GetOrCreate(ctx, bob.ID, []string{"bob-only"})
	require.NoError(t, err)

	assigned := []string{"vegan"}
	_, err = recipes.Create(ctx, alice.ID, RecipeChanges{Title: strPtr("Salad"), Tags: &assigned})
	require.NoError(t, err)
	_, err = recipes.Create(ctx, alice.ID, RecipeChanges{Title: strPtr("Bowl"), Tags: &assigned})
	require.NoError(t, err)

	all, err := tags.List(ctx, alice.ID, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"vegan", "dessert", "breakfast"}, tagNames(all))

	onlyAssigned, err := tags.List(ctx, alice.ID, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"vegan"}, tagNames(onlyAssigned), "assigned tags are listed once")
}

func TestAttributeUpdate(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")
	svc := NewTagService(db)

	created, err := svc.GetOrCreate(ctx, alice.ID, []string{"veg", "meat"})
	require.NoError(t, err)

	renamed, err := svc.Update(ctx, alice.ID, created[0].ID, "vegetarian")
	require.NoError(t, err)
	assert.Equal(t, "vegetarian", renamed.Name)

	_, err = svc.Update(ctx, alice.ID, created[0].ID, "meat")
	var conflictErr *ConflictError
	assert.ErrorAs(t, err, &conflictErr)

	_, err = svc.Update(ctx, bob.ID, created[0].ID, "stolen")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAttributeDelete(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")
	tags := NewTagService(db)
	recipes := NewRecipeService(db, tags, NewIngredientService(db), newMemoryStorage())

	names := []string{"spicy", "quick"}
	recipe, err := recipes.Create(ctx, alice.ID, RecipeChanges{Title: strPtr("Curry"), Tags: &names})
	require.NoError(t, err)
	require.Len(t, recipe.Tags, 2)

	spicy := recipe.Tags[0]
	assert.ErrorIs(t, tags.Delete(ctx, bob.ID, spicy.ID), ErrNotFound)
	require.NoError(t, tags.Delete(ctx, alice.ID, spicy.ID))

	reloaded, err := recipes.Get(ctx, alice.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"quick"}, tagNames(reloaded.Tags))

	_, err = tags.Get(ctx, alice.ID, spicy.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
