package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"unicode/utf8"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/franciscosanchezn/gin-recipe-api/internal/i18n"
	"github.com/franciscosanchezn/gin-recipe-api/internal/models"
	"github.com/franciscosanchezn/gin-recipe-api/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	maxTitleLength = 255
	maxLinkLength  = 255
	priceScale     = 2
)

// maxPrice is the first value that no longer fits five digits with two decimal places
var maxPrice = decimal.NewFromInt(1000)

// RecipeChanges carries the fields of a create or update request.
// Scalar fields are written into the entry of Locale only; nil fields are left untouched.
// Tags and Ingredients: nil keeps the current set, an empty slice clears it, anything else replaces it.
type RecipeChanges struct {
	Locale      i18n.Locale
	Title       *string
	Description *string
	TimeMinutes *int
	Price       *decimal.Decimal
	Link        *string
	Tags        *[]string
	Ingredients *[]string
}

// RecipeFilter narrows a recipe listing. Ids inside one filter are alternatives;
// both filters must match when both are set.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

type RecipeService interface {
	List(ctx context.Context, userID uint, filter RecipeFilter) ([]models.Recipe, error)
	Get(ctx context.Context, userID, id uint) (*models.Recipe, error)
	Create(ctx context.Context, userID uint, changes RecipeChanges) (*models.Recipe, error)
	Update(ctx context.Context, userID, id uint, changes RecipeChanges) (*models.Recipe, error)
	Delete(ctx context.Context, userID, id uint) error
	// UploadImage validates the payload as an image, stores it under a fresh key
	// and points the recipe at it. The previous object is left in place.
	UploadImage(ctx context.Context, userID, id uint, filename string, content io.Reader) (*models.Recipe, error)
}

type recipeService struct {
	db          *gorm.DB
	tags        AttributeService[models.Tag]
	ingredients AttributeService[models.Ingredient]
	store       storage.Storage
}

func NewRecipeService(db *gorm.DB, tags AttributeService[models.Tag], ingredients AttributeService[models.Ingredient], store storage.Storage) RecipeService {
	return &recipeService{db: db, tags: tags, ingredients: ingredients, store: store}
}

func (s *recipeService) List(ctx context.Context, userID uint, filter RecipeFilter) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if len(filter.TagIDs) > 0 {
		query = query.Where("id IN (SELECT recipe_id FROM recipe_tags WHERE tag_id IN ?)", filter.TagIDs)
	}
	if len(filter.IngredientIDs) > 0 {
		query = query.Where("id IN (SELECT recipe_id FROM recipe_ingredients WHERE ingredient_id IN ?)", filter.IngredientIDs)
	}

	var recipes []models.Recipe
	err := preloadRelations(query).Order("id DESC").Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

func (s *recipeService) Get(ctx context.Context, userID, id uint) (*models.Recipe, error) {
	return s.find(preloadRelations(s.db.WithContext(ctx)), userID, id)
}

func (s *recipeService) Create(ctx context.Context, userID uint, changes RecipeChanges) (*models.Recipe, error) {
	if err := changes.validate(); err != nil {
		return nil, err
	}

	recipe := models.Recipe{UserID: userID}
	changes.apply(&recipe)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&recipe).Error; err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}
		return s.attach(ctx, tx, &recipe, changes)
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{"user_id": userID, "recipe_id": recipe.ID}).Info("Recipe created")
	return s.Get(ctx, userID, recipe.ID)
}

func (s *recipeService) Update(ctx context.Context, userID, id uint, changes RecipeChanges) (*models.Recipe, error) {
	if err := changes.validate(); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := s.find(tx, userID, id)
		if err != nil {
			return err
		}

		changes.apply(recipe)
		if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}
		return s.attach(ctx, tx, recipe, changes)
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{"user_id": userID, "recipe_id": id}).Debug("Recipe updated")
	return s.Get(ctx, userID, id)
}

func (s *recipeService) Delete(ctx context.Context, userID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := s.find(tx, userID, id)
		if err != nil {
			return err
		}
		// Select removes the join rows; shared tags and ingredients stay
		if err := tx.Select("Tags", "Ingredients").Delete(recipe).Error; err != nil {
			return fmt.Errorf("delete recipe: %w", err)
		}
		return nil
	})
}

func (s *recipeService) UploadImage(ctx context.Context, userID, id uint, filename string, content io.Reader) (*models.Recipe, error) {
	recipe, err := s.find(s.db.WithContext(ctx), userID, id)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, newValidationError("image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}

	key := storage.RecipeImageKey(filename)
	if err := s.store.Save(ctx, key, bytes.NewReader(data), "image/"+format); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageStorage, err)
	}

	if err := s.db.WithContext(ctx).Model(recipe).Update("image", key).Error; err != nil {
		return nil, fmt.Errorf("update recipe image: %w", err)
	}
	recipe.Image = &key

	log.WithFields(logrus.Fields{"recipe_id": id, "key": key, "format": format}).Info("Recipe image stored")
	return recipe, nil
}

func (s *recipeService) find(db *gorm.DB, userID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&recipe).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &recipe, nil
}

// attach resolves the tag and ingredient names of changes and sets them on the recipe
func (s *recipeService) attach(ctx context.Context, tx *gorm.DB, recipe *models.Recipe, changes RecipeChanges) error {
	if changes.Tags != nil {
		tags, err := s.tags.WithTx(tx).GetOrCreate(ctx, recipe.UserID, *changes.Tags)
		if err != nil {
			return err
		}
		if err := setAssociation(tx, recipe, "Tags", tags); err != nil {
			return fmt.Errorf("attach tags: %w", err)
		}
	}
	if changes.Ingredients != nil {
		ingredients, err := s.ingredients.WithTx(tx).GetOrCreate(ctx, recipe.UserID, *changes.Ingredients)
		if err != nil {
			return err
		}
		if err := setAssociation(tx, recipe, "Ingredients", ingredients); err != nil {
			return fmt.Errorf("attach ingredients: %w", err)
		}
	}
	return nil
}

func setAssociation[T any](tx *gorm.DB, recipe *models.Recipe, name string, values []T) error {
	association := tx.Model(recipe).Association(name)
	if len(values) == 0 {
		return association.Clear()
	}
	return association.Replace(values)
}

func preloadRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("ingredients.id") })
}

func (c RecipeChanges) locale() i18n.Locale {
	return c.Locale.Normalize()
}

func (c RecipeChanges) validate() error {
	if c.Title != nil && utf8.RuneCountInString(*c.Title) > maxTitleLength {
		return newValidationError("title", fmt.Sprintf("Ensure this field has no more than %d characters.", maxTitleLength))
	}
	if c.Link != nil && utf8.RuneCountInString(*c.Link) > maxLinkLength {
		return newValidationError("link", fmt.Sprintf("Ensure this field has no more than %d characters.", maxLinkLength))
	}
	if c.Price != nil {
		return validatePrice(*c.Price)
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if !price.Equal(price.Round(priceScale)) {
		return newValidationError("price", "Ensure that there are no more than 2 decimal places.")
	}
	if price.Abs().GreaterThanOrEqual(maxPrice) {
		return newValidationError("price", "Ensure that there are no more than 5 digits in total.")
	}
	return nil
}

func (c RecipeChanges) apply(recipe *models.Recipe) {
	locale := c.locale()
	if c.Title != nil {
		recipe.Title = recipe.Title.With(locale, *c.Title)
	}
	if c.Description != nil {
		recipe.Description = recipe.Description.With(locale, *c.Description)
	}
	if c.TimeMinutes != nil {
		recipe.TimeMinutes = recipe.TimeMinutes.With(locale, *c.TimeMinutes)
	}
	if c.Price != nil {
		recipe.Price = recipe.Price.With(locale, c.Price.Round(priceScale))
	}
	if c.Link != nil {
		recipe.Link = recipe.Link.With(locale, *c.Link)
	}
}
