// Package serializers maps stored recipes onto the single-locale shape exposed by the API
// and turns request payloads into locale-targeted change sets.
package serializers

import (
	"github.com/franciscosanchezn/gin-recipe-api/internal/i18n"
	"github.com/franciscosanchezn/gin-recipe-api/internal/models"
	"github.com/franciscosanchezn/gin-recipe-api/internal/services"
	"github.com/shopspring/decimal"
)

// URLResolver turns a stored object key into a public URL
type URLResolver interface {
	URL(key string) string
}

// AttributeResponse is the shape shared by tags and ingredients
type AttributeResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type (
	TagResponse        = AttributeResponse
	IngredientResponse = AttributeResponse
)

// RecipeResponse is the list representation of a recipe
type RecipeResponse struct {
	ID          uint                 `json:"id"`
	Title       *string              `json:"title"`
	TimeMinutes *int                 `json:"time_minutes"`
	Price       *string              `json:"price" swaggertype:"string" example:"5.50"`
	Link        *string              `json:"link"`
	Tags        []TagResponse        `json:"tags"`
	Ingredients []IngredientResponse `json:"ingredients"`
	Image       *string              `json:"image"`
}

// RecipeDetailResponse adds the description to the list representation
type RecipeDetailResponse struct {
	RecipeResponse
	Description *string `json:"description"`
}

// RecipeImageResponse is returned by the image upload endpoint
type RecipeImageResponse struct {
	ID    uint    `json:"id"`
	Image *string `json:"image"`
}

// Project exposes every localized field of the recipe in exactly the given locale.
// Fields with no value in that locale are null; no other locale is consulted.
// Unsupported locales read the default locale.
func Project(recipe *models.Recipe, locale i18n.Locale, urls URLResolver) RecipeResponse {
	locale = locale.Normalize()
	resp := RecipeResponse{
		ID:          recipe.ID,
		Title:       recipe.Title.Ptr(locale),
		TimeMinutes: recipe.TimeMinutes.Ptr(locale),
		Link:        recipe.Link.Ptr(locale),
		Tags:        make([]TagResponse, 0, len(recipe.Tags)),
		Ingredients: make([]IngredientResponse, 0, len(recipe.Ingredients)),
		Image:       imageURL(recipe, urls),
	}
	if price, ok := recipe.Price.Get(locale); ok {
		resp.Price = formatPrice(price)
	}
	for _, tag := range recipe.Tags {
		resp.Tags = append(resp.Tags, TagResponse{ID: tag.ID, Name: tag.Name})
	}
	for _, ingredient := range recipe.Ingredients {
		resp.Ingredients = append(resp.Ingredients, IngredientResponse{ID: ingredient.ID, Name: ingredient.Name})
	}
	return resp
}

// ProjectDetail is Project plus the localized description
func ProjectDetail(recipe *models.Recipe, locale i18n.Locale, urls URLResolver) RecipeDetailResponse {
	locale = locale.Normalize()
	return RecipeDetailResponse{
		RecipeResponse: Project(recipe, locale, urls),
		Description:    recipe.Description.Ptr(locale),
	}
}

// ProjectList projects every recipe of a listing
func ProjectList(recipes []models.Recipe, locale i18n.Locale, urls URLResolver) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, Project(&recipes[i], locale, urls))
	}
	return out
}

// ProjectImage builds the image upload response
func ProjectImage(recipe *models.Recipe, urls URLResolver) RecipeImageResponse {
	return RecipeImageResponse{ID: recipe.ID, Image: imageURL(recipe, urls)}
}

func imageURL(recipe *models.Recipe, urls URLResolver) *string {
	if recipe.Image == nil || *recipe.Image == "" {
		return nil
	}
	url := urls.URL(*recipe.Image)
	return &url
}

func formatPrice(price decimal.Decimal) *string {
	s := price.StringFixed(2)
	return &s
}

type TagRequest struct {
	Name string `json:"name" example:"vegan"`
}

type IngredientRequest struct {
	Name string `json:"name" example:"salt"`
}

// RecipeRequest is the body of recipe create and update requests.
// Absent fields are left untouched on update.
type RecipeRequest struct {
	Title       *string              `json:"title" binding:"omitempty,max=255"`
	Description *string              `json:"description"`
	TimeMinutes *int                 `json:"time_minutes" binding:"omitempty,gte=0"`
	Price       *decimal.Decimal     `json:"price" swaggertype:"string" example:"5.50"`
	Link        *string              `json:"link" binding:"omitempty,max=255"`
	Tags        *[]TagRequest        `json:"tags"`
	Ingredients *[]IngredientRequest `json:"ingredients"`
}

// Changes targets every present field at the given locale
func (r RecipeRequest) Changes(locale i18n.Locale) services.RecipeChanges {
	changes := services.RecipeChanges{
		Locale:      locale,
		Title:       r.Title,
		Description: r.Description,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
	}
	if r.Tags != nil {
		names := make([]string, 0, len(*r.Tags))
		for _, tag := range *r.Tags {
			names = append(names, tag.Name)
		}
		changes.Tags = &names
	}
	if r.Ingredients != nil {
		names := make([]string, 0, len(*r.Ingredients))
		for _, ingredient := range *r.Ingredients {
			names = append(names, ingredient.Name)
		}
		changes.Ingredients = &names
	}
	return changes
}
