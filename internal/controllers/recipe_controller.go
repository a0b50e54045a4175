package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/gin-recipe-api/internal/middleware"
	"github.com/franciscosanchezn/gin-recipe-api/internal/models"
	"github.com/franciscosanchezn/gin-recipe-api/internal/serializers"
	"github.com/franciscosanchezn/gin-recipe-api/internal/services"
	"github.com/gin-gonic/gin"
)

// RecipeController handles HTTP requests related to recipes
type RecipeController interface {
	// ListRecipes lists the caller's recipes, optionally filtered by tags and ingredients
	ListRecipes(c *gin.Context)
	GetRecipe(c *gin.Context)
	CreateRecipe(c *gin.Context)
	// UpdateRecipe serves both PUT and PATCH with partial semantics
	UpdateRecipe(c *gin.Context)
	DeleteRecipe(c *gin.Context)
	UploadImage(c *gin.Context)
}

type recipeController struct {
	service        services.RecipeService
	urls           serializers.URLResolver
	maxUploadBytes int64
}

// NewRecipeController creates a RecipeController; uploads larger than maxUploadBytes are rejected
func NewRecipeController(service services.RecipeService, urls serializers.URLResolver, maxUploadBytes int64) RecipeController {
	return &recipeController{service: service, urls: urls, maxUploadBytes: maxUploadBytes}
}

// ListRecipes godoc
// @Summary List recipes
// @Description List the caller's recipes, newest first. Ids inside one filter are alternatives; tags and ingredients filters must both match.
// @Tags recipe
// @Produce json
// @Param tags query string false "Comma separated list of tag ids to filter"
// @Param ingredients query string false "Comma separated list of ingredient ids to filter"
// @Param lang query string false "Response language (en, ar)"
// @Param Accept-Language header string false "Preferred language"
// @Success 200 {array} serializers.RecipeResponse
// @Failure 400 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipe/recipes [get]
func (rc *recipeController) ListRecipes(c *gin.Context) {
	tagIDs, err := parseIDList(c.Query("tags"))
	if err != nil {
		respondValidation(c, "tags", err.Error())
		return
	}
	ingredientIDs, err := parseIDList(c.Query("ingredients"))
	if err != nil {
		respondValidation(c, "ingredients", err.Error())
		return
	}

	recipes, err := rc.service.List(c.Request.Context(), middleware.GetUserID(c), services.RecipeFilter{
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
	})
	if err != nil {
		respondError(c, err, models.ErrRecipeNotFound)
		return
	}
	c.JSON(http.StatusOK, serializers.ProjectList(recipes, middleware.GetLocale(c), rc.urls))
}

// GetRecipe godoc
// @Summary Get a recipe
// @Tags recipe
// @Produce json
// @Param id path int true "Recipe ID"
// @Param lang query string false "Response language (en, ar)"
// @Success 200 {object} serializers.RecipeDetailResponse
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipe/recipes/{id} [get]
func (rc *recipeController) GetRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	recipe, err := rc.service.Get(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err, models.ErrRecipeNotFound)
		return
	}
	c.JSON(http.StatusOK, serializers.ProjectDetail(recipe, middleware.GetLocale(c), rc.urls))
}

// CreateRecipe godoc
// @Summary Create a recipe
// @Description Localized fields are stored in the request language. Tags and ingredients are looked up by name and created when missing.
// @Tags recipe
// @Accept json
// @Produce json
// @Param recipe body serializers.RecipeRequest true "Recipe"
// @Param lang query string false "Language the fields are written in (en, ar)"
// @Success 201 {object} serializers.RecipeDetailResponse
// @Failure 400 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipe/recipes [post]
func (rc *recipeController) CreateRecipe(c *gin.Context) {
	var req serializers.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	locale := middleware.GetLocale(c)
	recipe, err := rc.service.Create(c.Request.Context(), middleware.GetUserID(c), req.Changes(locale))
	if err != nil {
		respondError(c, err, models.ErrRecipeNotFound)
		return
	}
	c.JSON(http.StatusCreated, serializers.ProjectDetail(recipe, locale, rc.urls))
}

// UpdateRecipe godoc
// @Summary Update a recipe
// @Description Partial update. Omitted tags or ingredients are kept, an empty list clears them, a non-empty list replaces them.
// @Tags recipe
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param recipe body serializers.RecipeRequest true "Fields to change"
// @Param lang query string false "Language the fields are written in (en, ar)"
// @Success 200 {object} serializers.RecipeDetailResponse
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipe/recipes/{id} [put]
// @Router /api/v1/recipe/recipes/{id} [patch]
func (rc *recipeController) UpdateRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req serializers.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	locale := middleware.GetLocale(c)
	recipe, err := rc.service.Update(c.Request.Context(), middleware.GetUserID(c), id, req.Changes(locale))
	if err != nil {
		respondError(c, err, models.ErrRecipeNotFound)
		return
	}
	c.JSON(http.StatusOK, serializers.ProjectDetail(recipe, locale, rc.urls))
}

// DeleteRecipe godoc
// @Summary Delete a recipe
// @Description Tags and ingredients referenced by the recipe are kept
// @Tags recipe
// @Param id path int true "Recipe ID"
// @Success 204 "Recipe deleted"
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipe/recipes/{id} [delete]
func (rc *recipeController) DeleteRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := rc.service.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		respondError(c, err, models.ErrRecipeNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage godoc
// @Summary Upload a recipe image
// @Description Stores the image under a fresh key and points the recipe at it
// @Tags recipe
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Recipe ID"
// @Param image formData file true "Image file (jpeg, png, gif or webp)"
// @Success 200 {object} serializers.RecipeImageResponse
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 502 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipe/recipes/{id}/upload-image [post]
func (rc *recipeController) UploadImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, rc.maxUploadBytes)
	header, err := c.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondValidation(c, "image", "Ensure the file is no larger than "+strconv.FormatInt(rc.maxUploadBytes, 10)+" bytes.")
			return
		}
		respondValidation(c, "image", "No file was submitted.")
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, err, models.ErrRecipeNotFound)
		return
	}
	defer file.Close()

	recipe, err := rc.service.UploadImage(c.Request.Context(), middleware.GetUserID(c), id, header.Filename, file)
	if errors.Is(err, services.ErrImageStorage) {
		log.WithError(err).WithField("recipe_id", id).Error("Image upload failed")
		c.JSON(http.StatusBadGateway, models.NewAPIError(models.ErrImageStoreFailed, "Image could not be stored"))
		return
	}
	if err != nil {
		respondError(c, err, models.ErrRecipeNotFound)
		return
	}
	c.JSON(http.StatusOK, serializers.ProjectImage(recipe, rc.urls))
}
