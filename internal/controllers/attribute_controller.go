package controllers

import (
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/gin-recipe-api/internal/middleware"
	"github.com/franciscosanchezn/gin-recipe-api/internal/models"
	"github.com/franciscosanchezn/gin-recipe-api/internal/serializers"
	"github.com/franciscosanchezn/gin-recipe-api/internal/services"
	"github.com/gin-gonic/gin"
)

type named[T any] interface {
	*T
	GetID() uint
	GetName() string
}

// AttributeController serves the list, rename and delete endpoints shared by tags and ingredients
type AttributeController[T any, PT named[T]] struct {
	service      services.AttributeService[T]
	notFoundCode string
}

func NewTagController(service services.AttributeService[models.Tag]) *AttributeController[models.Tag, *models.Tag] {
	return &AttributeController[models.Tag, *models.Tag]{service: service, notFoundCode: models.ErrTagNotFound}
}

func NewIngredientController(service services.AttributeService[models.Ingredient]) *AttributeController[models.Ingredient, *models.Ingredient] {
	return &AttributeController[models.Ingredient, *models.Ingredient]{service: service, notFoundCode: models.ErrIngredientNotFound}
}

// List godoc
// @Summary List tags or ingredients
// @Description Entries owned by the caller, ordered by name descending
// @Tags recipe
// @Produce json
// @Param assigned_only query int false "Only entries attached to a recipe (0 or 1)"
// @Success 200 {array} serializers.AttributeResponse
// @Failure 400 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipe/tags [get]
// @Router /api/v1/recipe/ingredients [get]
func (ac *AttributeController[T, PT]) List(c *gin.Context) {
	assignedOnly := false
	if raw := c.Query("assigned_only"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondValidation(c, "assigned_only", "Must be 0 or 1.")
			return
		}
		assignedOnly = parsed
	}

	items, err := ac.service.List(c.Request.Context(), middleware.GetUserID(c), assignedOnly)
	if err != nil {
		respondError(c, err, ac.notFoundCode)
		return
	}

	out := make([]serializers.AttributeResponse, 0, len(items))
	for i := range items {
		out = append(out, toAttributeResponse[T, PT](&items[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Update godoc
// @Summary Rename a tag or ingredient
// @Tags recipe
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param body body serializers.RenameRequest true "New name"
// @Success 200 {object} serializers.AttributeResponse
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipe/tags/{id} [put]
// @Router /api/v1/recipe/tags/{id} [patch]
// @Router /api/v1/recipe/ingredients/{id} [put]
// @Router /api/v1/recipe/ingredients/{id} [patch]
func (ac *AttributeController[T, PT]) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req serializers.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := ac.service.Update(c.Request.Context(), middleware.GetUserID(c), id, req.Name)
	if err != nil {
		respondError(c, err, ac.notFoundCode)
		return
	}
	c.JSON(http.StatusOK, toAttributeResponse[T, PT](item))
}

// Delete godoc
// @Summary Delete a tag or ingredient
// @Description Detaches the entry from every recipe, then removes it
// @Tags recipe
// @Param id path int true "Entry ID"
// @Success 204 "Deleted"
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipe/tags/{id} [delete]
// @Router /api/v1/recipe/ingredients/{id} [delete]
func (ac *AttributeController[T, PT]) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ac.service.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		respondError(c, err, ac.notFoundCode)
		return
	}
	c.Status(http.StatusNoContent)
}

func toAttributeResponse[T any, PT named[T]](item *T) serializers.AttributeResponse {
	p := PT(item)
	return serializers.AttributeResponse{ID: p.GetID(), Name: p.GetName()}
}
