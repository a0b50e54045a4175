package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-recipe-api/internal/middleware"
	"github.com/franciscosanchezn/gin-recipe-api/internal/models"
	"github.com/franciscosanchezn/gin-recipe-api/internal/serializers"
	"github.com/franciscosanchezn/gin-recipe-api/internal/services"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	users services.UserService
}

func NewUserController(users services.UserService) *UserController {
	return &UserController{users: users}
}

// CreateUser godoc
// @Summary Create a user
// @Description Register a new account
// @Tags user
// @Accept json
// @Produce json
// @Param user body serializers.CreateUserRequest true "Account details"
// @Success 201 {object} serializers.UserResponse
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /api/v1/user/create [post]
func (uc *UserController) CreateUser(c *gin.Context) {
	var req serializers.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := uc.users.CreateUser(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondError(c, err, models.ErrUserNotFound)
		return
	}
	c.JSON(http.StatusCreated, serializers.NewUserResponse(user))
}

// Me godoc
// @Summary Get own profile
// @Tags user
// @Produce json
// @Success 200 {object} serializers.UserResponse
// @Failure 401 {object} models.OAuth2Error
// @Security BearerAuth
// @Router /api/v1/user/me [get]
func (uc *UserController) Me(c *gin.Context) {
	user, err := uc.users.GetUserByID(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err, models.ErrUserNotFound)
		return
	}
	c.JSON(http.StatusOK, serializers.NewUserResponse(user))
}

// UpdateMe godoc
// @Summary Update own profile
// @Description Partial update; a new password is hashed before it is stored
// @Tags user
// @Accept json
// @Produce json
// @Param user body serializers.UpdateUserRequest true "Fields to change"
// @Success 200 {object} serializers.UserResponse
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/user/me [put]
// @Router /api/v1/user/me [patch]
func (uc *UserController) UpdateMe(c *gin.Context) {
	var req serializers.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := uc.users.UpdateUser(c.Request.Context(), middleware.GetUserID(c), req.Changes())
	if err != nil {
		respondError(c, err, models.ErrUserNotFound)
		return
	}
	c.JSON(http.StatusOK, serializers.NewUserResponse(user))
}
