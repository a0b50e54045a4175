package serializers

import (
	"github.com/franciscosanchezn/gin-recipe-api/internal/models"
	"github.com/franciscosanchezn/gin-recipe-api/internal/services"
)

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email" example:"cook@example.com"`
	Password string `json:"password" binding:"required,min=5" example:"testpass123"`
	Name     string `json:"name" binding:"required" example:"Test Cook"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=5"`
	Name     *string `json:"name"`
}

func (r UpdateUserRequest) Changes() services.UserChanges {
	return services.UserChanges{Email: r.Email, Name: r.Name, Password: r.Password}
}

type UserResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{Email: user.Email, Name: user.Name}
}

type RenameRequest struct {
	Name string `json:"name" binding:"required,max=255" example:"vegetarian"`
}
