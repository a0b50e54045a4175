package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/franciscosanchezn/gin-recipe-api/internal/models"
	"gorm.io/gorm"
)

// UserChanges holds the profile fields to overwrite; nil fields are left untouched
type UserChanges struct {
	Email    *string
	Name     *string
	Password *string
}

type UserService interface {
	// CreateUser validates, hashes the password and persists a regular user
	CreateUser(ctx context.Context, email, password, name string) (*models.User, error)
	// CreateSuperuser creates a user and grants staff and superuser flags
	CreateSuperuser(ctx context.Context, email, password string) (*models.User, error)
	// Authenticate returns the active user matching the credentials, or nil
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	UpdateUser(ctx context.Context, id uint, changes UserChanges) (*models.User, error)
}

type userService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) CreateUser(ctx context.Context, email, password, name string) (*models.User, error) {
	email = models.NormalizeEmail(email)
	if email == "" {
		return nil, newValidationError("email", "User must have an email address.")
	}

	user := &models.User{
		Email:    email,
		Name:     strings.TrimSpace(name),
		Password: password,
		IsActive: true,
	}
	if err := user.HashPassword(); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, translateUserError(err)
	}

	log.WithField("user_id", user.ID).Info("User created")
	return user, nil
}

func (s *userService) CreateSuperuser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.CreateUser(ctx, email, password, "")
	if err != nil {
		return nil, err
	}

	user.IsStaff = true
	user.IsSuperuser = true
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("promote superuser: %w", err)
	}

	log.WithField("user_id", user.ID).Info("Superuser created")
	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive || !user.CheckPassword(password) {
		return nil, nil
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", models.NormalizeEmail(email)).First(&user).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uint, changes UserChanges) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if changes.Email != nil {
		email := models.NormalizeEmail(*changes.Email)
		if email == "" {
			return nil, newValidationError("email", "User must have an email address.")
		}
		user.Email = email
	}
	if changes.Name != nil {
		user.Name = strings.TrimSpace(*changes.Name)
	}
	if changes.Password != nil {
		user.Password = *changes.Password
		if err := user.HashPassword(); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, translateUserError(err)
	}
	return user, nil
}

func translateUserError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &ConflictError{Field: "email", Message: "user with this email already exists."}
	}
	return err
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
