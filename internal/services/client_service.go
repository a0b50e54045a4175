package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/franciscosanchezn/gin-recipe-api/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Grant types understood by the token endpoint
const (
	GrantPassword          = "password"
	GrantClientCredentials = "client_credentials"
	GrantRefreshToken      = "refresh_token"
)

// ClientRequest describes an API client registered by a staff user
type ClientRequest struct {
	Name        string
	Domain      string
	Scopes      string
	GrantTypes  string
	RedirectURI string
}

type ClientService interface {
	// CreateClient registers a confidential client and returns it with the plaintext secret.
	// Only the bcrypt hash of the secret is persisted.
	CreateClient(ctx context.Context, ownerID uint, req ClientRequest) (*models.OAuthClient, string, error)
	// EnsurePublicClient creates the first-party public client if it is missing
	EnsurePublicClient(ctx context.Context, clientID, name string) (*models.OAuthClient, error)
	GetClientsByUserID(ctx context.Context, userID uint) ([]models.OAuthClient, error)
	GetClientByID(ctx context.Context, id string) (*models.OAuthClient, error)
	DeleteClient(ctx context.Context, clientID string, userID uint) error
}

type clientService struct {
	db *gorm.DB
}

func NewClientService(db *gorm.DB) ClientService {
	return &clientService{db: db}
}

func (s *clientService) CreateClient(ctx context.Context, ownerID uint, req ClientRequest) (*models.OAuthClient, string, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, "", newValidationError("name", "This field is required.")
	}

	grantTypes := strings.TrimSpace(req.GrantTypes)
	if grantTypes == "" {
		grantTypes = GrantClientCredentials
	}
	for _, grant := range strings.Fields(grantTypes) {
		switch grant {
		case GrantPassword, GrantClientCredentials, GrantRefreshToken:
		default:
			return nil, "", newValidationError("grant_types", fmt.Sprintf("%q is not a supported grant type.", grant))
		}
	}

	secret := uuid.New().String()
	hashedSecret, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash client secret: %w", err)
	}

	client := &models.OAuthClient{
		ID:          uuid.New().String(),
		Secret:      string(hashedSecret),
		Name:        name,
		Domain:      req.Domain,
		Scopes:      req.Scopes,
		GrantTypes:  grantTypes,
		RedirectURI: req.RedirectURI,
		UserID:      ownerID,
	}
	if err := s.db.WithContext(ctx).Create(client).Error; err != nil {
		return nil, "", fmt.Errorf("create client: %w", err)
	}

	log.WithField("client_id", client.ID).Info("OAuth client created")
	return client, secret, nil
}

func (s *clientService) EnsurePublicClient(ctx context.Context, clientID, name string) (*models.OAuthClient, error) {
	client := &models.OAuthClient{
		ID:         clientID,
		Name:       name,
		Public:     true,
		Scopes:     "read write",
		GrantTypes: strings.Join([]string{GrantPassword, GrantRefreshToken}, " "),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(client).Error
	if err != nil {
		return nil, fmt.Errorf("seed public client: %w", err)
	}
	return s.GetClientByID(ctx, clientID)
}

func (s *clientService) GetClientsByUserID(ctx context.Context, userID uint) ([]models.OAuthClient, error) {
	var clients []models.OAuthClient
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (s *clientService) GetClientByID(ctx context.Context, id string) (*models.OAuthClient, error) {
	var client models.OAuthClient
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&client).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, clientID string, userID uint) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", clientID, userID).Delete(&models.OAuthClient{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
