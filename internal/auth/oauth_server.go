package auth

import (
	"context"
	"strings"
	"time"

	"github.com/franciscosanchezn/gin-recipe-api/internal/services"
	"github.com/go-oauth2/oauth2/v4"
	"github.com/go-oauth2/oauth2/v4/errors"
	"github.com/go-oauth2/oauth2/v4/manage"
	"github.com/go-oauth2/oauth2/v4/server"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
}

// Token lifetimes for the password grant; client_credentials uses the manager defaults
const (
	AccessTokenTTL  = 2 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

type OAuthService struct {
	server  *server.Server
	db      *gorm.DB
	users   services.UserService
	clients *GormClientStore
	tokens  *GormTokenStore
}

func NewOAuthService(db *gorm.DB, jwtSecret string, users services.UserService) *OAuthService {
	manager := manage.NewDefaultManager()
	manager.SetPasswordTokenCfg(&manage.Config{
		AccessTokenExp:    AccessTokenTTL,
		RefreshTokenExp:   RefreshTokenTTL,
		IsGenerateRefresh: true,
	})
	manager.SetRefreshTokenCfg(&manage.RefreshingConfig{
		IsGenerateRefresh:  true,
		IsRemoveAccess:     true,
		IsRemoveRefreshing: true,
	})

	// Access tokens are JWTs carrying uid and role claims
	manager.MapAccessGenerate(NewCustomJWTAccessGenerate([]byte(jwtSecret), jwt.SigningMethodHS512, db))

	tokenStore := NewGormTokenStore(db)
	manager.MustTokenStorage(tokenStore, nil)

	clientStore := NewGormClientStore(db)
	manager.MapClientStorage(clientStore)

	srv := server.NewServer(&server.Config{
		TokenType: "Bearer",
		AllowedGrantTypes: []oauth2.GrantType{
			oauth2.PasswordCredentials,
			oauth2.ClientCredentials,
			oauth2.Refreshing,
		},
	}, manager)
	srv.SetClientInfoHandler(server.ClientFormHandler)

	o := &OAuthService{
		server:  srv,
		db:      db,
		users:   users,
		clients: clientStore,
		tokens:  tokenStore,
	}
	srv.SetPasswordAuthorizationHandler(o.authorizePassword)
	srv.SetClientAuthorizedHandler(o.authorizeClientGrant)
	srv.SetInternalErrorHandler(func(err error) *errors.Response {
		log.WithError(err).Error("OAuth2 internal error")
		return nil
	})
	return o
}

func (o *OAuthService) GetServer() *server.Server {
	return o.server
}

// authorizePassword resolves the resource owner of a password grant.
// Unknown emails, wrong passwords and inactive accounts all yield an empty user id,
// which the server reports as invalid_grant.
func (o *OAuthService) authorizePassword(ctx context.Context, clientID, username, password string) (string, error) {
	user, err := o.users.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	if user == nil {
		log.WithField("client_id", clientID).Info("Rejected password grant")
		return "", nil
	}
	return formatUserID(user.ID), nil
}

// authorizeClientGrant restricts each client to the grant types it was registered with
func (o *OAuthService) authorizeClientGrant(clientID string, grant oauth2.GrantType) (bool, error) {
	client, err := o.clients.find(context.Background(), clientID)
	if err != nil {
		return false, errors.ErrInvalidClient
	}
	for _, allowed := range strings.Fields(client.GrantTypes) {
		if allowed == grant.String() {
			return true, nil
		}
	}
	return false, nil
}

// PurgeExpiredTokens deletes stored tokens that can no longer be used or refreshed
func (o *OAuthService) PurgeExpiredTokens(ctx context.Context) error {
	removed, err := o.tokens.PurgeExpired(ctx, time.Now())
	if err != nil {
		return err
	}
	if removed > 0 {
		log.WithField("removed", removed).Info("Purged expired tokens")
	}
	return nil
}
