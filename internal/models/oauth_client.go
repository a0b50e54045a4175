package models

import (
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// OAuthClient is an application allowed to request tokens from the token endpoint.
// It implements oauth2.ClientInfo and oauth2.ClientPasswordVerifier.
type OAuthClient struct {
	ID          string    `gorm:"primaryKey" json:"client_id"`
	Secret      string    `gorm:"not null;default:''" json:"-"` // bcrypt hash, empty for public clients
	Name        string    `json:"name"`
	Domain      string    `json:"domain"`
	Public      bool      `gorm:"not null;default:false" json:"public"`
	UserID      uint      `json:"user_id"`     // Owner, used as token subject for client_credentials
	Scopes      string    `json:"scopes"`      // Space-separated list of allowed scopes
	GrantTypes  string    `json:"grant_types"` // Space-separated list: "password client_credentials"
	RedirectURI string    `json:"redirect_uri"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (OAuthClient) TableName() string {
	return "oauth_clients"
}

func (c *OAuthClient) GetID() string { return c.ID }

func (c *OAuthClient) GetSecret() string { return c.Secret }

func (c *OAuthClient) GetDomain() string { return c.Domain }

func (c *OAuthClient) IsPublic() bool { return c.Public }

func (c *OAuthClient) GetUserID() string {
	if c.UserID == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(c.UserID), 10)
}

// VerifyPassword checks a presented client secret against the stored bcrypt hash.
// Public clients carry no secret and always verify.
func (c *OAuthClient) VerifyPassword(secret string) bool {
	if c.Public {
		return true
	}
	if c.Secret == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(c.Secret), []byte(secret)) == nil
}
