package models

import (
	"time"
)

// OAuthToken records an issued access/refresh token pair
type OAuthToken struct {
	ID               uint    `gorm:"primaryKey"`
	ClientID         string  `gorm:"not null;index"`
	UserID           *string // Nullable for client credentials
	AccessToken      string  `gorm:"uniqueIndex;not null"`
	RefreshToken     *string `gorm:"index"`
	Scopes           string
	ExpiresAt        time.Time `gorm:"not null"`
	RefreshExpiresAt *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (OAuthToken) TableName() string {
	return "oauth_tokens"
}
