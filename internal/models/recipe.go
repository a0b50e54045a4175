package models

import (
	"time"

	"github.com/franciscosanchezn/gin-recipe-api/internal/i18n"
	"github.com/shopspring/decimal"
)

// Recipe is the aggregate root of the catalog. Each localized field holds
// one value per locale; locales are independent of each other.
type Recipe struct {
	ID          uint                            `gorm:"primaryKey"`
	UserID      uint                            `gorm:"not null;index"`
	User        User                            `gorm:"constraint:OnDelete:CASCADE"`
	Title       i18n.Localized[string]          `gorm:"type:text"`
	Description i18n.Localized[string]          `gorm:"type:text"`
	TimeMinutes i18n.Localized[int]             `gorm:"type:text"`
	Price       i18n.Localized[decimal.Decimal] `gorm:"type:text"`
	Link        i18n.Localized[string]          `gorm:"type:text"`
	Image       *string                         `gorm:"size:255"`
	Tags        []Tag                           `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []Ingredient                    `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
