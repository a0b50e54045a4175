package models

// Ingredient is a named recipe component. Names are unique per owning user.
type Ingredient struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"not null;size:255;uniqueIndex:idx_ingredients_user_name" json:"name"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_ingredients_user_name" json:"-"`
	User   User   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (i *Ingredient) GetID() uint { return i.ID }

func (i *Ingredient) GetName() string { return i.Name }

func (i *Ingredient) SetOwner(userID uint, name string) {
	i.UserID = userID
	i.Name = name
}

func (i *Ingredient) Rename(name string) { i.Name = name }
