package models

// Tag labels recipes. Names are unique per owning user.
type Tag struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"not null;size:255;uniqueIndex:idx_tags_user_name" json:"name"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_tags_user_name" json:"-"`
	User   User   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (t *Tag) GetID() uint { return t.ID }

func (t *Tag) GetName() string { return t.Name }

func (t *Tag) SetOwner(userID uint, name string) {
	t.UserID = userID
	t.Name = name
}

func (t *Tag) Rename(name string) { t.Name = name }
