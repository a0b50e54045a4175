package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/franciscosanchezn/gin-recipe-api/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxNameLength = 255

// attribute is satisfied by pointers to the per-user named entities (tags, ingredients)
type attribute[T any] interface {
	*T
	GetID() uint
	GetName() string
	SetOwner(userID uint, name string)
	Rename(name string)
}

// AttributeService manages per-user named entities that recipes reference
type AttributeService[T any] interface {
	// List returns the user's entries ordered by name descending.
	// When assignedOnly is set only entries attached to at least one recipe are returned.
	List(ctx context.Context, userID uint, assignedOnly bool) ([]T, error)
	Get(ctx context.Context, userID, id uint) (*T, error)
	Update(ctx context.Context, userID, id uint, name string) (*T, error)
	// Delete detaches the entry from every recipe and removes it
	Delete(ctx context.Context, userID, id uint) error
	// GetOrCreate resolves names to the user's entries, inserting the missing ones.
	// Duplicated names collapse to a single entry; the result follows first-seen order.
	GetOrCreate(ctx context.Context, userID uint, names []string) ([]T, error)
	// WithTx returns a copy of the service bound to the given transaction
	WithTx(tx *gorm.DB) AttributeService[T]
}

type attributeService[T any, PT attribute[T]] struct {
	db         *gorm.DB
	field      string
	joinTable  string
	joinColumn string
}

// NewTagService returns the tag registry
func NewTagService(db *gorm.DB) AttributeService[models.Tag] {
	return &attributeService[models.Tag, *models.Tag]{
		db:         db,
		field:      "tags",
		joinTable:  "recipe_tags",
		joinColumn: "tag_id",
	}
}

// NewIngredientService returns the ingredient registry
func NewIngredientService(db *gorm.DB) AttributeService[models.Ingredient] {
	return &attributeService[models.Ingredient, *models.Ingredient]{
		db:         db,
		field:      "ingredients",
		joinTable:  "recipe_ingredients",
		joinColumn: "ingredient_id",
	}
}

func (s *attributeService[T, PT]) WithTx(tx *gorm.DB) AttributeService[T] {
	clone := *s
	clone.db = tx
	return &clone
}

func (s *attributeService[T, PT]) List(ctx context.Context, userID uint, assignedOnly bool) ([]T, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if assignedOnly {
		query = query.Where(fmt.Sprintf("id IN (SELECT %s FROM %s)", s.joinColumn, s.joinTable))
	}

	var items []T
	if err := query.Order("name DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", s.field, err)
	}
	return items, nil
}

func (s *attributeService[T, PT]) Get(ctx context.Context, userID, id uint) (*T, error) {
	var item T
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&item).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &item, nil
}

func (s *attributeService[T, PT]) Update(ctx context.Context, userID, id uint, name string) (*T, error) {
	name, err := s.cleanName(name)
	if err != nil {
		return nil, err
	}

	item, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	PT(item).Rename(name)
	err = s.db.WithContext(ctx).Model(PT(item)).Update("name", PT(item).GetName()).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, &ConflictError{Field: "name", Message: fmt.Sprintf("%q already exists.", name)}
	}
	if err != nil {
		return nil, fmt.Errorf("rename %s: %w", s.field, err)
	}
	return item, nil
}

func (s *attributeService[T, PT]) Delete(ctx context.Context, userID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item T
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&item).Error; err != nil {
			return translateNotFound(err)
		}

		unlink := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", s.joinTable, s.joinColumn)
		if err := tx.Exec(unlink, id).Error; err != nil {
			return fmt.Errorf("detach %s: %w", s.field, err)
		}
		if err := tx.Delete(PT(&item)).Error; err != nil {
			return fmt.Errorf("delete %s: %w", s.field, err)
		}
		return nil
	})
}

func (s *attributeService[T, PT]) GetOrCreate(ctx context.Context, userID uint, names []string) ([]T, error) {
	ordered := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, raw := range names {
		name, err := s.cleanName(raw)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		ordered = append(ordered, name)
	}

	db := s.db.WithContext(ctx)
	items := make([]T, 0, len(ordered))
	for _, name := range ordered {
		item, err := s.lookup(db, userID, name)
		if err != nil {
			return nil, err
		}
		if item != nil {
			items = append(items, *item)
			continue
		}

		var created T
		PT(&created).SetOwner(userID, name)
		result := db.Clauses(clause.OnConflict{DoNothing: true}).
			Omit(clause.Associations).
			Create(PT(&created))
		if result.Error != nil {
			return nil, fmt.Errorf("create %s %q: %w", s.field, name, result.Error)
		}

		if result.RowsAffected == 0 {
			// a concurrent writer inserted the same name first
			item, err = s.lookup(db, userID, name)
			if err != nil {
				return nil, err
			}
			if item == nil {
				return nil, fmt.Errorf("create %s %q: row vanished after conflict", s.field, name)
			}
			items = append(items, *item)
			continue
		}

		log.WithFields(logrus.Fields{"user_id": userID, "kind": s.field, "name": name}).Debug("Created entry")
		items = append(items, created)
	}
	return items, nil
}

func (s *attributeService[T, PT]) lookup(db *gorm.DB, userID uint, name string) (*T, error) {
	var item T
	result := db.Where("user_id = ? AND name = ?", userID, name).Limit(1).Find(&item)
	if result.Error != nil {
		return nil, fmt.Errorf("lookup %s %q: %w", s.field, name, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &item, nil
}

func (s *attributeService[T, PT]) cleanName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", newValidationError(s.field, "This field may not be blank.")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", newValidationError(s.field, fmt.Sprintf("Ensure this field has no more than %d characters.", maxNameLength))
	}
	return name, nil
}
