package entities

import (
	"github.com/google/uuid"
)

type Recipe struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	AuthorID           uuid.UUID `json:"author_id"`
	Name               string    `json:"name"`
	Text               string    `gorm:"type:text" json:"text"`
	ImageURL           string    `json:"image_url,omitempty"`
	CookingTimeMinutes int       `json:"cooking_time"`

	Author *User  `gorm:"foreignKey:AuthorID"`
	Tags   []*Tag `gorm:"many2many:recipe_tags"`

	Timestamp
}

type RecipeIngredient struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID     uuid.UUID `gorm:"uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uuid.UUID `gorm:"uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Amount       int       `json:"amount"`

	Recipe     *Recipe     `gorm:"foreignKey:RecipeID"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}
