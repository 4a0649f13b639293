package entities

import (
	"time"

	"github.com/google/uuid"
)

// RelationKind discriminates the two "user marked this recipe" relations
// that share one shape. Presentation labels live in the domain layer.
type RelationKind string

const (
	RelationFavorite RelationKind = "favorite"
	RelationCart     RelationKind = "cart"
)

type AuthorRecipe struct {
	ID        uuid.UUID    `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	AuthorID  uuid.UUID    `gorm:"uniqueIndex:idx_author_recipe_kind" json:"author_id"`
	RecipeID  uuid.UUID    `gorm:"uniqueIndex:idx_author_recipe_kind" json:"recipe_id"`
	Kind      RelationKind `gorm:"type:varchar(16);uniqueIndex:idx_author_recipe_kind" json:"kind"`
	CreatedAt time.Time    `gorm:"type:timestamp" json:"created_at"`

	Author *User   `gorm:"foreignKey:AuthorID"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
}
