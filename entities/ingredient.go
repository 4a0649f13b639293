package entities

import (
	"github.com/google/uuid"
)

// Ingredient names are stored lowercase; the service normalizes before
// the (name, measurement_unit) uniqueness check fires.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name            string    `gorm:"index;uniqueIndex:idx_name_unit" json:"name"`
	MeasurementUnit string    `gorm:"uniqueIndex:idx_name_unit" json:"measurement_unit"`
}
