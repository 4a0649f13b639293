package entities

import (
	"time"

	"github.com/google/uuid"
)

// ShortLink rows are immutable once written. OriginalURL deliberately
// carries no uniqueness constraint; CreateOrGet resolves duplicates by
// lookup before insert.
type ShortLink struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Token       string    `gorm:"type:varchar(10);uniqueIndex" json:"token"`
	OriginalURL string    `gorm:"type:varchar(256)" json:"original_url"`
	CreatedAt   time.Time `gorm:"type:timestamp" json:"created_at"`
}
