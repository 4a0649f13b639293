package shortener

import (
	"context"
	"errors"
	"foodgram-backend/entities"

	"gorm.io/gorm"
)

type (
	ShortenerRepository interface {
		CreateLink(ctx context.Context, link *entities.ShortLink) error
		GetLinkByToken(ctx context.Context, token string) (*entities.ShortLink, error)
		GetLinkByOriginalURL(ctx context.Context, originalURL string) (*entities.ShortLink, error)
	}

	shortenerRepository struct {
		db *gorm.DB
	}
)

func NewShortenerRepository(db *gorm.DB) ShortenerRepository {
	return &shortenerRepository{db: db}
}

func (r *shortenerRepository) CreateLink(ctx context.Context, link *entities.ShortLink) error {
	var existing entities.ShortLink
	err := r.db.WithContext(ctx).Where("token = ?", link.Token).First(&existing).Error
	if err == nil {
		return gorm.ErrDuplicatedKey
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.db.WithContext(ctx).Create(link).Error
}

func (r *shortenerRepository) GetLinkByToken(ctx context.Context, token string) (*entities.ShortLink, error) {
	var link entities.ShortLink
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *shortenerRepository) GetLinkByOriginalURL(ctx context.Context, originalURL string) (*entities.ShortLink, error) {
	var link entities.ShortLink
	if err := r.db.WithContext(ctx).
		Where("original_url = ?", originalURL).
		Order("created_at asc").
		First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}
