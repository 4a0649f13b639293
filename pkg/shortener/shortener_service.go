package shortener

import (
	"context"
	"errors"
	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// How many fresh tokens to draw before giving up on collisions.
const maxGenerateAttempts = 10

type (
	ShortenerService interface {
		CreateOrGetLink(ctx context.Context, originalURL string) (string, error)
		ResolveLink(ctx context.Context, token string) (string, error)
	}

	shortenerService struct {
		shortenerRepository ShortenerRepository
		generator           *TokenGenerator
	}
)

func NewShortenerService(shortenerRepository ShortenerRepository, generator *TokenGenerator) ShortenerService {
	return &shortenerService{
		shortenerRepository: shortenerRepository,
		generator:           generator,
	}
}

// CreateOrGetLink is idempotent per URL: an existing row wins over a new
// insert. original_url is not unique in storage, so two concurrent calls
// for a brand-new URL may still each insert a row; later calls settle on
// the oldest one.
func (s *shortenerService) CreateOrGetLink(ctx context.Context, originalURL string) (string, error) {
	if len(originalURL) > domain.URLMaxLen {
		return "", domain.ErrURLTooLong
	}

	existing, err := s.shortenerRepository.GetLinkByOriginalURL(ctx, originalURL)
	if err == nil {
		return existing.Token, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		link := &entities.ShortLink{
			ID:          uuid.New(),
			Token:       s.generator.Generate(),
			OriginalURL: originalURL,
			CreatedAt:   time.Now(),
		}

		err := s.shortenerRepository.CreateLink(ctx, link)
		if err == nil {
			return link.Token, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", err
		}
		// Token collision, draw again.
	}

	return "", errors.New("could not generate a unique token")
}

func (s *shortenerService) ResolveLink(ctx context.Context, token string) (string, error) {
	link, err := s.shortenerRepository.GetLinkByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrLinkNotFound
		}
		return "", err
	}
	return link.OriginalURL, nil
}
