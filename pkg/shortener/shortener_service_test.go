package shortener

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"foodgram-backend/domain"
	"foodgram-backend/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubShortenerRepository struct {
	byToken map[string]*entities.ShortLink
	byURL   map[string]*entities.ShortLink
}

func newStubShortenerRepository() *stubShortenerRepository {
	return &stubShortenerRepository{
		byToken: make(map[string]*entities.ShortLink),
		byURL:   make(map[string]*entities.ShortLink),
	}
}

func (r *stubShortenerRepository) CreateLink(_ context.Context, link *entities.ShortLink) error {
	if _, ok := r.byToken[link.Token]; ok {
		return gorm.ErrDuplicatedKey
	}
	r.byToken[link.Token] = link
	if _, ok := r.byURL[link.OriginalURL]; !ok {
		r.byURL[link.OriginalURL] = link
	}
	return nil
}

func (r *stubShortenerRepository) GetLinkByToken(_ context.Context, token string) (*entities.ShortLink, error) {
	link, ok := r.byToken[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return link, nil
}

func (r *stubShortenerRepository) GetLinkByOriginalURL(_ context.Context, originalURL string) (*entities.ShortLink, error) {
	link, ok := r.byURL[originalURL]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return link, nil
}

func TestCreateOrGetLinkIdempotent(t *testing.T) {
	repo := newStubShortenerRepository()
	service := NewShortenerService(repo, NewTokenGenerator(6, 10, rand.NewSource(1)))

	first, err := service.CreateOrGetLink(context.Background(), "https://example.com/recipes/abc")
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := service.CreateOrGetLink(context.Background(), "https://example.com/recipes/abc")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, repo.byToken, 1)
}

func TestCreateOrGetLinkDistinctURLs(t *testing.T) {
	repo := newStubShortenerRepository()
	service := NewShortenerService(repo, NewTokenGenerator(6, 10, rand.NewSource(2)))

	first, err := service.CreateOrGetLink(context.Background(), "https://example.com/recipes/a")
	require.NoError(t, err)
	second, err := service.CreateOrGetLink(context.Background(), "https://example.com/recipes/b")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCreateOrGetLinkRejectsLongURL(t *testing.T) {
	repo := newStubShortenerRepository()
	service := NewShortenerService(repo, NewTokenGenerator(6, 10, rand.NewSource(3)))

	longURL := "https://example.com/" + strings.Repeat("x", domain.URLMaxLen)
	_, err := service.CreateOrGetLink(context.Background(), longURL)
	assert.ErrorIs(t, err, domain.ErrURLTooLong)
	assert.Empty(t, repo.byToken)
}

func TestCreateOrGetLinkRetriesOnCollision(t *testing.T) {
	repo := newStubShortenerRepository()
	// Same seed twice: the second service draws the exact tokens the
	// first one already stored, forcing collisions until a fresh draw.
	first := NewShortenerService(repo, NewTokenGenerator(6, 10, rand.NewSource(7)))
	second := NewShortenerService(repo, NewTokenGenerator(6, 10, rand.NewSource(7)))

	tokenA, err := first.CreateOrGetLink(context.Background(), "https://example.com/recipes/a")
	require.NoError(t, err)

	tokenB, err := second.CreateOrGetLink(context.Background(), "https://example.com/recipes/b")
	require.NoError(t, err)

	assert.NotEqual(t, tokenA, tokenB)
	assert.Len(t, repo.byToken, 2)
}

func TestResolveLink(t *testing.T) {
	repo := newStubShortenerRepository()
	service := NewShortenerService(repo, NewTokenGenerator(6, 10, rand.NewSource(4)))

	token, err := service.CreateOrGetLink(context.Background(), "https://example.com/recipes/abc")
	require.NoError(t, err)

	resolved, err := service.ResolveLink(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/recipes/abc", resolved)
}

func TestResolveLinkNotFound(t *testing.T) {
	repo := newStubShortenerRepository()
	service := NewShortenerService(repo, NewTokenGenerator(6, 10, rand.NewSource(5)))

	_, err := service.ResolveLink(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrLinkNotFound)
}
