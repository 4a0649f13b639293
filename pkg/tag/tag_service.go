package tag

import (
	"context"
	"errors"
	"foodgram-backend/domain"
	"foodgram-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	TagService interface {
		GetTags(ctx context.Context) ([]domain.Tag, error)
		GetTag(ctx context.Context, id string) (domain.Tag, error)
		CreateTag(ctx context.Context, req domain.TagRequest) (domain.Tag, error)
	}

	tagService struct {
		tagRepository TagRepository
	}
)

func NewTagService(tagRepository TagRepository) TagService {
	return &tagService{tagRepository: tagRepository}
}

func (s *tagService) GetTags(ctx context.Context) ([]domain.Tag, error) {
	tags, err := s.tagRepository.GetTags(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Tag, 0, len(tags))
	for _, t := range tags {
		result = append(result, toDomainTag(t))
	}
	return result, nil
}

func (s *tagService) GetTag(ctx context.Context, id string) (domain.Tag, error) {
	tag, err := s.tagRepository.GetTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Tag{}, domain.ErrTagNotFound
		}
		return domain.Tag{}, err
	}
	return toDomainTag(tag), nil
}

func (s *tagService) CreateTag(ctx context.Context, req domain.TagRequest) (domain.Tag, error) {
	tag := &entities.Tag{
		ID:   uuid.New(),
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := s.tagRepository.CreateTag(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Tag{}, domain.ErrTagConflict
		}
		return domain.Tag{}, err
	}

	return toDomainTag(tag), nil
}

func toDomainTag(t *entities.Tag) domain.Tag {
	return domain.Tag{
		ID:   t.ID.String(),
		Name: t.Name,
		Slug: t.Slug,
	}
}
