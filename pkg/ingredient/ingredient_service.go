package ingredient

import (
	"context"
	"errors"
	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	IngredientService interface {
		GetIngredients(ctx context.Context, name string) ([]domain.Ingredient, error)
		GetIngredient(ctx context.Context, id string) (domain.Ingredient, error)
		CreateIngredient(ctx context.Context, req domain.IngredientRequest) (domain.Ingredient, error)
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
	}
)

func NewIngredientService(ingredientRepository IngredientRepository) IngredientService {
	return &ingredientService{ingredientRepository: ingredientRepository}
}

func (s *ingredientService) GetIngredients(ctx context.Context, name string) ([]domain.Ingredient, error) {
	// Names are stored lowercase, so the filter is folded the same way.
	ingredients, err := s.ingredientRepository.GetIngredients(ctx, strings.ToLower(name))
	if err != nil {
		return nil, err
	}

	result := make([]domain.Ingredient, 0, len(ingredients))
	for _, i := range ingredients {
		result = append(result, toDomainIngredient(i))
	}
	return result, nil
}

func (s *ingredientService) GetIngredient(ctx context.Context, id string) (domain.Ingredient, error) {
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Ingredient{}, domain.ErrIngredientNotFound
		}
		return domain.Ingredient{}, err
	}
	return toDomainIngredient(ingredient), nil
}

func (s *ingredientService) CreateIngredient(ctx context.Context, req domain.IngredientRequest) (domain.Ingredient, error) {
	// Explicit normalization step: lowercase before uniqueness comparison
	// and storage.
	ingredient := &entities.Ingredient{
		ID:              uuid.New(),
		Name:            strings.ToLower(req.Name),
		MeasurementUnit: req.MeasurementUnit,
	}

	if err := s.ingredientRepository.CreateIngredient(ctx, ingredient); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Ingredient{}, domain.ErrIngredientConflict
		}
		return domain.Ingredient{}, err
	}

	return toDomainIngredient(ingredient), nil
}

func toDomainIngredient(i *entities.Ingredient) domain.Ingredient {
	return domain.Ingredient{
		ID:              i.ID.String(),
		Name:            i.Name,
		MeasurementUnit: i.MeasurementUnit,
	}
}
