package recipe

import (
	"context"
	"testing"

	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/utils/storage"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func validRequest() domain.RecipeRequest {
	return domain.RecipeRequest{
		Name:        "Borscht",
		Text:        "Simmer everything.",
		Image:       "data:image/png;base64,aGVsbG8=",
		CookingTime: 45,
		Tags:        []string{uuid.NewString()},
		Ingredients: []domain.RecipeIngredientRequest{
			{ID: uuid.NewString(), Amount: 3},
		},
	}
}

func TestValidateDraft(t *testing.T) {
	dupTag := uuid.NewString()
	dupIngredient := uuid.NewString()

	tests := []struct {
		name         string
		mutate       func(*domain.RecipeRequest)
		requireImage bool
		wantErr      error
	}{
		{
			name:         "valid create",
			mutate:       func(r *domain.RecipeRequest) {},
			requireImage: true,
		},
		{
			name:         "missing image on create",
			mutate:       func(r *domain.RecipeRequest) { r.Image = "" },
			requireImage: true,
			wantErr:      domain.ErrMissingImage,
		},
		{
			name:         "missing image allowed on update",
			mutate:       func(r *domain.RecipeRequest) { r.Image = "" },
			requireImage: false,
		},
		{
			name:         "no tags",
			mutate:       func(r *domain.RecipeRequest) { r.Tags = nil },
			requireImage: true,
			wantErr:      domain.ErrNoTags,
		},
		{
			name: "duplicate tags",
			mutate: func(r *domain.RecipeRequest) {
				r.Tags = []string{dupTag, dupTag}
			},
			requireImage: true,
			wantErr:      domain.ErrDuplicateTags,
		},
		{
			name:         "no ingredients",
			mutate:       func(r *domain.RecipeRequest) { r.Ingredients = nil },
			requireImage: true,
			wantErr:      domain.ErrNoIngredients,
		},
		{
			name: "duplicate ingredients",
			mutate: func(r *domain.RecipeRequest) {
				r.Ingredients = []domain.RecipeIngredientRequest{
					{ID: dupIngredient, Amount: 1},
					{ID: dupIngredient, Amount: 2},
				}
			},
			requireImage: true,
			wantErr:      domain.ErrDuplicateIngredients,
		},
		{
			name: "amount below minimum",
			mutate: func(r *domain.RecipeRequest) {
				r.Ingredients[0].Amount = 0
			},
			requireImage: true,
			wantErr:      domain.ErrValueOutOfRange,
		},
		{
			name: "amount above maximum",
			mutate: func(r *domain.RecipeRequest) {
				r.Ingredients[0].Amount = domain.MaxValue + 1
			},
			requireImage: true,
			wantErr:      domain.ErrValueOutOfRange,
		},
		{
			name:         "cooking time below minimum",
			mutate:       func(r *domain.RecipeRequest) { r.CookingTime = 0 },
			requireImage: true,
			wantErr:      domain.ErrValueOutOfRange,
		},
		{
			name:         "cooking time above maximum",
			mutate:       func(r *domain.RecipeRequest) { r.CookingTime = domain.MaxValue + 1 },
			requireImage: true,
			wantErr:      domain.ErrValueOutOfRange,
		},
		{
			name:         "boundary values accepted",
			mutate:       func(r *domain.RecipeRequest) { r.CookingTime = domain.MaxValue },
			requireImage: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := validateDraft(req, tt.requireImage)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// Duplicate tags must win over duplicate ingredients when both are present,
// and an empty ingredient list must be reported before a bad amount.
func TestValidateDraftOrdering(t *testing.T) {
	req := validRequest()
	dup := uuid.NewString()
	req.Tags = []string{dup, dup}
	req.Ingredients = nil
	assert.ErrorIs(t, validateDraft(req, true), domain.ErrDuplicateTags)

	req = validRequest()
	req.Ingredients = []domain.RecipeIngredientRequest{
		{ID: dup, Amount: 0},
		{ID: dup, Amount: 0},
	}
	assert.ErrorIs(t, validateDraft(req, true), domain.ErrDuplicateIngredients)
}

// A zero amount or cooking time must get past the struct validator so the
// draft check can report the out-of-range reason instead of a generic
// required-field failure.
func TestZeroValuesReachRangeCheck(t *testing.T) {
	req := validRequest()
	req.CookingTime = 0
	req.Ingredients[0].Amount = 0

	require.NoError(t, validator.New().Struct(req))
	assert.ErrorIs(t, validateDraft(req, true), domain.ErrValueOutOfRange)
}

type stubRecipeRepository struct {
	recipes   map[string]*entities.Recipe
	relations map[string]struct{}
}

func newStubRecipeRepository() *stubRecipeRepository {
	return &stubRecipeRepository{
		recipes:   make(map[string]*entities.Recipe),
		relations: make(map[string]struct{}),
	}
}

func relationKey(authorID, recipeID string, kind entities.RelationKind) string {
	return authorID + "/" + recipeID + "/" + string(kind)
}

func (r *stubRecipeRepository) CreateRecipe(_ context.Context, recipe *entities.Recipe, _ []*entities.RecipeIngredient) error {
	r.recipes[recipe.ID.String()] = recipe
	return nil
}

func (r *stubRecipeRepository) UpdateRecipe(_ context.Context, recipe *entities.Recipe, _ []*entities.Tag, _ []*entities.RecipeIngredient) error {
	r.recipes[recipe.ID.String()] = recipe
	return nil
}

func (r *stubRecipeRepository) DeleteRecipe(_ context.Context, id string) error {
	delete(r.recipes, id)
	return nil
}

func (r *stubRecipeRepository) GetRecipeByID(_ context.Context, id string) (*entities.Recipe, error) {
	recipe, ok := r.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return recipe, nil
}

func (r *stubRecipeRepository) GetRecipes(_ context.Context, _, _ string, _, _ int) ([]*entities.Recipe, int64, error) {
	return nil, 0, nil
}

func (r *stubRecipeRepository) GetRecipeIngredients(_ context.Context, _ string) ([]*entities.RecipeIngredient, error) {
	return nil, nil
}

func (r *stubRecipeRepository) AddRelation(_ context.Context, authorID, recipeID string, kind entities.RelationKind) error {
	key := relationKey(authorID, recipeID, kind)
	if _, ok := r.relations[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	r.relations[key] = struct{}{}
	return nil
}

func (r *stubRecipeRepository) RemoveRelation(_ context.Context, authorID, recipeID string, kind entities.RelationKind) error {
	key := relationKey(authorID, recipeID, kind)
	if _, ok := r.relations[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.relations, key)
	return nil
}

func (r *stubRecipeRepository) HasRelation(_ context.Context, authorID, recipeID string, kind entities.RelationKind) (bool, error) {
	_, ok := r.relations[relationKey(authorID, recipeID, kind)]
	return ok, nil
}

func (r *stubRecipeRepository) GetShoppingIngredients(_ context.Context, _ string) ([]domain.ShoppingItem, error) {
	return nil, nil
}

func (r *stubRecipeRepository) GetCartRecipeNames(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func newRelationService(repo *stubRecipeRepository) RecipeService {
	return NewRecipeService(repo, nil, nil, nil, storage.AwsS3{}, nil)
}

func seedRecipe(repo *stubRecipeRepository) *entities.Recipe {
	recipe := &entities.Recipe{
		ID:                 uuid.New(),
		AuthorID:           uuid.New(),
		Name:               "Borscht",
		ImageURL:           "https://example.com/borscht.png",
		CookingTimeMinutes: 45,
	}
	repo.recipes[recipe.ID.String()] = recipe
	return recipe
}

func TestAddRelation(t *testing.T) {
	repo := newStubRecipeRepository()
	service := newRelationService(repo)
	recipe := seedRecipe(repo)
	userID := uuid.NewString()

	res, err := service.AddRelation(context.Background(), recipe.ID.String(), userID, entities.RelationFavorite)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID.String(), res.ID)
	assert.Equal(t, recipe.Name, res.Name)
	assert.Equal(t, recipe.CookingTimeMinutes, res.CookingTime)
}

func TestAddRelationTwice(t *testing.T) {
	repo := newStubRecipeRepository()
	service := newRelationService(repo)
	recipe := seedRecipe(repo)
	userID := uuid.NewString()

	_, err := service.AddRelation(context.Background(), recipe.ID.String(), userID, entities.RelationCart)
	require.NoError(t, err)

	_, err = service.AddRelation(context.Background(), recipe.ID.String(), userID, entities.RelationCart)
	assert.ErrorIs(t, err, domain.ErrAlreadyAdded)
}

// Favorite and cart are independent lists: adding to one does not block
// the other.
func TestAddRelationKindsIndependent(t *testing.T) {
	repo := newStubRecipeRepository()
	service := newRelationService(repo)
	recipe := seedRecipe(repo)
	userID := uuid.NewString()

	_, err := service.AddRelation(context.Background(), recipe.ID.String(), userID, entities.RelationFavorite)
	require.NoError(t, err)

	_, err = service.AddRelation(context.Background(), recipe.ID.String(), userID, entities.RelationCart)
	assert.NoError(t, err)
}

func TestAddRelationMissingRecipe(t *testing.T) {
	repo := newStubRecipeRepository()
	service := newRelationService(repo)

	_, err := service.AddRelation(context.Background(), uuid.NewString(), uuid.NewString(), entities.RelationFavorite)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestRemoveRelation(t *testing.T) {
	repo := newStubRecipeRepository()
	service := newRelationService(repo)
	recipe := seedRecipe(repo)
	userID := uuid.NewString()

	_, err := service.AddRelation(context.Background(), recipe.ID.String(), userID, entities.RelationFavorite)
	require.NoError(t, err)

	err = service.RemoveRelation(context.Background(), recipe.ID.String(), userID, entities.RelationFavorite)
	require.NoError(t, err)

	err = service.RemoveRelation(context.Background(), recipe.ID.String(), userID, entities.RelationFavorite)
	assert.ErrorIs(t, err, domain.ErrNotInList)
}

func TestDeleteRecipeOwnership(t *testing.T) {
	repo := newStubRecipeRepository()
	service := newRelationService(repo)
	recipe := seedRecipe(repo)

	err := service.DeleteRecipe(context.Background(), recipe.ID.String(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotRecipeOwner)

	err = service.DeleteRecipe(context.Background(), recipe.ID.String(), recipe.AuthorID.String())
	assert.NoError(t, err)

	err = service.DeleteRecipe(context.Background(), recipe.ID.String(), recipe.AuthorID.String())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}
