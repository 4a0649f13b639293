package recipe

import (
	"context"
	"errors"
	"fmt"
	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/utils"
	"foodgram-backend/internal/utils/mailing"
	"foodgram-backend/internal/utils/storage"
	"foodgram-backend/pkg/ingredient"
	"foodgram-backend/pkg/pdf"
	"foodgram-backend/pkg/tag"
	"foodgram-backend/pkg/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const shoppingListFilename = "foodgram_shopping_list.pdf"

type (
	RecipeService interface {
		GetRecipes(ctx context.Context, page, limit int, tagSlug, authorID, userID string) (domain.RecipeListResponse, error)
		GetRecipeDetail(ctx context.Context, recipeID, userID string) (domain.Recipe, error)
		CreateRecipe(ctx context.Context, req domain.RecipeRequest, userID string) (domain.Recipe, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.RecipeRequest, userID string) (domain.Recipe, error)
		DeleteRecipe(ctx context.Context, recipeID, userID string) error

		AddRelation(ctx context.Context, recipeID, userID string, kind entities.RelationKind) (domain.ShortRecipe, error)
		RemoveRelation(ctx context.Context, recipeID, userID string, kind entities.RelationKind) error

		GetShoppingList(ctx context.Context, userID string) ([]domain.ShoppingItem, error)
		BuildShoppingDocument(ctx context.Context, userID string) ([]byte, error)
		EmailShoppingList(ctx context.Context, userID string) error
	}

	recipeService struct {
		recipeRepository     RecipeRepository
		tagRepository        tag.TagRepository
		ingredientRepository ingredient.IngredientRepository
		userRepository       user.UserRepository
		s3                   storage.AwsS3
		renderer             pdf.Renderer
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	tagRepository tag.TagRepository,
	ingredientRepository ingredient.IngredientRepository,
	userRepository user.UserRepository,
	s3 storage.AwsS3,
	renderer pdf.Renderer,
) RecipeService {
	return &recipeService{
		recipeRepository:     recipeRepository,
		tagRepository:        tagRepository,
		ingredientRepository: ingredientRepository,
		userRepository:       userRepository,
		s3:                   s3,
		renderer:             renderer,
	}
}

// validateDraft runs the draft checks in a fixed order, each with its own
// error. Everything is validated before a single row is written.
func validateDraft(req domain.RecipeRequest, requireImage bool) error {
	if requireImage && req.Image == "" {
		return domain.ErrMissingImage
	}

	if len(req.Tags) == 0 {
		return domain.ErrNoTags
	}
	seenTags := make(map[string]struct{}, len(req.Tags))
	for _, id := range req.Tags {
		if _, ok := seenTags[id]; ok {
			return domain.ErrDuplicateTags
		}
		seenTags[id] = struct{}{}
	}

	if len(req.Ingredients) == 0 {
		return domain.ErrNoIngredients
	}
	seenIngredients := make(map[string]struct{}, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		if _, ok := seenIngredients[ing.ID]; ok {
			return domain.ErrDuplicateIngredients
		}
		seenIngredients[ing.ID] = struct{}{}
	}

	for _, ing := range req.Ingredients {
		if ing.Amount < domain.MinAmount || ing.Amount > domain.MaxValue {
			return domain.ErrValueOutOfRange
		}
	}
	if req.CookingTime < domain.MinCookingTime || req.CookingTime > domain.MaxValue {
		return domain.ErrValueOutOfRange
	}

	return nil
}

func (s *recipeService) resolveTags(ctx context.Context, ids []string) ([]*entities.Tag, error) {
	tagIDs := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, domain.ErrTagNotFound
		}
		tagIDs = append(tagIDs, parsed)
	}

	tags, err := s.tagRepository.GetTagsByIDs(ctx, tagIDs)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, domain.ErrTagNotFound
	}
	return tags, nil
}

func (s *recipeService) resolveIngredients(ctx context.Context, recipeID uuid.UUID, reqs []domain.RecipeIngredientRequest) ([]*entities.RecipeIngredient, error) {
	ingredientIDs := make([]uuid.UUID, 0, len(reqs))
	for _, req := range reqs {
		parsed, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, domain.ErrIngredientNotFound
		}
		ingredientIDs = append(ingredientIDs, parsed)
	}

	stored, err := s.ingredientRepository.GetIngredientsByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, err
	}
	if len(stored) != len(ingredientIDs) {
		return nil, domain.ErrIngredientNotFound
	}

	rows := make([]*entities.RecipeIngredient, 0, len(reqs))
	for i, req := range reqs {
		rows = append(rows, &entities.RecipeIngredient{
			ID:           uuid.New(),
			RecipeID:     recipeID,
			IngredientID: ingredientIDs[i],
			Amount:       req.Amount,
		})
	}
	return rows, nil
}

func (s *recipeService) uploadImage(recipeID uuid.UUID, payload string) (string, error) {
	data, contentType, err := utils.DecodeBase64Image(payload)
	if err != nil {
		return "", domain.ErrMissingImage
	}

	objectKey, err := s.s3.UploadBytes(
		fmt.Sprintf("recipe-%s", recipeID.String()),
		data,
		contentType,
		"recipes",
		storage.AllowImage...,
	)
	if err != nil {
		return "", err
	}
	return s.s3.GetPublicLinkKey(objectKey), nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.RecipeRequest, userID string) (domain.Recipe, error) {
	if err := validateDraft(req, true); err != nil {
		return domain.Recipe{}, err
	}

	authorUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Recipe{}, domain.ErrParseUUID
	}

	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return domain.Recipe{}, err
	}

	recipeID := uuid.New()
	ingredients, err := s.resolveIngredients(ctx, recipeID, req.Ingredients)
	if err != nil {
		return domain.Recipe{}, err
	}

	imageURL, err := s.uploadImage(recipeID, req.Image)
	if err != nil {
		return domain.Recipe{}, err
	}

	recipe := &entities.Recipe{
		ID:                 recipeID,
		AuthorID:           authorUUID,
		Name:               req.Name,
		Text:               req.Text,
		ImageURL:           imageURL,
		CookingTimeMinutes: req.CookingTime,
		Tags:               tags,
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, ingredients); err != nil {
		return domain.Recipe{}, err
	}

	return s.GetRecipeDetail(ctx, recipeID.String(), userID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.RecipeRequest, userID string) (domain.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Recipe{}, domain.ErrRecipeNotFound
		}
		return domain.Recipe{}, err
	}

	if recipe.AuthorID.String() != userID {
		return domain.Recipe{}, domain.ErrNotRecipeOwner
	}

	// The stored image survives an update that does not resend one.
	if err := validateDraft(req, false); err != nil {
		return domain.Recipe{}, err
	}

	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return domain.Recipe{}, err
	}

	ingredients, err := s.resolveIngredients(ctx, recipe.ID, req.Ingredients)
	if err != nil {
		return domain.Recipe{}, err
	}

	imageURL := recipe.ImageURL
	if req.Image != "" {
		imageURL, err = s.uploadImage(recipe.ID, req.Image)
		if err != nil {
			return domain.Recipe{}, err
		}
	}

	updated := &entities.Recipe{
		ID:                 recipe.ID,
		AuthorID:           recipe.AuthorID,
		Name:               req.Name,
		Text:               req.Text,
		ImageURL:           imageURL,
		CookingTimeMinutes: req.CookingTime,
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, updated, tags, ingredients); err != nil {
		return domain.Recipe{}, err
	}

	return s.GetRecipeDetail(ctx, recipeID, userID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID, userID string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if recipe.AuthorID.String() != userID {
		return domain.ErrNotRecipeOwner
	}

	return s.recipeRepository.DeleteRecipe(ctx, recipeID)
}

func (s *recipeService) GetRecipes(ctx context.Context, page, limit int, tagSlug, authorID, userID string) (domain.RecipeListResponse, error) {
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, tagSlug, authorID, page, limit)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	result := make([]domain.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		res, err := s.toDomainRecipe(ctx, recipe, userID)
		if err != nil {
			return domain.RecipeListResponse{}, err
		}
		result = append(result, res)
	}

	return domain.RecipeListResponse{Recipes: result, Total: count}, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID, userID string) (domain.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Recipe{}, domain.ErrRecipeNotFound
		}
		return domain.Recipe{}, err
	}

	return s.toDomainRecipe(ctx, recipe, userID)
}

func (s *recipeService) AddRelation(ctx context.Context, recipeID, userID string, kind entities.RelationKind) (domain.ShortRecipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ShortRecipe{}, domain.ErrRecipeNotFound
		}
		return domain.ShortRecipe{}, err
	}

	if err := s.recipeRepository.AddRelation(ctx, userID, recipeID, kind); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ShortRecipe{}, domain.ErrAlreadyAdded
		}
		return domain.ShortRecipe{}, err
	}

	return domain.ShortRecipe{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		ImageURL:    recipe.ImageURL,
		CookingTime: recipe.CookingTimeMinutes,
	}, nil
}

func (s *recipeService) RemoveRelation(ctx context.Context, recipeID, userID string, kind entities.RelationKind) error {
	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if err := s.recipeRepository.RemoveRelation(ctx, userID, recipeID, kind); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotInList
		}
		return err
	}
	return nil
}

// GetShoppingList aggregates the caller's cart. An empty cart is an empty
// list, not an error.
func (s *recipeService) GetShoppingList(ctx context.Context, userID string) ([]domain.ShoppingItem, error) {
	return s.recipeRepository.GetShoppingIngredients(ctx, userID)
}

func (s *recipeService) BuildShoppingDocument(ctx context.Context, userID string) ([]byte, error) {
	items, err := s.recipeRepository.GetShoppingIngredients(ctx, userID)
	if err != nil {
		return nil, err
	}

	names, err := s.recipeRepository.GetCartRecipeNames(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.renderer.RenderShoppingList(items, names)
}

func (s *recipeService) EmailShoppingList(ctx context.Context, userID string) error {
	account, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	document, err := s.BuildShoppingDocument(ctx, userID)
	if err != nil {
		return err
	}

	return mailing.SendMailWithAttachment(
		account.Email,
		"Your shopping list",
		"<p>The shopping list for the recipes in your cart is attached.</p>",
		shoppingListFilename,
		document,
	)
}

func (s *recipeService) toDomainRecipe(ctx context.Context, recipe *entities.Recipe, userID string) (domain.Recipe, error) {
	rows, err := s.recipeRepository.GetRecipeIngredients(ctx, recipe.ID.String())
	if err != nil {
		return domain.Recipe{}, err
	}

	ingredients := make([]domain.RecipeIngredient, 0, len(rows))
	for _, row := range rows {
		item := domain.RecipeIngredient{
			ID:     row.IngredientID.String(),
			Amount: row.Amount,
		}
		if row.Ingredient != nil {
			item.Name = row.Ingredient.Name
			item.MeasurementUnit = row.Ingredient.MeasurementUnit
		}
		ingredients = append(ingredients, item)
	}

	tags := make([]domain.Tag, 0, len(recipe.Tags))
	for _, t := range recipe.Tags {
		tags = append(tags, domain.Tag{ID: t.ID.String(), Name: t.Name, Slug: t.Slug})
	}

	isFavorited := false
	isInCart := false
	isSubscribed := false
	if userID != "" {
		if isFavorited, err = s.recipeRepository.HasRelation(ctx, userID, recipe.ID.String(), entities.RelationFavorite); err != nil {
			return domain.Recipe{}, err
		}
		if isInCart, err = s.recipeRepository.HasRelation(ctx, userID, recipe.ID.String(), entities.RelationCart); err != nil {
			return domain.Recipe{}, err
		}
		if userID != recipe.AuthorID.String() {
			if isSubscribed, err = s.userRepository.IsSubscribed(ctx, userID, recipe.AuthorID.String()); err != nil {
				return domain.Recipe{}, err
			}
		}
	}

	author := domain.UserResponse{
		ID:           recipe.AuthorID.String(),
		IsSubscribed: isSubscribed,
	}
	if recipe.Author != nil {
		author.Email = recipe.Author.Email
		author.Username = recipe.Author.Username
		author.FirstName = recipe.Author.FirstName
		author.LastName = recipe.Author.LastName
		author.AvatarURL = recipe.Author.AvatarURL
	}

	return domain.Recipe{
		ID:               recipe.ID.String(),
		Author:           author,
		Name:             recipe.Name,
		Text:             recipe.Text,
		ImageURL:         recipe.ImageURL,
		CookingTime:      recipe.CookingTimeMinutes,
		Tags:             tags,
		Ingredients:      ingredients,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
		CreatedAt:        recipe.CreatedAt,
	}, nil
}
