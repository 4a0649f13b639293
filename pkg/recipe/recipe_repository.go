package recipe

import (
	"context"
	"errors"
	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.RecipeIngredient) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, tags []*entities.Tag, ingredients []*entities.RecipeIngredient) error
		DeleteRecipe(ctx context.Context, id string) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, tagSlug, authorID string, page, limit int) ([]*entities.Recipe, int64, error)
		GetRecipeIngredients(ctx context.Context, recipeID string) ([]*entities.RecipeIngredient, error)

		AddRelation(ctx context.Context, authorID, recipeID string, kind entities.RelationKind) error
		RemoveRelation(ctx context.Context, authorID, recipeID string, kind entities.RelationKind) error
		HasRelation(ctx context.Context, authorID, recipeID string, kind entities.RelationKind) (bool, error)

		GetShoppingIngredients(ctx context.Context, authorID string) ([]domain.ShoppingItem, error)
		GetCartRecipeNames(ctx context.Context, authorID string) ([]string, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// CreateRecipe persists the recipe row, its tag links and its ingredient
// rows as one transaction. Partial writes are never observable.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags := recipe.Tags
		recipe.Tags = nil

		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Append(tags); err != nil {
			return err
		}
		if err := tx.Create(&ingredients).Error; err != nil {
			return err
		}

		recipe.Tags = tags
		return nil
	})
}

// UpdateRecipe replaces the full tag and ingredient sets
// (clear-then-repopulate) and updates the scalar fields, all in one
// transaction. There is no incremental association update.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, tags []*entities.Tag, ingredients []*entities.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).
			Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}

		if err := tx.Model(recipe).Association("Tags").Append(tags); err != nil {
			return err
		}
		if err := tx.Create(&ingredients).Error; err != nil {
			return err
		}

		return tx.Model(&entities.Recipe{}).
			Where("id = ?", recipe.ID).
			Updates(map[string]interface{}{
				"name":                 recipe.Name,
				"text":                 recipe.Text,
				"image_url":            recipe.ImageURL,
				"cooking_time_minutes": recipe.CookingTimeMinutes,
				"updated_at":           time.Now(),
			}).Error
	})
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe := entities.Recipe{}
		if err := tx.Where("id = ?", id).First(&recipe).Error; err != nil {
			return err
		}

		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).
			Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).
			Delete(&entities.AuthorRecipe{}).Error; err != nil {
			return err
		}

		return tx.Delete(&recipe).Error
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, tagSlug, authorID string, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.Recipe{})
	if tagSlug != "" {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug = ?", tagSlug)
	}
	if authorID != "" {
		query = query.Where("recipes.author_id = ?", authorID)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Author").
		Preload("Tags").
		Offset(offset).
		Limit(limit).
		Order("recipes.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) GetRecipeIngredients(ctx context.Context, recipeID string) ([]*entities.RecipeIngredient, error) {
	var rows []*entities.RecipeIngredient
	if err := r.db.WithContext(ctx).
		Preload("Ingredient").
		Where("recipe_id = ?", recipeID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *recipeRepository) AddRelation(ctx context.Context, authorID, recipeID string, kind entities.RelationKind) error {
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return err
	}
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return err
	}

	var existing entities.AuthorRecipe
	if err := r.db.WithContext(ctx).
		Where("author_id = ? AND recipe_id = ? AND kind = ?", authorUUID, recipeUUID, kind).
		First(&existing).Error; err == nil {
		return gorm.ErrDuplicatedKey
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	relation := entities.AuthorRecipe{
		ID:        uuid.New(),
		AuthorID:  authorUUID,
		RecipeID:  recipeUUID,
		Kind:      kind,
		CreatedAt: time.Now(),
	}

	return r.db.WithContext(ctx).Create(&relation).Error
}

func (r *recipeRepository) RemoveRelation(ctx context.Context, authorID, recipeID string, kind entities.RelationKind) error {
	result := r.db.WithContext(ctx).
		Where("author_id = ? AND recipe_id = ? AND kind = ?", authorID, recipeID, kind).
		Delete(&entities.AuthorRecipe{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *recipeRepository) HasRelation(ctx context.Context, authorID, recipeID string, kind entities.RelationKind) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.AuthorRecipe{}).
		Where("author_id = ? AND recipe_id = ? AND kind = ?", authorID, recipeID, kind).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetShoppingIngredients sums amounts per (name, unit) across every
// recipe in the author's cart, ordered by ingredient name. A snapshot
// read, nothing is locked or mutated.
func (r *recipeRepository) GetShoppingIngredients(ctx context.Context, authorID string) ([]domain.ShoppingItem, error) {
	items := make([]domain.ShoppingItem, 0)

	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN author_recipes ON author_recipes.recipe_id = recipe_ingredients.recipe_id").
		Where("author_recipes.author_id = ? AND author_recipes.kind = ?", authorID, entities.RelationCart).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name asc").
		Scan(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (r *recipeRepository) GetCartRecipeNames(ctx context.Context, authorID string) ([]string, error) {
	names := make([]string, 0)

	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Joins("JOIN author_recipes ON author_recipes.recipe_id = recipes.id").
		Where("author_recipes.author_id = ? AND author_recipes.kind = ?", authorID, entities.RelationCart).
		Order("recipes.name asc").
		Pluck("recipes.name", &names).Error; err != nil {
		return nil, err
	}

	return names, nil
}
