package domain

import (
	"errors"
	"time"
)

// Bounds shared by ingredient amounts and cooking time. The columns are
// small integers, so the cap stays within int16.
const (
	MinCookingTime = 1
	MinAmount      = 1
	MaxValue       = 32000
)

var (
	MessageSuccessGetRecipes    = "success get recipes"
	MessageSuccessGetRecipe     = "success get recipe detail"
	MessageSuccessCreateRecipe  = "recipe created successfully"
	MessageSuccessUpdateRecipe  = "recipe updated successfully"
	MessageSuccessDeleteRecipe  = "recipe deleted successfully"
	MessageSuccessAddRelation   = "recipe added to %s"
	MessageSuccessDelRelation   = "recipe removed from %s"
	MessageFailedGetRecipes     = "failed to get recipes"
	MessageFailedGetRecipe      = "failed to get recipe detail"
	MessageFailedCreateRecipe   = "failed to create recipe"
	MessageFailedUpdateRecipe   = "failed to update recipe"
	MessageFailedDeleteRecipe   = "failed to delete recipe"
	MessageFailedModifyRelation = "failed to modify %s"

	ErrRecipeNotFound       = errors.New("recipe not found")
	ErrNotRecipeOwner       = errors.New("recipe belongs to another user")
	ErrMissingImage         = errors.New("recipe image is required")
	ErrNoTags               = errors.New("select at least one tag")
	ErrDuplicateTags        = errors.New("tags must be unique")
	ErrNoIngredients        = errors.New("add at least one ingredient")
	ErrDuplicateIngredients = errors.New("ingredients must be unique")
	ErrValueOutOfRange      = errors.New("amount or cooking time out of range")
	ErrAlreadyAdded         = errors.New("recipe already added")
	ErrNotInList            = errors.New("recipe is not in the list")
)

type (
	// Amount and CookingTime carry no struct validation tag; the range
	// check reports ErrValueOutOfRange for zero and out-of-bound values.
	RecipeIngredientRequest struct {
		ID     string `json:"id" validate:"required,uuid"`
		Amount int    `json:"amount"`
	}

	RecipeRequest struct {
		Name        string                    `json:"name" validate:"required,max=256"`
		Text        string                    `json:"text" validate:"required"`
		Image       string                    `json:"image"`
		CookingTime int                       `json:"cooking_time"`
		Tags        []string                  `json:"tags" validate:"dive,uuid"`
		Ingredients []RecipeIngredientRequest `json:"ingredients" validate:"dive"`
	}

	RecipeIngredient struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	Recipe struct {
		ID                string             `json:"id"`
		Author            UserResponse       `json:"author"`
		Name              string             `json:"name"`
		Text              string             `json:"text"`
		ImageURL          string             `json:"image,omitempty"`
		CookingTime       int                `json:"cooking_time"`
		Tags              []Tag              `json:"tags"`
		Ingredients       []RecipeIngredient `json:"ingredients"`
		IsFavorited       bool               `json:"is_favorited"`
		IsInShoppingCart  bool               `json:"is_in_shopping_cart"`
		CreatedAt         time.Time          `json:"created_at"`
	}

	ShortRecipe struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		ImageURL    string `json:"image,omitempty"`
		CookingTime int    `json:"cooking_time"`
	}

	RecipeListResponse struct {
		Recipes []Recipe `json:"recipes"`
		Total   int64    `json:"total"`
	}
)
