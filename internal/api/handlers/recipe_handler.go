package handlers

import (
	"fmt"
	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/api/presenters"
	"foodgram-backend/pkg/recipe"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		GetRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error

		AddFavorite(c *fiber.Ctx) error
		RemoveFavorite(c *fiber.Ctx) error
		AddToCart(c *fiber.Ctx) error
		RemoveFromCart(c *fiber.Ctx) error

		DownloadShoppingList(c *fiber.Ctx) error
		EmailShoppingList(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	res, err := h.recipeService.GetRecipes(c.Context(), page, limit, c.Query("tag", ""), c.Query("author", ""), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recipeService.GetRecipeDetail(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipe)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.RecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedCreateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.RecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	res, err := h.recipeService.UpdateRecipe(c.Context(), c.Params("id"), *req, userID)
	if err != nil {
		status := statusForError(err)
		if err == domain.ErrNotRecipeOwner {
			status = fiber.StatusForbidden
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedUpdateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.recipeService.DeleteRecipe(c.Context(), c.Params("id"), userID); err != nil {
		status := statusForError(err)
		if err == domain.ErrNotRecipeOwner {
			status = fiber.StatusForbidden
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

func (h *recipeHandler) AddFavorite(c *fiber.Ctx) error {
	return h.addRelation(c, entities.RelationFavorite, "favorites")
}

func (h *recipeHandler) RemoveFavorite(c *fiber.Ctx) error {
	return h.removeRelation(c, entities.RelationFavorite, "favorites")
}

func (h *recipeHandler) AddToCart(c *fiber.Ctx) error {
	return h.addRelation(c, entities.RelationCart, "shopping cart")
}

func (h *recipeHandler) RemoveFromCart(c *fiber.Ctx) error {
	return h.removeRelation(c, entities.RelationCart, "shopping cart")
}

func (h *recipeHandler) addRelation(c *fiber.Ctx, kind entities.RelationKind, label string) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recipeService.AddRelation(c.Context(), c.Params("id"), userID, kind)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), fmt.Sprintf(domain.MessageFailedModifyRelation, label), err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, fmt.Sprintf(domain.MessageSuccessAddRelation, label))
}

func (h *recipeHandler) removeRelation(c *fiber.Ctx, kind entities.RelationKind, label string) error {
	userID := c.Locals("user_id").(string)

	if err := h.recipeService.RemoveRelation(c.Context(), c.Params("id"), userID, kind); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), fmt.Sprintf(domain.MessageFailedModifyRelation, label), err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, fmt.Sprintf(domain.MessageSuccessDelRelation, label))
}

func (h *recipeHandler) DownloadShoppingList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	document, err := h.recipeService.BuildShoppingDocument(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedShoppingList, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="foodgram_shopping_list.pdf"`)
	return c.Status(fiber.StatusOK).Send(document)
}

func (h *recipeHandler) EmailShoppingList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.recipeService.EmailShoppingList(c.Context(), userID); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedEmailShoppingList, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessEmailShoppingList)
}
