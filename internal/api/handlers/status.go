package handlers

import (
	"errors"
	"foodgram-backend/domain"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps domain errors onto HTTP statuses: missing records
// are 404, missing render assets are an internal failure, everything
// else a caller problem.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrTagNotFound),
		errors.Is(err, domain.ErrIngredientNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrLinkNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrAssetMissing):
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadRequest
	}
}
