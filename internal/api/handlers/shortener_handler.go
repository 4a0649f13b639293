package handlers

import (
	"fmt"
	"foodgram-backend/domain"
	"foodgram-backend/internal/api/presenters"
	"foodgram-backend/pkg/shortener"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type (
	ShortenerHandler interface {
		GetRecipeLink(c *fiber.Ctx) error
		Resolve(c *fiber.Ctx) error
	}

	shortenerHandler struct {
		shortenerService shortener.ShortenerService
		appURL           string
	}
)

func NewShortenerHandler(shortenerService shortener.ShortenerService, appURL string) ShortenerHandler {
	return &shortenerHandler{
		shortenerService: shortenerService,
		appURL:           strings.TrimRight(appURL, "/"),
	}
}

// GetRecipeLink shortens the canonical recipe page URL. The recipe does
// not have to exist, matching redirect-time resolution only.
func (h *shortenerHandler) GetRecipeLink(c *fiber.Ctx) error {
	originalURL := fmt.Sprintf("%s/recipes/%s", h.appURL, c.Params("id"))

	token, err := h.shortenerService.CreateOrGetLink(c.Context(), originalURL)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetLink, err)
	}

	return presenters.SuccessResponse(c, domain.ShortLinkResponse{
		ShortLink: fmt.Sprintf("%s/s/%s", h.appURL, token),
	}, fiber.StatusOK, domain.MessageSuccessGetLink)
}

func (h *shortenerHandler) Resolve(c *fiber.Ctx) error {
	originalURL, err := h.shortenerService.ResolveLink(c.Context(), c.Params("token"))
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetLink, err)
	}

	return c.Redirect(originalURL, fiber.StatusFound)
}
