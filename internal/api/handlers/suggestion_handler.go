package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"SmartCart-Backend/domain"
	"SmartCart-Backend/internal/api/presenters"
	"SmartCart-Backend/pkg/genericproduct"
	"SmartCart-Backend/pkg/suggestion"
)

type (
	SuggestionHandler interface {
		MatchGenericProduct(c *fiber.Ctx) error
		SuggestGenericProducts(c *fiber.Ctx) error
		SuggestByBrand(c *fiber.Ctx) error
	}

	suggestionHandler struct {
		matcherService genericproduct.MatcherService
		rankingService suggestion.RankingService
		validator      *validator.Validate
	}
)

func NewSuggestionHandler(matcherService genericproduct.MatcherService, rankingService suggestion.RankingService, validator *validator.Validate) SuggestionHandler {
	return &suggestionHandler{
		matcherService: matcherService,
		rankingService: rankingService,
		validator:      validator,
	}
}

// MatchGenericProduct returns the single best generic product for a name,
// or 404 when nothing clears a matching threshold.
func (h *suggestionHandler) MatchGenericProduct(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.MatchGenericProductRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMatchGeneric, err)
	}

	match, err := h.matcherService.FindGenericProduct(c.Context(), userID, req.Name, req.Category)
	if err != nil {
		if errors.Is(err, domain.ErrNoGenericMatch) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedMatchGeneric, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMatchGeneric, err)
	}

	return presenters.SuccessResponse(c, domain.GenericProductResponse{
		ID:        match.ID.String(),
		Name:      match.Name,
		Category:  match.Category,
		IsDefault: match.IsDefault,
		CreatedAt: match.CreatedAt,
	}, fiber.StatusOK, domain.MessageSuccessMatchGeneric)
}

func (h *suggestionHandler) SuggestGenericProducts(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.SuggestGenericProductsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetSuggestions, err)
	}

	suggestions, err := h.rankingService.RankSuggestions(c.Context(), userID, req.Name, req.Category, req.Limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetSuggestions, err)
	}

	return presenters.SuccessResponse(c, suggestions, fiber.StatusOK, domain.MessageSuccessGetSuggestions)
}

func (h *suggestionHandler) SuggestByBrand(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	brand := c.Query("brand")
	name := c.Query("name")

	if brand == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetSuggestions, errors.New("brand is required"))
	}

	suggestions, err := h.rankingService.SuggestByBrand(c.Context(), userID, brand, name)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetSuggestions, err)
	}

	return presenters.SuccessResponse(c, suggestions, fiber.StatusOK, domain.MessageSuccessGetSuggestions)
}
