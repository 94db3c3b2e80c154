package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"SmartCart-Backend/domain"
	"SmartCart-Backend/entities"
	"SmartCart-Backend/internal/api/presenters"
	"SmartCart-Backend/pkg/genericproduct"
)

type (
	GenericProductHandler interface {
		CreateGenericProduct(c *fiber.Ctx) error
		GetGenericProducts(c *fiber.Ctx) error
		DeleteGenericProduct(c *fiber.Ctx) error
	}

	genericProductHandler struct {
		genericRepository genericproduct.GenericRepository
		validator         *validator.Validate
	}
)

func NewGenericProductHandler(genericRepository genericproduct.GenericRepository, validator *validator.Validate) GenericProductHandler {
	return &genericProductHandler{
		genericRepository: genericRepository,
		validator:         validator,
	}
}

func (h *genericProductHandler) CreateGenericProduct(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateGenericProductRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateGeneric, err)
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateGeneric, domain.ErrParseUUID)
	}

	generic := &entities.GenericProduct{
		ID:       uuid.New(),
		UserID:   &userUUID,
		Name:     req.Name,
		Category: req.Category,
	}
	if err := h.genericRepository.Create(c.Context(), generic); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateGeneric, err)
	}

	return presenters.SuccessResponse(c, domain.GenericProductResponse{
		ID:        generic.ID.String(),
		Name:      generic.Name,
		Category:  generic.Category,
		IsDefault: generic.IsDefault,
		CreatedAt: generic.CreatedAt,
	}, fiber.StatusCreated, domain.MessageSuccessCreateGeneric)
}

func (h *genericProductHandler) GetGenericProducts(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	generics, err := h.genericRepository.GetForUser(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetGenerics, err)
	}

	responses := make([]domain.GenericProductResponse, 0, len(generics))
	for _, generic := range generics {
		responses = append(responses, domain.GenericProductResponse{
			ID:        generic.ID.String(),
			Name:      generic.Name,
			Category:  generic.Category,
			IsDefault: generic.IsDefault,
			CreatedAt: generic.CreatedAt,
		})
	}

	return presenters.SuccessResponse(c, responses, fiber.StatusOK, domain.MessageSuccessGetGenerics)
}

func (h *genericProductHandler) DeleteGenericProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.genericRepository.Delete(c.Context(), id); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetGenerics, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessGetGenerics)
}
