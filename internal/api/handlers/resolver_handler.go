package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"SmartCart-Backend/domain"
	"SmartCart-Backend/internal/api/presenters"
	"SmartCart-Backend/pkg/resolver"
)

type (
	ResolverHandler interface {
		ResolveBarcode(c *fiber.Ctx) error
		ResolveBatch(c *fiber.Ctx) error
	}

	resolverHandler struct {
		resolverService resolver.ResolverService
		validator       *validator.Validate
	}
)

func NewResolverHandler(resolverService resolver.ResolverService, validator *validator.Validate) ResolverHandler {
	return &resolverHandler{
		resolverService: resolverService,
		validator:       validator,
	}
}

func (h *resolverHandler) ResolveBarcode(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.ResolveBarcodeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedResolveBarcode, err)
	}

	res := h.resolverService.Resolve(c.Context(), userID, req.Barcode, req.Symbology)
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessResolveBarcode)
}

func (h *resolverHandler) ResolveBatch(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.ResolveBatchRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedResolveBatch, err)
	}

	res := h.resolverService.ResolveBatch(c.Context(), userID, req.Barcodes)
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessResolveBatch)
}
