package handlers

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"SmartCart-Backend/domain"
	"SmartCart-Backend/internal/api/presenters"
	"SmartCart-Backend/pkg/product"
	"SmartCart-Backend/pkg/productcache"
)

type (
	ProductHandler interface {
		CreateProduct(c *fiber.Ctx) error
		GetProducts(c *fiber.Ctx) error
		GetProductDetails(c *fiber.Ctx) error
		DeleteProduct(c *fiber.Ctx) error
		UploadProductImage(c *fiber.Ctx) error
		CheckDuplicates(c *fiber.Ctx) error
		CacheMaintenance(c *fiber.Ctx) error
	}

	productHandler struct {
		productService product.ProductService
		cacheService   productcache.CacheService
		validator      *validator.Validate
	}
)

func NewProductHandler(productService product.ProductService, cacheService productcache.CacheService, validator *validator.Validate) ProductHandler {
	return &productHandler{
		productService: productService,
		cacheService:   cacheService,
		validator:      validator,
	}
}

func (h *productHandler) CreateProduct(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateSpecificProductRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateProduct, err)
	}

	res, err := h.productService.CreateWithValidation(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateProduct, err)
	}

	// Validation and duplicate outcomes come back as a structured result so
	// the UI can render field-level feedback.
	if !res.Success {
		return presenters.SuccessResponse(c, res, fiber.StatusUnprocessableEntity, domain.MessageFailedCreateProduct)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateProduct)
}

func (h *productHandler) GetProducts(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	items, count, err := h.productService.GetProducts(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetProducts, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"items": items,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetProducts)
}

func (h *productHandler) GetProductDetails(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	productID := c.Params("id")

	item, err := h.productService.GetProductByID(c.Context(), productID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetProducts, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessGetProducts)
}

func (h *productHandler) DeleteProduct(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	productID := c.Params("id")

	if err := h.productService.DeleteProduct(c.Context(), productID, userID); err != nil {
		if errors.Is(err, domain.ErrProductReferenced) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedDeleteProduct, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteProduct, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteProduct)
}

func (h *productHandler) UploadProductImage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UploadProductImageRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	imageURL, err := h.productService.UploadProductImage(c.Context(), req.ProductID, file, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"image_url": imageURL}, fiber.StatusOK, domain.MessageSuccessUploadImage)
}

func (h *productHandler) CheckDuplicates(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	barcode := c.Query("barcode")
	name := c.Query("name")

	res, err := h.productService.CheckForDuplicates(c.Context(), barcode, name, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetProducts, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProducts)
}

// CacheMaintenance runs cleanup, or the heavier optimize when ?optimize=true.
func (h *productHandler) CacheMaintenance(c *fiber.Ctx) error {
	if c.Query("optimize") == "true" {
		expired, collapsed, err := h.cacheService.Optimize(c.Context())
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCacheMaintain, err)
		}
		return presenters.SuccessResponse(c, fiber.Map{
			"expired_removed":      expired,
			"duplicates_collapsed": collapsed,
		}, fiber.StatusOK, domain.MessageSuccessCacheMaintain)
	}

	expired, err := h.cacheService.Cleanup(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCacheMaintain, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"expired_removed": expired}, fiber.StatusOK, domain.MessageSuccessCacheMaintain)
}
