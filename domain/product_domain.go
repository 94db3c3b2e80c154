package domain

import (
	"errors"
	"time"
)

// Data sources a resolved product can come from, in decreasing trust order.
const (
	SourceLocal    = "local"
	SourceCosmos   = "cosmos"
	SourceOpenFood = "openfoodfacts"
	SourceManual   = "manual"
)

// Barcode format tags produced by the validator.
const (
	FormatEAN13   = "EAN13"
	FormatEAN8    = "EAN8"
	FormatUPCA    = "UPCA"
	FormatQRCode  = "QRCODE"
	FormatUnknown = "UNKNOWN"
)

var (
	MessageSuccessResolveBarcode = "barcode resolved successfully"
	MessageSuccessResolveBatch   = "barcodes resolved successfully"
	MessageSuccessCreateProduct  = "specific product created successfully"
	MessageSuccessUpdateProduct  = "specific product updated successfully"
	MessageSuccessDeleteProduct  = "specific product deleted successfully"
	MessageSuccessGetProducts    = "specific products retrieved successfully"
	MessageSuccessUploadImage    = "product image uploaded successfully"
	MessageSuccessCacheMaintain  = "product cache maintenance completed"

	MessageFailedResolveBarcode = "failed to resolve barcode"
	MessageFailedResolveBatch   = "failed to resolve barcodes"
	MessageFailedCreateProduct  = "failed to create specific product"
	MessageFailedUpdateProduct  = "failed to update specific product"
	MessageFailedDeleteProduct  = "failed to delete specific product"
	MessageFailedGetProducts    = "failed to retrieve specific products"
	MessageFailedUploadImage    = "failed to upload product image"
	MessageFailedCacheMaintain  = "failed to run product cache maintenance"

	ErrProductNotFound         = errors.New("product not found in catalog")
	ErrSpecificProductNotFound = errors.New("specific product not found")
	ErrInvalidBarcode          = errors.New("invalid barcode")
	ErrCatalogUnavailable      = errors.New("catalog unavailable")
	ErrCatalogRateLimited      = errors.New("catalog rate limit exceeded")
	ErrCacheMiss               = errors.New("product cache miss")
	ErrDuplicateProduct        = errors.New("duplicate specific product")
	ErrProductReferenced       = errors.New("specific product still referenced by list items")
	ErrUnauthorizedAccess      = errors.New("unauthorized access to product")
)

type (
	// GenericProductRef is the lightweight link a resolved product carries to
	// the generic product it was matched against.
	GenericProductRef struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Category string `json:"category"`
	}

	// ProductMetadata holds fields extracted from catalog payloads or product
	// names. All fields are optional.
	ProductMetadata struct {
		TaxCode  string  `json:"tax_code,omitempty"` // NCM code from Cosmos
		Unit     string  `json:"unit,omitempty"`
		WeightKg float64 `json:"weight_kg,omitempty"`
		VolumeL  float64 `json:"volume_l,omitempty"`
		GTIN     string  `json:"gtin,omitempty"`
	}

	// ProductInfo is the transient result of a barcode resolution. It is
	// produced per call and never the system of record.
	ProductInfo struct {
		Barcode        string             `json:"barcode"`
		Name           string             `json:"name"`
		Brand          string             `json:"brand,omitempty"`
		Category       string             `json:"category,omitempty"`
		ImageURL       string             `json:"image_url,omitempty"`
		Description    string             `json:"description,omitempty"`
		Source         string             `json:"source"`
		Confidence     float64            `json:"confidence"`
		GenericProduct *GenericProductRef `json:"generic_product,omitempty"`
		Metadata       ProductMetadata    `json:"metadata,omitempty"`
	}

	ResolveBarcodeRequest struct {
		Barcode   string `json:"barcode" validate:"required"`
		Symbology string `json:"symbology" validate:"omitempty,oneof=EAN13 EAN8 UPCA QRCODE UNKNOWN"`
	}

	ResolveBarcodeResponse struct {
		Found   bool         `json:"found"`
		Product *ProductInfo `json:"product,omitempty"`
		Error   string       `json:"error,omitempty"`
	}

	ResolveBatchRequest struct {
		Barcodes []string `json:"barcodes" validate:"required,min=1,max=100,dive,required"`
	}

	ResolveBatchResponse struct {
		Resolved map[string]*ProductInfo `json:"resolved"`
		Failed   []string                `json:"failed,omitempty"`
	}

	CreateSpecificProductRequest struct {
		Name             string  `json:"name" validate:"required,max=255"`
		Brand            string  `json:"brand" validate:"omitempty,max=100"`
		Barcode          string  `json:"barcode" validate:"required"`
		Description      string  `json:"description" validate:"omitempty,max=1000"`
		Category         string  `json:"category"`
		ImageURL         string  `json:"image_url"`
		GenericProductID string  `json:"generic_product_id" validate:"omitempty,uuid"`
		DefaultUnit      string  `json:"default_unit"`
		ExternalID       string  `json:"external_id" validate:"omitempty,max=100"`
		Source           string  `json:"source" validate:"omitempty,oneof=local cosmos openfoodfacts manual"`
		Confidence       float64 `json:"confidence" validate:"omitempty,min=0,max=1"`
		SkipDuplicates   bool    `json:"skip_duplicate_check"`
		AutoCorrect      bool    `json:"auto_correct"`
	}

	SpecificProductResponse struct {
		ID               string    `json:"id"`
		GenericProductID string    `json:"generic_product_id"`
		Name             string    `json:"name"`
		Brand            string    `json:"brand,omitempty"`
		Barcode          string    `json:"barcode"`
		BarcodeFormat    string    `json:"barcode_format,omitempty"`
		DefaultUnit      string    `json:"default_unit,omitempty"`
		ImageURL         string    `json:"image_url,omitempty"`
		ExternalID       string    `json:"external_id,omitempty"`
		DataSource       string    `json:"data_source"`
		Confidence       float64   `json:"confidence"`
		LastExternalSync time.Time `json:"last_external_sync,omitempty"`
		CreatedAt        time.Time `json:"created_at"`
	}

	// ValidationResult carries field-level outcomes so the UI can render them.
	// Warnings never block creation.
	ValidationResult struct {
		IsValid  bool     `json:"is_valid"`
		Errors   []string `json:"errors,omitempty"`
		Warnings []string `json:"warnings,omitempty"`
	}

	DuplicateCheckResult struct {
		HasDuplicate  bool                     `json:"has_duplicate"`
		DuplicateType string                   `json:"duplicate_type,omitempty"` // "barcode" or "name"
		Existing      *SpecificProductResponse `json:"existing,omitempty"`
	}

	CreateSpecificProductResponse struct {
		Success  bool                     `json:"success"`
		Product  *SpecificProductResponse `json:"product,omitempty"`
		Errors   []string                 `json:"errors,omitempty"`
		Warnings []string                 `json:"warnings,omitempty"`
	}

	UploadProductImageRequest struct {
		ProductID string `json:"product_id" form:"product_id" validate:"required,uuid"`
	}
)
