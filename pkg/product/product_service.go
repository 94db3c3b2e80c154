package product

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"SmartCart-Backend/domain"
	"SmartCart-Backend/entities"
	"SmartCart-Backend/internal/utils/storage"
	"SmartCart-Backend/pkg/barcode"
	"SmartCart-Backend/pkg/catalog"
	"SmartCart-Backend/pkg/genericproduct"
	"SmartCart-Backend/pkg/productcache"
)

// Field length caps enforced on creation.
const (
	maxNameLength        = 255
	maxBrandLength       = 100
	maxDescriptionLength = 1000
)

// Auto-link scoring: a candidate needs at least linkThreshold to be linked.
const (
	scoreNameSubstring = 100
	scoreCategoryEqual = 50
	scoreSharedWord    = 30
	scoreDefaultBonus  = 10
	linkThreshold      = 50
)

// nameDuplicateThreshold flags near-identical names as duplicates.
const nameDuplicateThreshold = 0.9

var (
	nonDigits       = regexp.MustCompile(`\D`)
	imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
)

// titleCase builds a fresh caser per call; cases.Caser carries internal
// state and must not be shared between concurrent requests.
func titleCase(s string) string {
	return cases.Title(language.BrazilianPortuguese).String(s)
}

type (
	ProductService interface {
		CreateWithValidation(ctx context.Context, req domain.CreateSpecificProductRequest, userID string) (domain.CreateSpecificProductResponse, error)
		CheckForDuplicates(ctx context.Context, barcodeValue string, name string, userID string) (domain.DuplicateCheckResult, error)
		AutoLinkToGenericProduct(ctx context.Context, userID string, name string, category string) (*entities.GenericProduct, int, error)
		GetProducts(ctx context.Context, userID string, page, limit int) ([]domain.SpecificProductResponse, int64, error)
		GetProductByID(ctx context.Context, id string, userID string) (domain.SpecificProductResponse, error)
		DeleteProduct(ctx context.Context, id string, userID string) error
		UploadProductImage(ctx context.Context, productID string, image *multipart.FileHeader, userID string) (string, error)
	}

	productService struct {
		productRepository ProductRepository
		genericRepository genericproduct.GenericRepository
		matcher           genericproduct.MatcherService
		cache             productcache.CacheService
		s3                storage.AwsS3
	}
)

func NewProductService(productRepository ProductRepository, genericRepository genericproduct.GenericRepository, matcher genericproduct.MatcherService, cache productcache.CacheService, s3 storage.AwsS3) ProductService {
	return &productService{
		productRepository: productRepository,
		genericRepository: genericRepository,
		matcher:           matcher,
		cache:             cache,
		s3:                s3,
	}
}

// Validate applies the creation rules: missing name, barcode or generic id
// block; length caps block; everything else is a warning the UI may show
// but that never stops the creation.
func Validate(req domain.CreateSpecificProductRequest, genericID string) domain.ValidationResult {
	result := validateFields(req)
	if strings.TrimSpace(genericID) == "" {
		result.Errors = append(result.Errors, "generic product id is required")
	}
	result.IsValid = len(result.Errors) == 0
	return result
}

// validateFields checks everything except the generic product link, which
// the creation pipeline may still resolve by auto-linking.
func validateFields(req domain.CreateSpecificProductRequest) domain.ValidationResult {
	result := domain.ValidationResult{IsValid: true}

	if strings.TrimSpace(req.Name) == "" {
		result.Errors = append(result.Errors, "name is required")
	}
	if strings.TrimSpace(req.Barcode) == "" {
		result.Errors = append(result.Errors, "barcode is required")
	}

	if len(req.Name) > maxNameLength {
		result.Errors = append(result.Errors, fmt.Sprintf("name exceeds %d characters", maxNameLength))
	}
	if len(req.Brand) > maxBrandLength {
		result.Errors = append(result.Errors, fmt.Sprintf("brand exceeds %d characters", maxBrandLength))
	}
	if len(req.Description) > maxDescriptionLength {
		result.Errors = append(result.Errors, fmt.Sprintf("description exceeds %d characters", maxDescriptionLength))
	}

	if req.Barcode != "" {
		check := barcode.Validate(req.Barcode, domain.FormatUnknown)
		if !check.IsValid && !barcode.IsProductQR(req.Barcode) {
			result.Warnings = append(result.Warnings, "barcode does not match any known format")
		}
	}
	if req.Confidence > 0 && req.Confidence < 0.3 {
		result.Warnings = append(result.Warnings, "low confidence product data")
	}
	if req.ImageURL != "" && !isImageURL(req.ImageURL) {
		result.Warnings = append(result.Warnings, "image URL is not an http(s) link to a recognized image")
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

// AutoCorrect cleans up user or catalog supplied fields: title-cased name
// and brand, trimmed description, digits-only barcode, and measurement
// metadata re-extracted from the name when absent.
func AutoCorrect(req domain.CreateSpecificProductRequest) domain.CreateSpecificProductRequest {
	req.Name = titleCase(strings.TrimSpace(req.Name))
	req.Brand = titleCase(strings.TrimSpace(req.Brand))
	req.Description = strings.TrimSpace(req.Description)

	if barcode.DetectFormat(req.Barcode) != domain.FormatQRCode {
		req.Barcode = nonDigits.ReplaceAllString(req.Barcode, "")
	}

	if req.DefaultUnit == "" {
		meta := catalog.ExtractMeasurements(req.Name)
		req.DefaultUnit = meta.Unit
	}

	return req
}

// CreateWithValidation is the full creation pipeline: validate, auto-link
// (or auto-create) the generic product, check duplicates, optionally
// auto-correct, persist, and write the result through to the cache.
func (s *productService) CreateWithValidation(ctx context.Context, req domain.CreateSpecificProductRequest, userID string) (domain.CreateSpecificProductResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.CreateSpecificProductResponse{}, domain.ErrParseUUID
	}

	// field errors block before the auto link can persist anything
	validation := validateFields(req)
	warnings := append([]string(nil), validation.Warnings...)
	if !validation.IsValid {
		return domain.CreateSpecificProductResponse{
			Success:  false,
			Errors:   validation.Errors,
			Warnings: warnings,
		}, nil
	}

	genericID := strings.TrimSpace(req.GenericProductID)
	if genericID == "" {
		generic, bestScore, err := s.AutoLinkToGenericProduct(ctx, userID, req.Name, req.Category)
		if err != nil {
			if !errors.Is(err, domain.ErrNoGenericMatch) {
				return domain.CreateSpecificProductResponse{}, err
			}
			generic, err = s.autoCreateGeneric(ctx, userUUID, req.Name, req.Category)
			if err != nil {
				return domain.CreateSpecificProductResponse{}, err
			}
			warnings = append(warnings, fmt.Sprintf("no generic product cleared the link threshold (best score %d); created %q", bestScore, generic.Name))
		}
		genericID = generic.ID.String()
	}

	if !req.SkipDuplicates {
		duplicate, err := s.CheckForDuplicates(ctx, req.Barcode, req.Name, userID)
		if err != nil {
			return domain.CreateSpecificProductResponse{}, err
		}
		if duplicate.HasDuplicate {
			return domain.CreateSpecificProductResponse{
				Success:  false,
				Errors:   []string{fmt.Sprintf("duplicate product (%s)", duplicate.DuplicateType)},
				Warnings: warnings,
			}, nil
		}
	}

	if req.AutoCorrect {
		req = AutoCorrect(req)
	}

	genericUUID, err := uuid.Parse(genericID)
	if err != nil {
		return domain.CreateSpecificProductResponse{}, domain.ErrParseUUID
	}

	source := req.Source
	if source == "" {
		source = domain.SourceManual
	}
	confidence := req.Confidence
	if confidence == 0 {
		confidence = 1.0
	}

	format := ""
	if check := barcode.Validate(req.Barcode, domain.FormatUnknown); check.IsValid {
		format = check.Format
	}

	product := &entities.SpecificProduct{
		ID:               uuid.New(),
		UserID:           userUUID,
		GenericProductID: genericUUID,
		Name:             req.Name,
		Brand:            req.Brand,
		Barcode:          req.Barcode,
		BarcodeFormat:    format,
		DefaultUnit:      req.DefaultUnit,
		ImageURL:         req.ImageURL,
		ExternalID:       req.ExternalID,
		DataSource:       source,
		Confidence:       confidence,
		LastExternalSync: time.Now().UTC(),
	}

	if err := s.productRepository.Create(ctx, product); err != nil {
		return domain.CreateSpecificProductResponse{}, err
	}

	s.cacheCreated(ctx, userID, product)

	response := toProductResponse(product)
	return domain.CreateSpecificProductResponse{
		Success:  true,
		Product:  &response,
		Warnings: warnings,
	}, nil
}

// CheckForDuplicates flags an exact same-owner barcode first, then any
// existing product whose normalized name is almost identical.
func (s *productService) CheckForDuplicates(ctx context.Context, barcodeValue string, name string, userID string) (domain.DuplicateCheckResult, error) {
	existing, err := s.productRepository.GetByBarcode(ctx, barcodeValue, userID)
	if err == nil {
		response := toProductResponse(existing)
		return domain.DuplicateCheckResult{
			HasDuplicate:  true,
			DuplicateType: "barcode",
			Existing:      &response,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.DuplicateCheckResult{}, err
	}

	products, err := s.productRepository.GetAllByUser(ctx, userID)
	if err != nil {
		return domain.DuplicateCheckResult{}, err
	}

	normalizedName := genericproduct.Normalize(name)
	for _, product := range products {
		similarity := genericproduct.Similarity(genericproduct.Normalize(product.Name), normalizedName)
		if similarity > nameDuplicateThreshold {
			response := toProductResponse(product)
			return domain.DuplicateCheckResult{
				HasDuplicate:  true,
				DuplicateType: "name",
				Existing:      &response,
			}, nil
		}
	}

	return domain.DuplicateCheckResult{}, nil
}

// AutoLinkToGenericProduct scores every candidate and links the best one if
// it clears the threshold. The best score is returned either way so callers
// can report why a link failed.
func (s *productService) AutoLinkToGenericProduct(ctx context.Context, userID string, name string, category string) (*entities.GenericProduct, int, error) {
	candidates, err := s.genericRepository.GetForUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	normalizedName := genericproduct.Normalize(name)
	internalCategory := catalog.MapCategory(category)
	words := genericproduct.SignificantWords(name)

	var (
		best      *entities.GenericProduct
		bestScore int
	)
	for _, candidate := range candidates {
		score := scoreCandidate(candidate, normalizedName, internalCategory, words)
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}

	if best == nil || bestScore < linkThreshold {
		return nil, bestScore, domain.ErrNoGenericMatch
	}
	return best, bestScore, nil
}

func scoreCandidate(candidate *entities.GenericProduct, normalizedName string, internalCategory string, words []string) int {
	candidateName := genericproduct.Normalize(candidate.Name)

	score := 0
	if candidateName != "" && strings.Contains(normalizedName, candidateName) {
		score += scoreNameSubstring
	}
	if candidate.Category != "" && candidate.Category == internalCategory && internalCategory != catalog.UncategorizedBucket {
		score += scoreCategoryEqual
	}

	candidateWords := genericproduct.SignificantWords(candidate.Name)
	for _, word := range words {
		for _, candidateWord := range candidateWords {
			if word == candidateWord {
				score += scoreSharedWord
			}
		}
	}

	if candidate.IsDefault {
		score += scoreDefaultBonus
	}
	return score
}

// autoCreateGeneric derives a generic product from the scanned name: the
// first significant word becomes the name ("Arroz Tio João 1kg" -> "Arroz"),
// the category comes from the keyword and category dictionaries.
func (s *productService) autoCreateGeneric(ctx context.Context, userID uuid.UUID, name string, category string) (*entities.GenericProduct, error) {
	genericName := name
	if words := genericproduct.SignificantWords(name); len(words) > 0 {
		genericName = words[0]
	}
	genericName = titleCase(genericName)

	internalCategory := catalog.MapCategory(genericName)
	if internalCategory == catalog.UncategorizedBucket {
		internalCategory = catalog.MapCategory(category)
	}

	generic := &entities.GenericProduct{
		ID:       uuid.New(),
		UserID:   &userID,
		Name:     genericName,
		Category: internalCategory,
	}
	if err := s.genericRepository.Create(ctx, generic); err != nil {
		return nil, err
	}
	return generic, nil
}

func (s *productService) GetProducts(ctx context.Context, userID string, page, limit int) ([]domain.SpecificProductResponse, int64, error) {
	products, count, err := s.productRepository.GetByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]domain.SpecificProductResponse, 0, len(products))
	for _, product := range products {
		responses = append(responses, toProductResponse(product))
	}
	return responses, count, nil
}

func (s *productService) GetProductByID(ctx context.Context, id string, userID string) (domain.SpecificProductResponse, error) {
	product, err := s.productRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SpecificProductResponse{}, domain.ErrSpecificProductNotFound
		}
		return domain.SpecificProductResponse{}, err
	}

	if product.UserID.String() != userID {
		return domain.SpecificProductResponse{}, domain.ErrUnauthorizedAccess
	}

	return toProductResponse(product), nil
}

// DeleteProduct refuses to remove a product any list item still references.
func (s *productService) DeleteProduct(ctx context.Context, id string, userID string) error {
	product, err := s.productRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrSpecificProductNotFound
		}
		return err
	}

	if product.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	references, err := s.productRepository.CountListItemReferences(ctx, id)
	if err != nil {
		return err
	}
	if references > 0 {
		return domain.ErrProductReferenced
	}

	if product.ImageURL != "" {
		if objectKey := s.s3.GetObjectKeyFromLink(product.ImageURL); objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	if err := s.productRepository.Delete(ctx, id); err != nil {
		return err
	}

	return s.cache.Invalidate(ctx, product.Barcode, userID)
}

func (s *productService) UploadProductImage(ctx context.Context, productID string, image *multipart.FileHeader, userID string) (string, error) {
	product, err := s.productRepository.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrSpecificProductNotFound
		}
		return "", err
	}

	if product.UserID.String() != userID {
		return "", domain.ErrUnauthorizedAccess
	}

	fileName := fmt.Sprintf("specific-product-%s", product.ID.String())
	var objectKey string
	var uploadErr error

	if product.ImageURL != "" {
		if existingKey := s.s3.GetObjectKeyFromLink(product.ImageURL); existingKey != "" {
			objectKey, uploadErr = s.s3.UpdateFile(existingKey, image, storage.AllowImage...)
		} else {
			objectKey, uploadErr = s.s3.UploadFile(fileName, image, "products", storage.AllowImage...)
		}
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, image, "products", storage.AllowImage...)
	}
	if uploadErr != nil {
		return "", uploadErr
	}

	product.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.productRepository.Update(ctx, product); err != nil {
		return "", err
	}
	return product.ImageURL, nil
}

// cacheCreated writes a freshly created product through to the cache so the
// next scan of the same barcode resolves locally.
func (s *productService) cacheCreated(ctx context.Context, userID string, product *entities.SpecificProduct) {
	info := &domain.ProductInfo{
		Barcode:    product.Barcode,
		Name:       product.Name,
		Brand:      product.Brand,
		ImageURL:   product.ImageURL,
		Source:     domain.SourceLocal,
		Confidence: 1.0,
		Metadata:   domain.ProductMetadata{Unit: product.DefaultUnit},
	}
	if err := s.cache.Put(ctx, userID, info); err != nil {
		log.Printf("product: cache write-through for %s failed: %v", product.Barcode, err)
	}
}

func isImageURL(raw string) bool {
	lowered := strings.ToLower(raw)
	if !strings.HasPrefix(lowered, "http://") && !strings.HasPrefix(lowered, "https://") {
		return false
	}
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lowered, ext) {
			return true
		}
	}
	return false
}

func toProductResponse(product *entities.SpecificProduct) domain.SpecificProductResponse {
	return domain.SpecificProductResponse{
		ID:               product.ID.String(),
		GenericProductID: product.GenericProductID.String(),
		Name:             product.Name,
		Brand:            product.Brand,
		Barcode:          product.Barcode,
		BarcodeFormat:    product.BarcodeFormat,
		DefaultUnit:      product.DefaultUnit,
		ImageURL:         product.ImageURL,
		ExternalID:       product.ExternalID,
		DataSource:       product.DataSource,
		Confidence:       product.Confidence,
		LastExternalSync: product.LastExternalSync,
		CreatedAt:        product.CreatedAt,
	}
}
