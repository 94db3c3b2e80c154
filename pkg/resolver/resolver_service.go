package resolver

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"SmartCart-Backend/domain"
	"SmartCart-Backend/entities"
	"SmartCart-Backend/pkg/barcode"
	"SmartCart-Backend/pkg/catalog"
	"SmartCart-Backend/pkg/productcache"
)

// Placeholder entries exist only so the user can complete them manually.
const placeholderConfidence = 0.1

// Batch chunking: Cosmos tolerates larger bursts than Open Food Facts.
const (
	cosmosChunkSize    = 5
	cosmosChunkPause   = 500 * time.Millisecond
	openFoodChunkSize  = 3
	openFoodChunkPause = 1000 * time.Millisecond
)

type (
	// SpecificProductFinder is the slice of the product repository the
	// resolver needs: the caller's own record for a barcode, generic link
	// preloaded.
	SpecificProductFinder interface {
		GetByBarcode(ctx context.Context, barcode string, userID string) (*entities.SpecificProduct, error)
	}

	ResolverService interface {
		Resolve(ctx context.Context, userID string, code string, symbology string) *domain.ResolveBarcodeResponse
		ResolveBatch(ctx context.Context, userID string, codes []string) *domain.ResolveBatchResponse
	}

	resolverService struct {
		specificProducts SpecificProductFinder
		cache            productcache.CacheService
		cosmos           catalog.Adapter
		openFood         catalog.Adapter
	}
)

func NewResolverService(specificProducts SpecificProductFinder, cache productcache.CacheService, cosmos catalog.Adapter, openFood catalog.Adapter) ResolverService {
	return &resolverService{
		specificProducts: specificProducts,
		cache:            cache,
		cosmos:           cosmos,
		openFood:         openFood,
	}
}

// Resolve walks the tiers in trust order and stops at the first hit:
// own specific product, fresh cache, Cosmos, Open Food Facts, stale cache,
// manual placeholder. Catalog failures fall through to the next tier and
// never reach the caller.
func (s *resolverService) Resolve(ctx context.Context, userID string, code string, symbology string) *domain.ResolveBarcodeResponse {
	if symbology == domain.FormatQRCode {
		if extracted := barcode.ExtractGTIN(code); extracted != "" {
			code = extracted
		}
	}

	if info := s.resolveOwn(ctx, userID, code); info != nil {
		return &domain.ResolveBarcodeResponse{Found: true, Product: info}
	}

	cached, fresh, err := s.cache.Get(ctx, code, userID)
	if err != nil && !errors.Is(err, domain.ErrCacheMiss) {
		log.Printf("resolver: cache lookup for %s failed: %v", code, err)
	}
	if cached != nil && fresh {
		return &domain.ResolveBarcodeResponse{Found: true, Product: cached}
	}

	if info := s.lookupCosmos(ctx, userID, code); info != nil {
		return &domain.ResolveBarcodeResponse{Found: true, Product: info}
	}

	if info := s.lookupOpenFood(ctx, userID, code); info != nil {
		return &domain.ResolveBarcodeResponse{Found: true, Product: info}
	}

	if cached != nil {
		return &domain.ResolveBarcodeResponse{Found: true, Product: productcache.PenalizeStale(cached)}
	}

	return &domain.ResolveBarcodeResponse{Found: true, Product: placeholder(code)}
}

// ResolveBatch partitions codes into cache hits and misses, then drains the
// misses against the catalogs in throttled chunks. One failing lookup never
// fails the batch.
func (s *resolverService) ResolveBatch(ctx context.Context, userID string, codes []string) *domain.ResolveBatchResponse {
	response := &domain.ResolveBatchResponse{Resolved: make(map[string]*domain.ProductInfo)}

	stale := make(map[string]*domain.ProductInfo)
	var misses []string
	seen := make(map[string]bool)

	for _, code := range codes {
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true

		if info := s.resolveOwn(ctx, userID, code); info != nil {
			response.Resolved[code] = info
			continue
		}

		cached, fresh, err := s.cache.Get(ctx, code, userID)
		if err != nil && !errors.Is(err, domain.ErrCacheMiss) {
			log.Printf("resolver: cache lookup for %s failed: %v", code, err)
		}
		if cached != nil && fresh {
			response.Resolved[code] = cached
			continue
		}
		if cached != nil {
			stale[code] = cached
		}
		misses = append(misses, code)
	}

	var cosmosCodes, openFoodOnly []string
	for _, code := range misses {
		if barcode.IsValidGTIN(code) {
			cosmosCodes = append(cosmosCodes, code)
		} else {
			openFoodOnly = append(openFoodOnly, code)
		}
	}

	unresolved := s.lookupChunked(ctx, userID, cosmosCodes, s.lookupCosmos, cosmosChunkSize, cosmosChunkPause, response)
	unresolved = append(unresolved, openFoodOnly...)
	unresolved = s.lookupChunked(ctx, userID, unresolved, s.lookupOpenFood, openFoodChunkSize, openFoodChunkPause, response)

	for _, code := range unresolved {
		if cached, ok := stale[code]; ok {
			response.Resolved[code] = productcache.PenalizeStale(cached)
			continue
		}
		response.Failed = append(response.Failed, code)
	}

	return response
}

// lookupChunked runs one adapter over codes in fixed-size concurrent chunks,
// pacing chunks with a rate limiter. Returns the codes that stayed
// unresolved.
func (s *resolverService) lookupChunked(ctx context.Context, userID string, codes []string, lookup func(context.Context, string, string) *domain.ProductInfo, chunkSize int, pause time.Duration, response *domain.ResolveBatchResponse) []string {
	if len(codes) == 0 {
		return nil
	}

	limiter := rate.NewLimiter(rate.Every(pause), 1)

	var (
		mu         sync.Mutex
		unresolved []string
	)

	for start := 0; start < len(codes); start += chunkSize {
		if err := limiter.Wait(ctx); err != nil {
			unresolved = append(unresolved, codes[start:]...)
			break
		}

		end := start + chunkSize
		if end > len(codes) {
			end = len(codes)
		}

		var wg sync.WaitGroup
		for _, code := range codes[start:end] {
			wg.Add(1)
			go func(code string) {
				defer wg.Done()
				info := lookup(ctx, userID, code)

				mu.Lock()
				defer mu.Unlock()
				if info != nil {
					response.Resolved[code] = info
				} else {
					unresolved = append(unresolved, code)
				}
			}(code)
		}
		wg.Wait()
	}

	return unresolved
}

func (s *resolverService) resolveOwn(ctx context.Context, userID string, code string) *domain.ProductInfo {
	product, err := s.specificProducts.GetByBarcode(ctx, code, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("resolver: specific product lookup for %s failed: %v", code, err)
		}
		return nil
	}

	info := &domain.ProductInfo{
		Barcode:    product.Barcode,
		Name:       product.Name,
		Brand:      product.Brand,
		ImageURL:   product.ImageURL,
		Source:     domain.SourceLocal,
		Confidence: 1.0,
		Metadata:   domain.ProductMetadata{Unit: product.DefaultUnit},
	}
	if product.GenericProduct != nil {
		info.Category = product.GenericProduct.Category
		info.GenericProduct = &domain.GenericProductRef{
			ID:       product.GenericProduct.ID.String(),
			Name:     product.GenericProduct.Name,
			Category: product.GenericProduct.Category,
		}
	}
	return info
}

// lookupCosmos queries Cosmos for GTIN-valid codes only, left-padding 8 and
// 12 digit codes to the 13-digit form the catalog is keyed by.
func (s *resolverService) lookupCosmos(ctx context.Context, userID string, code string) *domain.ProductInfo {
	if !barcode.IsValidGTIN(code) {
		return nil
	}

	info, err := s.cosmos.Lookup(ctx, barcode.NormalizeGTIN(code))
	if err != nil {
		if !catalog.IsNotFound(err) {
			log.Printf("resolver: cosmos lookup for %s failed: %v", code, err)
		}
		return nil
	}

	info.Barcode = code
	s.writeThrough(ctx, userID, info)
	return info
}

func (s *resolverService) lookupOpenFood(ctx context.Context, userID string, code string) *domain.ProductInfo {
	info, err := s.openFood.Lookup(ctx, code)
	if err != nil {
		if !catalog.IsNotFound(err) {
			log.Printf("resolver: openfoodfacts lookup for %s failed: %v", code, err)
		}
		return nil
	}

	s.writeThrough(ctx, userID, info)
	return info
}

func (s *resolverService) writeThrough(ctx context.Context, userID string, info *domain.ProductInfo) {
	if err := s.cache.Put(ctx, userID, info); err != nil {
		log.Printf("resolver: cache write-through for %s failed: %v", info.Barcode, err)
	}
}

func placeholder(code string) *domain.ProductInfo {
	return &domain.ProductInfo{
		Barcode:    code,
		Name:       "",
		Source:     domain.SourceManual,
		Confidence: placeholderConfidence,
	}
}
