package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"SmartCart-Backend/domain"
)

// Open Food Facts confidence is completeness based and never exceeds this cap.
const openFoodMaxConfidence = 0.8

type (
	// OpenFoodAdapter queries the Open Food Facts catalog by barcode. The
	// API is unauthenticated; the status field distinguishes found from
	// not-found, so HTTP 200 alone does not mean a hit.
	OpenFoodAdapter struct {
		baseURL string
		client  *http.Client
		policy  callPolicy
	}

	openFoodResponse struct {
		Status  int             `json:"status"`
		Product openFoodProduct `json:"product"`
	}

	openFoodProduct struct {
		ProductName string                 `json:"product_name"`
		GenericName string                 `json:"generic_name"`
		Brands      string                 `json:"brands"`
		Categories  CategoryField          `json:"categories"`
		ImageURL    string                 `json:"image_url"`
		Quantity    string                 `json:"quantity"`
		Nutriments  map[string]interface{} `json:"nutriments"`
	}
)

func NewOpenFoodAdapter(baseURL string) *OpenFoodAdapter {
	policy := callPolicy{
		timeout:     8 * time.Second,
		maxRetries:  2,
		baseBackoff: 1 * time.Second,
	}
	return &OpenFoodAdapter{
		baseURL: baseURL,
		client:  policy.client(),
		policy:  policy,
	}
}

func (a *OpenFoodAdapter) Name() string {
	return domain.SourceOpenFood
}

func (a *OpenFoodAdapter) Lookup(ctx context.Context, code string) (*domain.ProductInfo, error) {
	url := fmt.Sprintf("%s/api/v2/product/%s.json", a.baseURL, code)

	resp, err := a.policy.do(ctx, a.client, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "SmartCart/1.0")
		return req, nil
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openfoodfacts lookup %s: unexpected status %s: %w", code, resp.Status, domain.ErrCatalogUnavailable)
	}

	var payload openFoodResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("openfoodfacts lookup %s: decoding payload: %w", code, err)
	}

	if payload.Status != 1 {
		return nil, domain.ErrProductNotFound
	}

	product := payload.Product
	name := product.ProductName
	if name == "" {
		name = product.GenericName
	}

	freeText := name
	if product.Quantity != "" {
		freeText = name + " " + product.Quantity
	}

	info := &domain.ProductInfo{
		Barcode:    code,
		Name:       name,
		Brand:      firstBrand(product.Brands),
		Category:   MapCategory(product.Categories.Label),
		ImageURL:   product.ImageURL,
		Source:     domain.SourceOpenFood,
		Confidence: completenessConfidence(product),
		Metadata:   ExtractMeasurements(freeText),
	}
	info.Metadata.GTIN = code

	return info, nil
}

// completenessConfidence scores a payload by how many meaningful fields it
// carries: name, brand, category, image and nutrition each add 0.1 on top
// of a 0.3 floor, capped at 0.8.
func completenessConfidence(product openFoodProduct) float64 {
	confidence := 0.3
	if product.ProductName != "" || product.GenericName != "" {
		confidence += 0.1
	}
	if product.Brands != "" {
		confidence += 0.1
	}
	if product.Categories.Label != "" {
		confidence += 0.1
	}
	if product.ImageURL != "" {
		confidence += 0.1
	}
	if len(product.Nutriments) > 0 {
		confidence += 0.1
	}
	if confidence > openFoodMaxConfidence {
		confidence = openFoodMaxConfidence
	}
	return confidence
}

// firstBrand takes the first entry of the comma separated brands field.
func firstBrand(brands string) string {
	first, _, _ := strings.Cut(brands, ",")
	return strings.TrimSpace(first)
}
