package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"SmartCart-Backend/domain"
)

// cosmosConfidence is fixed: Cosmos is the authoritative Brazilian catalog,
// its records are trusted regardless of payload completeness.
const cosmosConfidence = 0.9

type (
	// CosmosAdapter queries the Bluesoft Cosmos catalog by GTIN. Lookups are
	// authenticated with a static token header.
	CosmosAdapter struct {
		baseURL string
		token   string
		client  *http.Client
		policy  callPolicy
	}

	cosmosResponse struct {
		GTIN        int64         `json:"gtin"`
		Description string        `json:"description"`
		Thumbnail   string        `json:"thumbnail"`
		Brand       cosmosBrand   `json:"brand"`
		NCM         cosmosNCM     `json:"ncm"`
		Category    CategoryField `json:"gpc"`
	}

	cosmosBrand struct {
		Name string `json:"name"`
	}

	cosmosNCM struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	}
)

func NewCosmosAdapter(baseURL, token string) *CosmosAdapter {
	policy := callPolicy{
		timeout:     10 * time.Second,
		maxRetries:  3,
		baseBackoff: 1 * time.Second,
	}
	return &CosmosAdapter{
		baseURL: baseURL,
		token:   token,
		client:  policy.client(),
		policy:  policy,
	}
}

func (a *CosmosAdapter) Name() string {
	return domain.SourceCosmos
}

func (a *CosmosAdapter) Lookup(ctx context.Context, code string) (*domain.ProductInfo, error) {
	url := fmt.Sprintf("%s/gtins/%s.json", a.baseURL, code)

	resp, err := a.policy.do(ctx, a.client, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("X-Cosmos-Token", a.token)
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
		return nil, fmt.Errorf("cosmos lookup %s: unexpected status %s: %w", code, resp.Status, domain.ErrCatalogUnavailable)
	}

	var payload cosmosResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("cosmos lookup %s: decoding payload: %w", code, err)
	}

	info := &domain.ProductInfo{
		Barcode:    code,
		Name:       payload.Description,
		Brand:      payload.Brand.Name,
		Category:   MapCategory(payload.Category.Label),
		ImageURL:   payload.Thumbnail,
		Source:     domain.SourceCosmos,
		Confidence: cosmosConfidence,
		Metadata:   ExtractMeasurements(payload.Description),
	}
	info.Metadata.TaxCode = payload.NCM.Code
	info.Metadata.GTIN = code

	return info, nil
}
