package genericproduct

import (
	"context"
	"sort"
	"strings"

	"SmartCart-Backend/domain"
	"SmartCart-Backend/entities"
	"SmartCart-Backend/pkg/catalog"
)

// fuzzyThreshold is the minimum normalized Levenshtein similarity for a
// fuzzy match to count.
const fuzzyThreshold = 0.7

// Matching strategies, in the order FindGenericProduct tries them.
const (
	StrategyExact    = "exact"
	StrategyKeyword  = "keyword"
	StrategyCategory = "category"
	StrategyFuzzy    = "fuzzy"
	StrategyProduce  = "produce"
)

type (
	// MatchCandidate pairs a generic product with how well and through which
	// strategy it matched.
	MatchCandidate struct {
		Product    *entities.GenericProduct
		Similarity float64
		Strategy   string
	}

	MatcherService interface {
		FindGenericProduct(ctx context.Context, userID string, name string, category string) (*entities.GenericProduct, error)
		SuggestGenericProducts(ctx context.Context, userID string, name string, category string) ([]MatchCandidate, error)
	}

	matcherService struct {
		genericRepository GenericRepository
	}
)

func NewMatcherService(genericRepository GenericRepository) MatcherService {
	return &matcherService{genericRepository: genericRepository}
}

// FindGenericProduct resolves a scanned or typed name to one generic
// product, trying exact normalized equality, the keyword dictionary,
// category equality and finally fuzzy similarity. Returns
// domain.ErrNoGenericMatch when nothing clears a threshold.
func (s *matcherService) FindGenericProduct(ctx context.Context, userID string, name string, category string) (*entities.GenericProduct, error) {
	candidates, err := s.genericRepository.GetForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	normalizedName := Normalize(name)
	normalizedCategory := Normalize(category)

	if match := findExact(candidates, normalizedName); match != nil {
		return match, nil
	}

	if keyword := matchKeyword(normalizedName, normalizedCategory); keyword != "" {
		if match := findByNormalizedName(candidates, keyword); match != nil {
			return match, nil
		}
	}

	if category != "" {
		internal := catalog.MapCategory(category)
		if internal != catalog.UncategorizedBucket {
			if match := findByCategory(candidates, internal); match != nil {
				return match, nil
			}
		}
	}

	if match, similarity := findFuzzy(candidates, normalizedName); match != nil && similarity > fuzzyThreshold {
		return match, nil
	}

	return nil, domain.ErrNoGenericMatch
}

// SuggestGenericProducts merges every strategy into a deduplicated list
// sorted by descending similarity. The essentially-generic produce path can
// outrank fuzzy matches because the item effectively is its category.
func (s *matcherService) SuggestGenericProducts(ctx context.Context, userID string, name string, category string) ([]MatchCandidate, error) {
	candidates, err := s.genericRepository.GetForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	normalizedName := Normalize(name)
	normalizedCategory := Normalize(category)

	best := make(map[string]MatchCandidate)
	record := func(product *entities.GenericProduct, similarity float64, strategy string) {
		key := product.ID.String()
		if existing, ok := best[key]; !ok || similarity > existing.Similarity {
			best[key] = MatchCandidate{Product: product, Similarity: similarity, Strategy: strategy}
		}
	}

	for _, candidate := range candidates {
		candidateName := Normalize(candidate.Name)

		if candidateName == normalizedName {
			record(candidate, 1.0, StrategyExact)
			continue
		}

		if keyword := matchKeyword(normalizedName, normalizedCategory); keyword != "" && strings.Contains(candidateName, keyword) {
			record(candidate, 0.85, StrategyKeyword)
		}

		if category != "" && candidate.Category != "" && candidate.Category == catalog.MapCategory(category) {
			record(candidate, 0.75, StrategyCategory)
		}

		if similarity := Similarity(candidateName, normalizedName); similarity > fuzzyThreshold {
			record(candidate, similarity, StrategyFuzzy)
		}

		if produce, similarity := matchEssentiallyGeneric(normalizedName); produce != "" && strings.Contains(candidateName, produce) {
			record(candidate, similarity, StrategyProduce)
		}
	}

	suggestions := make([]MatchCandidate, 0, len(best))
	for _, candidate := range best {
		suggestions = append(suggestions, candidate)
	}
	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].Similarity > suggestions[j].Similarity
	})

	return suggestions, nil
}

func findExact(candidates []*entities.GenericProduct, normalizedName string) *entities.GenericProduct {
	for _, candidate := range candidates {
		if Normalize(candidate.Name) == normalizedName {
			return candidate
		}
	}
	return nil
}

func findByNormalizedName(candidates []*entities.GenericProduct, keyword string) *entities.GenericProduct {
	for _, candidate := range candidates {
		if strings.Contains(Normalize(candidate.Name), keyword) {
			return candidate
		}
	}
	return nil
}

func findByCategory(candidates []*entities.GenericProduct, internalCategory string) *entities.GenericProduct {
	for _, candidate := range candidates {
		if candidate.Category == internalCategory {
			return candidate
		}
	}
	return nil
}

func findFuzzy(candidates []*entities.GenericProduct, normalizedName string) (*entities.GenericProduct, float64) {
	var (
		bestProduct    *entities.GenericProduct
		bestSimilarity float64
	)
	for _, candidate := range candidates {
		similarity := Similarity(Normalize(candidate.Name), normalizedName)
		if similarity > bestSimilarity {
			bestProduct = candidate
			bestSimilarity = similarity
		}
	}
	return bestProduct, bestSimilarity
}
