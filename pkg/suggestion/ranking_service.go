package suggestion

import (
	"context"
	"sort"
	"time"

	"SmartCart-Backend/domain"
	"SmartCart-Backend/entities"
	"SmartCart-Backend/pkg/genericproduct"
)

const (
	similarityWeight = 0.7
	popularityWeight = 0.3

	recencyBonus  = 0.2
	categoryBonus = 0.15
	wordBonus     = 0.1

	recencyWindow = 30 * 24 * time.Hour
	topCategories = 5

	highThreshold   = 0.8
	mediumThreshold = 0.5

	// brandSimilarityFloor drops brand-based proposals whose names have
	// nothing to do with the scanned item.
	brandSimilarityFloor = 0.3
)

type (
	RankingService interface {
		RankSuggestions(ctx context.Context, userID string, name string, category string, limit int) ([]domain.Suggestion, error)
		SuggestByBrand(ctx context.Context, userID string, brand string, name string) ([]domain.Suggestion, error)
	}

	rankingService struct {
		matcher         genericproduct.MatcherService
		statsRepository StatsRepository
		now             func() time.Time
	}
)

func NewRankingService(matcher genericproduct.MatcherService, statsRepository StatsRepository, now func() time.Time) RankingService {
	if now == nil {
		now = time.Now
	}
	return &rankingService{
		matcher:         matcher,
		statsRepository: statsRepository,
		now:             now,
	}
}

// RankSuggestions scores matcher candidates by similarity and historical
// popularity, then applies contextual bonuses from the user's shopping
// history. Scores are capped at 1.0 and mapped onto confidence tiers.
func (s *rankingService) RankSuggestions(ctx context.Context, userID string, name string, category string, limit int) ([]domain.Suggestion, error) {
	candidates, err := s.matcher.SuggestGenericProducts(ctx, userID, name, category)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []domain.Suggestion{}, nil
	}

	usage, err := s.statsRepository.GetUsageCounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.statsRepository.GetUsedSince(ctx, userID, s.now().Add(-recencyWindow))
	if err != nil {
		return nil, err
	}
	frequentCategories, err := s.statsRepository.GetTopCategories(ctx, userID, topCategories)
	if err != nil {
		return nil, err
	}
	historical, err := s.statsRepository.GetHistoricalNames(ctx, userID)
	if err != nil {
		return nil, err
	}

	var maxUsage int64
	for _, count := range usage {
		if count > maxUsage {
			maxUsage = count
		}
	}

	hasSharedWord := sharedWordChecker(name, historical)

	suggestions := make([]domain.Suggestion, 0, len(candidates))
	for _, candidate := range candidates {
		id := candidate.Product.ID.String()

		popularity := 0.0
		if maxUsage > 0 {
			popularity = float64(usage[id]) / float64(maxUsage)
		}

		score := similarityWeight*candidate.Similarity + popularityWeight*popularity
		reasons := []string{"matched by " + candidate.Strategy}

		if recent[id] {
			score += recencyBonus
			reasons = append(reasons, "used in the last 30 days")
		}
		if containsString(frequentCategories, candidate.Product.Category) {
			score += categoryBonus
			reasons = append(reasons, "frequent category")
		}
		if hasSharedWord {
			score += wordBonus
			reasons = append(reasons, "shares words with purchase history")
		}
		if score > 1.0 {
			score = 1.0
		}

		suggestions = append(suggestions, domain.Suggestion{
			Product:    toGenericResponse(candidate.Product),
			Similarity: candidate.Similarity,
			Score:      score,
			Reasons:    reasons,
			Confidence: confidenceTier(score),
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}

// SuggestByBrand proposes generic products that already have a specific
// product of the given brand, scored purely by name similarity.
func (s *rankingService) SuggestByBrand(ctx context.Context, userID string, brand string, name string) ([]domain.Suggestion, error) {
	generics, err := s.statsRepository.GetGenericsWithBrand(ctx, userID, brand)
	if err != nil {
		return nil, err
	}

	normalizedName := genericproduct.Normalize(name)

	suggestions := make([]domain.Suggestion, 0, len(generics))
	for _, generic := range generics {
		similarity := genericproduct.Similarity(genericproduct.Normalize(generic.Name), normalizedName)
		if similarity <= brandSimilarityFloor {
			continue
		}
		suggestions = append(suggestions, domain.Suggestion{
			Product:    toGenericResponse(generic),
			Similarity: similarity,
			Score:      similarity,
			Reasons:    []string{"brand already in your products"},
			Confidence: confidenceTier(similarity),
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	return suggestions, nil
}

// sharedWordChecker reports whether the scanned name contains a significant
// word appearing at least twice across the user's historical product names.
func sharedWordChecker(name string, historical []string) bool {
	frequency := make(map[string]int)
	for _, recorded := range historical {
		for _, word := range genericproduct.SignificantWords(recorded) {
			frequency[word]++
		}
	}

	for _, word := range genericproduct.SignificantWords(name) {
		if frequency[word] >= 2 {
			return true
		}
	}
	return false
}

func confidenceTier(score float64) string {
	switch {
	case score >= highThreshold:
		return domain.ConfidenceHigh
	case score >= mediumThreshold:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

func toGenericResponse(product *entities.GenericProduct) domain.GenericProductResponse {
	return domain.GenericProductResponse{
		ID:        product.ID.String(),
		Name:      product.Name,
		Category:  product.Category,
		IsDefault: product.IsDefault,
		CreatedAt: product.CreatedAt,
	}
}
