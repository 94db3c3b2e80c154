package suggestion_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"SmartCart-Backend/domain"
	"SmartCart-Backend/entities"
	"SmartCart-Backend/pkg/genericproduct"
	"SmartCart-Backend/pkg/suggestion"
)

type MockMatcherService struct {
	mock.Mock
}

func (m *MockMatcherService) FindGenericProduct(ctx context.Context, userID string, name string, category string) (*entities.GenericProduct, error) {
	args := m.Called(ctx, userID, name, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GenericProduct), args.Error(1)
}

func (m *MockMatcherService) SuggestGenericProducts(ctx context.Context, userID string, name string, category string) ([]genericproduct.MatchCandidate, error) {
	args := m.Called(ctx, userID, name, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]genericproduct.MatchCandidate), args.Error(1)
}

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) GetUsageCounts(ctx context.Context, userID string) (map[string]int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockStatsRepository) GetUsedSince(ctx context.Context, userID string, since time.Time) (map[string]bool, error) {
	args := m.Called(ctx, userID, since)
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockStatsRepository) GetTopCategories(ctx context.Context, userID string, limit int) ([]string, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStatsRepository) GetHistoricalNames(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStatsRepository) GetGenericsWithBrand(ctx context.Context, userID string, brand string) ([]*entities.GenericProduct, error) {
	args := m.Called(ctx, userID, brand)
	return args.Get(0).([]*entities.GenericProduct), args.Error(1)
}

var rankingNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func rankingClock() time.Time { return rankingNow }

func emptyStats(stats *MockStatsRepository, userID string) {
	stats.On("GetUsageCounts", mock.Anything, userID).Return(map[string]int64{}, nil)
	stats.On("GetUsedSince", mock.Anything, userID, rankingNow.Add(-30*24*time.Hour)).Return(map[string]bool{}, nil)
	stats.On("GetTopCategories", mock.Anything, userID, 5).Return([]string{}, nil)
	stats.On("GetHistoricalNames", mock.Anything, userID).Return([]string{}, nil)
}

func TestRankSuggestions_SimilarityAndPopularityWeights(t *testing.T) {
	matcher := new(MockMatcherService)
	stats := new(MockStatsRepository)
	svc := suggestion.NewRankingService(matcher, stats, rankingClock)

	userID := uuid.New().String()
	popular := &entities.GenericProduct{ID: uuid.New(), Name: "Arroz"}
	obscure := &entities.GenericProduct{ID: uuid.New(), Name: "Aveia"}

	matcher.On("SuggestGenericProducts", mock.Anything, userID, "arroz", "").
		Return([]genericproduct.MatchCandidate{
			{Product: obscure, Similarity: 0.8, Strategy: genericproduct.StrategyFuzzy},
			{Product: popular, Similarity: 0.8, Strategy: genericproduct.StrategyFuzzy},
		}, nil)
	stats.On("GetUsageCounts", mock.Anything, userID).
		Return(map[string]int64{popular.ID.String(): 10, obscure.ID.String(): 5}, nil)
	stats.On("GetUsedSince", mock.Anything, userID, rankingNow.Add(-30*24*time.Hour)).Return(map[string]bool{}, nil)
	stats.On("GetTopCategories", mock.Anything, userID, 5).Return([]string{}, nil)
	stats.On("GetHistoricalNames", mock.Anything, userID).Return([]string{}, nil)

	suggestions, err := svc.RankSuggestions(context.Background(), userID, "arroz", "", 0)

	assert.NoError(t, err)
	assert.Len(t, suggestions, 2)
	// 0.7*0.8 + 0.3*1.0 vs 0.7*0.8 + 0.3*0.5
	assert.Equal(t, "Arroz", suggestions[0].Product.Name)
	assert.InDelta(t, 0.86, suggestions[0].Score, 1e-9)
	assert.InDelta(t, 0.71, suggestions[1].Score, 1e-9)
}

func TestRankSuggestions_BonusesAndCap(t *testing.T) {
	matcher := new(MockMatcherService)
	stats := new(MockStatsRepository)
	svc := suggestion.NewRankingService(matcher, stats, rankingClock)

	userID := uuid.New().String()
	product := &entities.GenericProduct{ID: uuid.New(), Name: "Arroz", Category: "graos"}

	matcher.On("SuggestGenericProducts", mock.Anything, userID, "Arroz Tio João", "").
		Return([]genericproduct.MatchCandidate{
			{Product: product, Similarity: 1.0, Strategy: genericproduct.StrategyExact},
		}, nil)
	stats.On("GetUsageCounts", mock.Anything, userID).
		Return(map[string]int64{product.ID.String(): 3}, nil)
	stats.On("GetUsedSince", mock.Anything, userID, rankingNow.Add(-30*24*time.Hour)).
		Return(map[string]bool{product.ID.String(): true}, nil)
	stats.On("GetTopCategories", mock.Anything, userID, 5).Return([]string{"graos", "bebidas"}, nil)
	stats.On("GetHistoricalNames", mock.Anything, userID).
		Return([]string{"Arroz Camil 1kg", "Arroz Prato Fino"}, nil)

	suggestions, err := svc.RankSuggestions(context.Background(), userID, "Arroz Tio João", "", 0)

	assert.NoError(t, err)
	assert.Len(t, suggestions, 1)
	// 0.7 + 0.3 + all three bonuses, capped.
	assert.Equal(t, 1.0, suggestions[0].Score)
	assert.Equal(t, domain.ConfidenceHigh, suggestions[0].Confidence)
	assert.Contains(t, suggestions[0].Reasons, "matched by exact")
	assert.Contains(t, suggestions[0].Reasons, "used in the last 30 days")
	assert.Contains(t, suggestions[0].Reasons, "frequent category")
	assert.Contains(t, suggestions[0].Reasons, "shares words with purchase history")
}

func TestRankSuggestions_ConfidenceTiers(t *testing.T) {
	matcher := new(MockMatcherService)
	stats := new(MockStatsRepository)
	svc := suggestion.NewRankingService(matcher, stats, rankingClock)

	userID := uuid.New().String()
	strong := &entities.GenericProduct{ID: uuid.New(), Name: "Feijão"}
	middling := &entities.GenericProduct{ID: uuid.New(), Name: "Farinha"}
	weak := &entities.GenericProduct{ID: uuid.New(), Name: "Fubá"}

	matcher.On("SuggestGenericProducts", mock.Anything, userID, "feijao", "").
		Return([]genericproduct.MatchCandidate{
			{Product: strong, Similarity: 1.0, Strategy: genericproduct.StrategyExact},
			{Product: middling, Similarity: 0.75, Strategy: genericproduct.StrategyFuzzy},
			{Product: weak, Similarity: 0.5, Strategy: genericproduct.StrategyFuzzy},
		}, nil)
	stats.On("GetUsageCounts", mock.Anything, userID).
		Return(map[string]int64{strong.ID.String(): 5}, nil)
	stats.On("GetUsedSince", mock.Anything, userID, rankingNow.Add(-30*24*time.Hour)).Return(map[string]bool{}, nil)
	stats.On("GetTopCategories", mock.Anything, userID, 5).Return([]string{}, nil)
	stats.On("GetHistoricalNames", mock.Anything, userID).Return([]string{}, nil)

	suggestions, err := svc.RankSuggestions(context.Background(), userID, "feijao", "", 0)

	assert.NoError(t, err)
	assert.Len(t, suggestions, 3)
	assert.Equal(t, domain.ConfidenceHigh, suggestions[0].Confidence)   // 0.7 + 0.3 popularity
	assert.Equal(t, domain.ConfidenceMedium, suggestions[1].Confidence) // 0.525
	assert.Equal(t, domain.ConfidenceLow, suggestions[2].Confidence)    // 0.35
}

func TestRankSuggestions_Limit(t *testing.T) {
	matcher := new(MockMatcherService)
	stats := new(MockStatsRepository)
	svc := suggestion.NewRankingService(matcher, stats, rankingClock)

	userID := uuid.New().String()
	candidates := make([]genericproduct.MatchCandidate, 0, 4)
	for _, name := range []string{"Arroz", "Aveia", "Amendoim", "Acucar"} {
		candidates = append(candidates, genericproduct.MatchCandidate{
			Product:    &entities.GenericProduct{ID: uuid.New(), Name: name},
			Similarity: 0.8,
			Strategy:   genericproduct.StrategyFuzzy,
		})
	}
	matcher.On("SuggestGenericProducts", mock.Anything, userID, "a", "").Return(candidates, nil)
	emptyStats(stats, userID)

	suggestions, err := svc.RankSuggestions(context.Background(), userID, "a", "", 2)

	assert.NoError(t, err)
	assert.Len(t, suggestions, 2)
}

func TestRankSuggestions_NoCandidatesSkipsStats(t *testing.T) {
	matcher := new(MockMatcherService)
	stats := new(MockStatsRepository)
	svc := suggestion.NewRankingService(matcher, stats, rankingClock)

	userID := uuid.New().String()
	matcher.On("SuggestGenericProducts", mock.Anything, userID, "parafuso", "").
		Return([]genericproduct.MatchCandidate{}, nil)

	suggestions, err := svc.RankSuggestions(context.Background(), userID, "parafuso", "", 0)

	assert.NoError(t, err)
	assert.Empty(t, suggestions)
	stats.AssertNotCalled(t, "GetUsageCounts")
}

func TestSuggestByBrand_FiltersLowSimilarity(t *testing.T) {
	matcher := new(MockMatcherService)
	stats := new(MockStatsRepository)
	svc := suggestion.NewRankingService(matcher, stats, rankingClock)

	userID := uuid.New().String()
	stats.On("GetGenericsWithBrand", mock.Anything, userID, "Nestlé").
		Return([]*entities.GenericProduct{
			{ID: uuid.New(), Name: "Leite"},
			{ID: uuid.New(), Name: "Detergente"},
		}, nil)

	suggestions, err := svc.SuggestByBrand(context.Background(), userID, "Nestlé", "leite")

	assert.NoError(t, err)
	assert.Len(t, suggestions, 1)
	assert.Equal(t, "Leite", suggestions[0].Product.Name)
	assert.Equal(t, []string{"brand already in your products"}, suggestions[0].Reasons)
}
