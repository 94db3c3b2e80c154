package domain

// Confidence tiers for ranked suggestions.
const (
	ConfidenceHigh   = "high"   // final score >= 0.8
	ConfidenceMedium = "medium" // final score >= 0.5
	ConfidenceLow    = "low"
)

var (
	MessageSuccessGetSuggestions = "suggestions retrieved successfully"
	MessageFailedGetSuggestions  = "failed to retrieve suggestions"
)

type (
	SuggestGenericProductsRequest struct {
		Name     string `json:"name" validate:"required"`
		Category string `json:"category"`
		Brand    string `json:"brand"`
		Limit    int    `json:"limit" validate:"omitempty,min=1,max=50"`
	}

	// Suggestion is one ranked candidate. Similarity is the raw name
	// similarity; Score folds in popularity and contextual bonuses.
	Suggestion struct {
		Product    GenericProductResponse `json:"product"`
		Similarity float64                `json:"similarity"`
		Score      float64                `json:"score"`
		Reasons    []string               `json:"reasons,omitempty"`
		Confidence string                 `json:"confidence"`
	}
)
