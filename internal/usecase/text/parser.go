package text

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/entities"
)

// providerResponse mirrors the JSON object requested from the provider
type providerResponse struct {
	Summary         string   `json:"summary"`
	Themes          []string `json:"themes"`
	Keywords        []string `json:"keywords"`
	PositiveDrivers []string `json:"positive_drivers"`
	NegativeDrivers []string `json:"negative_drivers"`
	RiskLevel       string   `json:"risk_level"`
	RiskReasons     []string `json:"risk_reasons"`
	MoodRating      float64  `json:"mood_rating"`
	TextScore       *float64 `json:"text_score"`
	Uncertainty     *float64 `json:"uncertainty"`
}

var riskAliases = map[string]entities.RiskLevel{
	"":         entities.RiskLevelNone,
	"none":     entities.RiskLevelNone,
	"low":      entities.RiskLevelMild,
	"mild":     entities.RiskLevelMild,
	"medium":   entities.RiskLevelModerate,
	"moderate": entities.RiskLevelModerate,
	"high":     entities.RiskLevelHigh,
	"severe":   entities.RiskLevelHigh,
}

// parseProviderResponse decodes and validates the provider's answer
func parseProviderResponse(content string) (*entities.TextAnalysis, error) {
	content = extractJSON(content)

	var resp providerResponse
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if strings.TrimSpace(resp.Summary) == "" {
		return nil, fmt.Errorf("missing summary in response")
	}
	if resp.TextScore == nil {
		return nil, fmt.Errorf("missing text_score in response")
	}
	risk, ok := riskAliases[strings.ToLower(strings.TrimSpace(resp.RiskLevel))]
	if !ok {
		return nil, fmt.Errorf("invalid risk_level %q", resp.RiskLevel)
	}

	uncertainty := 0.5
	if resp.Uncertainty != nil {
		uncertainty = *resp.Uncertainty
	}
	mood := resp.MoodRating
	if mood == 0 {
		mood = math.Round(*resp.TextScore / 10)
	}

	return &entities.TextAnalysis{
		Summary:         strings.TrimSpace(resp.Summary),
		Themes:          nonNil(resp.Themes),
		Keywords:        nonNil(resp.Keywords),
		PositiveDrivers: nonNil(resp.PositiveDrivers),
		NegativeDrivers: nonNil(resp.NegativeDrivers),
		RiskLevel:       risk,
		RiskReasons:     nonNil(resp.RiskReasons),
		MoodRating:      int(clamp(math.Round(mood), 1, 10)),
		TextScore:       clamp(*resp.TextScore, 0, 100),
		Uncertainty:     clamp(uncertainty, 0, 1),
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// extractJSON strips markdown code fences some models wrap around JSON
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
