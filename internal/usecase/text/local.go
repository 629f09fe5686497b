package text

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/entities"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/usecase/fusion"
)

const (
	maxKeywords      = 5
	minKeywordLength = 4

	riskHigh     = 3.0
	riskModerate = 1.5
	riskMild     = 0.5
)

// LexiconAnalyzer understands a transcript locally with word lists and
// rule-based risk scoring. It never calls out to a provider.
type LexiconAnalyzer struct {
	logger *zap.Logger
}

// NewLexiconAnalyzer creates a local analyzer; logger may be nil
func NewLexiconAnalyzer(logger *zap.Logger) *LexiconAnalyzer {
	return &LexiconAnalyzer{logger: logger}
}

// Analyze implements Analyzer
func (a *LexiconAnalyzer) Analyze(ctx context.Context, transcript string, _ *entities.CheckInContext) (*entities.TextAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if tooShort(transcript) {
		return NeutralAnalysis(transcript), nil
	}

	linguistic, meta := computeLinguistic(transcript)
	themes, positive, negative := drivers(transcript)

	analysis := &entities.TextAnalysis{
		Themes:          themes,
		Keywords:        keywords(tokenize(transcript)),
		PositiveDrivers: positive,
		NegativeDrivers: negative,
		Linguistic:      linguistic,
		Metadata:        meta,
	}
	analysis.RiskLevel, analysis.RiskReasons = assessRisk(transcript, linguistic, len(positive), len(negative))

	analysis.TextScore = math.Round(fusion.NormalizeText(analysis))
	analysis.MoodRating = moodRating(analysis.TextScore)
	analysis.Uncertainty = clamp(0.6-0.4*meta.Quality, 0.2, 0.9)
	analysis.Summary = summarize(analysis)

	if a.logger != nil {
		a.logger.Debug("lexicon text analysis complete",
			zap.Float64("text_score", analysis.TextScore),
			zap.String("risk_level", string(analysis.RiskLevel)),
			zap.Int("words", int(linguistic.WordCount)),
		)
	}

	return analysis, nil
}

// drivers maps each sentence's topics to positive or negative drivers by
// the sentence's sentiment. Themes are every topic mentioned.
func drivers(transcript string) (themes, positive, negative []string) {
	themes, positive, negative = []string{}, []string{}, []string{}
	seenTheme := map[string]bool{}
	seenPos := map[string]bool{}
	seenNeg := map[string]bool{}

	for _, sent := range sentences(transcript) {
		tokens := tokenize(sent)
		sum, _ := polarity(tokens)

		for _, t := range topics {
			if !mentions(tokens, t.keywords) {
				continue
			}
			if !seenTheme[t.name] {
				seenTheme[t.name] = true
				themes = append(themes, t.name)
			}
			switch {
			case sum > 0 && !seenPos[t.name]:
				seenPos[t.name] = true
				positive = append(positive, t.name)
			case sum < 0 && !seenNeg[t.name]:
				seenNeg[t.name] = true
				negative = append(negative, t.name)
			}
		}
	}
	return themes, positive, negative
}

func mentions(tokens []string, keywords map[string]bool) bool {
	for _, w := range tokens {
		if keywords[w] {
			return true
		}
	}
	return false
}

// keywords returns the most frequent content words, ties broken by first use
func keywords(tokens []string) []string {
	counts := map[string]int{}
	first := map[string]int{}
	for i, w := range tokens {
		if len(w) < minKeywordLength || stopWords[w] {
			continue
		}
		if _, ok := first[w]; !ok {
			first[w] = i
		}
		counts[w]++
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return first[words[i]] < first[words[j]]
	})
	if len(words) > maxKeywords {
		words = words[:maxKeywords]
	}
	return words
}

// assessRisk scores risk signals. Self-harm language is high on its own;
// otherwise the indicators add up.
func assessRisk(transcript string, l entities.LinguisticFeatures, positiveDrivers, negativeDrivers int) (entities.RiskLevel, []string) {
	normalized := strings.Join(tokenize(transcript), " ")
	for _, phrase := range selfHarmPhrases {
		if strings.Contains(normalized, phrase) || strings.Contains(strings.ToLower(transcript), phrase) {
			return entities.RiskLevelHigh, []string{"language suggesting thoughts of self-harm"}
		}
	}

	score := 0.0
	reasons := []string{}
	add := func(points float64, reason string) {
		score += points
		reasons = append(reasons, reason)
	}

	if l.SentimentScore < -0.1 && l.SentimentIntensity > 0.05 {
		add(1, "sustained negative sentiment")
	}
	if l.NegativeWordRatio > 0.1 {
		add(1, "frequent negative words")
	}
	if l.AbsolutistCount > 2 {
		add(1, "absolutist language")
	}
	if l.NegationRatio > 0.05 {
		add(0.5, "frequent negation")
	}
	if l.PastTenseRatio > 0.6 {
		add(0.5, "focus on the past")
	}
	if negativeDrivers >= 3 && positiveDrivers == 0 {
		add(1, "several stressors with no positive counterweight")
	}

	switch {
	case score >= riskHigh:
		return entities.RiskLevelHigh, reasons
	case score >= riskModerate:
		return entities.RiskLevelModerate, reasons
	case score >= riskMild:
		return entities.RiskLevelMild, reasons
	}
	return entities.RiskLevelNone, []string{}
}

func moodRating(score float64) int {
	return int(clamp(math.Round(score/10), 1, 10))
}

func summarize(a *entities.TextAnalysis) string {
	tone := "neutral"
	switch s := a.Linguistic.SentimentScore; {
	case s > 0.2:
		tone = "positive"
	case s < -0.2:
		tone = "negative"
	case a.Linguistic.SentimentIntensity > 0:
		tone = "mixed"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Overall this check-in had a %s tone.", tone)
	if len(a.Themes) > 0 {
		fmt.Fprintf(&b, " Main topics: %s.", strings.Join(a.Themes, ", "))
	}
	if a.RiskLevel == entities.RiskLevelHigh || a.RiskLevel == entities.RiskLevelModerate {
		b.WriteString(" Some of what was shared suggests extra support could help.")
	}
	return b.String()
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
