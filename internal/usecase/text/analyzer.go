package text

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/entities"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/pkg/ai"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/pkg/config"
)

// MinTranscriptChars is the shortest transcript worth analysing
const MinTranscriptChars = 10

const (
	neutralScore       = 50
	neutralMood        = 5
	neutralUncertainty = 0.9
)

// Analyzer turns a transcript into a structured TextAnalysis.
// Every strategy returns the same result shape.
type Analyzer interface {
	Analyze(ctx context.Context, transcript string, cc *entities.CheckInContext) (*entities.TextAnalysis, error)
}

func tooShort(transcript string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(transcript)) < MinTranscriptChars
}

// NeutralAnalysis is the defined result for transcripts too short to analyse
func NeutralAnalysis(transcript string) *entities.TextAnalysis {
	return neutral(transcript, "Not enough was shared in this check-in to understand how you are feeling.")
}

func neutral(transcript, summary string) *entities.TextAnalysis {
	return &entities.TextAnalysis{
		Summary:         summary,
		Themes:          []string{},
		Keywords:        []string{},
		PositiveDrivers: []string{},
		NegativeDrivers: []string{},
		RiskLevel:       entities.RiskLevelNone,
		RiskReasons:     []string{},
		MoodRating:      neutralMood,
		TextScore:       neutralScore,
		Uncertainty:     neutralUncertainty,
		Neutral:         true,
		Metadata: entities.TextMetadata{
			TranscriptLength: utf8.RuneCountInString(transcript),
		},
	}
}

// NeutralAnalyzer always returns the neutral result. It serves as the
// fallback when the provider is unavailable.
type NeutralAnalyzer struct{}

// Analyze implements Analyzer
func (NeutralAnalyzer) Analyze(ctx context.Context, transcript string, _ *entities.CheckInContext) (*entities.TextAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if tooShort(transcript) {
		return NeutralAnalysis(transcript), nil
	}
	return neutral(transcript, "We couldn't analyse what you shared this time, so this check-in uses a neutral score."), nil
}

type fallbackAnalyzer struct {
	primary  Analyzer
	fallback Analyzer
	logger   *zap.Logger
}

// WithFallback runs fallback whenever primary fails, unless the caller's
// context is already done
func WithFallback(primary, fallback Analyzer, logger *zap.Logger) Analyzer {
	return &fallbackAnalyzer{primary: primary, fallback: fallback, logger: logger}
}

func (f *fallbackAnalyzer) Analyze(ctx context.Context, transcript string, cc *entities.CheckInContext) (*entities.TextAnalysis, error) {
	analysis, err := f.primary.Analyze(ctx, transcript, cc)
	if err == nil {
		return analysis, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	if f.logger != nil {
		f.logger.Warn("⚠️ Text analysis failed, using fallback analyzer", zap.Error(err))
	}
	return f.fallback.Analyze(ctx, transcript, cc)
}

// NewAnalyzer builds the configured strategy and wraps it with the
// configured fallback policy. client is only used by the provider strategy.
func NewAnalyzer(cfg *config.Config, client TextClient, logger *zap.Logger) Analyzer {
	var primary Analyzer
	switch cfg.Pipeline.TextStrategy {
	case config.TextStrategyLexicon:
		return NewLexiconAnalyzer(logger)
	default:
		primary = NewProviderAnalyzer(client, &cfg.LLM, logger)
	}

	switch cfg.Pipeline.TextFallback {
	case config.TextFallbackNeutral:
		return WithFallback(primary, NeutralAnalyzer{}, logger)
	case config.TextFallbackLexicon:
		return WithFallback(primary, NewLexiconAnalyzer(logger), logger)
	}
	return primary
}

// compile-time checks
var (
	_ Analyzer   = (*LexiconAnalyzer)(nil)
	_ Analyzer   = (*ProviderAnalyzer)(nil)
	_ Analyzer   = NeutralAnalyzer{}
	_ TextClient = (*ai.OpenAITextClient)(nil)
)
