package text

import (
	"context"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/errors"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/entities"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/pkg/ai"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/pkg/config"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/pkg/jobcontext"
)

// TextClient is the text-understanding service
type TextClient interface {
	AnalyzeCheckIn(ctx context.Context, p ai.CheckInPrompt) (string, error)
}

// ProviderAnalyzer delegates understanding to the external service and
// computes the linguistic features locally
type ProviderAnalyzer struct {
	client          TextClient
	maxRetries      uint64
	initialInterval time.Duration
	logger          *zap.Logger
}

// NewProviderAnalyzer creates a provider-backed analyzer
func NewProviderAnalyzer(client TextClient, cfg *config.LLMConfig, logger *zap.Logger) *ProviderAnalyzer {
	var retries uint64 = 2
	if cfg != nil {
		retries = cfg.MaxRetries
	}
	return &ProviderAnalyzer{
		client:          client,
		maxRetries:      retries,
		initialInterval: 500 * time.Millisecond,
		logger:          logger,
	}
}

// Analyze implements Analyzer. Provider failures surface as TEXT_ANALYSIS_FAILED.
func (a *ProviderAnalyzer) Analyze(ctx context.Context, transcript string, cc *entities.CheckInContext) (*entities.TextAnalysis, error) {
	if tooShort(transcript) {
		return NeutralAnalysis(transcript), nil
	}
	if a.client == nil {
		return nil, errors.ErrTextAnalysisFailed(nil).WithDetail("reason", "text client not configured")
	}

	prompt := ai.CheckInPrompt{Transcript: transcript}
	if cc != nil {
		prompt.PriorThemes = cc.PriorThemes
		prompt.PriorScore = cc.PriorScore
		prompt.PriorDirection = string(cc.PriorDirection)
		prompt.DisplayName = cc.DisplayName
	}

	start := time.Now()
	attempt := 0
	var analysis *entities.TextAnalysis

	operation := func() error {
		attempt++
		content, err := a.client.AnalyzeCheckIn(ctx, prompt)
		if err != nil {
			if !jobcontext.IsRetryableError(err) {
				return backoff.Permanent(err)
			}
			if a.logger != nil {
				a.logger.Warn("🔄 Text provider call failed, retrying",
					zap.Int("attempt", attempt),
					zap.Error(err),
				)
			}
			return err
		}

		parsed, err := parseProviderResponse(content)
		if err != nil {
			if a.logger != nil {
				a.logger.Warn("text provider returned an unusable response",
					zap.Int("attempt", attempt),
					zap.Error(err),
				)
			}
			return err
		}
		analysis = parsed
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = a.initialInterval
	bo.MaxInterval = 4 * time.Second
	bo.MaxElapsedTime = 0

	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(bo, a.maxRetries), ctx)); err != nil {
		if a.logger != nil {
			a.logger.Error("❌ Text analysis failed",
				zap.Int("attempts", attempt),
				zap.Error(err),
			)
		}
		return nil, errors.ErrTextAnalysisFailed(err)
	}

	analysis.Linguistic, analysis.Metadata = computeLinguistic(transcript)

	if a.logger != nil {
		a.logger.Info("✅ Text analysis complete",
			zap.Float64("text_score", analysis.TextScore),
			zap.String("risk_level", string(analysis.RiskLevel)),
			zap.Int("attempts", attempt),
			zap.Duration("elapsed", time.Since(start)),
		)
	}

	return analysis, nil
}
