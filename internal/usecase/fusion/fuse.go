package fusion

import (
	"time"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/errors"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/entities"
)

const (
	missingModalityPenalty = 0.1
	noBaselinePenalty      = 0.1

	// DirectionThreshold is the score difference that counts as a change
	DirectionThreshold = 5.0
)

// Input is everything one fusion pass needs. Audio and Visual are nil when
// the modality is absent; Baseline may be nil for a first check-in.
// BaselineScore overrides the stored baseline mean as the direction reference.
type Input struct {
	Text          *entities.TextAnalysis
	Audio         *entities.AudioFeatures
	Visual        *entities.VisualFeatures
	Baseline      *entities.Baseline
	BaselineScore *float64
}

// Fuse normalizes every available modality, combines the scores and derives
// uncertainty, direction of change and insights
func Fuse(in Input) (*entities.FusionResult, error) {
	start := time.Now()

	if in.Text == nil {
		return nil, errors.ErrNoValidModalities()
	}

	var (
		scores      entities.ModalityScores
		confidences entities.ModalityConfidences
	)

	textScore := NormalizeModality(in.Text, in.Baseline.StatsFor(entities.ModalityText))
	scores.Text = &textScore
	confidences.Text = in.Text.Confidence()

	if in.Audio != nil {
		s := NormalizeModality(in.Audio, in.Baseline.StatsFor(entities.ModalityAudio))
		scores.Audio = &s
		confidences.Audio = in.Audio.Quality
	}
	if in.Visual != nil {
		s := NormalizeModality(in.Visual, in.Baseline.StatsFor(entities.ModalityVisual))
		scores.Visual = &s
		confidences.Visual = in.Visual.OverallQuality
	}

	result, err := Combine(scores, confidences)
	if err != nil {
		return nil, err
	}

	reference := in.BaselineScore
	if reference == nil {
		reference = in.Baseline.ScoreReference()
	}

	result.Uncertainty = Uncertainty(result.OverallConfidence, scores.Available(), hasUsableBaseline(in.Baseline))
	result.DirectionOfChange = DirectionOfChange(result.Score, reference)
	result.ContributingFactors = contributingFactors(in.Text, scores)
	result.ImprovementAreas = improvementAreas(in.Text, scores)
	result.ProcessingTime = time.Since(start)

	return result, nil
}

// Uncertainty is 1 - overall confidence, raised for every missing modality
// and for a missing baseline
func Uncertainty(overallConfidence float64, available int, hasBaseline bool) float64 {
	u := 1 - clamp(overallConfidence, 0, 1)
	if missing := 3 - available; missing > 0 {
		u += missingModalityPenalty * float64(missing)
	}
	if !hasBaseline {
		u += noBaselinePenalty
	}
	return clamp(u, 0, 1)
}

// DirectionOfChange compares the score to the reference; no reference means "same"
func DirectionOfChange(score int, reference *float64) entities.Direction {
	if reference == nil {
		return entities.DirectionSame
	}
	diff := float64(score) - *reference
	switch {
	case diff > DirectionThreshold:
		return entities.DirectionBetter
	case diff < -DirectionThreshold:
		return entities.DirectionWorse
	}
	return entities.DirectionSame
}

func hasUsableBaseline(b *entities.Baseline) bool {
	if b == nil {
		return false
	}
	return b.Text.Usable() || b.Audio.Usable() || b.Visual.Usable()
}
