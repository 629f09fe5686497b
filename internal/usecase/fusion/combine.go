package fusion

import (
	"fmt"
	"math"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/errors"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/entities"
)

// Combine fuses per-modality scores into one result. The method follows
// from which modalities are present:
//
//	text only            -> text-only
//	text + audio|visual  -> equal
//	text + audio+visual  -> quality-weighted
//
// Only Score, ModalityScores, Confidences, OverallConfidence and
// FusionMethod are filled in.
func Combine(scores entities.ModalityScores, confidences entities.ModalityConfidences) (*entities.FusionResult, error) {
	if scores.Available() == 0 {
		return nil, errors.ErrNoValidModalities()
	}
	if scores.Text == nil {
		return nil, errors.ErrFusionFailed(fmt.Errorf("text score is required"))
	}

	confidences = entities.ModalityConfidences{
		Text:   clamp(confidences.Text, 0, 1),
		Audio:  clamp(confidences.Audio, 0, 1),
		Visual: clamp(confidences.Visual, 0, 1),
	}

	type weighted struct{ score, conf float64 }
	present := []weighted{{*scores.Text, confidences.Text}}
	if scores.Audio != nil {
		present = append(present, weighted{*scores.Audio, confidences.Audio})
	}
	if scores.Visual != nil {
		present = append(present, weighted{*scores.Visual, confidences.Visual})
	}

	var (
		score, overall float64
		method         entities.FusionMethod
	)

	switch len(present) {
	case 1:
		method = entities.FusionMethodTextOnly
		score, overall = present[0].score, present[0].conf

	case 2:
		method = entities.FusionMethodEqual
		for _, p := range present {
			score += p.score
			overall += p.conf
		}
		score /= 2
		overall /= 2

	default:
		method = entities.FusionMethodQualityWeighted
		var total, sq float64
		for _, p := range present {
			total += p.conf
			sq += p.conf * p.conf
		}
		if total == 0 {
			for _, p := range present {
				score += p.score
			}
			score /= float64(len(present))
			overall = 0.5
			break
		}
		for _, p := range present {
			score += p.score * p.conf / total
		}
		overall = sq / total
	}

	if math.IsNaN(score) || math.IsInf(score, 0) {
		return nil, errors.ErrFusionFailed(fmt.Errorf("non-finite fused score"))
	}

	return &entities.FusionResult{
		Score:             int(math.Round(clamp(score, 0, 100))),
		ModalityScores:    scores,
		Confidences:       confidences,
		OverallConfidence: clamp(overall, 0, 1),
		FusionMethod:      method,
	}, nil
}
