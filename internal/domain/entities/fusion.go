package entities

import "time"

// Modality names one input channel of a check-in
type Modality string

const (
	ModalityText   Modality = "text"
	ModalityAudio  Modality = "audio"
	ModalityVisual Modality = "visual"
)

// Direction is the qualitative change against the personal baseline
type Direction string

const (
	DirectionBetter Direction = "better"
	DirectionSame   Direction = "same"
	DirectionWorse  Direction = "worse"
)

// FusionMethod is the strategy actually used to combine modality scores
type FusionMethod string

const (
	FusionMethodTextOnly        FusionMethod = "text-only"
	FusionMethodEqual           FusionMethod = "equal"
	FusionMethodQualityWeighted FusionMethod = "quality-weighted"
)

// ModalityScores holds the normalized 0-100 score per modality; nil means absent
type ModalityScores struct {
	Text   *float64 `json:"text"`
	Audio  *float64 `json:"audio"`
	Visual *float64 `json:"visual"`
}

// Available counts modalities that produced a score
func (s ModalityScores) Available() int {
	n := 0
	for _, v := range []*float64{s.Text, s.Audio, s.Visual} {
		if v != nil {
			n++
		}
	}
	return n
}

// ModalityConfidences holds the 0-1 confidence per modality
type ModalityConfidences struct {
	Text   float64 `json:"text"`
	Audio  float64 `json:"audio"`
	Visual float64 `json:"visual"`
}

// FusionResult is the combined outcome of one check-in
type FusionResult struct {
	Score               int                 `json:"score"`
	DirectionOfChange   Direction           `json:"direction_of_change"`
	Uncertainty         float64             `json:"uncertainty"`
	ModalityScores      ModalityScores      `json:"modality_scores"`
	Confidences         ModalityConfidences `json:"confidences"`
	OverallConfidence   float64             `json:"overall_confidence"`
	ContributingFactors []string            `json:"contributing_factors"`
	ImprovementAreas    []string            `json:"improvement_areas"`
	FusionMethod        FusionMethod        `json:"fusion_method"`
	ProcessingTime      time.Duration       `json:"processing_time"`
}
