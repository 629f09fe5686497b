package fusion

import (
	"math"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/entities"
)

const (
	neutralScore = 50.0

	zScale = 25.0
	zClip  = 3.0
)

// Features is a modality feature set that can be compared against a baseline
type Features interface {
	FeatureVector() map[string]float64
}

// lowerIsBetter lists features whose increase signals lower wellbeing.
// Their z-scores are inverted before averaging.
var lowerIsBetter = map[string]bool{
	"jitter":              true,
	"pause_frequency":     true,
	"mean_pause_duration": true,
	"negative_word_ratio": true,
	"negation_ratio":      true,
	"absolutist_ratio":    true,
}

// NormalizeModality maps one modality's features onto the 0-100 scale.
// With usable baseline statistics the personal z-score mapping is used,
// otherwise the fixed-point rules for the feature type apply. Text falls
// back to the analyzer's own text score. Neutral text results keep their
// fixed score, and the risk penalty applies on both paths.
func NormalizeModality(features Features, stats entities.BaselineStats) float64 {
	if t, ok := features.(*entities.TextAnalysis); ok && t.Neutral {
		return clamp(t.TextScore, 0, 100)
	}

	if stats.Usable() {
		if score, ok := zScoreScore(features.FeatureVector(), stats); ok {
			if t, isText := features.(*entities.TextAnalysis); isText {
				score = clamp(score-riskPenalty[t.RiskLevel], 0, 100)
			}
			return score
		}
	}

	switch f := features.(type) {
	case *entities.AudioFeatures:
		return NormalizeAudio(f)
	case *entities.VisualFeatures:
		return NormalizeVisual(f)
	case *entities.TextAnalysis:
		return clamp(f.TextScore, 0, 100)
	}
	return neutralScore
}

// zScoreScore averages per-feature z-scores against the baseline and maps
// the mean to 50 + 25*meanZ. Features without enough history are skipped.
func zScoreScore(vector map[string]float64, stats entities.BaselineStats) (float64, bool) {
	var sum float64
	n := 0
	for name, x := range vector {
		s, ok := stats[name]
		if !ok || s.Count < entities.MinBaselineCheckIns {
			continue
		}
		sd := s.StdDev()
		if sd <= 0 {
			continue
		}
		z := clamp((x-s.Mean)/sd, -zClip, zClip)
		if lowerIsBetter[name] {
			z = -z
		}
		sum += z
		n++
	}
	if n == 0 {
		return 0, false
	}
	return clamp(neutralScore+zScale*sum/float64(n), 0, 100), true
}

// NormalizeAudio scores vocal features without a personal baseline
func NormalizeAudio(f *entities.AudioFeatures) float64 {
	if f == nil {
		return neutralScore
	}
	score := neutralScore

	// Prosody
	switch {
	case f.PitchVariability > 30:
		score += 8
	case f.MeanPitch > 0 && f.PitchVariability < 10:
		score -= 8
	}

	// Rate
	switch {
	case f.SpeakingRate >= 1.5 && f.SpeakingRate <= 3.5:
		score += 5
	case f.SpeakingRate < 1:
		score -= 10
	case f.SpeakingRate > 4.5:
		score -= 5
	}

	// Pauses
	if f.PauseFrequency > 20 {
		score -= 8
	}
	switch {
	case f.MeanPauseDuration > 2:
		score -= 8
	case f.MeanPauseDuration >= 0.2 && f.MeanPauseDuration <= 1:
		score += 4
	}

	// Energy
	switch {
	case f.MeanEnergy > 0.05:
		score += 6
	case f.MeanEnergy < 0.01:
		score -= 6
	}
	if f.EnergyVariability > 0.02 {
		score += 4
	}

	if f.HarmonicRatio > 0.5 {
		score += 5
	}

	return clamp(score, 0, 100)
}

// NormalizeVisual scores facial features without a personal baseline
func NormalizeVisual(f *entities.VisualFeatures) float64 {
	if f == nil {
		return neutralScore
	}
	score := neutralScore

	switch {
	case f.SmileFrequency > 0.3:
		score += 10
	case f.SmileFrequency < 0.05:
		score -= 5
	}
	if f.SmileIntensity > 0.6 {
		score += 5
	}

	switch {
	case f.EyeContact > 0.6:
		score += 8
	case f.EyeContact < 0.3:
		score -= 8
	}

	if f.GazeStability > 0.7 {
		score += 4
	}
	switch {
	case f.HeadStability > 0.7:
		score += 4
	case f.HeadStability < 0.3:
		score -= 6
	}

	score += 15 * f.EmotionalValence
	switch {
	case f.EmotionalStability > 0.7:
		score += 4
	case f.EmotionalStability < 0.3:
		score -= 6
	}

	return clamp(score, 0, 100)
}

// riskPenalty is subtracted from the text score
var riskPenalty = map[entities.RiskLevel]float64{
	entities.RiskLevelHigh:     30,
	entities.RiskLevelModerate: 15,
	entities.RiskLevelMild:     5,
}

// NormalizeText scores the linguistic features of a transcript.
// The local analyzer uses it to produce its text score.
func NormalizeText(t *entities.TextAnalysis) float64 {
	if t == nil {
		return neutralScore
	}
	l := t.Linguistic
	score := neutralScore

	score += 30 * l.SentimentScore
	score += 40 * (l.PositiveWordRatio - l.NegativeWordRatio)
	score += 5 * (l.Engagement + l.Expressivity + l.Coherence + l.Certainty - 2)
	score -= 40 * l.NegationRatio
	score -= 60 * l.AbsolutistRatio
	score -= riskPenalty[t.RiskLevel]

	return clamp(score, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
