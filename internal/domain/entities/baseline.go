package entities

import (
	"math"
	"time"
)

// MinBaselineCheckIns is the number of check-ins a feature needs before
// its statistics are used for z-score normalization
const MinBaselineCheckIns = 3

// FeatureStat is a running mean and variance (Welford)
type FeatureStat struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	M2    float64 `json:"m2"`
}

// Add folds one observation into the statistic
func (s *FeatureStat) Add(x float64) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return
	}
	s.Count++
	delta := x - s.Mean
	s.Mean += delta / float64(s.Count)
	s.M2 += delta * (x - s.Mean)
}

// StdDev is the sample standard deviation, 0 with fewer than two observations
func (s FeatureStat) StdDev() float64 {
	if s.Count < 2 {
		return 0
	}
	return math.Sqrt(s.M2 / float64(s.Count-1))
}

// BaselineStats maps feature name to its running statistic
type BaselineStats map[string]FeatureStat

// Usable reports whether at least one feature has enough history and spread
func (b BaselineStats) Usable() bool {
	for _, s := range b {
		if s.Count >= MinBaselineCheckIns && s.StdDev() > 0 {
			return true
		}
	}
	return false
}

func (b BaselineStats) observe(vector map[string]float64) {
	for name, x := range vector {
		s := b[name]
		s.Add(x)
		b[name] = s
	}
}

// Baseline is a user's personal history summarised per feature
type Baseline struct {
	UserID    string        `json:"user_id"`
	CheckIns  int           `json:"check_ins"`
	Score     FeatureStat   `json:"score"`
	Audio     BaselineStats `json:"audio"`
	Visual    BaselineStats `json:"visual"`
	Text      BaselineStats `json:"text"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewBaseline creates an empty baseline for a user
func NewBaseline(userID string) *Baseline {
	return &Baseline{
		UserID: userID,
		Audio:  BaselineStats{},
		Visual: BaselineStats{},
		Text:   BaselineStats{},
	}
}

// StatsFor returns the statistics for one modality, nil on a nil baseline
func (b *Baseline) StatsFor(m Modality) BaselineStats {
	if b == nil {
		return nil
	}
	switch m {
	case ModalityAudio:
		return b.Audio
	case ModalityVisual:
		return b.Visual
	case ModalityText:
		return b.Text
	}
	return nil
}

// ScoreReference is the mean historical score, nil without history
func (b *Baseline) ScoreReference() *float64 {
	if b == nil || b.Score.Count == 0 {
		return nil
	}
	ref := b.Score.Mean
	return &ref
}

// Observe folds a finished check-in into the baseline. Neutral text results
// count as a check-in but leave the text statistics untouched.
func (b *Baseline) Observe(score int, text *TextAnalysis, audio *AudioFeatures, visual *VisualFeatures) {
	if b.Audio == nil {
		b.Audio = BaselineStats{}
	}
	if b.Visual == nil {
		b.Visual = BaselineStats{}
	}
	if b.Text == nil {
		b.Text = BaselineStats{}
	}

	b.CheckIns++
	b.Score.Add(float64(score))
	if text != nil && !text.Neutral {
		b.Text.observe(text.FeatureVector())
	}
	if audio != nil {
		b.Audio.observe(audio.FeatureVector())
	}
	if visual != nil {
		b.Visual.observe(visual.FeatureVector())
	}
	b.UpdatedAt = time.Now().UTC()
}
