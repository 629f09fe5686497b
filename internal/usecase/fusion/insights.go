package fusion

import (
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/entities"
)

const (
	MaxContributingFactors = 5
	MaxImprovementAreas    = 3
)

func contributingFactors(t *entities.TextAnalysis, scores entities.ModalityScores) []string {
	out := newCappedList(MaxContributingFactors)

	for _, d := range t.PositiveDrivers {
		out.add(d)
	}

	switch s := t.Linguistic.SentimentScore; {
	case s > 0.3:
		out.add("positive outlook")
	case s < -0.3:
		out.add("low mood expressed")
	}

	if scores.Audio != nil {
		switch {
		case *scores.Audio > 60:
			out.add("energetic speech")
		case *scores.Audio < 40:
			out.add("subdued vocal tone")
		}
	}
	if scores.Visual != nil {
		switch {
		case *scores.Visual > 60:
			out.add("positive facial expressions")
		case *scores.Visual < 40:
			out.add("reduced facial expressiveness")
		}
	}

	return out.items
}

func improvementAreas(t *entities.TextAnalysis, scores entities.ModalityScores) []string {
	out := newCappedList(MaxImprovementAreas)

	if t.RiskLevel == entities.RiskLevelHigh || t.RiskLevel == entities.RiskLevelModerate {
		out.add("consider reaching out to a professional or support service")
	}
	for _, d := range t.NegativeDrivers {
		out.add(d)
	}
	if scores.Audio != nil && *scores.Audio < 40 {
		out.add("rest and recovery")
	}
	if scores.Visual != nil && *scores.Visual < 40 {
		out.add("activities that lift your mood")
	}
	if t.Linguistic.AbsolutistRatio > 0.05 {
		out.add("balanced self-talk")
	}

	return out.items
}

// cappedList keeps unique entries in insertion order up to a limit
type cappedList struct {
	limit int
	seen  map[string]bool
	items []string
}

func newCappedList(limit int) *cappedList {
	return &cappedList{limit: limit, seen: map[string]bool{}, items: []string{}}
}

func (c *cappedList) add(s string) {
	if s == "" || c.seen[s] || len(c.items) >= c.limit {
		return
	}
	c.seen[s] = true
	c.items = append(c.items, s)
}
