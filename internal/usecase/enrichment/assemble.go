package enrichment

import (
	"time"
	"unicode/utf8"

	"gorm.io/datatypes"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/entities"
)

// AssemblyInput is everything one record is built from
type AssemblyInput struct {
	UserID         string
	SessionID      string
	Transcript     string
	Text           *entities.TextAnalysis
	Audio          entities.Outcome[entities.AudioFeatures]
	Visual         entities.Outcome[entities.VisualFeatures]
	Fusion         *entities.FusionResult
	Media          *entities.CapturedMedia
	StartedAt      time.Time
	ProcessingTime time.Duration
}

// AssembleRecord builds the dashboard record. Absent modalities are stored as
// zero-valued placeholders so every record has the same shape.
func AssembleRecord(in AssemblyInput) *entities.DashboardRecord {
	record := entities.NewDashboardRecord(in.UserID, in.SessionID)

	analysis := entities.ModalityAnalysis{}
	if a, ok := in.Audio.Get(); ok {
		analysis.Audio = *a
		analysis.AudioAvailable = true
	}
	if v, ok := in.Visual.Get(); ok {
		analysis.Visual = *v
		analysis.VisualAvailable = true
	}

	if t := in.Text; t != nil {
		record.Summary = t.Summary
		record.Themes = nonNil(t.Themes)
		record.Keywords = nonNil(t.Keywords)
		record.PositiveDrivers = nonNil(t.PositiveDrivers)
		record.NegativeDrivers = nonNil(t.NegativeDrivers)
		record.MoodRating = t.MoodRating
		record.RiskLevel = t.RiskLevel
		record.RiskReasons = nonNil(t.RiskReasons)
		analysis.Text = *t
	}

	if f := in.Fusion; f != nil {
		record.Score = f.Score
		record.DirectionOfChange = f.DirectionOfChange
		record.ContributingFactors = nonNil(f.ContributingFactors)
		record.ImprovementAreas = nonNil(f.ImprovementAreas)
		record.Confidence = f.OverallConfidence
		record.Uncertainty = f.Uncertainty
		record.FusionMethod = f.FusionMethod
		analysis.Fusion = *f
	}

	meta := entities.RecordMetadata{
		SessionID:        in.SessionID,
		TranscriptLength: utf8.RuneCountInString(in.Transcript),
		StartedAt:        in.StartedAt.UTC(),
		ProcessingTimeMs: in.ProcessingTime.Milliseconds(),
	}
	if in.Media != nil {
		meta.DurationSeconds = in.Media.Duration.Seconds()
		meta.FramesCaptured = len(in.Media.Frames)
	}

	record.Analysis = datatypes.NewJSONType(analysis)
	record.Metadata = datatypes.NewJSONType(meta)

	return record
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
