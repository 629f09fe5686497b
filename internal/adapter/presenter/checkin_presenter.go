package presenter

import (
	"gorm.io/datatypes"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/adapter/dto/checkin"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/entities"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/usecase/enrichment"
)

// ToCheckInResponse converts an enrichment result to its response DTO
func ToCheckInResponse(r *enrichment.Result) *checkin.CheckInResponse {
	if r == nil {
		return nil
	}

	warnings := r.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	return &checkin.CheckInResponse{
		Record:         ToRecordResponse(r.Record),
		TextAnalysis:   r.Text,
		AudioFeatures:  r.Audio,
		VisualFeatures: r.Visual,
		Fusion:         r.Fusion,
		Warnings:       warnings,
	}
}

// ToRecordResponse converts a DashboardRecord entity to RecordResponse DTO
func ToRecordResponse(r *entities.DashboardRecord) *checkin.RecordResponse {
	if r == nil {
		return nil
	}

	return &checkin.RecordResponse{
		ID:                  r.ID.String(),
		UserID:              r.UserID,
		SessionID:           r.SessionID,
		Score:               r.Score,
		DirectionOfChange:   string(r.DirectionOfChange),
		Summary:             r.Summary,
		Themes:              stringList(r.Themes),
		Keywords:            stringList(r.Keywords),
		PositiveDrivers:     stringList(r.PositiveDrivers),
		NegativeDrivers:     stringList(r.NegativeDrivers),
		MoodRating:          r.MoodRating,
		RiskLevel:           string(r.RiskLevel),
		RiskReasons:         stringList(r.RiskReasons),
		ContributingFactors: stringList(r.ContributingFactors),
		ImprovementAreas:    stringList(r.ImprovementAreas),
		Confidence:          r.Confidence,
		Uncertainty:         r.Uncertainty,
		FusionMethod:        string(r.FusionMethod),
		Analysis:            r.Analysis.Data(),
		Metadata:            r.Metadata.Data(),
		CreatedAt:           r.CreatedAt,
	}
}

// ToRecordListResponse converts a user's records to RecordListResponse DTO
func ToRecordListResponse(userID string, records []*entities.DashboardRecord) *checkin.RecordListResponse {
	recordResponses := make([]*checkin.RecordResponse, len(records))
	for i, r := range records {
		recordResponses[i] = ToRecordResponse(r)
	}

	return &checkin.RecordListResponse{
		UserID:  userID,
		Records: recordResponses,
		Total:   len(records),
	}
}

// ToBaselineResponse converts a Baseline entity to BaselineResponse DTO
func ToBaselineResponse(b *entities.Baseline) *checkin.BaselineResponse {
	if b == nil {
		return nil
	}

	return &checkin.BaselineResponse{
		UserID:      b.UserID,
		CheckIns:    b.CheckIns,
		MeanScore:   b.ScoreReference(),
		ScoreStdDev: b.Score.StdDev(),
		Audio:       toFeatureStats(b.Audio),
		Visual:      toFeatureStats(b.Visual),
		Text:        toFeatureStats(b.Text),
		UpdatedAt:   b.UpdatedAt,
	}
}

func toFeatureStats(stats entities.BaselineStats) map[string]checkin.FeatureStatResponse {
	out := make(map[string]checkin.FeatureStatResponse, len(stats))
	for name, s := range stats {
		out[name] = checkin.FeatureStatResponse{
			Count:  s.Count,
			Mean:   s.Mean,
			StdDev: s.StdDev(),
		}
	}
	return out
}

func stringList(s datatypes.JSONSlice[string]) []string {
	if s == nil {
		return []string{}
	}
	return []string(s)
}
