package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/errors"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/adapter/dto/checkin"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/adapter/presenter"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/entities"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/usecase/enrichment"
)

// CheckIn handles check-in enrichment HTTP requests
type CheckIn struct {
	svc    enrichment.Service
	logger *zap.Logger
}

// NewCheckInHandler creates a new check-in handler
func NewCheckInHandler(svc enrichment.Service, logger *zap.Logger) *CheckIn {
	return &CheckIn{svc: svc, logger: logger}
}

// Enrich handles POST /checkins
func (h *CheckIn) Enrich(c echo.Context) error {
	var req checkin.EnrichRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	result, err := h.svc.Enrich(c.Request().Context(), toEnrichmentRequest(&req))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToCheckInResponse(result))
}

// GetRecord handles GET /checkins/:id
func (h *CheckIn) GetRecord(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid record id"))
	}

	record, err := h.svc.GetRecord(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToRecordResponse(record))
}

// ListRecords handles GET /users/:user_id/checkins
func (h *CheckIn) ListRecords(c echo.Context) error {
	var req checkin.ListRecordsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	records, err := h.svc.ListRecords(c.Request().Context(), req.UserID, req.Limit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToRecordListResponse(req.UserID, records))
}

// GetBaseline handles GET /users/:user_id/baseline
func (h *CheckIn) GetBaseline(c echo.Context) error {
	userID := c.Param("user_id")
	if userID == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("user_id is required"))
	}

	baseline, err := h.svc.GetBaseline(c.Request().Context(), userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToBaselineResponse(baseline))
}

// ResetBaseline handles DELETE /users/:user_id/baseline
func (h *CheckIn) ResetBaseline(c echo.Context) error {
	userID := c.Param("user_id")
	if userID == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("user_id is required"))
	}

	if err := h.svc.ResetBaseline(c.Request().Context(), userID); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"user_id": userID,
		"reset":   true,
	})
}

func toEnrichmentRequest(req *checkin.EnrichRequest) enrichment.Request {
	duration := time.Duration(req.DurationSeconds * float64(time.Second))

	media := &entities.CapturedMedia{
		Audio:    req.Audio,
		Duration: duration,
	}
	if req.StartedAt != nil {
		media.StartedAt = req.StartedAt.UTC()
		media.EndedAt = media.StartedAt.Add(duration)
	}
	if len(req.Frames) > 0 {
		media.Frames = make([]entities.VideoFrame, len(req.Frames))
		for i, f := range req.Frames {
			media.Frames[i] = entities.VideoFrame{
				Image:     f.Image,
				Timestamp: time.Duration(f.TimestampMs) * time.Millisecond,
			}
		}
	}

	out := enrichment.Request{
		UserID:        req.UserID,
		SessionID:     req.SessionID,
		Transcript:    req.Transcript,
		Media:         media,
		BaselineScore: req.BaselineScore,
	}

	if cc := req.Context; cc != nil {
		out.Context = &entities.CheckInContext{
			PriorThemes:    cc.PriorThemes,
			PriorScore:     cc.PriorScore,
			PriorDirection: entities.Direction(cc.PriorDirection),
			DisplayName:    cc.DisplayName,
		}
	}

	return out
}
