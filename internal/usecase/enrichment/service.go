package enrichment

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/errors"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/entities"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/repositories"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/usecase/fusion"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/usecase/text"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/usecase/visual"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/pkg/config"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/pkg/jobcontext"
)

// AudioExtractor derives acoustic features from the captured audio
type AudioExtractor interface {
	Extract(ctx context.Context, media *entities.CapturedMedia) (*entities.AudioFeatures, error)
}

// VisualExtractor derives facial features from the captured frames
type VisualExtractor interface {
	Extract(ctx context.Context, media *entities.CapturedMedia) (*entities.VisualFeatures, error)
}

// Request is one check-in to enrich
type Request struct {
	UserID     string
	SessionID  string
	Transcript string
	Media      *entities.CapturedMedia
	Context    *entities.CheckInContext

	// BaselineScore overrides the stored baseline as the direction reference
	BaselineScore *float64
}

// Result is the assembled record plus what produced it
type Result struct {
	Record   *entities.DashboardRecord
	Text     *entities.TextAnalysis
	Audio    *entities.AudioFeatures
	Visual   *entities.VisualFeatures
	Fusion   *entities.FusionResult
	Warnings []string
}

// Service runs the enrichment pipeline
type Service interface {
	Enrich(ctx context.Context, req Request) (*Result, error)
	GetRecord(ctx context.Context, id uuid.UUID) (*entities.DashboardRecord, error)
	ListRecords(ctx context.Context, userID string, limit int) ([]*entities.DashboardRecord, error)
	GetBaseline(ctx context.Context, userID string) (*entities.Baseline, error)
	ResetBaseline(ctx context.Context, userID string) error
}

type enrichmentService struct {
	analyzer  text.Analyzer
	audio     AudioExtractor
	visual    VisualExtractor
	baselines repositories.BaselineStore
	records   repositories.DashboardRepository
	cfg       config.PipelineConfig
	logger    *zap.Logger
}

// NewService wires the pipeline. audio, visual, baselines and records may be
// nil: the matching step is skipped.
func NewService(
	analyzer text.Analyzer,
	audio AudioExtractor,
	visual VisualExtractor,
	baselines repositories.BaselineStore,
	records repositories.DashboardRepository,
	cfg config.PipelineConfig,
	logger *zap.Logger,
) Service {
	return &enrichmentService{
		analyzer:  analyzer,
		audio:     audio,
		visual:    visual,
		baselines: baselines,
		records:   records,
		cfg:       cfg,
		logger:    logger,
	}
}

// Enrich analyses the transcript, races the optional extractors against
// their deadlines, fuses whatever succeeded and assembles the record
func (s *enrichmentService) Enrich(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Transcript) == "" {
		return nil, errors.ErrEmptyTranscript()
	}
	if req.UserID == "" {
		return nil, errors.ErrInvalidArgument("user_id is required")
	}
	if s.analyzer == nil {
		return nil, errors.ErrInternal(fmt.Errorf("text analyzer not configured"))
	}
	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}

	ctx, cancel := jobcontext.CheckInBegin(ctx, req.SessionID, req.UserID, s.checkInTimeout())
	defer cancel()
	startedAt, _ := jobcontext.GetStartTime(ctx)

	if s.logger != nil {
		s.logger.Info("🚀 Enrichment started",
			zap.String("session_id", req.SessionID),
			zap.String("user_id", req.UserID),
			zap.Bool("has_audio", req.Media.HasAudio()),
			zap.Bool("has_video", req.Media.HasVideo()),
		)
	}

	analysis, err := s.analyzer.Analyze(ctx, req.Transcript, req.Context)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Text analysis failed",
				zap.String("session_id", req.SessionID),
				zap.Error(err),
			)
		}
		var appErr errors.AppError
		if stdErrors.As(err, &appErr) {
			return nil, err
		}
		return nil, errors.ErrTextAnalysisFailed(err)
	}

	var warnings []string
	audioOut, visualOut := s.extract(ctx, req.Media)
	if req.Media.HasAudio() && !audioOut.Ok() {
		warnings = append(warnings, "audio_unavailable: "+audioOut.Reason())
	}
	if req.Media.HasVideo() && !visualOut.Ok() {
		warnings = append(warnings, "visual_unavailable: "+visualOut.Reason())
	}
	if size := visual.SampledPayloadSize(req.Media); size > visual.PayloadWarnBytes {
		warnings = append(warnings, fmt.Sprintf("visual_payload_large: %d bytes", size))
	}

	baseline, err := s.loadBaseline(ctx, req.UserID)
	if err != nil {
		warnings = append(warnings, "baseline_unavailable: "+err.Error())
	}

	audioFeatures, _ := audioOut.Get()
	visualFeatures, _ := visualOut.Get()

	fused, err := fusion.Fuse(fusion.Input{
		Text:          analysis,
		Audio:         audioFeatures,
		Visual:        visualFeatures,
		Baseline:      baseline,
		BaselineScore: req.BaselineScore,
	})
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Fusion failed",
				zap.String("session_id", req.SessionID),
				zap.Error(err),
			)
		}
		return nil, err
	}
	fused.ProcessingTime = time.Since(startedAt)

	record := AssembleRecord(AssemblyInput{
		UserID:         req.UserID,
		SessionID:      req.SessionID,
		Transcript:     req.Transcript,
		Text:           analysis,
		Audio:          audioOut,
		Visual:         visualOut,
		Fusion:         fused,
		Media:          req.Media,
		StartedAt:      startedAt,
		ProcessingTime: fused.ProcessingTime,
	})

	if err := s.updateBaseline(ctx, req.UserID, baseline, fused.Score, analysis, audioFeatures, visualFeatures); err != nil {
		warnings = append(warnings, "baseline_not_saved: "+err.Error())
	}

	if s.records != nil {
		if err := s.records.Create(ctx, record); err != nil {
			if s.logger != nil {
				s.logger.Error("❌ Failed to persist dashboard record",
					zap.String("session_id", req.SessionID),
					zap.Error(err),
				)
			}
			warnings = append(warnings, "record_not_persisted: "+err.Error())
		}
	}

	if s.logger != nil {
		s.logger.Info("✅ Enrichment completed",
			zap.String("session_id", req.SessionID),
			zap.Int("score", fused.Score),
			zap.String("direction", string(fused.DirectionOfChange)),
			zap.String("fusion_method", string(fused.FusionMethod)),
			zap.Float64("uncertainty", fused.Uncertainty),
			zap.Int("warnings", len(warnings)),
			zap.Duration("elapsed", fused.ProcessingTime),
		)
	}

	return &Result{
		Record:   record,
		Text:     analysis,
		Audio:    audioFeatures,
		Visual:   visualFeatures,
		Fusion:   fused,
		Warnings: warnings,
	}, nil
}

// extract runs audio and visual extraction concurrently, each under its own
// deadline. Branch failures never cancel the other branch.
func (s *enrichmentService) extract(ctx context.Context, media *entities.CapturedMedia) (entities.Outcome[entities.AudioFeatures], entities.Outcome[entities.VisualFeatures]) {
	audioOut := entities.Unavailable[entities.AudioFeatures]("no audio captured")
	visualOut := entities.Unavailable[entities.VisualFeatures]("no video captured")

	var g errgroup.Group

	if media.HasAudio() {
		if s.audio == nil {
			audioOut = entities.Unavailable[entities.AudioFeatures]("audio extractor not configured")
		} else {
			g.Go(func() error {
				f, err := jobcontext.Bounded(ctx, s.cfg.AudioDeadline, func(c context.Context) (*entities.AudioFeatures, error) {
					return s.audio.Extract(c, media)
				})
				if err != nil {
					s.logDegraded(ctx, entities.ModalityAudio, err)
					audioOut = entities.Unavailable[entities.AudioFeatures](err.Error())
					return nil
				}
				audioOut = entities.Available(f)
				return nil
			})
		}
	}

	if media.HasVideo() {
		if s.visual == nil {
			visualOut = entities.Unavailable[entities.VisualFeatures]("visual extractor not configured")
		} else {
			g.Go(func() error {
				f, err := jobcontext.Bounded(ctx, s.cfg.VisualDeadline, func(c context.Context) (*entities.VisualFeatures, error) {
					return s.visual.Extract(c, media)
				})
				if err != nil {
					s.logDegraded(ctx, entities.ModalityVisual, err)
					visualOut = entities.Unavailable[entities.VisualFeatures](err.Error())
					return nil
				}
				visualOut = entities.Available(f)
				return nil
			})
		}
	}

	_ = g.Wait()
	return audioOut, visualOut
}

func (s *enrichmentService) logDegraded(ctx context.Context, m entities.Modality, err error) {
	if s.logger == nil {
		return
	}
	meta := jobcontext.GetCheckInMetadata(ctx)
	s.logger.Warn("⚠️ Modality unavailable, continuing without it",
		zap.String("session_id", meta.SessionID),
		zap.String("modality", string(m)),
		zap.String("code", errors.CodeOf(err).String()),
		zap.Bool("deadline", stdErrors.Is(err, jobcontext.ErrDeadlineExceeded)),
		zap.Error(err),
	)
}

func (s *enrichmentService) loadBaseline(ctx context.Context, userID string) (*entities.Baseline, error) {
	if s.baselines == nil {
		return nil, nil
	}
	b, err := s.baselines.Get(ctx, userID)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("⚠️ Failed to load baseline", zap.String("user_id", userID), zap.Error(err))
		}
		return nil, err
	}
	return b, nil
}

func (s *enrichmentService) updateBaseline(
	ctx context.Context,
	userID string,
	baseline *entities.Baseline,
	score int,
	analysis *entities.TextAnalysis,
	audio *entities.AudioFeatures,
	visual *entities.VisualFeatures,
) error {
	if s.baselines == nil {
		return nil
	}
	if baseline == nil {
		baseline = entities.NewBaseline(userID)
	}
	baseline.Observe(score, analysis, audio, visual)

	if err := s.baselines.Save(ctx, baseline); err != nil {
		if s.logger != nil {
			s.logger.Warn("⚠️ Failed to save baseline", zap.String("user_id", userID), zap.Error(err))
		}
		return err
	}
	return nil
}

func (s *enrichmentService) checkInTimeout() time.Duration {
	if s.cfg.CheckInTimeout > 0 {
		return s.cfg.CheckInTimeout
	}
	return 30 * time.Second
}

// GetRecord returns a persisted record
func (s *enrichmentService) GetRecord(ctx context.Context, id uuid.UUID) (*entities.DashboardRecord, error) {
	if s.records == nil {
		return nil, errors.ErrNotFound("dashboard record")
	}
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, errors.ErrDBQueryFailed("get dashboard record", err)
	}
	if record == nil {
		return nil, errors.ErrNotFound("dashboard record")
	}
	return record, nil
}

// ListRecords returns the user's most recent records, newest first. A limit
// of zero uses the repository default.
func (s *enrichmentService) ListRecords(ctx context.Context, userID string, limit int) ([]*entities.DashboardRecord, error) {
	if userID == "" {
		return nil, errors.ErrInvalidArgument("user_id is required")
	}
	if limit < 0 {
		return nil, errors.ErrInvalidArgument("limit must not be negative")
	}
	if s.records == nil {
		return nil, errors.ErrNotFound("dashboard records")
	}
	records, err := s.records.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, errors.ErrDBQueryFailed("list dashboard records", err)
	}
	if records == nil {
		records = []*entities.DashboardRecord{}
	}
	return records, nil
}

// GetBaseline returns the user's stored baseline
func (s *enrichmentService) GetBaseline(ctx context.Context, userID string) (*entities.Baseline, error) {
	if s.baselines == nil {
		return nil, errors.ErrNotFound("baseline")
	}
	b, err := s.baselines.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, errors.ErrNotFound("baseline")
	}
	return b, nil
}

// ResetBaseline drops the user's baseline so the next check-in starts a new one
func (s *enrichmentService) ResetBaseline(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.ErrInvalidArgument("user_id is required")
	}
	if s.baselines == nil {
		return errors.ErrNotFound("baseline")
	}
	if err := s.baselines.Delete(ctx, userID); err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Failed to reset baseline", zap.String("user_id", userID), zap.Error(err))
		}
		return err
	}

	if s.logger != nil {
		s.logger.Info("🗑️ Baseline reset", zap.String("user_id", userID))
	}
	return nil
}
