package enrichment

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/errors"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/entities"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/pkg/config"
)

const transcript = "I had a pretty good week, classes went fine and I saw my friends."

type fakeAnalyzer struct {
	score float64
	err   error
	calls int
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, transcript string, _ *entities.CheckInContext) (*entities.TextAnalysis, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &entities.TextAnalysis{
		Summary:         "A good week with friends.",
		Themes:          []string{"friends", "studies"},
		Keywords:        []string{"week", "friends"},
		PositiveDrivers: []string{"friends"},
		RiskLevel:       entities.RiskLevelNone,
		MoodRating:      7,
		TextScore:       f.score,
		Uncertainty:     0.2,
		Metadata:        entities.TextMetadata{TranscriptLength: len(transcript), Quality: 0.8},
	}, nil
}

type fakeAudio struct {
	features *entities.AudioFeatures
	err      error
	block    bool
}

func (f *fakeAudio) Extract(ctx context.Context, _ *entities.CapturedMedia) (*entities.AudioFeatures, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.features, f.err
}

type fakeVisual struct {
	features *entities.VisualFeatures
	err      error
}

func (f *fakeVisual) Extract(ctx context.Context, _ *entities.CapturedMedia) (*entities.VisualFeatures, error) {
	return f.features, f.err
}

type fakeBaselines struct {
	mu        sync.Mutex
	data      map[string]*entities.Baseline
	getErr    error
	saveErr   error
	deleteErr error
}

func newFakeBaselines() *fakeBaselines {
	return &fakeBaselines{data: map[string]*entities.Baseline{}}
}

func (f *fakeBaselines) Get(ctx context.Context, userID string) (*entities.Baseline, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	b, ok := f.data[userID]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBaselines) Save(ctx context.Context, b *entities.Baseline) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.data[b.UserID] = b
	return nil
}

func (f *fakeBaselines) Delete(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.data, userID)
	return nil
}

type fakeRecords struct {
	records map[uuid.UUID]*entities.DashboardRecord
	order   []uuid.UUID
	err     error
	listErr error
}

func (f *fakeRecords) Create(ctx context.Context, r *entities.DashboardRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records[r.ID] = r
	f.order = append(f.order, r.ID)
	return nil
}

func (f *fakeRecords) GetByID(ctx context.Context, id uuid.UUID) (*entities.DashboardRecord, error) {
	return f.records[id], nil
}

// ListByUser returns newest first, like the gorm repository
func (f *fakeRecords) ListByUser(ctx context.Context, userID string, limit int) ([]*entities.DashboardRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*entities.DashboardRecord
	for i := len(f.order) - 1; i >= 0; i-- {
		r := f.records[f.order[i]]
		if r.UserID != userID {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func pipelineConfig() config.PipelineConfig {
	return config.PipelineConfig{
		AudioDeadline:  time.Second,
		VisualDeadline: time.Second,
		CheckInTimeout: 5 * time.Second,
	}
}

func audioMedia() *entities.CapturedMedia {
	return &entities.CapturedMedia{Audio: []byte("RIFF"), Duration: 30 * time.Second}
}

func TestEnrich_TextOnly(t *testing.T) {
	svc := NewService(&fakeAnalyzer{score: 72}, nil, nil, nil, nil, pipelineConfig(), nil)

	res, err := svc.Enrich(context.Background(), Request{UserID: "u1", Transcript: transcript})
	if err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}

	if res.Fusion.Score != 72 || res.Record.Score != 72 {
		t.Fatalf("score = %d / %d, want 72", res.Fusion.Score, res.Record.Score)
	}
	if res.Fusion.FusionMethod != entities.FusionMethodTextOnly {
		t.Fatalf("method = %s", res.Fusion.FusionMethod)
	}
	if res.Audio != nil || res.Visual != nil {
		t.Fatal("absent modalities must be nil in the result")
	}
	if res.Record.DirectionOfChange != entities.DirectionSame {
		t.Fatalf("direction = %s", res.Record.DirectionOfChange)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings %v", res.Warnings)
	}
	if res.Record.SessionID == "" {
		t.Fatal("session id should be generated")
	}

	analysis := res.Record.Analysis.Data()
	if analysis.AudioAvailable || analysis.VisualAvailable {
		t.Fatal("placeholders must be flagged unavailable")
	}
	if analysis.Audio != (entities.AudioFeatures{}) {
		t.Fatal("audio placeholder should be zero-valued")
	}
	meta := res.Record.Metadata.Data()
	if meta.TranscriptLength != len(transcript) || meta.SessionID != res.Record.SessionID {
		t.Fatalf("unexpected metadata %+v", meta)
	}
}

func TestEnrich_AudioDegradesGracefully(t *testing.T) {
	tests := []struct {
		name     string
		audio    *fakeAudio
		deadline time.Duration
		reason   string
	}{
		{
			name:     "extraction error",
			audio:    &fakeAudio{err: errors.ErrAudioExtractionFailed(fmt.Errorf("bad header"))},
			deadline: time.Second,
			reason:   "AUDIO_EXTRACTION_FAILED",
		},
		{
			name:     "deadline",
			audio:    &fakeAudio{block: true},
			deadline: 20 * time.Millisecond,
			reason:   "deadline exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := pipelineConfig()
			cfg.AudioDeadline = tt.deadline
			svc := NewService(&fakeAnalyzer{score: 72}, tt.audio, nil, nil, nil, cfg, nil)

			start := time.Now()
			res, err := svc.Enrich(context.Background(), Request{
				UserID:     "u1",
				SessionID:  "s1",
				Transcript: transcript,
				Media:      audioMedia(),
			})
			if err != nil {
				t.Fatalf("Enrich failed: %v", err)
			}
			if time.Since(start) > 2*time.Second {
				t.Fatal("deadline was not enforced")
			}

			if res.Fusion.Score != 72 {
				t.Fatalf("score = %d, want the text score", res.Fusion.Score)
			}
			if res.Audio != nil {
				t.Fatal("failed audio should be absent")
			}
			if len(res.Warnings) != 1 || !strings.HasPrefix(res.Warnings[0], "audio_unavailable: ") {
				t.Fatalf("warnings = %v", res.Warnings)
			}
			if !strings.Contains(res.Warnings[0], tt.reason) {
				t.Fatalf("warning %q should mention %q", res.Warnings[0], tt.reason)
			}
		})
	}
}

func TestEnrich_AllModalities(t *testing.T) {
	audio := &fakeAudio{features: &entities.AudioFeatures{Quality: 0.8, SpeechRatio: 0.6, MeanPitch: 180}}
	visual := &fakeVisual{features: &entities.VisualFeatures{OverallQuality: 0.6, FacePresenceQuality: 1, FramesAnalyzed: 20}}
	svc := NewService(&fakeAnalyzer{score: 72}, audio, visual, nil, nil, pipelineConfig(), nil)

	media := audioMedia()
	media.Frames = []entities.VideoFrame{{Image: []byte{0xff, 0xd8}}, {Image: []byte{0xff, 0xd8}}}

	res, err := svc.Enrich(context.Background(), Request{UserID: "u1", Transcript: transcript, Media: media})
	if err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}

	if res.Fusion.FusionMethod != entities.FusionMethodQualityWeighted {
		t.Fatalf("method = %s", res.Fusion.FusionMethod)
	}
	if res.Fusion.Score < 0 || res.Fusion.Score > 100 {
		t.Fatalf("score out of range: %d", res.Fusion.Score)
	}
	if res.Audio == nil || res.Visual == nil {
		t.Fatal("both optional modalities should be present")
	}
	analysis := res.Record.Analysis.Data()
	if !analysis.AudioAvailable || !analysis.VisualAvailable {
		t.Fatal("availability flags not set")
	}
	if res.Record.Metadata.Data().FramesCaptured != 2 {
		t.Fatal("frames captured not recorded")
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings %v", res.Warnings)
	}
}

func TestEnrich_Errors(t *testing.T) {
	tests := []struct {
		name     string
		analyzer *fakeAnalyzer
		req      Request
		want     errors.ErrorCode
	}{
		{
			name:     "empty transcript",
			analyzer: &fakeAnalyzer{score: 50},
			req:      Request{UserID: "u1", Transcript: "   "},
			want:     errors.ErrorCode_EMPTY_TRANSCRIPT,
		},
		{
			name:     "missing user",
			analyzer: &fakeAnalyzer{score: 50},
			req:      Request{Transcript: transcript},
			want:     errors.ErrorCode_INVALID_ARGUMENT,
		},
		{
			name:     "provider failure propagates",
			analyzer: &fakeAnalyzer{err: errors.ErrTextAnalysisFailed(fmt.Errorf("503"))},
			req:      Request{UserID: "u1", Transcript: transcript},
			want:     errors.ErrorCode_TEXT_ANALYSIS_FAILED,
		},
		{
			name:     "plain analyzer error is wrapped",
			analyzer: &fakeAnalyzer{err: fmt.Errorf("boom")},
			req:      Request{UserID: "u1", Transcript: transcript},
			want:     errors.ErrorCode_TEXT_ANALYSIS_FAILED,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := &fakeRecords{records: map[uuid.UUID]*entities.DashboardRecord{}}
			svc := NewService(tt.analyzer, nil, nil, nil, records, pipelineConfig(), nil)

			res, err := svc.Enrich(context.Background(), tt.req)
			if err == nil {
				t.Fatalf("expected error, got %+v", res)
			}
			if got := errors.CodeOf(err); got != tt.want {
				t.Fatalf("code = %s, want %s", got, tt.want)
			}
			if len(records.records) != 0 {
				t.Fatal("failed enrichment must not persist a record")
			}
		})
	}
}

func TestEnrich_BaselineUpdatedAndUsedForDirection(t *testing.T) {
	store := newFakeBaselines()
	analyzer := &fakeAnalyzer{score: 72}
	svc := NewService(analyzer, nil, nil, store, nil, pipelineConfig(), nil)
	ctx := context.Background()

	if _, err := svc.Enrich(ctx, Request{UserID: "u1", Transcript: transcript}); err != nil {
		t.Fatal(err)
	}

	analyzer.score = 60
	res, err := svc.Enrich(ctx, Request{UserID: "u1", Transcript: transcript})
	if err != nil {
		t.Fatal(err)
	}
	if res.Fusion.DirectionOfChange != entities.DirectionWorse {
		t.Fatalf("direction = %s, want worse against stored mean 72", res.Fusion.DirectionOfChange)
	}

	// an explicit reference wins over the stored mean
	ref := 50.0
	res, err = svc.Enrich(ctx, Request{UserID: "u1", Transcript: transcript, BaselineScore: &ref})
	if err != nil {
		t.Fatal(err)
	}
	if res.Fusion.DirectionOfChange != entities.DirectionBetter {
		t.Fatalf("direction = %s, want better against 50", res.Fusion.DirectionOfChange)
	}

	b, err := svc.GetBaseline(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if b.CheckIns != 3 {
		t.Fatalf("check-ins = %d, want 3", b.CheckIns)
	}
}

func TestEnrich_BaselineStoreFailuresAreWarnings(t *testing.T) {
	store := newFakeBaselines()
	store.getErr = fmt.Errorf("redis down")
	store.saveErr = fmt.Errorf("redis down")
	svc := NewService(&fakeAnalyzer{score: 64}, nil, nil, store, nil, pipelineConfig(), nil)

	res, err := svc.Enrich(context.Background(), Request{UserID: "u1", Transcript: transcript})
	if err != nil {
		t.Fatalf("store failures must not fail the check-in: %v", err)
	}
	if res.Fusion.Score != 64 {
		t.Fatalf("score = %d", res.Fusion.Score)
	}
	if len(res.Warnings) != 2 ||
		!strings.HasPrefix(res.Warnings[0], "baseline_unavailable: ") ||
		!strings.HasPrefix(res.Warnings[1], "baseline_not_saved: ") {
		t.Fatalf("warnings = %v", res.Warnings)
	}
}

func TestEnrich_PersistsRecord(t *testing.T) {
	records := &fakeRecords{records: map[uuid.UUID]*entities.DashboardRecord{}}
	svc := NewService(&fakeAnalyzer{score: 72}, nil, nil, nil, records, pipelineConfig(), nil)
	ctx := context.Background()

	res, err := svc.Enrich(ctx, Request{UserID: "u1", Transcript: transcript})
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.GetRecord(ctx, res.Record.ID)
	if err != nil || got.Score != 72 {
		t.Fatalf("GetRecord = %+v, %v", got, err)
	}

	if _, err := svc.GetRecord(ctx, uuid.New()); errors.CodeOf(err) != errors.ErrorCode_NOT_FOUND {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestEnrich_PersistFailureIsWarning(t *testing.T) {
	records := &fakeRecords{records: map[uuid.UUID]*entities.DashboardRecord{}, err: fmt.Errorf("db down")}
	svc := NewService(&fakeAnalyzer{score: 72}, nil, nil, nil, records, pipelineConfig(), nil)

	res, err := svc.Enrich(context.Background(), Request{UserID: "u1", Transcript: transcript})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Warnings) != 1 || !strings.HasPrefix(res.Warnings[0], "record_not_persisted: ") {
		t.Fatalf("warnings = %v", res.Warnings)
	}
}

func TestListRecords(t *testing.T) {
	records := &fakeRecords{records: map[uuid.UUID]*entities.DashboardRecord{}}
	analyzer := &fakeAnalyzer{score: 72}
	svc := NewService(analyzer, nil, nil, nil, records, pipelineConfig(), nil)
	ctx := context.Background()

	for _, req := range []struct {
		user  string
		score float64
	}{{"u1", 72}, {"u2", 40}, {"u1", 60}} {
		analyzer.score = req.score
		if _, err := svc.Enrich(ctx, Request{UserID: req.user, Transcript: transcript}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := svc.ListRecords(ctx, "u1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Score != 60 || got[1].Score != 72 {
		t.Fatalf("records = %+v, want u1's two records newest first", got)
	}

	got, err = svc.ListRecords(ctx, "u1", 1)
	if err != nil || len(got) != 1 || got[0].Score != 60 {
		t.Fatalf("limited list = %+v, %v", got, err)
	}

	got, err = svc.ListRecords(ctx, "nobody", 0)
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("unknown user should get an empty list, got %v, %v", got, err)
	}

	if _, err := svc.ListRecords(ctx, "u1", -1); errors.CodeOf(err) != errors.ErrorCode_INVALID_ARGUMENT {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
	}

	records.listErr = fmt.Errorf("db down")
	if _, err := svc.ListRecords(ctx, "u1", 0); errors.CodeOf(err) != errors.ErrorCode_DB_QUERY_FAILED {
		t.Fatalf("expected DB_QUERY_FAILED, got %v", err)
	}

	noDB := NewService(analyzer, nil, nil, nil, nil, pipelineConfig(), nil)
	if _, err := noDB.ListRecords(ctx, "u1", 0); errors.CodeOf(err) != errors.ErrorCode_NOT_FOUND {
		t.Fatalf("expected NOT_FOUND without persistence, got %v", err)
	}
}

func TestResetBaseline(t *testing.T) {
	store := newFakeBaselines()
	svc := NewService(&fakeAnalyzer{score: 72}, nil, nil, store, nil, pipelineConfig(), nil)
	ctx := context.Background()

	if _, err := svc.Enrich(ctx, Request{UserID: "u1", Transcript: transcript}); err != nil {
		t.Fatal(err)
	}
	if err := svc.ResetBaseline(ctx, "u1"); err != nil {
		t.Fatalf("ResetBaseline failed: %v", err)
	}
	if _, err := svc.GetBaseline(ctx, "u1"); errors.CodeOf(err) != errors.ErrorCode_NOT_FOUND {
		t.Fatalf("expected NOT_FOUND after reset, got %v", err)
	}

	// the next check-in starts a fresh baseline
	if _, err := svc.Enrich(ctx, Request{UserID: "u1", Transcript: transcript}); err != nil {
		t.Fatal(err)
	}
	b, err := svc.GetBaseline(ctx, "u1")
	if err != nil || b.CheckIns != 1 {
		t.Fatalf("baseline after reset = %+v, %v", b, err)
	}

	store.deleteErr = errors.ErrCacheFailed("delete baseline", fmt.Errorf("redis down"))
	if err := svc.ResetBaseline(ctx, "u1"); errors.CodeOf(err) != errors.ErrorCode_CACHE_FAILED {
		t.Fatalf("expected CACHE_FAILED, got %v", err)
	}

	noStore := NewService(&fakeAnalyzer{score: 72}, nil, nil, nil, nil, pipelineConfig(), nil)
	if err := noStore.ResetBaseline(ctx, "u1"); errors.CodeOf(err) != errors.ErrorCode_NOT_FOUND {
		t.Fatalf("expected NOT_FOUND without a store, got %v", err)
	}
}
