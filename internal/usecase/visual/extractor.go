package visual

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/errors"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/entities"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/pkg/ai"
)

// PayloadWarnBytes is the encoded batch size above which the face service
// is likely to time out
const PayloadWarnBytes = 4_500_000

// FaceDetector analyses a batch of encoded frames
type FaceDetector interface {
	DetectFaces(ctx context.Context, images [][]byte) ([]ai.FrameFaces, error)
}

// Extractor derives visual features from sampled check-in frames
type Extractor struct {
	detector FaceDetector
	logger   *zap.Logger
}

// NewExtractor creates a visual extractor; logger may be nil
func NewExtractor(detector FaceDetector, logger *zap.Logger) *Extractor {
	return &Extractor{detector: detector, logger: logger}
}

// Extract samples frames, sends them in one batch and computes features.
// NO_VIDEO_DATA, REKOGNITION_NO_FACES and VISUAL_EXTRACTION_FAILED are the possible failures.
func (e *Extractor) Extract(ctx context.Context, media *entities.CapturedMedia) (*entities.VisualFeatures, error) {
	if !media.HasVideo() {
		return nil, errors.ErrNoVideoData()
	}
	if e.detector == nil {
		return nil, errors.ErrVisualExtractionFailed(nil).WithDetail("reason", "face detector not configured")
	}

	start := time.Now()

	images := sampledImages(media)

	if size := ai.EncodedSize(images); size > PayloadWarnBytes && e.logger != nil {
		e.logger.Warn("⚠️ Face batch payload is large, provider may time out",
			zap.Int("payload_bytes", size),
			zap.Int("frames", len(images)),
		)
	}

	results, err := e.detector.DetectFaces(ctx, images)
	if err != nil {
		return nil, errors.ErrVisualExtractionFailed(err)
	}

	faces := 0
	for _, r := range results {
		if r.Face != nil {
			faces++
		}
	}
	if faces == 0 {
		return nil, errors.ErrRekognitionNoFaces(len(images))
	}

	features := computeFeatures(results)

	if e.logger != nil {
		e.logger.Debug("visual features extracted",
			zap.Int("frames_sampled", len(images)),
			zap.Int("faces", faces),
			zap.Float64("quality", features.OverallQuality),
			zap.Duration("elapsed", time.Since(start)),
		)
	}

	return features, nil
}

// SampledPayloadSize is the encoded size of the batch Extract would send
func SampledPayloadSize(media *entities.CapturedMedia) int {
	if !media.HasVideo() {
		return 0
	}
	return ai.EncodedSize(sampledImages(media))
}

func sampledImages(media *entities.CapturedMedia) [][]byte {
	indices := SampleFrames(len(media.Frames), MaxSampledFrames)
	images := make([][]byte, 0, len(indices))
	for _, idx := range indices {
		images = append(images, media.Frames[idx].Image)
	}
	return images
}
