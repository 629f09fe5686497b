package audio

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/errors"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/entities"
)

// Extractor computes acoustic features from a check-in recording
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates an audio extractor; logger may be nil
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract decodes the captured audio and returns its features. Failures are
// returned as recoverable AUDIO_EXTRACTION_FAILED errors; missing audio is NO_AUDIO_DATA.
// The caller owns the deadline through ctx.
func (e *Extractor) Extract(ctx context.Context, media *entities.CapturedMedia) (*entities.AudioFeatures, error) {
	if !media.HasAudio() {
		return nil, errors.ErrNoAudioData()
	}

	start := time.Now()

	features, err := e.extract(ctx, media.Audio)
	if err != nil {
		return nil, errors.ErrAudioExtractionFailed(err)
	}

	if e.logger != nil {
		e.logger.Debug("audio features extracted",
			zap.Float64("duration_s", features.Duration),
			zap.Float64("quality", features.Quality),
			zap.Duration("elapsed", time.Since(start)),
		)
	}

	return features, nil
}

func (e *Extractor) extract(ctx context.Context, data []byte) (*entities.AudioFeatures, error) {
	samples, rate, err := decodeWAV(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio: %w", err)
	}
	originalSec := float64(len(samples)) / float64(rate)

	signal := downsample(boundDuration(samples, rate), rate, targetRate)
	if rate > targetRate {
		rate = targetRate
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f0, err := pitchTrack(ctx, centreWindow(signal, rate), rate)
	if err != nil {
		return nil, fmt.Errorf("pitch tracking interrupted: %w", err)
	}

	energies := frameRMS(signal, rate, energyFrameSec)
	segs := segmentSpeech(energies, energyFrameSec)
	totalSec := float64(len(signal)) / float64(rate)

	features := &entities.AudioFeatures{Duration: originalSec}
	applyPitchFeatures(features, f0)
	applyTimingFeatures(features, segs, totalSec)
	applyEnergyFeatures(features, energies, segs, energyFrameSec)

	centroid, flux, err := spectralShape(ctx, signal, rate)
	if err != nil {
		return nil, fmt.Errorf("spectral analysis interrupted: %w", err)
	}
	features.SpectralCentroid = centroid
	features.SpectralFlux = flux
	features.VoicedRatio = voicedRatio(f0)

	features.Quality = quality(features, len(speechSegments(segs)))

	return features, nil
}
