package audio

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/errors"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/entities"
)

// encodeWAV writes mono 16-bit PCM and returns the file bytes
func encodeWAV(t *testing.T, samples []float64, rate int) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clip.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create wav: %v", err)
	}

	data := make([]int, len(samples))
	for i, v := range samples {
		data[i] = int(math.Round(clamp(v, -1, 1) * 32767))
	}

	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("write wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read wav: %v", err)
	}
	return b
}

// toneBursts alternates 0.5 s of a sine tone with 0.5 s of silence
func toneBursts(rate int, seconds, freq, amp float64) []float64 {
	n := int(seconds * float64(rate))
	half := rate / 2
	out := make([]float64, n)
	for i := range out {
		if (i/half)%2 == 0 {
			out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
		}
	}
	return out
}

func TestExtract_ToneBursts(t *testing.T) {
	data := encodeWAV(t, toneBursts(16000, 6, 200, 0.5), 16000)
	media := &entities.CapturedMedia{Audio: data}

	f, err := NewExtractor(nil).Extract(context.Background(), media)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if math.Abs(f.MeanPitch-200) > 10 {
		t.Fatalf("mean pitch = %.2f, want ~200", f.MeanPitch)
	}
	if f.Jitter == nil || *f.Jitter > 0.05 {
		t.Fatalf("expected small defined jitter, got %v", f.Jitter)
	}
	if math.Abs(f.SpeechRatio-0.5) > 0.05 {
		t.Fatalf("speech ratio = %.3f, want ~0.5", f.SpeechRatio)
	}
	if math.Abs(f.Duration-6) > 0.01 {
		t.Fatalf("duration = %.3f", f.Duration)
	}
	if f.PauseFrequency <= 0 || f.MeanPauseDuration <= 0 {
		t.Fatalf("expected pauses, got freq=%.2f mean=%.2f", f.PauseFrequency, f.MeanPauseDuration)
	}
	if f.MeanEnergy < 0.3 || f.MeanEnergy > 0.4 {
		t.Fatalf("mean energy = %.3f, want ~0.354", f.MeanEnergy)
	}
	if math.Abs(f.VoicedRatio-0.5) > 0.05 {
		t.Fatalf("voiced ratio = %.3f", f.VoicedRatio)
	}
	if f.SpectralCentroid <= 0 || f.SpectralCentroid > 1000 {
		t.Fatalf("spectral centroid = %.1f", f.SpectralCentroid)
	}
	if f.Shimmer != 0 || f.HarmonicRatio != 0 {
		t.Fatal("reserved fields must stay zero")
	}
	if f.Quality != 1 {
		t.Fatalf("quality = %.2f, want 1", f.Quality)
	}
}

func TestExtract_SilenceHitsQualityFloor(t *testing.T) {
	data := encodeWAV(t, make([]float64, 3*16000), 16000)

	f, err := NewExtractor(nil).Extract(context.Background(), &entities.CapturedMedia{Audio: data})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if f.Quality != qualityFloor {
		t.Fatalf("quality = %.3f, want floor %.1f", f.Quality, qualityFloor)
	}
	if f.Jitter != nil {
		t.Fatalf("jitter should be undefined without pitch, got %v", *f.Jitter)
	}
	if f.SpeechRatio != 0 {
		t.Fatalf("speech ratio = %.3f", f.SpeechRatio)
	}
}

func TestExtract_QualityAlwaysInRange(t *testing.T) {
	inputs := map[string][]float64{
		"tone":   toneBursts(8000, 4, 150, 0.3),
		"quiet":  toneBursts(8000, 4, 150, 0.0005),
		"high":   toneBursts(8000, 2, 450, 0.8),
		"silent": make([]float64, 8000),
	}
	for name, samples := range inputs {
		t.Run(name, func(t *testing.T) {
			f, err := NewExtractor(nil).Extract(context.Background(), &entities.CapturedMedia{Audio: encodeWAV(t, samples, 8000)})
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			if f.Quality < 0.3 || f.Quality > 1 {
				t.Fatalf("quality %.3f out of range", f.Quality)
			}
		})
	}
}

func TestExtract_Errors(t *testing.T) {
	ex := NewExtractor(nil)

	_, err := ex.Extract(context.Background(), &entities.CapturedMedia{})
	if errors.CodeOf(err) != errors.ErrorCode_NO_AUDIO_DATA {
		t.Fatalf("expected NO_AUDIO_DATA, got %v", err)
	}

	_, err = ex.Extract(context.Background(), &entities.CapturedMedia{Audio: []byte("definitely not a wav file")})
	if errors.CodeOf(err) != errors.ErrorCode_AUDIO_EXTRACTION_FAILED {
		t.Fatalf("expected AUDIO_EXTRACTION_FAILED, got %v", err)
	}
	if !errors.IsRecoverable(err) {
		t.Fatal("extraction failure must be recoverable")
	}
}

func TestExtract_CancelledContext(t *testing.T) {
	data := encodeWAV(t, toneBursts(8000, 2, 200, 0.5), 8000)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExtractor(nil).Extract(ctx, &entities.CapturedMedia{Audio: data})
	if errors.CodeOf(err) != errors.ErrorCode_AUDIO_EXTRACTION_FAILED {
		t.Fatalf("expected extraction failure on cancelled context, got %v", err)
	}
}
