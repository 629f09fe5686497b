package visual

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/errors"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/entities"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/pkg/ai"
)

type fakeDetector struct {
	sent    int
	results func(n int) []ai.FrameFaces
	err     error
}

func (f *fakeDetector) DetectFaces(_ context.Context, images [][]byte) ([]ai.FrameFaces, error) {
	f.sent = len(images)
	if f.err != nil {
		return nil, f.err
	}
	return f.results(len(images)), nil
}

func calmFace(yaw float64) *ai.FaceDetail {
	return &ai.FaceDetail{
		Confidence: 99,
		Pose:       ai.Pose{Yaw: yaw},
		Smile:      ai.BoolAttribute{Value: true, Confidence: 90},
		MouthOpen:  ai.BoolAttribute{Value: false, Confidence: 80},
		Emotions: []ai.Emotion{
			{Type: ai.EmotionHappy, Confidence: 80},
			{Type: ai.EmotionCalm, Confidence: 20},
		},
		Quality: ai.ImageQuality{Brightness: 80, Sharpness: 60},
	}
}

func mediaWithFrames(n int) *entities.CapturedMedia {
	frames := make([]entities.VideoFrame, n)
	for i := range frames {
		frames[i] = entities.VideoFrame{Image: []byte(fmt.Sprintf("frame-%d", i))}
	}
	return &entities.CapturedMedia{Frames: frames}
}

func TestSampleFrames(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		wantLen  int
		wantLast int
	}{
		{"empty", 0, 0, -1},
		{"fewer than max", 7, 7, 6},
		{"exactly max", 20, 20, 19},
		{"many frames", 100, 20, 99},
		{"just over max", 21, 20, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SampleFrames(tt.n, MaxSampledFrames)
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d (%v)", len(got), tt.wantLen, got)
			}
			if tt.wantLen == 0 {
				return
			}
			if got[0] != 0 {
				t.Fatalf("first frame not included: %v", got)
			}
			if got[len(got)-1] != tt.wantLast {
				t.Fatalf("last = %d, want %d", got[len(got)-1], tt.wantLast)
			}
			for i := 1; i < len(got); i++ {
				if got[i] <= got[i-1] {
					t.Fatalf("indices not strictly increasing: %v", got)
				}
			}
		})
	}
}

func TestComputeFeatures(t *testing.T) {
	f := computeFeatures([]ai.FrameFaces{
		{Index: 0, Face: calmFace(0)},
		{Index: 1, Face: calmFace(10)},
		{Index: 2},
	})

	approx := func(name string, got, want float64) {
		t.Helper()
		if math.Abs(got-want) > 1e-3 {
			t.Errorf("%s = %.4f, want %.4f", name, got, want)
		}
	}

	if f.FramesAnalyzed != 3 {
		t.Errorf("FramesAnalyzed = %d, want 3", f.FramesAnalyzed)
	}
	approx("SmileFrequency", f.SmileFrequency, 1)
	approx("SmileIntensity", f.SmileIntensity, 0.9)
	approx("MouthTension", f.MouthTension, 1)
	approx("FacialSymmetry", f.FacialSymmetry, 1)
	approx("EyeContact", f.EyeContact, 1)
	approx("HeadMovement", f.HeadMovement, 10)
	approx("HeadStability", f.HeadStability, 2.0/3.0)
	approx("GazeStability", f.GazeStability, 1-5.0/2/30)
	approx("EmotionalValence", f.EmotionalValence, 1)
	approx("EmotionalArousal", f.EmotionalArousal, 0.8)
	approx("EmotionalStability", f.EmotionalStability, 1)
	approx("FacePresenceQuality", f.FacePresenceQuality, 2.0/3.0)
	approx("OverallQuality", f.OverallQuality, 0.4*2.0/3.0+0.3*0.99+0.3*0.7)
}

func TestComputeFeatures_EyebrowSignals(t *testing.T) {
	surprised := calmFace(0)
	surprised.Emotions = []ai.Emotion{{Type: ai.EmotionSurprised, Confidence: 60}}
	confused := calmFace(0)
	confused.Emotions = []ai.Emotion{{Type: ai.EmotionConfused, Confidence: 45}}
	weak := calmFace(0)
	weak.Emotions = []ai.Emotion{{Type: ai.EmotionAngry, Confidence: 20}}
	averted := calmFace(40)

	f := computeFeatures([]ai.FrameFaces{{Face: surprised}, {Face: confused}, {Face: weak}, {Face: averted}})

	if f.EyebrowRaiseFrequency != 0.25 {
		t.Errorf("EyebrowRaiseFrequency = %v, want 0.25", f.EyebrowRaiseFrequency)
	}
	if f.EyebrowFurrowFrequency != 0.25 {
		t.Errorf("EyebrowFurrowFrequency = %v, want 0.25", f.EyebrowFurrowFrequency)
	}
	if f.EyeContact != 0.75 {
		t.Errorf("EyeContact = %v, want 0.75", f.EyeContact)
	}
}

func TestExtract_Success(t *testing.T) {
	det := &fakeDetector{results: func(n int) []ai.FrameFaces {
		out := make([]ai.FrameFaces, n)
		for i := range out {
			out[i] = ai.FrameFaces{Index: i, Face: calmFace(0)}
		}
		return out
	}}

	f, err := NewExtractor(det, nil).Extract(context.Background(), mediaWithFrames(90))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if det.sent != MaxSampledFrames {
		t.Fatalf("sent %d frames, want %d", det.sent, MaxSampledFrames)
	}
	if f.OverallQuality <= 0 || f.OverallQuality > 1 {
		t.Fatalf("OverallQuality out of range: %v", f.OverallQuality)
	}
}

func TestExtract_Errors(t *testing.T) {
	noFaces := &fakeDetector{results: func(n int) []ai.FrameFaces {
		return make([]ai.FrameFaces, n)
	}}
	failing := &fakeDetector{err: fmt.Errorf("face service returned status 503")}

	tests := []struct {
		name     string
		detector FaceDetector
		media    *entities.CapturedMedia
		wantCode errors.ErrorCode
	}{
		{"no frames", noFaces, &entities.CapturedMedia{}, errors.ErrorCode_NO_VIDEO_DATA},
		{"nil media", noFaces, nil, errors.ErrorCode_NO_VIDEO_DATA},
		{"no faces", noFaces, mediaWithFrames(5), errors.ErrorCode_REKOGNITION_NO_FACES},
		{"provider failure", failing, mediaWithFrames(5), errors.ErrorCode_VISUAL_EXTRACTION_FAILED},
		{"no detector", nil, mediaWithFrames(5), errors.ErrorCode_VISUAL_EXTRACTION_FAILED},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExtractor(tt.detector, nil).Extract(context.Background(), tt.media)
			if err == nil {
				t.Fatal("expected an error")
			}
			if code := errors.CodeOf(err); code != tt.wantCode {
				t.Fatalf("code = %v, want %v", code, tt.wantCode)
			}
		})
	}
}

func TestSampledPayloadSize(t *testing.T) {
	if got := SampledPayloadSize(nil); got != 0 {
		t.Fatalf("nil media = %d", got)
	}

	media := &entities.CapturedMedia{}
	for i := 0; i < 3; i++ {
		media.Frames = append(media.Frames, entities.VideoFrame{Image: []byte{1, 2, 3}})
	}
	// three bytes encode to four base64 characters
	if got := SampledPayloadSize(media); got != 12 {
		t.Fatalf("payload = %d, want 12", got)
	}
}
