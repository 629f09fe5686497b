package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/pkg/config"
)

func TestDetectFaces_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/faces/batch-detect" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var req batchDetectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if len(req.Frames) != 3 {
			t.Fatalf("expected 3 frames, got %d", len(req.Frames))
		}
		if raw, _ := base64.StdEncoding.DecodeString(req.Frames[1].Image); string(raw) != "frame-1" {
			t.Fatalf("frame not base64 encoded: %q", req.Frames[1].Image)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{"index": 0, "faces": []map[string]interface{}{
					{"confidence": 80, "smile": map[string]interface{}{"value": true, "confidence": 90}},
					{"confidence": 99, "smile": map[string]interface{}{"value": false, "confidence": 70}},
				}},
				{"index": 2, "faces": []map[string]interface{}{
					{"confidence": 95, "pose": map[string]float64{"yaw": 5, "pitch": -3, "roll": 1}},
				}},
			},
		})
	}))
	defer ts.Close()

	client := NewFaceClient(&config.FacesConfig{BaseURL: ts.URL})
	frames, err := client.DetectFaces(context.Background(), [][]byte{[]byte("frame-0"), []byte("frame-1"), []byte("frame-2")})
	if err != nil {
		t.Fatalf("DetectFaces failed: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("expected 3 results, got %d", len(frames))
	}
	if frames[0].Face == nil || frames[0].Face.Confidence != 99 {
		t.Fatalf("expected most confident face for frame 0, got %+v", frames[0].Face)
	}
	if frames[1].Face != nil {
		t.Fatalf("expected no face for frame 1")
	}
	if frames[2].Face == nil || frames[2].Face.Pose.Yaw != 5 {
		t.Fatalf("unexpected frame 2 %+v", frames[2].Face)
	}
}

func TestDetectFaces_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewFaceClient(&config.FacesConfig{BaseURL: ts.URL})
	if _, err := client.DetectFaces(context.Background(), [][]byte{[]byte("x")}); err == nil {
		t.Fatal("expected error")
	}
}

func TestTopEmotionAndEncodedSize(t *testing.T) {
	f := &FaceDetail{Emotions: []Emotion{{EmotionCalm, 20}, {EmotionHappy, 75}, {EmotionSad, 5}}}
	top, ok := f.TopEmotion()
	if !ok || top.Type != EmotionHappy {
		t.Fatalf("unexpected top emotion %+v", top)
	}
	if _, ok := (&FaceDetail{}).TopEmotion(); ok {
		t.Fatal("expected no emotion on empty face")
	}

	if got := EncodedSize([][]byte{make([]byte, 3), make([]byte, 4)}); got != 4+8 {
		t.Fatalf("EncodedSize = %d", got)
	}
}
