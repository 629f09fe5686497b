package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/pkg/config"
)

// Emotion labels reported by the face-attribute service
const (
	EmotionHappy     = "HAPPY"
	EmotionCalm      = "CALM"
	EmotionSad       = "SAD"
	EmotionAngry     = "ANGRY"
	EmotionConfused  = "CONFUSED"
	EmotionDisgusted = "DISGUSTED"
	EmotionSurprised = "SURPRISED"
	EmotionFear      = "FEAR"
)

type BoundingBox struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Landmark struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Pose angles in degrees
type Pose struct {
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
	Roll  float64 `json:"roll"`
}

type Emotion struct {
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

type BoolAttribute struct {
	Value      bool    `json:"value"`
	Confidence float64 `json:"confidence"`
}

// ImageQuality metrics are on a 0-100 scale
type ImageQuality struct {
	Brightness float64 `json:"brightness"`
	Sharpness  float64 `json:"sharpness"`
}

// FaceDetail is the attribute set for one detected face; confidences are 0-100
type FaceDetail struct {
	Confidence  float64       `json:"confidence"`
	BoundingBox BoundingBox   `json:"bounding_box"`
	Landmarks   []Landmark    `json:"landmarks"`
	Pose        Pose          `json:"pose"`
	Emotions    []Emotion     `json:"emotions"`
	Smile       BoolAttribute `json:"smile"`
	MouthOpen   BoolAttribute `json:"mouth_open"`
	EyesOpen    BoolAttribute `json:"eyes_open"`
	Quality     ImageQuality  `json:"quality"`
}

// TopEmotion returns the highest-confidence emotion label
func (f *FaceDetail) TopEmotion() (Emotion, bool) {
	var top Emotion
	found := false
	for _, e := range f.Emotions {
		if !found || e.Confidence > top.Confidence {
			top = e
			found = true
		}
	}
	return top, found
}

// FrameFaces is the analysis of one submitted frame; Face is nil when no face was found
type FrameFaces struct {
	Index int
	Face  *FaceDetail
}

// FaceClient is a minimal client for the batch face-attribute API
type FaceClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewFaceClient creates a face client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewFaceClient(cfg *config.FacesConfig) *FaceClient {
	var apiKey, base string
	timeout := 10 * time.Second
	if cfg != nil {
		apiKey = cfg.APIKey
		base = cfg.BaseURL
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
	}
	if apiKey == "" {
		apiKey = os.Getenv("FACES_API_KEY")
	}
	if base == "" {
		base = os.Getenv("FACES_BASE_URL")
	}

	return &FaceClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(base, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type batchFrame struct {
	Index int    `json:"index"`
	Image string `json:"image"`
}

type batchDetectRequest struct {
	Frames     []batchFrame `json:"frames"`
	Attributes []string     `json:"attributes"`
}

type batchDetectResponse struct {
	Results []struct {
		Index int          `json:"index"`
		Faces []FaceDetail `json:"faces"`
	} `json:"results"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// EncodedSize returns the size of the frames once base64 encoded for the request
func EncodedSize(images [][]byte) int {
	total := 0
	for _, img := range images {
		total += base64.StdEncoding.EncodedLen(len(img))
	}
	return total
}

// DetectFaces submits all images in one batch call and returns one entry per image,
// in submission order, keeping the most confident face of each frame
func (c *FaceClient) DetectFaces(ctx context.Context, images [][]byte) ([]FrameFaces, error) {
	reqBody := batchDetectRequest{
		Frames:     make([]batchFrame, 0, len(images)),
		Attributes: []string{"ALL"},
	}
	for i, img := range images {
		reqBody.Frames = append(reqBody.Frames, batchFrame{
			Index: i,
			Image: base64.StdEncoding.EncodeToString(img),
		})
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := c.baseURL + "/v1/faces/batch-detect"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("face service returned status %d", resp.StatusCode)
	}

	var dr batchDetectResponse
	if err := json.Unmarshal(body, &dr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if dr.Error != nil {
		return nil, fmt.Errorf("face service error: %s", dr.Error.Message)
	}

	out := make([]FrameFaces, len(images))
	for i := range out {
		out[i].Index = i
	}
	for _, r := range dr.Results {
		if r.Index < 0 || r.Index >= len(out) {
			continue
		}
		out[r.Index].Face = mostConfident(r.Faces)
	}
	return out, nil
}

func mostConfident(faces []FaceDetail) *FaceDetail {
	var best *FaceDetail
	for i := range faces {
		if best == nil || faces[i].Confidence > best.Confidence {
			best = &faces[i]
		}
	}
	return best
}
