package entities

// VisualFeatures are facial and behavioural features derived from sampled frames
type VisualFeatures struct {
	// Facial expression
	SmileFrequency         float64 `json:"smile_frequency"`
	SmileIntensity         float64 `json:"smile_intensity"`
	EyebrowRaiseFrequency  float64 `json:"eyebrow_raise_frequency"`
	EyebrowFurrowFrequency float64 `json:"eyebrow_furrow_frequency"`
	MouthTension           float64 `json:"mouth_tension"`
	FacialSymmetry         float64 `json:"facial_symmetry"`

	// Gaze and attention
	EyeContact    float64 `json:"eye_contact"`
	GazeStability float64 `json:"gaze_stability"`

	// Movement and behaviour
	HeadMovement  float64 `json:"head_movement"`
	HeadStability float64 `json:"head_stability"`

	// Affect
	EmotionalValence   float64 `json:"emotional_valence"`
	EmotionalArousal   float64 `json:"emotional_arousal"`
	EmotionalStability float64 `json:"emotional_stability"`

	FacePresenceQuality float64 `json:"face_presence_quality"`
	OverallQuality      float64 `json:"overall_quality"`
	FramesAnalyzed      int     `json:"frames_analyzed"`
}

// FeatureVector returns the features that take part in baseline comparison
func (f *VisualFeatures) FeatureVector() map[string]float64 {
	return map[string]float64{
		"smile_frequency":     f.SmileFrequency,
		"smile_intensity":     f.SmileIntensity,
		"eye_contact":         f.EyeContact,
		"gaze_stability":      f.GazeStability,
		"head_stability":      f.HeadStability,
		"emotional_valence":   f.EmotionalValence,
		"emotional_arousal":   f.EmotionalArousal,
		"emotional_stability": f.EmotionalStability,
	}
}
