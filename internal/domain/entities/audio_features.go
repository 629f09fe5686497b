package entities

// AudioFeatures are the acoustic features of one check-in recording
type AudioFeatures struct {
	// Pitch and prosody
	MeanPitch         float64  `json:"mean_pitch"`
	PitchRange        float64  `json:"pitch_range"`
	PitchVariability  float64  `json:"pitch_variability"`
	PitchContourSlope float64  `json:"pitch_contour_slope"`
	Jitter            *float64 `json:"jitter"`
	Shimmer           float64  `json:"shimmer"`
	HarmonicRatio     float64  `json:"harmonic_ratio"`
	PitchDynamics     float64  `json:"pitch_dynamics"`

	// Timing and rhythm
	SpeechRatio       float64 `json:"speech_ratio"`
	SpeakingRate      float64 `json:"speaking_rate"`
	ArticulationRate  float64 `json:"articulation_rate"`
	PauseFrequency    float64 `json:"pause_frequency"`
	MeanPauseDuration float64 `json:"mean_pause_duration"`
	FilledPauseCount  float64 `json:"filled_pause_count"`
	SilenceDuration   float64 `json:"silence_duration"`

	// Energy and intensity
	MeanEnergy         float64 `json:"mean_energy"`
	EnergyVariability  float64 `json:"energy_variability"`
	EnergyTrend        float64 `json:"energy_trend"`
	EnergyRange        float64 `json:"energy_range"`
	StressPatternCount float64 `json:"stress_pattern_count"`

	// Voice quality
	SpectralCentroid float64 `json:"spectral_centroid"`
	SpectralFlux     float64 `json:"spectral_flux"`
	VoicedRatio      float64 `json:"voiced_ratio"`

	Quality  float64 `json:"quality"`
	Duration float64 `json:"duration"`
}

// FeatureVector returns the features that take part in baseline comparison.
// Jitter is included only when defined.
func (f *AudioFeatures) FeatureVector() map[string]float64 {
	v := map[string]float64{
		"mean_pitch":          f.MeanPitch,
		"pitch_variability":   f.PitchVariability,
		"pitch_dynamics":      f.PitchDynamics,
		"speech_ratio":        f.SpeechRatio,
		"speaking_rate":       f.SpeakingRate,
		"pause_frequency":     f.PauseFrequency,
		"mean_pause_duration": f.MeanPauseDuration,
		"mean_energy":         f.MeanEnergy,
		"energy_variability":  f.EnergyVariability,
		"spectral_centroid":   f.SpectralCentroid,
		"voiced_ratio":        f.VoicedRatio,
	}
	if f.Jitter != nil {
		v["jitter"] = *f.Jitter
	}
	return v
}
