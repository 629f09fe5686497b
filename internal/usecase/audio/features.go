package audio

import (
	"math"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/entities"
)

const (
	syllablesPerSecond = 2.5
	filledPauseMinSec  = 0.100
	filledPauseMaxSec  = 0.500
	stressPeakFraction = 0.6

	qualityFloor = 0.3
)

func validPitch(f0 []float64) []float64 {
	valid := make([]float64, 0, len(f0))
	for _, v := range f0 {
		if v >= minF0 && v <= maxF0 {
			valid = append(valid, v)
		}
	}
	return valid
}

func applyPitchFeatures(f *entities.AudioFeatures, f0 []float64) {
	valid := validPitch(f0)

	f.MeanPitch = mean(valid)
	f.PitchRange = valueRange(valid)
	f.PitchVariability = popStdDev(valid)
	f.PitchContourSlope = linearTrend(valid)
	f.Jitter = jitter(valid)
	f.PitchDynamics = meanAbsDelta(valid)
	// shimmer and harmonic ratio are not computed by this pass
	f.Shimmer = 0
	f.HarmonicRatio = 0
}

func applyTimingFeatures(f *entities.AudioFeatures, segs []segment, totalSec float64) {
	if totalSec <= 0 {
		return
	}

	speechTime := 0.0
	filled := 0
	for _, s := range speechSegments(segs) {
		d := s.duration()
		speechTime += d
		if d >= filledPauseMinSec-segmentEpsilon && d <= filledPauseMaxSec+segmentEpsilon {
			filled++
		}
	}

	pauses := interiorPauses(segs)
	pauseTime := 0.0
	for _, p := range pauses {
		pauseTime += p.duration()
	}

	syllables := speechTime * syllablesPerSecond

	f.SpeechRatio = clamp(speechTime/totalSec, 0, 1)
	f.SpeakingRate = syllables / totalSec
	if speechTime > 0 {
		f.ArticulationRate = syllables / speechTime
	}
	f.PauseFrequency = float64(len(pauses)) / (totalSec / 60)
	if len(pauses) > 0 {
		f.MeanPauseDuration = pauseTime / float64(len(pauses))
	}
	f.FilledPauseCount = float64(filled)
	f.SilenceDuration = math.Max(0, totalSec-speechTime)
}

func applyEnergyFeatures(f *entities.AudioFeatures, energies []float64, segs []segment, frameSec float64) {
	voiced := make([]float64, 0, len(energies))
	for i, e := range energies {
		centre := (float64(i) + 0.5) * frameSec
		if inSpeech(segs, centre) {
			voiced = append(voiced, e)
		}
	}

	f.MeanEnergy = mean(voiced)
	f.EnergyVariability = popStdDev(voiced)
	f.EnergyTrend = linearTrend(voiced)
	f.EnergyRange = valueRange(voiced)
	f.StressPatternCount = float64(countPeaks(voiced, stressPeakFraction))
}

func voicedRatio(f0 []float64) float64 {
	if len(f0) == 0 {
		return 0
	}
	voiced := 0
	for _, v := range f0 {
		if v > 0 {
			voiced++
		}
	}
	return float64(voiced) / float64(len(f0))
}

// quality starts at 1 and is penalised multiplicatively for implausible
// pitch, little speech, low energy and too few speech segments
func quality(f *entities.AudioFeatures, speechSegmentCount int) float64 {
	q := 1.0
	if f.MeanPitch == 0 || f.MeanPitch < minF0 || f.MeanPitch > 400 {
		q *= 0.7
	}
	if f.SpeechRatio < 0.3 {
		q *= 0.8
	}
	if f.MeanEnergy < 0.001 {
		q *= 0.7
	}
	if speechSegmentCount < 3 {
		q *= 0.6
	}
	return clamp(q, qualityFloor, 1)
}
