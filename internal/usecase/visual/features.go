package visual

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/entities"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/pkg/ai"
)

const (
	smileConfidence     = 50.0
	mouthOpenConfidence = 50.0
	eyebrowConfidence   = 30.0
	gazeToleranceDeg    = 15.0
	angleScaleDeg       = 30.0
	arousalEpsilon      = 1e-6
)

// computeFeatures derives visual features from per-frame face analysis.
// It expects at least one frame with a face.
func computeFeatures(frames []ai.FrameFaces) *entities.VisualFeatures {
	valid := make([]*ai.FaceDetail, 0, len(frames))
	for _, fr := range frames {
		if fr.Face != nil {
			valid = append(valid, fr.Face)
		}
	}

	f := &entities.VisualFeatures{FramesAnalyzed: len(frames)}
	if len(valid) == 0 {
		return f
	}
	n := float64(len(valid))

	var (
		smiling, raised, furrowed, mouthOpen, eyeContact int
		smileConf, symmetry                              []float64
		yaws, pitches                                    []float64
		detection, imageQuality                          []float64
		frameValence                                     []float64
	)
	emotionTotals := map[string]float64{}

	for _, face := range valid {
		if face.Smile.Value && face.Smile.Confidence > smileConfidence {
			smiling++
			smileConf = append(smileConf, face.Smile.Confidence/100)
		}
		if top, ok := face.TopEmotion(); ok && top.Confidence > eyebrowConfidence {
			switch top.Type {
			case ai.EmotionSurprised:
				raised++
			case ai.EmotionAngry, ai.EmotionConfused:
				furrowed++
			}
		}
		if face.MouthOpen.Value && face.MouthOpen.Confidence > mouthOpenConfidence {
			mouthOpen++
		}
		symmetry = append(symmetry, math.Max(0, 1-math.Abs(face.Pose.Roll)/angleScaleDeg))

		if math.Abs(face.Pose.Yaw) < gazeToleranceDeg && math.Abs(face.Pose.Pitch) < gazeToleranceDeg {
			eyeContact++
		}
		yaws = append(yaws, face.Pose.Yaw)
		pitches = append(pitches, face.Pose.Pitch)

		scores := emotionScores(face)
		for label, v := range scores {
			emotionTotals[label] += v
		}
		frameValence = append(frameValence, valence(scores))

		detection = append(detection, face.Confidence/100)
		imageQuality = append(imageQuality, (face.Quality.Brightness+face.Quality.Sharpness)/2/100)
	}

	// Facial expression
	f.SmileFrequency = float64(smiling) / n
	f.SmileIntensity = mean(smileConf)
	f.EyebrowRaiseFrequency = float64(raised) / n
	f.EyebrowFurrowFrequency = float64(furrowed) / n
	f.MouthTension = 1 - float64(mouthOpen)/n
	f.FacialSymmetry = mean(symmetry)

	// Gaze and attention
	f.EyeContact = float64(eyeContact) / n
	f.GazeStability = math.Max(0, 1-(popStdDev(yaws)+popStdDev(pitches))/2/angleScaleDeg)

	// Movement
	f.HeadMovement = headMovement(valid)
	f.HeadStability = math.Max(0, 1-f.HeadMovement/angleScaleDeg)

	// Affect
	meanEmotion := make(map[string]float64, len(emotionTotals))
	for label, total := range emotionTotals {
		meanEmotion[label] = total / n
	}
	f.EmotionalValence = clamp(valence(meanEmotion), -1, 1)
	f.EmotionalArousal = clamp(arousal(meanEmotion), 0, 1)
	f.EmotionalStability = clamp(1-popStdDev(frameValence), 0, 1)

	// Quality
	f.FacePresenceQuality = float64(len(valid)) / float64(len(frames))
	f.OverallQuality = clamp(0.4*f.FacePresenceQuality+0.3*mean(detection)+0.3*mean(imageQuality), 0, 1)

	return f
}

// emotionScores maps each label to its confidence on a 0-1 scale
func emotionScores(face *ai.FaceDetail) map[string]float64 {
	scores := make(map[string]float64, len(face.Emotions))
	for _, e := range face.Emotions {
		scores[e.Type] = e.Confidence / 100
	}
	return scores
}

func valence(e map[string]float64) float64 {
	positive := e[ai.EmotionHappy] + e[ai.EmotionCalm]
	negative := e[ai.EmotionSad] + e[ai.EmotionAngry] + e[ai.EmotionDisgusted] + e[ai.EmotionFear]
	return positive - negative
}

func arousal(e map[string]float64) float64 {
	high := e[ai.EmotionAngry] + e[ai.EmotionFear] + e[ai.EmotionSurprised] + e[ai.EmotionHappy]
	low := e[ai.EmotionCalm] + e[ai.EmotionSad]
	return high / (high + low + arousalEpsilon)
}

func headMovement(faces []*ai.FaceDetail) float64 {
	if len(faces) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(faces); i++ {
		prev, cur := faces[i-1].Pose, faces[i].Pose
		total += math.Abs(cur.Yaw-prev.Yaw) + math.Abs(cur.Pitch-prev.Pitch) + math.Abs(cur.Roll-prev.Roll)
	}
	return total / float64(len(faces)-1)
}

func mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}

func popStdDev(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return stat.PopStdDev(x, nil)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
