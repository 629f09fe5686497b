package audio

const (
	speechThresholdFactor = 1.5
	speechPercentile      = 0.40
	minSegmentSec         = 0.200
	segmentEpsilon        = 1e-9
)

// segment is a run of speech or silence, in seconds
type segment struct {
	start  float64
	end    float64
	speech bool
}

func (s segment) duration() float64 {
	return s.end - s.start
}

// segmentSpeech classifies energy frames against 1.5x the 40th percentile
// energy and returns merged speech/silence segments
func segmentSpeech(energies []float64, frameSec float64) []segment {
	if len(energies) == 0 {
		return nil
	}

	threshold := speechThresholdFactor * percentile(energies, speechPercentile)

	var runs []segment
	for i, e := range energies {
		speech := e > threshold
		start := float64(i) * frameSec
		end := float64(i+1) * frameSec
		if n := len(runs); n > 0 && runs[n-1].speech == speech {
			runs[n-1].end = end
			continue
		}
		runs = append(runs, segment{start: start, end: end, speech: speech})
	}

	return mergeShortSegments(runs, minSegmentSec)
}

// mergeShortSegments folds any segment shorter than minDur into its
// predecessor, then joins neighbours of the same class
func mergeShortSegments(segs []segment, minDur float64) []segment {
	merged := make([]segment, 0, len(segs))
	for _, s := range segs {
		if n := len(merged); n > 0 && s.duration() < minDur-segmentEpsilon {
			merged[n-1].end = s.end
			continue
		}
		merged = append(merged, s)
	}

	out := merged[:0]
	for _, s := range merged {
		if n := len(out); n > 0 && out[n-1].speech == s.speech {
			out[n-1].end = s.end
			continue
		}
		out = append(out, s)
	}
	return out
}

func speechSegments(segs []segment) []segment {
	var out []segment
	for _, s := range segs {
		if s.speech {
			out = append(out, s)
		}
	}
	return out
}

// interiorPauses returns silence segments that have speech on both sides
func interiorPauses(segs []segment) []segment {
	var out []segment
	for i := 1; i < len(segs)-1; i++ {
		if !segs[i].speech && segs[i-1].speech && segs[i+1].speech {
			out = append(out, segs[i])
		}
	}
	return out
}

func inSpeech(segs []segment, t float64) bool {
	for _, s := range segs {
		if s.speech && t >= s.start && t < s.end {
			return true
		}
	}
	return false
}
