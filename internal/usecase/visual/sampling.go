package visual

import "sort"

// MaxSampledFrames bounds the batch sent to the face service
const MaxSampledFrames = 20

// SampleFrames picks at most max frame indices evenly across n frames
// (index = i*n/max). The first and last frames are always included; when
// the even grid misses the last frame it replaces the final grid point.
func SampleFrames(n, max int) []int {
	if n <= 0 || max <= 0 {
		return nil
	}
	if n <= max {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all
	}

	seen := make(map[int]bool, max)
	picked := make([]int, 0, max)
	for i := 0; i < max; i++ {
		idx := i * n / max
		if !seen[idx] {
			seen[idx] = true
			picked = append(picked, idx)
		}
	}

	if !seen[0] {
		picked = append([]int{0}, picked...)
	}
	if !seen[n-1] {
		if len(picked) >= max {
			picked = picked[:max-1]
		}
		picked = append(picked, n-1)
	}

	sort.Ints(picked)
	return picked
}
