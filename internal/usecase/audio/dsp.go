package audio

import (
	"context"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

const (
	targetRate     = 8000
	maxDurationSec = 30
	windowSec      = 10

	pitchFrameSec = 0.030
	pitchHopSec   = 0.100
	minF0         = 80.0
	maxF0         = 500.0

	energyFrameSec = 0.020

	spectralWindow     = 512
	spectralMaxWindows = 24

	ctxCheckEvery = 64
)

// boundDuration keeps long recordings representative: anything over 30 s
// becomes the concatenation of 10 s windows from the start, centre and end
func boundDuration(samples []float64, rate int) []float64 {
	if len(samples) <= maxDurationSec*rate {
		return samples
	}

	w := windowSec * rate
	mid := (len(samples) - w) / 2

	out := make([]float64, 0, 3*w)
	out = append(out, samples[:w]...)
	out = append(out, samples[mid:mid+w]...)
	out = append(out, samples[len(samples)-w:]...)
	return out
}

// downsample decimates by nearest sample. It returns data unchanged when
// the source rate is not above the target rate.
func downsample(data []float64, fromRate, toRate int) []float64 {
	if fromRate <= toRate || toRate <= 0 {
		return data
	}

	ratio := float64(fromRate) / float64(toRate)
	n := int(float64(len(data)) / ratio)
	out := make([]float64, n)
	for i := range out {
		idx := int(float64(i) * ratio)
		if idx >= len(data) {
			idx = len(data) - 1
		}
		out[i] = data[idx]
	}
	return out
}

// centreWindow returns the central 10 s of the signal (or all of it if shorter)
func centreWindow(signal []float64, rate int) []float64 {
	w := windowSec * rate
	if len(signal) <= w {
		return signal
	}
	start := (len(signal) - w) / 2
	return signal[start : start+w]
}

// pitchTrack estimates F0 per frame by autocorrelation over the 80-500 Hz lag range.
// Frames without a positive correlation peak get 0.
func pitchTrack(ctx context.Context, x []float64, rate int) ([]float64, error) {
	frameLen := int(pitchFrameSec * float64(rate))
	hop := int(pitchHopSec * float64(rate))
	minLag := int(float64(rate) / maxF0)
	maxLag := int(float64(rate) / minF0)
	if maxLag >= frameLen {
		maxLag = frameLen - 1
	}
	if minLag < 1 {
		minLag = 1
	}
	if frameLen <= 0 || hop <= 0 || minLag > maxLag {
		return nil, nil
	}

	f0 := make([]float64, 0, len(x)/hop+1)
	for start, n := 0, 0; start+frameLen <= len(x); start, n = start+hop, n+1 {
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		frame := x[start : start+frameLen]
		best, bestLag := 0.0, 0
		for lag := minLag; lag <= maxLag; lag++ {
			r := 0.0
			for i := 0; i+lag < frameLen; i++ {
				r += frame[i] * frame[i+lag]
			}
			if r > best {
				best, bestLag = r, lag
			}
		}

		if bestLag == 0 {
			f0 = append(f0, 0)
			continue
		}
		f0 = append(f0, float64(rate)/float64(bestLag))
	}
	return f0, nil
}

// frameRMS computes RMS energy over non-overlapping frames
func frameRMS(x []float64, rate int, frameSec float64) []float64 {
	frameLen := int(frameSec * float64(rate))
	if frameLen <= 0 {
		return nil
	}

	n := len(x) / frameLen
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for _, v := range x[i*frameLen : (i+1)*frameLen] {
			sum += v * v
		}
		out[i] = math.Sqrt(sum / float64(frameLen))
	}
	return out
}

// spectralShape computes the mean spectral centroid (Hz) and mean spectral
// flux over a bounded number of evenly spaced windows. Silent windows are skipped.
func spectralShape(ctx context.Context, x []float64, rate int) (centroid, flux float64, err error) {
	if len(x) < spectralWindow {
		return 0, 0, nil
	}

	count := len(x) / spectralWindow
	if count > spectralMaxWindows {
		count = spectralMaxWindows
	}
	step := 0
	if count > 1 {
		step = (len(x) - spectralWindow) / (count - 1)
	}

	fft := fourier.NewFFT(spectralWindow)
	buf := make([]float64, spectralWindow)
	var coeffs []complex128
	var prev []float64

	var centroids, fluxes []float64
	for w := 0; w < count; w++ {
		if err := ctx.Err(); err != nil {
			return 0, 0, err
		}

		start := w * step
		copy(buf, x[start:start+spectralWindow])
		window.Hann(buf)
		coeffs = fft.Coefficients(coeffs, buf)

		mags := make([]float64, len(coeffs))
		total := 0.0
		for k, c := range coeffs {
			mags[k] = cmplx.Abs(c)
			total += mags[k]
		}
		if total < 1e-12 {
			continue
		}

		weighted := 0.0
		for k, m := range mags {
			weighted += fft.Freq(k) * float64(rate) * m
			mags[k] = m / total
		}
		centroids = append(centroids, weighted/total)

		if prev != nil {
			d := 0.0
			for k := range mags {
				diff := mags[k] - prev[k]
				d += diff * diff
			}
			fluxes = append(fluxes, math.Sqrt(d))
		}
		prev = mags
	}

	return mean(centroids), mean(fluxes), nil
}
