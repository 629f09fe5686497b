package audio

import (
	"bytes"
	"fmt"

	"github.com/go-audio/wav"
)

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// decodeWAV decodes a PCM WAV stream into mono samples in [-1, 1] at the native rate
func decodeWAV(data []byte) ([]float64, int, error) {
	d := wav.NewDecoder(bytes.NewReader(data))
	if !d.IsValidFile() {
		return nil, 0, fmt.Errorf("not a valid wav stream")
	}
	if d.WavAudioFormat != wavFormatPCM && d.WavAudioFormat != wavFormatExtensible {
		return nil, 0, fmt.Errorf("unsupported wav format %d", d.WavAudioFormat)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read pcm data: %w", err)
	}
	if buf == nil || buf.Format == nil {
		return nil, 0, fmt.Errorf("wav stream has no format")
	}

	channels := buf.Format.NumChannels
	rate := buf.Format.SampleRate
	bitDepth := int(d.BitDepth)
	if channels < 1 || rate <= 0 || bitDepth < 8 {
		return nil, 0, fmt.Errorf("invalid wav format: %d channels, %d Hz, %d bit", channels, rate, bitDepth)
	}

	frames := len(buf.Data) / channels
	if frames == 0 {
		return nil, 0, fmt.Errorf("wav stream contains no samples")
	}

	scale := float64(int64(1) << uint(bitDepth-1))
	// 8-bit PCM is unsigned
	offset := 0
	if bitDepth == 8 {
		offset = 128
	}

	mono := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0
		for c := 0; c < channels; c++ {
			sum += buf.Data[i*channels+c] - offset
		}
		mono[i] = float64(sum) / float64(channels) / scale
	}

	return mono, rate, nil
}
