package spectral

import (
	"fmt"

	"github.com/cwbudde/algo-eda/dsp/window"
)

// DefaultSegmentLength is the Welch segment length used when none is
// configured.
const DefaultSegmentLength = 256

type welchConfig struct {
	segmentLength   int
	window          window.Type
	overlap         int
	overlapFraction float64
	normalize       bool
}

// WelchOption configures Welch.
type WelchOption func(*welchConfig)

// WithSegmentLength sets the per-segment sample count.
func WithSegmentLength(n int) WelchOption {
	return func(c *welchConfig) {
		if n > 0 {
			c.segmentLength = n
		}
	}
}

// WithWindow selects the segment window (default Hann).
func WithWindow(t window.Type) WelchOption {
	return func(c *welchConfig) {
		c.window = t
	}
}

// WithOverlap sets the segment overlap as a sample count. Without this
// option the overlap defaults to half the segment length.
func WithOverlap(samples int) WelchOption {
	return func(c *welchConfig) {
		if samples >= 0 {
			c.overlap = samples
		}
	}
}

// WithOverlapFraction sets the overlap as a fraction of the effective
// segment length in [0, 1).
func WithOverlapFraction(fraction float64) WelchOption {
	return func(c *welchConfig) {
		if fraction >= 0 && fraction < 1 {
			c.overlapFraction = fraction
		}
	}
}

// WithNormalize rescales the averaged spectrum to unit peak power.
// Off by default, preserving density units.
func WithNormalize() WelchOption {
	return func(c *welchConfig) {
		c.normalize = true
	}
}

// Welch estimates the one-sided power spectral density of signal by
// averaging periodograms of overlapping windowed segments.
//
// Segment handling policies, chosen to keep long offline records usable:
//   - a segment length above len(signal) is reduced to len(signal);
//   - an overlap at or above the segment length is clamped to one sample
//     less (callers such as the Posada pipeline pass an overlap derived
//     from the full signal length, which can reach the segment length on
//     long records).
func Welch(signal []float64, sampleRate float64, opts ...WelchOption) (PowerSpectrum, error) {
	if sampleRate <= 0 {
		return PowerSpectrum{}, fmt.Errorf("spectral: sample rate must be > 0, got %g", sampleRate)
	}

	cfg := welchConfig{
		segmentLength:   DefaultSegmentLength,
		window:          window.TypeHann,
		overlap:         -1,
		overlapFraction: -1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if len(signal) < 2 {
		return PowerSpectrum{}, fmt.Errorf("%w: need at least 2 samples, got %d", ErrInsufficientSamples, len(signal))
	}

	nperseg := cfg.segmentLength
	if nperseg > len(signal) {
		nperseg = len(signal)
	}

	noverlap := cfg.overlap
	if noverlap < 0 && cfg.overlapFraction >= 0 {
		noverlap = int(cfg.overlapFraction * float64(nperseg))
	}
	if noverlap < 0 {
		noverlap = nperseg / 2
	}
	if noverlap >= nperseg {
		noverlap = nperseg - 1
	}

	seg, err := newSegmenter(cfg.window, nperseg, noverlap, sampleRate)
	if err != nil {
		return PowerSpectrum{}, err
	}

	sum := make([]float64, seg.bins)
	col := make([]float64, seg.bins)
	segments := 0

	for start := 0; start+nperseg <= len(signal); start += seg.step {
		if err := seg.psd(col, signal[start:start+nperseg]); err != nil {
			return PowerSpectrum{}, err
		}

		for i, v := range col {
			sum[i] += v
		}

		segments++
	}

	inv := 1 / float64(segments)
	for i := range sum {
		sum[i] *= inv
	}

	ps := PowerSpectrum{
		Frequency: seg.frequencies(sampleRate),
		Power:     sum,
	}

	if cfg.normalize {
		ps = ps.Normalized()
	}

	return ps, nil
}
