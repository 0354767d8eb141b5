package spectral

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-eda/dsp/window"
)

// Spectrogram holds a short-time power spectral density grid.
// Magnitude is indexed [frequencyIndex][timeIndex]; Frequency and Time are
// the corresponding axes in Hz and seconds.
type Spectrogram struct {
	Frequency []float64
	Time      []float64
	Magnitude [][]float64
}

type spectrogramConfig struct {
	segmentLength  int
	window         window.Type
	overlap        int
	overlapSeconds float64
}

// SpectrogramOption configures ComputeSpectrogram.
type SpectrogramOption func(*spectrogramConfig)

// WithSpectrogramSegmentLength sets the per-segment sample count.
// Callers estimating down to a minimum frequency of interest should size
// the segment to span at least five cycles of that frequency:
// round((5 / minFrequency) * rate).
func WithSpectrogramSegmentLength(n int) SpectrogramOption {
	return func(c *spectrogramConfig) {
		if n > 0 {
			c.segmentLength = n
		}
	}
}

// WithSpectrogramWindow selects the segment window (default Hann).
func WithSpectrogramWindow(t window.Type) SpectrogramOption {
	return func(c *spectrogramConfig) {
		c.window = t
	}
}

// WithSpectrogramOverlap sets the segment overlap as a sample count.
// Without this option the overlap defaults to an eighth of the segment.
func WithSpectrogramOverlap(samples int) SpectrogramOption {
	return func(c *spectrogramConfig) {
		if samples >= 0 {
			c.overlap = samples
		}
	}
}

// WithSpectrogramOverlapSeconds sets the segment overlap as a duration,
// converted to round(seconds * sampleRate) samples. A sample-count
// overlap set through WithSpectrogramOverlap takes precedence.
func WithSpectrogramOverlapSeconds(seconds float64) SpectrogramOption {
	return func(c *spectrogramConfig) {
		if seconds >= 0 {
			c.overlapSeconds = seconds
		}
	}
}

// ComputeSpectrogram performs short-time spectral analysis: the same
// windowed, density-scaled periodogram as [Welch], but retaining the time
// axis instead of averaging.
//
// Unlike Welch, a segment length above len(signal) fails with
// [ErrInsufficientSamples]: a spectrogram with a silently shrunken
// segment would misrepresent the minimum frequency it was sized for.
func ComputeSpectrogram(signal []float64, sampleRate float64, opts ...SpectrogramOption) (Spectrogram, error) {
	if sampleRate <= 0 {
		return Spectrogram{}, fmt.Errorf("spectral: sample rate must be > 0, got %g", sampleRate)
	}

	cfg := spectrogramConfig{
		segmentLength:  DefaultSegmentLength,
		window:         window.TypeHann,
		overlap:        -1,
		overlapSeconds: -1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	nperseg := cfg.segmentLength
	if nperseg < 2 {
		return Spectrogram{}, fmt.Errorf("%w: segment length %d < 2", ErrInsufficientSamples, nperseg)
	}
	if nperseg > len(signal) {
		return Spectrogram{}, fmt.Errorf("%w: segment length %d exceeds signal length %d",
			ErrInsufficientSamples, nperseg, len(signal))
	}

	noverlap := cfg.overlap
	if noverlap < 0 && cfg.overlapSeconds >= 0 {
		noverlap = int(math.Round(cfg.overlapSeconds * sampleRate))
	}
	if noverlap < 0 {
		noverlap = nperseg / 8
	}
	if noverlap >= nperseg {
		noverlap = nperseg - 1
	}

	seg, err := newSegmenter(cfg.window, nperseg, noverlap, sampleRate)
	if err != nil {
		return Spectrogram{}, err
	}

	columns := 1 + (len(signal)-nperseg)/seg.step

	sg := Spectrogram{
		Frequency: seg.frequencies(sampleRate),
		Time:      make([]float64, 0, columns),
		Magnitude: make([][]float64, seg.bins),
	}
	for i := range sg.Magnitude {
		sg.Magnitude[i] = make([]float64, 0, columns)
	}

	col := make([]float64, seg.bins)

	for start := 0; start+nperseg <= len(signal); start += seg.step {
		if err := seg.psd(col, signal[start:start+nperseg]); err != nil {
			return Spectrogram{}, err
		}

		sg.Time = append(sg.Time, (float64(start)+float64(nperseg)/2)/sampleRate)
		for i, v := range col {
			sg.Magnitude[i] = append(sg.Magnitude[i], v)
		}
	}

	return sg, nil
}
