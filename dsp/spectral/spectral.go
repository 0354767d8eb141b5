package spectral

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-eda/dsp/window"
)

var (
	// ErrInsufficientSamples indicates a signal too short for the
	// requested segment length.
	ErrInsufficientSamples = errors.New("spectral: insufficient samples")
	// ErrEmptyBand indicates a frequency band narrower than the spectral
	// resolution, so that no bin falls inside it.
	ErrEmptyBand = errors.New("spectral: no frequency bin in band")
	// ErrInvalidBand indicates a malformed frequency band.
	ErrInvalidBand = errors.New("spectral: invalid frequency band")
)

// PowerSpectrum holds a one-sided power spectral density estimate.
// Frequency is strictly increasing from 0 to the Nyquist frequency and has
// the same length as Power.
type PowerSpectrum struct {
	Frequency []float64
	Power     []float64
}

// Normalized returns a copy of the spectrum with power rescaled so that
// its maximum equals 1. Peak normalization, not total-power normalization.
// A zero spectrum is returned unchanged.
func (ps PowerSpectrum) Normalized() PowerSpectrum {
	out := PowerSpectrum{
		Frequency: append([]float64(nil), ps.Frequency...),
		Power:     append([]float64(nil), ps.Power...),
	}

	peak := 0.0
	for _, p := range out.Power {
		if p > peak {
			peak = p
		}
	}

	if peak == 0 {
		return out
	}

	vecmath.ScaleBlock(out.Power, out.Power, 1/peak)

	return out
}

// Band is a closed frequency interval [Low, High] in Hz.
type Band struct {
	Low  float64
	High float64
}

// Validate checks the band invariant 0 <= Low < High.
func (b Band) Validate() error {
	if b.Low < 0 || b.Low >= b.High {
		return fmt.Errorf("%w: [%g, %g]", ErrInvalidBand, b.Low, b.High)
	}

	return nil
}

// BandPower sums the spectrum samples whose frequency falls inside band
// (inclusive bounds). Welch bins are equally spaced, so the plain sum is
// the discrete band integral; no trapezoidal weighting is applied.
//
// Fails with [ErrEmptyBand] when no bin lies inside the band; the caller
// controls the bin width (sampleRate / segmentLength) and must keep it
// below the band width.
func BandPower(ps PowerSpectrum, band Band) (float64, error) {
	if err := band.Validate(); err != nil {
		return 0, err
	}

	sum := 0.0
	hit := false

	for i, f := range ps.Frequency {
		if f >= band.Low && f <= band.High {
			sum += ps.Power[i]
			hit = true
		}
	}

	if !hit {
		return 0, fmt.Errorf("%w: [%g, %g] Hz", ErrEmptyBand, band.Low, band.High)
	}

	return sum, nil
}

// segmentPSD computes density-scaled one-sided periodograms over
// overlapping windowed segments. Each segment is demeaned (constant
// detrend), windowed, zero-padded to the FFT size and transformed; the
// per-bin power is scaled by 1/(rate*sum(w^2)) with one-sided doubling of
// all bins except DC and Nyquist.
type segmenter struct {
	nperseg int
	step    int
	nfft    int
	bins    int
	scale   float64

	win    []float64
	winBuf []float64
	plan   *algofft.Plan[complex128]

	in  []complex128
	out []complex128
	re  []float64
	im  []float64
}

func newSegmenter(winType window.Type, nperseg, noverlap int, sampleRate float64) (*segmenter, error) {
	nfft := nextPowerOf2(nperseg)

	plan, err := algofft.NewPlan64(nfft)
	if err != nil {
		return nil, fmt.Errorf("spectral: fft plan size %d: %w", nfft, err)
	}

	win := window.Generate(winType, nperseg)
	bins := nfft/2 + 1

	return &segmenter{
		nperseg: nperseg,
		step:    nperseg - noverlap,
		nfft:    nfft,
		bins:    bins,
		scale:   1 / (sampleRate * window.SumSquares(win)),
		win:     win,
		winBuf:  make([]float64, nperseg),
		plan:    plan,
		in:      make([]complex128, nfft),
		out:     make([]complex128, nfft),
		re:      make([]float64, bins),
		im:      make([]float64, bins),
	}, nil
}

// psd fills dst (length bins) with the density-scaled periodogram of
// segment, which must have length nperseg.
func (s *segmenter) psd(dst []float64, segment []float64) error {
	mean := 0.0
	for _, v := range segment {
		mean += v
	}
	mean /= float64(len(segment))

	for i, v := range segment {
		s.winBuf[i] = v - mean
	}
	if err := window.ApplyTo(s.winBuf, s.winBuf, s.win); err != nil {
		return err
	}

	for i := range s.in {
		s.in[i] = 0
	}
	for i, v := range s.winBuf {
		s.in[i] = complex(v, 0)
	}

	if err := s.plan.Forward(s.out, s.in); err != nil {
		return fmt.Errorf("spectral: fft: %w", err)
	}

	for i := 0; i < s.bins; i++ {
		s.re[i] = real(s.out[i])
		s.im[i] = imag(s.out[i])
	}

	vecmath.Power(dst, s.re, s.im)

	for i := range dst {
		dst[i] *= s.scale
		if i != 0 && i != s.bins-1 {
			dst[i] *= 2
		}
	}

	return nil
}

// frequencies returns the one-sided frequency axis of the segmenter.
func (s *segmenter) frequencies(sampleRate float64) []float64 {
	freq := make([]float64, s.bins)
	for i := range freq {
		freq[i] = float64(i) * sampleRate / float64(s.nfft)
	}

	return freq
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
