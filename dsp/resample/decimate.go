package resample

import (
	"fmt"

	"github.com/cwbudde/algo-eda/dsp/filter"
)

// Anti-aliasing filter convention for integer decimation: a Chebyshev
// Type I lowpass with 0.05 dB passband ripple and cutoff at 0.8 times the
// post-decimation Nyquist frequency.
const (
	decimateRippleDB    = 0.05
	decimateCutoffScale = 0.8
)

// DefaultDecimateOrder is the anti-aliasing filter order used when the
// caller passes order <= 0.
const DefaultDecimateOrder = 8

// Decimate reduces the sample count of signal by the integer factor q.
// An anti-aliasing lowpass of the given order is applied zero-phase before
// keeping every q-th sample; a naive stride would fold high-frequency
// content into the retained band.
//
// Very large factors destabilize the anti-aliasing filter; cascade two
// calls with smaller factors instead (the factors multiply).
func Decimate(signal []float64, q, order int) ([]float64, error) {
	if q < 1 {
		return nil, fmt.Errorf("%w: decimation factor %d < 1", ErrInvalidFactor, q)
	}

	if order <= 0 {
		order = DefaultDecimateOrder
	}

	// filtfilt reflection padding bounds the minimal usable length.
	padlen := 3 * (2*((order+1)/2) + 1)
	if len(signal) <= padlen {
		return nil, fmt.Errorf("%w: order-%d anti-alias filter needs more than %d samples, got %d",
			ErrInvalidFactor, order, padlen, len(signal))
	}

	if q == 1 {
		out := make([]float64, len(signal))
		copy(out, signal)

		return out, nil
	}

	// Normalized design at unit sample rate: cutoff 0.8 * (0.5 / q).
	cutoff := decimateCutoffScale * 0.5 / float64(q)
	sections := filter.Chebyshev1LP(cutoff, order, decimateRippleDB, 1)

	filtered, err := filter.FiltFilt(sections, signal)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFactor, err)
	}

	out := make([]float64, 0, (len(filtered)+q-1)/q)
	for i := 0; i < len(filtered); i += q {
		out = append(out, filtered[i])
	}

	return out, nil
}
