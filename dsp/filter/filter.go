package filter

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidCutoff indicates a missing or malformed cutoff frequency.
	ErrInvalidCutoff = errors.New("filter: invalid cutoff")
	// ErrShortSignal indicates a signal too short for zero-phase padding.
	ErrShortSignal = errors.New("filter: signal too short")
)

// DefaultOrder is the Butterworth order used when none is configured.
const DefaultOrder = 2

type config struct {
	lowcut  float64
	highcut float64
	order   int
}

// Option configures Apply.
type Option func(*config)

// WithLowcut sets the low cutoff in Hz. Supplying only a low cutoff yields
// a highpass response.
func WithLowcut(freq float64) Option {
	return func(c *config) {
		c.lowcut = freq
	}
}

// WithHighcut sets the high cutoff in Hz. Supplying only a high cutoff
// yields a lowpass response.
func WithHighcut(freq float64) Option {
	return func(c *config) {
		c.highcut = freq
	}
}

// WithOrder sets the filter order (default 2).
func WithOrder(order int) Option {
	return func(c *config) {
		if order > 0 {
			c.order = order
		}
	}
}

// Apply filters signal at the given sampling rate with a zero-phase
// Butterworth response. Cutoffs select the response type: low only is
// highpass, high only is lowpass, both is band-pass (highpass and lowpass
// cascades in series). Forward-backward filtering cancels the phase shift,
// so windowed spectral analysis downstream sees no time offset.
func Apply(signal []float64, sampleRate float64, opts ...Option) ([]float64, error) {
	cfg := config{order: DefaultOrder}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	sections, err := designSections(cfg, sampleRate)
	if err != nil {
		return nil, err
	}

	return FiltFilt(sections, signal)
}

func designSections(cfg config, sampleRate float64) ([]Coefficients, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be > 0, got %g", ErrInvalidCutoff, sampleRate)
	}

	nyquist := sampleRate / 2
	hasLow := cfg.lowcut != 0
	hasHigh := cfg.highcut != 0

	if !hasLow && !hasHigh {
		return nil, fmt.Errorf("%w: no cutoff frequency supplied", ErrInvalidCutoff)
	}
	if hasLow && (cfg.lowcut <= 0 || cfg.lowcut >= nyquist) {
		return nil, fmt.Errorf("%w: lowcut %g Hz outside (0, %g)", ErrInvalidCutoff, cfg.lowcut, nyquist)
	}
	if hasHigh && (cfg.highcut <= 0 || cfg.highcut >= nyquist) {
		return nil, fmt.Errorf("%w: highcut %g Hz outside (0, %g)", ErrInvalidCutoff, cfg.highcut, nyquist)
	}
	if hasLow && hasHigh && cfg.lowcut >= cfg.highcut {
		return nil, fmt.Errorf("%w: lowcut %g Hz >= highcut %g Hz", ErrInvalidCutoff, cfg.lowcut, cfg.highcut)
	}

	var sections []Coefficients
	if hasLow {
		sections = append(sections, ButterworthHP(cfg.lowcut, cfg.order, sampleRate)...)
	}
	if hasHigh {
		sections = append(sections, ButterworthLP(cfg.highcut, cfg.order, sampleRate)...)
	}

	return sections, nil
}

// settleTolerance bounds the residual edge transient: the reflection pad
// extends to where the slowest cascade pole has decayed below this
// factor, when the record is long enough to afford it.
const settleTolerance = 1e-9

func sectionPoleRadius(c Coefficients) float64 {
	disc := c.A1*c.A1 - 4*c.A2
	if disc < 0 {
		// Conjugate pair, |z|^2 = A2.
		return math.Sqrt(c.A2)
	}

	s := math.Sqrt(disc)

	return math.Max(math.Abs(-c.A1+s), math.Abs(-c.A1-s)) / 2
}

// settlingLength estimates the sample count after which the cascade's
// transient response has decayed below settleTolerance. Returns 0 for a
// degenerate or unstable cascade.
func settlingLength(sections []Coefficients) int {
	radius := 0.0
	for _, c := range sections {
		if r := sectionPoleRadius(c); r > radius {
			radius = r
		}
	}

	if radius <= 0 || radius >= 1 {
		return 0
	}

	return int(math.Ceil(math.Log(settleTolerance) / math.Log(radius)))
}

// FiltFilt applies the section cascade forward and backward over signal,
// yielding a zero-phase response with squared magnitude. The signal is
// extended at both ends by an odd reflection before filtering, then the
// extension is stripped. The pad reaches the cascade's settling length
// when the record affords it, capped at the record length, so edge
// transients decay inside the pad instead of leaking into the output.
func FiltFilt(sections []Coefficients, signal []float64) ([]float64, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("%w: empty section cascade", ErrInvalidCutoff)
	}

	minPad := 3 * (2*len(sections) + 1)
	if len(signal) <= minPad {
		return nil, fmt.Errorf("%w: need more than %d samples, got %d", ErrShortSignal, minPad, len(signal))
	}

	padlen := settlingLength(sections)
	if padlen < minPad {
		padlen = minPad
	}
	if limit := len(signal) - 1; padlen > limit {
		padlen = limit
	}

	n := len(signal)
	ext := make([]float64, padlen+n+padlen)

	for i := 0; i < padlen; i++ {
		ext[i] = 2*signal[0] - signal[padlen-i]
		ext[padlen+n+i] = 2*signal[n-1] - signal[n-2-i]
	}
	copy(ext[padlen:], signal)

	chain := NewChain(sections)
	chain.ProcessBlock(ext)

	reverse(ext)
	chain.Reset()
	chain.ProcessBlock(ext)
	reverse(ext)

	out := make([]float64, n)
	copy(out, ext[padlen:padlen+n])

	return out, nil
}

func reverse(buf []float64) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}
