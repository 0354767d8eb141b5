package resample

import (
	"errors"
	"math"
)

var (
	// ErrInvalidFactor indicates a decimation factor < 1 or a signal too
	// short for the anti-aliasing filter of the requested order.
	ErrInvalidFactor = errors.New("resample: invalid factor")
	// ErrInvalidRate indicates an invalid input/output sample rate.
	ErrInvalidRate = errors.New("resample: invalid sample rate")
)

// Polyphase FIR design parameters. Fixed rather than configurable: the
// analysis pipelines always run offline where the balanced trade-off is
// adequate.
const (
	tapsPerPhase   = 32
	cutoffScale    = 0.92
	kaiserBeta     = 7.5
	maxDenominator = 4096
)

// Resampler performs rational sample-rate conversion using a polyphase
// Kaiser-windowed-sinc FIR.
type Resampler struct {
	up   int
	down int

	phases     [][]float64
	maxPhaseLn int
}

// NewRational creates a resampler for ratio up/down.
func NewRational(up, down int) (*Resampler, error) {
	if up <= 0 || down <= 0 {
		return nil, ErrInvalidFactor
	}

	g := gcd(up, down)
	up /= g
	down /= g

	phases, maxPhaseLn, err := designPolyphaseFIR(up, down)
	if err != nil {
		return nil, err
	}

	return &Resampler{
		up:         up,
		down:       down,
		phases:     phases,
		maxPhaseLn: maxPhaseLn,
	}, nil
}

// NewForRates creates a resampler by approximating outRate/inRate as a
// small rational ratio.
func NewForRates(inRate, outRate float64) (*Resampler, error) {
	if inRate <= 0 || outRate <= 0 || math.IsNaN(inRate) || math.IsNaN(outRate) {
		return nil, ErrInvalidRate
	}

	up, down := approximateRatio(outRate/inRate, maxDenominator)

	return NewRational(up, down)
}

// Ratio returns the reduced up/down conversion factors.
func (r *Resampler) Ratio() (up, down int) {
	return r.up, r.down
}

// Process converts a complete input block. Samples beyond the input edges
// are treated as zero.
func (r *Resampler) Process(input []float64) []float64 {
	if len(input) == 0 {
		return nil
	}

	out := make([]float64, 0, outputLen(len(input), r.up, r.down))

	phase := 0
	inputIndex := 0

	for inputIndex < len(input) {
		taps := r.phases[phase]

		var y float64
		for k, c := range taps {
			idx := inputIndex - k
			if idx < 0 || idx >= len(input) {
				continue
			}

			y += c * input[idx]
		}

		out = append(out, y)

		phase += r.down
		inputIndex += phase / r.up
		phase %= r.up
	}

	return out
}

// ToRate converts signal from inRate to outRate as a one-shot helper.
func ToRate(signal []float64, inRate, outRate float64) ([]float64, error) {
	r, err := NewForRates(inRate, outRate)
	if err != nil {
		return nil, err
	}

	return r.Process(signal), nil
}

func outputLen(inputLen, up, down int) int {
	return (inputLen*up + down - 1) / down
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

// approximateRatio finds a small-denominator rational approximation of
// ratio using continued fractions.
func approximateRatio(ratio float64, maxDen int) (num, den int) {
	if ratio <= 0 {
		return 1, 1
	}

	// Convergents p/q of the continued fraction expansion.
	p0, q0 := 0, 1
	p1, q1 := 1, 0
	x := ratio

	for range 64 {
		a := int(math.Floor(x))

		p2 := a*p1 + p0
		q2 := a*q1 + q0
		if q2 > maxDen {
			break
		}

		p0, q0 = p1, q1
		p1, q1 = p2, q2

		frac := x - math.Floor(x)
		if frac < 1e-12 {
			break
		}

		x = 1 / frac
	}

	if p1 <= 0 || q1 <= 0 {
		return 1, 1
	}

	return p1, q1
}
