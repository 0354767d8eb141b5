package interp

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrLengthMismatch indicates x and y sequences of different lengths.
var ErrLengthMismatch = errors.New("interp: x and y length mismatch")

// Kernel identifies an interpolation method.
type Kernel int

const (
	KernelLinear Kernel = iota
	KernelNearest
	KernelPrevious
	KernelNext
	KernelZero
	KernelQuadratic
	KernelCubic
	KernelMonotoneCubic
)

// ParseKernel resolves a kernel name. The accepted names follow the
// spline-order naming of the literature: "zero", "slinear", "quadratic"
// and "cubic" are splines of order 0..3, "previous"/"next" hold the
// neighboring value, and "monotone_cubic" is shape-preserving PCHIP.
func ParseKernel(name string) (Kernel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear", "slinear":
		return KernelLinear, nil
	case "nearest":
		return KernelNearest, nil
	case "previous":
		return KernelPrevious, nil
	case "next":
		return KernelNext, nil
	case "zero":
		return KernelZero, nil
	case "quadratic":
		return KernelQuadratic, nil
	case "cubic":
		return KernelCubic, nil
	case "monotone_cubic", "monotone-cubic", "pchip":
		return KernelMonotoneCubic, nil
	default:
		return KernelLinear, fmt.Errorf("interp: unknown kernel %q", name)
	}
}

// String returns the canonical kernel name.
func (k Kernel) String() string {
	switch k {
	case KernelLinear:
		return "linear"
	case KernelNearest:
		return "nearest"
	case KernelPrevious:
		return "previous"
	case KernelNext:
		return "next"
	case KernelZero:
		return "zero"
	case KernelQuadratic:
		return "quadratic"
	case KernelCubic:
		return "cubic"
	case KernelMonotoneCubic:
		return "monotone_cubic"
	default:
		return "unknown"
	}
}

// Interpolate resamples the sequence (x, y) at the query positions xNew.
//
// If len(xNew) == len(x) the input values are returned unchanged without
// interpolating, whatever the kernel. This fast path is part of the
// contract (output determinism for same-length queries), not an
// optimization.
//
// For every kernel except [KernelMonotoneCubic], queries outside
// [x[0], x[len-1]] are clamped to the boundary y values (constant
// extrapolation). The monotone cubic kernel extrapolates with its end
// polynomials and is then clamped by output index: positions before
// int(x[0]) and from int(x[len-1]) on are forced to the boundary output
// value. That index override matches the boundary positions only when the
// x values are sample indices starting near zero; see the package
// documentation.
func Interpolate(x, y, xNew []float64, kernel Kernel) ([]float64, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(y))
	}

	if len(xNew) == len(x) {
		out := make([]float64, len(y))
		copy(out, y)

		return out, nil
	}

	return evaluate(x, y, xNew, kernel)
}

// InterpolateCount resamples (x, y) onto count evenly spaced positions
// spanning [x[0], x[len-1]] inclusive. A count equal to len(x) returns
// the input values unchanged (same fast path as [Interpolate]).
func InterpolateCount(x, y []float64, count int, kernel Kernel) ([]float64, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(y))
	}

	if count == len(x) {
		out := make([]float64, len(y))
		copy(out, y)

		return out, nil
	}

	return evaluate(x, y, linspace(x[0], x[len(x)-1], count), kernel)
}

func evaluate(x, y, xNew []float64, kernel Kernel) ([]float64, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrLengthMismatch)
	}

	if kernel == KernelMonotoneCubic {
		out := pchipEval(x, y, xNew)
		clampByIndex(out, x)

		return out, nil
	}

	out := make([]float64, len(xNew))

	var eval func(q float64) float64

	switch kernel {
	case KernelLinear:
		eval = func(q float64) float64 { return linearAt(x, y, q) }
	case KernelNearest:
		eval = func(q float64) float64 { return nearestAt(x, y, q) }
	case KernelPrevious, KernelZero:
		eval = func(q float64) float64 { return previousAt(x, y, q) }
	case KernelNext:
		eval = func(q float64) float64 { return nextAt(x, y, q) }
	case KernelQuadratic:
		s := newSpline(x, y, 2)
		eval = s.at
	case KernelCubic:
		s := newSpline(x, y, 3)
		eval = s.at
	default:
		return nil, fmt.Errorf("interp: unsupported kernel %d", kernel)
	}

	for i, q := range xNew {
		switch {
		case q <= x[0]:
			out[i] = y[0]
		case q >= x[len(x)-1]:
			out[i] = y[len(y)-1]
		default:
			out[i] = eval(q)
		}
	}

	return out, nil
}

// clampByIndex replicates the index-based constant-extrapolation override
// applied after monotone cubic interpolation: output positions before
// int(x[0]) and from int(x[len-1]) on take the value at that position.
// Indexes outside the output are ignored.
func clampByIndex(out []float64, x []float64) {
	if len(out) == 0 {
		return
	}

	lo := int(x[0])
	if lo > 0 && lo < len(out) {
		for i := 0; i < lo; i++ {
			out[i] = out[lo]
		}
	}

	hi := int(x[len(x)-1])
	if hi >= 0 && hi < len(out) {
		for i := hi + 1; i < len(out); i++ {
			out[i] = out[hi]
		}
	}
}

// segmentIndex returns i such that x[i] <= q < x[i+1], clamped to the
// valid segment range. Callers have already excluded out-of-range queries.
func segmentIndex(x []float64, q float64) int {
	i := sort.SearchFloat64s(x, q)
	if i > 0 {
		i--
	}
	if i > len(x)-2 {
		i = len(x) - 2
	}

	return i
}

func linearAt(x, y []float64, q float64) float64 {
	i := segmentIndex(x, q)
	t := (q - x[i]) / (x[i+1] - x[i])

	return y[i] + t*(y[i+1]-y[i])
}

func nearestAt(x, y []float64, q float64) float64 {
	i := segmentIndex(x, q)
	if q-x[i] <= x[i+1]-q {
		return y[i]
	}

	return y[i+1]
}

func previousAt(x, y []float64, q float64) float64 {
	i := segmentIndex(x, q)
	if q >= x[i+1] {
		return y[i+1]
	}

	return y[i]
}

func nextAt(x, y []float64, q float64) float64 {
	i := segmentIndex(x, q)
	if q <= x[i] {
		return y[i]
	}

	return y[i+1]
}

func linspace(start, stop float64, count int) []float64 {
	if count <= 0 {
		return nil
	}

	out := make([]float64, count)
	if count == 1 {
		out[0] = start

		return out
	}

	step := (stop - start) / float64(count-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[count-1] = stop

	return out
}
