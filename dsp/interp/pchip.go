package interp

import "math"

// pchipEval evaluates a shape-preserving monotone cubic (PCHIP) through
// (x, y) at the query positions. Node derivatives follow the
// Fritsch-Carlson weighted harmonic mean, which avoids overshoot between
// data points. Queries outside the data range are extrapolated with the
// end segment polynomials; callers apply the boundary override afterwards.
func pchipEval(x, y, xNew []float64) []float64 {
	out := make([]float64, len(xNew))

	if len(x) == 1 {
		for i := range out {
			out[i] = y[0]
		}

		return out
	}

	d := pchipDerivatives(x, y)

	for i, q := range xNew {
		j := segmentIndex(x, q)
		out[i] = hermiteAt(x[j], x[j+1], y[j], y[j+1], d[j], d[j+1], q)
	}

	return out
}

func hermiteAt(x0, x1, y0, y1, d0, d1, q float64) float64 {
	h := x1 - x0
	t := (q - x0) / h
	t2 := t * t
	t3 := t2 * t

	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2

	return h00*y0 + h10*h*d0 + h01*y1 + h11*h*d1
}

func pchipDerivatives(x, y []float64) []float64 {
	n := len(x)
	d := make([]float64, n)

	if n == 2 {
		s := (y[1] - y[0]) / (x[1] - x[0])
		d[0], d[1] = s, s

		return d
	}

	h := make([]float64, n-1)
	s := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		h[i] = x[i+1] - x[i]
		s[i] = (y[i+1] - y[i]) / h[i]
	}

	// Interior nodes: weighted harmonic mean of adjacent secants, zero
	// where the secants change sign or vanish.
	for i := 1; i < n-1; i++ {
		if s[i-1]*s[i] <= 0 {
			d[i] = 0

			continue
		}

		w1 := 2*h[i] + h[i-1]
		w2 := h[i] + 2*h[i-1]
		d[i] = (w1 + w2) / (w1/s[i-1] + w2/s[i])
	}

	d[0] = pchipEndpoint(h[0], h[1], s[0], s[1])
	d[n-1] = pchipEndpoint(h[n-2], h[n-3], s[n-2], s[n-3])

	return d
}

// pchipEndpoint applies the one-sided three-point derivative estimate
// with the monotonicity limiter.
func pchipEndpoint(h0, h1, s0, s1 float64) float64 {
	d := ((2*h0+h1)*s0 - h0*s1) / (h0 + h1)

	if d*s0 <= 0 {
		return 0
	}
	if s0*s1 < 0 && math.Abs(d) > 3*math.Abs(s0) {
		return 3 * s0
	}

	return d
}
