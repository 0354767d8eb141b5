package interp

// spline holds piecewise-polynomial coefficients for quadratic and cubic
// interpolating splines. Both pass exactly through the input nodes.
type spline struct {
	x     []float64
	y     []float64
	slope []float64 // first derivative at each node (quadratic)
	m     []float64 // second derivative at each node (cubic)
	order int
}

func newSpline(x, y []float64, order int) *spline {
	s := &spline{x: x, y: y, order: order}

	if len(x) < 3 {
		// Not enough nodes for a curved segment; degrade to linear.
		s.order = 1

		return s
	}

	switch order {
	case 2:
		s.slope = quadraticSlopes(x, y)
	case 3:
		s.m = naturalCubicMoments(x, y)
	default:
		s.order = 1
	}

	return s
}

func (s *spline) at(q float64) float64 {
	i := segmentIndex(s.x, q)
	h := s.x[i+1] - s.x[i]
	dx := q - s.x[i]

	switch s.order {
	case 2:
		z0 := s.slope[i]
		z1 := s.slope[i+1]

		return s.y[i] + z0*dx + (z1-z0)/(2*h)*dx*dx
	case 3:
		m0 := s.m[i]
		m1 := s.m[i+1]
		a := (s.x[i+1] - q) / h
		b := dx / h

		return a*s.y[i] + b*s.y[i+1] +
			((a*a*a-a)*m0+(b*b*b-b)*m1)*h*h/6
	default:
		t := dx / h

		return s.y[i] + t*(s.y[i+1]-s.y[i])
	}
}

// quadraticSlopes propagates node slopes so that each parabolic piece
// matches both endpoint values and the slope continuity condition.
// The first slope uses the three-point one-sided estimate, which makes
// the spline reproduce polynomials up to degree two exactly.
func quadraticSlopes(x, y []float64) []float64 {
	n := len(x)
	z := make([]float64, n)

	h0 := x[1] - x[0]
	h1 := x[2] - x[1]
	s0 := (y[1] - y[0]) / h0
	s1 := (y[2] - y[1]) / h1
	z[0] = ((2*h0+h1)*s0 - h0*s1) / (h0 + h1)

	for i := 0; i < n-1; i++ {
		secant := (y[i+1] - y[i]) / (x[i+1] - x[i])
		z[i+1] = 2*secant - z[i]
	}

	return z
}

// naturalCubicMoments solves the tridiagonal system for the second
// derivatives of a natural cubic spline (zero curvature at both ends).
func naturalCubicMoments(x, y []float64) []float64 {
	n := len(x)
	m := make([]float64, n)

	// Thomas algorithm scratch.
	c := make([]float64, n)
	d := make([]float64, n)

	for i := 1; i < n-1; i++ {
		h0 := x[i] - x[i-1]
		h1 := x[i+1] - x[i]

		a := h0
		b := 2 * (h0 + h1)
		rhs := 6 * ((y[i+1]-y[i])/h1 - (y[i]-y[i-1])/h0)

		// Natural boundary: m[0] = m[n-1] = 0, so the first equation has
		// no coupling to the left of i=1.
		denom := b - a*c[i-1]
		c[i] = h1 / denom
		d[i] = (rhs - a*d[i-1]) / denom
	}

	for i := n - 2; i >= 1; i-- {
		m[i] = d[i] - c[i]*m[i+1]
	}

	return m
}
