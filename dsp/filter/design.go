package filter

import "math"

// bilinearK computes the bilinear transform frequency warping factor
// tan(pi*freq/sampleRate). Returns (0, false) if parameters are invalid.
func bilinearK(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || freq <= 0 || freq >= sampleRate/2 {
		return 0, false
	}

	return math.Tan(math.Pi * freq / sampleRate), true
}

// butterworthQ returns the quality factor for a Butterworth section.
// index ranges from 0 to (order/2 - 1).
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s == 0 {
		return 1 / math.Sqrt2
	}

	return 1 / (2 * s)
}

func secondOrderLP(freq, q, sampleRate float64) Coefficients {
	k, ok := bilinearK(freq, sampleRate)
	if !ok {
		return Coefficients{}
	}

	k2 := k * k
	norm := 1 / (1 + k/q + k2)

	return Coefficients{
		B0: k2 * norm,
		B1: 2 * k2 * norm,
		B2: k2 * norm,
		A1: 2 * (k2 - 1) * norm,
		A2: (1 - k/q + k2) * norm,
	}
}

func secondOrderHP(freq, q, sampleRate float64) Coefficients {
	k, ok := bilinearK(freq, sampleRate)
	if !ok {
		return Coefficients{}
	}

	k2 := k * k
	norm := 1 / (1 + k/q + k2)

	return Coefficients{
		B0: norm,
		B1: -2 * norm,
		B2: norm,
		A1: 2 * (k2 - 1) * norm,
		A2: (1 - k/q + k2) * norm,
	}
}

func firstOrderLP(freq, sampleRate float64) Coefficients {
	k, ok := bilinearK(freq, sampleRate)
	if !ok {
		return Coefficients{}
	}

	norm := 1 / (1 + k)

	return Coefficients{
		B0: k * norm,
		B1: k * norm,
		A1: (k - 1) * norm,
	}
}

func firstOrderHP(freq, sampleRate float64) Coefficients {
	k, ok := bilinearK(freq, sampleRate)
	if !ok {
		return Coefficients{}
	}

	norm := 1 / (1 + k)

	return Coefficients{
		B0: norm,
		B1: -norm,
		A1: (k - 1) * norm,
	}
}

// ButterworthLP designs a lowpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthLP(freq float64, order int, sampleRate float64) []Coefficients {
	if order <= 0 {
		return nil
	}

	sections := make([]Coefficients, 0, (order+1)/2)
	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, secondOrderLP(freq, butterworthQ(order, i), sampleRate))
	}

	if order%2 != 0 {
		sections = append(sections, firstOrderLP(freq, sampleRate))
	}

	return sections
}

// ButterworthHP designs a highpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthHP(freq float64, order int, sampleRate float64) []Coefficients {
	if order <= 0 {
		return nil
	}

	sections := make([]Coefficients, 0, (order+1)/2)
	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, secondOrderHP(freq, butterworthQ(order, i), sampleRate))
	}

	if order%2 != 0 {
		sections = append(sections, firstOrderHP(freq, sampleRate))
	}

	return sections
}

// Chebyshev1LP designs a lowpass Chebyshev Type I cascade with the given
// passband ripple in dB. The analog poles lie on an ellipse whose axes
// follow sinh/cosh of asinh(1/eps)/order with eps = sqrt(10^(r/10) - 1);
// each conjugate pair maps to one biquad through the bilinear transform.
// Even orders carry a 1/sqrt(1+eps^2) gain so the passband maximum is
// unity; odd orders place the remaining real pole in a first-order tail.
func Chebyshev1LP(freq float64, order int, rippleDB, sampleRate float64) []Coefficients {
	if order <= 0 {
		return nil
	}

	k, ok := bilinearK(freq, sampleRate)
	if !ok {
		return nil
	}

	if rippleDB <= 0 {
		rippleDB = 0.01
	}

	epsilon := math.Sqrt(math.Pow(10, rippleDB/10) - 1)
	mu := math.Asinh(1/epsilon) / float64(order)
	sinhMu := math.Sinh(mu)
	coshMu := math.Cosh(mu)

	invK := 1 / k
	sections := make([]Coefficients, 0, (order+1)/2)

	for i := 0; i < order/2; i++ {
		theta := math.Pi * float64(2*i+1) / (2 * float64(order))
		alpha := sinhMu * math.Sin(theta) // -Re(pole), cutoff 1 rad/s
		omega := coshMu * math.Cos(theta) // Im(pole)
		beta := alpha*alpha + omega*omega // |pole|^2

		a0 := invK*invK + 2*alpha*invK + beta
		g := beta / a0

		sections = append(sections, Coefficients{
			B0: g,
			B1: 2 * g,
			B2: g,
			A1: 2 * (beta - invK*invK) / a0,
			A2: (invK*invK - 2*alpha*invK + beta) / a0,
		})
	}

	if order%2 != 0 {
		// Real pole at -sinh(mu).
		a0 := invK + sinhMu
		sections = append(sections, Coefficients{
			B0: sinhMu / a0,
			B1: sinhMu / a0,
			A1: (sinhMu - invK) / a0,
		})
	} else {
		g := 1 / math.Sqrt(1+epsilon*epsilon)
		sections[0].B0 *= g
		sections[0].B1 *= g
		sections[0].B2 *= g
	}

	return sections
}
