// Package stats provides the scalar signal statistics and the
// zero-mean/unit-variance transform used by the analysis pipelines.
package stats

import "math"

// Mean returns the arithmetic mean of signal, 0 for empty input.
func Mean(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range signal {
		sum += v
	}

	return sum / float64(len(signal))
}

// Variance returns the population variance of signal using Welford's
// online algorithm for numerical stability.
func Variance(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var mean, m2 float64

	for i, x := range signal {
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)
	}

	return m2 / float64(len(signal))
}

// Std returns the population standard deviation of signal.
func Std(signal []float64) float64 {
	return math.Sqrt(Variance(signal))
}

// Standardize returns a copy of signal transformed to zero mean and unit
// variance. A constant signal (zero variance) is only demeaned, which
// yields all zeros.
func Standardize(signal []float64) []float64 {
	out := make([]float64, len(signal))
	if len(signal) == 0 {
		return out
	}

	mean := Mean(signal)
	sd := Std(signal)

	if sd == 0 {
		for i, v := range signal {
			out[i] = v - mean
		}

		return out
	}

	inv := 1 / sd
	for i, v := range signal {
		out[i] = (v - mean) * inv
	}

	return out
}

// Max returns the maximum value of signal, 0 for empty input.
func Max(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	m := signal[0]
	for _, v := range signal[1:] {
		if v > m {
			m = v
		}
	}

	return m
}

// MaxAbs returns the maximum absolute value of signal, 0 for empty input.
func MaxAbs(signal []float64) float64 {
	m := 0.0
	for _, v := range signal {
		if a := math.Abs(v); a > m {
			m = a
		}
	}

	return m
}
