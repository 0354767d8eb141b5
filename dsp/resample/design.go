package resample

import (
	"fmt"
	"math"
)

// designPolyphaseFIR designs the Kaiser-windowed sinc prototype and splits
// it into up polyphase branches. The prototype cutoff sits slightly below
// the theoretical anti-aliasing limit 0.5/max(up, down).
func designPolyphaseFIR(up, down int) ([][]float64, int, error) {
	nTaps := tapsPerPhase * up

	fc := (0.5 / float64(max(up, down))) * cutoffScale
	if fc <= 0 || fc >= 0.5 {
		return nil, 0, fmt.Errorf("resample: invalid prototype cutoff %.6f", fc)
	}

	taps := make([]float64, nTaps)
	center := 0.5 * float64(nTaps-1)

	for n := range nTaps {
		t := float64(n) - center
		taps[n] = 2 * fc * sinc(2*fc*t) * kaiserWindow(n, nTaps)
	}

	var sum float64
	for _, v := range taps {
		sum += v
	}

	if sum == 0 {
		return nil, 0, fmt.Errorf("resample: designed zero-sum filter")
	}

	// Unity DC gain after upsampling by up.
	scale := float64(up) / sum
	for i := range taps {
		taps[i] *= scale
	}

	phases := make([][]float64, up)
	maxPhaseLn := 0

	for p := range up {
		phase := make([]float64, 0, (nTaps-p+up-1)/up)
		for i := p; i < nTaps; i += up {
			phase = append(phase, taps[i])
		}

		phases[p] = phase
		if len(phase) > maxPhaseLn {
			maxPhaseLn = len(phase)
		}
	}

	return phases, maxPhaseLn, nil
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}

	px := math.Pi * x

	return math.Sin(px) / px
}

func kaiserWindow(n, size int) float64 {
	if size <= 1 {
		return 1
	}

	r := 2*float64(n)/float64(size-1) - 1
	term := math.Sqrt(math.Max(0, 1-r*r))

	return besselI0(kaiserBeta*term) / besselI0(kaiserBeta)
}

// besselI0 returns a numerical approximation of the modified Bessel
// function of the first kind, order zero.
func besselI0(x float64) float64 {
	ax := math.Abs(x)
	if ax < 3.75 {
		y := x / 3.75
		y *= y

		return 1.0 + y*(3.5156229+y*(3.0899424+y*(1.2067492+y*(0.2659732+y*(0.0360768+y*0.0045813)))))
	}

	y := 3.75 / ax

	return (math.Exp(ax) / math.Sqrt(ax)) *
		(0.39894228 + y*(0.01328592+y*(0.00225319+y*(-0.00157565+y*(0.00916281+y*(-0.02057706+y*(0.02635537+y*(-0.01647633+y*0.00392377))))))))
}
