package spectral

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-eda/dsp/window"
	"github.com/cwbudde/algo-eda/internal/testutil"
)

func TestWelchAxes(t *testing.T) {
	sig := testutil.Sine(5, 100, 1, 2048)

	ps, err := Welch(sig, 100, WithSegmentLength(256))
	if err != nil {
		t.Fatalf("Welch() error = %v", err)
	}

	if len(ps.Frequency) != len(ps.Power) {
		t.Fatalf("axis length mismatch: %d vs %d", len(ps.Frequency), len(ps.Power))
	}
	if ps.Frequency[0] != 0 {
		t.Fatalf("first bin = %v, want 0", ps.Frequency[0])
	}
	if nyq := ps.Frequency[len(ps.Frequency)-1]; math.Abs(nyq-50) > 1e-12 {
		t.Fatalf("last bin = %v, want 50", nyq)
	}
	for i := 1; i < len(ps.Frequency); i++ {
		if ps.Frequency[i] <= ps.Frequency[i-1] {
			t.Fatalf("frequency not strictly increasing at %d", i)
		}
	}
	for i, p := range ps.Power {
		if p < 0 {
			t.Fatalf("negative power %v at bin %d", p, i)
		}
	}
}

func TestWelchPeakLocation(t *testing.T) {
	sig := testutil.Sine(5, 100, 1, 4096)

	ps, err := Welch(sig, 100, WithSegmentLength(512), WithWindow(window.TypeBlackman))
	if err != nil {
		t.Fatalf("Welch() error = %v", err)
	}

	peak := 0
	for i, p := range ps.Power {
		if p > ps.Power[peak] {
			peak = i
		}
	}

	if f := ps.Frequency[peak]; math.Abs(f-5) > 0.3 {
		t.Fatalf("peak at %v Hz, want ~5", f)
	}
}

func TestWelchSegmentReduction(t *testing.T) {
	// Segment length above the signal length is reduced, not an error.
	sig := testutil.Sine(5, 100, 1, 100)

	ps, err := Welch(sig, 100, WithSegmentLength(1024))
	if err != nil {
		t.Fatalf("Welch() error = %v", err)
	}
	testutil.RequireFinite(t, ps.Power)
}

func TestWelchLargeOverlapClamped(t *testing.T) {
	sig := testutil.Sine(5, 100, 1, 1000)

	// Overlap equal to the segment length would never advance; it is
	// clamped to segment-1.
	ps, err := Welch(sig, 100, WithSegmentLength(128), WithOverlap(128))
	if err != nil {
		t.Fatalf("Welch() error = %v", err)
	}
	testutil.RequireFinite(t, ps.Power)
}

func TestWelchTooShort(t *testing.T) {
	if _, err := Welch([]float64{1}, 100); !errors.Is(err, ErrInsufficientSamples) {
		t.Fatalf("err = %v, want ErrInsufficientSamples", err)
	}
}

func TestWelchNormalize(t *testing.T) {
	sig := testutil.Sine(5, 100, 1, 2048)

	ps, err := Welch(sig, 100, WithSegmentLength(256), WithNormalize())
	if err != nil {
		t.Fatalf("Welch() error = %v", err)
	}

	peak := 0.0
	for _, p := range ps.Power {
		if p > peak {
			peak = p
		}
	}

	if math.Abs(peak-1) > 1e-12 {
		t.Fatalf("normalized peak = %v, want 1", peak)
	}
}

func TestNormalizedDoesNotMutate(t *testing.T) {
	ps := PowerSpectrum{
		Frequency: []float64{0, 1, 2},
		Power:     []float64{1, 4, 2},
	}

	norm := ps.Normalized()

	if ps.Power[1] != 4 {
		t.Fatal("Normalized mutated its receiver")
	}
	testutil.RequireSliceNear(t, norm.Power, []float64{0.25, 1, 0.5}, 1e-15)
}

func TestBandPower(t *testing.T) {
	ps := PowerSpectrum{
		Frequency: []float64{0, 1, 2, 3, 4},
		Power:     []float64{1, 2, 3, 4, 5},
	}

	got, err := BandPower(ps, Band{Low: 1, High: 3})
	if err != nil {
		t.Fatalf("BandPower() error = %v", err)
	}
	testutil.RequireNear(t, got, 9, 1e-15)
}

func TestBandPowerMonotoneInWidth(t *testing.T) {
	sig := testutil.Sine(5, 100, 1, 4096)

	ps, err := Welch(sig, 100, WithSegmentLength(512))
	if err != nil {
		t.Fatalf("Welch() error = %v", err)
	}

	prev := 0.0
	for _, high := range []float64{6, 10, 20, 50} {
		p, err := BandPower(ps, Band{Low: 1, High: high})
		if err != nil {
			t.Fatalf("BandPower(1, %v) error = %v", high, err)
		}
		if p < prev {
			t.Fatalf("band power decreased when widening to %v Hz: %v < %v", high, p, prev)
		}
		prev = p
	}
}

func TestBandPowerErrors(t *testing.T) {
	ps := PowerSpectrum{
		Frequency: []float64{0, 10, 20},
		Power:     []float64{1, 1, 1},
	}

	if _, err := BandPower(ps, Band{Low: 2, High: 3}); !errors.Is(err, ErrEmptyBand) {
		t.Fatalf("narrow band: err = %v, want ErrEmptyBand", err)
	}
	if _, err := BandPower(ps, Band{Low: 5, High: 5}); !errors.Is(err, ErrInvalidBand) {
		t.Fatalf("low == high: err = %v, want ErrInvalidBand", err)
	}
	if _, err := BandPower(ps, Band{Low: -1, High: 5}); !errors.Is(err, ErrInvalidBand) {
		t.Fatalf("negative low: err = %v, want ErrInvalidBand", err)
	}
}

func TestSpectrogramShape(t *testing.T) {
	sig := testutil.Sine(5, 100, 1, 3000)

	sg, err := ComputeSpectrogram(sig, 100,
		WithSpectrogramSegmentLength(500),
		WithSpectrogramWindow(window.TypeBlackman),
		WithSpectrogramOverlap(250),
	)
	if err != nil {
		t.Fatalf("ComputeSpectrogram() error = %v", err)
	}

	if len(sg.Magnitude) != len(sg.Frequency) {
		t.Fatalf("magnitude rows = %d, frequency bins = %d", len(sg.Magnitude), len(sg.Frequency))
	}
	for i, row := range sg.Magnitude {
		if len(row) != len(sg.Time) {
			t.Fatalf("row %d columns = %d, time axis = %d", i, len(row), len(sg.Time))
		}
	}

	// step = 250 samples: columns at 0, 250, ..., 2500.
	if want := 11; len(sg.Time) != want {
		t.Fatalf("columns = %d, want %d", len(sg.Time), want)
	}
	for i := 1; i < len(sg.Time); i++ {
		if sg.Time[i] <= sg.Time[i-1] {
			t.Fatalf("time not strictly increasing at %d", i)
		}
	}
}

func TestSpectrogramOverlapSeconds(t *testing.T) {
	sig := testutil.Sine(5, 100, 1, 3000)

	bySamples, err := ComputeSpectrogram(sig, 100,
		WithSpectrogramSegmentLength(500),
		WithSpectrogramOverlap(250),
	)
	if err != nil {
		t.Fatalf("ComputeSpectrogram() error = %v", err)
	}

	// 2.5 s at 100 Hz rounds to the same 250-sample overlap.
	bySeconds, err := ComputeSpectrogram(sig, 100,
		WithSpectrogramSegmentLength(500),
		WithSpectrogramOverlapSeconds(2.5),
	)
	if err != nil {
		t.Fatalf("ComputeSpectrogram() error = %v", err)
	}

	if len(bySeconds.Time) != len(bySamples.Time) {
		t.Fatalf("columns = %d, want %d", len(bySeconds.Time), len(bySamples.Time))
	}
}

func TestSpectrogramTooShort(t *testing.T) {
	sig := testutil.Sine(5, 100, 1, 100)

	_, err := ComputeSpectrogram(sig, 100, WithSpectrogramSegmentLength(500))
	if !errors.Is(err, ErrInsufficientSamples) {
		t.Fatalf("err = %v, want ErrInsufficientSamples", err)
	}
}

func TestSpectrogramPeakRow(t *testing.T) {
	sig := testutil.Sine(10, 100, 1, 4000)

	sg, err := ComputeSpectrogram(sig, 100, WithSpectrogramSegmentLength(1000))
	if err != nil {
		t.Fatalf("ComputeSpectrogram() error = %v", err)
	}

	// The dominant row should sit near 10 Hz in every column.
	for col := range sg.Time {
		peak := 0
		for row := range sg.Magnitude {
			if sg.Magnitude[row][col] > sg.Magnitude[peak][col] {
				peak = row
			}
		}
		if f := sg.Frequency[peak]; math.Abs(f-10) > 0.5 {
			t.Fatalf("column %d peak at %v Hz, want ~10", col, f)
		}
	}
}

func TestNextPowerOf2(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 4, 128: 128, 129: 256, 11111: 16384}
	for in, want := range cases {
		if got := nextPowerOf2(in); got != want {
			t.Fatalf("nextPowerOf2(%d) = %d, want %d", in, got, want)
		}
	}
}
