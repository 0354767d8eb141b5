package stats

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-eda/internal/testutil"
)

func TestMeanAndVariance(t *testing.T) {
	sig := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	if got := Mean(sig); math.Abs(got-5) > 1e-12 {
		t.Fatalf("Mean = %v, want 5", got)
	}
	if got := Variance(sig); math.Abs(got-4) > 1e-12 {
		t.Fatalf("Variance = %v, want 4", got)
	}
	if got := Std(sig); math.Abs(got-2) > 1e-12 {
		t.Fatalf("Std = %v, want 2", got)
	}
}

func TestEmptyInput(t *testing.T) {
	if Mean(nil) != 0 || Variance(nil) != 0 || Max(nil) != 0 || MaxAbs(nil) != 0 {
		t.Fatal("empty input statistics should be 0")
	}
	if got := Standardize(nil); len(got) != 0 {
		t.Fatalf("Standardize(nil) length = %d", len(got))
	}
}

func TestStandardize(t *testing.T) {
	sig := testutil.Sine(0.7, 100, 3.5, 1000)
	for i := range sig {
		sig[i] += 2 // offset to give the transform something to remove
	}

	z := Standardize(sig)
	testutil.RequireFinite(t, z)

	if got := Mean(z); math.Abs(got) > 1e-10 {
		t.Fatalf("standardized mean = %v, want ~0", got)
	}
	if got := Std(z); math.Abs(got-1) > 1e-10 {
		t.Fatalf("standardized std = %v, want ~1", got)
	}
}

func TestStandardizeConstant(t *testing.T) {
	z := Standardize([]float64{3, 3, 3, 3})
	testutil.RequireFinite(t, z)

	for i, v := range z {
		if v != 0 {
			t.Fatalf("index %d: got %v, want 0", i, v)
		}
	}
}

func TestMaxAndMaxAbs(t *testing.T) {
	sig := []float64{-4, 1, 3, -2}

	if got := Max(sig); got != 3 {
		t.Fatalf("Max = %v, want 3", got)
	}
	if got := MaxAbs(sig); got != 4 {
		t.Fatalf("MaxAbs = %v, want 4", got)
	}
}
