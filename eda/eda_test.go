package eda

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-eda/dsp/filter"
	"github.com/cwbudde/algo-eda/dsp/resample"
	"github.com/cwbudde/algo-eda/dsp/spectral"
	"github.com/cwbudde/algo-eda/dsp/window"
	"github.com/cwbudde/algo-eda/internal/testutil"
	"github.com/cwbudde/algo-eda/stats"
)

// edaRecord builds an eight-minute surrogate skin conductance record:
// a slow sympathetic oscillation inside the analysis band plus a little
// broadband noise.
func edaRecord(sampleRate float64) []float64 {
	length := int(8 * 60 * sampleRate)
	signal := testutil.Sine(0.1, sampleRate, 1.0, length)
	noise := testutil.Noise(42, 0.01, length)

	for i := range signal {
		signal[i] += noise[i]
	}

	return signal
}

func TestPosadaSineScenario(t *testing.T) {
	indices, err := Sympathetic(edaRecord(100), 100, WithMethod(MethodPosada))
	require.NoError(t, err)

	assert.Greater(t, indices.Symp, 0.0)
	assert.False(t, math.IsNaN(indices.SympN))
	assert.False(t, math.IsInf(indices.SympN, 0))

	// The 0.1 Hz spectral peak lies inside the default band, so the
	// peak-normalized band power includes a bin of value 1.
	assert.GreaterOrEqual(t, indices.SympN, 1.0)
}

func TestPosadaIsDefaultMethod(t *testing.T) {
	record := edaRecord(100)

	byDefault, err := Sympathetic(record, 100)
	require.NoError(t, err)

	explicit, err := Sympathetic(record, 100, WithMethod(MethodPosada))
	require.NoError(t, err)

	assert.Equal(t, explicit, byDefault)
}

func TestGhiasiScenario(t *testing.T) {
	indices, err := Sympathetic(edaRecord(100), 100, WithMethod(MethodGhiasi))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, indices.Symp, 0.0)
	assert.False(t, math.IsNaN(indices.Symp))
	assert.GreaterOrEqual(t, indices.SympN, 0.0)
	assert.LessOrEqual(t, indices.SympN, 1.0)
}

func TestGhiasiSpectrogramIsBlackmanWindowed(t *testing.T) {
	record := edaRecord(100)

	got, err := Sympathetic(record, 100, WithMethod(MethodGhiasi))
	require.NoError(t, err)

	// Recompute the pipeline with the window pinned explicitly; the
	// reference analysis is Blackman-windowed, so the result must match
	// exactly, not just approximately.
	resampled, err := resample.ToRate(stats.Standardize(record), 100, 50)
	require.NoError(t, err)

	filtered, err := filter.Apply(resampled, 100,
		filter.WithLowcut(0.01), filter.WithHighcut(0.5), filter.WithOrder(2))
	require.NoError(t, err)

	segment := int(math.Round(5 / DefaultBand.Low * 100))
	overlap := int(math.Round(59 * 100.0 / 50.0))

	sg, err := spectral.ComputeSpectrogram(filtered, 100,
		spectral.WithSpectrogramSegmentLength(segment),
		spectral.WithSpectrogramWindow(window.TypeBlackman),
		spectral.WithSpectrogramOverlap(overlap))
	require.NoError(t, err)

	lower := len(sg.Frequency)
	count := 0
	for i, f := range sg.Frequency {
		if f > DefaultBand.Low {
			if i < lower {
				lower = i
			}
			if f < DefaultBand.High {
				count++
			}
		}
	}
	require.Positive(t, count)

	sum := 0.0
	cells := 0
	for _, row := range sg.Magnitude[lower : lower+count] {
		for _, v := range row {
			sum += math.Abs(v)
		}
		cells += len(row)
	}
	require.Positive(t, cells)

	assert.Equal(t, sum/float64(cells), got.Symp)
}

func TestGhiasiResampledRateUnits(t *testing.T) {
	record := edaRecord(100)

	literal, err := Sympathetic(record, 100, WithMethod(MethodGhiasi))
	require.NoError(t, err)

	corrected, err := Sympathetic(record, 100, WithMethod(MethodGhiasi), WithResampledRateOverlap())
	require.NoError(t, err)

	// Different segment sizing, same record: both must stay in range.
	assert.GreaterOrEqual(t, corrected.Symp, 0.0)
	assert.LessOrEqual(t, corrected.SympN, 1.0)
	assert.GreaterOrEqual(t, literal.Symp, 0.0)
}

func TestSympatheticDeterministic(t *testing.T) {
	record := edaRecord(100)

	for _, method := range []Method{MethodPosada, MethodGhiasi} {
		first, err := Sympathetic(record, 100, WithMethod(method))
		require.NoError(t, err)

		second, err := Sympathetic(record, 100, WithMethod(method))
		require.NoError(t, err)

		assert.Equal(t, first, second, "method %s", method)
	}
}

func TestParseMethod(t *testing.T) {
	cases := map[string]Method{
		"posada":          MethodPosada,
		"Posada-Quintero": MethodPosada,
		"QUINTERO":        MethodPosada,
		"ghiasi":          MethodGhiasi,
		" Ghiasi ":        MethodGhiasi,
	}

	for name, want := range cases {
		got, err := ParseMethod(name)
		require.NoError(t, err, "name %q", name)
		assert.Equal(t, want, got, "name %q", name)
	}

	_, err := ParseMethod("welch")
	require.ErrorIs(t, err, ErrUnknownMethod)
}

func TestUnknownMethodValue(t *testing.T) {
	_, err := Sympathetic(edaRecord(100), 100, WithMethod(Method(99)))
	require.ErrorIs(t, err, ErrUnknownMethod)
}

func TestInvalidBand(t *testing.T) {
	_, err := Sympathetic(edaRecord(100), 100,
		WithBand(spectral.Band{Low: 0.25, High: 0.045}))
	require.ErrorIs(t, err, spectral.ErrInvalidBand)
}

func TestInvalidSamplingRate(t *testing.T) {
	_, err := Sympathetic(edaRecord(100), 0)
	require.Error(t, err)
}

func TestShortRecordFails(t *testing.T) {
	_, err := Sympathetic(testutil.Sine(0.1, 100, 1.0, 100), 100)
	require.Error(t, err)
}

type recordingPlotter struct {
	psdCalls         int
	spectrogramCalls int
	bins             int
}

func (p *recordingPlotter) PlotPSD(ps spectral.PowerSpectrum, _ spectral.Band) {
	p.psdCalls++
	p.bins = len(ps.Power)
}

func (p *recordingPlotter) PlotSpectrogram(sg spectral.Spectrogram, _ spectral.Band) {
	p.spectrogramCalls++
	p.bins = len(sg.Frequency)
}

func TestPlotterDoesNotChangeIndices(t *testing.T) {
	record := edaRecord(100)

	plain, err := Sympathetic(record, 100, WithMethod(MethodPosada))
	require.NoError(t, err)

	plotter := &recordingPlotter{}
	plotted, err := Sympathetic(record, 100, WithMethod(MethodPosada), WithPlotter(plotter))
	require.NoError(t, err)

	assert.Equal(t, plain, plotted)
	assert.Equal(t, 1, plotter.psdCalls)
	assert.Zero(t, plotter.spectrogramCalls)
	assert.Positive(t, plotter.bins)

	_, err = Sympathetic(record, 100, WithMethod(MethodGhiasi), WithPlotter(plotter))
	require.NoError(t, err)
	assert.Equal(t, 1, plotter.spectrogramCalls)
}
