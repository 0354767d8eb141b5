package eda

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-eda/dsp/filter"
	"github.com/cwbudde/algo-eda/dsp/resample"
	"github.com/cwbudde/algo-eda/dsp/spectral"
	"github.com/cwbudde/algo-eda/dsp/window"
	"github.com/cwbudde/algo-eda/stats"
)

// Ghiasi et al. (2018) pipeline constants.
const (
	ghiasiAnalysisRate  = 50.0
	ghiasiBandpassLow   = 0.01
	ghiasiBandpassHigh  = 0.5
	ghiasiBandpassOrder = 2

	// Segments span five cycles of the lowest band frequency; the
	// overlap constant is 59 samples at the 50 Hz analysis rate.
	ghiasiCyclesPerSegment = 5
	ghiasiOverlapSamples   = 59
)

// ghiasi estimates the indices from the mean spectrogram magnitude
// inside the band. The signal is standardized, resampled to 50 Hz and
// band-passed before short-time analysis.
//
// The published implementation sizes the filter, the segment and the
// overlap in units of the caller's original rate even though the signal
// has already been resampled to 50 Hz. That behavior is kept as the
// default so results match the literature; WithResampledRateOverlap
// switches every rate-derived quantity to the 50 Hz analysis rate.
func ghiasi(signal []float64, samplingRate float64, cfg config) (Indices, error) {
	resampled, err := resample.ToRate(stats.Standardize(signal), samplingRate, ghiasiAnalysisRate)
	if err != nil {
		return Indices{}, fmt.Errorf("eda: ghiasi resample: %w", err)
	}

	rate := samplingRate
	if cfg.resampledRateUnits {
		rate = ghiasiAnalysisRate
	}

	filtered, err := filter.Apply(resampled, rate,
		filter.WithLowcut(ghiasiBandpassLow),
		filter.WithHighcut(ghiasiBandpassHigh),
		filter.WithOrder(ghiasiBandpassOrder))
	if err != nil {
		return Indices{}, fmt.Errorf("eda: ghiasi bandpass: %w", err)
	}

	segment := int(math.Round(ghiasiCyclesPerSegment / cfg.band.Low * rate))
	overlap := int(math.Round(ghiasiOverlapSamples * rate / ghiasiAnalysisRate))

	sg, err := spectral.ComputeSpectrogram(filtered, rate,
		spectral.WithSpectrogramSegmentLength(segment),
		spectral.WithSpectrogramWindow(window.TypeBlackman),
		spectral.WithSpectrogramOverlap(overlap))
	if err != nil {
		return Indices{}, fmt.Errorf("eda: ghiasi spectrogram: %w", err)
	}

	// Rows strictly inside the band, located by the index of the first
	// frequency above the lower edge.
	lower := len(sg.Frequency)
	count := 0

	for i, f := range sg.Frequency {
		if f > cfg.band.Low {
			if i < lower {
				lower = i
			}
			if f < cfg.band.High {
				count++
			}
		}
	}

	if count == 0 || lower+count > len(sg.Magnitude) {
		return Indices{}, fmt.Errorf("%w: [%g, %g] Hz", spectral.ErrEmptyBand, cfg.band.Low, cfg.band.High)
	}

	sum := 0.0
	cells := 0

	for _, row := range sg.Magnitude[lower : lower+count] {
		for _, v := range row {
			sum += math.Abs(v)
		}
		cells += len(row)
	}

	if cells == 0 {
		return Indices{}, fmt.Errorf("%w: no spectrogram columns", spectral.ErrInsufficientSamples)
	}

	symp := sum / float64(cells)

	// Normalization uses the maximum over the whole grid, not just the
	// band rows.
	peak := 0.0
	for _, row := range sg.Magnitude {
		if m := stats.MaxAbs(row); m > peak {
			peak = m
		}
	}

	sympN := 0.0
	if peak > 0 {
		sympN = symp / peak
	}

	if cfg.plotter != nil {
		cfg.plotter.PlotSpectrogram(sg, cfg.band)
	}

	return Indices{Symp: symp, SympN: sympN}, nil
}
