package eda

import (
	"fmt"

	"github.com/cwbudde/algo-eda/dsp/filter"
	"github.com/cwbudde/algo-eda/dsp/resample"
	"github.com/cwbudde/algo-eda/dsp/spectral"
	"github.com/cwbudde/algo-eda/dsp/window"
)

// Posada-Quintero et al. (2016) pipeline constants. The two decimation
// stages bring the caller's rate down by a factor of 200; the published
// protocol records at 400 Hz, so the analysis rate is fixed at 2 Hz
// regardless of the caller's rate.
const (
	posadaFirstDecimation  = 10
	posadaSecondDecimation = 20
	posadaDecimationOrder  = 8

	posadaAnalysisRate  = 2.0
	posadaHighpassHz    = 0.01
	posadaHighpassOrder = 8

	posadaSegmentLength = 128
)

// posada estimates the indices from the band power of a Welch spectrum.
// The signal is decimated twice, detrended by a zero-phase highpass and
// analyzed with Blackman-windowed segments overlapping by half the
// filtered record.
func posada(signal []float64, samplingRate float64, cfg config) (Indices, error) {
	stage1, err := resample.Decimate(signal, posadaFirstDecimation, posadaDecimationOrder)
	if err != nil {
		return Indices{}, fmt.Errorf("eda: posada decimation x%d: %w", posadaFirstDecimation, err)
	}

	stage2, err := resample.Decimate(stage1, posadaSecondDecimation, posadaDecimationOrder)
	if err != nil {
		return Indices{}, fmt.Errorf("eda: posada decimation x%d: %w", posadaSecondDecimation, err)
	}

	filtered, err := filter.Apply(stage2, posadaAnalysisRate,
		filter.WithLowcut(posadaHighpassHz),
		filter.WithOrder(posadaHighpassOrder))
	if err != nil {
		return Indices{}, fmt.Errorf("eda: posada highpass: %w", err)
	}

	ps, err := spectral.Welch(filtered, posadaAnalysisRate,
		spectral.WithSegmentLength(posadaSegmentLength),
		spectral.WithWindow(window.TypeBlackman),
		spectral.WithOverlap(len(filtered)/2))
	if err != nil {
		return Indices{}, fmt.Errorf("eda: posada spectrum: %w", err)
	}

	symp, err := spectral.BandPower(ps, cfg.band)
	if err != nil {
		return Indices{}, err
	}

	sympN, err := spectral.BandPower(ps.Normalized(), cfg.band)
	if err != nil {
		return Indices{}, err
	}

	if cfg.plotter != nil {
		cfg.plotter.PlotPSD(ps, cfg.band)
	}

	return Indices{Symp: symp, SympN: sympN}, nil
}
