package eda

import "github.com/cwbudde/algo-eda/dsp/spectral"

// Plotter receives the intermediate spectral estimate of a pipeline run
// together with the analyzed band. Implementations render it however
// they like; the pipeline ignores their effects. Which method is called
// depends on the estimator: Posada produces a power spectrum, Ghiasi a
// spectrogram.
type Plotter interface {
	PlotPSD(ps spectral.PowerSpectrum, band spectral.Band)
	PlotSpectrogram(sg spectral.Spectrogram, band spectral.Band)
}
