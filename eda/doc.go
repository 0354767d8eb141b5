// Package eda derives sympathetic nervous system activity indices from
// electrodermal activity (skin conductance) records.
//
// Two frequency-domain estimators are provided. The Posada-Quintero
// method decimates the record to 2 Hz and integrates Welch spectral
// power over the 0.045-0.25 Hz sympathetic band. The Ghiasi method
// resamples to 50 Hz and averages short-time spectrogram magnitude over
// the same band. Both return an absolute index and a normalized one.
//
//	indices, err := eda.Sympathetic(signal, 100,
//		eda.WithMethod(eda.MethodPosada))
//
// Records should span several minutes; the band frequencies are too low
// to resolve on short snippets.
package eda
