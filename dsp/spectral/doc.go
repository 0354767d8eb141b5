// Package spectral provides power spectral density estimation.
//
// [Welch] averages periodograms of overlapping windowed segments into a
// one-sided [PowerSpectrum]; [ComputeSpectrogram] keeps the time axis and
// yields a [Spectrogram] grid. [BandPower] integrates a spectrum over a
// closed frequency [Band].
//
// The FFT itself is delegated to the algo-fft backend; segment lengths
// that are not powers of two are zero-padded to the next power of two, so
// the frequency axis spacing is rate/nfft rather than rate/segmentLength.
package spectral
