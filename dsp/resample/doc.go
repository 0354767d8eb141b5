// Package resample provides the two downsampling paths used by the
// analysis pipelines.
//
//   - [Decimate]: integer-factor reduction with a zero-phase Chebyshev
//     Type I anti-aliasing filter, for clean small factors. Cascading two
//     calls composes the factors.
//   - [ToRate] / [Resampler]: rational sample-rate conversion via a
//     polyphase Kaiser-windowed sinc FIR, for arbitrary target rates.
package resample
