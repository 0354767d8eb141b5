// Package filter provides zero-phase IIR filtering built from cascades of
// second-order sections.
//
// [Apply] is the high-level contract used by the analysis pipelines:
// Butterworth low/high/band-pass selected by which cutoffs are supplied,
// applied forward and backward (filtfilt) so no group delay is introduced.
// The cascade designers ([ButterworthLP], [ButterworthHP], [Chebyshev1LP])
// and [FiltFilt] are exported for callers that need direct control, such as
// the decimator's anti-aliasing stage.
package filter
