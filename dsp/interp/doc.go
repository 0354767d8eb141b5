// Package interp resamples irregularly indexed sequences onto new sample
// positions.
//
// [Interpolate] supports hold kernels (nearest, previous, next, zero),
// linear, quadratic and cubic interpolating splines, and a
// shape-preserving monotone cubic (PCHIP). All kernels except the
// monotone cubic clamp out-of-range queries to the boundary values.
//
// The monotone cubic kernel replicates a boundary override that operates
// on output *indices*: positions before int(x[0]) and from int(x[len-1])
// on are forced to the boundary output value. This coincides with
// coordinate clamping only when the x values are small integer sample
// indices starting near zero, which is how the peak-index sequences this
// utility was built for are laid out.
package interp
