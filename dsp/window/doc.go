// Package window provides the cosine-sum window functions used by the
// spectral estimators.
//
// The set is intentionally small: rectangular, Hann, Hamming, Blackman and
// 4-term Blackman-Harris cover the windows the sympathetic-index pipelines
// reference by name. [ParseType] resolves those names.
package window
