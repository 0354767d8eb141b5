package eda

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-eda/dsp/spectral"
)

// ErrUnknownMethod indicates a method name that no estimator implements.
var ErrUnknownMethod = errors.New("eda: unknown method")

// Method selects the sympathetic index estimator.
type Method int

const (
	// MethodPosada extracts band power from a Welch spectrum of the
	// decimated signal (Posada-Quintero et al., 2016).
	MethodPosada Method = iota
	// MethodGhiasi averages spectrogram magnitude inside the band
	// (Ghiasi et al., 2018).
	MethodGhiasi
)

// String returns the canonical method name.
func (m Method) String() string {
	switch m {
	case MethodPosada:
		return "posada"
	case MethodGhiasi:
		return "ghiasi"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps a method name to its Method value. Matching is
// case-insensitive and accepts the common aliases "posada-quintero" and
// "quintero".
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "posada", "posada-quintero", "quintero":
		return MethodPosada, nil
	case "ghiasi":
		return MethodGhiasi, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
}

// Indices holds the sympathetic activity indices of one record.
// SympN is Symp rescaled by the spectral maximum, making records of
// different overall power comparable.
type Indices struct {
	Symp  float64
	SympN float64
}

// DefaultBand is the sympathetic frequency band of Posada-Quintero et
// al. (2016).
var DefaultBand = spectral.Band{Low: 0.045, High: 0.25}

type config struct {
	method             Method
	band               spectral.Band
	plotter            Plotter
	resampledRateUnits bool
}

// Option configures Sympathetic.
type Option func(*config)

// WithMethod selects the estimator (default MethodPosada).
func WithMethod(m Method) Option {
	return func(c *config) {
		c.method = m
	}
}

// WithBand overrides the sympathetic frequency band.
func WithBand(b spectral.Band) Option {
	return func(c *config) {
		c.band = b
	}
}

// WithPlotter attaches a plotting collaborator that receives the
// intermediate spectrum or spectrogram. The computed indices are not
// affected.
func WithPlotter(p Plotter) Option {
	return func(c *config) {
		c.plotter = p
	}
}

// WithResampledRateOverlap makes the Ghiasi estimator size its filter,
// spectrogram segment and overlap in units of the 50 Hz analysis rate
// instead of the caller's rate. The published implementation mixes the
// two rates; see the ghiasi source for details.
func WithResampledRateOverlap() Option {
	return func(c *config) {
		c.resampledRateUnits = true
	}
}

// Sympathetic derives the sympathetic activity indices of an
// electrodermal activity record sampled at samplingRate Hz. The record
// should span several minutes; the band frequencies are low enough that
// short records leave the estimators without a full analysis segment,
// which fails with an error from the spectral package.
func Sympathetic(signal []float64, samplingRate float64, opts ...Option) (Indices, error) {
	cfg := config{
		method: MethodPosada,
		band:   DefaultBand,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if samplingRate <= 0 {
		return Indices{}, fmt.Errorf("eda: sampling rate must be > 0, got %g", samplingRate)
	}
	if err := cfg.band.Validate(); err != nil {
		return Indices{}, err
	}

	switch cfg.method {
	case MethodPosada:
		return posada(signal, samplingRate, cfg)
	case MethodGhiasi:
		return ghiasi(signal, samplingRate, cfg)
	default:
		return Indices{}, fmt.Errorf("%w: %d", ErrUnknownMethod, int(cfg.method))
	}
}
