package domain

import "errors"

var (
	// ErrDataUnavailable is returned when a required source table cannot be read.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrRenderFailure is returned by report renderers.
	ErrRenderFailure     = errors.New("render failure")
	ErrUnsupportedFormat = errors.New("unsupported report format")
	ErrUnsupportedSource = errors.New("unsupported dataset source")
)
