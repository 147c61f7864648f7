package odeglue

import "errors"

// Parameter errors returned by the [Toolbox] constructors. Constructors wrap
// them with the offending value; test with errors.Is.
var (
	ErrNonPositiveX0 = errors.New("odeglue: positive branch requires x0 > 0")
	ErrNonNegativeX0 = errors.New("odeglue: negative branch requires x0 < 0")
	ErrNotFinite     = errors.New("odeglue: parameter must be finite")
	ErrBadLimit      = errors.New("odeglue: limit must lie beyond x0")
)

// Decoding errors returned by [DecodeLegacy] and [ParseKind].
var (
	ErrUnknownKind  = errors.New("odeglue: unknown piece kind")
	ErrMissingField = errors.New("odeglue: missing required field")
)

// ErrUnknownSession is returned by [Sessions] for ids it does not hold.
var ErrUnknownSession = errors.New("odeglue: unknown session")
