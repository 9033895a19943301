package keystore

import "errors"

var (
	// ErrKeyNotFound indicates no signing key exists under the requested name.
	ErrKeyNotFound = errors.New("signing key not found")

	// ErrUnsupportedDriver indicates the configured keystore driver is unknown.
	ErrUnsupportedDriver = errors.New("unsupported keystore driver")
)
