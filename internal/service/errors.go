// Package service provides the business logic for Alexander Presign.
package service

import "errors"

// Common service errors.
var (
	ErrMissingRequiredParams = errors.New("missing required parameters")
	ErrUnsupportedMethod     = errors.New("unsupported HTTP method")
	ErrInvalidExpiration     = errors.New("invalid expiration: outside the configured window")
	ErrInvalidBucket         = errors.New("invalid bucket endpoint")
)
