package s3

import "errors"

// Bucket construction errors. Signing itself never fails: once a Bucket
// exists, every Sign call produces a URL.
var (
	// ErrUnsupportedScheme is returned for endpoints that are not http or https.
	ErrUnsupportedScheme = errors.New("endpoint scheme must be http or https")

	// ErrMissingHost is returned for endpoints without a host component.
	ErrMissingHost = errors.New("endpoint is missing a host")
)
