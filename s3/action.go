package s3

import (
	"net/url"
	"time"

	"github.com/prn-tf/alexander-presign/sigv4"
)

// =============================================================================
// Action
// =============================================================================

// Action is a single S3 API request that can be rendered into a presigned
// URL. Every builder in this package implements it.
//
// Query and Headers expose the extra parameters the caller wants attached;
// header keys must be lowercase. Signing consumes both maps in sorted order
// together with the parameters each action contributes itself.
type Action interface {
	// Method returns the HTTP method the signed request must use.
	Method() string

	// Query returns the caller-supplied query parameters.
	Query() *sigv4.Params

	// Headers returns the caller-supplied headers to be signed.
	Headers() *sigv4.Params

	// Sign presigns the request with the current time.
	Sign(expires time.Duration) *url.URL

	// SignAt presigns the request with an explicit signing time. Output is
	// deterministic in t, so re-signing with the same instant reproduces
	// the same URL.
	SignAt(expires time.Duration, t time.Time) *url.URL
}

// now is the signing clock for Sign. Overridable in tests.
var now = time.Now
