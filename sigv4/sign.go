package sigv4

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// Presigned URL Assembly
// =============================================================================

// SignRequest carries everything needed to presign one request. Query and
// Headers must be in ascending key order; header keys must be lowercase.
// The host header is supplied by the signer and must not appear in Headers.
type SignRequest struct {
	Time    time.Time
	Method  string
	URL     *url.URL
	Region  string
	Expires time.Duration

	AccessKey    string
	Secret       string
	SessionToken string

	Query   []Pair
	Headers []Pair
}

// SignURL presigns req.URL in place and returns it. The URL's query is
// replaced by the canonical rendering of the signing parameters merged with
// req.Query, with X-Amz-Signature appended last. The output is fully
// deterministic in the inputs.
func SignURL(req SignRequest) *url.URL {
	u := req.URL
	date := req.Time.UTC()

	headers := MergedPairs([]Pair{{Key: "host", Value: hostHeader(u)}}, req.Headers)

	standard := make([]Pair, 0, 6)
	standard = append(standard,
		Pair{Key: XAmzAlgorithm, Value: SignV4Algorithm},
		Pair{Key: XAmzCredential, Value: req.AccessKey + "/" + Scope(date, req.Region)},
		Pair{Key: XAmzDate, Value: date.Format(ISO8601BasicFormat)},
		Pair{Key: XAmzExpires, Value: strconv.FormatInt(int64(req.Expires/time.Second), 10)},
	)
	if req.SessionToken != "" {
		standard = append(standard, Pair{Key: XAmzSecurityToken, Value: req.SessionToken})
	}
	standard = append(standard, Pair{Key: XAmzSignedHeaders, Value: SignedHeaderNames(headers)})

	query := MergedPairs(standard, req.Query)
	u.RawQuery = CanonicalQueryString(query)

	canonicalRequest := CanonicalRequest(req.Method, u.EscapedPath(), query, headers)
	stringToSign := StringToSign(date, req.Region, canonicalRequest)
	signature := Signature(req.Secret, date, req.Region, stringToSign)

	u.RawQuery += "&" + XAmzSignature + "=" + signature
	return u
}

// AppendQuery appends sorted query pairs to u without signing. Used for
// anonymous requests, which carry their parameters but no signature.
func AppendQuery(u *url.URL, query []Pair) *url.URL {
	if len(query) == 0 {
		return u
	}
	encoded := CanonicalQueryString(query)
	if u.RawQuery == "" {
		u.RawQuery = encoded
	} else {
		u.RawQuery += "&" + encoded
	}
	return u
}

// hostHeader returns the value of the host header implied by u. Default
// ports are omitted, matching what an HTTP client would send.
func hostHeader(u *url.URL) string {
	port := u.Port()
	if port == "" {
		return u.Host
	}
	if u.Scheme == "https" && port == "443" || u.Scheme == "http" && port == "80" {
		return strings.TrimSuffix(u.Host, ":"+port)
	}
	return u.Host
}
