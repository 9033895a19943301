package sigv4

import "strings"

// =============================================================================
// Canonical Request Building
// =============================================================================

// CanonicalRequest assembles the canonical request string for a presigned
// request. Query pairs and headers must already be in ascending key order;
// header keys must be lowercase. The payload line is always
// UNSIGNED-PAYLOAD, since a presigned URL cannot commit to a body hash.
func CanonicalRequest(method, encodedPath string, query, headers []Pair) string {
	var b strings.Builder

	b.WriteString(method)
	b.WriteByte('\n')

	if encodedPath == "" {
		encodedPath = "/"
	}
	b.WriteString(encodedPath)
	b.WriteByte('\n')

	b.WriteString(CanonicalQueryString(query))
	b.WriteByte('\n')

	for _, h := range headers {
		b.WriteString(h.Key)
		b.WriteByte(':')
		b.WriteString(strings.TrimSpace(h.Value))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	b.WriteString(SignedHeaderNames(headers))
	b.WriteByte('\n')

	b.WriteString(UnsignedPayload)
	return b.String()
}

// CanonicalQueryString renders sorted query pairs as a canonical query
// string. The same rendering is used verbatim in the final URL.
func CanonicalQueryString(query []Pair) string {
	var b strings.Builder
	for i, q := range query {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(EncodeQuery(q.Key))
		b.WriteByte('=')
		b.WriteString(EncodeQuery(q.Value))
	}
	return b.String()
}

// SignedHeaderNames joins sorted lowercase header names with ";" for the
// canonical request and the X-Amz-SignedHeaders parameter.
func SignedHeaderNames(headers []Pair) string {
	names := make([]string, len(headers))
	for i, h := range headers {
		names[i] = h.Key
	}
	return strings.Join(names, ";")
}
