package sigv4

import "strings"

// =============================================================================
// Percent Encoding
// =============================================================================
//
// AWS v4 canonicalization requires a stricter percent encoding than net/url
// produces: every byte outside the unreserved set (A-Z a-z 0-9 - . _ ~) must
// be escaped as an uppercase %XX triplet, spaces become %20 rather than "+",
// and non-ASCII input is escaped byte-by-byte as raw UTF-8. The same encoding
// is used both for the canonical request and for the final URL, so the URL a
// client fetches is byte-identical to what was signed.

const upperhex = "0123456789ABCDEF"

// unreserved reports whether c may appear unescaped in a canonical URL.
func unreserved(c byte) bool {
	return 'A' <= c && c <= 'Z' ||
		'a' <= c && c <= 'z' ||
		'0' <= c && c <= '9' ||
		c == '-' || c == '.' || c == '_' || c == '~'
}

// EncodeQuery percent-encodes s for use as a query parameter key or value.
// Every byte outside the unreserved set is escaped, including "/".
func EncodeQuery(s string) string {
	return escape(s, false)
}

// EncodePath percent-encodes s for use in a URL path. Identical to
// EncodeQuery except that "/" passes through unescaped, preserving key
// segment structure.
func EncodePath(s string) string {
	return escape(s, true)
}

func escape(s string, keepSlash bool) string {
	var hexCount int
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !unreserved(c) && !(keepSlash && c == '/') {
			hexCount++
		}
	}
	if hexCount == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*hexCount)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) || keepSlash && c == '/' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0xf])
	}
	return b.String()
}
