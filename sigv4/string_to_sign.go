package sigv4

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// =============================================================================
// String to Sign Building
// =============================================================================

// Scope returns the credential scope string for a signing date and region:
// "<YYYYMMDD>/<region>/s3/aws4_request".
func Scope(date time.Time, region string) string {
	return date.UTC().Format(YYYYMMDD) + "/" + region + "/" + ServiceS3 + "/" + AWS4Request
}

// StringToSign builds the fixed four-line string to sign from the signing
// time, the credential scope region, and the canonical request.
func StringToSign(date time.Time, region, canonicalRequest string) string {
	hash := sha256.Sum256([]byte(canonicalRequest))

	return SignV4Algorithm + "\n" +
		date.UTC().Format(ISO8601BasicFormat) + "\n" +
		Scope(date, region) + "\n" +
		hex.EncodeToString(hash[:])
}
