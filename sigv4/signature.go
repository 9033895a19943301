package sigv4

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// =============================================================================
// Signing Key Generation
// =============================================================================

// SigningKey derives the signing key for AWS v4 signatures:
// HMAC(HMAC(HMAC(HMAC("AWS4"+secret, date), region), "s3"), "aws4_request").
// The intermediate "AWS4"+secret buffer is zeroed before returning.
func SigningKey(secret string, date time.Time, region string) []byte {
	prefixed := make([]byte, 0, 4+len(secret))
	prefixed = append(prefixed, "AWS4"...)
	prefixed = append(prefixed, secret...)

	kDate := hmacSHA256(prefixed, []byte(date.UTC().Format(YYYYMMDD)))
	Wipe(prefixed)

	kRegion := hmacSHA256(kDate, []byte(region))
	kService := hmacSHA256(kRegion, []byte(ServiceS3))
	return hmacSHA256(kService, []byte(AWS4Request))
}

// Signature computes the final lowercase hex signature over stringToSign.
// The derived signing key is zeroed before returning.
func Signature(secret string, date time.Time, region, stringToSign string) string {
	key := SigningKey(secret, date, region)
	defer Wipe(key)
	return hex.EncodeToString(hmacSHA256(key, []byte(stringToSign)))
}

// hmacSHA256 computes HMAC-SHA256.
func hmacSHA256(key, data []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}

// Wipe zeroes b in place. Used on buffers holding secret key material.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
