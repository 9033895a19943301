// Package sigv4 implements AWS Signature Version 4 query-string presigning
// for Alexander Presign. The package is free of I/O: every function is a pure
// computation over its inputs, so callers control time, credentials, and the
// request being signed.
package sigv4

import "time"

// =============================================================================
// Constants
// =============================================================================

const (
	// SignV4Algorithm is the algorithm identifier for AWS Signature Version 4.
	SignV4Algorithm = "AWS4-HMAC-SHA256"

	// ISO8601BasicFormat is the timestamp format used in AWS v4 signatures.
	ISO8601BasicFormat = "20060102T150405Z"

	// YYYYMMDD is the short date format used in credential scope.
	YYYYMMDD = "20060102"

	// ServiceS3 is the service name for S3.
	ServiceS3 = "s3"

	// AWS4Request is the termination string for credential scope.
	AWS4Request = "aws4_request"

	// UnsignedPayload indicates the payload is not included in the signature.
	UnsignedPayload = "UNSIGNED-PAYLOAD"

	// PresignedURLMaxExpiry is the maximum expiry time for presigned URLs (7 days).
	PresignedURLMaxExpiry = 7 * 24 * time.Hour

	// PresignedURLMinExpiry is the minimum expiry time for presigned URLs (1 second).
	PresignedURLMinExpiry = 1 * time.Second
)

// =============================================================================
// Presigned URL Query Parameters
// =============================================================================

const (
	// XAmzAlgorithm identifies the signing algorithm.
	XAmzAlgorithm = "X-Amz-Algorithm"

	// XAmzCredential carries the access key and credential scope.
	XAmzCredential = "X-Amz-Credential"

	// XAmzDate is the signing timestamp in ISO 8601 basic format.
	XAmzDate = "X-Amz-Date"

	// XAmzExpires is the URL validity window in seconds.
	XAmzExpires = "X-Amz-Expires"

	// XAmzSecurityToken carries the STS session token, when present.
	XAmzSecurityToken = "X-Amz-Security-Token"

	// XAmzSignedHeaders lists the headers covered by the signature.
	XAmzSignedHeaders = "X-Amz-SignedHeaders"

	// XAmzSignature is the final hex signature, always appended last.
	XAmzSignature = "X-Amz-Signature"
)
