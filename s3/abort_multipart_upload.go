package s3

import (
	"net/http"
	"net/url"
	"time"

	"github.com/prn-tf/alexander-presign/credentials"
	"github.com/prn-tf/alexander-presign/sigv4"
)

// AbortMultipartUpload discards an in-progress multipart upload and frees
// its stored parts.
type AbortMultipartUpload struct {
	bucket   *Bucket
	creds    *credentials.Credentials
	object   string
	uploadID string
	query    sigv4.Params
	headers  sigv4.Params
}

// NewAbortMultipartUpload builds an AbortMultipartUpload action. Nil creds
// produce an anonymous URL.
func NewAbortMultipartUpload(bucket *Bucket, creds *credentials.Credentials, object, uploadID string) *AbortMultipartUpload {
	return &AbortMultipartUpload{bucket: bucket, creds: creds, object: object, uploadID: uploadID}
}

func (a *AbortMultipartUpload) Method() string {
	return http.MethodDelete
}

func (a *AbortMultipartUpload) Query() *sigv4.Params {
	return &a.query
}

func (a *AbortMultipartUpload) Headers() *sigv4.Params {
	return &a.headers
}

func (a *AbortMultipartUpload) Sign(expires time.Duration) *url.URL {
	return a.SignAt(expires, now())
}

func (a *AbortMultipartUpload) SignAt(expires time.Duration, t time.Time) *url.URL {
	u := a.bucket.ObjectURL(a.object)
	query := sigv4.MergedPairs([]sigv4.Pair{{Key: "uploadId", Value: a.uploadID}}, a.query.Pairs())
	return a.bucket.presign(a.creds, a.Method(), u, expires, t, query, a.headers.Pairs())
}
