package s3

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/prn-tf/alexander-presign/credentials"
	"github.com/prn-tf/alexander-presign/sigv4"
)

// CreateMultipartUpload starts a multipart upload and yields the upload id
// used by every later part operation.
type CreateMultipartUpload struct {
	bucket  *Bucket
	creds   *credentials.Credentials
	object  string
	query   sigv4.Params
	headers sigv4.Params
}

// NewCreateMultipartUpload builds a CreateMultipartUpload action. Nil creds
// produce an anonymous URL.
func NewCreateMultipartUpload(bucket *Bucket, creds *credentials.Credentials, object string) *CreateMultipartUpload {
	return &CreateMultipartUpload{bucket: bucket, creds: creds, object: object}
}

func (a *CreateMultipartUpload) Method() string {
	return http.MethodPost
}

func (a *CreateMultipartUpload) Query() *sigv4.Params {
	return &a.query
}

func (a *CreateMultipartUpload) Headers() *sigv4.Params {
	return &a.headers
}

func (a *CreateMultipartUpload) Sign(expires time.Duration) *url.URL {
	return a.SignAt(expires, now())
}

func (a *CreateMultipartUpload) SignAt(expires time.Duration, t time.Time) *url.URL {
	u := a.bucket.ObjectURL(a.object)
	query := sigv4.MergedPairs([]sigv4.Pair{{Key: "uploads", Value: "1"}}, a.query.Pairs())
	return a.bucket.presign(a.creds, a.Method(), u, expires, t, query, a.headers.Pairs())
}

// CreateMultipartUploadResponse is the parsed InitiateMultipartUploadResult
// document.
type CreateMultipartUploadResponse struct {
	UploadID string `xml:"UploadId"`
}

// ParseCreateMultipartUploadResponse decodes the response body of a
// CreateMultipartUpload request.
func ParseCreateMultipartUploadResponse(data []byte) (*CreateMultipartUploadResponse, error) {
	var resp CreateMultipartUploadResponse
	if err := xml.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse create multipart upload response: %w", err)
	}
	return &resp, nil
}
