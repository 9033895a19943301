package s3

import (
	"crypto/md5"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/prn-tf/alexander-presign/credentials"
	"github.com/prn-tf/alexander-presign/sigv4"
)

// ObjectIdentifier names one object in a batch delete, optionally pinned to
// a version.
type ObjectIdentifier struct {
	Key       string
	VersionID string
}

// DeleteObjects removes up to 1000 objects in one POST. The request carries
// an XML body; Body and ContentMD5 produce the payload and the Content-MD5
// header S3 requires for it.
type DeleteObjects struct {
	bucket  *Bucket
	creds   *credentials.Credentials
	objects []ObjectIdentifier
	quiet   bool
	query   sigv4.Params
	headers sigv4.Params
}

// NewDeleteObjects builds a DeleteObjects action. Nil creds produce an anonymous URL.
func NewDeleteObjects(bucket *Bucket, creds *credentials.Credentials, objects []ObjectIdentifier) *DeleteObjects {
	return &DeleteObjects{bucket: bucket, creds: creds, objects: objects}
}

// SetQuiet suppresses per-object results in the response.
func (a *DeleteObjects) SetQuiet(quiet bool) {
	a.quiet = quiet
}

func (a *DeleteObjects) Method() string {
	return http.MethodPost
}

func (a *DeleteObjects) Query() *sigv4.Params {
	return &a.query
}

func (a *DeleteObjects) Headers() *sigv4.Params {
	return &a.headers
}

func (a *DeleteObjects) Sign(expires time.Duration) *url.URL {
	return a.SignAt(expires, now())
}

func (a *DeleteObjects) SignAt(expires time.Duration, t time.Time) *url.URL {
	u := a.bucket.BaseURL()
	query := sigv4.MergedPairs([]sigv4.Pair{{Key: "delete", Value: "1"}}, a.query.Pairs())
	return a.bucket.presign(a.creds, a.Method(), u, expires, t, query, a.headers.Pairs())
}

// Body renders the Delete XML document for the request.
func (a *DeleteObjects) Body() ([]byte, error) {
	doc := deleteDocument{Quiet: a.quiet}
	for _, obj := range a.objects {
		entry := deleteEntry{Key: obj.Key}
		if obj.VersionID != "" {
			v := obj.VersionID
			entry.VersionID = &v
		}
		doc.Objects = append(doc.Objects, entry)
	}

	body, err := xml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal delete document: %w", err)
	}
	return body, nil
}

// ContentMD5 returns the base64 MD5 digest of body for the Content-MD5
// header.
func ContentMD5(body []byte) string {
	sum := md5.Sum(body)
	return base64.StdEncoding.EncodeToString(sum[:])
}

type deleteDocument struct {
	XMLName xml.Name      `xml:"Delete"`
	Objects []deleteEntry `xml:"Object"`
	Quiet   bool          `xml:"Quiet,omitempty"`
}

type deleteEntry struct {
	Key       string  `xml:"Key"`
	VersionID *string `xml:"VersionId,omitempty"`
}
