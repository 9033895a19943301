// Package s3 builds presignable requests for S3 and S3-compatible object
// stores. A Bucket pins an endpoint, addressing style, bucket name and
// region; action builders produce presigned URLs for individual API calls
// without performing any network I/O themselves.
package s3

import (
	"net/url"
	"strings"
	"time"

	"github.com/prn-tf/alexander-presign/credentials"
	"github.com/prn-tf/alexander-presign/sigv4"
)

// =============================================================================
// Bucket
// =============================================================================

// URLStyle selects how the bucket name is carried in request URLs.
type URLStyle int

const (
	// PathStyle puts the bucket name as the first path segment
	// (https://endpoint/bucket/key). Required by most self-hosted stores.
	PathStyle URLStyle = iota

	// VirtualHostStyle puts the bucket name in the hostname
	// (https://bucket.endpoint/key). The AWS default.
	VirtualHostStyle
)

// Bucket addresses a single bucket on an S3-compatible endpoint. Bucket is
// immutable after construction and safe for concurrent use.
type Bucket struct {
	baseURL url.URL
	name    string
	region  string
}

// NewBucket validates endpoint and returns a bucket rooted at it. The
// endpoint scheme must be http or https and a host must be present; default
// ports are stripped so they never leak into the signed host header.
func NewBucket(endpoint string, style URLStyle, name, region string) (*Bucket, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, ErrUnsupportedScheme
	}
	if u.Host == "" {
		return nil, ErrMissingHost
	}

	port := u.Port()
	if u.Scheme == "https" && port == "443" || u.Scheme == "http" && port == "80" {
		u.Host = strings.TrimSuffix(u.Host, ":"+port)
	}

	base := url.URL{Scheme: u.Scheme, Host: u.Host}
	switch style {
	case VirtualHostStyle:
		base.Host = name + "." + base.Host
		base.Path = "/"
	default:
		base.Path = "/" + name + "/"
	}

	return &Bucket{baseURL: base, name: name, region: region}, nil
}

// Name returns the bucket name.
func (b *Bucket) Name() string {
	return b.name
}

// Region returns the signing region.
func (b *Bucket) Region() string {
	return b.region
}

// BaseURL returns a copy of the bucket root URL, path ending in "/".
func (b *Bucket) BaseURL() *url.URL {
	u := b.baseURL
	return &u
}

// ObjectURL returns the URL of an object in the bucket. Each byte of the
// key outside the unreserved set is percent-encoded, except "/", which is
// kept literal so keys keep their segment structure.
func (b *Bucket) ObjectURL(object string) *url.URL {
	u := b.baseURL
	u.Path = b.baseURL.Path + object
	if encoded := sigv4.EncodePath(object); encoded != object {
		u.RawPath = b.baseURL.Path + encoded
	}
	return &u
}

// =============================================================================
// Action Factories
// =============================================================================

// GetObject prepares a GET of an object. Nil credentials presign nothing
// and yield a plain anonymous URL.
func (b *Bucket) GetObject(creds *credentials.Credentials, object string) *GetObject {
	return NewGetObject(b, creds, object)
}

// HeadObject prepares a HEAD of an object.
func (b *Bucket) HeadObject(creds *credentials.Credentials, object string) *HeadObject {
	return NewHeadObject(b, creds, object)
}

// PutObject prepares a PUT of an object.
func (b *Bucket) PutObject(creds *credentials.Credentials, object string) *PutObject {
	return NewPutObject(b, creds, object)
}

// DeleteObject prepares a DELETE of an object.
func (b *Bucket) DeleteObject(creds *credentials.Credentials, object string) *DeleteObject {
	return NewDeleteObject(b, creds, object)
}

// CopyObject prepares a server-side copy from a source in src onto object.
func (b *Bucket) CopyObject(creds *credentials.Credentials, src *Bucket, srcObject, object string) *CopyObject {
	return NewCopyObject(b, creds, src, srcObject, object)
}

// DeleteObjects prepares a batch delete POST.
func (b *Bucket) DeleteObjects(creds *credentials.Credentials, objects []ObjectIdentifier) *DeleteObjects {
	return NewDeleteObjects(b, creds, objects)
}

// ListObjectsV2 prepares a bucket listing.
func (b *Bucket) ListObjectsV2(creds *credentials.Credentials) *ListObjectsV2 {
	return NewListObjectsV2(b, creds)
}

// CreateBucket prepares bucket creation. Credentials are mandatory.
func (b *Bucket) CreateBucket(creds *credentials.Credentials) *CreateBucket {
	return NewCreateBucket(b, creds)
}

// DeleteBucket prepares bucket deletion. Credentials are mandatory.
func (b *Bucket) DeleteBucket(creds *credentials.Credentials) *DeleteBucket {
	return NewDeleteBucket(b, creds)
}

// HeadBucket prepares a bucket existence probe.
func (b *Bucket) HeadBucket(creds *credentials.Credentials) *HeadBucket {
	return NewHeadBucket(b, creds)
}

// GetBucketPolicy prepares a bucket policy fetch.
func (b *Bucket) GetBucketPolicy(creds *credentials.Credentials) *GetBucketPolicy {
	return NewGetBucketPolicy(b, creds)
}

// CreateMultipartUpload starts the multipart upload flow for an object.
func (b *Bucket) CreateMultipartUpload(creds *credentials.Credentials, object string) *CreateMultipartUpload {
	return NewCreateMultipartUpload(b, creds, object)
}

// UploadPart prepares the upload of one part of a multipart upload.
func (b *Bucket) UploadPart(creds *credentials.Credentials, object string, partNumber uint16, uploadID string) *UploadPart {
	return NewUploadPart(b, creds, object, partNumber, uploadID)
}

// CompleteMultipartUpload finishes a multipart upload from its part ETags.
func (b *Bucket) CompleteMultipartUpload(creds *credentials.Credentials, object, uploadID string, etags []string) *CompleteMultipartUpload {
	return NewCompleteMultipartUpload(b, creds, object, uploadID, etags)
}

// AbortMultipartUpload discards an in-progress multipart upload.
func (b *Bucket) AbortMultipartUpload(creds *credentials.Credentials, object, uploadID string) *AbortMultipartUpload {
	return NewAbortMultipartUpload(b, creds, object, uploadID)
}

// ListParts prepares a listing of the parts uploaded so far.
func (b *Bucket) ListParts(creds *credentials.Credentials, object, uploadID string) *ListParts {
	return NewListParts(b, creds, object, uploadID)
}

// presign signs u for this bucket, or attaches the query unsigned when
// creds is nil.
func (b *Bucket) presign(creds *credentials.Credentials, method string, u *url.URL, expires time.Duration, t time.Time, query, headers []sigv4.Pair) *url.URL {
	if creds == nil {
		return sigv4.AppendQuery(u, query)
	}
	return sigv4.SignURL(sigv4.SignRequest{
		Time:         t,
		Method:       method,
		URL:          u,
		Region:       b.region,
		Expires:      expires,
		AccessKey:    creds.AccessKey(),
		Secret:       creds.SecretKey(),
		SessionToken: creds.SessionToken(),
		Query:        query,
		Headers:      headers,
	})
}
