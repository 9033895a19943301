package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/prn-tf/alexander-presign/credentials"
	"github.com/prn-tf/alexander-presign/internal/config"
	"github.com/prn-tf/alexander-presign/internal/keystore"
	"github.com/prn-tf/alexander-presign/internal/metrics"
	"github.com/prn-tf/alexander-presign/s3"
)

// CredentialSource resolves a key name to signing credentials.
// *keystore.Keystore is the production implementation.
type CredentialSource interface {
	Credentials(ctx context.Context, name string) (*credentials.Credentials, error)
}

// PresignService turns presign requests into signed URLs using credentials
// resolved from the keystore. Secrets are wiped as soon as signing finishes.
type PresignService struct {
	keys    CredentialSource
	cfg     config.SigningConfig
	style   s3.URLStyle
	metrics *metrics.Metrics
	logger  zerolog.Logger

	// now is the signing clock. Overridable in tests.
	now func() time.Time
}

// NewPresignService creates a PresignService.
func NewPresignService(keys CredentialSource, cfg config.SigningConfig, m *metrics.Metrics, logger zerolog.Logger) *PresignService {
	style := s3.VirtualHostStyle
	if cfg.URLStyle == "path" {
		style = s3.PathStyle
	}

	return &PresignService{
		keys:    keys,
		cfg:     cfg,
		style:   style,
		metrics: m,
		logger:  logger.With().Str("service", "presign").Logger(),
		now:     time.Now,
	}
}

// PresignInput contains the data needed to generate a presigned URL.
type PresignInput struct {
	// KeyName selects the signing key from the keystore.
	// Empty with Anonymous set produces an unsigned URL.
	KeyName string

	// Anonymous skips signing entirely. The resulting URL carries only the
	// action's own parameters and works against public buckets.
	Anonymous bool

	// Method is the HTTP method of the signed request
	// (GET, PUT, DELETE, HEAD).
	Method string

	// Bucket is the bucket name.
	Bucket string

	// Key is the object key. Empty targets the bucket itself: GET lists
	// objects, PUT creates the bucket, DELETE and HEAD act on the bucket.
	Key string

	// Expiry is how long the URL stays valid. Zero means the configured
	// default.
	Expiry time.Duration

	// Query holds extra query parameters to sign, such as
	// response-content-type.
	Query map[string]string

	// Headers holds extra headers the client promises to send; they are
	// bound into the signature.
	Headers map[string]string
}

// PresignOutput is the result of generating a presigned URL.
type PresignOutput struct {
	// URL is the presigned URL.
	URL string `json:"url"`

	// Method is the HTTP method the client must use.
	Method string `json:"method"`

	// ExpiresAt is when the URL stops being accepted.
	ExpiresAt time.Time `json:"expires_at"`

	// SignedHeaders are headers the client must send exactly as given.
	SignedHeaders map[string]string `json:"signed_headers,omitempty"`
}

// GeneratePresignedURL builds, signs and returns a presigned URL for the
// requested operation.
func (s *PresignService) GeneratePresignedURL(ctx context.Context, input PresignInput) (*PresignOutput, error) {
	timer := prometheus.NewTimer(s.metrics.PresignDuration)
	defer timer.ObserveDuration()

	out, err := s.generate(ctx, input)

	status := "ok"
	if err != nil {
		status = "error"
	}
	s.metrics.PresignRequests.WithLabelValues(input.Method, status).Inc()

	return out, err
}

func (s *PresignService) generate(ctx context.Context, input PresignInput) (*PresignOutput, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	expiry := input.Expiry
	if expiry == 0 {
		expiry = s.cfg.DefaultExpiry
	}
	if expiry < s.cfg.MinExpiry || expiry > s.cfg.MaxExpiry {
		return nil, fmt.Errorf("%w: %s not in [%s, %s]",
			ErrInvalidExpiration, expiry, s.cfg.MinExpiry, s.cfg.MaxExpiry)
	}

	var creds *credentials.Credentials
	if !input.Anonymous {
		var err error
		creds, err = s.lookupCredentials(ctx, input.KeyName)
		if err != nil {
			return nil, err
		}
		defer creds.Wipe()
	}

	bucket, err := s3.NewBucket(s.cfg.Endpoint, s.style, input.Bucket, s.cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBucket, err)
	}

	action, err := s.resolveAction(bucket, creds, input)
	if err != nil {
		return nil, err
	}

	for k, v := range input.Query {
		action.Query().Insert(k, v)
	}
	for k, v := range input.Headers {
		action.Headers().Insert(k, v)
	}

	signedAt := s.now().UTC()
	signedURL := action.SignAt(expiry, signedAt)
	expiresAt := signedAt.Add(expiry)

	event := s.logger.Debug().
		Str("method", input.Method).
		Str("bucket", input.Bucket).
		Str("key", input.Key).
		Time("expires_at", expiresAt)
	if creds != nil {
		event = event.Str("access_key_id", creds.AccessKey())
	}
	event.Msg("generated presigned URL")

	return &PresignOutput{
		URL:           signedURL.String(),
		Method:        input.Method,
		ExpiresAt:     expiresAt,
		SignedHeaders: input.Headers,
	}, nil
}

func (s *PresignService) lookupCredentials(ctx context.Context, name string) (*credentials.Credentials, error) {
	creds, err := s.keys.Credentials(ctx, name)
	if err != nil {
		switch {
		case errors.Is(err, keystore.ErrKeyNotFound):
			s.metrics.KeystoreLookups.WithLabelValues("miss").Inc()
		default:
			s.metrics.KeystoreLookups.WithLabelValues("error").Inc()
		}
		return nil, err
	}
	s.metrics.KeystoreLookups.WithLabelValues("hit").Inc()
	return creds, nil
}

// resolveAction maps method and key presence to an S3 action. An empty key
// addresses the bucket itself.
func (s *PresignService) resolveAction(bucket *s3.Bucket, creds *credentials.Credentials, input PresignInput) (s3.Action, error) {
	object := input.Key

	switch input.Method {
	case http.MethodGet:
		if object == "" {
			return bucket.ListObjectsV2(creds), nil
		}
		return bucket.GetObject(creds, object), nil
	case http.MethodHead:
		if object == "" {
			return bucket.HeadBucket(creds), nil
		}
		return bucket.HeadObject(creds, object), nil
	case http.MethodPut:
		if object == "" {
			return bucket.CreateBucket(creds), nil
		}
		return bucket.PutObject(creds, object), nil
	case http.MethodDelete:
		if object == "" {
			return bucket.DeleteBucket(creds), nil
		}
		return bucket.DeleteObject(creds, object), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, input.Method)
	}
}

func (s *PresignService) validateInput(input PresignInput) error {
	if input.KeyName == "" && !input.Anonymous {
		return fmt.Errorf("%w: key_name is required", ErrMissingRequiredParams)
	}
	if input.Method == "" {
		return fmt.Errorf("%w: method is required", ErrMissingRequiredParams)
	}
	if input.Bucket == "" {
		return fmt.Errorf("%w: bucket is required", ErrMissingRequiredParams)
	}
	return nil
}
