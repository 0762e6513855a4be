// Package storage issues short-lived signed URLs so browsers upload
// photos and documents straight to the bucket; files never pass through
// this service.
package storage

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/vportella/landfolio/internal/config"
)

// ErrNotConfigured is returned when the bucket or signing credentials
// are missing.
var ErrNotConfigured = errors.New("object storage is not configured")

// SignedUpload is everything a client needs to perform a direct upload.
type SignedUpload struct {
	UploadURL string    `json:"upload_url"`
	Method    string    `json:"method"`
	ObjectKey string    `json:"object_key"`
	PublicURL string    `json:"public_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Signer creates v4 signed PUT URLs for the configured bucket using the
// service-account key already present in config.
type Signer struct {
	bucket     string
	accessID   string
	privateKey []byte
	ttl        time.Duration
}

// NewSigner builds a Signer from config. Returns ErrNotConfigured when
// the bucket or credentials are absent, so callers can surface a clear
// error instead of failing at request time.
func NewSigner(cfg *config.Config) (*Signer, error) {
	if cfg.Storage.Bucket == "" {
		return nil, fmt.Errorf("%w: GCS_BUCKET is empty", ErrNotConfigured)
	}
	if cfg.Sheets.ClientEmail == "" || cfg.Sheets.PrivateKey == "" {
		return nil, fmt.Errorf("%w: service account credentials are empty", ErrNotConfigured)
	}

	key := strings.ReplaceAll(cfg.Sheets.PrivateKey, `\n`, "\n")
	return &Signer{
		bucket:     cfg.Storage.Bucket,
		accessID:   cfg.Sheets.ClientEmail,
		privateKey: []byte(key),
		ttl:        cfg.Storage.UploadTTL,
	}, nil
}

// SignUpload issues a signed PUT URL for one object. The object key is
// prefixed with a fresh UUID so concurrent uploads of the same filename
// never collide.
func (s *Signer) SignUpload(filename, contentType string) (*SignedUpload, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, errors.New("filename is required")
	}

	key := ObjectKey(filename)
	expires := time.Now().Add(s.ttl)

	url, err := storage.SignedURL(s.bucket, key, &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		Method:         "PUT",
		Expires:        expires,
		ContentType:    contentType,
		GoogleAccessID: s.accessID,
		PrivateKey:     s.privateKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign upload URL: %w", err)
	}

	return &SignedUpload{
		UploadURL: url,
		Method:    "PUT",
		ObjectKey: key,
		PublicURL: fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key),
		ExpiresAt: expires,
	}, nil
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// ObjectKey builds the bucket key for an uploaded file:
// uploads/<uuid>-<sanitized basename>.
func ObjectKey(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = unsafeKeyChars.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-.")
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("uploads/%s-%s", uuid.New().String(), base)
}
