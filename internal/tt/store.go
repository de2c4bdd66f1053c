package tt

import (
	"context"
	"io"
	"time"
)

// ObjectStore holds uploaded screenshots. Keys are unique per upload and the
// returned URL is stored verbatim.
type ObjectStore interface {
	// Upload stores size bytes read from r and returns the object's URL.
	Upload(ctx context.Context, container, key string, r io.Reader, size int64, contentType string) (string, error)

	// Download writes the object's bytes to w.
	Download(ctx context.Context, container, key string, w io.Writer) error

	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, container, key string) error

	// ValidateSetup verifies that the store is reachable and writable.
	ValidateSetup(ctx context.Context) error
}

// Mailer delivers activation links.
type Mailer interface {
	SendActivation(ctx context.Context, msg ActivationMail) error
}

// ActivationMail is the content of one activation message.
type ActivationMail struct {
	To        string
	Name      string
	Link      string
	ExpiresAt time.Time
}
