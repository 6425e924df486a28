// Package media abstracts the external image store. Uploads take an
// inline-encoded payload and return a stable retrieval URL; deletion is
// keyed by the public id recovered from that URL's trailing path segment.
package media

import (
	"context"
	"strings"
)

// Store is the media collaborator consumed by the services.
type Store interface {
	// Upload stores an inline-encoded image and returns its URL.
	Upload(ctx context.Context, payload string) (string, error)
	// Destroy removes a previously uploaded image given its URL.
	Destroy(ctx context.Context, url string) error
}

// PublicIDFromURL extracts the deletable identifier from a delivery URL:
// the last path segment with its file extension stripped.
func PublicIDFromURL(url string) string {
	segments := strings.Split(url, "/")
	last := segments[len(segments)-1]
	return strings.SplitN(last, ".", 2)[0]
}
