package assets

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// previewScheme prefixes local-only preview URLs. A URL carrying it must
// never reach the document store.
const previewScheme = "staged://"

// Ref is one image in a working image list. It is either persisted (backed
// by a durable blob-store URL) or staged (raw bytes plus a local preview,
// waiting for upload). Every visible image is exactly one of the two.
type Ref struct {
	url     string
	preview string
	payload []byte
	name    string
	staged  bool
}

// NewPersisted wraps a URL that is already durable; no upload will happen.
func NewPersisted(url string) *Ref {
	return &Ref{url: url}
}

// NewStaged holds raw bytes and a freshly minted local preview URL. The
// name labels the reference in upload errors.
func NewStaged(name string, payload []byte) *Ref {
	if name == "" {
		name = "image"
	}
	return &Ref{
		preview: fmt.Sprintf("%s%s", previewScheme, uuid.NewString()),
		payload: payload,
		name:    name,
		staged:  true,
	}
}

// URL returns the durable URL for persisted references and the local
// preview URL for staged ones.
func (r *Ref) URL() string {
	if r.staged {
		return r.preview
	}
	return r.url
}

func (r *Ref) Staged() bool {
	return r.staged
}

func (r *Ref) Name() string {
	return r.name
}

// promote converts a staged reference into a persisted one after a
// successful upload, releasing the local preview.
func (r *Ref) promote(url string) {
	r.url = url
	r.staged = false
	r.release()
}

// release drops the local preview resource. Safe to call twice.
func (r *Ref) release() {
	r.payload = nil
	r.preview = ""
}

// IsDurable reports whether url points at blob storage rather than a
// local-only preview.
func IsDurable(url string) bool {
	return url != "" && !strings.HasPrefix(url, previewScheme)
}
