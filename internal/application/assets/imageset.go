package assets

import (
	"bytes"
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/msamy/portfolio-api/internal/application/service"
	"github.com/msamy/portfolio-api/pkg/apperror"
	"github.com/msamy/portfolio-api/pkg/logger"
)

// ImageSet tracks one editable image list against its committed baseline:
// the URLs as they stood after the last successful save. Staged references
// become durable during ReconcileOnSave; baseline URLs that dropped out of
// the current list are deleted from blob storage in the same pass. Deletion
// is driven solely by the baseline diff, so removals and replacements share
// one cleanup path.
type ImageSet struct {
	blob     service.BlobStore
	logger   logger.Logger
	folder   string
	refs     []*Ref
	baseline []string
}

// NewImageSet seeds the working list from the committed URLs. Every seeded
// reference is persisted; the baseline equals the seed.
func NewImageSet(blob service.BlobStore, log logger.Logger, folder string, committed []string) *ImageSet {
	s := &ImageSet{
		blob:     blob,
		logger:   log,
		folder:   folder,
		baseline: append([]string(nil), committed...),
	}
	for _, url := range committed {
		s.refs = append(s.refs, NewPersisted(url))
	}
	return s
}

// AddFromURL appends an already durable URL. No upload is needed.
func (s *ImageSet) AddFromURL(url string) *Ref {
	ref := NewPersisted(url)
	s.refs = append(s.refs, ref)
	return ref
}

// AddFromFile appends a staged reference for raw bytes. Blob storage is not
// contacted until ReconcileOnSave.
func (s *ImageSet) AddFromFile(name string, payload []byte) *Ref {
	ref := NewStaged(name, payload)
	s.refs = append(s.refs, ref)
	return ref
}

// Remove drops a reference from the working list. A staged reference only
// releases its local preview; a persisted one stays durable until the next
// ReconcileOnSave notices it is missing from the baseline diff and deletes
// it. Removing before the replacement upload keeps the old asset alive if
// that upload fails.
func (s *ImageSet) Remove(ref *Ref) bool {
	for i, r := range s.refs {
		if r != ref {
			continue
		}
		s.refs = append(s.refs[:i], s.refs[i+1:]...)
		if r.staged {
			r.release()
		}
		return true
	}
	return false
}

// Refs returns the current working list in order.
func (s *ImageSet) Refs() []*Ref {
	out := make([]*Ref, len(s.refs))
	copy(out, s.refs)
	return out
}

// URLs is the working view: durable URLs for persisted entries, local
// preview URLs for staged ones.
func (s *ImageSet) URLs() []string {
	urls := make([]string, len(s.refs))
	for i, r := range s.refs {
		urls[i] = r.URL()
	}
	return urls
}

// UploadStaged makes every staged reference durable. Uploads of unrelated
// images run concurrently. All-or-nothing: any failure aborts with an
// AssetUploadError naming the failed item and nothing gets deleted.
// References that did round-trip stay promoted, so a retry re-uploads only
// what is still staged.
func (s *ImageSet) UploadStaged(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, ref := range s.refs {
		if !ref.staged {
			continue
		}
		g.Go(func() error {
			url, err := s.blob.Put(gctx, bytes.NewReader(ref.payload), s.folder, uuid.NewString())
			if err != nil {
				return apperror.NewAssetUpload(ref.name, err)
			}
			ref.promote(url)
			return nil
		})
	}
	return g.Wait()
}

// FinalURLs is the ordered durable URL list, valid only once nothing is
// staged anymore.
func (s *ImageSet) FinalURLs() ([]string, error) {
	urls := make([]string, len(s.refs))
	for i, ref := range s.refs {
		if ref.staged {
			return nil, apperror.NewAssetUpload(ref.name, nil)
		}
		urls[i] = ref.url
	}
	return urls, nil
}

// CleanupOrphans deletes every baseline URL that dropped out of the current
// set and advances the baseline. Delete failures are logged, never fatal:
// an orphaned asset beats a blocked save. A URL whose delete failed stays
// in the baseline so the next save retries it.
func (s *ImageSet) CleanupOrphans(ctx context.Context) {
	current := make(map[string]struct{}, len(s.refs))
	urls := make([]string, len(s.refs))
	for i, ref := range s.refs {
		urls[i] = ref.url
		current[ref.url] = struct{}{}
	}

	var orphans []string
	for _, old := range s.baseline {
		if _, live := current[old]; !live && IsDurable(old) {
			orphans = append(orphans, old)
		}
	}

	s.baseline = append([]string(nil), urls...)
	if len(orphans) == 0 {
		return
	}

	failed := make([]bool, len(orphans))
	dg, dctx := errgroup.WithContext(ctx)
	for i, url := range orphans {
		dg.Go(func() error {
			if err := s.blob.Delete(dctx, url); err != nil {
				s.logger.Warn("Failed to delete orphaned asset",
					zap.String("url", url), zap.Error(err))
				failed[i] = true
			}
			return nil
		})
	}
	dg.Wait()

	for i, url := range orphans {
		if failed[i] {
			s.baseline = append(s.baseline, url)
		}
	}
}

// DiscardUploads compensates an aborted save: it deletes the durable URLs
// the given references gained this pass, so a failed document write does
// not strand fresh blobs. Snapshot the staged references before uploading,
// pass them here after the write failed. Best effort, failures are logged.
func (s *ImageSet) DiscardUploads(ctx context.Context, fresh []*Ref) {
	g, gctx := errgroup.WithContext(ctx)
	for _, ref := range fresh {
		if ref.staged || ref.url == "" {
			continue
		}
		g.Go(func() error {
			if err := s.blob.Delete(gctx, ref.url); err != nil {
				s.logger.Warn("Failed to delete upload of aborted save",
					zap.String("url", ref.url), zap.Error(err))
			}
			return nil
		})
	}
	g.Wait()
}

// StagedRefs returns the references still awaiting upload.
func (s *ImageSet) StagedRefs() []*Ref {
	var out []*Ref
	for _, ref := range s.refs {
		if ref.staged {
			out = append(out, ref)
		}
	}
	return out
}

// ReconcileOnSave is the full pass over one list: upload everything staged,
// hand the ordered durable URLs to persist for the document write, then
// clean up what the baseline diff says is orphaned. Replacements are safe
// by construction: the new upload strictly precedes the old delete, and the
// delete only happens once the document write succeeded. A failed persist
// aborts the pass and drops the blobs this pass uploaded.
func (s *ImageSet) ReconcileOnSave(ctx context.Context, persist func(urls []string) error) ([]string, error) {
	fresh := s.StagedRefs()
	if err := s.UploadStaged(ctx); err != nil {
		return nil, err
	}
	urls, err := s.FinalURLs()
	if err != nil {
		return nil, err
	}
	if persist != nil {
		if err := persist(urls); err != nil {
			s.DiscardUploads(ctx, fresh)
			return nil, err
		}
	}
	s.CleanupOrphans(ctx)
	return urls, nil
}
