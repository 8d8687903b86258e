package assets

import (
	"bytes"
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/msamy/portfolio-api/internal/application/service"
	"github.com/msamy/portfolio-api/pkg/apperror"
	"github.com/msamy/portfolio-api/pkg/logger"
)

// AvatarSlot is the image lifecycle at singular cardinality: one optional
// avatar on the profile. Replacement uploads the new file first; the old
// durable avatar is deleted only after the swap succeeded. If the upload
// fails the old avatar and the stored profile stay exactly as they were.
type AvatarSlot struct {
	blob      service.BlobStore
	logger    logger.Logger
	folder    string
	current   *Ref
	committed string
}

func NewAvatarSlot(blob service.BlobStore, log logger.Logger, folder, committed string) *AvatarSlot {
	s := &AvatarSlot{blob: blob, logger: log, folder: folder}
	if committed != "" && IsDurable(committed) {
		s.committed = committed
		s.current = NewPersisted(committed)
	}
	return s
}

// SetURL points the slot at an already durable URL.
func (s *AvatarSlot) SetURL(url string) {
	s.discard()
	if url == "" {
		return
	}
	s.current = NewPersisted(url)
}

// Stage replaces the slot content with not-yet-uploaded bytes.
func (s *AvatarSlot) Stage(name string, payload []byte) {
	s.discard()
	s.current = NewStaged(name, payload)
}

// Clear empties the slot. A previously committed avatar is deleted at the
// next ReconcileOnSave.
func (s *AvatarSlot) Clear() {
	s.discard()
}

func (s *AvatarSlot) discard() {
	if s.current != nil && s.current.staged {
		s.current.release()
	}
	s.current = nil
}

// URL is the working view of the slot, empty when unset.
func (s *AvatarSlot) URL() string {
	if s.current == nil {
		return ""
	}
	return s.current.URL()
}

// Upload makes a staged avatar durable; no-op when the slot holds nothing
// or an already durable URL.
func (s *AvatarSlot) Upload(ctx context.Context) error {
	if s.current == nil || !s.current.staged {
		return nil
	}
	url, err := s.blob.Put(ctx, bytes.NewReader(s.current.payload), s.folder, uuid.NewString())
	if err != nil {
		return apperror.NewAssetUpload(s.current.name, err)
	}
	s.current.promote(url)
	return nil
}

// FinalURL is the durable slot value, valid only once nothing is staged.
func (s *AvatarSlot) FinalURL() (string, error) {
	if s.current == nil {
		return "", nil
	}
	if s.current.staged {
		return "", apperror.NewAssetUpload(s.current.name, nil)
	}
	return s.current.url, nil
}

// CleanupReplaced deletes the previously committed avatar if the slot moved
// away from it, then advances the committed value. Failures are logged, not
// returned.
func (s *AvatarSlot) CleanupReplaced(ctx context.Context) {
	final := ""
	if s.current != nil {
		final = s.current.url
	}
	if s.committed != "" && s.committed != final {
		if err := s.blob.Delete(ctx, s.committed); err != nil {
			s.logger.Warn("Failed to delete replaced avatar",
				zap.String("url", s.committed), zap.Error(err))
		}
	}
	s.committed = final
}

// DiscardUpload compensates an aborted save: it deletes the URL the slot
// gained from Upload this pass, so a failed document write does not strand
// the fresh blob. Only meaningful after Upload promoted a staged value.
// Best effort, failure is logged.
func (s *AvatarSlot) DiscardUpload(ctx context.Context) {
	if s.current == nil || s.current.staged {
		return
	}
	url := s.current.url
	if url == "" || url == s.committed {
		return
	}
	if err := s.blob.Delete(ctx, url); err != nil {
		s.logger.Warn("Failed to delete avatar upload of aborted save",
			zap.String("url", url), zap.Error(err))
	}
}

// ReconcileOnSave returns the durable avatar URL to store ("" when the slot
// is empty), handing it to persist for the document write in between.
// Upload happens before any deletion; the old committed avatar is removed
// only once the replacement is durable and the document write succeeded,
// and a delete failure is logged rather than failing the save. A failed
// persist aborts the pass and drops the blob this pass uploaded.
func (s *AvatarSlot) ReconcileOnSave(ctx context.Context, persist func(url string) error) (string, error) {
	wasStaged := s.current != nil && s.current.staged
	if err := s.Upload(ctx); err != nil {
		return "", err
	}
	final, err := s.FinalURL()
	if err != nil {
		return "", err
	}
	if persist != nil {
		if err := persist(final); err != nil {
			if wasStaged {
				s.DiscardUpload(ctx)
			}
			return "", err
		}
	}
	s.CleanupReplaced(ctx)
	return final, nil
}
