package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msamy/portfolio-api/pkg/apperror"
	"github.com/msamy/portfolio-api/pkg/logger"
)

// fakeBlob records blob-store traffic and the order it arrived in.
type fakeBlob struct {
	mu      sync.Mutex
	puts    int
	deletes []string
	ops     []string
	putErr  error
	delErr  error
	nextURL int
}

func (f *fakeBlob) Put(_ context.Context, data io.Reader, _ string, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return "", f.putErr
	}
	io.ReadAll(data)
	f.puts++
	f.nextURL++
	url := fmt.Sprintf("https://blob/%d.png", f.nextURL)
	f.ops = append(f.ops, "put "+url)
	return url, nil
}

func (f *fakeBlob) Delete(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, url)
	f.ops = append(f.ops, "delete "+url)
	return f.delErr
}

func TestImageSet_StagedRemovedBeforeSave_NoBlobTraffic(t *testing.T) {
	blob := &fakeBlob{}
	set := NewImageSet(blob, logger.NewNop(), "projects", nil)

	ref := set.AddFromFile("shot.png", []byte("bytes"))
	assert.True(t, ref.Staged())
	assert.True(t, set.Remove(ref))

	urls, err := set.ReconcileOnSave(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, urls)
	assert.Zero(t, blob.puts)
	assert.Empty(t, blob.deletes)
}

func TestImageSet_StagedUploadOnSave(t *testing.T) {
	blob := &fakeBlob{}
	set := NewImageSet(blob, logger.NewNop(), "projects", nil)

	ref := set.AddFromFile("shot.png", []byte("bytes"))
	preview := ref.URL()
	assert.False(t, IsDurable(preview))

	urls, err := set.ReconcileOnSave(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, urls, 1)
	assert.Equal(t, 1, blob.puts)
	assert.True(t, IsDurable(urls[0]))
	assert.NotContains(t, urls, preview)
	assert.False(t, ref.Staged())
}

func TestImageSet_RemovePersistedDeletesOnSave(t *testing.T) {
	blob := &fakeBlob{}
	set := NewImageSet(blob, logger.NewNop(), "projects", []string{"https://blob/old.png", "https://blob/keep.png"})

	refs := set.Refs()
	require.Len(t, refs, 2)
	assert.True(t, set.Remove(refs[0]))
	assert.Empty(t, blob.deletes, "removal alone must not contact blob storage")

	urls, err := set.ReconcileOnSave(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://blob/keep.png"}, urls)
	assert.Equal(t, []string{"https://blob/old.png"}, blob.deletes)
}

func TestImageSet_ReplacePutBeforeDelete(t *testing.T) {
	blob := &fakeBlob{}
	set := NewImageSet(blob, logger.NewNop(), "projects", []string{"https://blob/old.png"})

	set.Remove(set.Refs()[0])
	set.AddFromFile("new.png", []byte("new"))

	urls, err := set.ReconcileOnSave(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, urls, 1)

	require.Len(t, blob.ops, 2)
	assert.Contains(t, blob.ops[0], "put ")
	assert.Equal(t, "delete https://blob/old.png", blob.ops[1])
}

func TestImageSet_UploadFailureAbortsWithoutDeletes(t *testing.T) {
	blob := &fakeBlob{putErr: errors.New("network down")}
	set := NewImageSet(blob, logger.NewNop(), "projects", []string{"https://blob/old.png"})

	set.Remove(set.Refs()[0])
	set.AddFromFile("new.png", []byte("new"))

	_, err := set.ReconcileOnSave(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrAssetUpload)
	assert.Empty(t, blob.deletes, "old asset must survive a failed replacement")

	// retry after the outage succeeds and only then drops the old asset
	blob.putErr = nil
	urls, err := set.ReconcileOnSave(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, urls, 1)
	assert.Equal(t, []string{"https://blob/old.png"}, blob.deletes)
}

func TestImageSet_PersistFailureDropsFreshUpload(t *testing.T) {
	blob := &fakeBlob{}
	set := NewImageSet(blob, logger.NewNop(), "projects", []string{"https://blob/old.png"})

	set.Remove(set.Refs()[0])
	set.AddFromFile("new.png", []byte("new"))

	dbDown := errors.New("db down")
	_, err := set.ReconcileOnSave(context.Background(), func([]string) error { return dbDown })
	require.ErrorIs(t, err, dbDown)

	// the fresh upload is dropped again; the stored old asset survives
	assert.Equal(t, 1, blob.puts)
	assert.Equal(t, []string{"https://blob/1.png"}, blob.deletes)
}

func TestImageSet_FailedOrphanDeleteRetriedNextSave(t *testing.T) {
	blob := &fakeBlob{delErr: errors.New("throttled")}
	set := NewImageSet(blob, logger.NewNop(), "projects", []string{"https://blob/old.png"})

	set.Remove(set.Refs()[0])

	urls, err := set.ReconcileOnSave(context.Background(), nil)
	require.NoError(t, err, "a failed orphan delete never fails the save")
	assert.Empty(t, urls)
	require.Len(t, blob.deletes, 1)

	// the orphan stays in the baseline, so the next save retries the delete
	blob.delErr = nil
	_, err = set.ReconcileOnSave(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://blob/old.png", "https://blob/old.png"}, blob.deletes)

	// once deleted it is gone from the baseline for good
	_, err = set.ReconcileOnSave(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, blob.deletes, 2)
}

func TestImageSet_BaselineAdvancesAfterSave(t *testing.T) {
	blob := &fakeBlob{}
	set := NewImageSet(blob, logger.NewNop(), "projects", nil)

	set.AddFromFile("a.png", []byte("a"))
	first, err := set.ReconcileOnSave(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// second save with no edits deletes nothing and uploads nothing
	second, err := set.ReconcileOnSave(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, blob.puts)
	assert.Empty(t, blob.deletes)
}

func TestAvatarSlot_ReplaceUploadsThenDeletesOld(t *testing.T) {
	blob := &fakeBlob{}
	slot := NewAvatarSlot(blob, logger.NewNop(), "avatars", "https://x/old.png")

	slot.Stage("me.png", []byte("newbytes"))

	url, err := slot.ReconcileOnSave(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, IsDurable(url))
	assert.NotEqual(t, "https://x/old.png", url)

	require.Len(t, blob.ops, 2)
	assert.Contains(t, blob.ops[0], "put ")
	assert.Equal(t, "delete https://x/old.png", blob.ops[1])
}

func TestAvatarSlot_UploadFailureKeepsOld(t *testing.T) {
	blob := &fakeBlob{putErr: errors.New("boom")}
	slot := NewAvatarSlot(blob, logger.NewNop(), "avatars", "https://x/old.png")

	slot.Stage("me.png", []byte("newbytes"))

	_, err := slot.ReconcileOnSave(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrAssetUpload)
	assert.Empty(t, blob.deletes)
}

func TestAvatarSlot_PersistFailureDropsFreshUpload(t *testing.T) {
	blob := &fakeBlob{}
	slot := NewAvatarSlot(blob, logger.NewNop(), "avatars", "https://x/old.png")

	slot.Stage("me.png", []byte("newbytes"))

	dbDown := errors.New("db down")
	_, err := slot.ReconcileOnSave(context.Background(), func(string) error { return dbDown })
	require.ErrorIs(t, err, dbDown)

	// the fresh upload is dropped again; the committed avatar survives
	assert.Equal(t, 1, blob.puts)
	assert.Equal(t, []string{"https://blob/1.png"}, blob.deletes)
}

func TestAvatarSlot_NeverDurableOldValueSkipsDelete(t *testing.T) {
	blob := &fakeBlob{}
	// committed value was only ever a local preview; nothing durable to drop
	slot := NewAvatarSlot(blob, logger.NewNop(), "avatars", "staged://leftover")

	slot.Stage("me.png", []byte("newbytes"))

	url, err := slot.ReconcileOnSave(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, IsDurable(url))
	assert.Empty(t, blob.deletes)
}

func TestAvatarSlot_ClearDeletesCommittedOnSave(t *testing.T) {
	blob := &fakeBlob{}
	slot := NewAvatarSlot(blob, logger.NewNop(), "avatars", "https://x/old.png")

	slot.Clear()
	assert.Equal(t, "", slot.URL())

	url, err := slot.ReconcileOnSave(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "", url)
	assert.Equal(t, []string{"https://x/old.png"}, blob.deletes)
}
