package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftverify/internal/models"
)

func testRecord(id string) models.VerificationRecord {
	return models.VerificationRecord{
		ID:       id,
		Name:     "Jane Doe",
		IDNumber: "87654321",
		Phone:    "254712345678",
		Selfie:   models.ImageRef{URL: "https://img.example/s/" + id, PublicID: "selfie-" + id},
		FrontID:  models.ImageRef{URL: "https://img.example/f/" + id, PublicID: "front-" + id},
		BackID:   models.ImageRef{URL: "https://img.example/b/" + id, PublicID: "back-" + id},
		// Stored timestamps come back without sub-second monotonic detail,
		// so use a plain UTC instant.
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)
	return fs
}

func TestFileStore_StartsEmpty(t *testing.T) {
	fs := newTestFileStore(t)
	got, err := fs.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileStore_AppendReadRoundTrip(t *testing.T) {
	fs := newTestFileStore(t)
	ctx := context.Background()

	want := testRecord("rec-1")
	require.NoError(t, fs.Append(ctx, want))

	got, err := fs.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want, got[0])
}

func TestFileStore_PreservesInsertionOrder(t *testing.T) {
	fs := newTestFileStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, fs.Append(ctx, testRecord(fmt.Sprintf("rec-%d", i))))
	}
	got, err := fs.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, rec := range got {
		assert.Equal(t, fmt.Sprintf("rec-%d", i), rec.ID)
	}
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	ctx := context.Background()

	fs, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, fs.Append(ctx, testRecord("rec-1")))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	got, err := reopened.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "rec-1", got[0].ID)
}

func TestFileStore_RemoveByID(t *testing.T) {
	fs := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, fs.Append(ctx, testRecord("rec-1")))
	require.NoError(t, fs.Append(ctx, testRecord("rec-2")))

	removed, err := fs.RemoveByID(ctx, "rec-1")
	require.NoError(t, err)
	require.NotNil(t, removed)
	assert.Equal(t, "rec-1", removed.ID)

	got, err := fs.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "rec-2", got[0].ID)
}

func TestFileStore_RemoveByIDAbsent(t *testing.T) {
	fs := newTestFileStore(t)

	removed, err := fs.RemoveByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, removed)
}

func TestFileStore_ConcurrentAppendsLoseNothing(t *testing.T) {
	fs := newTestFileStore(t)
	ctx := context.Background()

	const n = 32
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = fs.Append(ctx, testRecord(fmt.Sprintf("rec-%02d", i)))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "append %d", i)
	}
	got, err := fs.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, got, n)

	seen := make(map[string]bool, n)
	for _, rec := range got {
		seen[rec.ID] = true
	}
	assert.Len(t, seen, n, "every appended record must be present exactly once")
}
