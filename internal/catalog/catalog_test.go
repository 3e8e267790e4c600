package catalog

import (
	"context"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_ReloadPublishesCollection(t *testing.T) {
	client := newFakeClient(map[int][]domain.Item{1: {movie("1", "a")}})
	cat := New(NewLoader(client, 2, 2, nullLogger()), nil, nullLogger())

	assert.Empty(t, cat.Items())

	require.NoError(t, cat.Reload(context.Background(), nil))

	state := cat.State()
	assert.False(t, state.Loading)
	assert.NoError(t, state.Err)
	assert.Equal(t, []string{"a"}, titles(state.Items))
	assert.False(t, state.LoadedAt.IsZero())
}

func TestCatalog_FailedReloadKeepsPreviousCollection(t *testing.T) {
	client := newFakeClient(map[int][]domain.Item{1: {movie("1", "a")}})
	cat := New(NewLoader(client, 1, 1, nullLogger()), nil, nullLogger())
	require.NoError(t, cat.Reload(context.Background(), nil))

	client.errs[1] = domain.ErrServerOffline
	err := cat.Reload(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrLoadFailed)

	state := cat.State()
	assert.ErrorIs(t, state.Err, domain.ErrLoadFailed)
	assert.Equal(t, []string{"a"}, titles(state.Items))

	// A later success clears the error
	delete(client.errs, 1)
	require.NoError(t, cat.Reload(context.Background(), nil))
	assert.NoError(t, cat.State().Err)
}

func TestCatalog_FirstLoadFailureLeavesEmpty(t *testing.T) {
	client := newFakeClient(nil)
	client.errs[1] = domain.ErrServerOffline
	cat := New(NewLoader(client, 1, 1, nullLogger()), nil, nullLogger())

	require.Error(t, cat.Reload(context.Background(), nil))
	assert.Empty(t, cat.Items())
}

func TestCatalog_NewerReloadSupersedesOlder(t *testing.T) {
	client := newFakeClient(map[int][]domain.Item{
		1: {movie("1", "a")},
		2: {movie("2", "b")},
		3: {movie("3", "c")},
	})
	cat := New(NewLoader(client, 3, 3, nullLogger()), nil, nullLogger())

	client.block.Store(true)
	errCh := make(chan error, 1)
	go func() { errCh <- cat.Reload(context.Background(), nil) }()

	<-client.started
	client.block.Store(false)

	require.NoError(t, cat.Reload(context.Background(), nil))
	assert.ErrorIs(t, <-errCh, ErrSuperseded)

	state := cat.State()
	assert.False(t, state.Loading)
	assert.NoError(t, state.Err)
	assert.Equal(t, []string{"a", "b", "c"}, titles(state.Items))
}

func TestCatalog_SnapshotWarmStart(t *testing.T) {
	st, err := store.New("", "")
	require.NoError(t, err)

	client := newFakeClient(map[int][]domain.Item{1: {movie("1", "a")}})
	first := New(NewLoader(client, 1, 1, nullLogger()), st, nullLogger())
	require.NoError(t, first.Reload(context.Background(), nil))

	// A fresh process with the cache offline
	offline := newFakeClient(nil)
	offline.errs[1] = domain.ErrServerOffline
	second := New(NewLoader(offline, 1, 1, nullLogger()), st, nullLogger())

	require.True(t, second.Warm())
	assert.True(t, second.State().FromSnapshot)

	require.Error(t, second.Reload(context.Background(), nil))
	assert.Equal(t, []string{"a"}, titles(second.Items()))

	// Warm never overwrites a loaded collection
	assert.False(t, first.Warm())
}

func TestCatalog_WarmWithoutStore(t *testing.T) {
	cat := New(NewLoader(newFakeClient(nil), 1, 1, nil), nil, nil)
	assert.False(t, cat.Warm())
}

func TestCatalog_OlderGenerationNeverOverwritesSnapshot(t *testing.T) {
	st, err := store.New("", "")
	require.NoError(t, err)
	cat := New(NewLoader(newFakeClient(nil), 1, 1, nullLogger()), st, nullLogger())

	// Generation 2 finished saving before generation 1 got to it
	cat.saveSnapshot(2, domain.Snapshot{Items: []domain.Item{movie("2", "newer")}})
	cat.saveSnapshot(1, domain.Snapshot{Items: []domain.Item{movie("1", "older")}})

	snap, ok := st.GetSnapshot()
	require.True(t, ok)
	assert.Equal(t, []string{"newer"}, titles(snap.Items))

	cat.saveSnapshot(3, domain.Snapshot{Items: []domain.Item{movie("3", "latest")}})
	snap, ok = st.GetSnapshot()
	require.True(t, ok)
	assert.Equal(t, []string{"latest"}, titles(snap.Items))
}

func TestCatalog_SnapshotKeepsNonCanonicalIDs(t *testing.T) {
	dir := t.TempDir()
	st, err := store.New(dir, "http://localhost:3000")
	require.NoError(t, err)

	client := newFakeClient(map[int][]domain.Item{1: {movie("007", "a"), movie("+5", "b"), movie("603", "c")}})
	require.NoError(t, New(NewLoader(client, 1, 1, nullLogger()), st, nullLogger()).Reload(context.Background(), nil))
	require.NoError(t, st.Close())

	st, err = store.New(dir, "http://localhost:3000")
	require.NoError(t, err)
	defer st.Close()

	warm := New(NewLoader(newFakeClient(nil), 1, 1, nullLogger()), st, nullLogger())
	require.True(t, warm.Warm())
	ids := make([]domain.ID, 0, 3)
	for _, item := range warm.Items() {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []domain.ID{"007", "+5", "603"}, ids)
}
