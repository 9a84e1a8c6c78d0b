package storage

import (
	"testing"

	"github.com/hashicorp/raft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRaftStorage(t *testing.T) {
	stores, err := NewRaftStorage(t.TempDir(), nil)
	require.NoError(t, err)
	defer stores.Close()

	assert.NotNil(t, stores.LogStore)
	assert.NotNil(t, stores.StableStore)
	assert.NotNil(t, stores.SnapshotStore)
}

func TestLogStore(t *testing.T) {
	stores, err := NewRaftStorage(t.TempDir(), nil)
	require.NoError(t, err)
	defer stores.Close()

	entry := &raft.Log{
		Index: 1,
		Term:  1,
		Type:  raft.LogCommand,
		Data:  []byte("batch"),
	}
	require.NoError(t, stores.LogStore.StoreLog(entry))

	got := &raft.Log{}
	require.NoError(t, stores.LogStore.GetLog(1, got))
	assert.Equal(t, uint64(1), got.Index)
	assert.Equal(t, []byte("batch"), got.Data)
}

func TestSnapshotStore(t *testing.T) {
	stores, err := NewRaftStorage(t.TempDir(), nil)
	require.NoError(t, err)
	defer stores.Close()

	sink, err := stores.SnapshotStore.Create(raft.SnapshotVersionMax, 100, 1, raft.Configuration{}, 1, nil)
	require.NoError(t, err)
	_, err = sink.Write([]byte(`{"objects":{},"last_seq":{},"next_id":1}`))
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	snapshots, err := stores.SnapshotStore.List()
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, uint64(100), snapshots[0].Index)
}

func TestRaftStoragePersistence(t *testing.T) {
	dir := t.TempDir()

	stores1, err := NewRaftStorage(dir, nil)
	require.NoError(t, err)
	require.NoError(t, stores1.StableStore.SetUint64([]byte("CurrentTerm"), 42))
	require.NoError(t, stores1.Close())

	stores2, err := NewRaftStorage(dir, nil)
	require.NoError(t, err)
	defer stores2.Close()

	term, err := stores2.StableStore.GetUint64([]byte("CurrentTerm"))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), term)
}
