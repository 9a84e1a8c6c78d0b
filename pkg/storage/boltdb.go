// Package storage holds the bolt files behind the server's commit log and the
// node's update-queue journal.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/raft"
	raftboltdb "github.com/hashicorp/raft-boltdb/v2"
)

// number of store snapshots kept in the durable directory
const retainSnapshots = 3

// RaftStorage wraps the durable pieces of the store's commit log
// logstore : log entries for creates and update batches
// stablestore : raft metadata [stable = survives restarts]
// snapshotstore : snapshots of object bytes, names and sequence numbers
type RaftStorage struct {
	LogStore      raft.LogStore
	StableStore   raft.StableStore
	SnapshotStore raft.SnapshotStore

	db *raftboltdb.BoltStore
}

func NewRaftStorage(dataDir string, logger hclog.Logger) (*RaftStorage, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	//one bolt file serves as both log and stable store
	db, err := raftboltdb.New(raftboltdb.Options{
		Path: filepath.Join(dataDir, "store.db"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open store log: %w", err)
	}

	snapshots, err := raft.NewFileSnapshotStoreWithLogger(filepath.Join(dataDir, "snapshots"), retainSnapshots, logger.Named("snapshots"))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}

	return &RaftStorage{
		LogStore:      db,
		StableStore:   db,
		SnapshotStore: snapshots,
		db:            db,
	}, nil
}

func (r *RaftStorage) Close() error {
	return r.db.Close()
}
