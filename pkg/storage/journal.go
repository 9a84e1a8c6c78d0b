package storage

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	pb "github.com/pixperk/cohere/api/v1"
	"github.com/pixperk/cohere/pkg/types"
	bolt "go.etcd.io/bbolt"
	"google.golang.org/protobuf/proto"
)

var (
	batchesBucket = []byte("batches")
	metaBucket    = []byte("meta")
	nodeIDKey     = []byte("node_id")
)

// node-side record of update batches that the server has not acknowledged
// keys are big-endian sequence numbers so cursor order is sequence order
type BoltJournal struct {
	db *bolt.DB
}

func OpenJournal(dataDir string) (*BoltJournal, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal dir: %w", err)
	}

	db, err := bolt.Open(filepath.Join(dataDir, "queue.db"), 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(batchesBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(metaBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init journal: %w", err)
	}

	return &BoltJournal{db: db}, nil
}

func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}

// stores b durably; returns once the write is synced
func (j *BoltJournal) Append(b *types.UpdateBatch) error {
	data, err := proto.Marshal(types.BatchToProto(b))
	if err != nil {
		return fmt.Errorf("failed to encode batch %d: %w", b.Seq, err)
	}
	return j.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(batchesBucket).Put(seqKey(b.Seq), data)
	})
}

// drops every batch with sequence number <= seq
func (j *BoltJournal) Truncate(seq uint64) error {
	return j.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(batchesBucket)
		var keys [][]byte
		c := bucket.Cursor()
		for k, _ := c.First(); k != nil && binary.BigEndian.Uint64(k) <= seq; k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}
		for _, k := range keys {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// returns every stored batch in sequence order
func (j *BoltJournal) Load() ([]*types.UpdateBatch, error) {
	var out []*types.UpdateBatch
	err := j.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(batchesBucket).ForEach(func(k, v []byte) error {
			var p pb.UpdateBatch
			if err := proto.Unmarshal(v, &p); err != nil {
				return fmt.Errorf("corrupt batch %d: %w", binary.BigEndian.Uint64(k), err)
			}
			out = append(out, types.BatchFromProto(&p))
			return nil
		})
	})
	return out, err
}

// returns the node id stored in the journal, storing generate() on first use
// a node keeps its identity, and with it its sequence numbers, across restarts
func (j *BoltJournal) NodeID(generate func() types.NodeID) (types.NodeID, error) {
	var id types.NodeID
	err := j.db.Update(func(tx *bolt.Tx) error {
		meta := tx.Bucket(metaBucket)
		if v := meta.Get(nodeIDKey); v != nil {
			id = types.NodeID(v)
			return nil
		}
		id = generate()
		return meta.Put(nodeIDKey, []byte(id))
	})
	return id, err
}

func (j *BoltJournal) Close() error {
	return j.db.Close()
}
