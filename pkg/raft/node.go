// Package raft runs the store's commit log: every create and update batch is
// appended to a raft log under the durable directory before it is applied, so
// the store's object ids, names, bytes and sequence numbers survive restarts.
package raft

import (
	"fmt"
	"net"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/raft"
	"github.com/pixperk/cohere/pkg/storage"
	"github.com/pixperk/cohere/pkg/store"
	"github.com/pixperk/cohere/pkg/types"
	"google.golang.org/protobuf/proto"
)

// wraps a single-voter raft instance around the store
type Node struct {
	raft      *raft.Raft
	store     *store.Store
	storage   *storage.RaftStorage
	transport raft.Transport
	cfg       *Config
}

type Config struct {
	ID           string        //raft server id
	BindAddr     string        //raft transport address, empty for an in-process transport
	DataDir      string        //durable directory
	ApplyTimeout time.Duration //bound for one log append
	Logger       hclog.Logger
}

func NewNode(cfg *Config, s *store.Store) (*Node, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if cfg.ApplyTimeout <= 0 {
		cfg.ApplyTimeout = 5 * time.Second
	}

	raftFSM := store.NewRaftFSM(s)

	raftCfg := raft.DefaultConfig()
	raftCfg.LocalID = raft.ServerID(cfg.ID)
	raftCfg.Logger = logger.Named("raft")

	raftCfg.HeartbeatTimeout = 1000 * time.Millisecond
	raftCfg.ElectionTimeout = 1000 * time.Millisecond
	raftCfg.LeaderLeaseTimeout = 500 * time.Millisecond
	raftCfg.CommitTimeout = 50 * time.Millisecond //time to wait before committing entries
	raftCfg.SnapshotThreshold = 8192              // snapshot after 8K log entries

	raftStorage, err := storage.NewRaftStorage(cfg.DataDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create stores: %w", err)
	}

	transport, err := newTransport(cfg.ID, cfg.BindAddr, logger)
	if err != nil {
		raftStorage.Close()
		return nil, err
	}

	existing, err := raft.HasExistingState(raftStorage.LogStore, raftStorage.StableStore, raftStorage.SnapshotStore)
	if err != nil {
		raftStorage.Close()
		return nil, fmt.Errorf("failed to inspect durable state: %w", err)
	}

	r, err := raft.NewRaft(raftCfg, raftFSM, raftStorage.LogStore, raftStorage.StableStore, raftStorage.SnapshotStore, transport)
	if err != nil {
		raftStorage.Close()
		return nil, fmt.Errorf("failed to create raft: %w", err)
	}

	//the only voter is this server; bootstrap once, restarts replay the log
	if !existing {
		configuration := raft.Configuration{
			Servers: []raft.Server{
				{
					ID:      raftCfg.LocalID,
					Address: transport.LocalAddr(),
				},
			},
		}
		if err := r.BootstrapCluster(configuration).Error(); err != nil {
			r.Shutdown()
			raftStorage.Close()
			return nil, fmt.Errorf("failed to bootstrap: %w", err)
		}
	}

	return &Node{
		raft:      r,
		store:     s,
		storage:   raftStorage,
		transport: transport,
		cfg:       cfg,
	}, nil
}

func newTransport(id, bindAddr string, logger hclog.Logger) (raft.Transport, error) {
	if bindAddr == "" {
		//stable address so the bootstrapped configuration matches after a restart
		_, transport := raft.NewInmemTransport(raft.ServerAddress("inmem-" + id))
		return transport, nil
	}

	addr, err := net.ResolveTCPAddr("tcp", bindAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve bind addr: %w", err)
	}
	transport, err := raft.NewTCPTransportWithLogger(bindAddr, addr, 3, 10*time.Second, logger.Named("raft-transport"))
	if err != nil {
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}
	return transport, nil
}

// appends cmd to the log and returns the store's result
// errors returned by the store come back as errors, not as results
func (n *Node) Apply(cmd types.Command) (any, error) {
	wrapper, err := cmd.ToProto()
	if err != nil {
		return nil, fmt.Errorf("failed to convert command: %w", err)
	}

	data, err := proto.Marshal(wrapper)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal command: %w", err)
	}

	future := n.raft.Apply(data, n.cfg.ApplyTimeout)
	if err := future.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrStoreUnavailable, err)
	}

	resp := future.Response()
	if err, ok := resp.(error); ok {
		return nil, err
	}
	return resp, nil
}

// returns true if this node is the leader
func (n *Node) IsLeader() bool {
	return n.raft.State() == raft.Leader
}

// blocks until the node has taken leadership
func (n *Node) WaitForLeader(timeout time.Duration) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	timeoutCh := time.After(timeout)

	for {
		select {
		case <-timeoutCh:
			return fmt.Errorf("no leader elected within %s", timeout)
		case <-ticker.C:
			if n.IsLeader() {
				return nil
			}
		}
	}
}

func (n *Node) Store() *store.Store {
	return n.store
}

// forces a snapshot of the store
func (n *Node) Snapshot() error {
	return n.raft.Snapshot().Error()
}

// gracefully shuts down raft and closes the durable files
func (n *Node) Shutdown() error {
	var result *multierror.Error
	if err := n.raft.Shutdown().Error(); err != nil {
		result = multierror.Append(result, fmt.Errorf("raft shutdown: %w", err))
	}
	if closer, ok := n.transport.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("transport close: %w", err))
		}
	}
	if err := n.storage.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("storage close: %w", err))
	}
	return result.ErrorOrNil()
}
