package client

import (
	"context"
	"fmt"

	pb "github.com/pixperk/cohere/api/v1"
	"github.com/pixperk/cohere/pkg/cache"
	"github.com/pixperk/cohere/pkg/types"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// the store's request service as seen by the cache
type remote struct {
	node  types.NodeID
	store pb.StoreClient
}

func (r *remote) Acquire(ctx context.Context, oid types.ObjectID, mode types.AccessMode) (cache.Grant, error) {
	resp, err := r.store.Acquire(ctx, &pb.AcquireRequest{
		NodeId:   string(r.node),
		ObjectId: uint64(oid),
		Mode:     mode.ToProto(),
	})
	if err != nil {
		return cache.Grant{}, fromGRPCError(err)
	}
	g := cache.Grant{
		Mode:  types.ModeFromProto(resp.GetMode()),
		Epoch: resp.GetEpoch(),
	}
	// nil data marks a pending create; an empty object still has bytes
	if !resp.GetPending() {
		g.Data = resp.GetData()
		if g.Data == nil {
			g.Data = []byte{}
		}
	}
	return g, nil
}

func (r *remote) Downgrade(ctx context.Context, oid types.ObjectID, target types.AccessMode, epoch uint64) error {
	_, err := r.store.Downgrade(ctx, &pb.DowngradeRequest{
		NodeId:   string(r.node),
		ObjectId: uint64(oid),
		Mode:     target.ToProto(),
		Epoch:    epoch,
	})
	return fromGRPCError(err)
}

func (r *remote) Create(ctx context.Context, name string) (types.ObjectID, cache.Grant, error) {
	resp, err := r.store.Create(ctx, &pb.CreateRequest{
		NodeId: string(r.node),
		Name:   name,
	})
	if err != nil {
		return types.InvalidObjectID, cache.Grant{}, fromGRPCError(err)
	}
	return types.ObjectID(resp.ObjectId), cache.Grant{Mode: types.ModeWrite, Epoch: resp.Epoch}, nil
}

func (r *remote) Lookup(ctx context.Context, name string) (types.ObjectID, error) {
	resp, err := r.store.Lookup(ctx, &pb.LookupRequest{
		NodeId: string(r.node),
		Name:   name,
	})
	if err != nil {
		return types.InvalidObjectID, fromGRPCError(err)
	}
	return types.ObjectID(resp.ObjectId), nil
}

// the update-queue service as seen by the queue
type updateSender struct {
	updates pb.UpdateQueueClient
}

func (u *updateSender) Apply(ctx context.Context, b *types.UpdateBatch) error {
	_, err := u.updates.Apply(ctx, types.BatchToProto(b))
	if err != nil {
		err = fromGRPCError(err)
		if oos, ok := err.(*types.OutOfSequenceError); ok {
			oos.Node = b.Node
		}
		return err
	}
	return nil
}

func (u *updateSender) Status(ctx context.Context, node types.NodeID) (uint64, error) {
	resp, err := u.updates.Status(ctx, &pb.StatusQuery{NodeId: string(node)})
	if err != nil {
		return 0, fromGRPCError(err)
	}
	return resp.LastAppliedSeq, nil
}

// QueryStatus asks the update-queue service for the last batch it applied
// from node
func QueryStatus(ctx context.Context, queueAddr string, node types.NodeID) (uint64, error) {
	conn, err := grpc.NewClient(queueAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return 0, fmt.Errorf("failed to connect update queue: %w", err)
	}
	defer conn.Close()

	return (&updateSender{updates: pb.NewUpdateQueueClient(conn)}).Status(ctx, node)
}
