package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	pb "github.com/pixperk/cohere/api/v1"
	"github.com/pixperk/cohere/pkg/config"
	"github.com/pixperk/cohere/pkg/gateway"
	"github.com/pixperk/cohere/pkg/raft"
	"github.com/pixperk/cohere/pkg/scheduler"
	"github.com/pixperk/cohere/pkg/server"
	"github.com/pixperk/cohere/pkg/store"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const shutdownTimeout = 10 * time.Second

func newServerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "run the store server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadServer(cmd.Flags())
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg, newLogger(cfg.LogLevel))
		},
	}
	config.ServerFlags(cmd.Flags())
	return cmd
}

func runServer(ctx context.Context, cfg config.ServerConfig, logger hclog.Logger) error {
	logger.Info("starting cohere server",
		"request", cfg.RequestAddr(),
		"queue", cfg.QueueAddr(),
		"data_dir", cfg.DataDir,
		"raft_id", cfg.RaftID,
	)

	st := store.New(logger)
	node, err := raft.NewNode(&raft.Config{
		ID:           cfg.RaftID,
		BindAddr:     cfg.RaftAddr,
		DataDir:      cfg.DataDir,
		ApplyTimeout: cfg.ApplyTimeout,
		Logger:       logger,
	}, st)
	if err != nil {
		return fmt.Errorf("failed to create raft node: %w", err)
	}
	if err := node.WaitForLeader(30 * time.Second); err != nil {
		return errors.Join(err, node.Shutdown())
	}

	sched := scheduler.NewPool(cfg.Workers, logger)
	srv := server.NewServer(server.Config{
		SessionTTL:        cfg.SessionTTL,
		HeartbeatInterval: cfg.HeartbeatInterval,
		CallbackTimeout:   cfg.CallbackTimeout,
		AcquireTimeout:    cfg.AcquireTimeout,
	}, node, sched, logger)
	srv.Start()

	reqLis, err := net.Listen("tcp", cfg.RequestAddr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.RequestAddr(), err)
	}
	queueLis, err := net.Listen("tcp", cfg.QueueAddr())
	if err != nil {
		reqLis.Close()
		return fmt.Errorf("failed to listen on %s: %w", cfg.QueueAddr(), err)
	}

	reqServer := grpc.NewServer()
	pb.RegisterStoreServer(reqServer, srv)
	queueServer := grpc.NewServer()
	pb.RegisterUpdateQueueServer(queueServer, srv.QueueService())

	var gw *gateway.Server
	if cfg.HTTPAddr != "" {
		gw, err = gateway.NewServer(cfg.HTTPAddr, srv, logger)
		if err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("request service listening", "addr", reqLis.Addr().String())
		return reqServer.Serve(reqLis)
	})
	g.Go(func() error {
		logger.Info("update-queue service listening", "addr", queueLis.Addr().String())
		return queueServer.Serve(queueLis)
	})
	if gw != nil {
		g.Go(func() error {
			return gw.Start(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		//sessions end first so nodes see the disconnect and stop sending
		srv.Stop()
		reqServer.Stop()
		queueServer.GracefulStop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		//the gateway shuts itself down on gctx
		var result *multierror.Error
		if err := sched.Shutdown(shutdownCtx); err != nil {
			result = multierror.Append(result, fmt.Errorf("scheduler: %w", err))
		}
		if err := node.Shutdown(); err != nil {
			result = multierror.Append(result, err)
		}
		return result.ErrorOrNil()
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}
