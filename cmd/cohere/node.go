package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-hclog"
	"github.com/pixperk/cohere/pkg/cache"
	"github.com/pixperk/cohere/pkg/client"
	"github.com/pixperk/cohere/pkg/config"
	"github.com/pixperk/cohere/pkg/queue"
	"github.com/pixperk/cohere/pkg/types"
	"github.com/spf13/cobra"
)

func retentionPolicy(name string) cache.RetentionPolicy {
	switch name {
	case config.PolicyReleaseAfterCommit:
		return cache.ReleaseAfterCommit{}
	case config.PolicyRetainReads:
		return cache.RetainReads{}
	default:
		return cache.RetainUntilCallback{}
	}
}

func startNode(ctx context.Context, cfg config.NodeConfig, logger hclog.Logger) (*client.Client, error) {
	c, err := client.NewClient(client.Config{
		NodeID:         types.NodeID(cfg.NodeID),
		ServerAddr:     cfg.RequestAddr(),
		QueueAddr:      cfg.QueueAddr(),
		CallbackListen: cfg.CallbackAddr(),
		DataDir:        cfg.DataDir,
		Queue: queue.Config{
			MaxPending: cfg.MaxPending,
			AckTimeout: cfg.AckTimeout,
			MaxRetries: cfg.MaxRetries,
		},
		Policy:       retentionPolicy(cfg.Policy),
		Workers:      cfg.Workers,
		MaxReconnect: cfg.MaxReconnect,
		Logger:       logger,
	})
	if err != nil {
		return nil, err
	}
	if err := c.Start(ctx); err != nil {
		return nil, errors.Join(err, c.Stop(context.Background()))
	}
	return c, nil
}

// flushes the queue, then stops the node
func stopNode(c *client.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return errors.Join(c.Queue().Flush(ctx), c.Stop(ctx))
}

func newNodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "run a node and report its update queue until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadNode(cmd.Flags())
			if err != nil {
				return err
			}
			logger := newLogger(cfg.LogLevel)
			c, err := startNode(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			ticker := time.NewTicker(10 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-cmd.Context().Done():
					return stopNode(c)
				case <-ticker.C:
					qs := c.Queue().Stats()
					cs := c.Cache().Stats()
					logger.Info("node stats",
						"connected", c.Connected(),
						"pending", qs.Pending,
						"last_acked", qs.LastAcked,
						"backlog", humanize.Bytes(qs.BacklogSize),
						"objects", cs.Objects,
						"write_held", cs.Write,
					)
				}
			}
		},
	}
	config.NodeFlags(cmd.Flags())
	return cmd
}

func newPutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "put NAME VALUE",
		Short: "write VALUE to the object bound to NAME, creating it if unbound",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadNode(cmd.Flags())
			if err != nil {
				return err
			}
			c, err := startNode(cmd.Context(), cfg, newLogger(cfg.LogLevel))
			if err != nil {
				return err
			}

			err = put(cmd.Context(), c, args[0], []byte(args[1]))
			return errors.Join(err, stopNode(c))
		},
	}
	config.NodeFlags(cmd.Flags())
	return cmd
}

func put(ctx context.Context, c *client.Client, name string, value []byte) error {
	txn := c.Begin()
	oid, err := txn.Lookup(ctx, name)
	switch {
	case errors.Is(err, types.ErrObjectNotFound):
		oid, err = txn.Create(ctx, name, value)
	case err == nil:
		err = txn.Write(ctx, oid, value)
	}
	if err != nil {
		txn.Abort()
		return err
	}
	if err := txn.Commit(ctx); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s -> object %d (%s)\n", name, oid, humanize.Bytes(uint64(len(value))))
	return nil
}

func newGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get NAME",
		Short: "print the bytes of the object bound to NAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadNode(cmd.Flags())
			if err != nil {
				return err
			}
			c, err := startNode(cmd.Context(), cfg, newLogger(cfg.LogLevel))
			if err != nil {
				return err
			}

			err = get(cmd.Context(), c, args[0])
			return errors.Join(err, stopNode(c))
		},
	}
	config.NodeFlags(cmd.Flags())
	return cmd
}

func get(ctx context.Context, c *client.Client, name string) error {
	txn := c.Begin()
	defer txn.Abort()

	oid, err := txn.Lookup(ctx, name)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	data, err := txn.Read(ctx, oid)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(data, '\n'))
	return err
}
