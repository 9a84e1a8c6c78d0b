package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/pixperk/cohere/pkg/client"
	"github.com/pixperk/cohere/pkg/config"
	"github.com/pixperk/cohere/pkg/types"
	"github.com/spf13/cobra"
)

func newStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "query the last update batch the server applied for a node",
		RunE: func(cmd *cobra.Command, _ []string) error {
			node, _ := cmd.Flags().GetString("node")
			if node == "" {
				return errors.New("--node is required")
			}
			cfg, err := config.LoadNode(cmd.Flags())
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			seq, err := client.QueryStatus(ctx, cfg.QueueAddr(), types.NodeID(node))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"node":             node,
				"last_applied_seq": seq,
			})
		},
	}
	config.NodeFlags(cmd.Flags())
	cmd.Flags().String("node", "", "node id to query")
	return cmd
}
