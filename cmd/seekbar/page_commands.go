package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"seekbar/internal/api"
	"seekbar/internal/config"
	"seekbar/internal/ipc"
)

func newPageCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Drive the daemon's document model from fixture files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newPageLoadCommand(ctx))
	cmd.AddCommand(newPageInsertCommand(ctx))
	cmd.AddCommand(newPageRemoveCommand(ctx))
	cmd.AddCommand(newPageVideoCommand(ctx))

	return cmd
}

func newPageLoadCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "load <file>",
		Short: "Replace the document with node fragments from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, err := readNodeList(args[0])
			if err != nil {
				return err
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.PageLoad(nodes)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d videos (%d enhanced)\n", resp.Videos, resp.Enhanced)
				return nil
			})
		},
	}
}

func newPageInsertCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "insert <parent-id> <file>",
		Short: "Insert one node fragment under an existing parent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := readNode(args[1])
			if err != nil {
				return err
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.PageInsert(args[0], node)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Inserted; %d videos enhanced\n", resp.Enhanced)
				return nil
			})
		},
	}
}

func newPageRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <node-id>",
		Short: "Remove a node and everything beneath it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.PageRemove(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed; %d videos enhanced\n", resp.Enhanced)
				return nil
			})
		},
	}
}

func newPageVideoCommand(ctx *commandContext) *cobra.Command {
	var (
		position float64
		duration float64
		paused   bool
		volume   float64
		rate     float64
		seekable bool
	)

	cmd := &cobra.Command{
		Use:   "video <video-id>",
		Short: "Apply playback state to a tracked video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state := api.VideoState{
				CurrentTime:  position,
				Duration:     duration,
				Paused:       paused,
				Volume:       volume,
				PlaybackRate: rate,
				Seekable:     seekable,
			}
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.PageVideo(args[0], state); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "State applied")
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&position, "time", 0, "Current playback position in seconds")
	cmd.Flags().Float64Var(&duration, "duration", 0, "Media duration in seconds")
	cmd.Flags().BoolVar(&paused, "paused", false, "Mark the video as paused")
	cmd.Flags().Float64Var(&volume, "volume", 1, "Volume between 0 and 1")
	cmd.Flags().Float64Var(&rate, "rate", 1, "Playback rate multiplier")
	cmd.Flags().BoolVar(&seekable, "seekable", true, "Whether the video accepts seeks")

	return cmd
}

// readNodeList parses a fixture file holding either a JSON array of node
// fragments or a single top-level fragment.
func readNodeList(path string) ([]api.NodeSpec, error) {
	data, expanded, err := readPageFile(path)
	if err != nil {
		return nil, err
	}
	var nodes []api.NodeSpec
	if err := json.Unmarshal(data, &nodes); err == nil {
		return nodes, nil
	}
	var node api.NodeSpec
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parse page file %s: %w", expanded, err)
	}
	return []api.NodeSpec{node}, nil
}

func readNode(path string) (api.NodeSpec, error) {
	data, expanded, err := readPageFile(path)
	if err != nil {
		return api.NodeSpec{}, err
	}
	var node api.NodeSpec
	if err := json.Unmarshal(data, &node); err != nil {
		return api.NodeSpec{}, fmt.Errorf("parse page file %s: %w", expanded, err)
	}
	return node, nil
}

func readPageFile(path string) ([]byte, string, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, expanded, fmt.Errorf("read page file: %w", err)
	}
	return data, expanded, nil
}
