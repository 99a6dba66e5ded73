package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"seekbar/internal/ipc"
	"seekbar/internal/overlay"
)

func newCommandCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "command <token>",
		Short: "Send a raw playback command token to the active video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatchToken(cmd, ctx, args[0])
		},
	}
}

// newPlaybackCommands returns the named playback verbs. Each is sugar for one
// dispatcher token; steps and the speed ladder come from daemon config.
func newPlaybackCommands(ctx *commandContext) []*cobra.Command {
	playPause := tokenCommand(ctx, "play-pause", "Toggle the active video between playing and paused", overlay.CmdPlayPause)

	seek := &cobra.Command{
		Use:   "seek",
		Short: "Seek the active video by the configured step",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	seek.AddCommand(
		tokenCommand(ctx, "forward", "Seek forward by the configured step", overlay.CmdSeekForward),
		tokenCommand(ctx, "back", "Seek backward by the configured step", overlay.CmdSeekBackward),
	)

	volume := &cobra.Command{
		Use:   "volume",
		Short: "Adjust the active video's volume by the configured step",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	volume.AddCommand(
		tokenCommand(ctx, "up", "Raise volume by the configured step", overlay.CmdVolumeUp),
		tokenCommand(ctx, "down", "Lower volume by the configured step", overlay.CmdVolumeDown),
	)

	speed := &cobra.Command{
		Use:   "speed",
		Short: "Step the active video's playback rate along the speed ladder",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	speed.AddCommand(
		tokenCommand(ctx, "up", "Step playback rate up the speed ladder", overlay.CmdSpeedUp),
		tokenCommand(ctx, "down", "Step playback rate down the speed ladder", overlay.CmdSpeedDown),
		tokenCommand(ctx, "reset", "Return playback rate to normal", overlay.CmdSpeedReset),
	)

	return []*cobra.Command{playPause, seek, volume, speed}
}

func tokenCommand(ctx *commandContext, use, short, token string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatchToken(cmd, ctx, token)
		},
	}
}

func dispatchToken(cmd *cobra.Command, ctx *commandContext, token string) error {
	return ctx.withClient(func(client *ipc.Client) error {
		resp, err := client.Command(token)
		if err != nil {
			return err
		}
		if resp.OK {
			fmt.Fprintln(cmd.OutOrStdout(), "Command executed")
			return nil
		}
		message := strings.TrimSpace(resp.Message)
		if message == "" {
			message = "command not handled"
		}
		fmt.Fprintln(cmd.OutOrStdout(), message)
		return nil
	})
}

var commandDescriptions = map[string]string{
	overlay.CmdPlayPause:    "toggle between playing and paused",
	overlay.CmdSeekForward:  "seek forward by the configured step",
	overlay.CmdSeekBackward: "seek backward by the configured step",
	overlay.CmdVolumeUp:     "raise volume by the configured step",
	overlay.CmdVolumeDown:   "lower volume by the configured step",
	overlay.CmdSpeedUp:      "step playback rate up the speed ladder",
	overlay.CmdSpeedDown:    "step playback rate down the speed ladder",
	overlay.CmdSpeedReset:   "return playback rate to normal",
}

func newCommandsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "commands",
		Short:       "List the playback command tokens the daemon accepts",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			titler := cases.Title(language.Und)
			rows := make([][]string, 0, len(overlay.Commands()))
			for _, token := range overlay.Commands() {
				name := titler.String(strings.ReplaceAll(token, "-", " "))
				rows = append(rows, []string{token, name, commandDescriptions[token]})
			}
			headers := []string{"Token", "Name", "Description"}
			alignments := []columnAlignment{alignLeft, alignLeft, alignLeft}
			fmt.Fprint(cmd.OutOrStdout(), renderTable(headers, rows, alignments))
			return nil
		},
	}
}
