package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"seekbar/internal/api"
	"seekbar/internal/ipc"
)

func newVideosCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "videos",
		Short: "List the videos the daemon is tracking",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				status, err := client.Status()
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, api.VideoListResponse{Videos: status.Session.Videos})
				}
				rows := buildVideoRows(status.Session.Videos)
				if len(rows) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No videos tracked")
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), renderTable(videoTableHeaders(), rows, videoTableAlignments()))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output video list as JSON")

	return cmd
}

func newEnhanceCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "enhance",
		Short: "Attach overlays to every tracked video",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.EnhanceAll()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Enhanced %d videos\n", resp.Attached)
				return nil
			})
		},
	}
}

func newTeardownCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "teardown",
		Short: "Detach every overlay without stopping the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.DetachAll()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Detached %d overlays\n", resp.Detached)
				return nil
			})
		},
	}
}

func videoTableHeaders() []string {
	return []string{"ID", "Enhanced", "Position", "Duration", "Paused", "Rate"}
}

func videoTableAlignments() []columnAlignment {
	return []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignRight}
}

func buildVideoRows(videos []api.VideoSummary) [][]string {
	rows := make([][]string, 0, len(videos))
	for _, video := range videos {
		rows = append(rows, []string{
			video.ID,
			yesNo(video.Enhanced),
			formatClock(video.State.CurrentTime),
			formatDuration(video.State.Duration),
			yesNo(video.State.Paused),
			fmt.Sprintf("%gx", video.State.PlaybackRate),
		})
	}
	return rows
}

// formatClock renders a media position as h:mm:ss, dropping the hour
// segment for positions under an hour.
func formatClock(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	total := int(math.Round(seconds))
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// formatDuration is formatClock for durations, where zero or unknown
// lengths render as a placeholder instead of 0:00.
func formatDuration(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return "--:--"
	}
	return formatClock(seconds)
}
