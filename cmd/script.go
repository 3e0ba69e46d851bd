package cmd

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/vipasana-cli/internal/domain"
)

func newScriptCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "script",
		Short: "Inspect the guided meditation script",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the guided clips and checkpoint tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeScript(cmd.OutOrStdout(), app)
		},
	})

	return cmd
}

func writeScript(out io.Writer, app *app) error {
	schedule := app.script.Schedule()

	lines := []string{
		fmt.Sprintf("source: %s", app.script.Source()),
		fmt.Sprintf("intro: %s", schedule.IntroClip),
		fmt.Sprintf("completion: %s", schedule.CompletionClip),
		"",
		"clips:",
	}
	for _, clip := range app.script.Clips() {
		line := fmt.Sprintf("  %-20s %6s", clip.ID, clip.Duration)
		if clip.File != "" {
			line += "  " + clip.File
		}
		lines = append(lines, line)
	}

	lines = append(lines, "", "checkpoints (default):")
	lines = append(lines, checkpointLines(schedule.Default)...)

	lengths := make([]time.Duration, 0, len(schedule.ByDuration))
	for length := range schedule.ByDuration {
		lengths = append(lengths, length)
	}
	sort.Slice(lengths, func(i, j int) bool { return lengths[i] < lengths[j] })
	for _, length := range lengths {
		lines = append(lines, "", fmt.Sprintf("checkpoints (%s):", length))
		lines = append(lines, checkpointLines(schedule.ByDuration[length])...)
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

func checkpointLines(checkpoints []domain.Checkpoint) []string {
	lines := make([]string, 0, len(checkpoints))
	for _, cp := range checkpoints {
		parts := fmt.Sprintf("  %-8s", formatElapsed(cp.Offset))
		if cp.Bell {
			parts += " bell"
		}
		if cp.Clip != "" {
			parts += " " + cp.Clip
			if cp.ClipDelay > 0 {
				parts += fmt.Sprintf(" (+%s)", cp.ClipDelay)
			}
		}
		lines = append(lines, parts)
	}
	return lines
}
