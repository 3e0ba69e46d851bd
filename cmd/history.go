package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	historyrender "github.com/bnema/vipasana-cli/internal/adapters/render/history"
	"github.com/bnema/vipasana-cli/internal/domain"
)

const dayLayout = "2006-01-02"

type sessionOutput struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	StartTime       time.Time `json:"start_time"`
	DurationSeconds int       `json:"duration_seconds"`
}

type statsOutput struct {
	TotalSessions int `json:"total_sessions"`
	TotalMinutes  int `json:"total_minutes"`
	CurrentStreak int `json:"current_streak"`
}

func newHistoryCmd(app *app) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List completed sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			history, err := app.service.GetHistory(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				sessions := history.Sessions
				if limit > 0 && len(sessions) > limit {
					sessions = sessions[:limit]
				}
				return writeJSON(cmd.OutOrStdout(), toSessionOutputs(sessions))
			}

			rendered, err := app.historyRenderer(history, historyrender.RenderOptions{Now: app.now(), Limit: limit})
			if err != nil {
				return fmt.Errorf("render history: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of sessions to list (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output sessions as JSON")

	cmd.AddCommand(
		newHistoryStatsCmd(app),
		newHistoryDayCmd(app),
	)

	return cmd
}

func newHistoryStatsCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show total sessions, total minutes and the current streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := app.service.GetStats(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), statsOutput(stats))
			}

			rendered, err := historyrender.RenderStats(stats)
			if err != nil {
				return fmt.Errorf("render stats: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output stats as JSON")

	return cmd
}

func newHistoryDayCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "day [YYYY-MM-DD]",
		Short: "Show the sessions of one day (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			day := now
			if len(args) == 1 {
				parsed, err := time.ParseInLocation(dayLayout, args[0], now.Location())
				if err != nil {
					return fmt.Errorf("parse day %q: expected YYYY-MM-DD", args[0])
				}
				day = parsed
			}

			summary, err := app.service.GetDay(cmd.Context(), day)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), struct {
					Day          string          `json:"day"`
					TotalMinutes int             `json:"total_minutes"`
					Sessions     []sessionOutput `json:"sessions"`
				}{
					Day:          summary.Day.Format(dayLayout),
					TotalMinutes: summary.TotalMinutes,
					Sessions:     toSessionOutputs(summary.Sessions),
				})
			}

			rendered, err := app.dayRenderer(summary, historyrender.RenderOptions{Now: now})
			if err != nil {
				return fmt.Errorf("render day: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the day as JSON")

	return cmd
}

func toSessionOutputs(records []domain.SessionRecord) []sessionOutput {
	outputs := make([]sessionOutput, 0, len(records))
	for _, record := range records {
		outputs = append(outputs, sessionOutput{
			ID:              string(record.ID),
			Type:            record.Type,
			StartTime:       record.StartTime,
			DurationSeconds: int(record.Duration / time.Second),
		})
	}
	return outputs
}

func writeJSON(out io.Writer, value any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
