package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/vipasana-cli/internal/application"
	"github.com/bnema/vipasana-cli/internal/domain"
)

type settingsOutput struct {
	IntervalBells   bool    `json:"interval_bells"`
	InhaleSeconds   float64 `json:"inhale_seconds"`
	ExhaleSeconds   float64 `json:"exhale_seconds"`
	BackgroundColor string  `json:"background_color"`
	CircleColor     string  `json:"circle_color"`
}

func newSettingsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change breathing and bell settings",
	}

	cmd.AddCommand(
		newSettingsShowCmd(app),
		newSettingsSetCmd(app),
	)

	return cmd
}

func newSettingsShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the saved settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := app.service.GetSettings(cmd.Context())
			if err != nil {
				return err
			}
			return writeSettingsOutput(cmd.OutOrStdout(), settings, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output settings as JSON")

	return cmd
}

func newSettingsSetCmd(app *app) *cobra.Command {
	var (
		intervalBells   bool
		inhale          time.Duration
		exhale          time.Duration
		backgroundColor string
		circleColor     string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var update application.UpdateSettingsCommand
			flags := cmd.Flags()
			if flags.Changed("interval-bells") {
				update.IntervalBells = &intervalBells
			}
			if flags.Changed("inhale") {
				update.InhaleDuration = &inhale
			}
			if flags.Changed("exhale") {
				update.ExhaleDuration = &exhale
			}
			if flags.Changed("background-color") {
				update.BackgroundColor = &backgroundColor
			}
			if flags.Changed("circle-color") {
				update.CircleColor = &circleColor
			}
			if update == (application.UpdateSettingsCommand{}) {
				return fmt.Errorf("settings set: nothing to change, pass at least one flag")
			}

			settings, err := app.service.UpdateSettings(cmd.Context(), update)
			if err != nil {
				return err
			}
			return writeSettingsOutput(cmd.OutOrStdout(), settings, false)
		},
	}

	cmd.Flags().BoolVar(&intervalBells, "interval-bells", true, "Ring interval bells by default")
	cmd.Flags().DurationVar(&inhale, "inhale", domain.DefaultBreathDuration, "Inhale length of the breathing guide")
	cmd.Flags().DurationVar(&exhale, "exhale", domain.DefaultBreathDuration, "Exhale length of the breathing guide")
	cmd.Flags().StringVar(&backgroundColor, "background-color", domain.DefaultBackgroundColor, "Background colour as #RRGGBB")
	cmd.Flags().StringVar(&circleColor, "circle-color", domain.DefaultCircleColor, "Breathing circle colour as #RRGGBB")

	return cmd
}

func writeSettingsOutput(out io.Writer, settings domain.Settings, asJSON bool) error {
	if asJSON {
		return writeJSON(out, settingsOutput{
			IntervalBells:   settings.IntervalBellsEnabled,
			InhaleSeconds:   settings.InhaleDuration.Seconds(),
			ExhaleSeconds:   settings.ExhaleDuration.Seconds(),
			BackgroundColor: settings.BackgroundColor,
			CircleColor:     settings.CircleColor,
		})
	}

	_, err := fmt.Fprintf(out,
		"interval_bells   = %t\ninhale           = %s\nexhale           = %s\nbackground_color = %s\ncircle_color     = %s\n",
		settings.IntervalBellsEnabled,
		settings.InhaleDuration,
		settings.ExhaleDuration,
		settings.BackgroundColor,
		settings.CircleColor,
	)
	return err
}
