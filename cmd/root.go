package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const logLevelKey = "log.level"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vip",
		Short:         "Vipasana CLI (vip): timed meditation sessions in the terminal",
		Long:          "vip runs silent or guided meditation sessions with interval bells, keeps a history of completed sittings and tracks your streak.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	if err := app.cfg.BindPFlag(logLevelKey, rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return fmt.Errorf("bind log level flag: %w", err)
		}
		return rootCmd
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return setupLogging(cmd.ErrOrStderr(), app.cfg.GetString(logLevelKey))
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newSitCmd(app),
		newHistoryCmd(app),
		newSettingsCmd(app),
		newScriptCmd(app),
	)

	return rootCmd
}

func setupLogging(out io.Writer, rawLevel string) error {
	level, err := zerolog.ParseLevel(rawLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.WarnLevel
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
	return nil
}
