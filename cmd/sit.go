package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	sessionview "github.com/bnema/vipasana-cli/internal/adapters/render/session"
	"github.com/bnema/vipasana-cli/internal/application"
	"github.com/bnema/vipasana-cli/internal/domain"
	"github.com/bnema/vipasana-cli/internal/engine"
)

type sitOptions struct {
	minutes  int
	duration time.Duration
	guided   bool
	bells    bool
	noBells  bool
	plain    bool
}

func newSitCmd(app *app) *cobra.Command {
	var opts sitOptions

	cmd := &cobra.Command{
		Use:   "sit",
		Short: "Start a meditation session",
		Long: fmt.Sprintf("Start a silent or guided meditation session. Presets: %s minutes.\n"+
			"Interval bells follow your saved settings unless --bells or --no-bells is given.\n"+
			"In the live view press space to pause or resume and q to end the session.", presetList()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSit(cmd, app, opts.command(), opts.plain)
		},
	}

	cmd.Flags().IntVarP(&opts.minutes, "minutes", "m", domain.PresetMinutes[0], "Session length in minutes")
	cmd.Flags().DurationVar(&opts.duration, "duration", 0, "Session length as a duration, e.g. 90s (overrides --minutes)")
	cmd.Flags().BoolVarP(&opts.guided, "guided", "g", false, "Play the guided voiceover script")
	cmd.Flags().BoolVar(&opts.bells, "bells", false, "Ring interval bells for this session")
	cmd.Flags().BoolVar(&opts.noBells, "no-bells", false, "Skip interval bells for this session")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Print session events as lines instead of the live view")
	cmd.MarkFlagsMutuallyExclusive("bells", "no-bells")
	cmd.MarkFlagsMutuallyExclusive("minutes", "duration")

	return cmd
}

func (o sitOptions) command() application.StartSessionCommand {
	total := time.Duration(o.minutes) * time.Minute
	if o.duration != 0 {
		total = o.duration
	}

	start := application.StartSessionCommand{Duration: total, Mode: domain.ModeSilent}
	if o.guided {
		start.Mode = domain.ModeGuided
	}
	switch {
	case o.bells:
		enabled := true
		start.IntervalBells = &enabled
	case o.noBells:
		enabled := false
		start.IntervalBells = &enabled
	}

	return start
}

func runSit(cmd *cobra.Command, app *app, start application.StartSessionCommand, plain bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	var captions io.Writer
	if plain {
		captions = out
	}

	prepared, err := app.sessionService(cmd.ErrOrStderr(), captions).Prepare(ctx, start)
	if err != nil {
		return fmt.Errorf("prepare session: %w", err)
	}
	for _, clip := range prepared.MissingClips {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: guided clip %q is missing and will be skipped\n", clip)
	}

	runner := prepared.Runner
	events := runner.Subscribe(subscriberBacklog)
	if err := runner.Start(ctx); err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	if plain {
		printEvents(out, events)
	} else if err := runSessionView(ctx, app, prepared, events); err != nil {
		_ = runner.Stop()
		return err
	}

	outcome := runner.Outcome()
	app.flushMetrics()
	return reportOutcome(out, prepared.Config, outcome)
}

func runSessionView(ctx context.Context, app *app, prepared application.PreparedSession, events <-chan engine.Event) error {
	_, err := sessionview.Run(ctx, sessionview.Options{
		Config:   prepared.Config,
		Settings: prepared.Settings,
		Captions: app.script,
		Events:   events,
		Control:  prepared.Runner,
	}, tea.WithAltScreen())
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run session view: %w", err)
	}
	return nil
}

func (a *app) flushMetrics() {
	if a.metricsPath == "" {
		return
	}
	if err := a.metrics.WriteTextfile(a.metricsPath); err != nil {
		log.Warn().Err(err).Str("path", a.metricsPath).Msg("metrics textfile not written")
	}
}

func reportOutcome(out io.Writer, config domain.SessionConfig, outcome engine.Outcome) error {
	if !outcome.Completed() {
		_, err := fmt.Fprintf(out, "Session ended early after %s; not recorded.\n", formatElapsed(outcome.Elapsed))
		return err
	}

	if outcome.RecordErr != nil {
		_, _ = fmt.Fprintf(out, "Session complete: %s.\n", config.SessionType())
		return fmt.Errorf("session completed but was not recorded: %w", outcome.RecordErr)
	}

	_, err := fmt.Fprintf(out, "Session complete: %s recorded.\n", config.SessionType())
	return err
}

func printEvents(out io.Writer, events <-chan engine.Event) {
	for event := range events {
		line := eventLine(event)
		if line == "" {
			continue
		}
		_, _ = fmt.Fprintf(out, "[%s] %s\n", formatElapsed(event.Elapsed), line)
	}
}

func eventLine(event engine.Event) string {
	switch event.Type {
	case engine.EventPhaseChanged:
		return event.Phase.Label()
	case engine.EventTick:
		if event.Elapsed%time.Minute != 0 || event.Remaining == 0 {
			return ""
		}
		return formatElapsed(event.Remaining) + " remaining"
	case engine.EventCueFired:
		if event.Cue.Kind == domain.CueKindVoiceover {
			return "voice: " + event.Cue.Clip
		}
		if event.Cue.Strikes > 1 {
			return fmt.Sprintf("bell ×%d", event.Cue.Strikes)
		}
		return "bell"
	case engine.EventCueSkipped:
		return fmt.Sprintf("skipped %s: %v", event.Cue.Key, event.Err)
	default:
		return ""
	}
}

func formatElapsed(d time.Duration) string {
	seconds := int(d / time.Second)
	if seconds >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func presetList() string {
	presets := make([]string, 0, len(domain.PresetMinutes))
	for _, minutes := range domain.PresetMinutes {
		presets = append(presets, fmt.Sprint(minutes))
	}
	return strings.Join(presets, ", ")
}
