package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/bnema/vipasana-cli/internal/adapters/audio/terminal"
	prommetrics "github.com/bnema/vipasana-cli/internal/adapters/metrics/prometheus"
	historyrender "github.com/bnema/vipasana-cli/internal/adapters/render/history"
	tomlrepo "github.com/bnema/vipasana-cli/internal/adapters/repo/toml"
	scriptyaml "github.com/bnema/vipasana-cli/internal/adapters/script/yaml"
	"github.com/bnema/vipasana-cli/internal/application"
	"github.com/bnema/vipasana-cli/internal/engine"
	"github.com/bnema/vipasana-cli/internal/ports"
)

const (
	envPrefix         = "VIP"
	scriptPathKey     = "script.path"
	metricsTextfile   = "metrics.textfile"
	defaultLogLevel   = "warn"
	subscriberBacklog = 256
)

// newClock is swapped by tests for a fake clock.
var newClock = ports.SystemClock

type app struct {
	cfg         *viper.Viper
	service     *application.Service
	settings    ports.SettingsRepository
	script      *scriptyaml.Catalog
	metrics     *prommetrics.SessionMetrics
	metricsPath string
	clock       ports.Clock
	timings     engine.Timings

	historyRenderer func(application.History, historyrender.RenderOptions) (string, error)
	dayRenderer     func(application.DaySummary, historyrender.RenderOptions) (string, error)
	now             func() time.Time
}

func wireApp() (*app, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env file: %w", err)
	}

	cfg := newConfig()

	repo, err := tomlrepo.NewRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire session repository: %w", err)
	}

	settingsRepo, err := tomlrepo.NewSettingsRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire settings repository: %w", err)
	}

	script, err := scriptyaml.Load(cfg.GetString(scriptPathKey))
	if err != nil {
		return nil, fmt.Errorf("wire guided script: %w", err)
	}

	clock := newClock()

	return &app{
		cfg:             cfg,
		service:         application.NewService(repo, settingsRepo, clock),
		settings:        settingsRepo,
		script:          script,
		metrics:         prommetrics.NewSessionMetrics(),
		metricsPath:     cfg.GetString(metricsTextfile),
		clock:           clock,
		timings:         engine.DefaultTimings(),
		historyRenderer: historyrender.RenderHistory,
		dayRenderer:     historyrender.RenderDay,
		now:             clock.Now,
	}, nil
}

func newConfig() *viper.Viper {
	cfg := viper.New()
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()
	cfg.SetDefault(logLevelKey, defaultLogLevel)
	return cfg
}

// sessionService wires players for one sitting. Captions are only written in
// plain mode; the live view shows them itself.
func (a *app) sessionService(bellOut, captionOut io.Writer) *application.SessionService {
	return application.NewSessionService(application.SessionDeps{
		Settings: a.settings,
		Script:   a.script,
		Audio:    terminal.NewBellPlayer(bellOut, a.clock),
		Voice:    terminal.NewVoicePlayer(a.script, a.clock, captionOut),
		Sink:     a.service,
		Metrics:  a.metrics,
		Clock:    a.clock,
		Timings:  a.timings,
	})
}
