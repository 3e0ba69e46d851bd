package yaml

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/bnema/vipasana-cli/internal/domain"
	"github.com/bnema/vipasana-cli/internal/ports"
)

//go:embed default_script.yaml
var defaultScript []byte

// EmbeddedSource names the built-in script.
const EmbeddedSource = "embedded"

// Catalog is a guided script loaded from YAML.
type Catalog struct {
	source   string
	clips    map[string]ports.Clip
	schedule domain.GuidedSchedule
}

var _ ports.ScriptCatalog = (*Catalog)(nil)

func Default() (*Catalog, error) {
	return Parse(defaultScript, EmbeddedSource)
}

// Load reads a script file, or returns the built-in script when path is empty.
// Relative clip files are resolved against the script's directory.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script file: %w", err)
	}

	catalog, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	for id, clip := range catalog.clips {
		if clip.File != "" && !filepath.IsAbs(clip.File) {
			clip.File = filepath.Join(filepath.Dir(path), clip.File)
			catalog.clips[id] = clip
		}
	}

	return catalog, nil
}

func Parse(data []byte, source string) (*Catalog, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var file scriptSchema
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode script %s: %w", source, err)
	}

	clips := make(map[string]ports.Clip, len(file.Clips))
	for _, entry := range file.Clips {
		if entry.ID == "" {
			return nil, fmt.Errorf("script %s: clip without id", source)
		}
		if _, ok := clips[entry.ID]; ok {
			return nil, fmt.Errorf("script %s: duplicate clip %q", source, entry.ID)
		}
		clips[entry.ID] = ports.Clip{
			ID:         entry.ID,
			Transcript: entry.Transcript,
			Duration:   time.Duration(entry.Duration),
			File:       entry.File,
		}
	}

	schedule, err := file.toSchedule()
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", source, err)
	}
	if err := schedule.Validate(); err != nil {
		return nil, fmt.Errorf("script %s: %w", source, err)
	}

	return &Catalog{source: source, clips: clips, schedule: schedule}, nil
}

func (c *Catalog) Source() string {
	return c.source
}

func (c *Catalog) Clip(id string) (ports.Clip, error) {
	clip, ok := c.clips[id]
	if !ok {
		return ports.Clip{}, fmt.Errorf("%w: %q", domain.ErrClipNotFound, id)
	}
	return clip, nil
}

func (c *Catalog) Schedule() domain.GuidedSchedule {
	return c.schedule
}

// Clips lists every clip ordered by id.
func (c *Catalog) Clips() []ports.Clip {
	clips := make([]ports.Clip, 0, len(c.clips))
	for _, clip := range c.clips {
		clips = append(clips, clip)
	}
	sort.Slice(clips, func(i, j int) bool {
		return clips[i].ID < clips[j].ID
	})
	return clips
}

type scriptSchema struct {
	Intro       string            `yaml:"intro"`
	Completion  string            `yaml:"completion"`
	Clips       []clipSchema      `yaml:"clips"`
	Checkpoints checkpointsSchema `yaml:"checkpoints"`
}

type clipSchema struct {
	ID         string   `yaml:"id"`
	File       string   `yaml:"file"`
	Duration   duration `yaml:"duration"`
	Transcript string   `yaml:"transcript"`
}

type checkpointsSchema struct {
	Default  []checkpointSchema            `yaml:"default"`
	ByLength map[string][]checkpointSchema `yaml:"by_length"`
}

type checkpointSchema struct {
	At        duration `yaml:"at"`
	Bell      bool     `yaml:"bell"`
	Clip      string   `yaml:"clip"`
	ClipDelay duration `yaml:"clip_delay"`
}

func (s scriptSchema) toSchedule() (domain.GuidedSchedule, error) {
	if s.Intro == "" {
		return domain.GuidedSchedule{}, errors.New("intro clip is required")
	}

	schedule := domain.GuidedSchedule{
		IntroClip:      s.Intro,
		CompletionClip: s.Completion,
		Default:        toCheckpoints(s.Checkpoints.Default),
	}
	for raw, table := range s.Checkpoints.ByLength {
		length, err := time.ParseDuration(raw)
		if err != nil {
			return domain.GuidedSchedule{}, fmt.Errorf("parse session length %q: %w", raw, err)
		}
		if schedule.ByDuration == nil {
			schedule.ByDuration = map[time.Duration][]domain.Checkpoint{}
		}
		schedule.ByDuration[length] = toCheckpoints(table)
	}

	return schedule, nil
}

func toCheckpoints(entries []checkpointSchema) []domain.Checkpoint {
	checkpoints := make([]domain.Checkpoint, 0, len(entries))
	for _, entry := range entries {
		checkpoints = append(checkpoints, domain.Checkpoint{
			Offset:    time.Duration(entry.At),
			Bell:      entry.Bell,
			Clip:      entry.Clip,
			ClipDelay: time.Duration(entry.ClipDelay),
		})
	}
	return checkpoints
}

// duration decodes Go duration strings such as "90s" or "5m".
type duration time.Duration

func (d *duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	if parsed < 0 {
		return fmt.Errorf("line %d: duration %s is negative", node.Line, raw)
	}

	*d = duration(parsed)
	return nil
}
