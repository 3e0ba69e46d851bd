package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bnema/vipasana-cli/internal/domain"
	"github.com/bnema/vipasana-cli/internal/ports"
)

const (
	historyPathKey         = "history.path"
	historyFile            = "history.toml"
	historyTempFilePattern = ".history-*.toml.tmp"
)

// Repository stores session history in a TOML file.
type Repository struct {
	historyPath string
	mu          *sync.RWMutex
}

var _ ports.SessionRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	historyPath, err := resolvePath(cfg, historyPathKey, historyFile)
	if err != nil {
		return nil, err
	}

	return &Repository{historyPath: historyPath, mu: lockForPath(historyPath)}, nil
}

func (r *Repository) Path() string {
	return r.historyPath
}

func (r *Repository) Save(ctx context.Context, record domain.SessionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSessionSchema(record)
	updated := false
	for i := range file.Sessions {
		if file.Sessions[i].ID == encoded.ID {
			file.Sessions[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Sessions = append(file.Sessions, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) GetByID(ctx context.Context, id domain.SessionID) (domain.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionRecord{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.SessionRecord{}, err
	}

	for _, entry := range file.Sessions {
		if entry.ID == string(id) {
			return fromSessionSchema(entry)
		}
	}

	return domain.SessionRecord{}, domain.ErrSessionNotFound
}

func (r *Repository) List(ctx context.Context) ([]domain.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	records := make([]domain.SessionRecord, 0, len(file.Sessions))
	for _, entry := range file.Sessions {
		record, err := fromSessionSchema(entry)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func (r *Repository) readSchema() (historySchema, error) {
	data, err := os.ReadFile(r.historyPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return historySchema{Version: currentSchemaVersion}, nil
		}
		return historySchema{}, fmt.Errorf("read history file: %w", err)
	}

	var file historySchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return historySchema{}, fmt.Errorf("decode history file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return historySchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file historySchema) error {
	file.applyDefaults()

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode history file: %w", err)
	}

	if err := writeFileAtomic(r.historyPath, historyTempFilePattern, data); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}

	return nil
}
