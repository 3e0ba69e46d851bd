package ports

import (
	"context"
	"time"

	"github.com/bnema/vipasana-cli/internal/domain"
)

// PersistenceSink receives exactly one call per completed session.
type PersistenceSink interface {
	RecordSessionCompleted(ctx context.Context, sessionType string, startTime time.Time, duration time.Duration) error
}

type SessionRepository interface {
	GetByID(ctx context.Context, id domain.SessionID) (domain.SessionRecord, error)
	List(ctx context.Context) ([]domain.SessionRecord, error)
	Save(ctx context.Context, record domain.SessionRecord) error
}

type SettingsRepository interface {
	Load(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) error
}
