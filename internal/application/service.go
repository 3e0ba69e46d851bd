package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bnema/vipasana-cli/internal/domain"
	"github.com/bnema/vipasana-cli/internal/ports"
)

// Service owns session history and user settings.
type Service struct {
	sessions ports.SessionRepository
	settings ports.SettingsRepository
	clock    ports.Clock
	newID    func() domain.SessionID
}

var _ ports.PersistenceSink = (*Service)(nil)

func NewService(sessions ports.SessionRepository, settings ports.SettingsRepository, clock ports.Clock) *Service {
	if clock == nil {
		clock = ports.SystemClock()
	}

	return &Service{
		sessions: sessions,
		settings: settings,
		clock:    clock,
		newID: func() domain.SessionID {
			return domain.SessionID(uuid.NewString())
		},
	}
}

func (s *Service) RecordSessionCompleted(ctx context.Context, sessionType string, startTime time.Time, duration time.Duration) error {
	record := domain.SessionRecord{
		ID:        s.newID(),
		Type:      sessionType,
		StartTime: startTime,
		Duration:  duration,
		Completed: true,
	}

	if err := s.sessions.Save(ctx, record); err != nil {
		return fmt.Errorf("save session record: %w", err)
	}

	return nil
}

func (s *Service) GetSession(ctx context.Context, id domain.SessionID) (domain.SessionRecord, error) {
	record, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return domain.SessionRecord{}, fmt.Errorf("get session by id: %w", err)
	}

	return record, nil
}

func (s *Service) GetHistory(ctx context.Context) (History, error) {
	records, err := s.sessions.List(ctx)
	if err != nil {
		return History{}, fmt.Errorf("list sessions: %w", err)
	}

	return History{
		Sessions: domain.CompletedNewestFirst(records),
		Stats:    domain.ComputeStats(records, s.clock.Now()),
	}, nil
}

func (s *Service) GetStats(ctx context.Context) (domain.Stats, error) {
	history, err := s.GetHistory(ctx)
	if err != nil {
		return domain.Stats{}, err
	}

	return history.Stats, nil
}

func (s *Service) GetDay(ctx context.Context, day time.Time) (DaySummary, error) {
	records, err := s.sessions.List(ctx)
	if err != nil {
		return DaySummary{}, fmt.Errorf("list sessions: %w", err)
	}

	summary := DaySummary{Day: day, Sessions: domain.OnDay(records, day)}
	for _, record := range summary.Sessions {
		summary.TotalMinutes += int(record.Duration / time.Minute)
	}

	return summary, nil
}

func (s *Service) GetSettings(ctx context.Context) (domain.Settings, error) {
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	return settings, nil
}

func (s *Service) UpdateSettings(ctx context.Context, cmd UpdateSettingsCommand) (domain.Settings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return domain.Settings{}, err
	}

	cmd.apply(&settings)
	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}

	if err := s.settings.Save(ctx, settings); err != nil {
		return domain.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	return settings, nil
}
