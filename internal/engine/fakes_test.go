package engine

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/vipasana-cli/internal/domain"
)

type fakeBell struct {
	mu      sync.Mutex
	strikes []int
}

func (b *fakeBell) PlayBell(strikes int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.strikes = append(b.strikes, strikes)
}

func (b *fakeBell) played() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]int(nil), b.strikes...)
}

type fakeVoice struct {
	mu        sync.Mutex
	missing   map[string]bool
	clips     []string
	callbacks map[string]func()
	stops     int
}

func newFakeVoice(missing ...string) *fakeVoice {
	v := &fakeVoice{missing: map[string]bool{}, callbacks: map[string]func(){}}
	for _, clip := range missing {
		v.missing[clip] = true
	}
	return v
}

func (v *fakeVoice) Play(clip string, onComplete func()) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.missing[clip] {
		return domain.ErrClipNotFound
	}
	v.clips = append(v.clips, clip)
	if onComplete != nil {
		v.callbacks[clip] = onComplete
	}
	return nil
}

func (v *fakeVoice) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stops++
}

// finish invokes the completion callback registered for clip.
func (v *fakeVoice) finish(clip string) {
	v.mu.Lock()
	onComplete := v.callbacks[clip]
	delete(v.callbacks, clip)
	v.mu.Unlock()
	if onComplete != nil {
		onComplete()
	}
}

func (v *fakeVoice) played() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.clips...)
}

func (v *fakeVoice) stopCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stops
}

type sinkCall struct {
	sessionType string
	startTime   time.Time
	duration    time.Duration
}

type fakeSink struct {
	mu    sync.Mutex
	err   error
	calls []sinkCall
}

func (s *fakeSink) RecordSessionCompleted(_ context.Context, sessionType string, startTime time.Time, duration time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, sinkCall{sessionType: sessionType, startTime: startTime, duration: duration})
	return s.err
}

func (s *fakeSink) recorded() []sinkCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sinkCall(nil), s.calls...)
}

type fakeMetrics struct {
	mu         sync.Mutex
	dispatched int
	skipped    []domain.CueKey
	finished   []domain.Phase
}

func (m *fakeMetrics) CueDispatched(domain.Cue) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dispatched++
}

func (m *fakeMetrics) CueSkipped(cue domain.Cue) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skipped = append(m.skipped, cue.Key)
}

func (m *fakeMetrics) SessionFinished(_ domain.Mode, phase domain.Phase, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finished = append(m.finished, phase)
}
