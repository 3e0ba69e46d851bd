package engine

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/vipasana-cli/internal/domain"
)

type runnerFixture struct {
	clock  *clockwork.FakeClock
	bell   *fakeBell
	voice  *fakeVoice
	sink   *fakeSink
	runner *Runner
}

func newRunnerFixture(t *testing.T, config domain.SessionConfig) *runnerFixture {
	t.Helper()

	f := &runnerFixture{
		clock: clockwork.NewFakeClockAt(t0),
		bell:  &fakeBell{},
		voice: newFakeVoice(),
		sink:  &fakeSink{},
	}
	logger := zerolog.Nop()
	session, err := NewSessionClock(config, Collaborators{Audio: f.bell, Voice: f.voice, Sink: f.sink}, Options{
		Clock:  f.clock,
		Logger: &logger,
	})
	require.NoError(t, err)
	f.runner = NewRunner(session)
	return f
}

// step waits for the loop to arm its timer, then moves the clock.
func (f *runnerFixture) step(t *testing.T, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, f.clock.BlockUntilContext(ctx, 1))
	f.clock.Advance(d)
}

func (f *runnerFixture) wait(t *testing.T) Outcome {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	outcome, err := f.runner.Wait(ctx)
	require.NoError(t, err)
	return outcome
}

func TestRunnerCompletesSilentSession(t *testing.T) {
	t.Parallel()

	f := newRunnerFixture(t, silent(2*time.Second, true))
	events := f.runner.Subscribe(64)
	require.NoError(t, f.runner.Start(context.Background()))

	f.step(t, 3*time.Second)
	f.step(t, 4*time.Second)
	f.step(t, time.Second)
	f.step(t, time.Second)
	f.step(t, time.Second)

	outcome := f.wait(t)
	assert.True(t, outcome.Completed())
	assert.Equal(t, 2*time.Second, outcome.Elapsed)
	assert.Equal(t, t0, outcome.StartedAt)
	assert.Equal(t, []int{3, 3}, f.bell.played())
	assert.Len(t, f.sink.recorded(), 1)

	var finished []Event
	for event := range events {
		if event.Type == EventFinished {
			finished = append(finished, event)
		}
	}
	require.Len(t, finished, 1)
	assert.Equal(t, domain.PhaseCompleted, finished[0].Phase)
}

func TestRunnerStopAbortsSession(t *testing.T) {
	t.Parallel()

	f := newRunnerFixture(t, silent(time.Minute, true))
	require.NoError(t, f.runner.Start(context.Background()))
	f.step(t, 3*time.Second)
	f.step(t, 4*time.Second)

	require.NoError(t, f.runner.Stop())

	outcome := f.wait(t)
	assert.Equal(t, domain.PhaseAborted, outcome.Phase)
	assert.Empty(t, f.sink.recorded())
	assert.ErrorIs(t, f.runner.Pause(), ErrRunnerClosed)
}

func TestRunnerContextCancelAbortsSession(t *testing.T) {
	t.Parallel()

	f := newRunnerFixture(t, silent(time.Minute, true))
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, f.runner.Start(ctx))

	cancel()

	outcome := f.wait(t)
	assert.Equal(t, domain.PhaseAborted, outcome.Phase)
	assert.Equal(t, 1, f.voice.stopCount())
	assert.Empty(t, f.sink.recorded())
}

func TestRunnerRoutesCallbacksAndTogglesPause(t *testing.T) {
	t.Parallel()

	f := newRunnerFixture(t, guided(15*time.Minute, true))
	require.NoError(t, f.runner.Start(context.Background()))
	require.Equal(t, []string{domain.ClipIntro}, f.voice.played())

	go f.voice.finish(domain.ClipIntro)
	f.step(t, 4*time.Second)
	f.step(t, time.Second)

	state, err := f.runner.State()
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseCounting, state.Phase)
	assert.Equal(t, time.Second, state.Elapsed)

	require.NoError(t, f.runner.TogglePause())
	f.clock.Advance(time.Hour)
	state, err = f.runner.State()
	require.NoError(t, err)
	assert.Equal(t, domain.PhasePaused, state.Phase)
	assert.Equal(t, time.Second, state.Elapsed)

	require.NoError(t, f.runner.TogglePause())
	f.step(t, time.Second)
	state, err = f.runner.State()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, state.Elapsed)

	require.NoError(t, f.runner.Stop())
	assert.Equal(t, domain.PhaseAborted, f.wait(t).Phase)
}

func TestRunnerRejectsMisuse(t *testing.T) {
	t.Parallel()

	f := newRunnerFixture(t, silent(time.Minute, true))
	require.ErrorIs(t, f.runner.Pause(), domain.ErrInvalidTransition)

	require.NoError(t, f.runner.Start(context.Background()))
	require.ErrorIs(t, f.runner.Start(context.Background()), domain.ErrInvalidTransition)
	require.ErrorIs(t, f.runner.Resume(), domain.ErrInvalidTransition)

	require.NoError(t, f.runner.Stop())
	f.wait(t)

	events := f.runner.Subscribe(1)
	_, open := <-events
	assert.False(t, open)
}
