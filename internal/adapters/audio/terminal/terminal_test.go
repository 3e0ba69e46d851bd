package terminal

import (
	"bytes"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/vipasana-cli/internal/domain"
	"github.com/bnema/vipasana-cli/internal/ports"
)

var t0 = time.Date(2026, 3, 14, 6, 30, 0, 0, time.UTC)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type stubCatalog map[string]ports.Clip

func (c stubCatalog) Clip(id string) (ports.Clip, error) {
	clip, ok := c[id]
	if !ok {
		return ports.Clip{}, domain.ErrClipNotFound
	}
	return clip, nil
}

func (stubCatalog) Schedule() domain.GuidedSchedule { return domain.DefaultGuidedSchedule() }

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	assert.Eventually(t, cond, time.Second, 5*time.Millisecond)
}

func TestBellPlayerSpacesStrikes(t *testing.T) {
	clock := clockwork.NewFakeClockAt(t0)
	out := &syncBuffer{}
	player := NewBellPlayer(out, clock)

	player.PlayBell(domain.TripleStrike)
	assert.Equal(t, "\a", out.String())

	clock.Advance(time.Second)
	eventually(t, func() bool { return out.String() == "\a\a" })

	clock.Advance(time.Second)
	eventually(t, func() bool { return out.String() == "\a\a\a" })
}

func TestBellPlayerSingleStrikeSchedulesNothing(t *testing.T) {
	clock := clockwork.NewFakeClockAt(t0)
	out := &syncBuffer{}

	NewBellPlayer(out, clock).PlayBell(domain.SingleStrike)

	assert.Equal(t, "\a", out.String())
	clock.Advance(time.Minute)
	assert.Equal(t, "\a", out.String())
}

func TestVoicePlayerCompletesAfterClipAndBuffer(t *testing.T) {
	clock := clockwork.NewFakeClockAt(t0)
	out := &syncBuffer{}
	player := NewVoicePlayer(stubCatalog{
		"intro": {ID: "intro", Transcript: "Find a comfortable seat.", Duration: 10 * time.Second},
	}, clock, out)

	var done atomic.Int32
	require.NoError(t, player.Play("intro", func() { done.Add(1) }))

	assert.Contains(t, out.String(), "Find a comfortable seat.")
	playing, ok := player.Playing()
	assert.True(t, ok)
	assert.Equal(t, "intro", playing)

	clock.Advance(10*time.Second + 499*time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	assert.Zero(t, done.Load())

	clock.Advance(time.Millisecond)
	eventually(t, func() bool { return done.Load() == 1 })
	eventually(t, func() bool {
		_, ok := player.Playing()
		return !ok
	})
}

func TestVoicePlayerUnknownClip(t *testing.T) {
	out := &syncBuffer{}
	player := NewVoicePlayer(stubCatalog{}, clockwork.NewFakeClockAt(t0), out)

	err := player.Play("missing", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrClipNotFound)
	assert.Empty(t, out.String())
}

func TestVoicePlayerStopCancelsPendingCompletions(t *testing.T) {
	clock := clockwork.NewFakeClockAt(t0)
	player := NewVoicePlayer(stubCatalog{
		"a": {ID: "a", Duration: 5 * time.Second},
	}, clock, nil)

	var done atomic.Int32
	require.NoError(t, player.Play("a", func() { done.Add(1) }))
	player.Stop()

	clock.Advance(time.Minute)
	time.Sleep(10 * time.Millisecond)
	assert.Zero(t, done.Load())
	_, ok := player.Playing()
	assert.False(t, ok)
}

func TestVoicePlayerReplacingClipKeepsEarlierCompletion(t *testing.T) {
	clock := clockwork.NewFakeClockAt(t0)
	out := &syncBuffer{}
	player := NewVoicePlayer(stubCatalog{
		"a": {ID: "a", Transcript: "first", Duration: 5 * time.Second},
		"b": {ID: "b", Transcript: "second", Duration: 20 * time.Second},
	}, clock, out)

	var first, second atomic.Int32
	require.NoError(t, player.Play("a", func() { first.Add(1) }))
	require.NoError(t, player.Play("b", func() { second.Add(1) }))

	playing, _ := player.Playing()
	assert.Equal(t, "b", playing)
	assert.Equal(t, 2, strings.Count(out.String(), "»"))

	clock.Advance(6 * time.Second)
	eventually(t, func() bool { return first.Load() == 1 })
	playing, _ = player.Playing()
	assert.Equal(t, "b", playing)
	assert.Zero(t, second.Load())

	clock.Advance(15 * time.Second)
	eventually(t, func() bool { return second.Load() == 1 })
}
