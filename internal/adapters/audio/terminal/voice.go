package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/bnema/vipasana-cli/internal/ports"
)

// completionBuffer is added to a clip's duration before it is reported done.
const completionBuffer = 500 * time.Millisecond

// VoicePlayer "plays" guided clips as captions. A clip is reported complete
// its duration plus half a second after Play. Starting a clip replaces the
// caption in flight; Stop cancels every pending completion.
type VoicePlayer struct {
	catalog ports.ScriptCatalog
	clock   ports.Clock
	out     io.Writer

	mu      sync.Mutex
	gen     uint64
	playing string
	pending map[uint64]clockwork.Timer
}

var _ ports.VoiceoverCuePlayer = (*VoicePlayer)(nil)

// NewVoicePlayer writes captions to out. A nil out plays silently.
func NewVoicePlayer(catalog ports.ScriptCatalog, clock ports.Clock, out io.Writer) *VoicePlayer {
	if clock == nil {
		clock = ports.SystemClock()
	}

	return &VoicePlayer{
		catalog: catalog,
		clock:   clock,
		out:     out,
		pending: map[uint64]clockwork.Timer{},
	}
}

func (p *VoicePlayer) Play(clipID string, onComplete func()) error {
	clip, err := p.catalog.Clip(clipID)
	if err != nil {
		return fmt.Errorf("play clip: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.gen++
	gen := p.gen
	p.playing = clip.ID
	if p.out != nil && clip.Transcript != "" {
		_, _ = fmt.Fprintf(p.out, "  » %s\n", strings.TrimSpace(clip.Transcript))
	}

	p.pending[gen] = p.clock.AfterFunc(clip.Duration+completionBuffer, func() {
		p.mu.Lock()
		if _, ok := p.pending[gen]; !ok {
			p.mu.Unlock()
			return
		}
		delete(p.pending, gen)
		if p.gen == gen {
			p.playing = ""
		}
		p.mu.Unlock()

		if onComplete != nil {
			onComplete()
		}
	})

	return nil
}

// Playing returns the clip currently in flight.
func (p *VoicePlayer) Playing() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing, p.playing != ""
}

func (p *VoicePlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for gen, timer := range p.pending {
		timer.Stop()
		delete(p.pending, gen)
	}
	p.playing = ""
}
