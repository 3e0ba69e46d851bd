package terminal

import (
	"io"
	"sync"
	"time"

	"github.com/bnema/vipasana-cli/internal/ports"
)

const (
	bellChar      = "\a"
	strikeSpacing = time.Second
)

// BellPlayer rings the terminal bell. Multi-strike bells are spaced one second
// apart on the player's clock; PlayBell returns immediately.
type BellPlayer struct {
	out   io.Writer
	clock ports.Clock

	mu sync.Mutex
}

var _ ports.AudioCuePlayer = (*BellPlayer)(nil)

func NewBellPlayer(out io.Writer, clock ports.Clock) *BellPlayer {
	if out == nil {
		out = io.Discard
	}
	if clock == nil {
		clock = ports.SystemClock()
	}

	return &BellPlayer{out: out, clock: clock}
}

func (p *BellPlayer) PlayBell(strikes int) {
	for i := 0; i < strikes; i++ {
		if i == 0 {
			p.strike()
			continue
		}
		p.clock.AfterFunc(time.Duration(i)*strikeSpacing, p.strike)
	}
}

func (p *BellPlayer) strike() {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = io.WriteString(p.out, bellChar)
}
