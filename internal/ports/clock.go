package ports

import "github.com/jonboulle/clockwork"

// Clock is the time source shared by the engine and the adapters.
// Production code uses SystemClock(); tests use clockwork.NewFakeClock.
type Clock = clockwork.Clock

func SystemClock() Clock {
	return clockwork.NewRealClock()
}
