package ports

// AudioCuePlayer rings the session bell. Strikes are spaced one second apart
// by the player; the caller never waits for playback.
type AudioCuePlayer interface {
	PlayBell(strikes int)
}

// VoiceoverCuePlayer plays spoken clips. onComplete runs once, asynchronously,
// roughly the clip's duration after a successful Play. A nil onComplete is
// allowed. Starting a clip interrupts the one in flight.
type VoiceoverCuePlayer interface {
	Play(clipID string, onComplete func()) error
	Stop()
}
