package domain

import "errors"

var (
	ErrInvalidConfig     = errors.New("invalid session config")
	ErrInvalidTransition = errors.New("invalid phase transition")
	ErrClipNotFound      = errors.New("voiceover clip not found")
	ErrSessionNotFound   = errors.New("session not found")
	ErrInvalidSettings   = errors.New("invalid settings")
)
