//go:build !darwin && !linux

package interaction

import "errors"

// ErrNoRawMode is returned where the terminal cannot be put in raw mode.
var ErrNoRawMode = errors.New("keyboard input is not supported on this platform")

// KeyboardReader is unavailable on this platform.
type KeyboardReader struct {
	input chan KeyEvent
}

func NewKeyboardReader() (*KeyboardReader, error) {
	return nil, ErrNoRawMode
}

func (kr *KeyboardReader) Events() <-chan KeyEvent {
	return kr.input
}

func (kr *KeyboardReader) Close() error {
	return nil
}
