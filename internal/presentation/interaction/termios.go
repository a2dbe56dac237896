//go:build darwin || linux

package interaction

import (
	"os"

	"golang.org/x/sys/unix"
)

// rawState turns off echo and line buffering. ISIG stays on so Ctrl+C
// still interrupts the process.
func rawState(state unix.Termios) unix.Termios {
	state.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN
	state.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	state.Cflag |= unix.CS8
	state.Cc[unix.VMIN] = 1
	state.Cc[unix.VTIME] = 0
	return state
}

// enableRawMode saves the stdin termios and switches it to raw mode.
func (kr *KeyboardReader) enableRawMode() error {
	fd := int(os.Stdin.Fd())
	saved, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return err
	}
	kr.oldState = saved

	raw := rawState(*saved)
	return unix.IoctlSetTermios(fd, ioctlSetTermios, &raw)
}

// disableRawMode restores the saved termios, if any.
func (kr *KeyboardReader) disableRawMode() error {
	if kr.oldState == nil {
		return nil
	}
	return unix.IoctlSetTermios(int(os.Stdin.Fd()), ioctlSetTermios, kr.oldState)
}
