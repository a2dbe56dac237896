package e2e

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
)

// BoardSession runs the board command inside a pseudo terminal
type BoardSession struct {
	cmd    *exec.Cmd
	ptmx   *os.File
	cancel context.CancelFunc
	rows   int
	cols   int

	mu     sync.RWMutex
	output bytes.Buffer
	done   chan struct{}
	err    error
}

// SessionConfig describes how to start the board
type SessionConfig struct {
	Binary  string
	Args    []string
	WorkDir string
	Env     []string

	Rows uint16
	Cols uint16

	// Timeout bounds the whole session
	Timeout time.Duration
}

// StartBoard launches the binary with a terminal of the configured size
func StartBoard(config SessionConfig) (*BoardSession, error) {
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}
	if config.Rows == 0 {
		config.Rows = 30
	}
	if config.Cols == 0 {
		config.Cols = 100
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
	cmd := exec.CommandContext(ctx, config.Binary, config.Args...)
	cmd.Dir = config.WorkDir
	cmd.Env = append(os.Environ(), config.Env...)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: config.Rows, Cols: config.Cols})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start pty: %w", err)
	}

	s := &BoardSession{
		cmd:    cmd,
		ptmx:   ptmx,
		cancel: cancel,
		rows:   int(config.Rows),
		cols:   int(config.Cols),
		done:   make(chan struct{}),
	}
	go s.capture()
	go func() {
		s.err = cmd.Wait()
		close(s.done)
	}()
	return s, nil
}

func (s *BoardSession) capture() {
	buf := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			s.mu.Lock()
			s.output.Write(buf[:n])
			s.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// Press sends keys to the board
func (s *BoardSession) Press(keys string) error {
	_, err := io.WriteString(s.ptmx, keys)
	return err
}

// Output returns everything the board has written so far
func (s *BoardSession) Output() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.output.String()
}

// Screen replays the output onto a virtual terminal of the session size
func (s *BoardSession) Screen() *Screen {
	return Replay(s.Output(), s.rows, s.cols)
}

// WaitForText polls the screen until text is visible
func (s *BoardSession) WaitForText(text string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if s.Screen().Contains(text) {
			return nil
		}
		select {
		case <-s.done:
			return fmt.Errorf("board exited before showing %q: %v", text, s.err)
		case <-time.After(50 * time.Millisecond):
		}
	}
	return fmt.Errorf("timeout waiting for %q, screen:\n%s", text, s.Screen().Render())
}

// ClearOutput forgets captured output, e.g. before a key press
func (s *BoardSession) ClearOutput() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.output.Reset()
}

// Wait blocks until the board exits or timeout passes
func (s *BoardSession) Wait(timeout time.Duration) error {
	select {
	case <-s.done:
		return s.err
	case <-time.After(timeout):
		return errors.New("board did not exit")
	}
}

// Quit presses q and waits for a clean exit, killing the board if it
// does not stop
func (s *BoardSession) Quit() error {
	defer s.close()
	if err := s.Press("q"); err != nil {
		return err
	}
	return s.Wait(3 * time.Second)
}

// Exited reports whether the board process has ended
func (s *BoardSession) Exited() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// ScreenLines returns the non-empty screen lines
func (s *BoardSession) ScreenLines() []string {
	var lines []string
	for _, line := range strings.Split(s.Screen().Render(), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func (s *BoardSession) close() {
	s.cancel()
	s.ptmx.Close()
	<-s.done
}
