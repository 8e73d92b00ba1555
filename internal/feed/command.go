package feed

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// cmdTimeout is the maximum duration a feed command may run.
const cmdTimeout = 30 * time.Second

// CommandService serves the stdout lines of a shell command. The command
// runs once; later fetches page through the captured output until Reset.
type CommandService struct {
	command string
	dir     string
	delim   string
	timeout time.Duration

	mu     sync.Mutex
	lines  []string
	loaded bool
}

// Compile-time checks.
var (
	_ Service  = (*CommandService)(nil)
	_ Resetter = (*CommandService)(nil)
)

// NewCommandService runs command through the user's shell in dir.
func NewCommandService(command, dir, delim string) (*CommandService, error) {
	if strings.TrimSpace(command) == "" {
		return nil, ErrEmptyCommand
	}
	return &CommandService{command: command, dir: dir, delim: delim, timeout: cmdTimeout}, nil
}

// Name returns the command line.
func (s *CommandService) Name() string { return s.command }

// Path returns "": command output has no file to watch.
func (s *CommandService) Path() string { return "" }

// Fetch runs the command on first use and returns a page of its output.
func (s *CommandService) Fetch(offset, limit int) (Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		out, err := runShell(s.dir, s.timeout, s.command)
		if err != nil {
			return Page{}, err
		}
		s.lines = SplitLines(out)
		s.loaded = true
	}
	return sliceLines(s.lines, offset, limit, s.delim), nil
}

// Reset drops the captured output so the next Fetch reruns the command.
func (s *CommandService) Reset() {
	s.mu.Lock()
	s.lines = nil
	s.loaded = false
	s.mu.Unlock()
}

// runShell executes command with a context timeout.
// Stdout and stderr are separated so stderr noise doesn't corrupt output.
func runShell(dir string, timeout time.Duration, command string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = strings.TrimSpace(stdout.String())
		}
		return "", fmt.Errorf("%s: %s: %w", command, errMsg, err)
	}
	return stdout.String(), nil
}
