package snazy

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/go-logr/logr/testr"
)

type errWriter struct{}

func (errWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("write err")
}

type errReader struct{}

func (errReader) Read(_ []byte) (int, error) {
	return 0, errors.New("read err")
}

type bufferFd struct {
	bytes.Buffer
}

func (*bufferFd) Fd() uintptr {
	return ^uintptr(0)
}

type recordingSpawner struct {
	mu       sync.Mutex
	commands []string
	err      error
}

func (s *recordingSpawner) Spawn(command string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands = append(s.commands, command)
	return s.err
}

func plainConfig() Config {
	cfg := DefaultConfig()
	cfg.Color = ColorNever
	return cfg
}

func newTestProcessor(t *testing.T, cfg Config, opts ...Option) (*Processor, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	opts = append([]Option{WithLogger(testr.New(t))}, opts...)
	p, err := New(cfg, &buf, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return p, &buf
}
