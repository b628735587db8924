// Package output provides write-once generated files. Content goes to a
// temporary file next to the destination and only replaces it on Commit, so a
// failed generation never leaves a half-written header behind.
package output

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mindc/fakeheader/internal/codegen/generr"
	"github.com/mindc/fakeheader/internal/log"
)

// Sink is one generated file being written.
type Sink struct {
	path  string
	tmp   *os.File
	w     *bufio.Writer
	trace log.ArtifactLogger
	data  []byte
	done  bool
}

// Option configures a Sink.
type Option func(*Sink)

// WithTrace records the committed content on l.
func WithTrace(l log.ArtifactLogger) Option {
	return func(s *Sink) { s.trace = l }
}

// Create opens a sink for path. The parent directory is created when missing.
// Failures are reported as output creation errors.
func Create(path string, opts ...Option) (*Sink, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, generr.OutputCreation(err, path)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, generr.OutputCreation(err, path)
	}
	s := &Sink{path: path, tmp: tmp, w: bufio.NewWriter(tmp)}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Path returns the destination path.
func (s *Sink) Path() string { return s.path }

// Write implements io.Writer.
func (s *Sink) Write(p []byte) (int, error) {
	if s.done {
		return 0, fmt.Errorf("write %s: sink already closed", s.path)
	}
	if s.trace != nil {
		s.data = append(s.data, p...)
	}
	return s.w.Write(p)
}

// Commit flushes the content and moves it into place.
func (s *Sink) Commit() error {
	if s.done {
		return fmt.Errorf("commit %s: sink already closed", s.path)
	}
	s.done = true
	if err := s.w.Flush(); err != nil {
		s.cleanup()
		return fmt.Errorf("flush %s: %w", s.path, err)
	}
	if err := s.tmp.Close(); err != nil {
		_ = os.Remove(s.tmp.Name())
		return fmt.Errorf("close %s: %w", s.path, err)
	}
	if err := os.Chmod(s.tmp.Name(), 0o644); err != nil {
		_ = os.Remove(s.tmp.Name())
		return fmt.Errorf("chmod %s: %w", s.path, err)
	}
	if err := os.Rename(s.tmp.Name(), s.path); err != nil {
		_ = os.Remove(s.tmp.Name())
		return fmt.Errorf("rename %s: %w", s.path, err)
	}
	if s.trace != nil {
		s.trace.Log(s.path, s.data)
	}
	return nil
}

// Discard drops the content. It is a no-op after Commit, so it can be
// deferred right after Create.
func (s *Sink) Discard() {
	if s.done {
		return
	}
	s.done = true
	s.cleanup()
}

func (s *Sink) cleanup() {
	_ = s.tmp.Close()
	_ = os.Remove(s.tmp.Name())
}
