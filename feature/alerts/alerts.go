package alerts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"release-sync/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sink receives the unmatched observations of a run.
type Sink interface {
	Notify(ctx context.Context, entries []reconcile.Unmatched) error
}

// Lines renders entries one per line.
func Lines(entries []reconcile.Unmatched) []string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.String())
	}
	return lines
}

// Writer prints entries to an io.Writer.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriter creates a Writer sink.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Notify writes one line per entry.
func (w *Writer) Notify(_ context.Context, entries []reconcile.Unmatched) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, line := range Lines(entries) {
		if _, err := fmt.Fprintln(w.out, line); err != nil {
			return err
		}
	}
	return nil
}

// GitHubOutput appends entries as a multiline step output.
type GitHubOutput struct {
	path string
	name string
}

// NewGitHubOutput creates a sink writing output name to the file at path.
// An empty path falls back to $GITHUB_OUTPUT.
func NewGitHubOutput(path, name string) *GitHubOutput {
	if path == "" {
		path = os.Getenv("GITHUB_OUTPUT")
	}
	return &GitHubOutput{path: path, name: name}
}

// Enabled reports whether an output file is configured.
func (g *GitHubOutput) Enabled() bool {
	return g.path != ""
}

// Notify appends a name<<delimiter block. Nothing is written for an empty run.
func (g *GitHubOutput) Notify(_ context.Context, entries []reconcile.Unmatched) error {
	if !g.Enabled() || len(entries) == 0 {
		return nil
	}
	delimiter := "ghadelimiter_" + uuid.NewString()

	var b strings.Builder
	fmt.Fprintf(&b, "%s<<%s\n", g.name, delimiter)
	for _, line := range Lines(entries) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(delimiter)
	b.WriteByte('\n')

	f, err := os.OpenFile(g.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open github output: %w", err)
	}
	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		return fmt.Errorf("failed to write github output: %w", err)
	}
	return f.Close()
}

// Multi fans entries out to several sinks.
// A failing sink is logged and does not stop the others.
type Multi struct {
	sinks  []Sink
	logger *zap.Logger
}

// NewMulti creates a fan-out sink. Nil sinks are ignored.
func NewMulti(logger *zap.Logger, sinks ...Sink) *Multi {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Multi{logger: logger}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Len returns the number of sinks.
func (m *Multi) Len() int {
	return len(m.sinks)
}

// Notify delivers entries to every sink and joins their errors.
func (m *Multi) Notify(ctx context.Context, entries []reconcile.Unmatched) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Notify(ctx, entries); err != nil {
			m.logger.Error("Alert delivery failed", zap.String("sink", fmt.Sprintf("%T", s)), zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
