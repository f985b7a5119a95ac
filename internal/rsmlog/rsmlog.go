// Package rsmlog provides the per-check log file used by every probe
// invocation: one file per (probe, rsmhost, check-kind) triple, with each
// line formatted as "PID:YYYYMMDD:HHMMSS.mmm LEVEL: <text>". It wraps
// log/slog with a handler that writes that exact line shape instead of
// slog's default text or JSON encoding.
package rsmlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Path builds the log file path for a (probe, rsmhost, check) triple.
// rsmhost is omitted from the filename when empty, which is the case for
// the probe-status and resolver-status checks that are not scoped to a
// single rsmhost.
func Path(logDir, probe, rsmhost, check string) string {
	name := probe
	if rsmhost != "" {
		name = probe + "-" + rsmhost
	}
	return filepath.Join(logDir, fmt.Sprintf("%s-%s.log", name, check))
}

// Open opens (creating and appending to) the log file for a
// (probe, rsmhost, check) triple and returns a *slog.Logger writing to it
// in the fixed line format. The caller owns the returned closer.
func Open(logDir, probe, rsmhost, check string) (*slog.Logger, io.Closer, error) {
	return OpenTee(logDir, probe, rsmhost, check, false)
}

// OpenTee is Open, additionally mirroring every line to stderr when tee is
// true (the --debug flag's behavior). Every line written through the
// returned logger carries an "invocation" attribute, a fresh UUID generated
// once per OpenTee call, so a host's log shipper can correlate every line
// of a single probe run even after concatenating many invocations' log
// files together.
func OpenTee(logDir, probe, rsmhost, check string, tee bool) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("rsmlog: create log dir %s: %w", logDir, err)
	}
	path := Path(logDir, probe, rsmhost, check)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("rsmlog: open %s: %w", path, err)
	}
	var w io.Writer = f
	if tee {
		w = io.MultiWriter(f, os.Stderr)
	}
	logger := slog.New(newHandler(w)).With("invocation", uuid.New().String())
	return logger, f, nil
}

// handler is a slog.Handler emitting "PID:YYYYMMDD:HHMMSS.mmm LEVEL: text"
// lines, one per record, with any attributes appended as "key=value". Attrs
// bound ahead of time via Logger.With (e.g. the per-invocation UUID) are
// carried in base and appended before the record's own attrs, so they show
// up on every line without the caller having to repeat them.
type handler struct {
	mu   *sync.Mutex
	w    io.Writer
	pid  int
	base []slog.Attr
}

func newHandler(w io.Writer) *handler {
	return &handler{mu: &sync.Mutex{}, w: w, pid: os.Getpid()}
}

func (h *handler) Enabled(context.Context, slog.Level) bool { return true }

func (h *handler) Handle(_ context.Context, r slog.Record) error {
	var line strings.Builder
	fmt.Fprintf(&line, "%d:%s %s: %s", h.pid, r.Time.Format("20060102:150405.000"), levelName(r.Level), r.Message)
	for _, a := range h.base {
		fmt.Fprintf(&line, " %s=%v", a.Key, a.Value.Any())
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&line, " %s=%v", a.Key, a.Value.Any())
		return true
	})
	line.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, line.String())
	return err
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	combined := make([]slog.Attr, 0, len(h.base)+len(attrs))
	combined = append(combined, h.base...)
	combined = append(combined, attrs...)
	return &handler{mu: h.mu, w: h.w, pid: h.pid, base: combined}
}

func (h *handler) WithGroup(string) slog.Handler { return h }

func levelName(l slog.Level) string {
	switch {
	case l < slog.LevelInfo:
		return "DEBUG"
	case l < slog.LevelWarn:
		return "INFO"
	case l < slog.LevelError:
		return "WARNING"
	default:
		return "ERROR"
	}
}
