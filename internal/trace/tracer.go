package trace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer is the main interface for emitting trace events.
type Tracer interface {
	// Emit records a trace event. Must be goroutine-safe.
	Emit(ev *Event)

	// Flush ensures all buffered events are written.
	Flush() error

	// Close flushes and releases resources.
	Close() error

	Level() Level

	// Enabled returns true if tracing is active (Level > LevelOff).
	Enabled() bool
}

// StorageMode determines where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // пишем сразу
	ModeRing                          // только Tail, печать в конце
	ModeBoth                          // поток плюс Tail
)

const defaultTailSize = 4096

func (m StorageMode) String() string {
	switch m {
	case ModeStream:
		return "stream"
	case ModeRing:
		return "ring"
	case ModeBoth:
		return "both"
	default:
		return "unknown"
	}
}

// ParseMode converts a string to StorageMode.
func ParseMode(s string) (StorageMode, error) {
	switch strings.ToLower(s) {
	case "stream":
		return ModeStream, nil
	case "ring":
		return ModeRing, nil
	case "both":
		return ModeBoth, nil
	default:
		return ModeStream, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
	}
}

// Config holds tracer configuration. Path "" or "-" streams to stderr.
type Config struct {
	Level    Level
	Mode     StorageMode
	Format   Format // FormatAuto picks by Path extension
	Path     string
	RingSize int // размер Tail, 0 = 4096
}

// ResolvedFormat returns the format New will use for cfg.
func (cfg Config) ResolvedFormat() Format {
	if cfg.Format != FormatAuto {
		return cfg.Format
	}
	if strings.HasSuffix(cfg.Path, ".ndjson") || strings.HasSuffix(cfg.Path, ".jsonl") {
		return FormatNDJSON
	}
	return FormatText
}

// New creates a Tracer based on Config.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}

	switch cfg.Mode {
	case ModeRing:
		return NewTail(cfg.RingSize, cfg.Level), nil
	case ModeStream, ModeBoth:
	default:
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}

	w, err := openOutput(cfg.Path)
	if err != nil {
		return nil, err
	}
	stream := NewStreamTracer(w, cfg.Level, cfg.ResolvedFormat())
	if cfg.Mode == ModeStream {
		return stream, nil
	}
	return &tee{stream: stream, tail: NewTail(cfg.RingSize, cfg.Level)}, nil
}

// TailOf returns the in-memory Tail behind t, or nil when t keeps none.
func TailOf(t Tracer) *Tail {
	switch v := t.(type) {
	case *Tail:
		return v
	case *tee:
		return v.tail
	default:
		return nil
	}
}

func openOutput(path string) (io.Writer, error) {
	if path == "" || path == "-" {
		return os.Stderr, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

// tee feeds the stream and the Tail; each gets its own copy of the event.
type tee struct {
	stream *StreamTracer
	tail   *Tail
}

func (t *tee) Emit(ev *Event) {
	t.stream.Emit(ev)
	kept := *ev
	t.tail.Emit(&kept)
}

func (t *tee) Flush() error  { return t.stream.Flush() }
func (t *tee) Close() error  { return errors.Join(t.stream.Close(), t.tail.Close()) }
func (t *tee) Level() Level  { return t.stream.Level() }
func (t *tee) Enabled() bool { return t.stream.Enabled() }
