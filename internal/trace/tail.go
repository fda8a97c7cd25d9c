package trace

import (
	"io"
	"sync"
)

// Tail keeps the most recent events of a run in memory. It backs ring mode
// and, in both mode, the dump printed when a run fails.
type Tail struct {
	mu    sync.Mutex
	buf   []Event
	next  int
	count int
	level Level
}

// NewTail creates a Tail holding at most size events.
func NewTail(size int, level Level) *Tail {
	if size <= 0 {
		size = defaultTailSize
	}
	return &Tail{buf: make([]Event, size), level: level}
}

func (t *Tail) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	stored := *ev
	if stored.Seq == 0 {
		stored.Seq = NextSeq()
	}

	t.mu.Lock()
	t.buf[t.next] = stored
	t.next = (t.next + 1) % len(t.buf)
	if t.count < len(t.buf) {
		t.count++
	}
	t.mu.Unlock()
}

// Events returns the kept events, oldest first.
func (t *Tail) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, 0, t.count)
	start := (t.next - t.count + len(t.buf)) % len(t.buf)
	for i := range t.count {
		out = append(out, t.buf[(start+i)%len(t.buf)])
	}
	return out
}

// Dump writes the kept events to w.
func (t *Tail) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Events() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tail) Flush() error  { return nil }
func (t *Tail) Close() error  { return nil }
func (t *Tail) Level() Level  { return t.level }
func (t *Tail) Enabled() bool { return t.level > LevelOff }
