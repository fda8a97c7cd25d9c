package checker

// Position is where a '{' was opened.
type Position struct {
	Line   int
	Column int
}

// BraceTracker is a LIFO stack of open brace positions.
// Its depth always equals the number of currently unclosed '{'.
type BraceTracker struct {
	stack []Position
}

func (t *BraceTracker) Push(p Position) {
	t.stack = append(t.stack, p)
}

// Pop removes the most recent open brace. It reports false when nothing is open.
func (t *BraceTracker) Pop() (Position, bool) {
	if len(t.stack) == 0 {
		return Position{}, false
	}
	top := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	return top, true
}

func (t *BraceTracker) Len() int {
	return len(t.stack)
}

// Drain empties the tracker, returning positions from top to bottom.
func (t *BraceTracker) Drain() []Position {
	out := make([]Position, 0, len(t.stack))
	for {
		p, ok := t.Pop()
		if !ok {
			return out
		}
		out = append(out, p)
	}
}
