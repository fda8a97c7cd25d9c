package diag

type Bag struct {
	items     []Diagnostic
	max       int
	truncated int
}

// NewBag creates a Bag that keeps at most max diagnostics; max <= 0 means no limit.
func NewBag(max int) *Bag {
	capHint := max
	if capHint <= 0 || capHint > 64 {
		capHint = 16
	}
	return &Bag{
		items: make([]Diagnostic, 0, capHint),
		max:   max,
	}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена (достигнут лимит).
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		b.truncated++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// AddAll adds diagnostics in order until the limit is hit.
func (b *Bag) AddAll(diags []Diagnostic) {
	for _, d := range diags {
		b.Add(d)
	}
}

func (b *Bag) Cap() int {
	return b.max
}

// HasErrors возвращает true, если есть хотя бы одна диагностика с Severity >= Error
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity() >= SevError {
			return true
		}
	}
	return b.truncated > 0
}

// длина
func (b *Bag) Len() int {
	return len(b.items)
}

// Truncated reports how many diagnostics were dropped because of the limit.
func (b *Bag) Truncated() int {
	return b.truncated
}

// Items возвращает read-only slice диагностик в порядке обнаружения.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []Diagnostic {
	return b.items
}
