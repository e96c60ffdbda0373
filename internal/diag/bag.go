package diag

import (
	"sort"
)

// Bag collects diagnostics up to a cap. Diagnostics past the cap are counted
// but not stored, so HasErrors stays truthful.
type Bag struct {
	items   []Diagnostic
	max     int
	dropped int
	errors  int
}

// NewBag creates a Bag holding at most max diagnostics; max <= 0 means no cap.
func NewBag(max int) *Bag {
	return &Bag{max: max}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не сохранена (достигнут лимит).
func (b *Bag) Add(d Diagnostic) bool {
	if d.Severity >= SevError {
		b.errors++
	}
	if b.max > 0 && len(b.items) >= b.max {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors возвращает true, если была хотя бы одна ошибка, включая отброшенные.
func (b *Bag) HasErrors() bool {
	return b.errors > 0
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Dropped returns how many diagnostics did not fit under the cap.
func (b *Bag) Dropped() int {
	return b.dropped
}

// Items возвращает read-only slice диагностик.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// FirstError returns the earliest stored error by position.
func (b *Bag) FirstError() (Diagnostic, bool) {
	var (
		best  Diagnostic
		found bool
	)
	for _, d := range b.items {
		if d.Severity < SevError {
			continue
		}
		if !found || d.Primary.Start < best.Primary.Start {
			best, found = d, true
		}
	}
	return best, found
}

// Sort сортирует диагностики по: file, start, end, severity (desc), code (asc).
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup drops repeated diagnostics with the same code and primary span.
// The parser may report the same position twice while resynchronising.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span string
	}
	seen := make(map[key]struct{}, len(b.items))
	out := b.items[:0]
	for _, d := range b.items {
		k := key{d.Code, d.Primary.String()}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, d)
	}
	b.items = out
}
