package genre

import "sync/atomic"

// Budget caps external search calls within one classification run. Safe for concurrent use.
type Budget struct {
	limit int64
	used  atomic.Int64
}

func NewBudget(limit int) *Budget {
	if limit < 0 {
		limit = 0
	}
	return &Budget{limit: int64(limit)}
}

// Take reserves one call, reporting false once the limit is reached.
func (b *Budget) Take() bool {
	for {
		used := b.used.Load()
		if used >= b.limit {
			return false
		}
		if b.used.CompareAndSwap(used, used+1) {
			return true
		}
	}
}

func (b *Budget) Used() int {
	return int(b.used.Load())
}

func (b *Budget) Remaining() int {
	return int(b.limit - b.used.Load())
}
