package connection

import (
	"github.com/lixenwraith/filament/core"
)

// fifo is a target queue with O(1) duplicate membership checks
// Single writer and single reader (the control goroutine), no lock
type fifo struct {
	items  []core.Entity
	member map[core.Entity]struct{}
}

func newFifo(capacity int) *fifo {
	return &fifo{
		items:  make([]core.Entity, 0, capacity),
		member: make(map[core.Entity]struct{}, capacity),
	}
}

// push appends e unless already queued. Reports whether e was added.
func (f *fifo) push(e core.Entity) bool {
	if _, ok := f.member[e]; ok {
		return false
	}
	f.member[e] = struct{}{}
	f.items = append(f.items, e)
	return true
}

// pop removes and returns the oldest entry
func (f *fifo) pop() (core.Entity, bool) {
	if len(f.items) == 0 {
		return core.NullEntity, false
	}
	e := f.items[0]
	copy(f.items, f.items[1:])
	f.items = f.items[:len(f.items)-1]
	delete(f.member, e)
	return e, true
}

func (f *fifo) has(e core.Entity) bool {
	_, ok := f.member[e]
	return ok
}

func (f *fifo) len() int {
	return len(f.items)
}

func (f *fifo) clear() {
	f.items = f.items[:0]
	clear(f.member)
}

// snapshot appends the queued entries in FIFO order to out
func (f *fifo) snapshot(out []core.Entity) []core.Entity {
	return append(out, f.items...)
}
