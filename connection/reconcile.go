package connection

import (
	"github.com/lixenwraith/filament/core"
)

// Reconcile classifies one scan result against the current connection
// state:
//
//	broken = active members absent from eligible and not already pending removal
//	new    = eligible members neither active nor already pending admission
//
// activeList is the slot-ordered snapshot so broken targets come out in
// slot order; eligibleList preserves scan order. Pure: this mutates no
// membership set. The caller owns the queues and performs the insertion,
// which keeps enqueue-side duplicate checks in exactly one place.
func Reconcile(
	eligibleList []core.Entity,
	eligibleSet map[core.Entity]struct{},
	activeList []core.Entity,
	activeSet map[core.Entity]struct{},
	pendingAdd map[core.Entity]struct{},
	pendingRemove map[core.Entity]struct{},
	newOut []core.Entity,
	brokenOut []core.Entity,
) (newTargets, brokenTargets []core.Entity) {
	newOut = newOut[:0]
	brokenOut = brokenOut[:0]

	for _, e := range eligibleList {
		if _, ok := activeSet[e]; ok {
			continue
		}
		if _, ok := pendingAdd[e]; ok {
			continue
		}
		newOut = append(newOut, e)
	}

	for _, e := range activeList {
		if _, ok := eligibleSet[e]; ok {
			continue
		}
		if _, ok := pendingRemove[e]; ok {
			continue
		}
		brokenOut = append(brokenOut, e)
	}

	return newOut, brokenOut
}
