package connection

import (
	"testing"

	"github.com/lixenwraith/filament/core"
)

func entitySet(ids ...core.Entity) map[core.Entity]struct{} {
	m := make(map[core.Entity]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}

func entityList(ids ...core.Entity) []core.Entity {
	return append([]core.Entity(nil), ids...)
}

func sameEntities(a, b []core.Entity) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name           string
		eligible       []core.Entity
		active         []core.Entity
		pendingAdd     []core.Entity
		pendingRemove  []core.Entity
		expectedNew    []core.Entity
		expectedBroken []core.Entity
	}{
		{
			name:        "All new on empty state",
			eligible:    entityList(1, 2, 3),
			expectedNew: entityList(1, 2, 3),
		},
		{
			name:     "Steady state produces nothing",
			eligible: entityList(1, 2),
			active:   entityList(1, 2),
		},
		{
			name:           "Departed actives break in slot order",
			eligible:       entityList(3),
			active:         entityList(1, 2, 3),
			expectedBroken: entityList(1, 2),
		},
		{
			name:        "Pending admissions not re-added",
			eligible:    entityList(1, 2, 3),
			active:      entityList(1),
			pendingAdd:  entityList(2),
			expectedNew: entityList(3),
		},
		{
			name:          "Pending removals not re-broken",
			eligible:      entityList(),
			active:        entityList(1, 2),
			pendingRemove: entityList(1),
			expectedBroken: entityList(
				2,
			),
		},
		{
			name:           "Mixed churn",
			eligible:       entityList(2, 4, 5),
			active:         entityList(1, 2, 3),
			pendingAdd:     entityList(4),
			pendingRemove:  entityList(3),
			expectedNew:    entityList(5),
			expectedBroken: entityList(1),
		},
		{
			name: "Everything empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var newBuf, brokenBuf []core.Entity
			gotNew, gotBroken := Reconcile(
				tt.eligible, entitySet(tt.eligible...),
				tt.active, entitySet(tt.active...),
				entitySet(tt.pendingAdd...), entitySet(tt.pendingRemove...),
				newBuf, brokenBuf,
			)

			if !sameEntities(gotNew, tt.expectedNew) {
				t.Errorf("Expected new targets %v, got %v", tt.expectedNew, gotNew)
			}
			if !sameEntities(gotBroken, tt.expectedBroken) {
				t.Errorf("Expected broken targets %v, got %v", tt.expectedBroken, gotBroken)
			}
		})
	}
}

func TestReconcileIdempotent(t *testing.T) {
	eligible := entityList(1, 2, 3, 4)
	eligibleSet := entitySet(eligible...)
	active := entityList(1)
	activeSet := entitySet(active...)

	first, _ := Reconcile(eligible, eligibleSet, active, activeSet,
		entitySet(), entitySet(), nil, nil)

	// Queue insertion happens after classification; a rescan with the
	// first pass's output pending must classify nothing as new again
	pendingAdd := entitySet(first...)
	second, _ := Reconcile(eligible, eligibleSet, active, activeSet,
		pendingAdd, entitySet(), nil, nil)

	if len(second) != 0 {
		t.Errorf("Expected rescan with pending queue to add nothing, got %v", second)
	}
}

func TestReconcileReusesBuffers(t *testing.T) {
	newBuf := make([]core.Entity, 8)
	brokenBuf := make([]core.Entity, 8)

	gotNew, gotBroken := Reconcile(
		entityList(1), entitySet(1),
		entityList(2), entitySet(2),
		entitySet(), entitySet(),
		newBuf, brokenBuf,
	)

	if len(gotNew) != 1 || gotNew[0] != 1 {
		t.Errorf("Expected truncated buffer refilled with [1], got %v", gotNew)
	}
	if len(gotBroken) != 1 || gotBroken[0] != 2 {
		t.Errorf("Expected truncated buffer refilled with [2], got %v", gotBroken)
	}
	if &gotNew[0] != &newBuf[0] {
		t.Errorf("Expected the passed buffer to be reused")
	}
}
