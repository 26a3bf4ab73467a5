package connection

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/time/rate"

	"github.com/lixenwraith/filament/core"
	"github.com/lixenwraith/filament/parameter"
	"github.com/lixenwraith/filament/vmath"
)

// Notifier receives slot transitions the moment they happen
// Both calls fire synchronously inside the tick that performed the
// transition, before the tick's geometry is published
type Notifier interface {
	ConnectionEstablished(target core.Entity, slot int)
	ConnectionBroken(target core.Entity, slot int)
}

// NopNotifier discards all transitions
type NopNotifier struct{}

func (NopNotifier) ConnectionEstablished(core.Entity, int) {}
func (NopNotifier) ConnectionBroken(core.Entity, int)      {}

// Config is the director's tunable surface
// Validated at construction and again at every runtime setter; a
// rejected value leaves the previous one in force
type Config struct {
	ScanRadius   float64
	ScanInterval time.Duration
	Tag          string

	MaxConnections         int
	TimeBetweenConnections time.Duration
	Sequential             bool
	RandomizeOrder         bool

	Segments   int
	Curvature  float64
	TrimMode   TrimMode
	SourceTrim float64
	TargetTrim float64

	EmissionDuration  time.Duration
	EmissionIntensity float64
	EmissionCurve     Curve

	Seed uint64
}

// DefaultConfig returns the installation defaults
func DefaultConfig() Config {
	return Config{
		ScanRadius:             parameter.DefaultScanRadius,
		ScanInterval:           parameter.DefaultScanInterval,
		Tag:                    parameter.DefaultScanTag,
		MaxConnections:         parameter.DefaultMaxConnections,
		TimeBetweenConnections: parameter.DefaultTimeBetweenConnections,
		Sequential:             true,
		RandomizeOrder:         false,
		Segments:               parameter.DefaultCurveSegments,
		Curvature:              parameter.DefaultCurvature,
		TrimMode:               TrimPercent,
		SourceTrim:             parameter.DefaultSourceTrim,
		TargetTrim:             parameter.DefaultTargetTrim,
		EmissionDuration:       parameter.DefaultEmissionDuration,
		EmissionIntensity:      parameter.DefaultEmissionIntensity,
		EmissionCurve:          CurvePulse(),
		Seed:                   1,
	}
}

// Director runs one connection graph: it scans for eligible targets,
// reconciles them against the active set, serializes admissions and
// evictions, solves curve geometry, and owns the per-slot render state.
//
// All methods are control-goroutine only. The solver batch inside Tick
// is the single place work fans out, and it joins before Tick returns.
type Director struct {
	cfg   Config
	self  core.Entity
	src   TargetSource
	sink  Notifier
	state *State

	scanner *Scanner
	rng     *vmath.FastRand
	limiter *rate.Limiter

	pendingAdd    *fifo
	pendingRemove *fifo
	activeSet     map[core.Entity]struct{}

	origin   vmath.Vec3
	lastScan time.Time
	scanned  bool

	// Reconciliation scratch, reused every pass
	eligibleList []core.Entity
	eligibleSet  map[core.Entity]struct{}
	newTargets   []core.Entity
	brokenList   []core.Entity
}

// NewDirector validates cfg and builds a director for the scanning
// entity self. src is the spatial surface, sink receives transitions.
func NewDirector(self core.Entity, src TargetSource, sink Notifier, cfg Config) (*Director, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = NopNotifier{}
	}

	d := &Director{
		cfg:           cfg,
		self:          self,
		src:           src,
		sink:          sink,
		state:         newState(cfg.MaxConnections, cfg.Segments),
		scanner:       NewScanner(src),
		rng:           vmath.NewFastRand(cfg.Seed),
		limiter:       rate.NewLimiter(rate.Every(cfg.TimeBetweenConnections), 1),
		pendingAdd:    newFifo(cfg.MaxConnections * 2),
		pendingRemove: newFifo(cfg.MaxConnections),
		activeSet:     make(map[core.Entity]struct{}, cfg.MaxConnections),
		eligibleList:  make([]core.Entity, 0, 64),
		eligibleSet:   make(map[core.Entity]struct{}, 64),
		newTargets:    make([]core.Entity, 0, 64),
		brokenList:    make([]core.Entity, 0, 16),
	}
	return d, nil
}

// Validate applies the same bounds NewDirector and the runtime setters
// enforce. Lets callers reject a candidate config before committing it.
func (c Config) Validate() error {
	return validateConfig(c)
}

func validateConfig(cfg Config) error {
	if cfg.ScanRadius <= 0 || math.IsNaN(cfg.ScanRadius) || math.IsInf(cfg.ScanRadius, 0) {
		return fmt.Errorf("scan radius must be positive, got %v", cfg.ScanRadius)
	}
	if cfg.ScanInterval <= 0 {
		return fmt.Errorf("scan interval must be positive, got %v", cfg.ScanInterval)
	}
	if cfg.Tag == "" {
		return fmt.Errorf("tag filter must not be empty")
	}
	if cfg.MaxConnections < 1 || cfg.MaxConnections > parameter.MaxConnectionsLimit {
		return fmt.Errorf("max connections must be in [1,%d], got %d", parameter.MaxConnectionsLimit, cfg.MaxConnections)
	}
	if cfg.TimeBetweenConnections <= 0 {
		return fmt.Errorf("time between connections must be positive, got %v", cfg.TimeBetweenConnections)
	}
	if cfg.Segments < 2 || cfg.Segments > parameter.MaxCurveSegments {
		return fmt.Errorf("segments must be in [2,%d], got %d", parameter.MaxCurveSegments, cfg.Segments)
	}
	if math.IsNaN(cfg.Curvature) || math.IsInf(cfg.Curvature, 0) {
		return fmt.Errorf("curvature must be finite, got %v", cfg.Curvature)
	}
	if cfg.SourceTrim < 0 || math.IsNaN(cfg.SourceTrim) {
		return fmt.Errorf("source trim must be non-negative, got %v", cfg.SourceTrim)
	}
	if cfg.TargetTrim < 0 || math.IsNaN(cfg.TargetTrim) {
		return fmt.Errorf("target trim must be non-negative, got %v", cfg.TargetTrim)
	}
	if cfg.EmissionDuration <= 0 {
		return fmt.Errorf("emission duration must be positive, got %v", cfg.EmissionDuration)
	}
	if cfg.EmissionIntensity < 0 || math.IsNaN(cfg.EmissionIntensity) {
		return fmt.Errorf("emission intensity must be non-negative, got %v", cfg.EmissionIntensity)
	}
	if !cfg.EmissionCurve.Valid() {
		return fmt.Errorf("emission curve needs at least 2 keys")
	}
	return nil
}

// Tick advances the director by one control step at the given time.
// origin is the scanning entity's current position. Scan cadence and
// admission pacing both derive from now, never from the wall clock, so
// a paused or mocked clock freezes the whole pipeline.
func (d *Director) Tick(now time.Time, origin vmath.Vec3) {
	d.origin = origin

	if !d.scanned || now.Sub(d.lastScan) >= d.cfg.ScanInterval {
		d.lastScan = now
		d.scanned = true
		d.scanPass()
	}

	if d.cfg.Sequential {
		d.stepSequential(now)
	} else {
		d.stepImmediate(now)
	}

	d.refreshTargets()
	SolveBatch(d.state, vmath.V3ToFloat(origin), d.curveParams(), parameter.SolverShards)
	d.updateDerived(now)
}

// scanPass runs detection and splits the result into admission and
// removal intents
func (d *Director) scanPass() {
	d.eligibleList = d.scanner.Scan(
		d.origin, d.cfg.ScanRadius, d.cfg.Tag, d.self,
		d.eligibleList, d.eligibleSet,
	)

	activeList := d.state.targets[:d.state.active]
	d.newTargets, d.brokenList = Reconcile(
		d.eligibleList, d.eligibleSet,
		activeList, d.activeSet,
		d.pendingAdd.member, d.pendingRemove.member,
		d.newTargets, d.brokenList,
	)

	if d.cfg.RandomizeOrder {
		// One uniform shuffle per pass, batch-local: targets already
		// queued from earlier passes keep their FIFO positions
		for i := len(d.newTargets) - 1; i > 0; i-- {
			j := d.rng.Intn(i + 1)
			d.newTargets[i], d.newTargets[j] = d.newTargets[j], d.newTargets[i]
		}
	}

	for _, e := range d.newTargets {
		d.pendingAdd.push(e)
	}
	for _, e := range d.brokenList {
		d.pendingRemove.push(e)
	}
}

// stepSequential performs at most one slot transition per pacing
// interval. Removal outranks admission so capacity can never transiently
// overflow. Stale pending entries are skipped without consuming the
// interval, and a tick with no possible transition leaves the interval
// unspent.
func (d *Director) stepSequential(now time.Time) {
	hasRemove := d.pendingRemove.len() > 0
	hasAdd := d.state.active < d.cfg.MaxConnections && d.pendingAdd.len() > 0
	if !hasRemove && !hasAdd {
		return
	}
	if !d.limiter.AllowN(now, 1) {
		return
	}

	if e, ok := d.pendingRemove.pop(); ok {
		d.evict(e)
		return
	}

	for {
		e, ok := d.pendingAdd.pop()
		if !ok {
			return
		}
		if !d.validate(e) {
			continue
		}
		d.promote(e, now)
		return
	}
}

// stepImmediate applies the whole backlog synchronously: removals first,
// then admissions up to capacity. Whatever does not fit is dropped, not
// queued; the next scan rediscovers anything still eligible.
func (d *Director) stepImmediate(now time.Time) {
	for {
		e, ok := d.pendingRemove.pop()
		if !ok {
			break
		}
		d.evict(e)
	}

	for d.state.active < d.cfg.MaxConnections {
		e, ok := d.pendingAdd.pop()
		if !ok {
			break
		}
		if !d.validate(e) {
			continue
		}
		d.promote(e, now)
	}
	d.pendingAdd.clear()
}

// validate re-checks a queued target immediately before promotion:
// still alive, still tagged, still in range. Queued state can go stale
// at any time between enqueue and processing.
func (d *Director) validate(e core.Entity) bool {
	pos, ok := d.src.Position(e)
	if !ok {
		return false
	}
	tag, ok := d.src.Tag(e)
	if !ok || tag != d.cfg.Tag {
		return false
	}
	r := vmath.FromFloat(d.cfg.ScanRadius)
	return vmath.V3DistSq(pos, d.origin) <= vmath.Mul(r, r)
}

func (d *Director) promote(e core.Entity, now time.Time) {
	pos, ok := d.src.Position(e)
	if !ok {
		return
	}
	dir := EstablishDirection(d.origin, pos)
	slot := d.state.occupy(e, dir, vmath.V3ToFloat(pos), now)
	d.activeSet[e] = struct{}{}
	d.sink.ConnectionEstablished(e, slot)
}

func (d *Director) evict(e core.Entity) {
	slot, ok := d.state.evict(e)
	if !ok {
		return
	}
	delete(d.activeSet, e)
	d.sink.ConnectionBroken(e, slot)
}

// refreshTargets re-reads every occupied slot's target position before
// the solve. A destroyed target keeps its last known position on screen
// and is queued for removal; the scan did not need to notice first.
func (d *Director) refreshTargets() {
	for i := 0; i < d.state.active; i++ {
		e := d.state.targets[i]
		pos, ok := d.src.Position(e)
		if !ok {
			d.pendingRemove.push(e)
			continue
		}
		d.state.targetPos[i] = vmath.V3ToFloat(pos)
	}
}

func (d *Director) curveParams() CurveParams {
	return CurveParams{
		Curvature:  d.cfg.Curvature,
		TrimMode:   d.cfg.TrimMode,
		SourceTrim: d.cfg.SourceTrim,
		TargetTrim: d.cfg.TargetTrim,
	}
}

// updateDerived refreshes emission intensity and endpoint poses from
// this tick's polylines
func (d *Director) updateDerived(now time.Time) {
	st := d.state
	dur := d.cfg.EmissionDuration

	for i := 0; i < st.active; i++ {
		elapsed := now.Sub(st.createdAt[i])
		st.emissionOn[i] = elapsed < dur

		t := float64(elapsed) / float64(dur)
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		st.emission[i] = d.cfg.EmissionIntensity * d.cfg.EmissionCurve.Sample(t)

		pts := st.Polyline(i)
		n := len(pts)
		st.srcEndPos[i] = pts[0]
		st.tgtEndPos[i] = pts[n-1]
		st.srcEndDir[i] = vmath.V3FNormalize(vmath.V3FSub(pts[1], pts[0]))
		st.tgtEndDir[i] = vmath.V3FNormalize(vmath.V3FSub(pts[n-1], pts[n-2]))
	}
}

// Shutdown vacates every slot, firing broken notifications so endpoint
// decorations tear down, and drops the queued backlog. The last solver
// batch was joined inside the final Tick, so the buffers are quiescent.
func (d *Director) Shutdown() {
	for d.state.active > 0 {
		d.evict(d.state.targets[0])
	}
	d.pendingAdd.clear()
	d.pendingRemove.clear()
}

// --- Read surface ---

// State exposes the per-slot render state
func (d *Director) State() *State { return d.state }

// Config returns the active configuration
func (d *Director) Config() Config { return d.cfg }

// PendingAddCount is the admission backlog length
func (d *Director) PendingAddCount() int { return d.pendingAdd.len() }

// PendingRemoveCount is the eviction backlog length
func (d *Director) PendingRemoveCount() int { return d.pendingRemove.len() }

// PendingAdds appends the queued admissions in FIFO order to out
func (d *Director) PendingAdds(out []core.Entity) []core.Entity {
	return d.pendingAdd.snapshot(out)
}

// IsActive reports whether target currently occupies a slot
func (d *Director) IsActive(e core.Entity) bool {
	_, ok := d.activeSet[e]
	return ok
}
