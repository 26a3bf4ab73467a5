package renderers

import (
	"fmt"
	"unicode/utf8"

	"github.com/lixenwraith/filament/engine"
	"github.com/lixenwraith/filament/parameter"
	"github.com/lixenwraith/filament/parameter/visual"
	"github.com/lixenwraith/filament/render"
	"github.com/lixenwraith/filament/system"
)

// StatusBarRenderer draws the status bar at the bottom
// Left side carries the transient message systems post on parameter
// changes; right side carries live installation metrics
type StatusBarRenderer struct {
	world     *engine.World
	directors *system.DirectorSystem
	pulse     *system.PulseSystem
}

// NewStatusBarRenderer creates a status bar renderer
func NewStatusBarRenderer(world *engine.World, directors *system.DirectorSystem, pulse *system.PulseSystem) *StatusBarRenderer {
	return &StatusBarRenderer{
		world:     world,
		directors: directors,
		pulse:     pulse,
	}
}

func (r *StatusBarRenderer) Render(ctx render.Context, buf *render.Buffer) {
	statusY := ctx.ScreenHeight - parameter.StatusBarRows
	if statusY < 0 || statusY >= ctx.ScreenHeight {
		return
	}

	// Clear status bar
	for x := 0; x < ctx.ScreenWidth; x++ {
		buf.SetWithBg(x, statusY, ' ', visual.RgbStatusText, visual.RgbStatusBarBg)
	}

	// Track current x position for status bar elements
	x := 1

	if status, ok := engine.GetResource[*engine.StatusResource](r.world.Resources); ok {
		for _, ch := range status.Current(ctx.RealTime) {
			if x >= ctx.ScreenWidth {
				return
			}
			buf.SetWithBg(x, statusY, ch, visual.RgbStatusText, visual.RgbStatusBarBg)
			x++
		}
	}
	leftEndX := x + 1

	// --- RIGHT SIDE METRICS ---
	// Build items in priority order (highest priority first)
	// Items are dropped from right (lowest priority) when space is limited

	type statusItem struct {
		text string
		fg   render.RGB
		bg   render.RGB
	}
	var rightItems []statusItem

	if ctx.Paused {
		rightItems = append(rightItems, statusItem{
			text: " PAUSED ",
			fg:   render.RGBBlack,
			bg:   visual.RgbBadgePaused,
		})
	}
	if ctx.Muted {
		rightItems = append(rightItems, statusItem{
			text: " MUTED ",
			fg:   render.RGBBlack,
			bg:   visual.RgbBadgeMuted,
		})
	}

	active, pending, capacity, radius := r.linkTotals()
	if capacity > 0 {
		rightItems = append(rightItems, statusItem{
			text: fmt.Sprintf(" links %d/%d +%d ", active, capacity, pending),
			fg:   visual.RgbStatusAccent,
			bg:   visual.RgbStatusBarBg,
		})
	}

	rightItems = append(rightItems, statusItem{
		text: fmt.Sprintf(" nodes %d ", r.world.Nodes.Count()),
		fg:   visual.RgbStatusText,
		bg:   visual.RgbStatusBarBg,
	})

	if capacity > 0 {
		rightItems = append(rightItems, statusItem{
			text: fmt.Sprintf(" r %.1f ", radius),
			fg:   visual.RgbStatusDim,
			bg:   visual.RgbStatusBarBg,
		})
	}

	rightItems = append(rightItems, statusItem{
		text: fmt.Sprintf(" bpm %d ", r.pulse.BPM()),
		fg:   visual.RgbStatusDim,
		bg:   visual.RgbStatusBarBg,
	})

	// Calculate which items fit, dropping from end (lowest priority)
	availableWidth := ctx.ScreenWidth - leftEndX
	totalWidth := 0
	fitCount := 0
	for _, item := range rightItems {
		// utf8.RuneCountInString() for correct width calculation versus len()
		itemWidth := utf8.RuneCountInString(item.text)
		if totalWidth+itemWidth <= availableWidth {
			totalWidth += itemWidth
			fitCount++
		} else {
			break
		}
	}

	// Render items that fit, right-aligned
	if fitCount > 0 {
		startX := ctx.ScreenWidth - totalWidth
		for i := 0; i < fitCount; i++ {
			item := rightItems[i]
			for _, ch := range item.text {
				buf.SetWithBg(startX, statusY, ch, item.fg, item.bg)
				startX++
			}
		}
	}
}

// linkTotals sums connection slots across every hub director
// Radius comes from the first hub; the registry applies it uniformly
func (r *StatusBarRenderer) linkTotals() (active, pending, capacity int, radius float64) {
	for _, hub := range r.directors.Hubs() {
		dir, ok := r.directors.Director(hub)
		if !ok {
			continue
		}
		if capacity == 0 {
			radius = dir.Config().ScanRadius
		}
		st := dir.State()
		active += st.ActiveCount()
		pending += dir.PendingAddCount()
		capacity += st.Capacity()
	}
	return active, pending, capacity, radius
}
