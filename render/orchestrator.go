package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/filament/engine"
)

type rendererEntry struct {
	renderer Renderer
	priority RenderPriority
	index    int // registration order for stable sort
}

// Orchestrator coordinates the render pipeline
type Orchestrator struct {
	screen    tcell.Screen
	buffer    *Buffer
	renderers []rendererEntry
	regCount  int
}

// NewOrchestrator creates an orchestrator with the given screen and dimensions
func NewOrchestrator(screen tcell.Screen, width, height int) *Orchestrator {
	return &Orchestrator{
		screen:    screen,
		buffer:    NewBuffer(width, height),
		renderers: make([]rendererEntry, 0, 8),
	}
}

// Register adds a renderer at the specified priority. Maintains sorted order via insertion sort
func (o *Orchestrator) Register(r Renderer, priority RenderPriority) {
	entry := rendererEntry{
		renderer: r,
		priority: priority,
		index:    o.regCount,
	}
	o.regCount++

	// Insertion sort: find position and insert
	pos := len(o.renderers)
	for i, e := range o.renderers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	o.renderers = append(o.renderers, rendererEntry{})
	copy(o.renderers[pos+1:], o.renderers[pos:])
	o.renderers[pos] = entry
}

// Resize updates buffer dimensions and syncs the screen
func (o *Orchestrator) Resize(width, height int) {
	o.buffer.Resize(width, height)
	o.screen.Sync()
}

// RenderFrame executes the render pipeline: clear, render all, flush
// Compositing happens under the world lock; the terminal flush happens
// after release so slow writes never stall the simulation
func (o *Orchestrator) RenderFrame(ctx Context, world *engine.World) {
	world.Lock()

	o.buffer.Clear()
	for _, entry := range o.renderers {
		entry.renderer.Render(ctx, o.buffer)
	}

	world.Unlock()

	o.buffer.Flush(o.screen)
}
