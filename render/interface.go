package render

// Renderer is implemented by visual layers composited each frame
// Render runs under the world lock; implementations read component
// stores and director state but never mutate them
type Renderer interface {
	Render(ctx Context, buf *Buffer)
}
