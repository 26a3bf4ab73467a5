package component

// Hub marks an entity as a connection source running its own director
type Hub struct {
	Label string
}
