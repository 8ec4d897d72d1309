package engine

// System runs once per tick after the contact batch, with the world lock held
type System interface {
	Update()
	Priority() int // Lower values run first
}

// SystemBase gives a system access to its world
type SystemBase struct {
	World *World
}

func NewSystemBase(w *World) SystemBase {
	return SystemBase{World: w}
}
