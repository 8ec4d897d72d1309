package parameter

// System update priorities, lower runs first
// Routing happens inside the solver step, before any system update
const (
	PriorityReset   = 10
	PriorityPour    = 20
	PriorityRefresh = 30
	PriorityTrace   = 90
)
