// Package fluid holds the composition bookkeeping of capacity-bounded containers
//
// A Container counts discrete colored units per color. Additions beyond capacity
// shrink the whole composition proportionally (Equalize) and throttle the
// container's own emitter. Derived visual state (fill ratio, mixed color) is
// recomputed only when the dirty flag is set.
//
// Rounding in Equalize only removes units: after repeated overflows the level
// and the summed counts can drift apart, and the level is never resynced from
// the counts.
package fluid
