package physics

import (
	"github.com/lixenwraith/sirup/vmath"
)

// Body is the rigid transform of a vessel in the XY plane
// Position is the base center, Angle is counter-clockwise tilt in radians (0 upright)
type Body struct {
	Position vmath.Vec3F
	Angle    float64
	Height   float64
	Width    float64

	restPosition vmath.Vec3F
	restAngle    float64
}

// NewBody creates a body and records its pose as the rest pose
func NewBody(pos vmath.Vec3F, angle, height, width float64) *Body {
	return &Body{
		Position:     pos,
		Angle:        angle,
		Height:       height,
		Width:        width,
		restPosition: pos,
		restAngle:    angle,
	}
}

// Restore moves the body back to its rest pose
func (b *Body) Restore() {
	b.Position = b.restPosition
	b.Angle = b.restAngle
}

// Up is the unit vector from floor to top in world space
func (b *Body) Up() vmath.Vec3F {
	return vmath.V3FRotateZ(vmath.Vec3F{Y: 1}, b.Angle)
}

// Local transforms a body-local point to world space
func (b *Body) Local(p vmath.Vec3F) vmath.Vec3F {
	return vmath.V3FAdd(b.Position, vmath.V3FRotateZ(p, b.Angle))
}

// Top is the calibration marker at the rim
func (b *Body) Top() *Marker {
	return &Marker{body: b, local: vmath.Vec3F{Y: b.Height}}
}

// Floor is the calibration marker at the base
func (b *Body) Floor() *Marker {
	return &Marker{body: b}
}

// Mouth is the emission point just past the rim
func (b *Body) Mouth(offset float64) *Marker {
	return &Marker{body: b, local: vmath.Vec3F{Y: b.Height + offset}}
}

// Marker is a point rigidly attached to a body
type Marker struct {
	body  *Body
	local vmath.Vec3F
}

// Position returns the marker's current world position
func (m *Marker) Position() vmath.Vec3F {
	return m.body.Local(m.local)
}
