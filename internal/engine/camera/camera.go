// Package camera provides the camera rig, its user orbit controls and the
// flight controller that tweens it between destinations.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/orrery/pkg/math"
)

// Rig is the camera position plus the point the controls orbit around.
type Rig struct {
	Position math.Vec3
	LookAt   math.Vec3

	// Projection
	FOV  float32 // Vertical field of view, radians
	Near float32
	Far  float32

	// Orbit constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewRig creates a rig at position looking at lookAt with default controls.
func NewRig(position, lookAt math.Vec3) *Rig {
	return &Rig{
		Position:        position,
		LookAt:          lookAt,
		FOV:             50 * math32.Pi / 180,
		Near:            0.1,
		Far:             20000,
		MinDistance:     1,
		MaxDistance:     15000,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Teleport moves the rig without a flight.
func (r *Rig) Teleport(position, lookAt math.Vec3) {
	r.Position = position
	r.LookAt = lookAt
}

// ViewMatrix returns the view matrix for this rig.
func (r *Rig) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(r.Position, r.LookAt, up)
}

// ProjectionMatrix returns the perspective projection for the given aspect.
func (r *Rig) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(r.FOV, aspect, r.Near, r.Far)
}

// ViewProjection returns projection * view.
func (r *Rig) ViewProjection(aspect float32) math.Mat4 {
	return r.ProjectionMatrix(aspect).Mul(r.ViewMatrix())
}

// spherical returns the rig offset from LookAt as distance, pitch and yaw.
func (r *Rig) spherical() (dist, pitch, yaw float32) {
	off := r.Position.Sub(r.LookAt)
	dist = off.Length()
	if dist == 0 {
		return 0, 0, 0
	}
	pitch = math32.Asin(off.Y / dist)
	yaw = math32.Atan2(off.X, off.Z)
	return dist, pitch, yaw
}

// place puts the rig on the sphere around LookAt.
func (r *Rig) place(dist, pitch, yaw float32) {
	r.Position = math.Vec3{
		X: r.LookAt.X + dist*math32.Cos(pitch)*math32.Sin(yaw),
		Y: r.LookAt.Y + dist*math32.Sin(pitch),
		Z: r.LookAt.Z + dist*math32.Cos(pitch)*math32.Cos(yaw),
	}
}

// Orbit rotates the rig around LookAt from a mouse drag delta.
func (r *Rig) Orbit(deltaX, deltaY float32) {
	dist, pitch, yaw := r.spherical()
	if dist == 0 {
		return
	}
	yaw -= deltaX * r.DragSensitivity
	pitch += deltaY * r.DragSensitivity

	// Clamp pitch
	if pitch < r.MinPitch {
		pitch = r.MinPitch
	}
	if pitch > r.MaxPitch {
		pitch = r.MaxPitch
	}
	r.place(dist, pitch, yaw)
}

// Dolly moves the rig toward or away from LookAt from a scroll wheel delta.
func (r *Rig) Dolly(delta float32) {
	dist, pitch, yaw := r.spherical()
	if dist == 0 {
		return
	}
	dist -= delta * dist * r.ZoomSensitivity
	if dist < r.MinDistance {
		dist = r.MinDistance
	}
	if dist > r.MaxDistance {
		dist = r.MaxDistance
	}
	r.place(dist, pitch, yaw)
}

// Distance returns the distance between the camera and its look-at point.
func (r *Rig) Distance() float32 {
	return r.Position.Distance(r.LookAt)
}
