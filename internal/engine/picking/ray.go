// Package picking casts rays from the screen into the scene.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/orrery/pkg/math"
)

// Ray is a half-line with a normalized direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// At returns the point t units along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay builds the ray through pixel (screenX, screenY) for a camera at
// eye looking at lookAt with a vertical field of view fovY (radians). Pixel
// rows grow downward.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, eye, lookAt math.Vec3, fovY float32) Ray {
	forward := lookAt.Sub(eye).Normalize()
	right := forward.Cross(math.Vec3{Y: 1}).Normalize()
	if right.Length() == 0 {
		// Looking straight up or down.
		right = math.Vec3{X: 1}
	}
	up := right.Cross(forward)

	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH

	halfH := math32.Tan(fovY / 2)
	halfW := halfH * viewportW / viewportH

	dir := forward.
		Add(right.Scale(ndcX * halfW)).
		Add(up.Scale(ndcY * halfH))
	return Ray{Origin: eye, Direction: dir.Normalize()}
}

// IntersectSphere returns the distance to the first hit in front of the
// origin. A ray starting inside the sphere hits its far side.
func (r Ray) IntersectSphere(center math.Vec3, radius float32) (t float32, hit bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math32.Sqrt(disc)
	t = -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Target is something that can be picked.
type Target struct {
	ID     string
	Center math.Vec3
	Radius float32
}

// Nearest returns the closest target the ray hits.
func Nearest(r Ray, targets []Target) (Target, bool) {
	var (
		best  Target
		bestT = float32(math32.MaxFloat32)
		found bool
	)
	for _, tg := range targets {
		if t, ok := r.IntersectSphere(tg.Center, tg.Radius); ok && t < bestT {
			best, bestT, found = tg, t, true
		}
	}
	return best, found
}
