package app

import (
	"strings"

	"github.com/Faultbox/orrery/internal/engine/picking"
	"github.com/Faultbox/orrery/internal/scene"
	"github.com/Faultbox/orrery/pkg/math"
)

// Panel is the info card shown after arriving at a destination.
type Panel struct {
	ID     string
	Name   string
	Info   string
	Anchor math.Vec3
}

// Panel returns the visible info panel, or nil.
func (o *Orrery) Panel() *Panel {
	return o.panel
}

// Caption returns the transient tour caption, or "".
func (o *Orrery) Caption() string {
	return o.caption
}

// Labels projects the coordinate markers for a width x height viewport.
func (o *Orrery) Labels(width, height int) []scene.Label {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	vp := o.rig.ViewProjection(aspect)
	return o.scene.Labels(vp, o.rig.Position, width, height, o.cfg.UI.LabelRange)
}

// Status is the one-line summary shown in the viewer's title bar.
func (o *Orrery) Status() string {
	parts := []string{"Orrery"}
	if o.panel != nil {
		parts = append(parts, o.panel.Name)
	}
	if o.caption != "" {
		parts = append(parts, o.caption)
	}
	return strings.Join(parts, " - ")
}

// minPickRadius keeps tiny bodies and markers clickable.
const minPickRadius = 20

// PickAt returns the destination under pixel (x, y) of a width x height
// viewport. Visible bodies and their markers are both targets.
func (o *Orrery) PickAt(x, y float32, width, height int) (string, bool) {
	if width <= 0 || height <= 0 {
		return "", false
	}
	ray := picking.ScreenToRay(x, y, float32(width), float32(height), o.rig.Position, o.rig.LookAt, o.rig.FOV)

	var targets []picking.Target
	for _, e := range o.scene.Entities() {
		if e.Kind == scene.KindGlow || e.Kind == scene.KindLight || e.Opacity() <= 0 {
			continue
		}
		targets = append(targets, picking.Target{ID: e.ID, Center: e.Position, Radius: max(e.Scale/2, minPickRadius)})
	}
	for _, m := range o.scene.Markers() {
		if m.Entity.Opacity() <= 0 {
			continue
		}
		targets = append(targets, picking.Target{ID: m.Entity.ID, Center: m.Position(), Radius: minPickRadius})
	}

	hit, ok := picking.Nearest(ray, targets)
	return hit.ID, ok
}
