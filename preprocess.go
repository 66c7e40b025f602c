package svg2gcode

import (
	"svg2gcode/arcfit"
	"svg2gcode/geom"
)

// preprocessTurtle accumulates the tight bounding box of all geometry it is
// driven over. It emits nothing; the first conversion pass uses it to size
// origin, alignment, and trim transforms.
type preprocessTurtle struct {
	bbox    geom.Rect
	hasBBox bool
}

func (t *preprocessTurtle) extend(p geom.Point) {
	if !t.hasBBox {
		t.bbox = geom.NewRectFromPoints(p, p)
		t.hasBBox = true
		return
	}
	t.bbox = t.bbox.UnionPoint(p)
}

func (t *preprocessTurtle) Begin()               {}
func (t *preprocessTurtle) End()                 {}
func (t *preprocessTurtle) Comment(string)       {}
func (t *preprocessTurtle) BetweenLayers()       {}
func (t *preprocessTurtle) MoveTo(to geom.Point) { t.extend(to) }
func (t *preprocessTurtle) LineTo(to geom.Point) { t.extend(to) }

func (t *preprocessTurtle) ArcTo(arc arcfit.Segment) {
	for _, p := range arc.Points {
		t.extend(p)
	}
}
