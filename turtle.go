package svg2gcode

import (
	"svg2gcode/arcfit"
	"svg2gcode/geom"
)

// Turtle consumes the ordered primitive stream produced by document
// traversal. Coordinates are fully resolved machine coordinates in
// millimeters, y-up. Implementations keep whatever state they need across
// calls; a turtle serves exactly one conversion.
type Turtle interface {
	// Begin runs before the first primitive.
	Begin()
	// End runs after the last primitive.
	End()
	// Comment annotates the following primitives.
	Comment(comment string)
	// BetweenLayers marks a layer boundary. Emission of the associated
	// sequence is deferred until just before the next tool engagement.
	BetweenLayers()
	// MoveTo travels to a point without cutting.
	MoveTo(to geom.Point)
	// LineTo cuts a straight line to a point.
	LineTo(to geom.Point)
	// ArcTo cuts a detected circular arc.
	ArcTo(arc arcfit.Segment)
}
