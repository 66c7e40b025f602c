package geom

import "fmt"

type ElementKind int

const (
	// Move directly to the point without drawing anything, starting a new
	// subpath.
	MoveToKind ElementKind = iota + 1
	// Draw a line from the current location to the point.
	LineToKind
	// Draw a quadratic bezier using the current location and the two points.
	QuadToKind
	// Draw a cubic bezier using the current location and the three points.
	CubicToKind
	// Draw an elliptical arc from the current location to the point.
	ArcToKind
	// Close off the subpath.
	ClosePathKind
)

// PathElement is the element of a path.
//
// A valid path has a MoveTo at the beginning of each subpath. Elements are
// immutable once built; Transform returns a new element.
type PathElement struct {
	Kind ElementKind
	P0   Point
	P1   Point
	P2   Point

	// Arc parameters, meaningful only for ArcToKind. P0 is the arc's end
	// point; the start point is implied by the previous element.
	Radii     Vec2
	XRotation float64
	LargeArc  bool
	Sweep     bool
}

func (el PathElement) String() string {
	switch el.Kind {
	case MoveToKind:
		return fmt.Sprintf("MoveTo(%s)", el.P0)
	case LineToKind:
		return fmt.Sprintf("LineTo(%s)", el.P0)
	case QuadToKind:
		return fmt.Sprintf("QuadTo(%s, %s)", el.P0, el.P1)
	case CubicToKind:
		return fmt.Sprintf("CubicTo(%s, %s, %s)", el.P0, el.P1, el.P2)
	case ArcToKind:
		return fmt.Sprintf("ArcTo(%s, %s, %g, %t, %t)", el.P0, el.Radii, el.XRotation, el.LargeArc, el.Sweep)
	case ClosePathKind:
		return "ClosePath()"
	default:
		return "InvalidPathElement"
	}
}

func MoveTo(pt Point) PathElement {
	return PathElement{Kind: MoveToKind, P0: pt}
}

func LineTo(pt Point) PathElement {
	return PathElement{Kind: LineToKind, P0: pt}
}

func QuadTo(p0, p1 Point) PathElement {
	return PathElement{Kind: QuadToKind, P0: p0, P1: p1}
}

func CubicTo(p0, p1, p2 Point) PathElement {
	return PathElement{Kind: CubicToKind, P0: p0, P1: p1, P2: p2}
}

func ArcTo(to Point, radii Vec2, xRotation float64, largeArc, sweep bool) PathElement {
	return PathElement{
		Kind:      ArcToKind,
		P0:        to,
		Radii:     radii,
		XRotation: xRotation,
		LargeArc:  largeArc,
		Sweep:     sweep,
	}
}

func ClosePath() PathElement {
	return PathElement{Kind: ClosePathKind}
}

// EndPoint returns the end point of the path element. It exists for all kinds
// except ClosePathKind.
func (el PathElement) EndPoint() (Point, bool) {
	switch el.Kind {
	case MoveToKind, LineToKind, ArcToKind:
		return el.P0, true
	case QuadToKind:
		return el.P1, true
	case CubicToKind:
		return el.P2, true
	default:
		return Point{}, false
	}
}

func (el PathElement) Transform(aff Affine) PathElement {
	switch el.Kind {
	case MoveToKind:
		return MoveTo(el.P0.Transform(aff))
	case LineToKind:
		return LineTo(el.P0.Transform(aff))
	case QuadToKind:
		return QuadTo(el.P0.Transform(aff), el.P1.Transform(aff))
	case CubicToKind:
		return CubicTo(el.P0.Transform(aff), el.P1.Transform(aff), el.P2.Transform(aff))
	case ArcToKind:
		radii, xRotation, sweep := transformArcParams(aff, el.Radii, el.XRotation, el.Sweep)
		return ArcTo(el.P0.Transform(aff), radii, xRotation, el.LargeArc, sweep)
	case ClosePathKind:
		return ClosePath()
	default:
		return PathElement{}
	}
}

// IsFinite reports whether all coordinates of the element are finite.
func (el PathElement) IsFinite() bool {
	return el.P0.IsFinite() && el.P1.IsFinite() && el.P2.IsFinite() &&
		Point(el.Radii).IsFinite()
}
