package geom

import "math"

const epsilon = 1e-12

// SvgArc is an elliptical arc in SVG endpoint parameterization: start and end
// points, radii, rotation of the x axis, and the large-arc/sweep flags.
type SvgArc struct {
	From      Point
	To        Point
	Radii     Vec2
	XRotation float64
	LargeArc  bool
	Sweep     bool
}

func (a SvgArc) IsFinite() bool {
	return a.From.IsFinite() && a.To.IsFinite() && Point(a.Radii).IsFinite() &&
		!math.IsNaN(a.XRotation) && !math.IsInf(a.XRotation, 0)
}

// IsStraightLine reports whether the arc degenerates to a straight line
// between its endpoints, either because a radius vanishes or because the
// endpoints coincide with the arc's flattening.
func (a SvgArc) IsStraightLine() bool {
	return math.Abs(a.Radii.X) < epsilon || math.Abs(a.Radii.Y) < epsilon ||
		a.From == a.To
}

// Arc converts to center parameterization following the W3C SVG
// implementation notes (F.6.5). The returned bool is false for degenerate
// arcs that should be drawn as straight lines.
func (a SvgArc) Arc() (Arc, bool) {
	if a.IsStraightLine() {
		return Arc{}, false
	}

	rx := math.Abs(a.Radii.X)
	ry := math.Abs(a.Radii.Y)
	sin, cos := math.Sincos(a.XRotation)

	// Step 1: half the vector from end to start, in the ellipse's frame.
	dx2 := (a.From.X - a.To.X) / 2
	dy2 := (a.From.Y - a.To.Y) / 2
	x1p := cos*dx2 + sin*dy2
	y1p := -sin*dx2 + cos*dy2

	// Step 2: scale up radii that are too small to span the endpoints.
	lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	// Step 3: center in the ellipse's frame.
	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	co := math.Sqrt(max(0, num/den))
	if a.LargeArc == a.Sweep {
		co = -co
	}
	cxp := co * rx * y1p / ry
	cyp := -co * ry * x1p / rx

	// Step 4: map the center back and compute the angles.
	center := Point{
		X: cos*cxp - sin*cyp + (a.From.X+a.To.X)/2,
		Y: sin*cxp + cos*cyp + (a.From.Y+a.To.Y)/2,
	}
	startAngle := Vec2{X: (x1p - cxp) / rx, Y: (y1p - cyp) / ry}.Angle()
	endAngle := Vec2{X: (-x1p - cxp) / rx, Y: (-y1p - cyp) / ry}.Angle()
	sweepAngle := endAngle - startAngle
	if a.Sweep && sweepAngle < 0 {
		sweepAngle += 2 * math.Pi
	} else if !a.Sweep && sweepAngle > 0 {
		sweepAngle -= 2 * math.Pi
	}

	return Arc{
		Center:     center,
		Radii:      Vec2{X: rx, Y: ry},
		StartAngle: startAngle,
		SweepAngle: sweepAngle,
		XRotation:  a.XRotation,
	}, true
}

// Transform applies an affine transformation to the arc, yielding a new arc
// tracing the image of the original ellipse.
func (a SvgArc) Transform(aff Affine) SvgArc {
	radii, xRotation, sweep := transformArcParams(aff, a.Radii, a.XRotation, a.Sweep)
	return SvgArc{
		From:      a.From.Transform(aff),
		To:        a.To.Transform(aff),
		Radii:     radii,
		XRotation: xRotation,
		LargeArc:  a.LargeArc,
		Sweep:     sweep,
	}
}

// transformArcParams computes the radii, x rotation, and sweep flag of an
// elliptical arc's image under an affine map. Translation affects none of
// them. The radii and rotation of the image ellipse are recovered from the
// eigenvalues of M·Mᵀ where M maps the axis-aligned radii through the
// transform's linear part.
func transformArcParams(aff Affine, radii Vec2, xRotation float64, sweep bool) (Vec2, float64, bool) {
	ta, tb, tc, td := aff.N0, aff.N1, aff.N2, aff.N3
	sin, cos := math.Sincos(xRotation)

	ma := [4]float64{
		radii.X * (ta*cos + tc*sin),
		radii.X * (tb*cos + td*sin),
		radii.Y * (-ta*sin + tc*cos),
		radii.Y * (-tb*sin + td*cos),
	}

	// ma * transpose(ma) = [ j l ]
	//                      [ l k ]
	j := ma[0]*ma[0] + ma[2]*ma[2]
	k := ma[1]*ma[1] + ma[3]*ma[3]

	// The discriminant of the characteristic polynomial of ma * transpose(ma).
	d := ((ma[0]-ma[3])*(ma[0]-ma[3]) + (ma[2]+ma[1])*(ma[2]+ma[1])) *
		((ma[0]+ma[3])*(ma[0]+ma[3]) + (ma[2]-ma[1])*(ma[2]-ma[1]))

	// The "mean eigenvalue".
	jk := (j + k) / 2

	var outRadii Vec2
	var outRotation float64
	if d < epsilon*jk {
		// The image is (almost) a circle.
		r := math.Sqrt(jk)
		outRadii = Vec2{X: r, Y: r}
		outRotation = 0
	} else {
		l := ma[0]*ma[1] + ma[2]*ma[3]
		sqrtD := math.Sqrt(d)

		// {l1, l2} are the two eigenvalues of ma * transpose(ma); the x axis
		// rotation is the argument of the l1 eigenvector.
		l1 := jk + sqrtD/2
		l2 := jk - sqrtD/2
		if math.Abs(l) < epsilon && math.Abs(l1-k) < epsilon {
			outRotation = math.Pi / 2
		} else if math.Abs(l) > math.Abs(l1-k) {
			outRotation = math.Atan((l1 - j) / l)
		} else {
			outRotation = math.Atan(l / (l1 - k))
		}
		outRadii = Vec2{X: math.Sqrt(l1), Y: math.Sqrt(max(0, l2))}
	}

	// A mirror transform flips the sweep direction.
	if ta*td-tb*tc < 0 {
		sweep = !sweep
	}
	return outRadii, outRotation, sweep
}

// Arc is an elliptical arc in center parameterization.
type Arc struct {
	Center     Point
	Radii      Vec2
	StartAngle float64
	SweepAngle float64
	XRotation  float64
}

// Eval returns the point at the given fraction t in [0, 1] of the sweep.
func (a Arc) Eval(t float64) Point {
	angle := a.StartAngle + t*a.SweepAngle
	return a.Center.Translate(sampleEllipse(a.Radii, a.XRotation, angle))
}

// SvgArc converts to endpoint parameterization.
func (a Arc) SvgArc() SvgArc {
	return SvgArc{
		From:      a.Eval(0),
		To:        a.Eval(1),
		Radii:     a.Radii,
		XRotation: a.XRotation,
		LargeArc:  math.Abs(a.SweepAngle) > math.Pi,
		Sweep:     a.SweepAngle > 0,
	}
}

// Flatten appends a polyline approximation of the arc to dst, excluding the
// start point and ending exactly at the arc's end point. The angular step is
// bounded so that the sagitta of each chord stays under tolerance.
func (a Arc) Flatten(dst []Point, tolerance float64) []Point {
	rmax := max(math.Abs(a.Radii.X), math.Abs(a.Radii.Y))
	var maxStep float64
	if tolerance >= rmax {
		maxStep = math.Pi / 2
	} else {
		maxStep = 2 * math.Acos(1-tolerance/rmax)
	}
	n := max(1, int(math.Ceil(math.Abs(a.SweepAngle)/maxStep)))
	end := a.Eval(1)
	for i := 1; i < n; i++ {
		dst = append(dst, a.Eval(float64(i)/float64(n)))
	}
	return append(dst, end)
}

// sampleEllipse maps an angle to the displacement from the ellipse's center.
func sampleEllipse(radii Vec2, xRotation float64, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	u := radii.X * cos
	v := radii.Y * sin
	return rotateVec(Vec2{X: u, Y: v}, xRotation)
}

// rotateVec rotates v about the origin by angle radians.
func rotateVec(v Vec2, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}
