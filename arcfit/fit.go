package arcfit

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"svg2gcode/geom"
)

// Circle is a fitted circle.
type Circle struct {
	Center geom.Point
	Radius float64
}

// FitCircle fits a circle to the points. Three points use the exact
// circumcircle; more use an algebraic least-squares fit. Collinear or
// otherwise degenerate inputs report false.
func FitCircle(points []geom.Point) (Circle, bool) {
	if len(points) < 3 {
		return Circle{}, false
	}
	// The first three points seed the fit; a collinear seed means the run
	// opens straight and is not worth refining.
	seed, ok := circumcircle(points[0], points[1], points[2])
	if !ok || len(points) == 3 {
		return seed, ok
	}
	return fitCircleLeastSquares(points)
}

// circumcircle is the circle through three points, derived from the
// perpendicular bisector intersection.
func circumcircle(p1, p2, p3 geom.Point) (Circle, bool) {
	a := p2.Sub(p1)
	b := p3.Sub(p1)
	cross := a.Cross(b)
	if math.Abs(cross) < 1e-12 {
		return Circle{}, false
	}
	aLen2 := a.Hypot2()
	bLen2 := b.Hypot2()
	center := geom.Pt(
		p1.X+(b.Y*aLen2-a.Y*bLen2)/(2*cross),
		p1.Y+(a.X*bLen2-b.X*aLen2)/(2*cross),
	)
	c := Circle{Center: center, Radius: center.Distance(p1)}
	return c, c.isFinite()
}

// fitCircleLeastSquares solves the algebraic (Kåsa) formulation: each point
// contributes the row 2x·cx + 2y·cy + k = x² + y², where k = r² − cx² − cy².
// The overdetermined system is solved by QR.
func fitCircleLeastSquares(points []geom.Point) (Circle, bool) {
	n := len(points)
	a := mat.NewDense(n, 3, nil)
	b := mat.NewVecDense(n, nil)
	for i, p := range points {
		a.Set(i, 0, 2*p.X)
		a.Set(i, 1, 2*p.Y)
		a.Set(i, 2, 1)
		b.SetVec(i, p.X*p.X+p.Y*p.Y)
	}

	var qr mat.QR
	qr.Factorize(a)

	var params mat.VecDense
	if err := qr.SolveVecTo(&params, false, b); err != nil {
		return Circle{}, false
	}

	cx := params.AtVec(0)
	cy := params.AtVec(1)
	r2 := params.AtVec(2) + cx*cx + cy*cy
	if r2 <= 0 {
		return Circle{}, false
	}
	c := Circle{Center: geom.Pt(cx, cy), Radius: math.Sqrt(r2)}
	return c, c.isFinite()
}

func (c Circle) isFinite() bool {
	return c.Center.IsFinite() && !math.IsNaN(c.Radius) && !math.IsInf(c.Radius, 0)
}
