package geom

import (
	"math"
	"testing"
)

func TestSvgArcToCenter(t *testing.T) {
	const eps = 1e-9
	// Unit half circle above the x axis, counterclockwise in y-up terms.
	a := SvgArc{
		From:  Pt(0, 0),
		To:    Pt(2, 0),
		Radii: Vec2{X: 1, Y: 1},
		Sweep: true,
	}
	arc, ok := a.Arc()
	if !ok {
		t.Fatal("expected a non-degenerate arc")
	}
	assertNear(t, arc.Center, Pt(1, 0), eps)
	if math.Abs(math.Abs(arc.SweepAngle)-math.Pi) > eps {
		t.Errorf("got sweep angle %v, expected ±π", arc.SweepAngle)
	}
	assertNear(t, arc.Eval(0), a.From, eps)
	assertNear(t, arc.Eval(1), a.To, eps)
}

func TestSvgArcRadiiScaleUp(t *testing.T) {
	const eps = 1e-9
	// Radii too small to span the endpoints must be scaled up uniformly.
	a := SvgArc{
		From:  Pt(0, 0),
		To:    Pt(10, 0),
		Radii: Vec2{X: 1, Y: 1},
		Sweep: true,
	}
	arc, ok := a.Arc()
	if !ok {
		t.Fatal("expected a non-degenerate arc")
	}
	if arc.Radii.X < 5-eps {
		t.Errorf("got radius %v, expected at least 5", arc.Radii.X)
	}
	assertNear(t, arc.Eval(0), a.From, eps)
	assertNear(t, arc.Eval(1), a.To, eps)
}

func TestSvgArcDegenerate(t *testing.T) {
	a := SvgArc{From: Pt(1, 1), To: Pt(1, 1), Radii: Vec2{X: 5, Y: 5}}
	if !a.IsStraightLine() {
		t.Error("coincident endpoints should degenerate to a line")
	}
	a = SvgArc{From: Pt(0, 0), To: Pt(1, 0), Radii: Vec2{X: 0, Y: 5}}
	if !a.IsStraightLine() {
		t.Error("zero radius should degenerate to a line")
	}
}

func TestArcSvgArcRoundTrip(t *testing.T) {
	const eps = 1e-9
	arcs := []Arc{
		{Center: Pt(3, 4), Radii: Vec2{X: 2, Y: 2}, StartAngle: 0.3, SweepAngle: 1.8},
		{Center: Pt(-1, 2), Radii: Vec2{X: 5, Y: 3}, StartAngle: 1.1, SweepAngle: -2.5, XRotation: 0.4},
		{Center: Pt(0, 0), Radii: Vec2{X: 1, Y: 1}, StartAngle: 0, SweepAngle: 3 * math.Pi / 2},
	}
	for _, arc := range arcs {
		got, ok := arc.SvgArc().Arc()
		if !ok {
			t.Fatalf("%+v: round trip degenerated", arc)
		}
		assertNear(t, got.Center, arc.Center, eps)
		assertNear(t, got.Eval(0), arc.Eval(0), eps)
		assertNear(t, got.Eval(0.5), arc.Eval(0.5), eps)
		assertNear(t, got.Eval(1), arc.Eval(1), eps)
	}
}

func TestSvgArcTransform(t *testing.T) {
	const eps = 1e-9
	a := SvgArc{
		From:  Pt(0, 0),
		To:    Pt(2, 0),
		Radii: Vec2{X: 1, Y: 1},
		Sweep: true,
	}

	// Uniform scale doubles the radii.
	scaled := a.Transform(Scale(2, 2))
	assertNear(t, scaled.From, Pt(0, 0), eps)
	assertNear(t, scaled.To, Pt(4, 0), eps)
	if math.Abs(scaled.Radii.X-2) > eps || math.Abs(scaled.Radii.Y-2) > eps {
		t.Errorf("got radii %v, expected (2, 2)", scaled.Radii)
	}
	if !scaled.Sweep {
		t.Error("orientation-preserving transform must not flip sweep")
	}

	// A mirror flips the sweep direction.
	flipped := a.Transform(FlipY)
	if flipped.Sweep {
		t.Error("mirror transform must flip sweep")
	}

	// Non-uniform scale turns a circle into an ellipse.
	ellipse := a.Transform(Scale(3, 1))
	r := ellipse.Radii
	if math.Abs(max(r.X, r.Y)-3) > eps || math.Abs(min(r.X, r.Y)-1) > eps {
		t.Errorf("got radii %v, expected axes 3 and 1", r)
	}

	// Images of points on the arc stay on the transformed ellipse.
	aff := Rotate(0.7).Mul(Scale(2, 0.5))
	arc, _ := a.Arc()
	gotArc, ok := a.Transform(aff).Arc()
	if !ok {
		t.Fatal("transformed arc degenerated")
	}
	for _, u := range []float64{0, 0.25, 0.5, 0.75, 1} {
		p := arc.Eval(u).Transform(aff)
		if d := ellipseResidual(gotArc, p); math.Abs(d) > 1e-6 {
			t.Errorf("image of t=%v off the transformed ellipse by %v", u, d)
		}
	}
}

// ellipseResidual evaluates the implicit ellipse equation at p, zero on the
// ellipse traced by the arc.
func ellipseResidual(arc Arc, p Point) float64 {
	v := rotateVec(p.Sub(arc.Center), -arc.XRotation)
	x := v.X / arc.Radii.X
	y := v.Y / arc.Radii.Y
	return x*x + y*y - 1
}

func TestArcFlattenEndpoints(t *testing.T) {
	arc := Arc{Center: Pt(0, 0), Radii: Vec2{X: 4, Y: 4}, StartAngle: 0, SweepAngle: 2 * math.Pi}
	pts := arc.Flatten(nil, 0.01)
	if len(pts) < 8 {
		t.Fatalf("got %d points, expected a dense sampling", len(pts))
	}
	assertNear(t, pts[len(pts)-1], arc.Eval(1), 1e-9)
	for _, p := range pts {
		if d := p.Distance(arc.Center); math.Abs(d-4) > 1e-9 {
			t.Errorf("point %s at distance %v from center", p, d)
		}
	}
}
