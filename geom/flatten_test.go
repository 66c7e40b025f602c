package geom

import (
	"math"
	"testing"
)

// maxCurveDistance returns the largest distance from densely sampled curve
// points to the polyline approximation.
func maxCurveDistance(pts []Point, sample func(t float64) Point) float64 {
	worst := 0.0
	for i := 0; i <= 1000; i++ {
		p := sample(float64(i) / 1000)
		best := math.Inf(1)
		for j := 0; j+1 < len(pts); j++ {
			best = min(best, lineDistance(pts[j], pts[j+1], p))
		}
		worst = max(worst, best)
	}
	return worst
}

func lineDistance(a, b, p Point) float64 {
	d := b.Sub(a)
	if d.Hypot2() == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(d) / d.Hypot2()
	t = min(max(t, 0), 1)
	return p.Distance(a.Lerp(b, t))
}

func TestFlattenLinesExact(t *testing.T) {
	path := []PathElement{
		MoveTo(Pt(0, 0)),
		LineTo(Pt(10, 0)),
		LineTo(Pt(10, 10)),
		ClosePath(),
	}
	got := FlattenPath(path, 0.1)
	want := []Polyline{{
		Points: []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 0)},
		Closed: true,
	}}
	diff(t, want, got)
}

func TestFlattenQuadTolerance(t *testing.T) {
	q := QuadBez{Pt(0, 0), Pt(50, 100), Pt(100, 0)}
	for _, tol := range []float64{1, 0.1, 0.01} {
		path := []PathElement{MoveTo(q.P0), QuadTo(q.P1, q.P2)}
		polys := FlattenPath(path, tol)
		if len(polys) != 1 {
			t.Fatalf("got %d polylines, expected 1", len(polys))
		}
		pts := polys[0].Points
		if pts[0] != q.P0 || pts[len(pts)-1] != q.P2 {
			t.Errorf("tolerance %v: endpoints not preserved exactly", tol)
		}
		if d := maxCurveDistance(pts, q.Eval); d > tol {
			t.Errorf("tolerance %v: max distance %v", tol, d)
		}
	}
}

func TestFlattenCubicTolerance(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(0, 100), Pt(100, 100), Pt(100, 0)}
	for _, tol := range []float64{1, 0.1, 0.01} {
		path := []PathElement{MoveTo(c.P0), CubicTo(c.P1, c.P2, c.P3)}
		polys := FlattenPath(path, tol)
		pts := polys[0].Points
		if pts[0] != c.P0 || pts[len(pts)-1] != c.P3 {
			t.Errorf("tolerance %v: endpoints not preserved exactly", tol)
		}
		if d := maxCurveDistance(pts, c.Eval); d > tol {
			t.Errorf("tolerance %v: max distance %v", tol, d)
		}
	}
}

func TestFlattenTighterToleranceMorePoints(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(0, 100), Pt(100, 100), Pt(100, 0)}
	path := []PathElement{MoveTo(c.P0), CubicTo(c.P1, c.P2, c.P3)}
	coarse := len(FlattenPath(path, 1)[0].Points)
	fine := len(FlattenPath(path, 0.001)[0].Points)
	if fine <= coarse {
		t.Errorf("got %d points at 0.001 vs %d at 1", fine, coarse)
	}
}

func TestFlattenArcTolerance(t *testing.T) {
	arc := Arc{
		Center:     Pt(50, 0),
		Radii:      Vec2{X: 50, Y: 50},
		StartAngle: math.Pi,
		SweepAngle: -math.Pi,
	}
	svg := arc.SvgArc()
	path := []PathElement{
		MoveTo(svg.From),
		ArcTo(svg.To, svg.Radii, svg.XRotation, svg.LargeArc, svg.Sweep),
	}
	for _, tol := range []float64{1, 0.1, 0.01} {
		pts := FlattenPath(path, tol)[0].Points
		assertNear(t, pts[len(pts)-1], svg.To, 1e-9)
		if d := maxCurveDistance(pts, arc.Eval); d > tol {
			t.Errorf("tolerance %v: max distance %v", tol, d)
		}
	}
}

func TestFlattenMultipleSubpaths(t *testing.T) {
	path := []PathElement{
		MoveTo(Pt(0, 0)),
		LineTo(Pt(1, 0)),
		MoveTo(Pt(5, 5)),
		LineTo(Pt(6, 5)),
		LineTo(Pt(6, 6)),
	}
	polys := FlattenPath(path, 0.1)
	if len(polys) != 2 {
		t.Fatalf("got %d polylines, expected 2", len(polys))
	}
	if polys[0].Closed || polys[1].Closed {
		t.Error("open subpaths reported as closed")
	}
	diff(t, []Point{Pt(0, 0), Pt(1, 0)}, polys[0].Points)
	diff(t, []Point{Pt(5, 5), Pt(6, 5), Pt(6, 6)}, polys[1].Points)
}

func TestFlattenDegenerateSubpath(t *testing.T) {
	// A bare MoveTo produces no polyline.
	polys := FlattenPath([]PathElement{MoveTo(Pt(1, 2))}, 0.1)
	if len(polys) != 0 {
		t.Errorf("got %d polylines, expected 0", len(polys))
	}
}
