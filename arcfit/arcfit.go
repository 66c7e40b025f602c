// Package arcfit detects circular arcs in runs of polyline points, replacing
// maximal nearly-circular windows with a single arc primitive. Detection is
// purely geometric; deciding whether a machine can execute arcs is the
// caller's concern.
package arcfit

import (
	"math"

	"svg2gcode/geom"
)

// Config controls arc detection.
type Config struct {
	// Enabled turns detection on. When false, Detect returns the input
	// run as plain line segments.
	Enabled bool
	// MinPoints is the smallest number of consecutive points a window may
	// consume.
	MinPoints int
	// Tolerance is the maximum distance from any consumed point to the
	// fitted circle.
	Tolerance float64
	// MinRadius rejects fits below this radius, which are usually noise
	// on nearly straight runs.
	MinRadius float64
}

// DefaultConfig returns detection defaults derived from the flattening
// tolerance: windows of at least 5 points, arc tolerance equal to the main
// tolerance, and a minimum radius of tolerance/20.
func DefaultConfig(tolerance float64) Config {
	return Config{
		Enabled:   true,
		MinPoints: 5,
		Tolerance: tolerance,
		MinRadius: tolerance * 0.05,
	}
}

// SegmentKind discriminates the variants of Segment.
type SegmentKind uint8

const (
	LineSegment SegmentKind = iota
	ArcSegment
)

// Segment is one output primitive: a straight line between two points, or a
// circular arc with its fitted center. Arc endpoints are original input
// points, never fitted approximations. Points holds the consumed input run
// for arcs, so a caller lacking circular interpolation can fall back to the
// exact pre-detection chords.
type Segment struct {
	Kind      SegmentKind
	From, To  geom.Point
	Center    geom.Point
	Radius    float64
	Clockwise bool
	Points    []geom.Point
}

// Line returns a line segment.
func Line(from, to geom.Point) Segment {
	return Segment{Kind: LineSegment, From: from, To: to}
}

// Detect replaces maximal circular windows in the run with arcs. Windows
// grow greedily from the leftmost unconsumed point and commit at the largest
// length whose circle fit keeps every window point within tolerance; shorter
// runs and points outside any window pass through as line segments. A window
// that closes on itself (the run is a full circle) is committed as two half
// arcs so that no arc's endpoints coincide.
func Detect(points []geom.Point, cfg Config) []Segment {
	var out []Segment
	if !cfg.Enabled {
		for i := 0; i+1 < len(points); i++ {
			out = append(out, Line(points[i], points[i+1]))
		}
		return out
	}

	i := 0
	for i+1 < len(points) {
		window, circle, ok := growWindow(points[i:], cfg)
		if !ok {
			out = append(out, Line(points[i], points[i+1]))
			i++
			continue
		}
		out = commitArc(out, points[i:i+window], circle)
		i += window - 1
	}
	return out
}

// growWindow finds the longest prefix of the run, at least MinPoints long,
// whose points all lie within tolerance of a fitted circle. It returns the
// window length in points.
func growWindow(run []geom.Point, cfg Config) (int, Circle, bool) {
	minPts := cfg.MinPoints
	if minPts < 3 {
		minPts = 3
	}
	if len(run) < minPts {
		return 0, Circle{}, false
	}

	best := 0
	var bestCircle Circle
	for n := minPts; n <= len(run); n++ {
		circle, ok := FitCircle(run[:n])
		if !ok || circle.Radius < cfg.MinRadius || !withinTolerance(run[:n], circle, cfg.Tolerance) {
			break
		}
		best = n
		bestCircle = circle
	}
	return best, bestCircle, best > 0
}

func withinTolerance(pts []geom.Point, c Circle, tolerance float64) bool {
	for _, p := range pts {
		if math.Abs(p.Distance(c.Center)-c.Radius) > tolerance {
			return false
		}
	}
	return true
}

// commitArc appends the window as one arc, or as two half arcs when the
// window's endpoints coincide.
func commitArc(out []Segment, window []geom.Point, circle Circle) []Segment {
	from := window[0]
	to := window[len(window)-1]
	cw := clockwise(window)
	if from == to {
		half := len(window) / 2
		mid := window[half]
		return append(out,
			Segment{Kind: ArcSegment, From: from, To: mid, Center: circle.Center, Radius: circle.Radius, Clockwise: cw, Points: window[:half+1]},
			Segment{Kind: ArcSegment, From: mid, To: to, Center: circle.Center, Radius: circle.Radius, Clockwise: cw, Points: window[half:]},
		)
	}
	return append(out, Segment{
		Kind:      ArcSegment,
		From:      from,
		To:        to,
		Center:    circle.Center,
		Radius:    circle.Radius,
		Clockwise: cw,
		Points:    window,
	})
}

// clockwise derives the winding from the first pair of successive edge
// vectors with a nonzero cross product. Positive cross means
// counter-clockwise in a y-up frame.
func clockwise(window []geom.Point) bool {
	for i := 0; i+2 < len(window); i++ {
		e0 := window[i+1].Sub(window[i])
		e1 := window[i+2].Sub(window[i+1])
		if cross := e0.Cross(e1); cross != 0 {
			return cross < 0
		}
	}
	return false
}
