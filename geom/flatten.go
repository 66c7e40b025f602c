package geom

import "math"

// Polyline is a flattened subpath: a run of points connected by straight
// lines. Closed marks subpaths terminated by a close-path element; their
// last point equals their first.
type Polyline struct {
	Points []Point
	Closed bool
}

// FlattenPath approximates a path by polylines, one per subpath, such that
// the Hausdorff distance between each curve and its approximation is within
// the given tolerance. Line endpoints pass through exactly; quadratic and
// cubic Béziers are subdivided with a near-optimal parabola-integral
// parameterization, and elliptical arcs are sampled at a bounded angle step.
//
// Cubics are first converted to quadratics with a tenth of the tolerance
// budget, then the quadratics are subdivided fractionally so their seam
// points need not appear in the output.
//
// This algorithm is based on the blog post [Flattening quadratic Béziers],
// extended to cubics by quadratic subdivision.
//
// [Flattening quadratic Béziers]: https://raphlinus.github.io/graphics/curves/2019/12/23/flatten-quadbez.html
func FlattenPath(path []PathElement, tolerance float64) []Polyline {
	// Proportion of tolerance budget that goes to cubic to quadratic conversion.
	const toQuadTol = 0.1

	sqrtTol := math.Sqrt(tolerance)
	var out []Polyline
	var cur []Point
	flush := func(closed bool) {
		if len(cur) > 1 {
			out = append(out, Polyline{Points: cur, Closed: closed})
		}
		cur = nil
	}
	var quadBuf []struct {
		q      QuadBez
		params flattenParams
	}
	for _, el := range path {
		switch el.Kind {
		case MoveToKind:
			flush(false)
			cur = append(cur, el.P0)
		case LineToKind:
			cur = append(cur, el.P0)
		case QuadToKind:
			if len(cur) == 0 {
				break
			}
			q := QuadBez{cur[len(cur)-1], el.P0, el.P1}
			params := q.estimateSubdiv(sqrtTol)
			n := max(int(math.Ceil(0.5*params.val/sqrtTol)), 1)
			step := 1.0 / float64(n)
			for i := 1; i < n; i++ {
				t := q.determineSubdivT(&params, float64(i)*step)
				cur = append(cur, q.Eval(t))
			}
			cur = append(cur, el.P1)
		case CubicToKind:
			if len(cur) == 0 {
				break
			}
			c := CubicBez{cur[len(cur)-1], el.P0, el.P1, el.P2}

			// Subdivide into quadratics, and estimate the number of
			// subdivisions required for each, summing to arrive at an
			// estimate for the number of subdivisions for the cubic.
			quadBuf = quadBuf[:0]
			sqrtRemainTol := sqrtTol * math.Sqrt(1.0-toQuadTol)
			sum := 0.0
			c.quadratics(tolerance*toQuadTol, func(q QuadBez) {
				params := q.estimateSubdiv(sqrtRemainTol)
				sum += params.val
				quadBuf = append(quadBuf, struct {
					q      QuadBez
					params flattenParams
				}{q, params})
			})
			n := max(int(math.Ceil(0.5*sum/sqrtRemainTol)), 1)

			// Iterate through the quadratics, outputting the points of
			// subdivisions that fall within each one.
			step := sum / float64(n)
			i := 1
			valSum := 0.0
			for _, sub := range quadBuf {
				target := float64(i) * step
				recipVal := 1.0 / sub.params.val
				for target < valSum+sub.params.val {
					u := (target - valSum) * recipVal
					t := sub.q.determineSubdivT(&sub.params, u)
					cur = append(cur, sub.q.Eval(t))
					i++
					if i == n+1 {
						break
					}
					target = float64(i) * step
				}
				valSum += sub.params.val
			}
			cur = append(cur, el.P2)
		case ArcToKind:
			if len(cur) == 0 {
				break
			}
			svg := SvgArc{
				From:      cur[len(cur)-1],
				To:        el.P0,
				Radii:     el.Radii,
				XRotation: el.XRotation,
				LargeArc:  el.LargeArc,
				Sweep:     el.Sweep,
			}
			if arc, ok := svg.Arc(); ok {
				cur = arc.Flatten(cur, tolerance)
				// Sampling error must not leak into the endpoint.
				cur[len(cur)-1] = el.P0
			} else {
				cur = append(cur, el.P0)
			}
		case ClosePathKind:
			if len(cur) > 1 && cur[len(cur)-1] != cur[0] {
				cur = append(cur, cur[0])
			}
			flush(true)
		}
	}
	flush(false)
	return out
}
