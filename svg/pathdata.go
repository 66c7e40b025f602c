package svg

import (
	"fmt"
	"math"
	"strconv"

	"svg2gcode/geom"
)

// ParsePathData parses an SVG path d attribute into path elements. All
// coordinates are converted to absolute, H/V become lines, and smooth curve
// commands (S, T) have their reflected control point resolved, so the result
// uses only the element kinds the geometry layer knows.
func ParsePathData(d string) ([]geom.PathElement, error) {
	p := &pathParser{s: d}
	if err := p.run(); err != nil {
		return nil, fmt.Errorf("path data at byte %d: %w", p.i, err)
	}
	return p.out, nil
}

type pathParser struct {
	s   string
	i   int
	out []geom.PathElement

	cur       geom.Point
	start     geom.Point // current subpath's initial point
	lastCubic geom.Point // control point to reflect for S
	lastQuad  geom.Point // control point to reflect for T
	prevCmd   byte
	closed    bool // a close-path was the last emitted drawing element
}

func (p *pathParser) run() error {
	p.skipSep()
	if p.i >= len(p.s) {
		return nil
	}
	if c := p.s[p.i]; c != 'M' && c != 'm' {
		return fmt.Errorf("must start with a moveto, got %q", c)
	}
	for p.i < len(p.s) {
		cmd := p.s[p.i]
		p.i++
		if err := p.command(cmd); err != nil {
			return err
		}
		p.skipSep()
	}
	return nil
}

func (p *pathParser) command(cmd byte) error {
	rel := cmd >= 'a'
	upper := cmd &^ 0x20
	first := true
	for {
		switch upper {
		case 'M':
			to, err := p.point(rel)
			if err != nil {
				return err
			}
			if first {
				p.moveTo(to)
			} else {
				// Extra coordinate pairs are implicit linetos.
				p.lineTo(to)
			}
		case 'L':
			to, err := p.point(rel)
			if err != nil {
				return err
			}
			p.lineTo(to)
		case 'H':
			x, err := p.number()
			if err != nil {
				return err
			}
			if rel {
				x += p.cur.X
			}
			p.lineTo(geom.Pt(x, p.cur.Y))
		case 'V':
			y, err := p.number()
			if err != nil {
				return err
			}
			if rel {
				y += p.cur.Y
			}
			p.lineTo(geom.Pt(p.cur.X, y))
		case 'C':
			c1, err := p.point(rel)
			if err != nil {
				return err
			}
			c2, err := p.point(rel)
			if err != nil {
				return err
			}
			to, err := p.point(rel)
			if err != nil {
				return err
			}
			p.cubicTo(c1, c2, to)
		case 'S':
			c2, err := p.point(rel)
			if err != nil {
				return err
			}
			to, err := p.point(rel)
			if err != nil {
				return err
			}
			p.cubicTo(p.reflectCubic(), c2, to)
		case 'Q':
			c1, err := p.point(rel)
			if err != nil {
				return err
			}
			to, err := p.point(rel)
			if err != nil {
				return err
			}
			p.quadTo(c1, to)
		case 'T':
			to, err := p.point(rel)
			if err != nil {
				return err
			}
			p.quadTo(p.reflectQuad(), to)
		case 'A':
			rx, err := p.number()
			if err != nil {
				return err
			}
			ry, err := p.number()
			if err != nil {
				return err
			}
			deg, err := p.number()
			if err != nil {
				return err
			}
			largeArc, err := p.flag()
			if err != nil {
				return err
			}
			sweep, err := p.flag()
			if err != nil {
				return err
			}
			to, err := p.point(rel)
			if err != nil {
				return err
			}
			p.arcTo(to, geom.Vec(math.Abs(rx), math.Abs(ry)), deg*math.Pi/180, largeArc, sweep)
		case 'Z':
			if first {
				p.closePath()
			}
			p.prevCmd = upper
			return nil
		default:
			return fmt.Errorf("unknown command %q", cmd)
		}
		p.prevCmd = upper
		first = false
		if !p.moreArguments() {
			return nil
		}
	}
}

// moreArguments reports whether another argument group for the current
// command follows (implicit command repetition).
func (p *pathParser) moreArguments() bool {
	p.skipSep()
	if p.i >= len(p.s) {
		return false
	}
	c := p.s[p.i]
	return c == '+' || c == '-' || c == '.' || '0' <= c && c <= '9'
}

func (p *pathParser) moveTo(to geom.Point) {
	p.out = append(p.out, geom.MoveTo(to))
	p.cur = to
	p.start = to
	p.closed = false
}

// reopen starts a new subpath at the current point when a drawing command
// follows a close-path without an intervening moveto.
func (p *pathParser) reopen() {
	if p.closed {
		p.out = append(p.out, geom.MoveTo(p.cur))
		p.closed = false
	}
}

func (p *pathParser) lineTo(to geom.Point) {
	p.reopen()
	p.out = append(p.out, geom.LineTo(to))
	p.cur = to
}

func (p *pathParser) cubicTo(c1, c2, to geom.Point) {
	p.reopen()
	p.out = append(p.out, geom.CubicTo(c1, c2, to))
	p.cur = to
	p.lastCubic = c2
}

func (p *pathParser) quadTo(c1, to geom.Point) {
	p.reopen()
	p.out = append(p.out, geom.QuadTo(c1, to))
	p.cur = to
	p.lastQuad = c1
}

func (p *pathParser) arcTo(to geom.Point, radii geom.Vec2, xRotation float64, largeArc, sweep bool) {
	p.reopen()
	p.out = append(p.out, geom.ArcTo(to, radii, xRotation, largeArc, sweep))
	p.cur = to
}

func (p *pathParser) closePath() {
	p.out = append(p.out, geom.ClosePath())
	p.cur = p.start
	p.closed = true
}

// reflectCubic returns the reflection of the previous cubic's second control
// point about the current point, or the current point when the previous
// command was not a cubic.
func (p *pathParser) reflectCubic() geom.Point {
	if p.prevCmd == 'C' || p.prevCmd == 'S' {
		return p.cur.Lerp(p.lastCubic, -1)
	}
	return p.cur
}

func (p *pathParser) reflectQuad() geom.Point {
	if p.prevCmd == 'Q' || p.prevCmd == 'T' {
		return p.cur.Lerp(p.lastQuad, -1)
	}
	return p.cur
}

func (p *pathParser) point(rel bool) (geom.Point, error) {
	x, err := p.number()
	if err != nil {
		return geom.Point{}, err
	}
	y, err := p.number()
	if err != nil {
		return geom.Point{}, err
	}
	if rel {
		return geom.Pt(p.cur.X+x, p.cur.Y+y), nil
	}
	return geom.Pt(x, y), nil
}

// number scans one SVG number: optional sign, decimal digits with an
// optional fraction, and an optional exponent.
func (p *pathParser) number() (float64, error) {
	p.skipSep()
	start := p.i
	i := p.i
	if i < len(p.s) && (p.s[i] == '+' || p.s[i] == '-') {
		i++
	}
	for i < len(p.s) && isDigit(p.s[i]) {
		i++
	}
	if i < len(p.s) && p.s[i] == '.' {
		i++
		for i < len(p.s) && isDigit(p.s[i]) {
			i++
		}
	}
	if i < len(p.s) && (p.s[i] == 'e' || p.s[i] == 'E') {
		j := i + 1
		if j < len(p.s) && (p.s[j] == '+' || p.s[j] == '-') {
			j++
		}
		if j < len(p.s) && isDigit(p.s[j]) {
			for j < len(p.s) && isDigit(p.s[j]) {
				j++
			}
			i = j
		}
	}
	if i == start {
		return 0, fmt.Errorf("expected a number")
	}
	v, err := strconv.ParseFloat(p.s[start:i], 64)
	if err != nil {
		return 0, fmt.Errorf("malformed number %q", p.s[start:i])
	}
	p.i = i
	return v, nil
}

// flag scans an arc flag, which is a bare 0 or 1 that may abut the next
// number without a separator.
func (p *pathParser) flag() (bool, error) {
	p.skipSep()
	if p.i >= len(p.s) || p.s[p.i] != '0' && p.s[p.i] != '1' {
		return false, fmt.Errorf("expected an arc flag")
	}
	v := p.s[p.i] == '1'
	p.i++
	return v, nil
}

func (p *pathParser) skipSep() {
	for p.i < len(p.s) {
		switch p.s[p.i] {
		case ' ', '\t', '\n', '\r', '\f', ',':
			p.i++
		default:
			return
		}
	}
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}
