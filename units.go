package svg2gcode

import (
	"log/slog"
	"math"

	"svg2gcode/svg"
)

// dimensionHint selects which viewport dimension resolves a percentage
// length, per https://www.w3.org/TR/SVG/coords.html#Units.
type dimensionHint uint8

const (
	dimHorizontal dimensionHint = iota
	dimVertical
	dimOther
)

func hintForAttr(attr string) dimensionHint {
	switch attr {
	case "x", "x1", "x2", "cx", "rx", "width":
		return dimHorizontal
	case "y", "y1", "y2", "cy", "ry", "height":
		return dimVertical
	default:
		return dimOther
	}
}

// lengthToUserUnits resolves a length to user units using the configured
// DPI. Physical units stay invariant when the caller changes DPI; pixels and
// unit-less numbers pass through. Font-relative units are approximated at
// 16px with a warning, as are percentages without an established viewport.
func (v *visitor) lengthToUserUnits(l svg.Length, hint dimensionHint) float64 {
	dpi := v.config.DPI
	switch l.Unit {
	case svg.UnitCentimeter:
		return l.Number / 2.54 * dpi
	case svg.UnitMillimeter:
		return l.Number / 25.4 * dpi
	case svg.UnitInch:
		return l.Number * dpi
	case svg.UnitPica:
		return l.Number / 6 * dpi
	case svg.UnitPoint:
		return l.Number / 72 * dpi
	case svg.UnitPixel, svg.UnitNone:
		return l.Number
	case svg.UnitEm, svg.UnitEx:
		slog.Warn("resolving em/ex assumes 1em/ex = 16px", "length", l.Number)
		return 16 * l.Number
	case svg.UnitPercent:
		if len(v.viewports) == 0 {
			slog.Warn("percentage length without an established viewport", "length", l.Number)
			return l.Number / 100
		}
		dims := v.viewports[len(v.viewports)-1]
		switch hint {
		case dimHorizontal:
			return l.Number / 100 * dims[0]
		case dimVertical:
			return l.Number / 100 * dims[1]
		default:
			return l.Number / 100 * math.Hypot(dims[0], dims[1]) / math.Sqrt2
		}
	default:
		return l.Number
	}
}

// lengthAttr resolves the named attribute to user units. Missing attributes
// report ok=false; malformed ones fail the conversion.
func (v *visitor) lengthAttr(n *svg.Node, attr string) (value float64, ok bool) {
	raw, present := n.Attr(attr)
	if !present {
		return 0, false
	}
	l, err := svg.ParseLength(raw)
	if err != nil {
		v.fail(wrapError(ParseError, err, "attribute %s of <%s>", attr, n.Name))
		return 0, false
	}
	return v.lengthToUserUnits(l, hintForAttr(attr)), true
}

// lengthToMillimeters converts an override dimension to millimeters for
// alignment and trim math. Pixels and unrecognized units resolve through the
// configured DPI.
func lengthToMillimeters(l svg.Length, dpi float64) float64 {
	switch l.Unit {
	case svg.UnitMillimeter:
		return l.Number
	case svg.UnitCentimeter:
		return l.Number * 10
	case svg.UnitInch:
		return l.Number * 25.4
	case svg.UnitPoint:
		return l.Number / 72 * 25.4
	case svg.UnitPica:
		return l.Number / 6 * 25.4
	default:
		return l.Number / dpi * 25.4
	}
}
