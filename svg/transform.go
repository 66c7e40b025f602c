package svg

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"svg2gcode/geom"
)

// ParseTransform parses an SVG transform attribute: a whitespace- or
// comma-separated list of matrix, translate, scale, rotate, skewX, and skewY
// functions, composed left to right. Angles are in degrees.
func ParseTransform(s string) (geom.Affine, error) {
	result := geom.Identity
	rest := strings.TrimSpace(s)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		if open < 0 {
			return geom.Affine{}, fmt.Errorf("transform: missing ( in %q", rest)
		}
		close_ := strings.IndexByte(rest, ')')
		if close_ < open {
			return geom.Affine{}, fmt.Errorf("transform: missing ) in %q", rest)
		}
		name := strings.TrimSpace(rest[:open])
		args, err := ParseNumberList(rest[open+1 : close_])
		if err != nil {
			return geom.Affine{}, fmt.Errorf("transform %s: %w", name, err)
		}
		aff, err := transformFunc(name, args)
		if err != nil {
			return geom.Affine{}, err
		}
		result = result.Mul(aff)
		rest = strings.TrimLeft(rest[close_+1:], " \t\n\r,")
	}
	return result, nil
}

func transformFunc(name string, args []float64) (geom.Affine, error) {
	switch name {
	case "matrix":
		if len(args) != 6 {
			return geom.Affine{}, fmt.Errorf("transform matrix: expected 6 arguments, got %d", len(args))
		}
		return geom.Affine{N0: args[0], N1: args[1], N2: args[2], N3: args[3], N4: args[4], N5: args[5]}, nil
	case "translate":
		switch len(args) {
		case 1:
			return geom.Translate(geom.Vec(args[0], 0)), nil
		case 2:
			return geom.Translate(geom.Vec(args[0], args[1])), nil
		}
	case "scale":
		switch len(args) {
		case 1:
			return geom.Scale(args[0], args[0]), nil
		case 2:
			return geom.Scale(args[0], args[1]), nil
		}
	case "rotate":
		switch len(args) {
		case 1:
			return geom.Rotate(radians(args[0])), nil
		case 3:
			return geom.RotateAbout(radians(args[0]), geom.Pt(args[1], args[2])), nil
		}
	case "skewX":
		if len(args) == 1 {
			return geom.SkewX(radians(args[0])), nil
		}
	case "skewY":
		if len(args) == 1 {
			return geom.SkewY(radians(args[0])), nil
		}
	default:
		return geom.Affine{}, fmt.Errorf("transform: unknown function %q", name)
	}
	return geom.Affine{}, fmt.Errorf("transform %s: wrong argument count %d", name, len(args))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// ParseNumberList parses a whitespace- or comma-separated list of numbers,
// the value grammar shared by transform arguments and the points attribute.
func ParseNumberList(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed number %q", f)
		}
		out = append(out, v)
	}
	return out, nil
}
