package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svg2gcode/geom"
)

func applyTransform(t *testing.T, s string, p geom.Point) geom.Point {
	t.Helper()
	aff, err := ParseTransform(s)
	require.NoError(t, err)
	return p.Transform(aff)
}

func TestParseTransformSingle(t *testing.T) {
	assert.Equal(t, geom.Pt(4, 6), applyTransform(t, "translate(3, 4)", geom.Pt(1, 2)))
	assert.Equal(t, geom.Pt(4, 2), applyTransform(t, "translate(3)", geom.Pt(1, 2)))
	assert.Equal(t, geom.Pt(2, 4), applyTransform(t, "scale(2)", geom.Pt(1, 2)))
	assert.Equal(t, geom.Pt(2, 6), applyTransform(t, "scale(2 3)", geom.Pt(1, 2)))

	got := applyTransform(t, "rotate(90)", geom.Pt(1, 0))
	assert.InDelta(t, 0, got.X, 1e-12)
	assert.InDelta(t, 1, got.Y, 1e-12)

	got = applyTransform(t, "rotate(90 1 1)", geom.Pt(1, 0))
	assert.InDelta(t, 2, got.X, 1e-12)
	assert.InDelta(t, 1, got.Y, 1e-12)

	got = applyTransform(t, "skewX(45)", geom.Pt(0, 1))
	assert.InDelta(t, 1, got.X, 1e-12)
	assert.InDelta(t, 1, got.Y, 1e-12)
}

func TestParseTransformMatrix(t *testing.T) {
	aff, err := ParseTransform("matrix(1 2 3 4 5 6)")
	require.NoError(t, err)
	assert.Equal(t, geom.Affine{N0: 1, N1: 2, N2: 3, N3: 4, N4: 5, N5: 6}, aff)
}

func TestParseTransformList(t *testing.T) {
	// A list composes left to right: the first function is applied last to
	// coordinates, matching nested groups.
	got := applyTransform(t, "translate(10,0) scale(2)", geom.Pt(1, 1))
	assert.Equal(t, geom.Pt(12, 2), got)

	got = applyTransform(t, "scale(2), translate(10 0)", geom.Pt(1, 1))
	assert.Equal(t, geom.Pt(22, 2), got)
}

func TestParseTransformEmpty(t *testing.T) {
	aff, err := ParseTransform("")
	require.NoError(t, err)
	assert.Equal(t, geom.Identity, aff)
}

func TestParseTransformErrors(t *testing.T) {
	for _, bad := range []string{
		"translate",
		"translate(1",
		"translate(1 2 3)",
		"frobnicate(1)",
		"matrix(1 2 3)",
		"rotate(90 1)",
		"scale(a)",
	} {
		_, err := ParseTransform(bad)
		assert.Error(t, err, "transform %q", bad)
	}
}

func TestParseTransformRotationComposition(t *testing.T) {
	aff, err := ParseTransform("rotate(30) rotate(60)")
	require.NoError(t, err)
	got := geom.Pt(1, 0).Transform(aff)
	assert.InDelta(t, 0, got.X, 1e-12)
	assert.InDelta(t, 1, got.Y, 1e-12)
}
