package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLength(t *testing.T) {
	cases := []struct {
		in   string
		want Length
	}{
		{"10", Length{10, UnitNone}},
		{"10px", Length{10, UnitPixel}},
		{"25.4mm", Length{25.4, UnitMillimeter}},
		{"2.54cm", Length{2.54, UnitCentimeter}},
		{"1in", Length{1, UnitInch}},
		{"72pt", Length{72, UnitPoint}},
		{"6pc", Length{6, UnitPica}},
		{"50%", Length{50, UnitPercent}},
		{"2em", Length{2, UnitEm}},
		{"-3.5", Length{-3.5, UnitNone}},
		{" 10mm ", Length{10, UnitMillimeter}},
	}
	for _, c := range cases {
		got, err := ParseLength(c.in)
		require.NoError(t, err, "length %q", c.in)
		assert.Equal(t, c.want, got, "length %q", c.in)
	}
}

func TestParseLengthErrors(t *testing.T) {
	for _, bad := range []string{"", "mm", "10furlong", "1 0mm"} {
		_, err := ParseLength(bad)
		assert.Error(t, err, "length %q", bad)
	}
}

func TestParseViewBox(t *testing.T) {
	vb, err := ParseViewBox("0 0 210 297")
	require.NoError(t, err)
	assert.Equal(t, ViewBox{0, 0, 210, 297}, vb)

	vb, err = ParseViewBox("-5,-5,10,10")
	require.NoError(t, err)
	assert.Equal(t, ViewBox{-5, -5, 10, 10}, vb)
}

func TestParseViewBoxErrors(t *testing.T) {
	for _, bad := range []string{"", "0 0 10", "0 0 -1 10", "a b c d"} {
		_, err := ParseViewBox(bad)
		assert.Error(t, err, "viewBox %q", bad)
	}
}
