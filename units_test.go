package svg2gcode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"svg2gcode/svg"
)

func TestLengthToUserUnits(t *testing.T) {
	config := DefaultConversionConfig()
	v := &visitor{config: &config}

	tests := []struct {
		in   svg.Length
		hint dimensionHint
		want float64
	}{
		{svg.Length{Number: 10, Unit: svg.UnitNone}, dimOther, 10},
		{svg.Length{Number: 10, Unit: svg.UnitPixel}, dimOther, 10},
		{svg.Length{Number: 25.4, Unit: svg.UnitMillimeter}, dimOther, 96},
		{svg.Length{Number: 2.54, Unit: svg.UnitCentimeter}, dimOther, 96},
		{svg.Length{Number: 1, Unit: svg.UnitInch}, dimOther, 96},
		{svg.Length{Number: 72, Unit: svg.UnitPoint}, dimOther, 96},
		{svg.Length{Number: 6, Unit: svg.UnitPica}, dimOther, 96},
		{svg.Length{Number: 2, Unit: svg.UnitEm}, dimOther, 32},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, v.lengthToUserUnits(tt.in, tt.hint), 1e-9, "%v", tt.in)
	}
}

func TestLengthToUserUnitsPercent(t *testing.T) {
	config := DefaultConversionConfig()
	v := &visitor{config: &config, viewports: [][2]float64{{200, 100}}}

	assert.InDelta(t, 100, v.lengthToUserUnits(svg.Length{Number: 50, Unit: svg.UnitPercent}, dimHorizontal), 1e-9)
	assert.InDelta(t, 50, v.lengthToUserUnits(svg.Length{Number: 50, Unit: svg.UnitPercent}, dimVertical), 1e-9)
}

func TestLengthToUserUnitsDPI(t *testing.T) {
	config := DefaultConversionConfig()
	config.DPI = 48
	v := &visitor{config: &config}

	// Physical lengths shrink in user units at lower DPI; pixels do not.
	assert.InDelta(t, 48, v.lengthToUserUnits(svg.Length{Number: 25.4, Unit: svg.UnitMillimeter}, dimOther), 1e-9)
	assert.InDelta(t, 10, v.lengthToUserUnits(svg.Length{Number: 10, Unit: svg.UnitPixel}, dimOther), 1e-9)
}

func TestLengthToMillimeters(t *testing.T) {
	tests := []struct {
		in   svg.Length
		want float64
	}{
		{svg.Length{Number: 10, Unit: svg.UnitMillimeter}, 10},
		{svg.Length{Number: 1, Unit: svg.UnitCentimeter}, 10},
		{svg.Length{Number: 1, Unit: svg.UnitInch}, 25.4},
		{svg.Length{Number: 72, Unit: svg.UnitPoint}, 25.4},
		{svg.Length{Number: 6, Unit: svg.UnitPica}, 25.4},
		{svg.Length{Number: 96, Unit: svg.UnitPixel}, 25.4},
		{svg.Length{Number: 96, Unit: svg.UnitNone}, 25.4},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, lengthToMillimeters(tt.in, 96), 1e-9, "%v", tt.in)
	}
}
