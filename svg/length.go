package svg

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit is an SVG length unit. The zero value is a unit-less user-space
// length.
type Unit string

const (
	UnitNone       Unit = ""
	UnitPixel      Unit = "px"
	UnitMillimeter Unit = "mm"
	UnitCentimeter Unit = "cm"
	UnitInch       Unit = "in"
	UnitPoint      Unit = "pt"
	UnitPica       Unit = "pc"
	UnitPercent    Unit = "%"
	UnitEm         Unit = "em"
	UnitEx         Unit = "ex"
)

// Length is a number with an optional unit, as in "25.4mm" or "100%".
type Length struct {
	Number float64
	Unit   Unit
}

var units = []Unit{
	UnitPixel, UnitMillimeter, UnitCentimeter, UnitInch,
	UnitPoint, UnitPica, UnitPercent, UnitEm, UnitEx,
}

// ParseLength parses a length attribute value.
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	num := s
	unit := UnitNone
	for _, u := range units {
		if strings.HasSuffix(s, string(u)) {
			num = s[:len(s)-len(u)]
			unit = u
			break
		}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return Length{}, fmt.Errorf("malformed length %q", s)
	}
	return Length{Number: v, Unit: unit}, nil
}

// ViewBox is the viewBox attribute: the rectangle in user space mapped onto
// the viewport.
type ViewBox struct {
	MinX, MinY, Width, Height float64
}

// ParseViewBox parses a viewBox attribute value.
func ParseViewBox(s string) (ViewBox, error) {
	nums, err := ParseNumberList(s)
	if err != nil {
		return ViewBox{}, fmt.Errorf("viewBox: %w", err)
	}
	if len(nums) != 4 {
		return ViewBox{}, fmt.Errorf("viewBox: expected 4 numbers, got %d", len(nums))
	}
	if nums[2] < 0 || nums[3] < 0 {
		return ViewBox{}, fmt.Errorf("viewBox: negative size")
	}
	return ViewBox{MinX: nums[0], MinY: nums[1], Width: nums[2], Height: nums[3]}, nil
}
