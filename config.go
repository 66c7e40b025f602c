package svg2gcode

import (
	"svg2gcode/svg"
)

// ConversionConfig is the durable configuration of a conversion: values a
// user sets once for their machine and keeps across documents.
type ConversionConfig struct {
	// Tolerance is the curve interpolation tolerance in millimeters.
	Tolerance float64
	// Feedrate for cutting moves, in millimeters per minute.
	Feedrate float64
	// DPI resolves unit-less document lengths to physical size.
	DPI float64
	// OriginX and OriginY translate the drawing's bounding box minimum to
	// this point, in millimeters. Nil leaves the axis untouched.
	OriginX, OriginY *float64
	// ArcDetection collapses nearly-circular point runs into arcs.
	ArcDetection ArcDetectionConfig
}

// ArcDetectionConfig configures the arc detector. Zero-valued fields take
// tolerance-derived defaults during validation.
type ArcDetectionConfig struct {
	Enabled bool
	// MinPoints is the smallest run an arc may replace. Default 5.
	MinPoints int
	// Tolerance is the maximum point-to-circle distance. Defaults to the
	// conversion tolerance.
	Tolerance float64
	// MinRadius rejects smaller fitted circles. Defaults to
	// tolerance/20.
	MinRadius float64
}

// DefaultConversionConfig mirrors the defaults of the command-line front
// end: 0.002 mm tolerance, 300 mm/min feed, CSS 96 DPI, origin (0, 0).
func DefaultConversionConfig() ConversionConfig {
	zero := 0.0
	return ConversionConfig{
		Tolerance: 0.002,
		Feedrate:  300,
		DPI:       96,
		OriginX:   &zero,
		OriginY:   &zero,
	}
}

// HorizontalAlign positions content horizontally within the target box.
type HorizontalAlign uint8

const (
	AlignLeft HorizontalAlign = iota
	AlignCenter
	AlignRight
)

// VerticalAlign positions content vertically within the target box. The
// default is AlignTop, matching how documents are laid out y-down.
type VerticalAlign uint8

const (
	AlignTop VerticalAlign = iota
	AlignMiddle
	AlignBottom
)

// ConversionOptions vary per document, unlike ConversionConfig.
type ConversionOptions struct {
	// Width and Height override the document's own dimensions. Useful
	// when an SVG has no width/height, or to rescale it.
	Width, Height *svg.Length
	// HAlign and VAlign position content within the viewport or target
	// dimensions. Applied only when an override dimension is present or
	// Trim is set.
	HAlign HorizontalAlign
	VAlign VerticalAlign
	// Trim scales the drawing's tight bounding box to the override
	// dimensions, preserving aspect ratio, instead of treating them as
	// viewport size.
	Trim bool
}

// PostprocessConfig selects the output text decorations applied after
// conversion.
type PostprocessConfig struct {
	Checksums            bool
	LineNumbers          bool
	NewlineBeforeComment bool
}

func (c *ConversionConfig) validate() *Error {
	if !(c.Tolerance > 0) {
		return errorf(ConfigError, "tolerance must be positive, got %v", c.Tolerance)
	}
	if !(c.Feedrate > 0) {
		return errorf(ConfigError, "feedrate must be positive, got %v", c.Feedrate)
	}
	if !(c.DPI > 0) {
		return errorf(ConfigError, "dpi must be positive, got %v", c.DPI)
	}
	if a := c.ArcDetection; a.MinPoints < 0 || a.Tolerance < 0 || a.MinRadius < 0 {
		return errorf(ConfigError, "arc detection values must not be negative")
	}
	return nil
}

// arcConfig resolves arc detection defaults against the conversion
// tolerance.
func (c *ConversionConfig) arcConfig() ArcDetectionConfig {
	a := c.ArcDetection
	if a.MinPoints == 0 {
		a.MinPoints = 5
	}
	if a.Tolerance == 0 {
		a.Tolerance = c.Tolerance
	}
	if a.MinRadius == 0 {
		a.MinRadius = a.Tolerance * 0.05
	}
	return a
}
