package svg2gcode

import (
	"math"

	"svg2gcode/arcfit"
	"svg2gcode/gcode"
	"svg2gcode/geom"
	"svg2gcode/svg"
)

// Convert turns a parsed SVG document into a G-code program for the given
// machine. The document is traversed twice: a measuring pass establishes the
// drawing's bounding box in machine coordinates, then the placement transform
// derived from config and options is applied during the emitting pass. The
// returned program is deterministic for identical inputs.
func Convert(doc *svg.Document, config ConversionConfig, options ConversionOptions, machine *Machine) ([]gcode.Command, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	if machine == nil {
		return nil, errorf(ConfigError, "machine must not be nil")
	}
	machine.reset()

	arcCfg := arcfit.Config(config.arcConfig())

	// Document space is y-down user units; machine space is y-up
	// millimeters. The flip and the physical scale sit below every other
	// transform so that tolerances apply in millimeters.
	mmScale := 25.4 / config.DPI
	base := geom.Scale(mmScale, mmScale).Mul(geom.FlipY)

	// Measuring pass. Arc detection is irrelevant to the bounding box.
	pre := &preprocessTurtle{}
	measure := newVisitor(pre, &config, options, base, arcfit.Config{})
	if err := measure.Visit(doc.Root); err != nil {
		return nil, err
	}

	placement := placementTransform(&config, options, measure, pre)

	turtle := newGCodeTurtle(machine, config.Feedrate)
	turtle.Begin()
	emit := newVisitor(turtle, &config, options, placement.Mul(base), arcCfg)
	if err := emit.Visit(doc.Root); err != nil {
		return nil, err
	}
	turtle.End()
	if turtle.err != nil {
		return nil, turtle.err
	}
	return turtle.program, nil
}

// placementTransform builds the affine that positions the measured drawing:
// an optional trim-to-dimensions scale, alignment within the target box, and
// the legacy origin translation.
func placementTransform(config *ConversionConfig, options ConversionOptions, measure *visitor, pre *preprocessTurtle) geom.Affine {
	if !pre.hasBBox {
		return geom.Identity
	}
	bbox := pre.bbox
	bw, bh := bbox.Width(), bbox.Height()

	var widthMM, heightMM *float64
	if options.Width != nil {
		v := lengthToMillimeters(*options.Width, config.DPI)
		widthMM = &v
	}
	if options.Height != nil {
		v := lengthToMillimeters(*options.Height, config.DPI)
		heightMM = &v
	}
	alignRequested := widthMM != nil || heightMM != nil || options.Trim

	post := geom.Identity
	if alignRequested {
		scale := 1.0
		if options.Trim {
			switch {
			case widthMM != nil && heightMM != nil && bw > 0 && bh > 0:
				scale = math.Min(*widthMM/bw, *heightMM/bh)
			case widthMM != nil && bw > 0:
				scale = *widthMM / bw
			case heightMM != nil && bh > 0:
				scale = *heightMM / bh
			}
		}

		// The container the content is aligned within: the target box when
		// trimming, the document viewport otherwise.
		var cw, ch float64
		if options.Trim {
			cw, ch = bw*scale, bh*scale
			if widthMM != nil {
				cw = *widthMM
			}
			if heightMM != nil {
				ch = *heightMM
			}
		} else {
			mmScale := 25.4 / config.DPI
			cw = measure.rootViewport[0] * mmScale
			ch = measure.rootViewport[1] * mmScale
		}

		w, h := bw*scale, bh*scale
		x0, y0 := bbox.X0*scale, bbox.Y0*scale

		var dx, dy float64
		switch options.HAlign {
		case AlignCenter:
			dx = (cw-w)/2 - x0
		case AlignRight:
			dx = (cw - w) - x0
		default:
			dx = -x0
		}
		switch options.VAlign {
		case AlignMiddle:
			dy = (ch-h)/2 - y0
		case AlignBottom:
			dy = -y0
		default:
			// Top-aligned content sits at the top of a y-up container.
			dy = (ch - h) - y0
		}
		post = geom.Translate(geom.Vec(dx, dy)).Mul(geom.Scale(scale, scale))
	}

	// The origin translation predates dimension fitting. It keeps working
	// when no fit is requested, and a non-default origin still applies on
	// top of one.
	originSet := (config.OriginX != nil && *config.OriginX != 0) ||
		(config.OriginY != nil && *config.OriginY != 0)
	applyOrigin := !alignRequested || originSet
	if applyOrigin && (config.OriginX != nil || config.OriginY != nil) {
		var ox, oy float64
		if config.OriginX != nil {
			ox = *config.OriginX - bbox.X0
		}
		if config.OriginY != nil {
			oy = *config.OriginY - bbox.Y0
		}
		return geom.Translate(geom.Vec(ox, oy)).Mul(post)
	}
	return post
}
