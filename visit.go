package svg2gcode

import (
	"math"
	"strings"

	"svg2gcode/arcfit"
	"svg2gcode/geom"
	"svg2gcode/svg"
)

// visitor walks the document tree depth-first, resolving transforms and
// viewports, normalizing shapes to path elements, and driving a Turtle with
// the flattened, arc-fitted geometry. The same visitor runs twice per
// conversion: once against a preprocessTurtle to measure the bounding box,
// then against the emitting turtle with the final placement transform.
type visitor struct {
	turtle  Turtle
	config  *ConversionConfig
	options ConversionOptions
	arcCfg  arcfit.Config

	// transforms holds cumulative affines, one entry per pushed level.
	transforms []geom.Affine
	names      []string
	// viewports holds user-unit viewport dimensions for resolving
	// percentage lengths.
	viewports [][2]float64

	// rootViewport is the outermost svg element's size in user units. It is
	// the alignment container when no trim or dimension override applies.
	rootViewport [2]float64

	err *Error
}

func newVisitor(turtle Turtle, config *ConversionConfig, options ConversionOptions, root geom.Affine, arcCfg arcfit.Config) *visitor {
	return &visitor{
		turtle:     turtle,
		config:     config,
		options:    options,
		arcCfg:     arcCfg,
		transforms: []geom.Affine{root},
	}
}

func (v *visitor) fail(err *Error) {
	if v.err == nil {
		v.err = err
	}
}

func (v *visitor) current() geom.Affine {
	return v.transforms[len(v.transforms)-1]
}

func (v *visitor) pushTransform(aff geom.Affine) {
	v.transforms = append(v.transforms, v.current().Mul(aff))
}

func (v *visitor) popTransform() {
	v.transforms = v.transforms[:len(v.transforms)-1]
}

// Visit converts the document rooted at root. The turtle's Begin and End are
// the caller's responsibility.
func (v *visitor) Visit(root *svg.Node) *Error {
	v.visitSVG(root, true)
	return v.err
}

func (v *visitor) visitNode(n *svg.Node) {
	if v.err != nil {
		return
	}
	switch n.Name {
	case "svg":
		v.visitSVG(n, false)
	case "g":
		v.visitGroup(n)
	case "path", "rect", "circle", "ellipse", "line", "polyline", "polygon":
		v.visitDrawable(n)
	default:
		// Unsupported elements (defs, text, style, ...) contribute no
		// geometry.
	}
}

func (v *visitor) visitChildren(n *svg.Node) {
	for _, c := range n.Children {
		v.visitNode(c)
		if v.err != nil {
			return
		}
	}
}

// visitSVG establishes a new viewport. Width and height resolve against the
// parent viewport; a viewBox maps its coordinate system onto that region. At
// the root, caller-supplied dimension overrides replace the document's own
// width and height.
func (v *visitor) visitSVG(n *svg.Node, root bool) {
	x, _ := v.lengthAttr(n, "x")
	y, _ := v.lengthAttr(n, "y")
	w, hasW := v.lengthAttr(n, "width")
	h, hasH := v.lengthAttr(n, "height")
	if v.err != nil {
		return
	}

	if root {
		if v.options.Width != nil {
			w, hasW = v.lengthToUserUnits(*v.options.Width, dimHorizontal), true
		}
		if v.options.Height != nil {
			h, hasH = v.lengthToUserUnits(*v.options.Height, dimVertical), true
		}
	}

	var vb *svg.ViewBox
	if raw, ok := n.Attr("viewBox"); ok {
		parsed, err := svg.ParseViewBox(raw)
		if err != nil {
			v.fail(wrapError(ParseError, err, "viewBox of <svg>"))
			return
		}
		vb = &parsed
	}

	// An unspecified dimension defaults to the viewBox extent, keeping the
	// coordinate system unscaled along that axis.
	if !hasW && vb != nil {
		w, hasW = vb.Width, true
	}
	if !hasH && vb != nil {
		h, hasH = vb.Height, true
	}

	aff := geom.Translate(geom.Vec(x, y))
	dims := [2]float64{w, h}
	if vb != nil {
		sx, sy := 1.0, 1.0
		if vb.Width > 0 {
			sx = w / vb.Width
		}
		if vb.Height > 0 {
			sy = h / vb.Height
		}
		aff = aff.Mul(geom.Scale(sx, sy)).Mul(geom.Translate(geom.Vec(-vb.MinX, -vb.MinY)))
		dims = [2]float64{vb.Width, vb.Height}
	}

	if root {
		if hasW && hasH {
			v.rootViewport = [2]float64{w, h}
		} else {
			v.rootViewport = [2]float64{1, 1}
		}
	}

	v.pushTransform(aff)
	v.viewports = append(v.viewports, dims)
	v.visitChildren(n)
	v.viewports = v.viewports[:len(v.viewports)-1]
	v.popTransform()
}

// visitGroup treats each g element as a layer: its name joins the comment
// trail for contained drawables, and leaving it schedules the between-layers
// sequence before the next cut.
func (v *visitor) visitGroup(n *svg.Node) {
	pushed, ok := v.applyTransformAttr(n)
	if !ok {
		return
	}
	v.names = append(v.names, nodeLabel(n))
	v.visitChildren(n)
	v.names = v.names[:len(v.names)-1]
	if pushed {
		v.popTransform()
	}
	v.turtle.BetweenLayers()
}

func (v *visitor) visitDrawable(n *svg.Node) {
	pushed, ok := v.applyTransformAttr(n)
	if !ok {
		return
	}
	defer func() {
		if pushed {
			v.popTransform()
		}
	}()

	elements, ok := v.shapeElements(n)
	if !ok || len(elements) == 0 {
		return
	}

	v.turtle.Comment(v.commentFor(n))
	v.emit(elements)
}

func (v *visitor) applyTransformAttr(n *svg.Node) (pushed, ok bool) {
	raw, present := n.Attr("transform")
	if !present {
		return false, true
	}
	aff, err := svg.ParseTransform(raw)
	if err != nil {
		v.fail(wrapError(ParseError, err, "transform of <%s>", n.Name))
		return false, false
	}
	v.pushTransform(aff)
	return true, true
}

func nodeLabel(n *svg.Node) string {
	if id := n.ID(); id != "" {
		return n.Name + "#" + id
	}
	return n.Name
}

func (v *visitor) commentFor(n *svg.Node) string {
	parts := append(append([]string(nil), v.names...), nodeLabel(n))
	return strings.Join(parts, " > ")
}

// emit transforms the elements into machine space, flattens them, runs arc
// detection per polyline, and replays the result on the turtle.
func (v *visitor) emit(elements []geom.PathElement) {
	aff := v.current()
	transformed := make([]geom.PathElement, len(elements))
	for i, el := range elements {
		transformed[i] = el.Transform(aff)
		if !transformed[i].IsFinite() {
			v.fail(errorf(GeometryError, "non-finite geometry after transform: %s", transformed[i]))
			return
		}
	}
	for _, pl := range geom.FlattenPath(transformed, v.config.Tolerance) {
		if len(pl.Points) < 2 {
			continue
		}
		v.turtle.MoveTo(pl.Points[0])
		for _, seg := range arcfit.Detect(pl.Points, v.arcCfg) {
			switch seg.Kind {
			case arcfit.ArcSegment:
				v.turtle.ArcTo(seg)
			default:
				v.turtle.LineTo(seg.To)
			}
		}
	}
}

// shapeElements normalizes a drawable element to path elements in its local
// coordinate system, following the equivalent-path rules of
// https://www.w3.org/TR/SVG/shapes.html.
func (v *visitor) shapeElements(n *svg.Node) ([]geom.PathElement, bool) {
	switch n.Name {
	case "path":
		d, ok := n.Attr("d")
		if !ok || d == "" {
			return nil, true
		}
		elements, err := svg.ParsePathData(d)
		if err != nil {
			v.fail(wrapError(ParseError, err, "path data of %s", nodeLabel(n)))
			return nil, false
		}
		return elements, true
	case "rect":
		return v.rectElements(n)
	case "circle":
		cx, _ := v.lengthAttr(n, "cx")
		cy, _ := v.lengthAttr(n, "cy")
		r, _ := v.lengthAttr(n, "r")
		if v.err != nil {
			return nil, false
		}
		return ellipseElements(cx, cy, r, r), true
	case "ellipse":
		cx, _ := v.lengthAttr(n, "cx")
		cy, _ := v.lengthAttr(n, "cy")
		rx, _ := v.lengthAttr(n, "rx")
		ry, _ := v.lengthAttr(n, "ry")
		if v.err != nil {
			return nil, false
		}
		return ellipseElements(cx, cy, rx, ry), true
	case "line":
		x1, _ := v.lengthAttr(n, "x1")
		y1, _ := v.lengthAttr(n, "y1")
		x2, _ := v.lengthAttr(n, "x2")
		y2, _ := v.lengthAttr(n, "y2")
		if v.err != nil {
			return nil, false
		}
		return []geom.PathElement{
			geom.MoveTo(geom.Pt(x1, y1)),
			geom.LineTo(geom.Pt(x2, y2)),
		}, true
	case "polyline":
		return v.polyElements(n, false)
	case "polygon":
		return v.polyElements(n, true)
	}
	return nil, true
}

func (v *visitor) rectElements(n *svg.Node) ([]geom.PathElement, bool) {
	x, _ := v.lengthAttr(n, "x")
	y, _ := v.lengthAttr(n, "y")
	w, _ := v.lengthAttr(n, "width")
	h, _ := v.lengthAttr(n, "height")
	rx, hasRX := v.lengthAttr(n, "rx")
	ry, hasRY := v.lengthAttr(n, "ry")
	if v.err != nil {
		return nil, false
	}
	if w <= 0 || h <= 0 {
		return nil, true
	}
	// Auto radii: a single specified radius applies to both axes; both are
	// clamped to half the rect's extent.
	if !hasRX {
		rx = ry
	}
	if !hasRY {
		ry = rx
	}
	rx = math.Min(math.Max(rx, 0), w/2)
	ry = math.Min(math.Max(ry, 0), h/2)

	if rx == 0 || ry == 0 {
		return []geom.PathElement{
			geom.MoveTo(geom.Pt(x, y)),
			geom.LineTo(geom.Pt(x+w, y)),
			geom.LineTo(geom.Pt(x+w, y+h)),
			geom.LineTo(geom.Pt(x, y+h)),
			geom.ClosePath(),
		}, true
	}
	radii := geom.Vec(rx, ry)
	arc := func(to geom.Point) geom.PathElement {
		return geom.ArcTo(to, radii, 0, false, true)
	}
	return []geom.PathElement{
		geom.MoveTo(geom.Pt(x+rx, y)),
		geom.LineTo(geom.Pt(x+w-rx, y)),
		arc(geom.Pt(x+w, y+ry)),
		geom.LineTo(geom.Pt(x+w, y+h-ry)),
		arc(geom.Pt(x+w-rx, y+h)),
		geom.LineTo(geom.Pt(x+rx, y+h)),
		arc(geom.Pt(x, y+h-ry)),
		geom.LineTo(geom.Pt(x, y+ry)),
		arc(geom.Pt(x+rx, y)),
		geom.ClosePath(),
	}, true
}

// ellipseElements builds a closed ellipse as two half arcs, since a single
// arc cannot represent a full revolution in endpoint form.
func ellipseElements(cx, cy, rx, ry float64) []geom.PathElement {
	if rx <= 0 || ry <= 0 {
		return nil
	}
	radii := geom.Vec(rx, ry)
	return []geom.PathElement{
		geom.MoveTo(geom.Pt(cx+rx, cy)),
		geom.ArcTo(geom.Pt(cx-rx, cy), radii, 0, false, true),
		geom.ArcTo(geom.Pt(cx+rx, cy), radii, 0, false, true),
		geom.ClosePath(),
	}
}

func (v *visitor) polyElements(n *svg.Node, closed bool) ([]geom.PathElement, bool) {
	raw, ok := n.Attr("points")
	if !ok {
		return nil, true
	}
	nums, err := svg.ParseNumberList(raw)
	if err != nil {
		v.fail(wrapError(ParseError, err, "points of %s", nodeLabel(n)))
		return nil, false
	}
	if len(nums)%2 != 0 {
		v.fail(errorf(ParseError, "points of %s: odd number of coordinates", nodeLabel(n)))
		return nil, false
	}
	if len(nums) < 4 {
		return nil, true
	}
	elements := make([]geom.PathElement, 0, len(nums)/2+1)
	elements = append(elements, geom.MoveTo(geom.Pt(nums[0], nums[1])))
	for i := 2; i < len(nums); i += 2 {
		elements = append(elements, geom.LineTo(geom.Pt(nums[i], nums[i+1])))
	}
	if closed {
		elements = append(elements, geom.ClosePath())
	}
	return elements, true
}
