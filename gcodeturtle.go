package svg2gcode

import (
	"svg2gcode/arcfit"
	"svg2gcode/gcode"
	"svg2gcode/geom"
)

// gcodeTurtle emits the final program. It keeps the machine's modal state
// minimal: distance mode and tool state go through Machine, and the feed
// rate is written only when it changes.
type gcodeTurtle struct {
	machine  *Machine
	feedrate float64

	program []gcode.Command
	// pendingBetweenLayers defers the between-layers sequence until the
	// next tool-on. Discarded if the program ends first.
	pendingBetweenLayers bool
	lastFeed             float64
	err                  *Error
}

func newGCodeTurtle(machine *Machine, feedrate float64) *gcodeTurtle {
	return &gcodeTurtle{machine: machine, feedrate: feedrate}
}

func (t *gcodeTurtle) fail(format string, args ...any) {
	if t.err == nil {
		t.err = errorf(GeometryError, format, args...)
	}
}

func (t *gcodeTurtle) emit(cmds ...gcode.Command) {
	t.program = append(t.program, cmds...)
}

func (t *gcodeTurtle) Begin() {
	if t.err != nil {
		return
	}
	// G21: all output is in millimeters.
	t.emit(gcode.Command{Words: []gcode.Word{{Letter: 'G', Value: 21}}})
	t.emit(t.machine.Absolute()...)
	t.emit(t.machine.ProgramBegin()...)
	t.emit(t.machine.Absolute()...)
}

func (t *gcodeTurtle) End() {
	if t.err != nil {
		return
	}
	t.emit(t.machine.ToolOff()...)
	t.emit(t.machine.Absolute()...)
	t.emit(t.machine.ProgramEnd()...)
}

func (t *gcodeTurtle) Comment(comment string) {
	if t.err != nil {
		return
	}
	t.emit(gcode.Command{Comment: comment})
}

func (t *gcodeTurtle) BetweenLayers() {
	t.pendingBetweenLayers = true
}

func (t *gcodeTurtle) MoveTo(to geom.Point) {
	if t.err != nil {
		return
	}
	if !to.IsFinite() {
		t.fail("non-finite rapid target %s", to)
		return
	}
	t.toolOff()
	t.emit(gcode.Command{Words: []gcode.Word{
		{Letter: 'G', Value: 0},
		{Letter: 'X', Value: to.X},
		{Letter: 'Y', Value: to.Y},
	}})
}

func (t *gcodeTurtle) LineTo(to geom.Point) {
	if t.err != nil {
		return
	}
	if !to.IsFinite() {
		t.fail("non-finite cut target %s", to)
		return
	}
	t.toolOn()
	words := []gcode.Word{
		{Letter: 'G', Value: 1},
		{Letter: 'X', Value: to.X},
		{Letter: 'Y', Value: to.Y},
	}
	t.emit(gcode.Command{Words: t.withFeed(words)})
}

func (t *gcodeTurtle) ArcTo(arc arcfit.Segment) {
	if t.err != nil {
		return
	}
	if !t.machine.SupportedFunctionality().CircularInterpolation {
		// The consumed run is replayed as its original chords.
		for _, p := range arc.Points[1:] {
			t.LineTo(p)
		}
		return
	}
	if !arc.From.IsFinite() || !arc.To.IsFinite() || !arc.Center.IsFinite() {
		t.fail("non-finite arc through %s", arc.To)
		return
	}
	t.toolOn()
	g := 3.0
	if arc.Clockwise {
		g = 2
	}
	words := []gcode.Word{
		{Letter: 'G', Value: g},
		{Letter: 'X', Value: arc.To.X},
		{Letter: 'Y', Value: arc.To.Y},
		{Letter: 'I', Value: arc.Center.X - arc.From.X},
		{Letter: 'J', Value: arc.Center.Y - arc.From.Y},
	}
	t.emit(gcode.Command{Words: t.withFeed(words)})
}

// withFeed appends an F word when the feed rate is not already in force.
func (t *gcodeTurtle) withFeed(words []gcode.Word) []gcode.Word {
	if t.lastFeed == t.feedrate {
		return words
	}
	t.lastFeed = t.feedrate
	return append(words, gcode.Word{Letter: 'F', Value: t.feedrate})
}

func (t *gcodeTurtle) toolOn() {
	if t.pendingBetweenLayers {
		// Blank line for readability before the layer change sequence.
		t.emit(gcode.Command{})
		t.emit(t.machine.BetweenLayers()...)
		t.pendingBetweenLayers = false
	}
	t.emit(t.machine.ToolOn()...)
	t.emit(t.machine.Absolute()...)
}

func (t *gcodeTurtle) toolOff() {
	t.emit(t.machine.ToolOff()...)
	t.emit(t.machine.Absolute()...)
}
