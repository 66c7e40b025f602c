package svg2gcode

import (
	"svg2gcode/gcode"
)

// SupportedFunctionality describes what the target machine can execute
// beyond straight-line moves.
type SupportedFunctionality struct {
	// CircularInterpolation enables G2/G3 arc output. Without it,
	// detected arcs are emitted as their constituent line segments.
	CircularInterpolation bool
}

// MachineConfig holds the target machine's capabilities and its user-defined
// instruction snippets as raw text. Empty snippets are valid and simply emit
// nothing.
type MachineConfig struct {
	SupportedFunctionality
	// ToolOnSequence runs when the tool engages (e.g. "M3 S1000").
	ToolOnSequence string
	// ToolOffSequence runs when the tool disengages.
	ToolOffSequence string
	// BeginSequence runs once at the start of the program.
	BeginSequence string
	// EndSequence runs once at the end of the program.
	EndSequence string
	// BetweenLayersSequence runs between layer groups, deferred until
	// just before the next tool-on.
	BetweenLayersSequence string
}

type toolState uint8

const (
	toolUnknown toolState = iota
	toolOff
	toolOn
)

type distanceMode uint8

const (
	distanceUnknown distanceMode = iota
	distanceAbsolute
	distanceRelative
)

// Machine tracks the modal state of the target machine so redundant state
// changes are never emitted. One Machine drives one conversion at a time;
// Convert resets it on entry.
type Machine struct {
	functionality SupportedFunctionality

	toolOnSeq        []gcode.Command
	toolOffSeq       []gcode.Command
	beginSeq         []gcode.Command
	endSeq           []gcode.Command
	betweenLayersSeq []gcode.Command

	tool toolState
	mode distanceMode
}

// NewMachine parses the config's snippets and builds a machine. Malformed
// snippet text is a ConfigError.
func NewMachine(cfg MachineConfig) (*Machine, error) {
	m := &Machine{functionality: cfg.SupportedFunctionality}
	for _, s := range []struct {
		name string
		text string
		dst  *[]gcode.Command
	}{
		{"tool-on", cfg.ToolOnSequence, &m.toolOnSeq},
		{"tool-off", cfg.ToolOffSequence, &m.toolOffSeq},
		{"begin", cfg.BeginSequence, &m.beginSeq},
		{"end", cfg.EndSequence, &m.endSeq},
		{"between-layers", cfg.BetweenLayersSequence, &m.betweenLayersSeq},
	} {
		seq, err := gcode.ParseSnippet(s.text)
		if err != nil {
			return nil, wrapError(ConfigError, err, "invalid %s sequence", s.name)
		}
		*s.dst = seq
	}
	return m, nil
}

// SupportedFunctionality reports the machine's capabilities.
func (m *Machine) SupportedFunctionality() SupportedFunctionality {
	return m.functionality
}

// reset clears modal state at the start of a conversion.
func (m *Machine) reset() {
	m.tool = toolUnknown
	m.mode = distanceUnknown
}

// ToolOn returns the tool-on sequence when the tool is not already on.
func (m *Machine) ToolOn() []gcode.Command {
	if m.tool == toolOn {
		return nil
	}
	m.tool = toolOn
	return m.scan(m.toolOnSeq)
}

// ToolOff returns the tool-off sequence when the tool is not already off.
func (m *Machine) ToolOff() []gcode.Command {
	if m.tool == toolOff {
		return nil
	}
	m.tool = toolOff
	return m.scan(m.toolOffSeq)
}

// Absolute returns a G90 unless absolute distance mode is already in force.
func (m *Machine) Absolute() []gcode.Command {
	if m.mode == distanceAbsolute {
		return nil
	}
	m.mode = distanceAbsolute
	return []gcode.Command{{Words: []gcode.Word{{Letter: 'G', Value: 90}}}}
}

// Relative returns a G91 unless relative distance mode is already in force.
func (m *Machine) Relative() []gcode.Command {
	if m.mode == distanceRelative {
		return nil
	}
	m.mode = distanceRelative
	return []gcode.Command{{Words: []gcode.Word{{Letter: 'G', Value: 91}}}}
}

// ProgramBegin returns the user's begin sequence.
func (m *Machine) ProgramBegin() []gcode.Command {
	return m.scan(m.beginSeq)
}

// ProgramEnd returns the user's end sequence.
func (m *Machine) ProgramEnd() []gcode.Command {
	return m.scan(m.endSeq)
}

// BetweenLayers returns the user's between-layers sequence.
func (m *Machine) BetweenLayers() []gcode.Command {
	return m.scan(m.betweenLayersSeq)
}

// scan tracks distance-mode words inside a user sequence so that a snippet
// switching to G91 and back does not defeat modal suppression.
func (m *Machine) scan(seq []gcode.Command) []gcode.Command {
	for _, cmd := range seq {
		for _, w := range cmd.Words {
			if w.Letter != 'G' {
				continue
			}
			switch w.Value {
			case 90:
				m.mode = distanceAbsolute
			case 91:
				m.mode = distanceRelative
			}
		}
	}
	return seq
}
