package svg2gcode

import (
	"io"

	"svg2gcode/gcode"
)

// FormatProgram writes a converted program as G-code text, applying the
// configured decorations: XOR checksums, line numbers, and comment placement.
func FormatProgram(w io.Writer, program []gcode.Command, cfg PostprocessConfig) error {
	err := gcode.Format(w, program, gcode.FormatOptions{
		Checksums:            cfg.Checksums,
		LineNumbers:          cfg.LineNumbers,
		NewlineBeforeComment: cfg.NewlineBeforeComment,
	})
	if err != nil {
		return wrapError(FormatError, err, "formatting program")
	}
	return nil
}
