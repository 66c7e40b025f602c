// Package gcode provides a small G-code command model, a snippet parser for
// user-supplied instruction sequences, and a deterministic text formatter
// with optional line numbers and checksums.
package gcode

import (
	"strconv"
	"strings"
)

// Word is a single field of a command: a letter and its numeric value, such
// as X10.5 or G1.
type Word struct {
	Letter byte
	Value  float64
}

func (w Word) String() string {
	return string(w.Letter) + formatValue(w.Value)
}

// Command is one instruction line: zero or more words followed by an
// optional comment. A Command with no words and no comment renders as a
// blank line.
type Command struct {
	Words   []Word
	Comment string
}

// IsEmpty reports whether the command renders as a blank line.
func (c Command) IsEmpty() bool {
	return len(c.Words) == 0 && c.Comment == ""
}

func (c Command) String() string {
	var sb strings.Builder
	for i, w := range c.Words {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(w.String())
	}
	if c.Comment != "" {
		if len(c.Words) > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(';')
		sb.WriteString(c.Comment)
	}
	return sb.String()
}

// formatValue renders a value in the shortest fixed-point form that parses
// back exactly. Negative zero normalizes to zero.
func formatValue(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
