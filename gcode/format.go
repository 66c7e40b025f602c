package gcode

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FormatOptions controls the text rendering of a program.
type FormatOptions struct {
	// Checksums appends an XOR checksum, separated by '*', to every line
	// that contains words.
	Checksums bool
	// LineNumbers prefixes every line that contains words with an N word
	// carrying a monotonically increasing sequence number.
	LineNumbers bool
	// NewlineBeforeComment moves a command's comment onto its own line
	// preceding the command instead of trailing it.
	NewlineBeforeComment bool
}

// Format writes the program one command per line. Output is byte-for-byte
// deterministic given identical input and options.
//
// Line numbers and checksums apply only to lines containing words; blank
// lines and comment-only lines carry neither. When checksums are enabled,
// trailing comments are hoisted onto the preceding line so that the
// checksum's separator is the last field of its line.
func Format(w io.Writer, program []Command, opts FormatOptions) error {
	bw := bufio.NewWriter(w)
	lineNumber := 0
	for i, cmd := range program {
		if err := validateComment(cmd.Comment); err != nil {
			return fmt.Errorf("command %d: %w", i, err)
		}
		for _, word := range cmd.Words {
			if !isLetter(word.Letter) {
				return fmt.Errorf("command %d: invalid word letter %q", i, word.Letter)
			}
		}

		if cmd.IsEmpty() {
			bw.WriteByte('\n')
			continue
		}

		comment := cmd.Comment
		if comment != "" && len(cmd.Words) > 0 && (opts.NewlineBeforeComment || opts.Checksums) {
			bw.WriteByte(';')
			bw.WriteString(comment)
			bw.WriteByte('\n')
			comment = ""
		}

		if len(cmd.Words) == 0 {
			bw.WriteByte(';')
			bw.WriteString(comment)
			bw.WriteByte('\n')
			continue
		}

		var sb strings.Builder
		if opts.LineNumbers {
			sb.WriteByte('N')
			sb.WriteString(strconv.Itoa(lineNumber))
			lineNumber++
			sb.WriteByte(' ')
		}
		for j, word := range cmd.Words {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(word.String())
		}
		if opts.Checksums {
			sb.WriteByte('*')
			sb.WriteString(strconv.Itoa(int(Checksum(sb.String()[:sb.Len()-1]))))
		}
		if comment != "" {
			sb.WriteString(" ;")
			sb.WriteString(comment)
		}
		sb.WriteByte('\n')
		if _, err := bw.WriteString(sb.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Checksum is the XOR of all bytes of a line preceding the '*' separator.
func Checksum(line string) byte {
	var sum byte
	for i := 0; i < len(line); i++ {
		sum ^= line[i]
	}
	return sum
}

func validateComment(comment string) error {
	if strings.ContainsAny(comment, "\r\n") {
		return fmt.Errorf("comment %q contains a line break", comment)
	}
	return nil
}

func isLetter(b byte) bool {
	return 'A' <= b && b <= 'Z' || 'a' <= b && b <= 'z'
}
