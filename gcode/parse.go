package gcode

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSnippet parses a user-supplied instruction sequence into commands,
// one command per non-blank line. A word is a letter immediately followed by
// a number. Comments are either parenthesized inline or introduced by a
// semicolon running to the end of the line.
func ParseSnippet(snippet string) ([]Command, error) {
	var program []Command
	for lineno, line := range strings.Split(snippet, "\n") {
		cmd, err := parseLine(strings.TrimRight(line, "\r"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno+1, err)
		}
		if !cmd.IsEmpty() {
			program = append(program, cmd)
		}
	}
	return program, nil
}

func parseLine(line string) (Command, error) {
	var cmd Command
	var comments []string
	i := 0
	for i < len(line) {
		switch b := line[i]; {
		case b == ' ' || b == '\t':
			i++
		case b == ';':
			comments = append(comments, strings.TrimSpace(line[i+1:]))
			i = len(line)
		case b == '(':
			end := strings.IndexByte(line[i:], ')')
			if end < 0 {
				return Command{}, fmt.Errorf("unterminated comment at column %d", i+1)
			}
			comments = append(comments, strings.TrimSpace(line[i+1:i+end]))
			i += end + 1
		case isLetter(b):
			j := i + 1
			for j < len(line) && isNumberByte(line[j]) {
				j++
			}
			value, err := strconv.ParseFloat(line[i+1:j], 64)
			if err != nil {
				return Command{}, fmt.Errorf("word %q at column %d: missing or malformed number", line[i:j], i+1)
			}
			cmd.Words = append(cmd.Words, Word{Letter: upper(b), Value: value})
			i = j
		default:
			return Command{}, fmt.Errorf("unexpected character %q at column %d", b, i+1)
		}
	}
	cmd.Comment = strings.Join(comments, "; ")
	return cmd, nil
}

func isNumberByte(b byte) bool {
	return '0' <= b && b <= '9' || b == '.' || b == '-' || b == '+'
}

func upper(b byte) byte {
	if 'a' <= b && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
