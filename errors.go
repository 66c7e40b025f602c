package svg2gcode

import "fmt"

// Kind classifies conversion failures.
type Kind uint8

const (
	// ParseError marks a malformed input document or an unsupported
	// construct in it.
	ParseError Kind = iota
	// ConfigError marks an invalid configuration value or snippet.
	ConfigError
	// GeometryError marks non-finite coordinates or a degenerate
	// geometric computation.
	GeometryError
	// FormatError marks a postprocessing invariant violation.
	FormatError
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "parse error"
	case ConfigError:
		return "config error"
	case GeometryError:
		return "geometry error"
	case FormatError:
		return "format error"
	default:
		return "unknown error"
	}
}

// Error is the single error type surfaced by a conversion. Every failure is
// fatal to its conversion; no partial output accompanies one.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error {
	return e.err
}

func errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...), err: err}
}
