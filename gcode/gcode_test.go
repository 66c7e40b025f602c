package gcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func format(t *testing.T, program []Command, opts FormatOptions) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, Format(&sb, program, opts))
	return sb.String()
}

func TestFormatPlain(t *testing.T) {
	program := []Command{
		{Words: []Word{{'G', 21}}},
		{Words: []Word{{'G', 0}, {'X', 10}, {'Y', 2.5}}},
		{},
		{Words: []Word{{'G', 1}, {'X', 0}, {'Y', 0}, {'F', 300}}},
	}
	got := format(t, program, FormatOptions{})
	assert.Equal(t, "G21\nG0 X10 Y2.5\n\nG1 X0 Y0 F300\n", got)
}

func TestFormatLineNumbers(t *testing.T) {
	program := []Command{
		{Words: []Word{{'G', 21}}},
		{Comment: "layer start"},
		{Words: []Word{{'G', 90}}},
	}
	got := format(t, program, FormatOptions{LineNumbers: true})
	// Comment-only lines are not numbered.
	assert.Equal(t, "N0 G21\n;layer start\nN1 G90\n", got)
}

func TestFormatChecksums(t *testing.T) {
	program := []Command{{Words: []Word{{'G', 0}, {'X', 10}}}}
	got := format(t, program, FormatOptions{Checksums: true, LineNumbers: true})
	require.Equal(t, 1, strings.Count(got, "\n"))

	line := strings.TrimSuffix(got, "\n")
	body, sum, found := strings.Cut(line, "*")
	require.True(t, found)
	assert.Equal(t, "N0 G0 X10", body)
	assert.Equal(t, int(Checksum(body)), atoi(t, sum))
}

func TestFormatChecksumMatchesXOR(t *testing.T) {
	var want byte
	for _, b := range []byte("N0 G0 X10") {
		want ^= b
	}
	assert.Equal(t, want, Checksum("N0 G0 X10"))
}

func TestFormatCommentPlacement(t *testing.T) {
	program := []Command{{Words: []Word{{'G', 0}, {'X', 1}}, Comment: "rapid"}}

	assert.Equal(t, "G0 X1 ;rapid\n",
		format(t, program, FormatOptions{}))
	assert.Equal(t, ";rapid\nG0 X1\n",
		format(t, program, FormatOptions{NewlineBeforeComment: true}))
	// Checksums force the comment onto its own line so the separator stays
	// the last field.
	assert.Equal(t, ";rapid\nG0 X1*62\n",
		format(t, program, FormatOptions{Checksums: true}))
}

func TestFormatDeterministic(t *testing.T) {
	program := []Command{
		{Words: []Word{{'G', 1}, {'X', 1.0 / 3.0}, {'Y', -0.0}}},
	}
	opts := FormatOptions{Checksums: true, LineNumbers: true}
	first := format(t, program, opts)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, format(t, program, opts))
	}
	// Negative zero renders as zero.
	assert.Contains(t, first, "Y0")
}

func TestFormatRejectsBadInput(t *testing.T) {
	var sb strings.Builder
	err := Format(&sb, []Command{{Words: []Word{{'1', 0}}}}, FormatOptions{})
	assert.Error(t, err)

	err = Format(&sb, []Command{{Comment: "a\nb"}}, FormatOptions{})
	assert.Error(t, err)
}

func TestParseSnippet(t *testing.T) {
	program, err := ParseSnippet("M3 S1000\n\nG4 P0.5 ; spin up\n(done) M5")
	require.NoError(t, err)
	require.Len(t, program, 3)

	assert.Equal(t, Command{Words: []Word{{'M', 3}, {'S', 1000}}}, program[0])
	assert.Equal(t, Command{Words: []Word{{'G', 4}, {'P', 0.5}}, Comment: "spin up"}, program[1])
	assert.Equal(t, Command{Words: []Word{{'M', 5}}, Comment: "done"}, program[2])
}

func TestParseSnippetLowercase(t *testing.T) {
	program, err := ParseSnippet("g90 x-1.5")
	require.NoError(t, err)
	require.Len(t, program, 1)
	assert.Equal(t, []Word{{'G', 90}, {'X', -1.5}}, program[0].Words)
}

func TestParseSnippetErrors(t *testing.T) {
	for _, bad := range []string{
		"G",         // letter without a number
		"G1 X",      // trailing bare letter
		"(oops",     // unterminated comment
		"G1 *x",     // stray character
		"G1 X1.2.3", // malformed number
	} {
		_, err := ParseSnippet(bad)
		assert.Error(t, err, "snippet %q", bad)
	}
}

func TestCommandString(t *testing.T) {
	cmd := Command{Words: []Word{{'G', 2}, {'X', 5}, {'I', -2.5}}, Comment: "arc"}
	assert.Equal(t, "G2 X5 I-2.5 ;arc", cmd.String())
}

func atoi(t *testing.T, s string) int {
	t.Helper()
	var n int
	for i := 0; i < len(s); i++ {
		require.True(t, '0' <= s[i] && s[i] <= '9')
		n = n*10 + int(s[i]-'0')
	}
	return n
}
