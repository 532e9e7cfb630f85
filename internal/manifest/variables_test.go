package manifest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVariables(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: []string{}},
		{name: "no braces", raw: "echo hello", want: []string{}},
		{name: "single", raw: "{TEST_VAR}1122333", want: []string{"TEST_VAR"}},
		{name: "adjacent", raw: "{A}{B}{C}", want: []string{"A", "B", "C"}},
		{name: "duplicates kept", raw: "{A} {B} {A}", want: []string{"A", "B", "A"}},
		{name: "empty name", raw: "x{}y", want: []string{""}},
		{name: "escaped open", raw: `\{A}`, want: []string{}},
		{name: "escaped close inside", raw: `{A\}B}`, want: []string{"A}B"}},
		{name: "escaped backslash outside", raw: `\\{A}`, want: []string{"A"}},
		{name: "escape outside braces dropped", raw: `\x{A}`, want: []string{"A"}},
		{name: "stray close ignored", raw: "} {A} }", want: []string{"A"}},
		{name: "nested open literal", raw: "{A{B}", want: []string{"A{B"}},
		{name: "across lines", raw: "name = \"{N}\"\n[scripts]\nstart = \"run {PORT} {HOST}\"\n", want: []string{"N", "PORT", "HOST"}},
		{name: "crlf", raw: "a = \"{X}\"\r\nb = \"{Y}\"\r\n", want: []string{"X", "Y"}},
		{name: "newline not part of name", raw: "{A\nB}", want: []string{"AB"}},
		{name: "escape does not cross line", raw: "\\\n{A}", want: []string{"A"}},
		{name: "unicode", raw: "{名字}", want: []string{"名字"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVariables(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractVariablesUnbalanced(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		line   int
		column int
	}{
		{name: "unterminated", raw: "{A", line: 1, column: 1},
		{name: "second open", raw: "{TEST_VAR{", line: 1, column: 1},
		{name: "after closed", raw: "{A} {B", line: 1, column: 5},
		{name: "later line", raw: "ok\n  {X}\n  run {Y\n", line: 3, column: 7},
		{name: "escaped close", raw: `{A\}`, line: 1, column: 1},
		{name: "column counts characters", raw: "名字{A", line: 1, column: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVariables(tt.raw)
			assert.Nil(t, got)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnbalancedBraces))

			var se *SyntaxError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.line, se.Line)
			assert.Equal(t, tt.column, se.Column)
		})
	}
}
