package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{name: "plain", in: "Rename method 'foo' to 'bar'"},
		{name: "empty", in: ""},
		{name: "tab", in: "before\tafter"},
		{name: "newline", in: "line one\nline two"},
		{name: "carriage return", in: "a\r\nb"},
		{name: "backslash", in: `C:\Users\dev`},
		{name: "backslash before delimiter", in: "a\\\tb"},
		{name: "escape lookalikes", in: `literal \t and \n stay literal`},
		{name: "only delimiters", in: "\t\n\t\n"},
		{name: "unicode", in: "Déplacer la méthode « café » 移動"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			escaped := Escape(tt.in)
			assert.NotContains(t, escaped, string(DelimComponent))
			assert.NotContains(t, escaped, string(DelimEntry))

			got, err := Unescape(escaped)
			require.NoError(t, err)
			assert.Equal(t, tt.in, got)
		})
	}
}

func TestEscape_PlainTextUnchanged(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Extract interface", Escape("Extract interface"))
}

func TestUnescape_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{name: "dangling escape", in: `Rename\`},
		{name: "unknown sequence", in: `Rename\x`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Unescape(tt.in)
			require.Error(t, err)
		})
	}
}
