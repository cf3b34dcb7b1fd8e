package textsplit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBracketed(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		text     string
		delim    byte
		opts     []Option
		expected []string
	}{
		{
			name:     "plain split",
			text:     "a,b,c",
			delim:    ',',
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "delimiter inside parens is kept",
			text:     "abc,(def,ghi),jkl",
			delim:    ',',
			expected: []string{"abc", "(def,ghi)", "jkl"},
		},
		{
			name:     "strip brackets removes a whole-segment pair",
			text:     "abc,(def,ghi),jkl",
			delim:    ',',
			opts:     []Option{WithStripBrackets()},
			expected: []string{"abc", "def,ghi", "jkl"},
		},
		{
			name:     "strip brackets leaves a partial pair alone",
			text:     "x(def,ghi),jkl",
			delim:    ',',
			opts:     []Option{WithStripBrackets()},
			expected: []string{"x(def,ghi)", "jkl"},
		},
		{
			name:     "strip brackets leaves adjoining pairs alone",
			text:     "(a)(b),c",
			delim:    ',',
			opts:     []Option{WithStripBrackets()},
			expected: []string{"(a)(b)", "c"},
		},
		{
			name:     "mixed bracket kinds",
			text:     "a,[b,{c,d},e],<f,g>",
			delim:    ',',
			expected: []string{"a", "[b,{c,d},e]", "<f,g>"},
		},
		{
			name:     "max splits keeps later delimiters literal",
			text:     "k:v:w",
			delim:    ':',
			opts:     []Option{WithMaxSplits(1)},
			expected: []string{"k", "v:w"},
		},
		{
			name:     "empty input yields one empty segment",
			text:     "",
			delim:    ',',
			expected: []string{""},
		},
		{
			name:     "trailing delimiter yields empty final segment",
			text:     "a,",
			delim:    ',',
			expected: []string{"a", ""},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Bracketed(tc.text, tc.delim, tc.opts...)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestBracketed_StructureErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		text string
	}{
		{name: "mismatched closer", text: "abc,(def,ghi]"},
		{name: "unclosed opener", text: "abc,(def"},
		{name: "closer without opener", text: "abc)def"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Bracketed(tc.text, ',')
			require.Error(t, err)
			var structErr *StructureError
			require.ErrorAs(t, err, &structErr)
			assert.Equal(t, tc.text, structErr.Text)
		})
	}
}

func TestBracketed_IsRestartable(t *testing.T) {
	t.Parallel()

	first, err := Bracketed("a,(b,c)", ',', WithStripBrackets())
	require.NoError(t, err)
	second, err := Bracketed("a,(b,c)", ',', WithStripBrackets())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestIndent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".   a\n.   b", Indent("a\nb", ".   "))
	assert.Equal(t, ".   a\n", Indent("a\n", ".   "))
	assert.Equal(t, "", Indent("", ".   "))
}
