/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: parser_test.go
Description: Comprehensive tests for the pattern parser. Tests valid pattern
acceptance, syntax error positions and kinds, fix suggestions, and the group,
quantifier, and escape forms the analyzer recognizes.
*/

package syntax_test

import (
	"errors"
	"testing"

	"github.com/kleascm/akaylee-regex/pkg/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseValidPatterns tests that common patterns parse cleanly
func TestParseValidPatterns(t *testing.T) {
	patterns := []string{
		``,
		`abc`,
		`a|b|c`,
		`a+b*c?`,
		`a{3}b{2,}c{1,4}`,
		`a*?b+?c??`,
		`a*+b++`,
		`(abc)(def)`,
		`(?:abc)`,
		`(?i)abc`,
		`(?i:abc)`,
		`(?=abc)x`,
		`(?!abc)x`,
		`(?<=abc)x`,
		`(?<!abc)x`,
		`(?>a+)b`,
		`(?<year>\d{4})`,
		`(?P<year>\d{4})`,
		`(a)\1`,
		`(?<w>a)\k<w>`,
		`(?(1)a|b)`,
		`[abc]`,
		`[^abc]`,
		`[a-z0-9_]`,
		`[]a]`,
		`[\d\s]`,
		`[[:alpha:][:digit:]]`,
		`\d\D\w\W\s\S`,
		`\b\B\A\z\Z`,
		`\p{Lu}\P{Greek}\pL`,
		`\n\t\x41é`,
		`\.\*\(\)\[\]`,
		`^abc$`,
		`a{x`,
		`{abc}`,
		`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`,
	}

	for _, pattern := range patterns {
		tree, err := syntax.Parse(pattern)
		require.NoError(t, err, "pattern %q should parse", pattern)
		require.NotNil(t, tree)
		assert.Equal(t, pattern, tree.Pattern)
	}
}

// TestParseErrors tests error kinds and positions for malformed patterns
func TestParseErrors(t *testing.T) {
	cases := []struct {
		pattern  string
		kind     string
		position int
	}{
		{`(abc`, syntax.ErrUnclosedGroup, 0},
		{`a(b(c)`, syntax.ErrUnclosedGroup, 1},
		{`abc)`, syntax.ErrUnopenedGroup, 3},
		{`[abc`, syntax.ErrUnclosedClass, 0},
		{`ab\`, syntax.ErrIncompleteEscape, 2},
		{`\q`, syntax.ErrUnknownEscape, 0},
		{`*a`, syntax.ErrMissingRepetition, 0},
		{`^*`, syntax.ErrMissingRepetition, 1},
		{`a**`, syntax.ErrInvalidQuantifier, 2},
		{`a{2,1}`, syntax.ErrInvalidQuantifier, 1},
		{`a{3`, syntax.ErrUnclosedRepetition, 1},
		{`(?<`, syntax.ErrUnclosedGroup, 0},
		{`(?`, syntax.ErrUnclosedGroup, 0},
	}

	for _, tc := range cases {
		_, err := syntax.Parse(tc.pattern)
		require.Error(t, err, "pattern %q should fail", tc.pattern)

		var perr *syntax.ParseError
		require.True(t, errors.As(err, &perr), "pattern %q should yield a ParseError", tc.pattern)
		assert.Equal(t, tc.kind, perr.Kind, "pattern %q", tc.pattern)
		assert.Equal(t, tc.position, perr.Position, "pattern %q", tc.pattern)
	}
}

// TestParseErrorSuggestions tests that every surfaced error carries a fix hint
func TestParseErrorSuggestions(t *testing.T) {
	for _, pattern := range []string{`(abc`, `[abc`, `\q`, `*a`, `a{3`} {
		_, err := syntax.Parse(pattern)
		require.Error(t, err)

		var perr *syntax.ParseError
		require.True(t, errors.As(err, &perr))
		assert.NotEmpty(t, perr.Suggestion, "pattern %q should carry a suggestion", pattern)
		assert.NotEmpty(t, perr.Error())
	}
}

// TestParseLiteralBrace tests that a brace without digits is an ordinary literal
func TestParseLiteralBrace(t *testing.T) {
	tree, err := syntax.Parse(`a{x}`)
	require.NoError(t, err)

	found := false
	for _, n := range tree.Nodes {
		if n.Kind == syntax.KindLiteral && n.Rune == '{' {
			found = true
		}
	}
	assert.True(t, found, "brace should survive as a literal node")
}

// TestParseDeepNesting tests that deep group nesting cannot exhaust the stack
func TestParseDeepNesting(t *testing.T) {
	depth := 10000
	pattern := ""
	for i := 0; i < depth; i++ {
		pattern += "("
	}
	pattern += "a"
	for i := 0; i < depth; i++ {
		pattern += ")"
	}

	tree, err := syntax.Parse(pattern)
	require.NoError(t, err)
	require.NotNil(t, tree)
}

// TestParseQuantifierModes tests greedy, lazy, and possessive parsing
func TestParseQuantifierModes(t *testing.T) {
	tree, err := syntax.Parse(`a+b+?c++`)
	require.NoError(t, err)

	modes := []syntax.QuantifierMode{}
	for _, n := range tree.Nodes {
		if n.Kind == syntax.KindQuantifier {
			modes = append(modes, n.Mode)
		}
	}
	assert.Contains(t, modes, syntax.QuantGreedy)
	assert.Contains(t, modes, syntax.QuantLazy)
	assert.Contains(t, modes, syntax.QuantPossessive)
}

// TestParseCaptureNumbering tests that capture indices count opening parens
func TestParseCaptureNumbering(t *testing.T) {
	tree, err := syntax.Parse(`(a)(?:b)(?<n>c)(d)`)
	require.NoError(t, err)

	max := 0
	for _, n := range tree.Nodes {
		if n.Kind == syntax.KindGroup && n.CaptureIdx > max {
			max = n.CaptureIdx
		}
	}
	assert.Equal(t, 3, max, "non-capturing group must not consume an index")
}
