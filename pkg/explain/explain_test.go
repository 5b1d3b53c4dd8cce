/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: explain_test.go
Description: Tests for pattern explanation. Covers part breakdown for every
construct kind, quantifier merging, known-format summaries, and structural
summary fallbacks.
*/

package explain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/akaylee-regex/pkg/syntax"
)

func TestExplainDigits(t *testing.T) {
	result, err := Explain(`\d+`)
	require.NoError(t, err)

	require.Len(t, result.Parts, 1)
	part := result.Parts[0]
	assert.Equal(t, `\d+`, part.Token)
	assert.Equal(t, "perl_class", part.Type)
	assert.Equal(t, "+", part.Quantifier)
	assert.Contains(t, part.Desc, "One or more")

	assert.Equal(t, "Matches one or more digits", result.Summary)
}

func TestExplainCaptureGroups(t *testing.T) {
	result, err := Explain(`(\d+)-(\d+)`)
	require.NoError(t, err)

	require.Len(t, result.Parts, 3)
	assert.Equal(t, "capturing_group", result.Parts[0].Type)
	assert.Equal(t, 1, result.Parts[0].Group)
	require.Len(t, result.Parts[0].Children, 1)
	assert.Equal(t, `\d+`, result.Parts[0].Children[0].Token)

	assert.Equal(t, "literal", result.Parts[1].Type)
	assert.Equal(t, "-", result.Parts[1].Token)

	assert.Equal(t, "capturing_group", result.Parts[2].Type)
	assert.Equal(t, 2, result.Parts[2].Group)
}

func TestExplainAlternation(t *testing.T) {
	result, err := Explain(`cat|dog`)
	require.NoError(t, err)

	require.Len(t, result.Parts, 1)
	part := result.Parts[0]
	assert.Equal(t, "alternation", part.Type)
	assert.Equal(t, "Match one of 2 alternatives", part.Desc)

	require.Len(t, part.Children, 2)
	assert.Equal(t, "branch", part.Children[0].Type)
	assert.Equal(t, "cat", part.Children[0].Token)
	assert.Len(t, part.Children[0].Children, 3)
	assert.Equal(t, "dog", part.Children[1].Token)
}

func TestExplainKnownFormatSummary(t *testing.T) {
	result, err := Explain(`\d{4}-\d{2}-\d{2}`)
	require.NoError(t, err)

	assert.Equal(t, "Matches an ISO 8601 date (YYYY-MM-DD)", result.Summary)

	require.Len(t, result.Parts, 5)
	assert.Equal(t, `\d{4}`, result.Parts[0].Token)
	assert.Equal(t, "{4}", result.Parts[0].Quantifier)
	assert.Contains(t, result.Parts[0].Desc, "Exactly 4")
}

func TestExplainAnchoredSummary(t *testing.T) {
	result, err := Explain(`^\d+$`)
	require.NoError(t, err)

	require.Len(t, result.Parts, 3)
	assert.Equal(t, "anchor", result.Parts[0].Type)
	assert.Equal(t, "^", result.Parts[0].Token)
	assert.Equal(t, "Matches one or more digits (full line match)", result.Summary)
}

func TestExplainLookahead(t *testing.T) {
	result, err := Explain(`(?=ab)c`)
	require.NoError(t, err)

	require.Len(t, result.Parts, 2)
	part := result.Parts[0]
	assert.Equal(t, "lookahead", part.Type)
	assert.Equal(t, "(?=ab)", part.Token)
	assert.Contains(t, part.Desc, "without consuming")
	assert.Len(t, part.Children, 2)
}

func TestExplainNegativeLookbehind(t *testing.T) {
	result, err := Explain(`(?<!a)b`)
	require.NoError(t, err)

	require.Len(t, result.Parts, 2)
	part := result.Parts[0]
	assert.Equal(t, "lookbehind", part.Type)
	assert.Equal(t, "(?<!a)", part.Token)
	assert.Contains(t, part.Desc, "Negative lookbehind")
}

func TestExplainAtomicGroup(t *testing.T) {
	result, err := Explain(`(?>a+)b`)
	require.NoError(t, err)

	require.Len(t, result.Parts, 2)
	part := result.Parts[0]
	assert.Equal(t, "atomic_group", part.Type)
	assert.Equal(t, "(?>a+)", part.Token)
	assert.Contains(t, part.Desc, "prevents backtracking")
}

func TestExplainNamedGroup(t *testing.T) {
	result, err := Explain(`(?P<year>\d{4})`)
	require.NoError(t, err)

	require.Len(t, result.Parts, 1)
	part := result.Parts[0]
	assert.Equal(t, "named_group", part.Type)
	assert.Equal(t, "Named capture: year", part.Desc)
	assert.Equal(t, 1, part.Group)
	assert.Equal(t, `(?<year>\d{4})`, part.Token)
}

func TestExplainBackreference(t *testing.T) {
	result, err := Explain(`(a)\1`)
	require.NoError(t, err)

	require.Len(t, result.Parts, 2)
	part := result.Parts[1]
	assert.Equal(t, "backreference", part.Type)
	assert.Equal(t, `\1`, part.Token)
	assert.Contains(t, part.Desc, "capturing group 1")
}

func TestExplainLazyQuantifier(t *testing.T) {
	result, err := Explain(`a+?`)
	require.NoError(t, err)

	require.Len(t, result.Parts, 1)
	part := result.Parts[0]
	assert.Equal(t, "a+?", part.Token)
	assert.Equal(t, "+?", part.Quantifier)
	assert.Contains(t, part.Desc, "non-greedy")
}

func TestExplainCharacterClass(t *testing.T) {
	result, err := Explain(`[a-z]+`)
	require.NoError(t, err)

	require.Len(t, result.Parts, 1)
	part := result.Parts[0]
	assert.Equal(t, "character_class", part.Type)
	assert.Equal(t, "[a-z]+", part.Token)
	assert.Contains(t, part.Desc, "Character class")
}

func TestExplainInvalidPattern(t *testing.T) {
	result, err := Explain(`(abc`)
	require.Error(t, err)
	assert.Nil(t, result)

	var perr *syntax.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, syntax.ErrUnclosedGroup, perr.Kind)
}

func TestExplainEmptyPattern(t *testing.T) {
	result, err := Explain("")
	require.NoError(t, err)

	assert.Empty(t, result.Parts)
	assert.Equal(t, "Empty pattern", result.Summary)
}
