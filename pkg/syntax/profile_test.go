/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: profile_test.go
Description: Tests for feature profile derivation and ambiguous seed selection.
Covers flag detection, nested quantifier depth, overlapping alternation, and
the determinism guarantee of profile extraction.
*/

package syntax_test

import (
	"testing"

	"github.com/kleascm/akaylee-regex/pkg/interfaces"
	"github.com/kleascm/akaylee-regex/pkg/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustProfile(t *testing.T, pattern string) interfaces.FeatureProfile {
	t.Helper()
	tree, err := syntax.Parse(pattern)
	require.NoError(t, err, "pattern %q", pattern)
	return syntax.DeriveProfile(tree)
}

// TestDeriveProfileFlags tests single-feature flag detection
func TestDeriveProfileFlags(t *testing.T) {
	cases := []struct {
		pattern string
		check   func(p interfaces.FeatureProfile) bool
	}{
		{`(?=a)b`, func(p interfaces.FeatureProfile) bool { return p.HasLookahead }},
		{`(?!a)b`, func(p interfaces.FeatureProfile) bool { return p.HasLookahead }},
		{`(?<=a)b`, func(p interfaces.FeatureProfile) bool { return p.HasLookbehind }},
		{`(?<!a)b`, func(p interfaces.FeatureProfile) bool { return p.HasLookbehind }},
		{`(a)\1`, func(p interfaces.FeatureProfile) bool { return p.HasBackreference }},
		{`(?<w>a)\k<w>`, func(p interfaces.FeatureProfile) bool { return p.HasBackreference && p.HasNamedGroups }},
		{`(?>a+)b`, func(p interfaces.FeatureProfile) bool { return p.HasAtomicGroup }},
		{`a*+`, func(p interfaces.FeatureProfile) bool { return p.HasPossessiveQuantifier }},
		{`(?(1)a|b)`, func(p interfaces.FeatureProfile) bool { return p.HasConditional }},
		{`(?P<year>\d{4})`, func(p interfaces.FeatureProfile) bool { return p.HasNamedGroups }},
		{`\p{Lu}+`, func(p interfaces.FeatureProfile) bool { return p.HasUnicodeProperty }},
	}

	for _, tc := range cases {
		profile := mustProfile(t, tc.pattern)
		assert.True(t, tc.check(profile), "pattern %q", tc.pattern)
	}
}

// TestDeriveProfileEmpty tests that a plain pattern sets no feature flags
func TestDeriveProfileEmpty(t *testing.T) {
	for _, pattern := range []string{`abc`, `^a+b$`, `[a-z]{3}`, `a|b|c`} {
		profile := mustProfile(t, pattern)
		assert.True(t, profile.Empty(), "pattern %q should produce an empty profile", pattern)
	}
}

// TestDeriveProfileDeterministic tests that derivation is a pure function
func TestDeriveProfileDeterministic(t *testing.T) {
	pattern := `(?i)(?<name>\w+)@(?:example|test)\.(a+)+$`
	first := mustProfile(t, pattern)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, mustProfile(t, pattern))
	}
}

// TestLookbehindVariableLength tests fixed vs variable width lookbehind
func TestLookbehindVariableLength(t *testing.T) {
	fixed := mustProfile(t, `(?<=abc)x`)
	assert.True(t, fixed.HasLookbehind)
	assert.False(t, fixed.LookbehindIsVariableLength)

	alternation := mustProfile(t, `(?<=ab|cd)x`)
	assert.False(t, alternation.LookbehindIsVariableLength,
		"equal-width alternation branches are still fixed width")

	variable := mustProfile(t, `(?<=a+)x`)
	assert.True(t, variable.LookbehindIsVariableLength)

	uneven := mustProfile(t, `(?<=a|bc)x`)
	assert.True(t, uneven.LookbehindIsVariableLength)
}

// TestBackreferenceInLookaround tests the combined backreference flag
func TestBackreferenceInLookaround(t *testing.T) {
	inside := mustProfile(t, `(a)(?=\1)`)
	assert.True(t, inside.HasBackreference)
	assert.True(t, inside.HasBackrefInLookaround)

	outside := mustProfile(t, `(a)\1(?=b)`)
	assert.True(t, outside.HasBackreference)
	assert.False(t, outside.HasBackrefInLookaround)
}

// TestLookaheadNestedQuantifier tests repetition detection inside lookahead
func TestLookaheadNestedQuantifier(t *testing.T) {
	plain := mustProfile(t, `(?=abc)x`)
	assert.True(t, plain.HasLookahead)
	assert.False(t, plain.LookaheadHasNestedQuantifier)

	nested := mustProfile(t, `(?=a+)x`)
	assert.True(t, nested.LookaheadHasNestedQuantifier)
}

// TestNestedQuantifierDepth tests ambiguity depth across quantifier shapes
func TestNestedQuantifierDepth(t *testing.T) {
	cases := []struct {
		pattern string
		depth   int
	}{
		{`abc`, 0},
		{`a+`, 1},
		{`\d{4}-\d{2}-\d{2}`, 1},
		{`(a+)+`, 2},
		{`(\d+)*`, 2},
		{`((a+)+)+`, 3},
		// disjoint first sets: the outer repetition always starts at 'a',
		// the inner one at 'b', so there is no ambiguous split
		{`(ab+)+`, 1},
		{`(a?){5}`, 2},
	}

	for _, tc := range cases {
		profile := mustProfile(t, tc.pattern)
		assert.Equal(t, tc.depth, profile.NestedQuantifierDepth, "pattern %q", tc.pattern)
	}
}

// TestOverlappingAlternation tests branch first-set intersection under repetition
func TestOverlappingAlternation(t *testing.T) {
	cases := []struct {
		pattern string
		overlap bool
	}{
		{`(a|ab)+`, true},
		{`(a|aa)*`, true},
		{`(a|b)+`, false},
		{`a|ab`, false}, // no enclosing repetition
		{`(\d|[0-5])+`, true},
		{`([a-m]|[n-z])+`, false},
	}

	for _, tc := range cases {
		profile := mustProfile(t, tc.pattern)
		assert.Equal(t, tc.overlap, profile.HasOverlappingAlternation, "pattern %q", tc.pattern)
	}
}

// TestAmbiguousSeed tests adversarial seed construction for risky patterns
func TestAmbiguousSeed(t *testing.T) {
	tree, err := syntax.Parse(`(a+)+$`)
	require.NoError(t, err)

	unit, terminator, ok := syntax.AmbiguousSeed(tree)
	require.True(t, ok)
	assert.Equal(t, "a", unit)
	assert.Equal(t, "!", terminator, "terminator must fall outside the pattern's consumed set")
}

// TestAmbiguousSeedOverlap tests seeding from an overlapping alternation
func TestAmbiguousSeedOverlap(t *testing.T) {
	tree, err := syntax.Parse(`(a|aa)+$`)
	require.NoError(t, err)

	unit, terminator, ok := syntax.AmbiguousSeed(tree)
	require.True(t, ok)
	assert.Equal(t, "a", unit)
	assert.NotContains(t, []string{"a"}, terminator)
}

// TestAmbiguousSeedAbsent tests that benign patterns yield no seed
func TestAmbiguousSeedAbsent(t *testing.T) {
	for _, pattern := range []string{`abc`, `a+b`, `\d{4}-\d{2}-\d{2}`} {
		tree, err := syntax.Parse(pattern)
		require.NoError(t, err)

		_, _, ok := syntax.AmbiguousSeed(tree)
		assert.False(t, ok, "pattern %q has no ambiguous repetition", pattern)
	}
}

// TestFeatureExtractor tests the Extractor interface implementation
func TestFeatureExtractor(t *testing.T) {
	extractor := syntax.NewFeatureExtractor()

	profile, err := extractor.Extract(`(a)\1`)
	require.NoError(t, err)
	assert.True(t, profile.HasBackreference)

	_, err = extractor.Extract(`(`)
	require.Error(t, err)
}
