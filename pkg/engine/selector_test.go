/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: selector_test.go
Description: Tests for engine variant selection. Verifies that every
backtracking-only construct forces the backtracking variant, that plain
patterns stay on the linear-time variant, and that selection is deterministic.
*/

package engine_test

import (
	"testing"

	"github.com/kleascm/akaylee-regex/pkg/engine"
	"github.com/kleascm/akaylee-regex/pkg/interfaces"
	"github.com/kleascm/akaylee-regex/pkg/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileFor(t *testing.T, pattern string) interfaces.FeatureProfile {
	t.Helper()
	tree, err := syntax.Parse(pattern)
	require.NoError(t, err)
	return syntax.DeriveProfile(tree)
}

// TestSelectLinearTime tests patterns that stay on the linear-time engine
func TestSelectLinearTime(t *testing.T) {
	patterns := []string{
		`abc`,
		`^a+b*c?$`,
		`\d{4}-\d{2}-\d{2}`,
		`(?<name>\w+)`,      // named groups are fine without a backreference
		`(?=abc)x`,          // plain lookahead without nested quantifiers
		`(?<=abc)x`,         // fixed-width lookbehind
		`\p{Lu}\w+`,
		`(a+)+`,             // risky for backtracking but expressible linearly
	}

	for _, pattern := range patterns {
		profile := profileFor(t, pattern)
		assert.Equal(t, interfaces.EngineLinearTime, engine.Select(profile), "pattern %q", pattern)
		assert.Empty(t, engine.Reason(profile), "linear-time selection carries no reason")
	}
}

// TestSelectBacktracking tests constructs that force the backtracking engine
func TestSelectBacktracking(t *testing.T) {
	patterns := []string{
		`(a)\1`,
		`(?<w>a)\k<w>`,
		`(?(1)a|b)`,
		`(?>a+)b`,
		`a*+`,
		`(?<=a+)x`,  // variable-length lookbehind
		`(?=a+)x`,   // lookahead containing a quantifier
	}

	for _, pattern := range patterns {
		profile := profileFor(t, pattern)
		assert.Equal(t, interfaces.EngineBacktracking, engine.Select(profile), "pattern %q", pattern)
		assert.NotEmpty(t, engine.Reason(profile), "backtracking selection must name a reason")
	}
}

// TestSelectBackreferenceInvariant tests that a backreference always wins,
// regardless of what else the profile carries
func TestSelectBackreferenceInvariant(t *testing.T) {
	base := interfaces.FeatureProfile{HasBackreference: true}
	variations := []interfaces.FeatureProfile{
		base,
		{HasBackreference: true, HasLookahead: true},
		{HasBackreference: true, HasNamedGroups: true, NestedQuantifierDepth: 3},
		{HasBackreference: true, HasBackrefInLookaround: true, HasLookbehind: true},
	}

	for _, profile := range variations {
		assert.Equal(t, interfaces.EngineBacktracking, engine.Select(profile))
	}
}

// TestSelectorInterface tests the interfaces.Selector implementation
func TestSelectorInterface(t *testing.T) {
	var s interfaces.Selector = engine.NewVariantSelector()
	assert.Equal(t, interfaces.EngineLinearTime, s.Select(interfaces.FeatureProfile{}))
	assert.Equal(t, interfaces.EngineBacktracking, s.Select(interfaces.FeatureProfile{HasConditional: true}))
}

// TestSelectDeterministic tests that selection is a pure function
func TestSelectDeterministic(t *testing.T) {
	profile := profileFor(t, `(?=a+)(?<w>b)\k<w>`)
	first := engine.Select(profile)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, engine.Select(profile))
	}
}
