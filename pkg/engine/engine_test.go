/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: engine_test.go
Description: Tests for pattern compilation and matching across both engine
variants, including the fallback path for lookaround under a linear-time
classification and the probe matcher's timeout fence.
*/

package engine_test

import (
	"strings"
	"testing"
	"time"

	"github.com/kleascm/akaylee-regex/pkg/engine"
	"github.com/kleascm/akaylee-regex/pkg/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCompileLinear tests stdlib-backed compilation and matching
func TestCompileLinear(t *testing.T) {
	profile := profileFor(t, `^a+b$`)
	cp, err := engine.Compile(`^a+b$`, profile)
	require.NoError(t, err)
	assert.Equal(t, interfaces.EngineLinearTime, cp.Variant())

	ok, err := cp.Match("aaab")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cp.Match("b")
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestCompileFind tests submatch location reporting
func TestCompileFind(t *testing.T) {
	profile := profileFor(t, `\d{4}`)
	cp, err := engine.Compile(`\d{4}`, profile)
	require.NoError(t, err)

	start, end, ok, err := cp.Find("order 2024 shipped")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2024", "order 2024 shipped"[start:end])

	_, _, ok, err = cp.Find("no digits here")
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestCompileBacktrackingVariant tests compilation of backreference patterns
func TestCompileBacktrackingVariant(t *testing.T) {
	pattern := `(a+)\1`
	profile := profileFor(t, pattern)
	cp, err := engine.Compile(pattern, profile)
	require.NoError(t, err)
	assert.Equal(t, interfaces.EngineBacktracking, cp.Variant())

	ok, err := cp.Match("aaaa")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cp.Match("a")
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestCompileLookaroundFallback tests that a lookaround pattern keeps its
// linear-time classification while matching through the fallback matcher
func TestCompileLookaroundFallback(t *testing.T) {
	pattern := `(?=ab)a`
	profile := profileFor(t, pattern)
	require.Equal(t, interfaces.EngineLinearTime, engine.Select(profile))

	cp, err := engine.Compile(pattern, profile)
	require.NoError(t, err)
	assert.Equal(t, interfaces.EngineLinearTime, cp.Variant())

	ok, err := cp.Match("ab")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cp.Match("ac")
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestCompileInvalid tests compile errors for malformed patterns
func TestCompileInvalid(t *testing.T) {
	_, err := engine.Compile(`(`, interfaces.FeatureProfile{})
	require.Error(t, err)
}

// TestCompileBacktrackingTimeout tests that the match timeout fence trips on
// an exponential pattern instead of hanging
func TestCompileBacktrackingTimeout(t *testing.T) {
	re, err := engine.CompileBacktracking(`(a+)+$`, 50*time.Millisecond)
	require.NoError(t, err)

	input := strings.Repeat("a", 64) + "!"
	begin := time.Now()
	_, err = re.MatchString(input)
	elapsed := time.Since(begin)

	require.Error(t, err, "the match must abort instead of completing")
	assert.Less(t, elapsed, 5*time.Second)
}
