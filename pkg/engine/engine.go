/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: engine.go
Description: Opaque matcher capabilities for the Akaylee Regex Analyzer. Wraps the
two engines the analyzer treats as collaborators - the linear-time RE2-family
matcher (stdlib regexp) and the PCRE-compatible backtracking matcher (regexp2) -
behind a single compiled-pattern handle with automatic concrete-engine fallback.
*/

package engine

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/kleascm/akaylee-regex/pkg/interfaces"
)

// ErrInvariant marks a disagreement between the feature profile and the
// engine selector's rule table. It indicates a bug in the rules and must
// never be downgraded to a wrong-but-successful result.
var ErrInvariant = errors.New("engine selection invariant violation")

// CompiledPattern is a pattern bound to a concrete matcher. The variant is
// chosen once from the feature profile and is immutable afterward.
type CompiledPattern struct {
	pattern string
	variant interfaces.EngineVariant
	std     *regexp.Regexp
	fancy   *regexp2.Regexp
}

// Compile selects the engine variant for the profile and compiles the
// pattern on the corresponding concrete matcher.
//
// The linear-time capability is realized by stdlib regexp, which does not
// implement lookaround; profiles that carry lookaround but still classify as
// LinearTime fall through to the backtracking matcher as the concrete
// executor while keeping their LinearTime classification. A stdlib compile
// failure on a profile with no such feature is an ErrInvariant: the selector
// promised linear-time executability and the rule table was wrong.
func Compile(pattern string, profile interfaces.FeatureProfile) (*CompiledPattern, error) {
	variant := Select(profile)
	cp := &CompiledPattern{pattern: pattern, variant: variant}

	if variant == interfaces.EngineLinearTime && !profile.HasLookahead && !profile.HasLookbehind {
		std, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: profile classified %q as linear-time but the linear matcher rejected it: %v",
				ErrInvariant, pattern, err)
		}
		cp.std = std
		return cp, nil
	}

	fancy, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("backtracking matcher rejected pattern: %w", err)
	}
	cp.fancy = fancy
	return cp, nil
}

// CompileBacktracking compiles a pattern directly on the backtracking
// matcher with a hard per-match timeout. Used by the dynamic probe, where
// the pattern is untrusted and the timeout is the safety fence.
func CompileBacktracking(pattern string, timeout time.Duration) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("backtracking matcher rejected pattern: %w", err)
	}
	re.MatchTimeout = timeout
	return re, nil
}

// Variant returns the engine variant chosen at compile time
func (cp *CompiledPattern) Variant() interfaces.EngineVariant {
	return cp.variant
}

// Match reports whether the pattern matches anywhere in the input
func (cp *CompiledPattern) Match(input string) (bool, error) {
	if cp.std != nil {
		return cp.std.MatchString(input), nil
	}
	matched, err := cp.fancy.MatchString(input)
	if err != nil {
		return false, fmt.Errorf("backtracking match failed: %w", err)
	}
	return matched, nil
}

// Find returns the first match as a [start, end) byte range, or ok == false
func (cp *CompiledPattern) Find(input string) (start, end int, ok bool, err error) {
	if cp.std != nil {
		loc := cp.std.FindStringIndex(input)
		if loc == nil {
			return 0, 0, false, nil
		}
		return loc[0], loc[1], true, nil
	}
	m, err := cp.fancy.FindStringMatch(input)
	if err != nil {
		return 0, 0, false, fmt.Errorf("backtracking find failed: %w", err)
	}
	if m == nil {
		return 0, 0, false, nil
	}
	return m.Index, m.Index + len(m.String()), true, nil
}
