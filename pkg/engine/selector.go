/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: selector.go
Description: Engine selection for the Akaylee Regex Analyzer. Maps a feature profile
to the matcher variant that can execute it. Pure classification - deterministic,
total, and side-effect free: every profile maps to exactly one variant.
*/

package engine

import (
	"github.com/kleascm/akaylee-regex/pkg/interfaces"
)

// Select returns the engine variant a profile requires. Backtracking is
// needed for constructs a linear-time automaton cannot express: capture
// memory (backreferences, conditionals), backtracking control (atomic
// groups, possessive quantifiers), unbounded reverse scanning
// (variable-length lookbehind), and quantifiers nested inside lookahead.
func Select(profile interfaces.FeatureProfile) interfaces.EngineVariant {
	switch {
	case profile.HasBackreference,
		profile.HasConditional,
		profile.HasAtomicGroup,
		profile.HasPossessiveQuantifier,
		profile.LookbehindIsVariableLength,
		profile.HasLookahead && profile.LookaheadHasNestedQuantifier:
		return interfaces.EngineBacktracking
	}
	return interfaces.EngineLinearTime
}

// VariantSelector is the interfaces.Selector implementation
type VariantSelector struct{}

// NewVariantSelector creates a new selector instance
func NewVariantSelector() *VariantSelector {
	return &VariantSelector{}
}

// Select implements interfaces.Selector
func (s *VariantSelector) Select(profile interfaces.FeatureProfile) interfaces.EngineVariant {
	return Select(profile)
}

// Reason returns a short description of why a profile needs backtracking,
// or an empty string for linear-time profiles.
func Reason(profile interfaces.FeatureProfile) string {
	switch {
	case profile.HasBackreference:
		return "pattern uses backreferences"
	case profile.HasConditional:
		return "pattern uses conditional groups"
	case profile.HasAtomicGroup:
		return "pattern uses atomic groups"
	case profile.HasPossessiveQuantifier:
		return "pattern uses possessive quantifiers"
	case profile.LookbehindIsVariableLength:
		return "pattern uses variable-length lookbehind"
	case profile.HasLookahead && profile.LookaheadHasNestedQuantifier:
		return "pattern uses quantifiers inside lookahead"
	}
	return ""
}
