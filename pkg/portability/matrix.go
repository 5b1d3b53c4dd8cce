/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: matrix.go
Description: Cross-dialect portability matrix for the Akaylee Regex Analyzer. Each
target dialect is a declarative capability record - a set of feature flags it does
not support - so adding a dialect or feature is a data change, not a code change.
Verdicts test flags in a fixed order and name the first unsupported one.
*/

package portability

import (
	"fmt"
	"sort"

	"github.com/kleascm/akaylee-regex/pkg/interfaces"
)

// Registered dialect identifiers
const (
	DialectRustRegex   interfaces.DialectID = "rust_regex"
	DialectGoRegexp    interfaces.DialectID = "go_regexp"
	DialectPCRE2       interfaces.DialectID = "pcre2"
	DialectJavaScript  interfaces.DialectID = "javascript"
	DialectPythonRe    interfaces.DialectID = "python_re"
	DialectPythonRegex interfaces.DialectID = "python_regex"
	DialectJava        interfaces.DialectID = "java"
	DialectDotnet      interfaces.DialectID = "dotnet"
	DialectRuby        interfaces.DialectID = "ruby"
	DialectPosixERE    interfaces.DialectID = "posix_ere"
)

// UnknownDialectError reports a request for a dialect the matrix does not
// know. It is surfaced immediately; no partial report is returned.
type UnknownDialectError struct {
	Dialect interfaces.DialectID
}

func (e *UnknownDialectError) Error() string {
	return fmt.Sprintf("unknown dialect %q", e.Dialect)
}

// capabilityRecord is the set of feature flags a dialect cannot execute
type capabilityRecord map[interfaces.FeatureFlag]bool

func unsupported(flags ...interfaces.FeatureFlag) capabilityRecord {
	rec := make(capabilityRecord, len(flags))
	for _, f := range flags {
		rec[f] = true
	}
	return rec
}

// dialectTable is the declarative rule table: dialect → unsupported flags.
// RE2-family engines (rust_regex, go_regexp) reject every backtracking-only
// construct; PCRE2 and Python's third-party regex module accept the full
// superset; POSIX ERE predates all of it.
var dialectTable = map[interfaces.DialectID]capabilityRecord{
	DialectRustRegex: unsupported(
		interfaces.FlagLookahead,
		interfaces.FlagLookbehind,
		interfaces.FlagLookbehindVariableLength,
		interfaces.FlagBackreference,
		interfaces.FlagBackrefInLookaround,
		interfaces.FlagPossessiveQuantifier,
		interfaces.FlagAtomicGroup,
		interfaces.FlagConditional,
	),
	DialectGoRegexp: unsupported(
		interfaces.FlagLookahead,
		interfaces.FlagLookbehind,
		interfaces.FlagLookbehindVariableLength,
		interfaces.FlagBackreference,
		interfaces.FlagBackrefInLookaround,
		interfaces.FlagPossessiveQuantifier,
		interfaces.FlagAtomicGroup,
		interfaces.FlagConditional,
	),
	DialectPCRE2: unsupported(),
	DialectJavaScript: unsupported(
		interfaces.FlagLookbehindVariableLength,
		interfaces.FlagPossessiveQuantifier,
		interfaces.FlagAtomicGroup,
		interfaces.FlagConditional,
	),
	DialectPythonRe: unsupported(
		interfaces.FlagPossessiveQuantifier,
		interfaces.FlagAtomicGroup,
	),
	DialectPythonRegex: unsupported(),
	DialectJava:        unsupported(),
	DialectDotnet: unsupported(
		interfaces.FlagPossessiveQuantifier,
	),
	DialectRuby: unsupported(
		interfaces.FlagConditional,
	),
	DialectPosixERE: unsupported(
		interfaces.FlagLookahead,
		interfaces.FlagLookbehind,
		interfaces.FlagLookbehindVariableLength,
		interfaces.FlagBackreference,
		interfaces.FlagBackrefInLookaround,
		interfaces.FlagPossessiveQuantifier,
		interfaces.FlagAtomicGroup,
		interfaces.FlagConditional,
		interfaces.FlagUnicodeProperty,
		interfaces.FlagNamedGroupSyntax,
	),
}

// Dialects returns the registered dialect identifiers in sorted order
func Dialects() []interfaces.DialectID {
	ids := make([]interfaces.DialectID, 0, len(dialectTable))
	for id := range dialectTable {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Check returns a verdict for each requested dialect. A profile with every
// flag false is supported by every dialect. An unknown dialect fails the
// whole call; nothing partial is returned.
func Check(profile interfaces.FeatureProfile, dialects []interfaces.DialectID) (interfaces.PortabilityReport, error) {
	// validate first so no partial report can escape
	for _, id := range dialects {
		if _, ok := dialectTable[id]; !ok {
			return nil, &UnknownDialectError{Dialect: id}
		}
	}

	report := make(interfaces.PortabilityReport, len(dialects))
	for _, id := range dialects {
		report[id] = verdict(profile, dialectTable[id])
	}
	return report, nil
}

// CheckAll checks the profile against every registered dialect
func CheckAll(profile interfaces.FeatureProfile) interfaces.PortabilityReport {
	report, _ := Check(profile, Dialects())
	return report
}

// verdict tests flags in the fixed check order against a capability record
func verdict(profile interfaces.FeatureProfile, rec capabilityRecord) interfaces.DialectVerdict {
	for _, flag := range interfaces.FlagCheckOrder {
		if profile.Has(flag) && rec[flag] {
			return interfaces.DialectVerdict{Supported: false, Reason: flag}
		}
	}
	return interfaces.DialectVerdict{Supported: true}
}

// PortabilityMatrix is the interfaces.Matrix implementation backed by the
// declarative dialect table
type PortabilityMatrix struct{}

// NewPortabilityMatrix creates a new matrix instance
func NewPortabilityMatrix() *PortabilityMatrix {
	return &PortabilityMatrix{}
}

// Check implements interfaces.Matrix
func (m *PortabilityMatrix) Check(profile interfaces.FeatureProfile, dialects []interfaces.DialectID) (interfaces.PortabilityReport, error) {
	return Check(profile, dialects)
}
