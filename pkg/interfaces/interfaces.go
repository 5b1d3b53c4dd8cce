/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: interfaces.go
Description: Shared interfaces and value types for the Akaylee Regex Analyzer. Defines
the feature profile, engine variants, portability verdicts, backtracking verdicts, and
inference results used across all packages to break import cycles and enable proper
modular design.
*/

package interfaces

import (
	"time"
)

// FeatureFlag identifies a single regex capability used by portability
// checking and verdict reasons. Values are stable identifiers that appear
// verbatim in JSON output.
type FeatureFlag string

const (
	FlagLookbehindVariableLength FeatureFlag = "lookbehind_variable_length"
	FlagBackrefInLookaround      FeatureFlag = "backreference_in_lookaround"
	FlagPossessiveQuantifier     FeatureFlag = "possessive_quantifier"
	FlagAtomicGroup              FeatureFlag = "atomic_group"
	FlagConditional              FeatureFlag = "conditional"
	FlagUnicodeProperty          FeatureFlag = "unicode_property"
	FlagNamedGroupSyntax         FeatureFlag = "named_group_syntax"
	FlagLookahead                FeatureFlag = "lookahead"
	FlagLookbehind               FeatureFlag = "lookbehind"
	FlagBackreference            FeatureFlag = "backreference"
)

// FlagCheckOrder is the fixed order in which feature flags are tested against
// a dialect's capability record. The first unsupported flag that the profile
// sets becomes the verdict reason.
var FlagCheckOrder = []FeatureFlag{
	FlagLookbehindVariableLength,
	FlagBackrefInLookaround,
	FlagPossessiveQuantifier,
	FlagAtomicGroup,
	FlagConditional,
	FlagUnicodeProperty,
	FlagNamedGroupSyntax,
	FlagLookahead,
	FlagLookbehind,
	FlagBackreference,
}

// FeatureProfile is the set of capability flags and structural metrics derived
// from a parsed pattern. It is a pure function of the syntax tree: deriving it
// twice from the same tree yields identical results.
type FeatureProfile struct {
	HasLookahead               bool `json:"has_lookahead"`
	HasLookbehind              bool `json:"has_lookbehind"`
	LookbehindIsVariableLength bool `json:"lookbehind_is_variable_length"`
	HasBackreference           bool `json:"has_backreference"`
	HasBackrefInLookaround     bool `json:"has_backref_in_lookaround"`
	HasNamedGroups             bool `json:"has_named_groups"`
	HasConditional             bool `json:"has_conditional"`
	HasAtomicGroup             bool `json:"has_atomic_group"`
	HasPossessiveQuantifier    bool `json:"has_possessive_quantifier"`
	HasUnicodeProperty         bool `json:"has_unicode_property"`

	// NestedQuantifierDepth is the maximum number of quantified expressions
	// stacked inside one another with non-disjoint character sets. A lone
	// quantifier is depth 1; (a+)+ is depth 2.
	NestedQuantifierDepth int `json:"nested_quantifier_depth"`

	// HasOverlappingAlternation is true when two branches of an alternation
	// under a quantifier can match the same input, e.g. (a|ab)+.
	HasOverlappingAlternation bool `json:"has_overlapping_alternation"`

	// LookaheadHasNestedQuantifier is true when a quantifier appears inside a
	// lookahead assertion; such patterns need the backtracking engine.
	LookaheadHasNestedQuantifier bool `json:"lookahead_has_nested_quantifier"`
}

// Empty reports whether every flag is false and every metric indicates a
// plain pattern. Empty profiles are portable to every registered dialect.
func (p FeatureProfile) Empty() bool {
	return !p.HasLookahead && !p.HasLookbehind && !p.LookbehindIsVariableLength &&
		!p.HasBackreference && !p.HasBackrefInLookaround && !p.HasNamedGroups &&
		!p.HasConditional && !p.HasAtomicGroup && !p.HasPossessiveQuantifier &&
		!p.HasUnicodeProperty && p.NestedQuantifierDepth <= 1 &&
		!p.HasOverlappingAlternation && !p.LookaheadHasNestedQuantifier
}

// Has reports whether the profile sets the given feature flag.
func (p FeatureProfile) Has(flag FeatureFlag) bool {
	switch flag {
	case FlagLookbehindVariableLength:
		return p.LookbehindIsVariableLength
	case FlagBackrefInLookaround:
		return p.HasBackrefInLookaround
	case FlagPossessiveQuantifier:
		return p.HasPossessiveQuantifier
	case FlagAtomicGroup:
		return p.HasAtomicGroup
	case FlagConditional:
		return p.HasConditional
	case FlagUnicodeProperty:
		return p.HasUnicodeProperty
	case FlagNamedGroupSyntax:
		return p.HasNamedGroups
	case FlagLookahead:
		return p.HasLookahead
	case FlagLookbehind:
		return p.HasLookbehind
	case FlagBackreference:
		return p.HasBackreference
	}
	return false
}

// EngineVariant identifies which opaque matcher capability a pattern needs
type EngineVariant string

const (
	// EngineLinearTime is the RE2-family matcher with guaranteed linear-time
	// matching and no support for backtracking-only constructs.
	EngineLinearTime EngineVariant = "linear_time"

	// EngineBacktracking is the PCRE-compatible matcher that supports the
	// full feature superset at the cost of potential exponential runtime.
	EngineBacktracking EngineVariant = "backtracking"
)

// DialectID identifies a target regex dialect in the portability matrix
type DialectID string

// DialectVerdict is the portability prediction for one target dialect
type DialectVerdict struct {
	Supported bool        `json:"supported"`
	Reason    FeatureFlag `json:"reason,omitempty"` // first unsupported flag, empty when supported
}

// PortabilityReport maps each requested dialect to its verdict
type PortabilityReport map[DialectID]DialectVerdict

// BacktrackClass is the classification produced by the backtrack analyzer
type BacktrackClass string

const (
	BacktrackSafe         BacktrackClass = "safe"
	BacktrackSuspicious   BacktrackClass = "suspicious"
	BacktrackCatastrophic BacktrackClass = "catastrophic"
)

// BenchmarkSample records one dynamic probe attempt
type BenchmarkSample struct {
	InputSize int           `json:"input_size"` // adversarial input length in bytes
	Elapsed   time.Duration `json:"elapsed"`    // wall-clock time for the attempt
}

// BacktrackVerdict is the result of a full backtracking risk analysis.
// A probe that hits its time ceiling is a terminal classification, not an
// error: Aborted is set and the partial samples are attached.
type BacktrackVerdict struct {
	ID             string            `json:"id"`      // unique probe identifier
	Pattern        string            `json:"pattern"` // the analyzed pattern
	Classification BacktrackClass    `json:"classification"`
	RiskScore      int               `json:"risk_score"` // static-phase score (0 = dynamic phase skipped)
	Samples        []BenchmarkSample `json:"samples,omitempty"`
	Aborted        bool              `json:"aborted"`                    // a probe attempt exceeded its ceiling
	AbortInputSize int               `json:"abort_input_size,omitempty"` // size at which the probe was cut off
	AbortCeiling   time.Duration     `json:"abort_ceiling,omitempty"`    // ceiling that was violated
	Suggestion     string            `json:"suggestion,omitempty"`       // remediation hint for risky patterns
}

// InferredPattern is a single candidate produced by the example inferencer
type InferredPattern struct {
	Pattern    string  `json:"pattern"`
	Confidence float64 `json:"confidence"` // 0.0..1.0
	Desc       string  `json:"desc"`
}

// AnalyzerConfig carries configuration shared by the analyzer commands.
// Supports both command-line flags and configuration files.
type AnalyzerConfig struct {
	// Probe configuration
	ProbeBudget    time.Duration `json:"probe_budget"`     // total wall-clock budget for the dynamic probe
	ProbeBaseSize  int           `json:"probe_base_size"`  // smallest adversarial input size
	ProbeMaxSteps  int           `json:"probe_max_steps"`  // maximum number of doubling steps
	GrowthRatio    float64       `json:"growth_ratio"`     // per-doubling ratio treated as exponential
	SeedInput      string        `json:"seed_input"`       // caller-supplied adversarial seed (optional)
	ProbeNoiseGate time.Duration `json:"probe_noise_gate"` // samples below this are too noisy for ratio analysis

	// Logging configuration
	LogLevel string `json:"log_level"`
	LogDir   string `json:"log_dir"`
	JSONLogs bool   `json:"json_logs"`
}

// Extractor parses patterns and derives feature profiles
type Extractor interface {
	// Extract parses a raw pattern string into a feature profile
	Extract(pattern string) (FeatureProfile, error)
}

// Selector maps a feature profile to the engine variant that can execute it
type Selector interface {
	// Select returns the engine variant for the profile. Total: every
	// profile maps to exactly one variant.
	Select(profile FeatureProfile) EngineVariant
}

// Matrix predicts cross-dialect portability for a feature profile
type Matrix interface {
	// Check returns a verdict per requested dialect. Unknown dialects fail
	// with no partial report.
	Check(profile FeatureProfile, dialects []DialectID) (PortabilityReport, error)
}

// Inferencer synthesizes candidate patterns from example strings
type Inferencer interface {
	// Infer returns candidates ordered by descending confidence
	Infer(examples []string) ([]InferredPattern, error)
}
