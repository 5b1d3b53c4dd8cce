/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: inference.go
Description: Main entry point for pattern inference from example strings. Groups
examples by token shape, emits one candidate per shape group (literal positions
kept exact, varying positions generalized to character classes with fixed or
ranged quantifiers), layers in known-format templates and exact-literal
candidates, and scores everything by confidence. Candidates come back sorted
by descending confidence, deduplicated, top five kept.
*/

package inference

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/kleascm/akaylee-regex/pkg/interfaces"
)

// ErrInsufficientExamples is returned when the example set is empty. The
// inferencer never guesses from nothing.
var ErrInsufficientExamples = errors.New("at least one example is required")

// maxCandidates bounds the result list; consumers rarely want more
const maxCandidates = 5

// templateConfidenceCap keeps curated templates ranked below exact-literal
// matches, which get confidence 1.0
const templateConfidenceCap = 0.95

// rangePenaltyStep is the confidence penalty per position that needed a
// ranged quantifier instead of a fixed length
const rangePenaltyStep = 0.1

// rangePenaltyMax caps the total range-quantification penalty
const rangePenaltyMax = 0.5

// Inferencer synthesizes candidate patterns from example strings
type Inferencer struct{}

// NewInferencer creates a new example inferencer
func NewInferencer() *Inferencer {
	return &Inferencer{}
}

// Infer produces candidates from positive examples only
func (inf *Inferencer) Infer(examples []string) ([]interfaces.InferredPattern, error) {
	return inf.InferWithNegatives(examples, nil)
}

// InferWithNegatives produces candidates from positive examples, penalizing
// any candidate that also matches the optional negative examples. Candidates
// are ordered by descending confidence; a consumer may stop after the first N.
func (inf *Inferencer) InferWithNegatives(examples, negatives []string) ([]interfaces.InferredPattern, error) {
	if len(examples) == 0 {
		return nil, ErrInsufficientExamples
	}

	var candidates []interfaces.InferredPattern

	// Curated templates first: precise patterns, capped below exact-literal
	for _, t := range detectKnownFormats(examples) {
		conf := templateConfidence(t.pattern, examples, negatives)
		candidates = append(candidates, interfaces.InferredPattern{
			Pattern:    t.pattern,
			Confidence: conf,
			Desc:       t.desc,
		})
	}

	// Exact literal when every example is identical
	if allIdentical(examples) {
		candidates = append(candidates, interfaces.InferredPattern{
			Pattern:    regexp.QuoteMeta(examples[0]),
			Confidence: 1.0,
			Desc:       "Exact match (all examples identical)",
		})
	}

	// Shape groups: one candidate per distinct token shape, never merged
	for _, g := range groupByShape(examples) {
		pattern, ranged := g.synthesize()
		conf := shapeConfidence(len(g.members), len(examples), ranged, pattern, negatives)
		candidates = append(candidates, interfaces.InferredPattern{
			Pattern:    pattern,
			Confidence: conf,
			Desc:       g.describe(),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	candidates = dedupe(candidates)
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	return candidates, nil
}

// shapeGroup collects the examples sharing one token shape, column-major:
// columns[i] holds every member's text for token position i
type shapeGroup struct {
	members []string
	columns [][]string
	kinds   []tokenKind
}

// groupByShape partitions examples by shape key, preserving first-seen order
func groupByShape(examples []string) []*shapeGroup {
	groups := make(map[string]*shapeGroup)
	var order []string

	for _, e := range examples {
		tokens := tokenize(e)
		key := shapeKey(tokens)
		g, ok := groups[key]
		if !ok {
			g = &shapeGroup{
				columns: make([][]string, len(tokens)),
				kinds:   make([]tokenKind, len(tokens)),
			}
			for i, t := range tokens {
				g.kinds[i] = t.kind
			}
			groups[key] = g
			order = append(order, key)
		}
		g.members = append(g.members, e)
		for i, t := range tokens {
			g.columns[i] = append(g.columns[i], t.text)
		}
	}

	result := make([]*shapeGroup, 0, len(order))
	for _, key := range order {
		result = append(result, groups[key])
	}
	return result
}

// synthesize builds the group's candidate pattern. Positions whose literal
// value agrees across all members stay literal; positions that vary become a
// character class with a fixed {n} or ranged {m,n} quantifier. Returns the
// pattern and how many positions needed a range.
func (g *shapeGroup) synthesize() (string, int) {
	var b strings.Builder
	ranged := 0

	for i, col := range g.columns {
		if allIdentical(col) {
			b.WriteString(regexp.QuoteMeta(col[0]))
			continue
		}

		class := classPattern(g.kinds[i], col)
		minLen, maxLen := runLengths(col)
		b.WriteString(class)
		if minLen == maxLen {
			if minLen != 1 {
				fmt.Fprintf(&b, "{%d}", minLen)
			}
		} else {
			fmt.Fprintf(&b, "{%d,%d}", minLen, maxLen)
			ranged++
		}
	}
	return b.String(), ranged
}

func (g *shapeGroup) describe() string {
	if len(g.members) == 1 {
		return "Structure of 1 example"
	}
	return fmt.Sprintf("Shared structure of %d examples", len(g.members))
}

// classPattern picks the regex class for one varying token column
func classPattern(kind tokenKind, col []string) string {
	switch kind {
	case tokenDigits:
		return `\d`
	case tokenLetters:
		lower, upper := true, true
		for _, text := range col {
			for _, r := range text {
				if r < 'a' || r > 'z' {
					lower = false
				}
				if r < 'A' || r > 'Z' {
					upper = false
				}
			}
		}
		switch {
		case lower:
			return `[a-z]`
		case upper:
			return `[A-Z]`
		default:
			return `[a-zA-Z]`
		}
	case tokenPunct:
		// shape keys pin the exact punctuation character, so a varying
		// punct column cannot happen
		return regexp.QuoteMeta(col[0])
	default:
		return `\S`
	}
}

func runLengths(col []string) (min, max int) {
	min, max = len([]rune(col[0])), len([]rune(col[0]))
	for _, text := range col[1:] {
		n := len([]rune(text))
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	return min, max
}

// shapeConfidence scores a shape-group candidate: the fraction of all input
// examples in this group, discounted per ranged position, then by the
// false-positive rate against negatives
func shapeConfidence(groupSize, total, ranged int, pattern string, negatives []string) float64 {
	conf := float64(groupSize) / float64(total)

	penalty := rangePenaltyStep * float64(ranged)
	if penalty > rangePenaltyMax {
		penalty = rangePenaltyMax
	}
	conf *= 1.0 - penalty

	return conf * negativeFactor(pattern, negatives)
}

// templateConfidence scores a curated template: the fraction of examples the
// output pattern fully matches, capped, then discounted by negatives
func templateConfidence(pattern string, examples, negatives []string) float64 {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return 0.0
	}

	matched := 0
	for _, e := range examples {
		if re.MatchString(e) {
			matched++
		}
	}
	conf := float64(matched) / float64(len(examples))
	if conf > templateConfidenceCap {
		conf = templateConfidenceCap
	}
	return conf * negativeFactor(pattern, negatives)
}

// negativeFactor is 1 minus the candidate's false-positive rate on the
// negative examples
func negativeFactor(pattern string, negatives []string) float64 {
	if len(negatives) == 0 {
		return 1.0
	}
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return 1.0
	}
	falsePositives := 0
	for _, n := range negatives {
		if re.MatchString(n) {
			falsePositives++
		}
	}
	return 1.0 - float64(falsePositives)/float64(len(negatives))
}

func allIdentical(values []string) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

func dedupe(candidates []interfaces.InferredPattern) []interfaces.InferredPattern {
	seen := make(map[string]bool, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		if seen[c.Pattern] {
			continue
		}
		seen[c.Pattern] = true
		out = append(out, c)
	}
	return out
}
