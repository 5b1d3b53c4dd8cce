/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: profile.go
Description: Feature profile derivation for the Akaylee Regex Analyzer. Computes
capability flags and the structural risk metrics (nested quantifier depth,
overlapping alternation) from a syntax tree. Derivation is pure and deterministic:
the arena is scanned bottom-up (children always precede parents), and the
context-sensitive pass uses an explicit work stack instead of recursion.
*/

package syntax

import (
	"github.com/kleascm/akaylee-regex/pkg/interfaces"
)

// analysis holds the per-node facts computed bottom-up over the arena
type analysis struct {
	first    []charset // characters a subexpression can begin with
	nullable []bool    // can the subexpression match the empty string
	minW     []int     // minimum match width
	maxW     []int     // maximum match width, -1 = unbounded
}

// anyCharset is the first-set of '.', which does not match newline by default
func anyCharset() charset {
	var s charset
	s.addAll()
	s.ascii[0] &^= 1 << uint('\n')
	return s
}

// analyze computes first-sets, nullability, and widths in one bottom-up scan.
// The parser appends children before parents, so a single forward loop over
// the arena is a valid evaluation order, with no recursion and no work list.
func analyze(t *SyntaxTree) *analysis {
	n := len(t.Nodes)
	a := &analysis{
		first:    make([]charset, n),
		nullable: make([]bool, n),
		minW:     make([]int, n),
		maxW:     make([]int, n),
	}

	for i := 0; i < n; i++ {
		node := &t.Nodes[i]
		switch node.Kind {
		case KindEmpty, KindFlags:
			a.nullable[i] = true

		case KindAnchor, KindLookaround:
			// zero-width assertions consume nothing
			a.nullable[i] = true

		case KindLiteral:
			a.first[i].add(node.Rune)
			a.minW[i], a.maxW[i] = 1, 1

		case KindCharClass:
			a.first[i] = classCharset(node.Class)
			a.minW[i], a.maxW[i] = 1, 1

		case KindAnyChar:
			a.first[i] = anyCharset()
			a.minW[i], a.maxW[i] = 1, 1

		case KindUnicodeProperty:
			// approximate: ASCII letters plus everything non-ASCII
			a.first[i].addRange('a', 'z')
			a.first[i].addRange('A', 'Z')
			a.first[i].nonASCII = true
			a.minW[i], a.maxW[i] = 1, 1

		case KindBackreference:
			// width and content depend on runtime captures, stay conservative
			a.first[i].addAll()
			a.nullable[i] = true
			a.minW[i], a.maxW[i] = 0, -1

		case KindConcat:
			a.nullable[i] = true
			for _, c := range node.Children {
				if a.nullable[i] {
					a.first[i].union(a.first[c])
				}
				a.nullable[i] = a.nullable[i] && a.nullable[c]
				a.minW[i] += a.minW[c]
				if a.maxW[i] >= 0 {
					if a.maxW[c] < 0 {
						a.maxW[i] = -1
					} else {
						a.maxW[i] += a.maxW[c]
					}
				}
			}

		case KindAlternation, KindConditional:
			minSet := false
			for _, c := range node.Children {
				a.first[i].union(a.first[c])
				a.nullable[i] = a.nullable[i] || a.nullable[c]
				if !minSet || a.minW[c] < a.minW[i] {
					a.minW[i] = a.minW[c]
					minSet = true
				}
				if a.maxW[i] >= 0 {
					if a.maxW[c] < 0 {
						a.maxW[i] = -1
					} else if a.maxW[c] > a.maxW[i] {
						a.maxW[i] = a.maxW[c]
					}
				}
			}
			if node.Kind == KindConditional {
				// an unmatched condition with no else-branch matches empty
				a.nullable[i] = true
				a.minW[i] = 0
			}

		case KindGroup:
			c := node.Children[0]
			a.first[i] = a.first[c]
			a.nullable[i] = a.nullable[c]
			a.minW[i], a.maxW[i] = a.minW[c], a.maxW[c]

		case KindQuantifier:
			c := node.Children[0]
			a.first[i] = a.first[c]
			a.nullable[i] = node.Min == 0 || a.nullable[c]
			a.minW[i] = node.Min * a.minW[c]
			if node.Max < 0 || a.maxW[c] < 0 {
				a.maxW[i] = -1
			} else {
				a.maxW[i] = node.Max * a.maxW[c]
			}
		}
	}
	return a
}

// repeats reports whether a quantifier node can apply its body more than once
func repeats(n *Node) bool {
	return n.Kind == KindQuantifier && (n.Max < 0 || n.Max > 1)
}

// walkItem is one entry on the explicit DFS stack of the context pass
type walkItem struct {
	idx          int
	inLookahead  bool
	inLookbehind bool
	ancestors    []charset // first-sets of enclosing repeating quantifiers
}

// DeriveProfile computes the feature profile for a parsed tree. It is a pure
// function of the tree: repeated calls yield identical results.
func DeriveProfile(t *SyntaxTree) interfaces.FeatureProfile {
	var p interfaces.FeatureProfile
	if len(t.Nodes) == 0 {
		return p
	}
	a := analyze(t)

	// flat flags need no context; one scan over the arena suffices
	for i := range t.Nodes {
		node := &t.Nodes[i]
		switch node.Kind {
		case KindLookaround:
			if node.Behind {
				p.HasLookbehind = true
				c := node.Children[0]
				if a.minW[c] != a.maxW[c] {
					p.LookbehindIsVariableLength = true
				}
			} else {
				p.HasLookahead = true
			}
		case KindBackreference:
			p.HasBackreference = true
		case KindConditional:
			p.HasConditional = true
		case KindUnicodeProperty:
			p.HasUnicodeProperty = true
		case KindGroup:
			switch node.Group {
			case GroupNamed:
				p.HasNamedGroups = true
			case GroupAtomic:
				p.HasAtomicGroup = true
			}
		case KindQuantifier:
			if node.Mode == QuantPossessive {
				p.HasPossessiveQuantifier = true
			}
		}
	}

	// context pass: explicit DFS carrying lookaround membership and the
	// first-sets of enclosing repeating quantifiers
	stack := []walkItem{{idx: t.Root}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &t.Nodes[it.idx]

		child := it // context inherited by children unless amended below

		switch node.Kind {
		case KindLookaround:
			if node.Behind {
				child.inLookbehind = true
			} else {
				child.inLookahead = true
			}

		case KindBackreference:
			if it.inLookahead || it.inLookbehind {
				p.HasBackrefInLookaround = true
			}

		case KindQuantifier:
			if it.inLookahead {
				p.LookaheadHasNestedQuantifier = true
			}
			depth := 1
			for _, anc := range it.ancestors {
				if anc.intersects(a.first[it.idx]) {
					depth++
				}
			}
			if depth > p.NestedQuantifierDepth {
				p.NestedQuantifierDepth = depth
			}
			if repeats(node) {
				anc := make([]charset, len(it.ancestors), len(it.ancestors)+1)
				copy(anc, it.ancestors)
				child.ancestors = append(anc, a.first[it.idx])
			}

		case KindAlternation:
			if len(it.ancestors) > 0 && branchesOverlap(a, node.Children) {
				p.HasOverlappingAlternation = true
			}
		}

		for _, c := range node.Children {
			next := child
			next.idx = c
			stack = append(stack, next)
		}
	}

	return p
}

// branchesOverlap reports whether any two alternatives can start with the
// same character, which makes a repeated alternation ambiguous
func branchesOverlap(a *analysis, branches []int) bool {
	for i := 0; i < len(branches); i++ {
		for j := i + 1; j < len(branches); j++ {
			if a.first[branches[i]].intersects(a.first[branches[j]]) {
				return true
			}
		}
	}
	return false
}

// AmbiguousSeed derives an adversarial repetition unit and a terminator for
// the dynamic backtracking probe. The unit is a character the riskiest
// quantified subexpression can consume ambiguously; the terminator is a
// character the pattern can never match, forcing full backtracking. Returns
// ok == false when the tree carries no repetition risk worth probing.
func AmbiguousSeed(t *SyntaxTree) (unit string, terminator string, ok bool) {
	if len(t.Nodes) == 0 {
		return "", "", false
	}
	a := analyze(t)

	// union of every consuming leaf: any character outside it cannot match
	var all charset
	for i := range t.Nodes {
		switch t.Nodes[i].Kind {
		case KindLiteral, KindCharClass, KindAnyChar, KindUnicodeProperty:
			all.union(a.first[i])
		case KindBackreference:
			// backreference content is bounded by the other leaves
		}
	}

	// pick the body of the deepest risky quantifier as the repetition unit
	var unitSet charset
	stack := []walkItem{{idx: t.Root}}
	bestDepth := 0
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &t.Nodes[it.idx]

		child := it
		if node.Kind == KindQuantifier {
			depth := 1
			for _, anc := range it.ancestors {
				if anc.intersects(a.first[it.idx]) {
					depth++
				}
			}
			if depth > bestDepth && depth >= 2 {
				bestDepth = depth
				unitSet = a.first[it.idx]
			}
			if repeats(node) {
				anc := make([]charset, len(it.ancestors), len(it.ancestors)+1)
				copy(anc, it.ancestors)
				child.ancestors = append(anc, a.first[it.idx])
			}
		}
		if node.Kind == KindAlternation && len(it.ancestors) > 0 && branchesOverlap(a, node.Children) && bestDepth == 0 {
			bestDepth = 1
			unitSet = a.first[it.idx]
		}
		for _, c := range node.Children {
			next := child
			next.idx = c
			stack = append(stack, next)
		}
	}

	if unitSet.empty() {
		return "", "", false
	}

	unit = string(pickRune(unitSet))

	// '\n' is tried last: backtracking engines let '$' match before a final
	// newline, which would hand '$'-anchored patterns a cheap early match
	for _, cand := range []rune{'!', '#', '~', '=', ';', '\x01', '\n'} {
		if !all.contains(cand) {
			return unit, string(cand), true
		}
	}
	// pattern can start with anything; newline is still the least likely to
	// complete a match under default (non-dotall) semantics
	return unit, "\n", true
}

// pickRune selects a printable representative from a charset
func pickRune(s charset) rune {
	if s.contains('a') {
		return 'a'
	}
	for r := rune('a'); r <= 'z'; r++ {
		if s.contains(r) {
			return r
		}
	}
	for r := rune('0'); r <= '9'; r++ {
		if s.contains(r) {
			return r
		}
	}
	for r := rune(33); r < 127; r++ {
		if s.contains(r) {
			return r
		}
	}
	return 'a'
}

// FeatureExtractor is the interfaces.Extractor implementation backed by the
// pattern parser
type FeatureExtractor struct{}

// NewFeatureExtractor creates a new feature extractor instance
func NewFeatureExtractor() *FeatureExtractor {
	return &FeatureExtractor{}
}

// Extract parses a pattern and derives its feature profile
func (e *FeatureExtractor) Extract(pattern string) (interfaces.FeatureProfile, error) {
	tree, err := Parse(pattern)
	if err != nil {
		return interfaces.FeatureProfile{}, err
	}
	return DeriveProfile(tree), nil
}
