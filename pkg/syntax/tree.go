/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: tree.go
Description: Syntax tree model for the Akaylee Regex Analyzer. Nodes live in a flat
arena and reference children by index, which keeps traversal iterative and bounds
stack usage on deeply nested patterns. The tree is a descriptive model of a regex
superset - it is built once per pattern and read-only afterward.
*/

package syntax

// NodeKind identifies the syntactic construct a node represents
type NodeKind int

const (
	KindEmpty NodeKind = iota
	KindLiteral
	KindCharClass
	KindAnyChar
	KindConcat
	KindAlternation
	KindGroup
	KindQuantifier
	KindAnchor
	KindLookaround
	KindBackreference
	KindConditional
	KindUnicodeProperty
	KindFlags
)

// GroupKind distinguishes the group forms the parser understands
type GroupKind int

const (
	GroupCapturing GroupKind = iota
	GroupNamed
	GroupNonCapturing
	GroupAtomic
)

// QuantifierMode is the backtracking behavior of a quantifier
type QuantifierMode int

const (
	QuantGreedy QuantifierMode = iota
	QuantLazy
	QuantPossessive
)

// AnchorKind identifies zero-width position assertions
type AnchorKind int

const (
	AnchorStart AnchorKind = iota
	AnchorEnd
	AnchorWordBoundary
	AnchorNotWordBoundary
)

// PerlClass is a shorthand character class inside or outside brackets
type PerlClass byte

const (
	PerlDigit PerlClass = iota
	PerlNotDigit
	PerlWord
	PerlNotWord
	PerlSpace
	PerlNotSpace
)

// RuneRange is an inclusive range of runes inside a character class
type RuneRange struct {
	Lo, Hi rune
}

// CharClass is the parsed form of a bracketed class or a Perl shorthand
type CharClass struct {
	Negated bool
	Ranges  []RuneRange
	Perl    []PerlClass
	Posix   []string // POSIX class names, e.g. "alpha"
}

// Node is a single syntax tree node. Only the fields relevant to its Kind are
// populated; Children holds arena indices. The parser appends children before
// parents, so arena order is a valid bottom-up evaluation order.
type Node struct {
	Kind     NodeKind
	Children []int

	// KindLiteral
	Rune rune

	// KindCharClass
	Class *CharClass

	// KindGroup
	Group      GroupKind
	Name       string // named group
	CaptureIdx int    // 1-based capture index, 0 for non-capturing/atomic

	// KindQuantifier: Min..Max repetitions, Max == -1 means unbounded
	Min, Max int
	Mode     QuantifierMode

	// KindAnchor
	Anchor AnchorKind

	// KindLookaround
	Behind  bool
	Negated bool // also set for \P{...} on KindUnicodeProperty

	// KindBackreference / KindConditional condition
	Ref     int
	RefName string

	// KindUnicodeProperty
	Property string

	// KindFlags
	FlagsStr string
}

// SyntaxTree is the parsed, read-only representation of a pattern
type SyntaxTree struct {
	Pattern string
	Nodes   []Node
	Root    int
}

// node returns the node at the given arena index
func (t *SyntaxTree) node(i int) *Node {
	return &t.Nodes[i]
}

// charset is a compact approximation of the set of characters a subexpression
// can begin with. ASCII is tracked exactly in a bitmap; everything above is
// collapsed into a single nonASCII bucket. Used for the non-disjointness
// checks behind nested-quantifier depth and overlapping alternation.
type charset struct {
	ascii    [2]uint64
	nonASCII bool
}

func (s *charset) add(r rune) {
	if r < 128 {
		s.ascii[r/64] |= 1 << (uint(r) % 64)
	} else {
		s.nonASCII = true
	}
}

func (s *charset) addRange(lo, hi rune) {
	if lo < 0 {
		lo = 0
	}
	for r := lo; r <= hi && r < 128; r++ {
		s.ascii[r/64] |= 1 << (uint(r) % 64)
	}
	if hi >= 128 {
		s.nonASCII = true
	}
}

func (s *charset) addAll() {
	s.ascii[0] = ^uint64(0)
	s.ascii[1] = ^uint64(0)
	s.nonASCII = true
}

func (s *charset) union(o charset) {
	s.ascii[0] |= o.ascii[0]
	s.ascii[1] |= o.ascii[1]
	s.nonASCII = s.nonASCII || o.nonASCII
}

func (s charset) empty() bool {
	return s.ascii[0] == 0 && s.ascii[1] == 0 && !s.nonASCII
}

func (s charset) contains(r rune) bool {
	if r < 128 {
		return s.ascii[r/64]&(1<<(uint(r)%64)) != 0
	}
	return s.nonASCII
}

// intersects reports whether two charsets can match a common character
func (s charset) intersects(o charset) bool {
	if s.ascii[0]&o.ascii[0] != 0 || s.ascii[1]&o.ascii[1] != 0 {
		return true
	}
	return s.nonASCII && o.nonASCII
}

// perlCharset expands a Perl shorthand into a charset approximation
func perlCharset(p PerlClass) charset {
	var s charset
	switch p {
	case PerlDigit:
		s.addRange('0', '9')
	case PerlWord:
		s.addRange('0', '9')
		s.addRange('a', 'z')
		s.addRange('A', 'Z')
		s.add('_')
	case PerlSpace:
		for _, r := range " \t\n\r\f\v" {
			s.add(r)
		}
	case PerlNotDigit, PerlNotWord, PerlNotSpace:
		// negated shorthands cover nearly everything
		s.addAll()
	}
	return s
}

// classCharset expands a parsed character class into a charset approximation
func classCharset(c *CharClass) charset {
	var s charset
	for _, r := range c.Ranges {
		s.addRange(r.Lo, r.Hi)
	}
	for _, p := range c.Perl {
		s.union(perlCharset(p))
	}
	if len(c.Posix) > 0 {
		// POSIX classes are ASCII ranges; approximate with the broad union
		s.addRange('0', '9')
		s.addRange('a', 'z')
		s.addRange('A', 'Z')
		s.add('_')
		s.add(' ')
	}
	if c.Negated {
		inv := charset{}
		inv.addAll()
		inv.ascii[0] &^= s.ascii[0]
		inv.ascii[1] &^= s.ascii[1]
		// a negated class can always match some non-ASCII rune
		inv.nonASCII = true
		return inv
	}
	return s
}
