/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: parser.go
Description: Pattern parser for the Akaylee Regex Analyzer. Parses a superset of
common regex syntax (lookaround, backreferences, named groups, atomic groups,
possessive quantifiers, conditionals, Unicode properties) into an arena-based
syntax tree. The parser is fully iterative - group nesting lives on an explicit
frame stack, so untrusted patterns cannot exhaust the call stack.
*/

package syntax

import (
	"fmt"
	"strconv"
	"unicode"
)

// ParseError describes a syntax failure with enough context for a caller to
// render a useful diagnostic. It is recoverable and never retried internally.
type ParseError struct {
	Position   int    `json:"position"`
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at position %d: %s", e.Kind, e.Position, e.Message)
}

// Error kinds surfaced by the parser
const (
	ErrUnclosedGroup     = "unclosed_group"
	ErrUnopenedGroup     = "unopened_group"
	ErrUnclosedClass     = "unclosed_class"
	ErrIncompleteEscape  = "incomplete_escape"
	ErrUnknownEscape     = "unknown_escape"
	ErrMissingRepetition = "missing_repetition_target"
	ErrUnclosedRepetition = "unclosed_repetition"
	ErrInvalidQuantifier = "invalid_quantifier"
	ErrSyntax            = "syntax_error"
)

// suggestionFor maps an error kind to a human-readable fix hint
func suggestionFor(kind string) string {
	switch kind {
	case ErrUnclosedGroup:
		return "Add closing ')' to complete the group"
	case ErrUnopenedGroup:
		return "Remove extra ')' or add opening '('"
	case ErrUnclosedClass:
		return "Add closing ']' to complete the character class"
	case ErrIncompleteEscape:
		return "Complete the escape sequence or escape the backslash with '\\\\'"
	case ErrUnknownEscape:
		return "Escape the backslash with '\\\\' or use a supported escape sequence"
	case ErrMissingRepetition:
		return "Add a character or group before the quantifier"
	case ErrUnclosedRepetition:
		return "Add closing '}' to complete the repetition"
	case ErrInvalidQuantifier:
		return "Ensure the minimum repetition count does not exceed the maximum"
	}
	return ""
}

func parseErr(pos int, kind, msg string) *ParseError {
	return &ParseError{Position: pos, Kind: kind, Message: msg, Suggestion: suggestionFor(kind)}
}

// frame tracks one open group on the parser's explicit stack
type frame struct {
	proto   Node    // node the group collapses into on ')'
	openPos int     // position of the '(' for error reporting
	alts    [][]int // alternatives, each a concat sequence of arena indices
	isRoot  bool
}

type parser struct {
	input    []rune
	pos      int
	nodes    []Node
	captures int
}

// push appends a node to the arena and returns its index
func (p *parser) push(n Node) int {
	p.nodes = append(p.nodes, n)
	return len(p.nodes) - 1
}

// Parse builds the syntax tree for a pattern. The tree is descriptive: it
// accepts constructs no single matching engine supports in combination.
func Parse(pattern string) (*SyntaxTree, error) {
	p := &parser{input: []rune(pattern)}
	frames := []*frame{{isRoot: true, alts: [][]int{{}}}}

	top := func() *frame { return frames[len(frames)-1] }
	appendNode := func(idx int) {
		f := top()
		f.alts[len(f.alts)-1] = append(f.alts[len(f.alts)-1], idx)
	}

	for p.pos < len(p.input) {
		r := p.input[p.pos]
		switch r {
		case '(':
			f, flagIdx, err := p.parseGroupOpen()
			if err != nil {
				return nil, err
			}
			if f != nil {
				frames = append(frames, f)
			} else {
				appendNode(flagIdx)
			}

		case ')':
			if len(frames) == 1 {
				return nil, parseErr(p.pos, ErrUnopenedGroup, "unopened group")
			}
			f := top()
			frames = frames[:len(frames)-1]
			body := p.buildAlts(f.alts)
			n := f.proto
			n.Children = append(n.Children, body)
			appendNode(p.push(n))
			p.pos++

		case '|':
			f := top()
			f.alts = append(f.alts, []int{})
			p.pos++

		case '[':
			idx, err := p.parseClass()
			if err != nil {
				return nil, err
			}
			appendNode(idx)

		case '\\':
			idx, err := p.parseEscape()
			if err != nil {
				return nil, err
			}
			appendNode(idx)

		case '^':
			appendNode(p.push(Node{Kind: KindAnchor, Anchor: AnchorStart}))
			p.pos++

		case '$':
			appendNode(p.push(Node{Kind: KindAnchor, Anchor: AnchorEnd}))
			p.pos++

		case '.':
			appendNode(p.push(Node{Kind: KindAnyChar}))
			p.pos++

		case '*', '+', '?':
			var min, max int
			switch r {
			case '*':
				min, max = 0, -1
			case '+':
				min, max = 1, -1
			case '?':
				min, max = 0, 1
			}
			p.pos++
			if err := p.applyQuantifier(top(), min, max, p.pos-1); err != nil {
				return nil, err
			}

		case '{':
			applied, err := p.parseBraceQuantifier(top())
			if err != nil {
				return nil, err
			}
			if !applied {
				// '{' with no digits is an ordinary literal
				appendNode(p.push(Node{Kind: KindLiteral, Rune: '{'}))
				p.pos++
			}

		default:
			appendNode(p.push(Node{Kind: KindLiteral, Rune: r}))
			p.pos++
		}
	}

	if len(frames) > 1 {
		return nil, parseErr(top().openPos, ErrUnclosedGroup, "unclosed group")
	}

	root := p.buildAlts(frames[0].alts)
	return &SyntaxTree{Pattern: pattern, Nodes: p.nodes, Root: root}, nil
}

// buildAlts collapses a frame's alternatives into a single node index
func (p *parser) buildAlts(alts [][]int) int {
	seqIdx := make([]int, 0, len(alts))
	for _, seq := range alts {
		switch len(seq) {
		case 0:
			seqIdx = append(seqIdx, p.push(Node{Kind: KindEmpty}))
		case 1:
			seqIdx = append(seqIdx, seq[0])
		default:
			seqIdx = append(seqIdx, p.push(Node{Kind: KindConcat, Children: seq}))
		}
	}
	if len(seqIdx) == 1 {
		return seqIdx[0]
	}
	return p.push(Node{Kind: KindAlternation, Children: seqIdx})
}

// applyQuantifier wraps the last item of the current sequence in a quantifier
// node, consuming a trailing '?' (lazy) or '+' (possessive) modifier.
func (p *parser) applyQuantifier(f *frame, min, max, quantPos int) error {
	seq := f.alts[len(f.alts)-1]
	if len(seq) == 0 {
		return parseErr(quantPos, ErrMissingRepetition, "quantifier has nothing to repeat")
	}
	last := seq[len(seq)-1]
	switch p.nodes[last].Kind {
	case KindQuantifier:
		return parseErr(quantPos, ErrInvalidQuantifier, "quantifier follows another quantifier")
	case KindAnchor, KindFlags:
		return parseErr(quantPos, ErrMissingRepetition, "quantifier cannot repeat an assertion")
	}

	mode := QuantGreedy
	if p.pos < len(p.input) {
		switch p.input[p.pos] {
		case '?':
			mode = QuantLazy
			p.pos++
		case '+':
			mode = QuantPossessive
			p.pos++
		}
	}

	idx := p.push(Node{Kind: KindQuantifier, Children: []int{last}, Min: min, Max: max, Mode: mode})
	f.alts[len(f.alts)-1][len(seq)-1] = idx
	return nil
}

// parseBraceQuantifier handles {m}, {m,}, {m,n}. Returns false (no error) when
// the brace does not open a quantifier and should be treated as a literal.
func (p *parser) parseBraceQuantifier(f *frame) (bool, error) {
	start := p.pos
	i := p.pos + 1
	digitsEnd := i
	for digitsEnd < len(p.input) && unicode.IsDigit(p.input[digitsEnd]) {
		digitsEnd++
	}
	if digitsEnd == i {
		return false, nil
	}
	min, _ := strconv.Atoi(string(p.input[i:digitsEnd]))
	max := min
	i = digitsEnd

	if i < len(p.input) && p.input[i] == ',' {
		i++
		maxStart := i
		for i < len(p.input) && unicode.IsDigit(p.input[i]) {
			i++
		}
		if i == maxStart {
			max = -1 // {m,} is unbounded
		} else {
			max, _ = strconv.Atoi(string(p.input[maxStart:i]))
		}
	}

	if i >= len(p.input) || p.input[i] != '}' {
		return false, parseErr(start, ErrUnclosedRepetition, "unclosed repetition")
	}
	if max >= 0 && min > max {
		return false, parseErr(start, ErrInvalidQuantifier,
			fmt.Sprintf("invalid quantifier bounds {%d,%d}", min, max))
	}

	p.pos = i + 1
	return true, p.applyQuantifier(f, min, max, start)
}

// parseGroupOpen consumes a '(' and its prefix. It returns a new frame for a
// real group, or the index of a standalone flags node (frame == nil).
func (p *parser) parseGroupOpen() (*frame, int, error) {
	openPos := p.pos
	p.pos++ // consume '('

	newFrame := func(proto Node) *frame {
		return &frame{proto: proto, openPos: openPos, alts: [][]int{{}}}
	}

	if p.pos >= len(p.input) || p.input[p.pos] != '?' {
		// plain capturing group
		p.captures++
		return newFrame(Node{Kind: KindGroup, Group: GroupCapturing, CaptureIdx: p.captures}), 0, nil
	}
	p.pos++ // consume '?'
	if p.pos >= len(p.input) {
		return nil, 0, parseErr(openPos, ErrUnclosedGroup, "unclosed group")
	}

	switch p.input[p.pos] {
	case ':':
		p.pos++
		return newFrame(Node{Kind: KindGroup, Group: GroupNonCapturing}), 0, nil

	case '=':
		p.pos++
		return newFrame(Node{Kind: KindLookaround}), 0, nil

	case '!':
		p.pos++
		return newFrame(Node{Kind: KindLookaround, Negated: true}), 0, nil

	case '>':
		p.pos++
		return newFrame(Node{Kind: KindGroup, Group: GroupAtomic}), 0, nil

	case '<':
		p.pos++
		if p.pos >= len(p.input) {
			return nil, 0, parseErr(openPos, ErrUnclosedGroup, "unclosed group")
		}
		switch p.input[p.pos] {
		case '=':
			p.pos++
			return newFrame(Node{Kind: KindLookaround, Behind: true}), 0, nil
		case '!':
			p.pos++
			return newFrame(Node{Kind: KindLookaround, Behind: true, Negated: true}), 0, nil
		}
		name, err := p.parseGroupName(openPos, '>')
		if err != nil {
			return nil, 0, err
		}
		p.captures++
		return newFrame(Node{Kind: KindGroup, Group: GroupNamed, Name: name, CaptureIdx: p.captures}), 0, nil

	case 'P':
		p.pos++
		if p.pos >= len(p.input) || p.input[p.pos] != '<' {
			return nil, 0, parseErr(openPos, ErrSyntax, "expected '<' after (?P")
		}
		p.pos++
		name, err := p.parseGroupName(openPos, '>')
		if err != nil {
			return nil, 0, err
		}
		p.captures++
		return newFrame(Node{Kind: KindGroup, Group: GroupNamed, Name: name, CaptureIdx: p.captures}), 0, nil

	case '(':
		// conditional (?(ref)then|else)
		p.pos++
		condStart := p.pos
		for p.pos < len(p.input) && p.input[p.pos] != ')' {
			p.pos++
		}
		if p.pos >= len(p.input) {
			return nil, 0, parseErr(openPos, ErrUnclosedGroup, "unclosed conditional")
		}
		cond := string(p.input[condStart:p.pos])
		p.pos++ // consume ')'
		proto := Node{Kind: KindConditional}
		if n, err := strconv.Atoi(cond); err == nil {
			proto.Ref = n
		} else {
			proto.RefName = cond
		}
		return newFrame(proto), 0, nil

	default:
		// inline flags: (?imsxU) or (?flags:...)
		flagStart := p.pos
		for p.pos < len(p.input) && isFlagRune(p.input[p.pos]) {
			p.pos++
		}
		if p.pos > flagStart && p.pos < len(p.input) {
			flags := string(p.input[flagStart:p.pos])
			switch p.input[p.pos] {
			case ')':
				p.pos++
				return nil, p.push(Node{Kind: KindFlags, FlagsStr: flags}), nil
			case ':':
				p.pos++
				return newFrame(Node{Kind: KindGroup, Group: GroupNonCapturing, FlagsStr: flags}), 0, nil
			}
		}
		return nil, 0, parseErr(openPos, ErrSyntax, "unrecognized group syntax")
	}
}

func isFlagRune(r rune) bool {
	switch r {
	case 'i', 'm', 's', 'x', 'U', '-':
		return true
	}
	return false
}

// parseGroupName reads a group name up to the given terminator
func (p *parser) parseGroupName(openPos int, term rune) (string, error) {
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] != term {
		r := p.input[p.pos]
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return "", parseErr(p.pos, ErrSyntax, fmt.Sprintf("invalid character %q in group name", r))
		}
		p.pos++
	}
	if p.pos >= len(p.input) {
		return "", parseErr(openPos, ErrUnclosedGroup, "unterminated group name")
	}
	if p.pos == start {
		return "", parseErr(openPos, ErrSyntax, "empty group name")
	}
	name := string(p.input[start:p.pos])
	p.pos++ // consume terminator
	return name, nil
}

// parseClass consumes a bracketed character class
func (p *parser) parseClass() (int, error) {
	openPos := p.pos
	p.pos++ // consume '['

	cls := &CharClass{}
	if p.pos < len(p.input) && p.input[p.pos] == '^' {
		cls.Negated = true
		p.pos++
	}
	// a ']' immediately after the opening (or negation) is a literal
	if p.pos < len(p.input) && p.input[p.pos] == ']' {
		cls.Ranges = append(cls.Ranges, RuneRange{']', ']'})
		p.pos++
	}

	for {
		if p.pos >= len(p.input) {
			return 0, parseErr(openPos, ErrUnclosedClass, "unclosed character class")
		}
		r := p.input[p.pos]
		if r == ']' {
			p.pos++
			return p.push(Node{Kind: KindCharClass, Class: cls}), nil
		}

		// POSIX class [:alpha:]
		if r == '[' && p.pos+1 < len(p.input) && p.input[p.pos+1] == ':' {
			end := p.pos + 2
			for end+1 < len(p.input) && !(p.input[end] == ':' && p.input[end+1] == ']') {
				end++
			}
			if end+1 < len(p.input) {
				cls.Posix = append(cls.Posix, string(p.input[p.pos+2:end]))
				p.pos = end + 2
				continue
			}
			return 0, parseErr(openPos, ErrUnclosedClass, "unclosed POSIX class")
		}

		lo, perl, err := p.parseClassAtom(openPos)
		if err != nil {
			return 0, err
		}
		if perl != nil {
			cls.Perl = append(cls.Perl, *perl)
			continue
		}

		// range lo-hi, unless '-' is the last char before ']'
		if p.pos+1 < len(p.input) && p.input[p.pos] == '-' && p.input[p.pos+1] != ']' {
			p.pos++ // consume '-'
			hi, hiPerl, err := p.parseClassAtom(openPos)
			if err != nil {
				return 0, err
			}
			if hiPerl != nil {
				return 0, parseErr(p.pos, ErrSyntax, "character class shorthand cannot bound a range")
			}
			if hi < lo {
				return 0, parseErr(p.pos, ErrSyntax, fmt.Sprintf("invalid class range %q-%q", lo, hi))
			}
			cls.Ranges = append(cls.Ranges, RuneRange{lo, hi})
			continue
		}
		cls.Ranges = append(cls.Ranges, RuneRange{lo, lo})
	}
}

// parseClassAtom reads one class member: a literal rune or a Perl shorthand
func (p *parser) parseClassAtom(openPos int) (rune, *PerlClass, error) {
	if p.pos >= len(p.input) {
		return 0, nil, parseErr(openPos, ErrUnclosedClass, "unclosed character class")
	}
	r := p.input[p.pos]
	if r != '\\' {
		p.pos++
		return r, nil, nil
	}

	if p.pos+1 >= len(p.input) {
		return 0, nil, parseErr(p.pos, ErrIncompleteEscape, "incomplete escape sequence")
	}
	esc := p.input[p.pos+1]
	if pc, ok := perlShorthand(esc); ok {
		p.pos += 2
		return 0, &pc, nil
	}
	lit, width, err := p.decodeLiteralEscape()
	if err != nil {
		return 0, nil, err
	}
	p.pos += width
	return lit, nil, err
}

// parseEscape consumes a backslash escape outside a character class
func (p *parser) parseEscape() (int, error) {
	escPos := p.pos
	if p.pos+1 >= len(p.input) {
		return 0, parseErr(escPos, ErrIncompleteEscape, "pattern ends with a bare backslash")
	}
	c := p.input[p.pos+1]

	// backreference \1..\99
	if c >= '1' && c <= '9' {
		i := p.pos + 1
		for i < len(p.input) && unicode.IsDigit(p.input[i]) {
			i++
		}
		ref, _ := strconv.Atoi(string(p.input[p.pos+1 : i]))
		p.pos = i
		return p.push(Node{Kind: KindBackreference, Ref: ref}), nil
	}

	switch c {
	case 'd', 'D', 'w', 'W', 's', 'S':
		pc, _ := perlShorthand(c)
		p.pos += 2
		return p.push(Node{Kind: KindCharClass, Class: &CharClass{Perl: []PerlClass{pc}}}), nil

	case 'b':
		p.pos += 2
		return p.push(Node{Kind: KindAnchor, Anchor: AnchorWordBoundary}), nil
	case 'B':
		p.pos += 2
		return p.push(Node{Kind: KindAnchor, Anchor: AnchorNotWordBoundary}), nil

	case 'A':
		p.pos += 2
		return p.push(Node{Kind: KindAnchor, Anchor: AnchorStart}), nil
	case 'z', 'Z':
		p.pos += 2
		return p.push(Node{Kind: KindAnchor, Anchor: AnchorEnd}), nil

	case 'k':
		// named backreference \k<name>
		if p.pos+2 >= len(p.input) || p.input[p.pos+2] != '<' {
			return 0, parseErr(escPos, ErrIncompleteEscape, "expected '<name>' after \\k")
		}
		p.pos += 3
		name, err := p.parseGroupName(escPos, '>')
		if err != nil {
			return 0, err
		}
		return p.push(Node{Kind: KindBackreference, RefName: name}), nil

	case 'p', 'P':
		return p.parseUnicodeProperty(escPos, c == 'P')
	}

	lit, width, err := p.decodeLiteralEscape()
	if err != nil {
		return 0, err
	}
	p.pos += width
	return p.push(Node{Kind: KindLiteral, Rune: lit}), nil
}

// parseUnicodeProperty consumes \p{Name}, \P{Name}, \pL or \PL
func (p *parser) parseUnicodeProperty(escPos int, negated bool) (int, error) {
	i := p.pos + 2
	if i >= len(p.input) {
		return 0, parseErr(escPos, ErrIncompleteEscape, "incomplete unicode property escape")
	}
	if p.input[i] != '{' {
		// single-letter form \pL
		p.pos = i + 1
		return p.push(Node{Kind: KindUnicodeProperty, Property: string(p.input[i]), Negated: negated}), nil
	}
	start := i + 1
	for i < len(p.input) && p.input[i] != '}' {
		i++
	}
	if i >= len(p.input) {
		return 0, parseErr(escPos, ErrIncompleteEscape, "unclosed unicode property escape")
	}
	prop := string(p.input[start:i])
	p.pos = i + 1
	return p.push(Node{Kind: KindUnicodeProperty, Property: prop, Negated: negated}), nil
}

// decodeLiteralEscape decodes escapes that denote a single literal rune.
// Returns the rune and the total width consumed including the backslash.
func (p *parser) decodeLiteralEscape() (rune, int, error) {
	c := p.input[p.pos+1]
	switch c {
	case 'n':
		return '\n', 2, nil
	case 't':
		return '\t', 2, nil
	case 'r':
		return '\r', 2, nil
	case 'f':
		return '\f', 2, nil
	case 'v':
		return '\v', 2, nil
	case 'a':
		return '\a', 2, nil
	case '0':
		return 0, 2, nil
	case 'x':
		// \xHH
		if p.pos+3 < len(p.input) {
			if v, err := strconv.ParseUint(string(p.input[p.pos+2:p.pos+4]), 16, 32); err == nil {
				return rune(v), 4, nil
			}
		}
		return 0, 0, parseErr(p.pos, ErrIncompleteEscape, "incomplete hex escape")
	case 'u':
		// \uHHHH
		if p.pos+5 < len(p.input) {
			if v, err := strconv.ParseUint(string(p.input[p.pos+2:p.pos+6]), 16, 32); err == nil {
				return rune(v), 6, nil
			}
		}
		return 0, 0, parseErr(p.pos, ErrIncompleteEscape, "incomplete unicode escape")
	}

	if unicode.IsLetter(c) || unicode.IsDigit(c) {
		return 0, 0, parseErr(p.pos, ErrUnknownEscape, fmt.Sprintf("unknown escape sequence \\%c", c))
	}
	// escaped metacharacter
	return c, 2, nil
}

// perlShorthand maps an escape letter to its Perl class
func perlShorthand(c rune) (PerlClass, bool) {
	switch c {
	case 'd':
		return PerlDigit, true
	case 'D':
		return PerlNotDigit, true
	case 'w':
		return PerlWord, true
	case 'W':
		return PerlNotWord, true
	case 's':
		return PerlSpace, true
	case 'S':
		return PerlNotSpace, true
	}
	return 0, false
}
