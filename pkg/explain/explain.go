/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: explain.go
Description: Pattern explanation for the Akaylee Regex Analyzer. Breaks a regex
pattern down into described component parts and produces a plain-language summary
of what the whole pattern matches. Parts are built in one bottom-up pass over the
syntax tree arena, so explanation cost is linear in pattern size.
*/

package explain

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/kleascm/akaylee-regex/pkg/syntax"
)

// Part describes one component of a pattern. Children are populated for
// container constructs (groups, alternations, lookarounds, repetitions).
type Part struct {
	Token      string `json:"token"`
	Type       string `json:"type"`
	Desc       string `json:"desc"`
	Quantifier string `json:"quantifier,omitempty"`
	Group      int    `json:"group,omitempty"`
	Children   []Part `json:"children,omitempty"`
}

// Result is a full pattern explanation
type Result struct {
	Pattern string `json:"pattern"`
	Parts   []Part `json:"parts"`
	Summary string `json:"summary"`
}

// Explain parses a pattern and describes its component parts. Parse failures
// surface as *syntax.ParseError.
func Explain(pattern string) (*Result, error) {
	tree, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}

	parts := buildParts(tree)
	return &Result{
		Pattern: pattern,
		Parts:   parts,
		Summary: summarize(pattern, parts),
	}, nil
}

// buildParts walks the arena bottom-up. The parser appends children before
// parents, so one forward loop visits every subexpression before the node
// that contains it; the root's slice is the full explanation.
func buildParts(t *syntax.SyntaxTree) []Part {
	n := len(t.Nodes)
	built := make([][]Part, n)
	tokens := make([]string, n)

	for i := 0; i < n; i++ {
		node := &t.Nodes[i]
		switch node.Kind {
		case syntax.KindEmpty:
			// contributes no parts and an empty token

		case syntax.KindLiteral:
			tokens[i] = renderLiteral(node.Rune)
			desc := fmt.Sprintf("Literal '%c'", node.Rune)
			if !isASCIIAlnum(node.Rune) {
				desc = fmt.Sprintf("Literal '%c' (U+%04X)", node.Rune, node.Rune)
			}
			built[i] = []Part{{Token: tokens[i], Type: "literal", Desc: desc}}

		case syntax.KindAnyChar:
			tokens[i] = "."
			built[i] = []Part{{Token: ".", Type: "any_char",
				Desc: "Matches any character (except newline by default)"}}

		case syntax.KindCharClass:
			tokens[i] = renderClass(node.Class)
			built[i] = []Part{classPart(node.Class, tokens[i])}

		case syntax.KindAnchor:
			token, desc := describeAnchor(node.Anchor)
			tokens[i] = token
			built[i] = []Part{{Token: token, Type: "anchor", Desc: desc}}

		case syntax.KindUnicodeProperty:
			tokens[i] = renderProperty(node)
			desc := describeProperty(node.Property)
			if node.Negated {
				desc += " (negated)"
			}
			built[i] = []Part{{Token: tokens[i], Type: "unicode_class", Desc: desc}}

		case syntax.KindBackreference:
			var token, desc string
			if node.RefName != "" {
				token = `\k<` + node.RefName + `>`
				desc = fmt.Sprintf("Backreference: matches the same text as group '%s'", node.RefName)
			} else {
				token = `\` + strconv.Itoa(node.Ref)
				desc = fmt.Sprintf("Backreference: matches the same text as capturing group %d", node.Ref)
			}
			tokens[i] = token
			built[i] = []Part{{Token: token, Type: "backreference", Desc: desc}}

		case syntax.KindFlags:
			tokens[i] = "(?" + node.FlagsStr + ")"
			built[i] = []Part{{Token: tokens[i], Type: "flags", Desc: describeFlags(node.FlagsStr)}}

		case syntax.KindConcat:
			var b strings.Builder
			for _, c := range node.Children {
				b.WriteString(tokens[c])
				built[i] = append(built[i], built[c]...)
			}
			tokens[i] = b.String()

		case syntax.KindAlternation:
			branches := make([]Part, 0, len(node.Children))
			toks := make([]string, 0, len(node.Children))
			for _, c := range node.Children {
				branches = append(branches, Part{
					Token:    tokens[c],
					Type:     "branch",
					Desc:     "Alternative branch",
					Children: built[c],
				})
				toks = append(toks, tokens[c])
			}
			tokens[i] = strings.Join(toks, "|")
			built[i] = []Part{{
				Token:    tokens[i],
				Type:     "alternation",
				Desc:     fmt.Sprintf("Match one of %d alternatives", len(node.Children)),
				Children: branches,
			}}

		case syntax.KindGroup:
			child := node.Children[0]
			tokens[i] = groupPrefix(node) + tokens[child] + ")"
			typ, desc := describeGroup(node)
			built[i] = []Part{{
				Token:    tokens[i],
				Type:     typ,
				Desc:     desc,
				Group:    node.CaptureIdx,
				Children: built[child],
			}}

		case syntax.KindLookaround:
			child := node.Children[0]
			tokens[i] = lookaroundPrefix(node) + tokens[child] + ")"
			typ, desc := describeLookaround(node)
			built[i] = []Part{{
				Token:    tokens[i],
				Type:     typ,
				Desc:     desc,
				Children: built[child],
			}}

		case syntax.KindConditional:
			child := node.Children[0]
			cond := node.RefName
			if cond == "" {
				cond = strconv.Itoa(node.Ref)
			}
			tokens[i] = "(?(" + cond + ")" + tokens[child] + ")"
			built[i] = []Part{{
				Token: tokens[i],
				Type:  "conditional",
				Desc: fmt.Sprintf(
					"Conditional: matches the first branch when group %s participated, the second otherwise", cond),
				Children: built[child],
			}}

		case syntax.KindQuantifier:
			child := node.Children[0]
			suffix := quantSuffix(node)
			desc := quantDesc(node)
			tokens[i] = tokens[child] + suffix

			childParts := built[child]
			if len(childParts) == 1 {
				part := childParts[0]
				part.Token = tokens[i]
				part.Quantifier = suffix
				part.Desc = fmt.Sprintf("%s (%s)", part.Desc, desc)
				built[i] = []Part{part}
			} else {
				built[i] = []Part{{
					Token:      tokens[i],
					Type:       "repetition",
					Desc:       desc,
					Quantifier: suffix,
					Children:   childParts,
				}}
			}
		}
	}

	return built[t.Root]
}

func isASCIIAlnum(r rune) bool {
	return r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

// renderLiteral reconstructs the pattern text for a literal rune
func renderLiteral(r rune) string {
	if strings.ContainsRune(`\.+*?()|[]{}^$`, r) {
		return `\` + string(r)
	}
	switch r {
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	}
	if !unicode.IsPrint(r) {
		return fmt.Sprintf(`\x%02X`, r)
	}
	return string(r)
}

// classRune escapes a rune for use inside a bracketed class
func classRune(r rune) string {
	switch r {
	case ']', '\\', '^', '-':
		return `\` + string(r)
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	}
	if !unicode.IsPrint(r) {
		return fmt.Sprintf(`\x%02X`, r)
	}
	return string(r)
}

// perlToken maps a Perl shorthand back to its escape form
func perlToken(p syntax.PerlClass) string {
	switch p {
	case syntax.PerlDigit:
		return `\d`
	case syntax.PerlNotDigit:
		return `\D`
	case syntax.PerlWord:
		return `\w`
	case syntax.PerlNotWord:
		return `\W`
	case syntax.PerlSpace:
		return `\s`
	case syntax.PerlNotSpace:
		return `\S`
	}
	return ""
}

func perlDesc(p syntax.PerlClass) string {
	switch p {
	case syntax.PerlDigit:
		return "Digit character [0-9]"
	case syntax.PerlNotDigit:
		return "Non-digit character"
	case syntax.PerlWord:
		return "Word character [a-zA-Z0-9_]"
	case syntax.PerlNotWord:
		return "Non-word character"
	case syntax.PerlSpace:
		return "Whitespace character"
	case syntax.PerlNotSpace:
		return "Non-whitespace character"
	}
	return "Character class"
}

// renderClass reconstructs the pattern text for a character class. A bare Perl
// shorthand renders as its escape; everything else gets bracket syntax.
func renderClass(c *syntax.CharClass) string {
	if bareShorthand(c) {
		return perlToken(c.Perl[0])
	}

	var b strings.Builder
	b.WriteByte('[')
	if c.Negated {
		b.WriteByte('^')
	}
	for _, p := range c.Posix {
		b.WriteString("[:" + p + ":]")
	}
	for _, p := range c.Perl {
		b.WriteString(perlToken(p))
	}
	for _, r := range c.Ranges {
		if r.Lo == r.Hi {
			b.WriteString(classRune(r.Lo))
		} else {
			b.WriteString(classRune(r.Lo) + "-" + classRune(r.Hi))
		}
	}
	b.WriteByte(']')
	return b.String()
}

// bareShorthand reports whether a class is exactly one Perl shorthand outside
// brackets, e.g. \d rather than [\d]
func bareShorthand(c *syntax.CharClass) bool {
	return !c.Negated && len(c.Ranges) == 0 && len(c.Posix) == 0 && len(c.Perl) == 1
}

func classPart(c *syntax.CharClass, token string) Part {
	if bareShorthand(c) {
		return Part{Token: token, Type: "perl_class", Desc: perlDesc(c.Perl[0])}
	}
	negated := ""
	if c.Negated {
		negated = "not "
	}
	return Part{
		Token: token,
		Type:  "character_class",
		Desc:  fmt.Sprintf("Character class: matches %sone of the specified characters", negated),
	}
}

func describeAnchor(a syntax.AnchorKind) (string, string) {
	switch a {
	case syntax.AnchorStart:
		return "^", "Start of line/string"
	case syntax.AnchorEnd:
		return "$", "End of line/string"
	case syntax.AnchorWordBoundary:
		return `\b`, "Word boundary"
	case syntax.AnchorNotWordBoundary:
		return `\B`, "Non-word boundary"
	}
	return "", ""
}

func renderProperty(n *syntax.Node) string {
	esc := `\p`
	if n.Negated {
		esc = `\P`
	}
	if len(n.Property) == 1 {
		return esc + n.Property
	}
	return esc + "{" + n.Property + "}"
}

func describeProperty(prop string) string {
	if len(prop) == 1 {
		switch prop[0] {
		case 'L':
			return "Unicode Letter"
		case 'N':
			return "Unicode Number"
		case 'P':
			return "Unicode Punctuation"
		case 'S':
			return "Unicode Symbol"
		case 'Z':
			return "Unicode Separator"
		case 'C':
			return "Unicode Other/Control"
		case 'M':
			return "Unicode Mark"
		}
	}
	return "Unicode property: " + prop
}

// describeFlags expands an inline flag string, e.g. "i-s", into a sentence
func describeFlags(flags string) string {
	name := func(r rune) string {
		switch r {
		case 'i':
			return "case-insensitive"
		case 'm':
			return "multi-line mode"
		case 's':
			return "dot matches newline"
		case 'x':
			return "ignore whitespace"
		case 'U':
			return "swap greedy/non-greedy"
		}
		return string(r)
	}

	var enabled, disabled []string
	negating := false
	for _, r := range flags {
		if r == '-' {
			negating = true
			continue
		}
		if negating {
			disabled = append(disabled, name(r))
		} else {
			enabled = append(enabled, name(r))
		}
	}

	var parts []string
	if len(enabled) > 0 {
		parts = append(parts, "Enable "+strings.Join(enabled, ", "))
	}
	if len(disabled) > 0 {
		parts = append(parts, "disable "+strings.Join(disabled, ", "))
	}
	if len(parts) == 0 {
		return "Inline flags"
	}
	return strings.Join(parts, "; ")
}

func describeGroup(n *syntax.Node) (string, string) {
	switch n.Group {
	case syntax.GroupNamed:
		return "named_group", fmt.Sprintf("Named capture: %s", n.Name)
	case syntax.GroupNonCapturing:
		return "non_capturing_group", "Non-capturing group"
	case syntax.GroupAtomic:
		return "atomic_group", "Atomic group: prevents backtracking into the group once matched"
	}
	return "capturing_group", "Capturing group"
}

func groupPrefix(n *syntax.Node) string {
	switch n.Group {
	case syntax.GroupNamed:
		return "(?<" + n.Name + ">"
	case syntax.GroupNonCapturing:
		if n.FlagsStr != "" {
			return "(?" + n.FlagsStr + ":"
		}
		return "(?:"
	case syntax.GroupAtomic:
		return "(?>"
	}
	return "("
}

func describeLookaround(n *syntax.Node) (string, string) {
	switch {
	case n.Behind && n.Negated:
		return "lookbehind", "Negative lookbehind assertion: fails when the preceding text matches"
	case n.Behind:
		return "lookbehind", "Lookbehind assertion: checks what precedes without consuming characters"
	case n.Negated:
		return "lookahead", "Negative lookahead assertion: fails when the following text matches"
	}
	return "lookahead", "Lookahead assertion: checks what follows without consuming characters"
}

func lookaroundPrefix(n *syntax.Node) string {
	switch {
	case n.Behind && n.Negated:
		return "(?<!"
	case n.Behind:
		return "(?<="
	case n.Negated:
		return "(?!"
	}
	return "(?="
}

// quantSuffix renders a quantifier node's pattern text
func quantSuffix(n *syntax.Node) string {
	var s string
	switch {
	case n.Min == 0 && n.Max == 1:
		s = "?"
	case n.Min == 0 && n.Max == -1:
		s = "*"
	case n.Min == 1 && n.Max == -1:
		s = "+"
	case n.Max == -1:
		s = fmt.Sprintf("{%d,}", n.Min)
	case n.Min == n.Max:
		s = fmt.Sprintf("{%d}", n.Min)
	default:
		s = fmt.Sprintf("{%d,%d}", n.Min, n.Max)
	}
	switch n.Mode {
	case syntax.QuantLazy:
		s += "?"
	case syntax.QuantPossessive:
		s += "+"
	}
	return s
}

func quantDesc(n *syntax.Node) string {
	var d string
	switch {
	case n.Min == 0 && n.Max == 1:
		d = "Zero or one"
	case n.Min == 0 && n.Max == -1:
		d = "Zero or more"
	case n.Min == 1 && n.Max == -1:
		d = "One or more"
	case n.Max == -1:
		d = fmt.Sprintf("%d or more of the preceding element", n.Min)
	case n.Min == n.Max:
		d = fmt.Sprintf("Exactly %d of the preceding element", n.Min)
	default:
		d = fmt.Sprintf("Between %d and %d of the preceding element", n.Min, n.Max)
	}
	switch n.Mode {
	case syntax.QuantLazy:
		d += " (non-greedy)"
	case syntax.QuantPossessive:
		d += " (possessive)"
	}
	return d
}
