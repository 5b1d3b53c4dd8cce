/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: summary.go
Description: Plain-language summary generation for pattern explanations. Tries
semantic recognition against the known-format template table first, then falls
back to a structural summary assembled from the explained parts.
*/

package explain

import (
	"fmt"
	"strings"

	"github.com/kleascm/akaylee-regex/pkg/inference"
)

// summarize produces a one-line description of what the pattern matches
func summarize(pattern string, parts []Part) string {
	if len(parts) == 0 {
		return "Empty pattern"
	}

	if name, ok := inference.RecognizeFormat(pattern); ok {
		return "Matches " + withArticle(name)
	}

	var fragments []string
	var literals []string
	hasStart, hasEnd := false, false

	flush := func() {
		if len(literals) > 0 {
			fragments = append(fragments, fmt.Sprintf("'%s'", strings.Join(literals, "")))
			literals = nil
		}
	}

	for _, part := range parts {
		switch part.Type {
		case "anchor":
			flush()
			switch part.Token {
			case "^":
				hasStart = true
			case "$":
				hasEnd = true
			}

		case "literal":
			if part.Quantifier == "" {
				literals = append(literals, part.Token)
				continue
			}
			flush()
			fragments = append(fragments,
				fmt.Sprintf("repeated '%s'", strings.TrimSuffix(part.Token, part.Quantifier)))

		case "perl_class":
			flush()
			fragments = append(fragments, quantifiedClassDesc(part))

		case "any_char":
			flush()
			switch part.Quantifier {
			case "*", "*?":
				fragments = append(fragments, "any text")
			case "+", "+?":
				fragments = append(fragments, "some text")
			default:
				fragments = append(fragments, "any character")
			}

		case "character_class":
			flush()
			fragments = append(fragments, fmt.Sprintf("characters matching %s", part.Token))

		case "capturing_group", "named_group":
			flush()
			if len(part.Children) > 0 {
				fragments = append(fragments, "a captured "+summarizeChildren(part.Children))
			} else {
				fragments = append(fragments, "a captured group")
			}

		case "alternation":
			flush()
			branchDescs := make([]string, 0, len(part.Children))
			for _, b := range part.Children {
				if len(b.Children) > 0 {
					branchDescs = append(branchDescs, summarizeChildren(b.Children))
				} else {
					branchDescs = append(branchDescs, b.Token)
				}
			}
			if len(branchDescs) <= 3 {
				fragments = append(fragments, "either "+strings.Join(branchDescs, " or "))
			} else {
				fragments = append(fragments, fmt.Sprintf("one of %d alternatives", len(branchDescs)))
			}

		case "repetition":
			flush()
			fragments = append(fragments, part.Desc)
		}
	}
	flush()

	if len(fragments) == 0 {
		return "Matches the specified pattern"
	}

	summary := "Matches " + strings.Join(fragments, ", then ")
	switch {
	case hasStart && hasEnd:
		summary += " (full line match)"
	case hasStart:
		summary += " (at start of line)"
	case hasEnd:
		summary += " (at end of line)"
	}
	return summary
}

// quantifiedClassDesc turns a shorthand class part into a readable fragment,
// e.g. "\d+" into "one or more digits"
func quantifiedClassDesc(part Part) string {
	base := strings.TrimSuffix(part.Token, part.Quantifier)
	var classDesc string
	switch base {
	case `\d`:
		classDesc = "digits"
	case `\D`:
		classDesc = "non-digits"
	case `\w`:
		classDesc = "word characters"
	case `\W`:
		classDesc = "non-word characters"
	case `\s`:
		classDesc = "whitespace"
	case `\S`:
		classDesc = "non-whitespace"
	default:
		classDesc = "characters"
	}

	switch part.Quantifier {
	case "+", "+?":
		return "one or more " + classDesc
	case "*", "*?":
		return "zero or more " + classDesc
	case "?", "??":
		return "an optional " + singular(classDesc)
	case "":
		return "a " + singular(classDesc)
	}
	return fmt.Sprintf("%s (%s)", classDesc, part.Quantifier)
}

// singular strips the plural 's' from a class description; uncountable
// descriptions like "whitespace" pass through unchanged
func singular(desc string) string {
	return strings.TrimSuffix(desc, "s")
}

// summarizeChildren collapses child parts into a brief description
func summarizeChildren(children []Part) string {
	var descs []string
	for _, c := range children {
		switch c.Type {
		case "perl_class":
			switch strings.TrimSuffix(c.Token, c.Quantifier) {
			case `\d`:
				descs = append(descs, "digits")
			case `\w`:
				descs = append(descs, "word chars")
			case `\s`:
				descs = append(descs, "whitespace")
			default:
				descs = append(descs, "characters")
			}
		case "literal":
			descs = append(descs, "literal")
		case "any_char":
			descs = append(descs, "any char")
		case "character_class":
			descs = append(descs, "char class")
		}
	}
	if len(descs) == 0 {
		return "group"
	}
	return strings.Join(descs, " + ")
}

// withArticle prefixes a format name with the right indefinite article
func withArticle(name string) string {
	switch name[0] {
	case 'A', 'E', 'I', 'O', 'U', 'a', 'e', 'i', 'o', 'u':
		return "an " + name
	}
	return "a " + name
}
