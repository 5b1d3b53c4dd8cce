/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: tokenizer.go
Description: Example tokenizer for pattern inference. Splits raw example strings
into runs of atomic character classes (digit runs, letter runs, individual
punctuation characters, other runs) and derives the shape key used to group
examples whose structure agrees.
*/

package inference

import (
	"strings"
	"unicode"
)

// tokenKind is the atomic class of one token
type tokenKind int

const (
	tokenDigits tokenKind = iota
	tokenLetters
	tokenPunct
	tokenOther
)

// token is one maximal run of a single atomic class. Punctuation is always a
// single character so separators like '-' and '/' survive as exact literals.
type token struct {
	kind tokenKind
	text string
}

func classify(r rune) tokenKind {
	switch {
	case unicode.IsDigit(r):
		return tokenDigits
	case unicode.IsLetter(r):
		return tokenLetters
	case unicode.IsPunct(r) || unicode.IsSymbol(r):
		return tokenPunct
	default:
		return tokenOther
	}
}

// tokenize splits an example into maximal same-kind runs, except punctuation
// which is emitted one character at a time
func tokenize(example string) []token {
	var tokens []token
	runes := []rune(example)

	i := 0
	for i < len(runes) {
		kind := classify(runes[i])
		if kind == tokenPunct {
			tokens = append(tokens, token{kind: kind, text: string(runes[i])})
			i++
			continue
		}
		j := i + 1
		for j < len(runes) && classify(runes[j]) == kind {
			j++
		}
		tokens = append(tokens, token{kind: kind, text: string(runes[i:j])})
		i = j
	}
	return tokens
}

// shapeKey encodes a token sequence as a comparable grouping key. Token kinds
// must agree position by position; punctuation must agree on the exact
// character, so "2024-01-15" and "01/15/2024" land in different groups.
func shapeKey(tokens []token) string {
	var b strings.Builder
	for _, t := range tokens {
		switch t.kind {
		case tokenDigits:
			b.WriteString("d;")
		case tokenLetters:
			b.WriteString("l;")
		case tokenPunct:
			b.WriteString("p")
			b.WriteString(t.text)
			b.WriteString(";")
		default:
			b.WriteString("o;")
		}
	}
	return b.String()
}
