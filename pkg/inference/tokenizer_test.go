/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: tokenizer_test.go
Description: Tests for the example tokenizer and shape key construction.
*/

package inference_test

import (
	"testing"

	"github.com/kleascm/akaylee-regex/pkg/inference"
	"github.com/stretchr/testify/assert"
)

// TestShapesDistinguishPunctuation tests that shape identity includes the
// exact punctuation characters, not just their positions
func TestShapesDistinguishPunctuation(t *testing.T) {
	inf := inference.NewInferencer()

	candidates, err := inf.Infer([]string{"12-34", "56:78"})
	assert.NoError(t, err)

	// different separators mean different shapes, so no candidate may merge
	// the two examples into one structure
	for _, c := range candidates {
		assert.NotContains(t, c.Desc, "2 examples", "separator mismatch must split shapes")
	}
}

// TestShapesSplitPunctuationRuns tests per-character punctuation tokens
func TestShapesSplitPunctuationRuns(t *testing.T) {
	inf := inference.NewInferencer()

	candidates, err := inf.Infer([]string{"a..b", "c..d"})
	assert.NoError(t, err)
	assert.NotEmpty(t, candidates)
	assert.Equal(t, `[a-z]\.\.[a-z]`, candidates[0].Pattern)
}
