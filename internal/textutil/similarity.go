package textutil

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// MaxScore is the score of two identical token sequences.
const MaxScore = 100.0

// CosineSimilarity computes the cosine similarity between two fingerprints.
// Returns 0 if either fingerprint is nil or has zero norm.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	var dot float64
	for token, count := range a.tokens {
		if other, ok := b.tokens[token]; ok {
			dot += count * other
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (a.norm * b.norm)
}

// CosineScore scales CosineSimilarity of two texts to [0, MaxScore].
func CosineScore(a, b string) float64 {
	score := CosineSimilarity(NewFingerprint(a), NewFingerprint(b)) * MaxScore
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// SortedTokens returns the tokens of text sorted and joined by single spaces.
func SortedTokens(text string) string {
	tokens := Tokenize(text)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// Ratio returns the normalized Levenshtein similarity of a and b in
// [0, MaxScore]. Two empty strings are identical; one empty string scores 0.
func Ratio(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longest := max(la, lb)
	if longest == 0 {
		return MaxScore
	}
	dist := levenshtein.ComputeDistance(a, b)
	return MaxScore * (1 - float64(dist)/float64(longest))
}

// TokenSortRatio compares two texts after tokenizing and sorting their words,
// so word order and punctuation do not affect the score.
func TokenSortRatio(a, b string) float64 {
	return Ratio(SortedTokens(a), SortedTokens(b))
}
