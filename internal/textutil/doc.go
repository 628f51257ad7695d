// Package textutil provides the fuzzy text similarity used to match transcribed
// utterances against dialogue lines.
//
// Two token-order-insensitive scorers are available:
//   - TokenSortRatio: normalized Levenshtein similarity over sorted tokens
//   - CosineSimilarity: cosine over term-frequency fingerprints
//
// Tokenization lowercases text, folds accents, and splits on
// non-alphanumeric characters.
package textutil
