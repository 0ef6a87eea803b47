package ml

import (
	"math"
	"strings"
	"unicode"
)

// Tokenize lowercases the text and splits it into word tokens of at least
// two characters, mirroring the default token pattern of the TF-IDF
// vectorizer the models were designed around.
func Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder
	flush := func() {
		if current.Len() >= 2 {
			tokens = append(tokens, current.String())
		}
		current.Reset()
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// Vectorizer maps documents to L2-normalized TF-IDF vectors over the
// vocabulary seen at fit time. Unseen tokens are ignored at transform time.
type Vectorizer struct {
	vocab map[string]int
	idf   []float64
}

// FitVectorizer builds the vocabulary and smoothed inverse document
// frequencies from the training documents.
func FitVectorizer(docs []string) *Vectorizer {
	vocab := make(map[string]int)
	docFreq := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, token := range Tokenize(doc) {
			if _, ok := vocab[token]; !ok {
				vocab[token] = len(vocab)
			}
			if !seen[token] {
				seen[token] = true
				docFreq[token]++
			}
		}
	}

	idf := make([]float64, len(vocab))
	n := float64(len(docs))
	for token, idx := range vocab {
		// Smoothed idf: ln((1+n)/(1+df)) + 1.
		idf[idx] = math.Log((1+n)/(1+float64(docFreq[token]))) + 1
	}

	return &Vectorizer{vocab: vocab, idf: idf}
}

// Dim returns the vocabulary size.
func (v *Vectorizer) Dim() int {
	return len(v.vocab)
}

// Transform converts a document into an L2-normalized TF-IDF vector.
func (v *Vectorizer) Transform(doc string) []float64 {
	vec := make([]float64, len(v.vocab))
	for _, token := range Tokenize(doc) {
		if idx, ok := v.vocab[token]; ok {
			vec[idx] += v.idf[idx]
		}
	}

	var norm float64
	for _, val := range vec {
		norm += val * val
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
