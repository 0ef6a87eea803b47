package ml

import (
	"math"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Lowercases and splits on whitespace",
			input:    "Works Well Together",
			expected: []string{"works", "well", "together"},
		},
		{
			name:     "Drops single-character tokens",
			input:    "a team of 5 people",
			expected: []string{"team", "of", "people"},
		},
		{
			name:     "Splits on punctuation",
			input:    "on-time, every week!",
			expected: []string{"on", "time", "every", "week"},
		},
		{
			name:     "Empty input",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokenize(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestVectorizerTransformIsNormalized(t *testing.T) {
	docs := []string{
		"communicates clearly with the team",
		"always late to meetings",
		"helps the team solve problems",
	}
	vectorizer := FitVectorizer(docs)

	vec := vectorizer.Transform("communicates clearly with the team")
	var norm float64
	for _, val := range vec {
		norm += val * val
	}
	if math.Abs(norm-1.0) > 1e-9 {
		t.Errorf("expected unit-norm vector, got squared norm %f", norm)
	}
}

func TestVectorizerIgnoresUnseenTokens(t *testing.T) {
	vectorizer := FitVectorizer([]string{"communicates clearly"})

	vec := vectorizer.Transform("zzzz qqqq wwww")
	for i, val := range vec {
		if val != 0 {
			t.Errorf("expected zero vector for out-of-vocabulary text, got %f at %d", val, i)
		}
	}
}

func TestVectorizerDim(t *testing.T) {
	vectorizer := FitVectorizer([]string{"alpha beta", "beta gamma"})
	if vectorizer.Dim() != 3 {
		t.Errorf("expected vocabulary of 3, got %d", vectorizer.Dim())
	}
}
