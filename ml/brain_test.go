package ml

import (
	"errors"
	"strings"
	"testing"
)

func TestRateTrainedCategory(t *testing.T) {
	brain := NewBrain("testdata/comments.csv")

	tests := []struct {
		category Category
		answer   string
		want     string
	}{
		{CategoryCommunication, "Explains everything clearly in every update", "Good"},
		{CategoryCommunication, "Updates are confusing and hard to follow", "Poor"},
		{CategoryPunctuality, "Arrives early for every single meeting", "Excellent"},
		{CategoryPunctuality, "Consistently late to team ceremonies", "Poor"},
	}
	for _, tt := range tests {
		rating, err := brain.Rate(tt.category, tt.answer)
		if err != nil {
			t.Fatalf("Rate(%q, %q) failed: %v", tt.category, tt.answer, err)
		}
		if rating.Sentiment != nil {
			t.Errorf("trained category must not produce a sentiment score")
		}
		if rating.Label != tt.want {
			t.Errorf("Rate(%q, %q) = %q, want %q", tt.category, tt.answer, rating.Label, tt.want)
		}
		if rating.Prediction() != tt.want {
			t.Errorf("Prediction() = %q, want %q", rating.Prediction(), tt.want)
		}
	}
}

func TestRateOutOfScope(t *testing.T) {
	brain := NewBrain("testdata/comments.csv")

	tests := []struct {
		name     string
		answer   string
		positive bool
	}{
		{"positive answer", "This person is absolutely wonderful and amazing to work with", true},
		{"negative answer", "Working with this person is terrible and awful", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rating, err := brain.Rate(CategoryOutOfScope, tt.answer)
			if err != nil {
				t.Fatalf("Rate failed: %v", err)
			}
			if rating.Sentiment == nil {
				t.Fatal("out-of-scope rating must carry a sentiment score")
			}
			if tt.positive && rating.Sentiment.Compound <= 0 {
				t.Errorf("compound = %v, want > 0", rating.Sentiment.Compound)
			}
			if !tt.positive && rating.Sentiment.Compound >= 0 {
				t.Errorf("compound = %v, want < 0", rating.Sentiment.Compound)
			}
			if !strings.Contains(rating.Prediction(), "compound") {
				t.Errorf("Prediction() must encode the score as JSON, got %q", rating.Prediction())
			}
		})
	}
}

func TestRateOutOfScopeDeterministic(t *testing.T) {
	brain := NewBrain("testdata/comments.csv")

	first, err := brain.Rate(CategoryOutOfScope, "A solid and reliable colleague")
	if err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	second, err := brain.Rate(CategoryOutOfScope, "A solid and reliable colleague")
	if err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if *first.Sentiment != *second.Sentiment {
		t.Errorf("sentiment differs across calls: %+v vs %+v", first.Sentiment, second.Sentiment)
	}
}

func TestRateUnknownCategory(t *testing.T) {
	brain := NewBrain("testdata/comments.csv")

	_, err := brain.Rate(Category("Basket_Weaving"), "Some answer")
	if !IsColumnNotFound(err) {
		t.Errorf("expected ColumnNotFoundError, got %v", err)
	}
}

func TestRateMissingDataset(t *testing.T) {
	brain := NewBrain("testdata/does-not-exist.csv")

	_, err := brain.Rate(CategoryCommunication, "Some answer")
	if !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestBrainCachesModels(t *testing.T) {
	brain := NewBrain("testdata/comments.csv")

	if _, err := brain.Rate(CategoryCommunication, "Writes clearly and keeps the team informed"); err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if len(brain.cache) != 1 {
		t.Fatalf("expected one cached model, got %d", len(brain.cache))
	}

	if _, err := brain.Rate(CategoryCommunication, "Documents decisions clearly for everyone"); err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if len(brain.cache) != 1 {
		t.Errorf("same category and dataset must reuse the cached model, got %d entries", len(brain.cache))
	}

	if _, err := brain.Rate(CategoryPunctuality, "Shows up early and fully prepared"); err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if len(brain.cache) != 2 {
		t.Errorf("second category must train its own model, got %d entries", len(brain.cache))
	}
}

func TestBrainLabels(t *testing.T) {
	brain := NewBrain("testdata/comments.csv")

	labels, err := brain.Labels(CategoryCommunication)
	if err != nil {
		t.Fatalf("Labels failed: %v", err)
	}
	want := []string{"Good", "Poor"}
	if len(labels) != len(want) {
		t.Fatalf("Labels = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("Labels = %v, want %v", labels, want)
		}
	}
}
