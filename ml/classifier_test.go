package ml

import (
	"errors"
	"testing"
)

func TestClassifyBeforeTrain(t *testing.T) {
	classifier := NewQuestionClassifier("testdata/questions.csv")

	category, confidence, err := classifier.Classify("How is the communication")
	if !errors.Is(err, ErrNotTrained) {
		t.Fatalf("expected ErrNotTrained, got %v", err)
	}
	if category != CategoryOutOfScope || confidence != 0 {
		t.Errorf("untrained classify must return out of scope with zero confidence, got %q/%v", category, confidence)
	}
}

func TestTrainMissingDataset(t *testing.T) {
	classifier := NewQuestionClassifier("testdata/does-not-exist.csv")
	if err := classifier.Train(); !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestClassifyTrainedQuestions(t *testing.T) {
	classifier := NewQuestionClassifier("testdata/questions.csv")
	if err := classifier.Train(); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	tests := []struct {
		question string
		want     Category
	}{
		{"How well does this person handle communication with the team", CategoryCommunication},
		{"Is this person punctual for meetings", CategoryPunctuality},
	}
	for _, tt := range tests {
		category, confidence, err := classifier.Classify(tt.question)
		if err != nil {
			t.Fatalf("Classify(%q) failed: %v", tt.question, err)
		}
		if category != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.question, category, tt.want)
		}
		if confidence < ConfidenceThreshold {
			t.Errorf("Classify(%q) confidence = %v, want >= %v", tt.question, confidence, ConfidenceThreshold)
		}
	}
}

func TestClassifyUnrelatedQuestion(t *testing.T) {
	classifier := NewQuestionClassifier("testdata/questions.csv")
	if err := classifier.Train(); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	// No token overlap with the training vocabulary, so every margin is
	// exactly zero and the question falls below the threshold.
	category, confidence, err := classifier.Classify("zzz qqq xyzzy")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if category != CategoryOutOfScope {
		t.Errorf("expected out of scope, got %q", category)
	}
	if confidence != 0 {
		t.Errorf("out-of-scope confidence must be 0, got %v", confidence)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	question := "Rate the communication skills of this colleague"

	var categories []Category
	var confidences []float64
	for i := 0; i < 2; i++ {
		classifier := NewQuestionClassifier("testdata/questions.csv")
		if err := classifier.Train(); err != nil {
			t.Fatalf("Train failed: %v", err)
		}
		category, confidence, err := classifier.Classify(question)
		if err != nil {
			t.Fatalf("Classify failed: %v", err)
		}
		categories = append(categories, category)
		confidences = append(confidences, confidence)
	}

	if categories[0] != categories[1] || confidences[0] != confidences[1] {
		t.Errorf("two trainings disagree: %q/%v vs %q/%v",
			categories[0], confidences[0], categories[1], confidences[1])
	}
}
