package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prodvi/backend/ml"
	"github.com/prodvi/backend/models"
)

func newTestAnalysisService(t *testing.T, commentDataPath string) *ReviewAnalysisService {
	t.Helper()

	classifier := ml.NewQuestionClassifier("testdata/questions.csv")
	if err := classifier.Train(); err != nil {
		t.Fatalf("failed to train classifier: %v", err)
	}
	return NewReviewAnalysisService(classifier, ml.NewBrain(commentDataPath))
}

func TestAnalyzeFullBatch(t *testing.T) {
	service := newTestAnalysisService(t, "testdata/comments.csv")

	responses := []models.ResponseEntry{
		{Question: "How well does this person handle communication with the team", Answer: "Explains everything clearly in every update"},
		{Question: "Is this person punctual for meetings", Answer: "Consistently late to team ceremonies"},
	}

	results := service.Analyze(context.Background(), responses)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	for i, result := range results {
		if result.Question != responses[i].Question {
			t.Errorf("result %d out of order: %q", i, result.Question)
		}
		if result.Error != "" {
			t.Errorf("result %d unexpectedly failed: %s", i, result.Error)
		}
		if result.Confidence < ml.ConfidenceThreshold {
			t.Errorf("result %d confidence = %v, want >= %v", i, result.Confidence, ml.ConfidenceThreshold)
		}
	}
	if results[0].Category != "Communication" || results[0].Prediction != "Good" {
		t.Errorf("unexpected first result %+v", results[0])
	}
	if results[1].Category != "Punctuality" || results[1].Prediction != "Poor" {
		t.Errorf("unexpected second result %+v", results[1])
	}
}

func TestAnalyzeOutOfScopeQuestion(t *testing.T) {
	service := newTestAnalysisService(t, "testdata/comments.csv")

	responses := []models.ResponseEntry{
		{Question: "Wibble wobble flurb", Answer: "A genuinely wonderful colleague"},
	}

	results := service.Analyze(context.Background(), responses)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Category != string(ml.CategoryOutOfScope) {
		t.Errorf("category = %q, want out of scope", results[0].Category)
	}
	if results[0].Confidence != 0 {
		t.Errorf("out-of-scope confidence = %v, want 0", results[0].Confidence)
	}
	if !strings.Contains(results[0].Prediction, "compound") {
		t.Errorf("expected a sentiment prediction, got %q", results[0].Prediction)
	}
}

func TestAnalyzeIsolatesFailures(t *testing.T) {
	// A comment dataset that only covers Communication: punctuality
	// questions classify fine but cannot be rated.
	path := filepath.Join(t.TempDir(), "comments.csv")
	contents := "Communication\n" +
		"Explains everything clearly(Good)\nWrites clearly for everyone(Good)\nSpeaks clearly in meetings(Good)\n" +
		"Updates are confusing(Poor)\nNotes are confusing to read(Poor)\nInstructions are confusing(Poor)\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	service := newTestAnalysisService(t, path)

	responses := []models.ResponseEntry{
		{Question: "How well does this person handle communication with the team", Answer: "Explains everything clearly"},
		{Question: "Is this person punctual for meetings", Answer: "Always on time"},
		{Question: "Rate the communication skills of this colleague", Answer: "Updates are confusing"},
	}

	results := service.Analyze(context.Background(), responses)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0].Error != "" || results[0].Prediction != "Good" {
		t.Errorf("first question must succeed, got %+v", results[0])
	}
	if results[1].Error == "" {
		t.Error("second question must record its rating failure")
	}
	if results[1].Category != "Punctuality" {
		t.Errorf("failed entry keeps its classification, got %q", results[1].Category)
	}
	if results[2].Error != "" || results[2].Prediction != "Poor" {
		t.Errorf("failure must not leak into the third question, got %+v", results[2])
	}
}

func TestAnalyzeStopsOnCancelledContext(t *testing.T) {
	service := newTestAnalysisService(t, "testdata/comments.csv")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	responses := []models.ResponseEntry{
		{Question: "Is this person punctual for meetings", Answer: "Always on time"},
	}
	results := service.Analyze(ctx, responses)
	if len(results) != 0 {
		t.Errorf("expected no results on a cancelled context, got %d", len(results))
	}
}

func TestAnalyzeKeepsDuplicateQuestionsSeparate(t *testing.T) {
	service := newTestAnalysisService(t, "testdata/comments.csv")

	responses := []models.ResponseEntry{
		{Question: "Is this person punctual for meetings", Answer: "Arrives early for every single meeting"},
		{Question: "Is this person punctual for meetings", Answer: "Consistently late to team ceremonies"},
	}

	results := service.Analyze(context.Background(), responses)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Prediction != "Excellent" || results[1].Prediction != "Poor" {
		t.Errorf("duplicate question texts must keep their own answers, got %q and %q",
			results[0].Prediction, results[1].Prediction)
	}
}
