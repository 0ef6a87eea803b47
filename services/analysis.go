package services

import (
	"context"
	"log/slog"

	"github.com/prodvi/backend/ml"
	"github.com/prodvi/backend/models"
)

// ReviewAnalysisService runs the per-answer classify-then-rate pipeline for
// a submitted review. A failure on one question is recorded on that entry
// only; the rest of the batch continues.
type ReviewAnalysisService struct {
	classifier *ml.QuestionClassifier
	brain      *ml.Brain
}

func NewReviewAnalysisService(classifier *ml.QuestionClassifier, brain *ml.Brain) *ReviewAnalysisService {
	return &ReviewAnalysisService{
		classifier: classifier,
		brain:      brain,
	}
}

// AnalyzeQuestion classifies a single question into a competency category.
func (s *ReviewAnalysisService) AnalyzeQuestion(question string) (ml.Category, float64, error) {
	return s.classifier.Classify(question)
}

// RateAnswer rates a single answer within a category.
func (s *ReviewAnalysisService) RateAnswer(category ml.Category, answer string) (ml.Rating, error) {
	return s.brain.Rate(category, answer)
}

// Analyze processes each submitted entry in form order: classify the
// question, then rate the answer within the resulting category (out-of-scope
// passes through to sentiment scoring). The returned slice parallels the
// input order, so two questions sharing the same text stay separate entries.
func (s *ReviewAnalysisService) Analyze(ctx context.Context, responses []models.ResponseEntry) []models.AnswerAnalysis {
	results := make([]models.AnswerAnalysis, 0, len(responses))

	for _, response := range responses {
		if err := ctx.Err(); err != nil {
			slog.Warn("Review analysis cancelled", "error", err)
			break
		}

		entry := models.AnswerAnalysis{
			Question: response.Question,
			Answer:   response.Answer,
		}

		category, confidence, err := s.classifier.Classify(response.Question)
		if err != nil {
			slog.Error("Question classification failed", "error", err, "question", response.Question)
			entry.Error = err.Error()
			results = append(results, entry)
			continue
		}
		entry.Category = string(category)
		entry.Confidence = confidence

		rating, err := s.brain.Rate(category, response.Answer)
		if err != nil {
			slog.Error("Answer rating failed", "error", err, "category", string(category))
			entry.Error = err.Error()
			results = append(results, entry)
			continue
		}
		entry.Prediction = rating.Prediction()

		results = append(results, entry)
	}

	return results
}
