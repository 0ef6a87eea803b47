package ml

import (
	"log/slog"
	"math"
	"sync"
)

// ConfidenceThreshold is the minimum absolute decision margin for a question
// to be assigned a concrete category. Anything below it is out of scope.
const ConfidenceThreshold = 0.9

// QuestionClassifier maps a free-text question to a competency category.
// Train loads the labeled question dataset and fits the model once per
// process; Classify is safe for concurrent use afterwards.
type QuestionClassifier struct {
	csvPath   string
	threshold float64

	mu    sync.RWMutex
	model *Model
}

// NewQuestionClassifier creates a classifier backed by the question dataset
// at csvPath. Call Train before Classify.
func NewQuestionClassifier(csvPath string) *QuestionClassifier {
	return &QuestionClassifier{
		csvPath:   csvPath,
		threshold: ConfidenceThreshold,
	}
}

// Train loads the question dataset and fits the model. A missing or
// malformed dataset returns ErrDataUnavailable; there is no fallback, so
// callers treat this as fatal.
func (c *QuestionClassifier) Train() error {
	questions, labels, err := LoadQuestionSet(c.csvPath)
	if err != nil {
		return err
	}

	model := TrainModel(questions, labels, QuestionSetSeed)

	c.mu.Lock()
	c.model = model
	c.mu.Unlock()

	slog.Info("Question classifier trained", "questions", len(questions), "classes", len(model.Classes()))
	return nil
}

// Classify returns the competency category for a question along with the
// classifier's confidence (the maximum absolute decision margin). Questions
// whose margin falls below the threshold come back as out of scope with
// confidence 0.
func (c *QuestionClassifier) Classify(question string) (Category, float64, error) {
	c.mu.RLock()
	model := c.model
	c.mu.RUnlock()

	if model == nil {
		return CategoryOutOfScope, 0, ErrNotTrained
	}

	scores := model.DecisionFunction(question)
	maxScore := 0.0
	for _, score := range scores {
		if abs := math.Abs(score); abs > maxScore {
			maxScore = abs
		}
	}

	if maxScore < c.threshold {
		slog.Info("Question classified", "category", string(CategoryOutOfScope), "max_margin", maxScore)
		return CategoryOutOfScope, 0, nil
	}

	predicted := Category(model.Predict(question))
	slog.Info("Question classified", "category", string(predicted), "confidence", maxScore)
	return predicted, maxScore, nil
}
