package ml

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/jonreiter/govader"
)

// SentimentScore is the four-component polarity score for an out-of-scope
// answer. Negative/neutral/positive are in [0,1], compound in [-1,1].
type SentimentScore struct {
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Positive float64 `json:"positive"`
	Compound float64 `json:"compound"`
}

// Rating is the result of rating an answer: a discrete label for trained
// categories, or a sentiment score for out-of-scope ones. Exactly one of the
// two is set.
type Rating struct {
	Label     string          `json:"label,omitempty"`
	Sentiment *SentimentScore `json:"sentiment,omitempty"`
}

// Prediction renders the rating as a single persistable string: the label
// itself, or the sentiment score as compact JSON.
func (r Rating) Prediction() string {
	if r.Sentiment == nil {
		return r.Label
	}
	encoded, err := json.Marshal(r.Sentiment)
	if err != nil {
		return ""
	}
	return string(encoded)
}

// Brain rates free-text answers. For trained categories it loads the
// category's dataset column, trains a fresh TF-IDF + linear model with the
// category's fixed split seed, and predicts the label. Out-of-scope answers
// get a lexicon-based sentiment score instead.
//
// Trained models are cached keyed by category plus a content hash of the
// column rows, so a dataset edit invalidates the cache without ever changing
// what a given dataset version predicts.
type Brain struct {
	datasetPath string

	mu    sync.Mutex
	cache map[string]*Model
}

// NewBrain creates a rater backed by the comment dataset at datasetPath.
func NewBrain(datasetPath string) *Brain {
	return &Brain{
		datasetPath: datasetPath,
		cache:       make(map[string]*Model),
	}
}

// Rate maps an answer to a rating for the given category. Unknown categories
// surface ColumnNotFoundError; a missing dataset surfaces ErrDataUnavailable.
func (b *Brain) Rate(category Category, answer string) (Rating, error) {
	if Category(strings.TrimSpace(string(category))).IsOutOfScope() {
		// Lexicon lookup only, so constructing the analyzer per call is
		// cheap and keeps Rate stateless for out-of-scope answers.
		score := govader.NewSentimentIntensityAnalyzer().PolarityScores(answer)
		result := Rating{Sentiment: &SentimentScore{
			Negative: score.Negative,
			Neutral:  score.Neutral,
			Positive: score.Positive,
			Compound: score.Compound,
		}}
		slog.Info("Answer sentiment scored", "compound", result.Sentiment.Compound)
		return result, nil
	}

	model, err := b.modelFor(category)
	if err != nil {
		return Rating{}, err
	}

	label := model.Predict(answer)
	slog.Info("Answer rated", "category", string(category), "label", label)
	return Rating{Label: label}, nil
}

// Labels returns the known label set for a trained category.
func (b *Brain) Labels(category Category) ([]string, error) {
	model, err := b.modelFor(category)
	if err != nil {
		return nil, err
	}
	return model.Classes(), nil
}

func (b *Brain) modelFor(category Category) (*Model, error) {
	category = Category(strings.TrimSpace(string(category)))

	texts, labels, err := LoadCategoryColumn(b.datasetPath, category)
	if err != nil {
		return nil, err
	}

	key := cacheKey(category, texts, labels)

	b.mu.Lock()
	model, ok := b.cache[key]
	b.mu.Unlock()
	if ok {
		return model, nil
	}

	model = TrainModel(texts, labels, category.SplitSeed())

	b.mu.Lock()
	b.cache[key] = model
	b.mu.Unlock()

	slog.Info("Rating model trained", "category", string(category), "rows", len(texts))
	return model, nil
}

func cacheKey(category Category, texts, labels []string) string {
	hash := sha256.New()
	hash.Write([]byte(category))
	for i := range texts {
		hash.Write([]byte{0})
		hash.Write([]byte(texts[i]))
		hash.Write([]byte{1})
		hash.Write([]byte(labels[i]))
	}
	return hex.EncodeToString(hash.Sum(nil))
}
