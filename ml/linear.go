package ml

import (
	"math/rand"
	"sort"
)

const (
	trainEpochs = 25
	regLambda   = 1e-4
)

// LinearClassifier is a one-vs-rest linear text classifier trained with
// hinge-loss SGD. Training is fully deterministic for a given seed, which is
// what makes the fixed per-category seeds meaningful.
type LinearClassifier struct {
	classes []string
	weights [][]float64
}

// TrainLinear fits one binary hinge-loss model per class over the feature
// vectors. Class order is the sorted set of distinct labels.
func TrainLinear(features [][]float64, labels []string, seed int64) *LinearClassifier {
	classSet := make(map[string]bool)
	for _, label := range labels {
		classSet[label] = true
	}
	classes := make([]string, 0, len(classSet))
	for class := range classSet {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	dim := 0
	if len(features) > 0 {
		dim = len(features[0])
	}

	clf := &LinearClassifier{
		classes: classes,
		weights: make([][]float64, len(classes)),
	}

	rng := rand.New(rand.NewSource(seed))
	order := make([]int, len(features))
	for i := range order {
		order[i] = i
	}

	for c, class := range classes {
		w := make([]float64, dim)
		step := 0
		for epoch := 0; epoch < trainEpochs; epoch++ {
			rng.Shuffle(len(order), func(i, j int) {
				order[i], order[j] = order[j], order[i]
			})
			for _, idx := range order {
				step++
				eta := 1.0 / (regLambda * float64(step+1))
				y := -1.0
				if labels[idx] == class {
					y = 1.0
				}
				x := features[idx]
				var margin float64
				for d, val := range x {
					margin += w[d] * val
				}
				for d := range w {
					w[d] -= eta * regLambda * w[d]
				}
				if y*margin < 1 {
					for d, val := range x {
						w[d] += eta * y * val
					}
				}
			}
		}
		clf.weights[c] = w
	}

	return clf
}

// Classes returns the class labels in decision-function order.
func (c *LinearClassifier) Classes() []string {
	return c.classes
}

// DecisionFunction returns the per-class margins for a feature vector.
func (c *LinearClassifier) DecisionFunction(x []float64) []float64 {
	scores := make([]float64, len(c.classes))
	for i, w := range c.weights {
		var score float64
		for d, val := range x {
			if d < len(w) {
				score += w[d] * val
			}
		}
		scores[i] = score
	}
	return scores
}

// Predict returns the class with the highest margin.
func (c *LinearClassifier) Predict(x []float64) string {
	if len(c.classes) == 0 {
		return ""
	}
	scores := c.DecisionFunction(x)
	best := 0
	for i, score := range scores {
		if score > scores[best] {
			best = i
		}
	}
	return c.classes[best]
}

// SplitIndices deterministically shuffles [0,n) with the given seed and
// returns the train portion followed by the held-out test portion.
func SplitIndices(n int, testFraction float64, seed int64) (train, test []int) {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(n, func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	testSize := int(float64(n) * testFraction)
	if testSize >= n {
		testSize = n - 1
	}
	if testSize < 0 {
		testSize = 0
	}
	return indices[testSize:], indices[:testSize]
}

// Model bundles a fitted vectorizer with its classifier.
type Model struct {
	vectorizer *Vectorizer
	classifier *LinearClassifier
}

// TrainModel performs the seeded 70/30 split, fits the vectorizer on the
// training texts, and trains the classifier. The held-out portion is not
// used for prediction; it exists so the split (and therefore the trained
// model) reproduces the original exactly.
func TrainModel(texts, labels []string, seed int64) *Model {
	trainIdx, _ := SplitIndices(len(texts), 0.3, seed)

	trainTexts := make([]string, 0, len(trainIdx))
	trainLabels := make([]string, 0, len(trainIdx))
	for _, idx := range trainIdx {
		trainTexts = append(trainTexts, texts[idx])
		trainLabels = append(trainLabels, labels[idx])
	}

	vectorizer := FitVectorizer(trainTexts)
	features := make([][]float64, len(trainTexts))
	for i, text := range trainTexts {
		features[i] = vectorizer.Transform(text)
	}

	return &Model{
		vectorizer: vectorizer,
		classifier: TrainLinear(features, trainLabels, seed),
	}
}

// Classes returns the model's class labels.
func (m *Model) Classes() []string {
	return m.classifier.Classes()
}

// DecisionFunction returns the per-class margins for a document.
func (m *Model) DecisionFunction(text string) []float64 {
	return m.classifier.DecisionFunction(m.vectorizer.Transform(text))
}

// Predict returns the predicted class for a document.
func (m *Model) Predict(text string) string {
	return m.classifier.Predict(m.vectorizer.Transform(text))
}
