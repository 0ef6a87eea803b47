package ml

import (
	"reflect"
	"sort"
	"testing"
)

func TestSplitIndicesDeterministic(t *testing.T) {
	train1, test1 := SplitIndices(100, 0.3, 31929)
	train2, test2 := SplitIndices(100, 0.3, 31929)

	if !reflect.DeepEqual(train1, train2) || !reflect.DeepEqual(test1, test2) {
		t.Error("same seed must produce the same split")
	}

	if len(test1) != 30 || len(train1) != 70 {
		t.Errorf("expected 70/30 split, got %d/%d", len(train1), len(test1))
	}

	// Train and test together must cover [0, n) exactly once.
	all := append(append([]int{}, train1...), test1...)
	sort.Ints(all)
	for i, idx := range all {
		if idx != i {
			t.Fatalf("split is not a partition of [0,100): position %d holds %d", i, idx)
		}
	}
}

func TestSplitIndicesDifferentSeeds(t *testing.T) {
	train1, _ := SplitIndices(100, 0.3, 1)
	train2, _ := SplitIndices(100, 0.3, 2)
	if reflect.DeepEqual(train1, train2) {
		t.Error("different seeds should shuffle differently")
	}
}

func TestSplitIndicesSmallN(t *testing.T) {
	train, test := SplitIndices(1, 0.3, 42)
	if len(train) != 1 || len(test) != 0 {
		t.Errorf("single row must stay in the train set, got %d/%d", len(train), len(test))
	}
}

func TestTrainLinearSeparable(t *testing.T) {
	docs := []string{
		"great excellent wonderful",
		"great excellent amazing",
		"excellent wonderful superb",
		"terrible awful horrible",
		"terrible awful dreadful",
		"awful horrible dismal",
	}
	labels := []string{"pos", "pos", "pos", "neg", "neg", "neg"}

	vectorizer := FitVectorizer(docs)
	features := make([][]float64, len(docs))
	for i, doc := range docs {
		features[i] = vectorizer.Transform(doc)
	}

	clf := TrainLinear(features, labels, 42)

	if !reflect.DeepEqual(clf.Classes(), []string{"neg", "pos"}) {
		t.Fatalf("expected sorted classes [neg pos], got %v", clf.Classes())
	}

	for i, doc := range docs {
		if got := clf.Predict(vectorizer.Transform(doc)); got != labels[i] {
			t.Errorf("Predict(%q) = %q, expected %q", doc, got, labels[i])
		}
	}
}

func TestTrainLinearDeterministic(t *testing.T) {
	docs := []string{"good solid work", "bad sloppy work", "good careful work", "bad rushed work"}
	labels := []string{"up", "down", "up", "down"}

	vectorizer := FitVectorizer(docs)
	features := make([][]float64, len(docs))
	for i, doc := range docs {
		features[i] = vectorizer.Transform(doc)
	}

	a := TrainLinear(features, labels, 7)
	b := TrainLinear(features, labels, 7)

	x := vectorizer.Transform("good work")
	if !reflect.DeepEqual(a.DecisionFunction(x), b.DecisionFunction(x)) {
		t.Error("training with the same seed must be bit-for-bit reproducible")
	}
}

func TestDecisionFunctionZeroVector(t *testing.T) {
	docs := []string{"alpha alpha one", "beta beta two"}
	labels := []string{"a", "b"}

	vectorizer := FitVectorizer(docs)
	features := make([][]float64, len(docs))
	for i, doc := range docs {
		features[i] = vectorizer.Transform(doc)
	}
	clf := TrainLinear(features, labels, 1)

	for _, score := range clf.DecisionFunction(make([]float64, vectorizer.Dim())) {
		if score != 0 {
			t.Errorf("zero input must have zero margins, got %f", score)
		}
	}
}
