// Package classify trains outcome classifiers on a flat feature table.
package classify

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/utakatalp/match-predictor/internal/league"
)

var (
	ErrNotFitted         = errors.New("classifier is not fitted")
	ErrEmptyTrainingSet  = errors.New("empty training set")
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// Classifier is fit on feature rows and predicts one of league.Outcomes().
// PredictProba columns follow league.Outcomes() order.
type Classifier interface {
	Fit(x [][]float64, y []league.Outcome) error
	PredictProba(x [][]float64) ([][]float64, error)
	Predict(x [][]float64) ([]league.Outcome, error)
}

// Split shuffles n row indexes with seed and sets aside testFraction of them
// (rounded up) for testing.
func Split(n int, testFraction float64, seed int64) (train, test []int) {
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	testFraction = math.Max(0, math.Min(1, testFraction))
	nTest := int(math.Ceil(float64(n) * testFraction))
	return perm[nTest:], perm[:nTest]
}

// Accuracy is the share of predictions equal to the actual outcome.
func Accuracy(actual, predicted []league.Outcome) (float64, error) {
	if len(actual) != len(predicted) {
		return 0, fmt.Errorf("%d actual vs %d predicted: %w", len(actual), len(predicted), ErrDimensionMismatch)
	}
	if len(actual) == 0 {
		return 0, nil
	}
	hits := 0
	for i := range actual {
		if actual[i] == predicted[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(actual)), nil
}

func argmax(p []float64) int {
	best := 0
	for k := range p {
		if p[k] > p[best] {
			best = k
		}
	}
	return best
}
