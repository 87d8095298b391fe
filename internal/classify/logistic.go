package classify

import (
	"fmt"
	"math"

	"github.com/utakatalp/match-predictor/internal/league"
)

const (
	defaultIterations   = 500
	defaultLearningRate = 0.1
)

// Logistic is a multinomial logistic regression trained by batch gradient
// descent on z-scored features.
type Logistic struct {
	Iterations   int
	LearningRate float64
	// L2 penalizes non-bias weights.
	L2 float64
	// Balanced weights samples inversely to their class frequency.
	Balanced bool

	classes []league.Outcome
	mean    []float64
	scale   []float64
	weights [][]float64 // [class][bias, features...]
}

var _ Classifier = (*Logistic)(nil)

func NewLogistic(iterations int, learningRate float64) *Logistic {
	if iterations <= 0 {
		iterations = defaultIterations
	}
	if learningRate <= 0 {
		learningRate = defaultLearningRate
	}
	return &Logistic{Iterations: iterations, LearningRate: learningRate}
}

func (l *Logistic) Fit(x [][]float64, y []league.Outcome) error {
	if len(x) == 0 {
		return ErrEmptyTrainingSet
	}
	if len(x) != len(y) {
		return fmt.Errorf("%d rows vs %d labels: %w", len(x), len(y), ErrDimensionMismatch)
	}
	d := len(x[0])
	for i, row := range x {
		if len(row) != d {
			return fmt.Errorf("row %d has %d columns, want %d: %w", i, len(row), d, ErrDimensionMismatch)
		}
	}

	l.classes = league.Outcomes()
	classOf := make(map[league.Outcome]int, len(l.classes))
	for k, c := range l.classes {
		classOf[c] = k
	}
	target := make([]int, len(y))
	counts := make([]int, len(l.classes))
	for i, o := range y {
		k, ok := classOf[o]
		if !ok {
			return fmt.Errorf("row %d: unknown outcome %q", i, o)
		}
		target[i] = k
		counts[k]++
	}

	sampleWeight := make([]float64, len(l.classes))
	for k := range sampleWeight {
		sampleWeight[k] = 1
		if l.Balanced && counts[k] > 0 {
			sampleWeight[k] = float64(len(y)) / float64(len(l.classes)*counts[k])
		}
	}

	l.standardizeFrom(x)
	z := make([][]float64, len(x))
	for i, row := range x {
		z[i] = l.design(row)
	}

	l.weights = make([][]float64, len(l.classes))
	grad := make([][]float64, len(l.classes))
	for k := range l.weights {
		l.weights[k] = make([]float64, d+1)
		grad[k] = make([]float64, d+1)
	}

	n := float64(len(z))
	p := make([]float64, len(l.classes))
	for iter := 0; iter < l.Iterations; iter++ {
		for k := range grad {
			clear(grad[k])
		}
		for i, row := range z {
			l.softmax(row, p)
			sw := sampleWeight[target[i]]
			for k := range p {
				e := p[k]
				if k == target[i] {
					e--
				}
				e *= sw
				for j, v := range row {
					grad[k][j] += e * v
				}
			}
		}
		for k := range l.weights {
			for j := range l.weights[k] {
				g := grad[k][j] / n
				if j > 0 {
					g += l.L2 * l.weights[k][j]
				}
				l.weights[k][j] -= l.LearningRate * g
			}
		}
	}
	return nil
}

func (l *Logistic) PredictProba(x [][]float64) ([][]float64, error) {
	if l.weights == nil {
		return nil, ErrNotFitted
	}
	out := make([][]float64, len(x))
	for i, row := range x {
		if len(row) != len(l.mean) {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", i, len(row), len(l.mean), ErrDimensionMismatch)
		}
		out[i] = make([]float64, len(l.classes))
		l.softmax(l.design(row), out[i])
	}
	return out, nil
}

func (l *Logistic) Predict(x [][]float64) ([]league.Outcome, error) {
	probs, err := l.PredictProba(x)
	if err != nil {
		return nil, err
	}
	out := make([]league.Outcome, len(probs))
	for i, p := range probs {
		out[i] = l.classes[argmax(p)]
	}
	return out, nil
}

func (l *Logistic) standardizeFrom(x [][]float64) {
	d := len(x[0])
	l.mean = make([]float64, d)
	l.scale = make([]float64, d)
	n := float64(len(x))
	for _, row := range x {
		for j, v := range row {
			l.mean[j] += v / n
		}
	}
	for _, row := range x {
		for j, v := range row {
			diff := v - l.mean[j]
			l.scale[j] += diff * diff / n
		}
	}
	for j := range l.scale {
		l.scale[j] = math.Sqrt(l.scale[j])
		if l.scale[j] == 0 {
			l.scale[j] = 1
		}
	}
}

// design returns the standardized row with a leading bias term.
func (l *Logistic) design(row []float64) []float64 {
	out := make([]float64, len(row)+1)
	out[0] = 1
	for j, v := range row {
		out[j+1] = (v - l.mean[j]) / l.scale[j]
	}
	return out
}

func (l *Logistic) softmax(row []float64, p []float64) {
	maxLogit := math.Inf(-1)
	for k, w := range l.weights {
		p[k] = dot(w, row)
		maxLogit = math.Max(maxLogit, p[k])
	}
	sum := 0.0
	for k := range p {
		p[k] = math.Exp(p[k] - maxLogit)
		sum += p[k]
	}
	for k := range p {
		p[k] /= sum
	}
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
