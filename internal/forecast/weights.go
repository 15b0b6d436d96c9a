package forecast

import (
	"fmt"
	"math"

	"github.com/yourusername/clever-forecast/internal/models"
)

const weightTolerance = 1e-9

// Weights is a validated blend table covering every model exactly once
type Weights struct {
	values map[ModelName]float64
}

// DefaultWeights returns the standard blend
func DefaultWeights() Weights {
	return Weights{values: map[ModelName]float64{
		ModelPoisson:      0.25,
		ModelDixonColes:   0.30,
		ModelElo:          0.20,
		ModelMarkov:       0.15,
		ModelBradleyTerry: 0.10,
	}}
}

// NewWeights validates a blend table. Every model must be present with a
// non-negative weight, no unknown names are allowed and the total must be 1.
func NewWeights(table map[ModelName]float64) (Weights, error) {
	known := make(map[ModelName]bool, len(ModelNames))
	for _, n := range ModelNames {
		known[n] = true
	}

	values := make(map[ModelName]float64, len(table))
	for name, w := range table {
		if !known[name] {
			return Weights{}, fmt.Errorf("%w: %w: %q", models.ErrInvalidWeights, models.ErrUnknownModel, name)
		}
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return Weights{}, fmt.Errorf("%w: %s has weight %v", models.ErrInvalidWeights, name, w)
		}
		values[name] = w
	}

	total := 0.0
	for _, n := range ModelNames {
		w, ok := values[n]
		if !ok {
			return Weights{}, fmt.Errorf("%w: missing weight for %s", models.ErrInvalidWeights, n)
		}
		total += w
	}
	if math.Abs(total-1) > weightTolerance {
		return Weights{}, fmt.Errorf("%w: weights sum to %v", models.ErrInvalidWeights, total)
	}

	return Weights{values: values}, nil
}

// ParseWeights builds weights from string keys, as read from configuration
func ParseWeights(table map[string]float64) (Weights, error) {
	if len(table) == 0 {
		return DefaultWeights(), nil
	}
	typed := make(map[ModelName]float64, len(table))
	for k, w := range table {
		name, err := ParseModelName(k)
		if err != nil {
			return Weights{}, fmt.Errorf("%w: %w", models.ErrInvalidWeights, err)
		}
		typed[name] = w
	}
	return NewWeights(typed)
}

// Of returns the weight of a model
func (w Weights) Of(name ModelName) float64 {
	return w.values[name]
}

// Sum returns the total weight in evaluation order
func (w Weights) Sum() float64 {
	total := 0.0
	for _, n := range ModelNames {
		total += w.values[n]
	}
	return total
}
