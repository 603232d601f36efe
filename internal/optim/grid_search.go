package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/nbodysim/internal/experiment"
)

// GridSearch evaluates every combination of parameter values and keeps the
// one with the lowest metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	evaluated  int
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Evaluated is the number of experiments run by the last Search.
func (g *GridSearch) Evaluated() int { return g.evaluated }

// Search returns the best parameter set and its metric value. Set maximize to
// search for the highest value instead. The first failing experiment aborts
// the search.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	metricName string,
	maximize bool,
) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("grid search: %d names for %d ranges", len(g.paramNames), len(g.ranges))
	}

	sign := 1.0
	if maximize {
		sign = -1.0
	}

	best := math.Inf(1)
	var bestParams map[string]float64
	g.evaluated = 0

	err := g.searchRecursive(ctx, 0, make(map[string]float64), buildExperiment, metricName, sign, &best, &bestParams)
	if err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, fmt.Errorf("grid search: no combinations evaluated")
	}

	return bestParams, sign * best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	metricName string,
	sign float64,
	best *float64,
	bestParams *map[string]float64,
) error {
	if depth == len(g.paramNames) {
		exp, err := buildExperiment(current)
		if err != nil {
			return err
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return err
		}
		g.evaluated++

		val, ok := result.Metrics[metricName]
		if !ok {
			return fmt.Errorf("grid search: metric %s not recorded", metricName)
		}
		if sign*val < *best {
			*best = sign * val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, buildExperiment, metricName, sign, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}
