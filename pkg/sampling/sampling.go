// Package sampling estimates the distribution of a stochastic function by
// running it repeatedly. Graders use it to derive expected values and
// tolerance bands for student code that draws random numbers.
package sampling

import (
	"errors"

	"gonum.org/v1/gonum/stat"

	"github.com/Sumatoshi-tech/autograde/pkg/sumstats"
)

// SpreadFactor is the number of standard deviations in a reported spread.
const SpreadFactor = 3

// ErrNoTrials is returned when the trial count is not positive.
var ErrNoTrials = errors.New("trial count must be positive")

// Counts runs fn n times and tallies each distinct outcome.
func Counts[T comparable](n int, fn func() T) (map[T]int, error) {
	if n <= 0 {
		return nil, ErrNoTrials
	}

	counts := make(map[T]int)
	for range n {
		counts[fn()]++
	}

	return counts, nil
}

// OutcomeProb runs fn n times and returns the fraction of runs that produced
// outcome.
func OutcomeProb[T comparable](n int, outcome T, fn func() T) (float64, error) {
	counts, err := Counts(n, fn)
	if err != nil {
		return 0, err
	}

	return float64(counts[outcome]) / float64(n), nil
}

// OutcomeMeanStd runs fn n times and returns the mean of its outputs and
// SpreadFactor population standard deviations.
func OutcomeMeanStd(n int, fn func() float64) (mean, spread float64, err error) {
	if n <= 0 {
		return 0, 0, ErrNoTrials
	}

	outputs := make([]float64, n)
	for i := range outputs {
		outputs[i] = fn()
	}

	mean, std := stat.PopMeanStdDev(outputs, nil)

	return mean, SpreadFactor * std, nil
}

// SumStatMeansStds runs fn n times and returns, per summary position, the
// mean across runs and SpreadFactor population standard deviations.
func SumStatMeansStds(n int, fn func() sumstats.Summary) (means, spreads [sumstats.Size]float64, err error) {
	if n <= 0 {
		return means, spreads, ErrNoTrials
	}

	var columns [sumstats.Size][]float64
	for i := range columns {
		columns[i] = make([]float64, n)
	}

	for run := range n {
		for i, v := range fn().Array() {
			columns[i][run] = v
		}
	}

	for i, col := range columns {
		mean, std := stat.PopMeanStdDev(col, nil)
		means[i] = mean
		spreads[i] = SpreadFactor * std
	}

	return means, spreads, nil
}
