// Package runstats computes timing statistics over the per-resource
// durations recorded in a run report. It is pure logic with no I/O,
// so higher layers can summarize runs without pulling in their
// dependencies.
package runstats

import (
	"sort"
	"time"
)

// Summary aggregates the per-resource durations of a single run.
type Summary struct {
	Count  int           `json:"count"`
	Sum    time.Duration `json:"sum"`
	Min    time.Duration `json:"min"`
	Max    time.Duration `json:"max"`
	Mean   time.Duration `json:"mean"`
	Median time.Duration `json:"median"`
}

// Summarize computes a Summary over the given durations. A nil or
// empty slice yields the zero Summary. The input is not modified.
func Summarize(durations []time.Duration) Summary {
	if len(durations) == 0 {
		return Summary{}
	}

	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum time.Duration
	for _, d := range sorted {
		sum += d
	}

	return Summary{
		Count:  len(sorted),
		Sum:    sum,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   sum / time.Duration(len(sorted)),
		Median: median(sorted),
	}
}

// median expects its input to be sorted. For an even number of
// elements it returns the mean of the two middle values.
func median(sorted []time.Duration) time.Duration {
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// Speedup reports how much faster the second total is relative to the
// first, as a ratio. It returns 0 when the second duration is zero to
// avoid dividing by it.
func Speedup(sequential, concurrent time.Duration) float64 {
	if concurrent <= 0 {
		return 0
	}
	return float64(sequential) / float64(concurrent)
}
