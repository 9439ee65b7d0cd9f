package runstats

import (
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    []time.Duration
		expected Summary
	}{
		{
			name:     "Empty input yields zero summary",
			input:    nil,
			expected: Summary{},
		},
		{
			name:  "Single element",
			input: []time.Duration{500 * time.Millisecond},
			expected: Summary{
				Count:  1,
				Sum:    500 * time.Millisecond,
				Min:    500 * time.Millisecond,
				Max:    500 * time.Millisecond,
				Mean:   500 * time.Millisecond,
				Median: 500 * time.Millisecond,
			},
		},
		{
			name: "Odd count takes middle value as median",
			input: []time.Duration{
				300 * time.Millisecond,
				100 * time.Millisecond,
				200 * time.Millisecond,
			},
			expected: Summary{
				Count:  3,
				Sum:    600 * time.Millisecond,
				Min:    100 * time.Millisecond,
				Max:    300 * time.Millisecond,
				Mean:   200 * time.Millisecond,
				Median: 200 * time.Millisecond,
			},
		},
		{
			name: "Even count averages the two middle values",
			input: []time.Duration{
				400 * time.Millisecond,
				100 * time.Millisecond,
				300 * time.Millisecond,
				200 * time.Millisecond,
			},
			expected: Summary{
				Count:  4,
				Sum:    time.Second,
				Min:    100 * time.Millisecond,
				Max:    400 * time.Millisecond,
				Mean:   250 * time.Millisecond,
				Median: 250 * time.Millisecond,
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Summarize(tc.input)
			if got != tc.expected {
				t.Errorf("Summarize(%v) = %+v, expected %+v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestSummarizeDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	input := []time.Duration{3, 1, 2}
	Summarize(input)

	if input[0] != 3 || input[1] != 1 || input[2] != 2 {
		t.Errorf("Input was reordered: %v", input)
	}
}

func TestSpeedup(t *testing.T) {
	t.Parallel()

	if got := Speedup(10*time.Second, 2*time.Second); got != 5.0 {
		t.Errorf("Expected speedup 5.0, got %v", got)
	}
	if got := Speedup(10*time.Second, 0); got != 0 {
		t.Errorf("Expected 0 for zero concurrent duration, got %v", got)
	}
}
