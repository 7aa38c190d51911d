package topics

import "testing"

func TestSuggestDifficulty(t *testing.T) {
	tests := []struct {
		name   string
		base   int
		stats  Stats
		expect int
	}{
		{
			name:   "never asked keeps base",
			base:   3,
			stats:  Stats{LastTurn: -1},
			expect: 3,
		},
		{
			name:   "strong average raises",
			base:   3,
			stats:  Stats{Asked: 2, AvgScore: 0.8},
			expect: 4,
		},
		{
			name:   "raise capped at five",
			base:   5,
			stats:  Stats{Asked: 2, AvgScore: 0.9},
			expect: 5,
		},
		{
			name:   "weak average lowers",
			base:   3,
			stats:  Stats{Asked: 2, AvgScore: 0.3},
			expect: 2,
		},
		{
			name:   "lower floored at one",
			base:   1,
			stats:  Stats{Asked: 2, AvgScore: 0.1},
			expect: 1,
		},
		{
			name:   "middling average unchanged",
			base:   3,
			stats:  Stats{Asked: 2, AvgScore: 0.5},
			expect: 3,
		},
		{
			name:   "raise threshold is inclusive",
			base:   2,
			stats:  Stats{Asked: 1, AvgScore: 0.75},
			expect: 3,
		},
		{
			name:   "lower threshold is inclusive",
			base:   2,
			stats:  Stats{Asked: 1, AvgScore: 0.4},
			expect: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SuggestDifficulty(tt.base, tt.stats); got != tt.expect {
				t.Fatalf("expected %d, got %d", tt.expect, got)
			}
		})
	}
}
