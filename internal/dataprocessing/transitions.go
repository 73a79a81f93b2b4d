package dataprocessing

import (
	"sort"

	"sentipulse/pkg/contracts/domain"
)

// Transitions counts day-over-day moves between sentiment classifications.
// The index is ordered by date first, so transition counts do not depend
// on the file's row order. An index with fewer than two days yields nil.
func Transitions(sentiment []domain.SentimentRecord) []domain.SentimentTransition {
	if len(sentiment) < 2 {
		return nil
	}

	ordered := make([]domain.SentimentRecord, len(sentiment))
	copy(ordered, sentiment)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	type pair struct{ from, to string }
	counts := make(map[pair]int)
	for i := 1; i < len(ordered); i++ {
		counts[pair{from: ordered[i-1].Classification, to: ordered[i].Classification}]++
	}

	transitions := make([]domain.SentimentTransition, 0, len(counts))
	for p, count := range counts {
		transitions = append(transitions, domain.SentimentTransition{
			From:  p.from,
			To:    p.to,
			Count: count,
		})
	}

	// Most frequent first, label as tiebreaker for deterministic output.
	sort.Slice(transitions, func(i, j int) bool {
		if transitions[i].Count != transitions[j].Count {
			return transitions[i].Count > transitions[j].Count
		}
		return transitions[i].Label() < transitions[j].Label()
	})

	return transitions
}
