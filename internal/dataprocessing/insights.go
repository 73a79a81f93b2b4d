package dataprocessing

import (
	"fmt"

	"sentipulse/pkg/contracts/domain"
)

// GenerateInsights derives plain-text observations from the merged data
// set: how traders fare under Fear and Greed, and the average leverage
// they run under each. Returns nil when there is nothing to say.
func GenerateInsights(merged []domain.MergedRecord) []string {
	if len(merged) == 0 {
		return nil
	}

	pnlSums := make(map[string]float64)
	pnlCounts := make(map[string]int)
	levSums := make(map[string]float64)
	levCounts := make(map[string]int)

	for _, m := range merged {
		pnlSums[m.Classification] += m.ClosedPnL
		pnlCounts[m.Classification]++
		if lev, ok := parseLeverage(m.Leverage); ok {
			levSums[m.Classification] += lev
			levCounts[m.Classification]++
		}
	}

	meanPnL := func(classification string) (float64, bool) {
		count, ok := pnlCounts[classification]
		if !ok || count == 0 {
			return 0, false
		}
		return pnlSums[classification] / float64(count), true
	}

	avgLeverage := func(classification string) float64 {
		if levCounts[classification] == 0 {
			return 0
		}
		return levSums[classification] / float64(levCounts[classification])
	}

	var insights []string

	if mean, ok := meanPnL("Fear"); ok && mean < 0 {
		insights = append(insights, "Traders tend to lose more during Fear sentiment.")
	}
	if mean, ok := meanPnL("Greed"); ok && mean > 0 {
		insights = append(insights, "Traders perform better during Greed sentiment.")
	}

	insights = append(insights,
		fmt.Sprintf("Avg leverage during Fear: %.2f", avgLeverage("Fear")),
		fmt.Sprintf("Avg leverage during Greed: %.2f", avgLeverage("Greed")),
	)

	return insights
}
