package dataprocessing

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"sentipulse/pkg/contracts/domain"
)

// Analyzer computes the aggregate tables derived from the merged data set.
type Analyzer struct {
	logger     *slog.Logger
	topTraders int
}

// AnalyzerConfig holds configuration options for the Analyzer.
type AnalyzerConfig struct {
	TopTraders int // number of accounts in the top-performer table
}

// AccountPnL is one row of the top-performer table.
type AccountPnL struct {
	Account  string
	TotalPnL float64
}

// ClassificationPnL is the mean P&L across all merged trades sharing a
// sentiment classification.
type ClassificationPnL struct {
	Classification string
	MeanPnL        float64
}

// ClassificationCount counts calendar days per sentiment classification.
type ClassificationCount struct {
	Classification string
	Days           int
}

// NewAnalyzer creates an analyzer with the given configuration.
func NewAnalyzer(logger *slog.Logger, cfg AnalyzerConfig) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TopTraders <= 0 {
		cfg.TopTraders = 10
	}
	return &Analyzer{logger: logger, topTraders: cfg.TopTraders}
}

type metricKey struct {
	account        string
	date           string
	classification string
}

type metricAccumulator struct {
	count         int
	totalPnL      float64
	totalSize     float64
	leverageSum   float64
	leverageCount int
}

// Aggregate groups merged rows by (account, date, classification) and
// computes the per-group metrics. Every merged row belongs to exactly one
// group, and the output is sorted by account, then date, then
// classification so repeated runs produce identical tables.
func (a *Analyzer) Aggregate(ctx context.Context, merged []domain.MergedRecord) []domain.TraderMetric {
	groups := make(map[metricKey]*metricAccumulator)
	dates := make(map[metricKey]domain.MergedRecord)

	for _, m := range merged {
		key := metricKey{
			account:        m.Account,
			date:           m.DateKey(),
			classification: m.Classification,
		}
		acc, ok := groups[key]
		if !ok {
			acc = &metricAccumulator{}
			groups[key] = acc
			dates[key] = m
		}
		acc.count++
		acc.totalPnL += m.ClosedPnL
		acc.totalSize += m.Size
		if lev, ok := parseLeverage(m.Leverage); ok {
			acc.leverageSum += lev
			acc.leverageCount++
		}
	}

	metrics := make([]domain.TraderMetric, 0, len(groups))
	for key, acc := range groups {
		metric := domain.TraderMetric{
			Account:        key.account,
			Date:           dates[key].Date,
			Classification: key.classification,
			TradeCount:     acc.count,
			TotalPnL:       acc.totalPnL,
			MeanPnL:        acc.totalPnL / float64(acc.count),
			AvgSize:        acc.totalSize / float64(acc.count),
		}
		if acc.leverageCount > 0 {
			metric.AvgLeverage = acc.leverageSum / float64(acc.leverageCount)
		}
		metrics = append(metrics, metric)
	}

	sort.Slice(metrics, func(i, j int) bool {
		if metrics[i].Account != metrics[j].Account {
			return metrics[i].Account < metrics[j].Account
		}
		if !metrics[i].Date.Equal(metrics[j].Date) {
			return metrics[i].Date.Before(metrics[j].Date)
		}
		return metrics[i].Classification < metrics[j].Classification
	})

	a.logger.InfoContext(ctx, "aggregated trader metrics",
		slog.Int("merged_rows", len(merged)),
		slog.Int("metric_rows", len(metrics)))

	return metrics
}

// TopAccounts returns the configured number of accounts ranked by total
// P&L across all merged trades, best first. Ties break on account name
// so the ranking is stable.
func (a *Analyzer) TopAccounts(merged []domain.MergedRecord) []AccountPnL {
	totals := make(map[string]float64)
	for _, m := range merged {
		totals[m.Account] += m.ClosedPnL
	}

	ranked := make([]AccountPnL, 0, len(totals))
	for account, pnl := range totals {
		ranked = append(ranked, AccountPnL{Account: account, TotalPnL: pnl})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalPnL != ranked[j].TotalPnL {
			return ranked[i].TotalPnL > ranked[j].TotalPnL
		}
		return ranked[i].Account < ranked[j].Account
	})

	if len(ranked) > a.topTraders {
		ranked = ranked[:a.topTraders]
	}
	return ranked
}

// MeanPnLByClassification averages the P&L of merged trades per sentiment
// classification, sorted by classification name.
func (a *Analyzer) MeanPnLByClassification(merged []domain.MergedRecord) []ClassificationPnL {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, m := range merged {
		sums[m.Classification] += m.ClosedPnL
		counts[m.Classification]++
	}

	result := make([]ClassificationPnL, 0, len(sums))
	for classification, sum := range sums {
		result = append(result, ClassificationPnL{
			Classification: classification,
			MeanPnL:        sum / float64(counts[classification]),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Classification < result[j].Classification
	})
	return result
}

// ClassificationCounts counts sentiment days per classification over the
// whole index, sorted by day count descending then name, matching the
// distribution chart's slice order.
func (a *Analyzer) ClassificationCounts(sentiment []domain.SentimentRecord) []ClassificationCount {
	counts := make(map[string]int)
	for _, s := range sentiment {
		counts[s.Classification]++
	}

	result := make([]ClassificationCount, 0, len(counts))
	for classification, days := range counts {
		result = append(result, ClassificationCount{Classification: classification, Days: days})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Days != result[j].Days {
			return result[i].Days > result[j].Days
		}
		return result[i].Classification < result[j].Classification
	})
	return result
}

// parseLeverage interprets a leverage cell. The "unknown" sentinel and
// anything non-numeric are excluded from averages.
func parseLeverage(value string) (float64, bool) {
	if value == "" || value == domain.LeverageUnknown {
		return 0, false
	}
	cleaned := strings.TrimSuffix(strings.TrimSpace(value), "x")
	lev, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return lev, true
}
