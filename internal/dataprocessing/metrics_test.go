package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentipulse/pkg/contracts/domain"
)

func mergedTrade(account string, date time.Time, classification string, pnl float64) domain.MergedRecord {
	return domain.MergedRecord{
		TradeRecord:    trade(account, date, pnl),
		Classification: classification,
	}
}

func TestAnalyzer_Aggregate_SingleTrade(t *testing.T) {
	ctx := context.Background()
	analyzer := NewAnalyzer(slog.Default(), AnalyzerConfig{})

	merged := []domain.MergedRecord{
		mergedTrade("A1", day(2024, 1, 2), "Greed", 100),
	}

	metrics := analyzer.Aggregate(ctx, merged)

	require.Len(t, metrics, 1)
	m := metrics[0]
	assert.Equal(t, "A1", m.Account)
	assert.Equal(t, day(2024, 1, 2), m.Date)
	assert.Equal(t, "Greed", m.Classification)
	assert.Equal(t, 1, m.TradeCount)
	assert.InDelta(t, 100, m.TotalPnL, 1e-9)
	assert.InDelta(t, 100, m.MeanPnL, 1e-9)
}

func TestAnalyzer_Aggregate_Grouping(t *testing.T) {
	ctx := context.Background()
	analyzer := NewAnalyzer(slog.Default(), AnalyzerConfig{})

	merged := []domain.MergedRecord{
		mergedTrade("A2", day(2024, 1, 3), "Fear", -20),
		mergedTrade("A1", day(2024, 1, 2), "Greed", 100),
		mergedTrade("A1", day(2024, 1, 2), "Greed", 50),
		mergedTrade("A1", day(2024, 1, 3), "Fear", -30),
	}

	metrics := analyzer.Aggregate(ctx, merged)
	require.Len(t, metrics, 3)

	// Sorted by account, then date, then classification.
	assert.Equal(t, "A1", metrics[0].Account)
	assert.Equal(t, day(2024, 1, 2), metrics[0].Date)
	assert.Equal(t, 2, metrics[0].TradeCount)
	assert.InDelta(t, 150, metrics[0].TotalPnL, 1e-9)
	assert.InDelta(t, 75, metrics[0].MeanPnL, 1e-9)

	assert.Equal(t, "A1", metrics[1].Account)
	assert.Equal(t, day(2024, 1, 3), metrics[1].Date)
	assert.Equal(t, "A2", metrics[2].Account)

	// Every (account, date, classification) key is unique, and every merged
	// row landed in exactly one group.
	seen := make(map[string]bool)
	total := 0
	for _, m := range metrics {
		key := fmt.Sprintf("%s|%s|%s", m.Account, m.Date.Format("2006-01-02"), m.Classification)
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
		total += m.TradeCount
	}
	assert.Equal(t, len(merged), total)
}

func TestAnalyzer_Aggregate_Deterministic(t *testing.T) {
	ctx := context.Background()
	analyzer := NewAnalyzer(slog.Default(), AnalyzerConfig{})

	merged := []domain.MergedRecord{
		mergedTrade("B", day(2024, 2, 1), "Fear", 5),
		mergedTrade("A", day(2024, 2, 2), "Greed", 10),
		mergedTrade("A", day(2024, 2, 1), "Fear", -5),
		mergedTrade("C", day(2024, 2, 1), "Fear", 1),
	}

	first := analyzer.Aggregate(ctx, merged)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, analyzer.Aggregate(ctx, merged))
	}
}

func TestAnalyzer_Aggregate_Leverage(t *testing.T) {
	ctx := context.Background()
	analyzer := NewAnalyzer(slog.Default(), AnalyzerConfig{})

	withLeverage := func(m domain.MergedRecord, lev string) domain.MergedRecord {
		m.Leverage = lev
		return m
	}

	t.Run("numeric leverage averaged", func(t *testing.T) {
		merged := []domain.MergedRecord{
			withLeverage(mergedTrade("A1", day(2024, 1, 2), "Greed", 10), "5"),
			withLeverage(mergedTrade("A1", day(2024, 1, 2), "Greed", 10), "10x"),
		}
		metrics := analyzer.Aggregate(ctx, merged)
		require.Len(t, metrics, 1)
		assert.InDelta(t, 7.5, metrics[0].AvgLeverage, 1e-9)
	})

	t.Run("unknown sentinel excluded", func(t *testing.T) {
		merged := []domain.MergedRecord{
			mergedTrade("A1", day(2024, 1, 2), "Greed", 10),
			withLeverage(mergedTrade("A1", day(2024, 1, 2), "Greed", 10), "4"),
		}
		metrics := analyzer.Aggregate(ctx, merged)
		require.Len(t, metrics, 1)
		assert.InDelta(t, 4, metrics[0].AvgLeverage, 1e-9)
	})

	t.Run("no numeric leverage yields zero", func(t *testing.T) {
		merged := []domain.MergedRecord{
			mergedTrade("A1", day(2024, 1, 2), "Greed", 10),
		}
		metrics := analyzer.Aggregate(ctx, merged)
		require.Len(t, metrics, 1)
		assert.Zero(t, metrics[0].AvgLeverage)
	})
}

func TestAnalyzer_Aggregate_Empty(t *testing.T) {
	ctx := context.Background()
	analyzer := NewAnalyzer(slog.Default(), AnalyzerConfig{})

	metrics := analyzer.Aggregate(ctx, nil)
	assert.Empty(t, metrics)
}

func TestAnalyzer_TopAccounts(t *testing.T) {
	analyzer := NewAnalyzer(slog.Default(), AnalyzerConfig{TopTraders: 2})

	merged := []domain.MergedRecord{
		mergedTrade("A1", day(2024, 1, 2), "Greed", 100),
		mergedTrade("A2", day(2024, 1, 2), "Greed", 300),
		mergedTrade("A1", day(2024, 1, 3), "Fear", 150),
		mergedTrade("A3", day(2024, 1, 3), "Fear", -75),
	}

	top := analyzer.TopAccounts(merged)
	require.Len(t, top, 2)
	assert.Equal(t, AccountPnL{Account: "A2", TotalPnL: 300}, top[0])
	assert.Equal(t, AccountPnL{Account: "A1", TotalPnL: 250}, top[1])
}

func TestAnalyzer_MeanPnLByClassification(t *testing.T) {
	analyzer := NewAnalyzer(slog.Default(), AnalyzerConfig{})

	merged := []domain.MergedRecord{
		mergedTrade("A1", day(2024, 1, 2), "Greed", 100),
		mergedTrade("A2", day(2024, 1, 2), "Greed", 200),
		mergedTrade("A1", day(2024, 1, 3), "Fear", -60),
	}

	perf := analyzer.MeanPnLByClassification(merged)
	require.Len(t, perf, 2)
	assert.Equal(t, "Fear", perf[0].Classification)
	assert.InDelta(t, -60, perf[0].MeanPnL, 1e-9)
	assert.Equal(t, "Greed", perf[1].Classification)
	assert.InDelta(t, 150, perf[1].MeanPnL, 1e-9)
}

func TestAnalyzer_ClassificationCounts(t *testing.T) {
	analyzer := NewAnalyzer(slog.Default(), AnalyzerConfig{})

	sentiment := []domain.SentimentRecord{
		{Date: day(2024, 1, 1), Classification: "Fear"},
		{Date: day(2024, 1, 2), Classification: "Greed"},
		{Date: day(2024, 1, 3), Classification: "Fear"},
	}

	counts := analyzer.ClassificationCounts(sentiment)
	require.Len(t, counts, 2)
	assert.Equal(t, ClassificationCount{Classification: "Fear", Days: 2}, counts[0])
	assert.Equal(t, ClassificationCount{Classification: "Greed", Days: 1}, counts[1])
}
