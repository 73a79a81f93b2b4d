package dataprocessing

import (
	"context"
	"log/slog"

	"sentipulse/pkg/contracts/domain"
)

// MergeStats accounts for the join so callers can verify the row counts.
// MergedRows + UnmatchedRows always equals TradeRows; the join never
// manufactures rows.
type MergeStats struct {
	TradeRows     int
	SentimentDays int
	MergedRows    int
	UnmatchedRows int
}

// Merge inner-joins trades with the sentiment classification of their
// calendar date. Trades on dates absent from the sentiment index are
// dropped and counted, matching the source analysis. Input order of the
// trade table is preserved.
func Merge(ctx context.Context, logger *slog.Logger, trades []domain.TradeRecord, sentiment []domain.SentimentRecord) ([]domain.MergedRecord, MergeStats) {
	if logger == nil {
		logger = slog.Default()
	}

	classByDate := make(map[string]string, len(sentiment))
	for _, s := range sentiment {
		classByDate[s.DateKey()] = s.Classification
	}

	stats := MergeStats{
		TradeRows:     len(trades),
		SentimentDays: len(classByDate),
	}

	merged := make([]domain.MergedRecord, 0, len(trades))
	for _, t := range trades {
		classification, ok := classByDate[t.DateKey()]
		if !ok {
			stats.UnmatchedRows++
			continue
		}
		merged = append(merged, domain.MergedRecord{
			TradeRecord:    t,
			Classification: classification,
		})
	}
	stats.MergedRows = len(merged)

	if stats.UnmatchedRows > 0 {
		logger.WarnContext(ctx, "trades without a sentiment day were dropped by the join",
			slog.Int("unmatched", stats.UnmatchedRows),
			slog.Int("merged", stats.MergedRows))
	}

	logger.InfoContext(ctx, "merged trades with sentiment index",
		slog.Int("trade_rows", stats.TradeRows),
		slog.Int("sentiment_days", stats.SentimentDays),
		slog.Int("merged_rows", stats.MergedRows))

	return merged, stats
}
