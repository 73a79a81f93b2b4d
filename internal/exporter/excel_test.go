package exporter

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sentipulse/pkg/contracts/domain"
)

func sampleMetric() domain.TraderMetric {
	return domain.TraderMetric{
		Account:        "A1",
		Date:           time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Classification: "Greed",
		TradeCount:     1,
		TotalPnL:       100,
		MeanPnL:        100,
		AvgSize:        0.25,
	}
}

func sampleMerged() domain.MergedRecord {
	return domain.MergedRecord{
		TradeRecord: domain.TradeRecord{
			Account:        "A1",
			Symbol:         "BTC",
			Time:           time.Date(2024, 1, 2, 10, 15, 0, 0, time.UTC),
			Date:           time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			Side:           "BUY",
			Event:          "Open Long",
			Size:           0.25,
			ExecutionPrice: 42000.5,
			ClosedPnL:      100,
			Leverage:       domain.LeverageUnknown,
		},
		Classification: "Greed",
	}
}

func TestExcelWriter_WriteWorkbook(t *testing.T) {
	ctx := context.Background()
	writer := NewExcelWriter(slog.Default())
	path := filepath.Join(t.TempDir(), "trader_sentiment_analysis.xlsx")

	metrics := []domain.TraderMetric{sampleMetric()}
	merged := []domain.MergedRecord{sampleMerged()}

	require.NoError(t, writer.WriteWorkbook(ctx, path, metrics, merged))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{SheetMetrics, SheetMerged}, f.GetSheetList())

	metricRows, err := f.GetRows(SheetMetrics)
	require.NoError(t, err)
	require.Len(t, metricRows, 2)
	assert.Equal(t, MetricsHeaders, metricRows[0])
	assert.Equal(t, "A1", metricRows[1][0])
	assert.Equal(t, "2024-01-02", metricRows[1][1])
	assert.Equal(t, "Greed", metricRows[1][2])
	assert.Equal(t, "1", metricRows[1][3])
	assert.Equal(t, "100", metricRows[1][4])

	mergedRows, err := f.GetRows(SheetMerged)
	require.NoError(t, err)
	require.Len(t, mergedRows, 2)
	assert.Equal(t, MergedHeaders, mergedRows[0])
	assert.Equal(t, "BTC", mergedRows[1][1])
	assert.Equal(t, domain.LeverageUnknown, mergedRows[1][10])
	assert.Equal(t, "Greed", mergedRows[1][11])
}

func TestExcelWriter_WriteWorkbook_EmptyTables(t *testing.T) {
	ctx := context.Background()
	writer := NewExcelWriter(slog.Default())
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	require.NoError(t, writer.WriteWorkbook(ctx, path, nil, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	metricRows, err := f.GetRows(SheetMetrics)
	require.NoError(t, err)
	require.Len(t, metricRows, 1)
	assert.Equal(t, MetricsHeaders, metricRows[0])

	mergedRows, err := f.GetRows(SheetMerged)
	require.NoError(t, err)
	require.Len(t, mergedRows, 1)
	assert.Equal(t, MergedHeaders, mergedRows[0])
}

func TestExcelWriter_WriteWorkbook_Deterministic(t *testing.T) {
	ctx := context.Background()
	writer := NewExcelWriter(slog.Default())
	dir := t.TempDir()

	metrics := []domain.TraderMetric{sampleMetric()}
	merged := []domain.MergedRecord{sampleMerged()}

	pathA := filepath.Join(dir, "a.xlsx")
	pathB := filepath.Join(dir, "b.xlsx")
	require.NoError(t, writer.WriteWorkbook(ctx, pathA, metrics, merged))
	require.NoError(t, writer.WriteWorkbook(ctx, pathB, metrics, merged))

	fa, err := excelize.OpenFile(pathA)
	require.NoError(t, err)
	defer fa.Close()
	fb, err := excelize.OpenFile(pathB)
	require.NoError(t, err)
	defer fb.Close()

	rowsA, err := fa.GetRows(SheetMetrics)
	require.NoError(t, err)
	rowsB, err := fb.GetRows(SheetMetrics)
	require.NoError(t, err)
	assert.Equal(t, rowsA, rowsB)
}
