package exporter

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	apperrors "sentipulse/internal/errors"
	"sentipulse/pkg/contracts/domain"
)

// Sheet names in the output workbook.
const (
	SheetMetrics = "Trader Metrics"
	SheetMerged  = "Merged Data"
)

// MetricsHeaders is the header row of the Trader Metrics sheet.
var MetricsHeaders = []string{
	"Account", "Date", "Classification", "TradeCount",
	"TotalPnL", "MeanPnL", "AvgSize", "AvgLeverage",
}

// MergedHeaders is the header row of the Merged Data sheet.
var MergedHeaders = []string{
	"Account", "Symbol", "Date", "Time", "Side", "Event", "Size",
	"ExecutionPrice", "StartPosition", "ClosedPnL", "Leverage", "Classification",
}

// ExcelWriter writes the analysis workbook.
type ExcelWriter struct {
	logger *slog.Logger
}

// NewExcelWriter creates a new workbook writer instance
func NewExcelWriter(logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{logger: logger}
}

// WriteWorkbook writes the metric and merged tables into a single xlsx
// workbook with one sheet each. Empty tables still produce their header
// row so a run over an empty input yields a valid, header-only workbook.
func (w *ExcelWriter) WriteWorkbook(ctx context.Context, path string, metrics []domain.TraderMetric, merged []domain.MergedRecord) error {
	w.logger.InfoContext(ctx, "writing workbook",
		slog.String("path", path),
		slog.Int("metric_rows", len(metrics)),
		slog.Int("merged_rows", len(merged)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewExportError("failed to create output directory", err).
			WithContext("path", path)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetMetrics); err != nil {
		return apperrors.NewExportError("failed to name metrics sheet", err)
	}
	if _, err := f.NewSheet(SheetMerged); err != nil {
		return apperrors.NewExportError("failed to create merged data sheet", err)
	}

	if err := w.writeMetricsSheet(f, metrics); err != nil {
		return err
	}
	if err := w.writeMergedSheet(f, merged); err != nil {
		return err
	}

	if err := w.styleHeaders(f); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return apperrors.NewExportError("failed to save workbook", err).
			WithContext("path", path)
	}

	w.logger.InfoContext(ctx, "workbook written", slog.String("path", path))
	return nil
}

func (w *ExcelWriter) writeMetricsSheet(f *excelize.File, metrics []domain.TraderMetric) error {
	if err := w.writeHeaderRow(f, SheetMetrics, MetricsHeaders); err != nil {
		return err
	}

	for i, m := range metrics {
		row := []interface{}{
			m.Account,
			formatDate(m.Date),
			m.Classification,
			m.TradeCount,
			m.TotalPnL,
			m.MeanPnL,
			m.AvgSize,
			m.AvgLeverage,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apperrors.NewExportError("failed to compute cell name", err)
		}
		if err := f.SetSheetRow(SheetMetrics, cell, &row); err != nil {
			return apperrors.NewExportError("failed to write metrics row", err).
				WithContext("row", i+2)
		}
	}
	return nil
}

func (w *ExcelWriter) writeMergedSheet(f *excelize.File, merged []domain.MergedRecord) error {
	if err := w.writeHeaderRow(f, SheetMerged, MergedHeaders); err != nil {
		return err
	}

	for i, m := range merged {
		row := []interface{}{
			m.Account,
			m.Symbol,
			formatDate(m.Date),
			m.Time.Format("2006-01-02 15:04:05"),
			m.Side,
			m.Event,
			m.Size,
			m.ExecutionPrice,
			m.StartPosition,
			m.ClosedPnL,
			m.Leverage,
			m.Classification,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apperrors.NewExportError("failed to compute cell name", err)
		}
		if err := f.SetSheetRow(SheetMerged, cell, &row); err != nil {
			return apperrors.NewExportError("failed to write merged data row", err).
				WithContext("row", i+2)
		}
	}
	return nil
}

func (w *ExcelWriter) writeHeaderRow(f *excelize.File, sheet string, headers []string) error {
	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &row); err != nil {
		return apperrors.NewExportError("failed to write header row", err).
			WithContext("sheet", sheet)
	}
	return nil
}

// styleHeaders applies the header style to both sheets: bold white text on
// a steel-blue fill, centered, matching the original report styling.
func (w *ExcelWriter) styleHeaders(f *excelize.File) error {
	styleID, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4F81BD"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
	})
	if err != nil {
		return apperrors.NewExportError("failed to create header style", err)
	}

	for sheet, headers := range map[string][]string{
		SheetMetrics: MetricsHeaders,
		SheetMerged:  MergedHeaders,
	} {
		lastCell, err := excelize.CoordinatesToCellName(len(headers), 1)
		if err != nil {
			return apperrors.NewExportError("failed to compute header range", err)
		}
		if err := f.SetCellStyle(sheet, "A1", lastCell, styleID); err != nil {
			return apperrors.NewExportError("failed to style header row", err).
				WithContext("sheet", sheet)
		}
	}
	return nil
}
