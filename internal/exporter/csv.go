package exporter

import (
	"context"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "sentipulse/internal/errors"
	"sentipulse/pkg/contracts/domain"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(ctx context.Context, path string, options WriteOptions) error {
	w.logger.InfoContext(ctx, "writing CSV file",
		slog.String("path", path),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewExportError("failed to create output directory", err).
			WithContext("path", path)
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewExportError("failed to create CSV file", err).
			WithContext("path", path)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return apperrors.NewExportError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return apperrors.NewExportError("failed to write headers", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return apperrors.NewExportError("failed to write record", err).
				WithContext("record", i)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewExportError("failed to flush CSV", err).
			WithContext("path", path)
	}
	return nil
}

// WriteMetricsCSV writes the aggregated trader metrics using the standard
// column order of the workbook's metrics sheet.
func (w *CSVWriter) WriteMetricsCSV(ctx context.Context, path string, metrics []domain.TraderMetric) error {
	records := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		records = append(records, []string{
			m.Account,
			formatDate(m.Date),
			m.Classification,
			formatInt(m.TradeCount),
			formatFloat(m.TotalPnL),
			formatFloat(m.MeanPnL),
			formatFloat(m.AvgSize),
			formatFloat(m.AvgLeverage),
		})
	}

	return w.WriteCSV(ctx, path, WriteOptions{
		Headers:   MetricsHeaders,
		Records:   records,
		BOMPrefix: true,
	})
}
