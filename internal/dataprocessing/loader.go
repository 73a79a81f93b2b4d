package dataprocessing

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "sentipulse/internal/errors"
	"sentipulse/pkg/contracts/domain"
)

// LoadStats accounts for row-level drops during a load. DroppedRows always
// equals TotalRows - ValidRows.
type LoadStats struct {
	TotalRows   int
	ValidRows   int
	DroppedRows int
}

// Loader reads the two source tables from disk into typed slices.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader. A nil logger falls back to slog.Default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// tradeTimeFormats are tried in order when parsing trade timestamps.
// The source exports day-first timestamps ("Timestamp IST").
var tradeTimeFormats = []string{
	"02-01-2006 15:04",
	"02-01-2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006 15:04:05",
	"02-01-2006",
	"02/01/2006",
}

// sentimentDateFormats are tried in order when parsing sentiment dates.
var sentimentDateFormats = []string{
	"2006-01-02",
	"02-01-2006",
	"2006/01/02",
	"02/01/2006",
}

// LoadTrades reads the trade history CSV. The source header names
// (Account, Coin, Execution Price, Size Tokens, Side, Timestamp IST,
// Start Position, Direction, Closed PnL, Leverage) are mapped onto domain
// fields by position-independent, case-insensitive lookup. Rows whose
// timestamp does not parse are dropped and counted.
func (l *Loader) LoadTrades(ctx context.Context, path string) ([]domain.TradeRecord, LoadStats, error) {
	rows, header, err := l.readCSV(path)
	if err != nil {
		return nil, LoadStats{}, err
	}

	cols := mapTradeColumns(header)
	for _, required := range []string{"account", "time", "pnl"} {
		if _, ok := cols[required]; !ok {
			return nil, LoadStats{}, apperrors.NewMalformedInputError(
				"trade history missing required column", nil).
				WithContext("column", required).
				WithContext("path", path)
		}
	}

	_, hasLeverage := cols["leverage"]

	var (
		records []domain.TradeRecord
		stats   LoadStats
	)

	for _, row := range rows {
		stats.TotalRows++

		get := func(name string) string {
			if idx, ok := cols[name]; ok && idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}

		t, ok := parseTime(get("time"), tradeTimeFormats)
		if !ok {
			stats.DroppedRows++
			l.logger.DebugContext(ctx, "dropping trade row with unparsable timestamp",
				slog.String("value", get("time")))
			continue
		}

		leverage := domain.LeverageUnknown
		if hasLeverage {
			leverage = get("leverage")
		}

		records = append(records, domain.TradeRecord{
			Account:        get("account"),
			Symbol:         get("symbol"),
			Time:           t,
			Date:           truncateToDate(t),
			Side:           get("side"),
			Event:          get("event"),
			Size:           parseFloat(get("size")),
			ExecutionPrice: parseFloat(get("price")),
			StartPosition:  parseFloat(get("start_position")),
			ClosedPnL:      parseFloat(get("pnl")),
			Leverage:       leverage,
		})
		stats.ValidRows++
	}

	if stats.DroppedRows > 0 {
		l.logger.WarnContext(ctx, "dropped trade rows with unparsable dates",
			slog.Int("dropped", stats.DroppedRows),
			slog.Int("total", stats.TotalRows),
			slog.Int("valid", stats.ValidRows))
	}

	l.logger.InfoContext(ctx, "loaded trade history",
		slog.String("path", path),
		slog.Int("rows", stats.ValidRows),
		slog.Bool("leverage_column", hasLeverage))

	return records, stats, nil
}

// LoadSentiment reads the Fear & Greed index CSV. It requires a date and a
// classification column; anything else in the file is ignored.
func (l *Loader) LoadSentiment(ctx context.Context, path string) ([]domain.SentimentRecord, LoadStats, error) {
	rows, header, err := l.readCSV(path)
	if err != nil {
		return nil, LoadStats{}, err
	}

	dateIdx, classIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "date":
			dateIdx = i
		case "classification":
			classIdx = i
		}
	}
	if dateIdx < 0 || classIdx < 0 {
		return nil, LoadStats{}, apperrors.NewMalformedInputError(
			"sentiment index missing required columns", nil).
			WithContext("required", "date, classification").
			WithContext("path", path)
	}

	var (
		records []domain.SentimentRecord
		stats   LoadStats
	)

	for _, row := range rows {
		stats.TotalRows++

		if dateIdx >= len(row) || classIdx >= len(row) {
			stats.DroppedRows++
			continue
		}

		t, ok := parseTime(strings.TrimSpace(row[dateIdx]), sentimentDateFormats)
		if !ok {
			stats.DroppedRows++
			l.logger.DebugContext(ctx, "dropping sentiment row with unparsable date",
				slog.String("value", row[dateIdx]))
			continue
		}

		records = append(records, domain.SentimentRecord{
			Date:           truncateToDate(t),
			Classification: strings.TrimSpace(row[classIdx]),
		})
		stats.ValidRows++
	}

	if stats.DroppedRows > 0 {
		l.logger.WarnContext(ctx, "dropped sentiment rows with unparsable dates",
			slog.Int("dropped", stats.DroppedRows),
			slog.Int("total", stats.TotalRows),
			slog.Int("valid", stats.ValidRows))
	}

	l.logger.InfoContext(ctx, "loaded sentiment index",
		slog.String("path", path),
		slog.Int("rows", stats.ValidRows))

	return records, stats, nil
}

// readCSV opens a CSV file and returns its data rows and header. The file
// handle is released before returning.
func (l *Loader) readCSV(path string) ([][]string, []string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, apperrors.NewMissingFileError(path, err)
		}
		return nil, nil, apperrors.NewParsingError("failed to open input file", err).
			WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, apperrors.NewMalformedInputError("input file is empty", nil).
			WithContext("path", path)
	}
	if err != nil {
		return nil, nil, apperrors.NewParsingError("failed to read CSV header", err).
			WithContext("path", path)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, apperrors.NewParsingError("failed to read CSV row", err).
				WithContext("path", path)
		}
		rows = append(rows, row)
	}

	return rows, header, nil
}

// mapTradeColumns maps normalized source header names to column indices
// under canonical field names.
func mapTradeColumns(header []string) map[string]int {
	cols := make(map[string]int)
	for i, raw := range header {
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "account":
			cols["account"] = i
		case "coin", "symbol":
			cols["symbol"] = i
		case "execution price":
			cols["price"] = i
		case "size tokens", "size":
			cols["size"] = i
		case "side":
			cols["side"] = i
		case "timestamp ist", "timestamp", "time":
			cols["time"] = i
		case "start position":
			cols["start_position"] = i
		case "direction":
			cols["event"] = i
		case "closed pnl":
			cols["pnl"] = i
		case "leverage":
			cols["leverage"] = i
		}
	}
	return cols
}

func parseTime(value string, formats []string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, format := range formats {
		if t, err := time.Parse(format, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// truncateToDate drops the time-of-day part, producing the join key date.
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseFloat(s string) float64 {
	val, _ := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return val
}
