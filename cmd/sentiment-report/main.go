package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"sentipulse/internal/charts"
	"sentipulse/internal/config"
	"sentipulse/internal/dataprocessing"
	"sentipulse/internal/exporter"
	"sentipulse/internal/infrastructure"
	"sentipulse/pkg/contracts"
)

// options are the resolved input/output locations for one run.
type options struct {
	tradesPath    string
	sentimentPath string
	workbookPath  string
	metricsPath   string
	chartsDir     string
}

func main() {
	trades := flag.String("trades", "", "trade history CSV (defaults to data/historical_data.csv relative to executable)")
	sentiment := flag.String("sentiment", "", "fear/greed index CSV (defaults to data/fear_greed_index.csv)")
	out := flag.String("out", "", "output workbook path (defaults to reports/trader_sentiment_analysis.xlsx)")
	chartsDir := flag.String("charts-dir", "", "directory for chart images (defaults to reports/charts)")
	flag.Parse()

	// Initialize paths first to get default locations
	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	opts := options{
		tradesPath:    *trades,
		sentimentPath: *sentiment,
		workbookPath:  *out,
		metricsPath:   paths.MetricsCSV,
		chartsDir:     *chartsDir,
	}
	if opts.tradesPath == "" {
		opts.tradesPath = paths.TradesCSV
	}
	if opts.sentimentPath == "" {
		opts.sentimentPath = paths.SentimentCSV
	}
	if opts.workbookPath == "" {
		opts.workbookPath = paths.WorkbookXLSX
	}
	if opts.chartsDir == "" {
		opts.chartsDir = paths.ChartsDir
	}

	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
		cfg.Logging.FilePath = paths.GetLogPath("sentiment-report.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.WithRunID(context.Background(), infrastructure.NewRunID())

	shutdownTracing, err := infrastructure.InitTracing(cfg.Tracing)
	if err != nil {
		logger.Warn("Failed to initialize tracing, continuing without it", "error", err)
		shutdownTracing = func(context.Context) error { return nil }
	}
	defer shutdownTracing(ctx)

	logger.InfoContext(ctx, "starting trader sentiment analysis",
		slog.String("version", contracts.Version),
		slog.String("trades", opts.tradesPath),
		slog.String("sentiment", opts.sentimentPath),
		slog.String("workbook", opts.workbookPath))

	if err := run(ctx, logger, cfg, opts); err != nil {
		logger.ErrorContext(ctx, "analysis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "analysis complete",
		slog.String("workbook", opts.workbookPath),
		slog.String("charts_dir", opts.chartsDir))
	fmt.Println("\nAnalysis complete. Results exported to:", opts.workbookPath)
}

// run executes the pipeline end to end: load, merge, aggregate, render,
// export. It returns an error only for fatal conditions (missing input,
// malformed schema, export failure); chart problems are warnings.
func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, opts options) error {
	loader := dataprocessing.NewLoader(logger)

	loadCtx, loadSpan := infrastructure.StartStage(ctx, "load")
	trades, tradeStats, err := loader.LoadTrades(loadCtx, opts.tradesPath)
	if err != nil {
		loadSpan.End()
		return err
	}
	sentiment, sentimentStats, err := loader.LoadSentiment(loadCtx, opts.sentimentPath)
	loadSpan.End()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "inputs loaded",
		slog.Int("trade_rows", tradeStats.ValidRows),
		slog.Int("trade_rows_dropped", tradeStats.DroppedRows),
		slog.Int("sentiment_rows", sentimentStats.ValidRows),
		slog.Int("sentiment_rows_dropped", sentimentStats.DroppedRows))

	mergeCtx, mergeSpan := infrastructure.StartStage(ctx, "merge")
	merged, _ := dataprocessing.Merge(mergeCtx, logger, trades, sentiment)
	mergeSpan.End()

	analyzer := dataprocessing.NewAnalyzer(logger, dataprocessing.AnalyzerConfig{
		TopTraders: cfg.Analysis.TopTraders,
	})

	aggCtx, aggSpan := infrastructure.StartStage(ctx, "aggregate")
	metrics := analyzer.Aggregate(aggCtx, merged)
	renderInput := charts.RenderInput{
		Distribution: analyzer.ClassificationCounts(sentiment),
		PnLBySegment: analyzer.MeanPnLByClassification(merged),
		TopAccounts:  analyzer.TopAccounts(merged),
		Transitions:  dataprocessing.Transitions(sentiment),
	}
	aggSpan.End()

	renderCtx, renderSpan := infrastructure.StartStage(ctx, "render")
	renderer := charts.NewRenderer(logger, cfg.Charts)
	written := renderer.RenderAll(renderCtx, opts.chartsDir, renderInput)
	renderSpan.End()
	logger.InfoContext(ctx, "charts rendered", slog.Int("count", written))

	exportCtx, exportSpan := infrastructure.StartStage(ctx, "export")
	defer exportSpan.End()

	excelWriter := exporter.NewExcelWriter(logger)
	if err := excelWriter.WriteWorkbook(exportCtx, opts.workbookPath, metrics, merged); err != nil {
		return err
	}

	csvWriter := exporter.NewCSVWriter(logger)
	if err := csvWriter.WriteMetricsCSV(exportCtx, opts.metricsPath, metrics); err != nil {
		return err
	}

	printInsights(dataprocessing.GenerateInsights(merged))

	return nil
}

func printInsights(insights []string) {
	if len(insights) == 0 {
		return
	}
	fmt.Println("\nGenerated Insights:")
	for _, insight := range insights {
		fmt.Println("-", insight)
	}
}
