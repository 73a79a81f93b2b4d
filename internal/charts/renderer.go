package charts

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"sentipulse/internal/config"
	"sentipulse/internal/dataprocessing"
	"sentipulse/pkg/contracts/domain"
)

// Chart artifact file names, written into the charts directory.
const (
	FileSentimentDistribution = "sentiment_distribution.png"
	FilePnLBySentiment        = "performance_by_sentiment.png"
	FileTopTraders            = "top_traders.png"
	FileSentimentTransitions  = "sentiment_transitions.png"
)

// RenderInput carries the aggregated tables the charts are drawn from.
type RenderInput struct {
	Distribution []dataprocessing.ClassificationCount
	PnLBySegment []dataprocessing.ClassificationPnL
	TopAccounts  []dataprocessing.AccountPnL
	Transitions  []domain.SentimentTransition
}

// Renderer produces the chart artifacts.
type Renderer struct {
	logger *slog.Logger
	width  int
	height int
}

// NewRenderer creates a renderer with the configured canvas size.
func NewRenderer(logger *slog.Logger, cfg config.ChartsConfig) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Width <= 0 {
		cfg.Width = 1024
	}
	if cfg.Height <= 0 {
		cfg.Height = 640
	}
	return &Renderer{logger: logger, width: cfg.Width, height: cfg.Height}
}

// RenderAll writes the full chart set into dir and returns the number of
// charts written. Charts with empty inputs are skipped with a warning;
// individual render failures are logged and do not stop the others.
func (r *Renderer) RenderAll(ctx context.Context, dir string, in RenderInput) int {
	if err := os.MkdirAll(dir, 0755); err != nil {
		r.logger.WarnContext(ctx, "cannot create charts directory, skipping charts",
			slog.String("dir", dir),
			slog.String("error", err.Error()))
		return 0
	}

	written := 0
	render := func(name string, empty bool, fn func(w *os.File) error) {
		if empty {
			r.logger.WarnContext(ctx, "skipping chart with empty input",
				slog.String("chart", name))
			return
		}
		path := filepath.Join(dir, name)
		file, err := os.Create(path)
		if err != nil {
			r.logger.WarnContext(ctx, "failed to create chart file",
				slog.String("chart", name),
				slog.String("error", err.Error()))
			return
		}
		renderErr := fn(file)
		closeErr := file.Close()
		if renderErr != nil {
			r.logger.WarnContext(ctx, "failed to render chart",
				slog.String("chart", name),
				slog.String("error", renderErr.Error()))
			os.Remove(path)
			return
		}
		if closeErr != nil {
			r.logger.WarnContext(ctx, "failed to close chart file",
				slog.String("chart", name),
				slog.String("error", closeErr.Error()))
			return
		}
		r.logger.InfoContext(ctx, "chart written", slog.String("path", path))
		written++
	}

	render(FileSentimentDistribution, len(in.Distribution) == 0, func(w *os.File) error {
		return r.renderDistribution(in.Distribution, w)
	})
	render(FilePnLBySentiment, len(in.PnLBySegment) == 0, func(w *os.File) error {
		return r.renderPnLBySentiment(in.PnLBySegment, w)
	})
	render(FileTopTraders, len(in.TopAccounts) == 0, func(w *os.File) error {
		return r.renderTopTraders(in.TopAccounts, w)
	})
	render(FileSentimentTransitions, len(in.Transitions) == 0, func(w *os.File) error {
		return r.renderTransitions(in.Transitions, w)
	})

	return written
}

// renderDistribution draws the share of calendar days per sentiment class.
func (r *Renderer) renderDistribution(counts []dataprocessing.ClassificationCount, w *os.File) error {
	values := make([]chart.Value, 0, len(counts))
	for _, c := range counts {
		values = append(values, chart.Value{
			Value: float64(c.Days),
			Label: fmt.Sprintf("%s (%d)", c.Classification, c.Days),
		})
	}

	pie := chart.PieChart{
		Title:  "Fear/Greed Distribution",
		Width:  r.width,
		Height: r.height,
		Values: values,
	}
	return pie.Render(chart.PNG, w)
}

// renderPnLBySentiment draws the mean trade P&L per sentiment class.
func (r *Renderer) renderPnLBySentiment(perf []dataprocessing.ClassificationPnL, w *os.File) error {
	values := make([]chart.Value, 0, len(perf))
	raw := make([]float64, 0, len(perf))
	for _, p := range perf {
		values = append(values, chart.Value{Value: p.MeanPnL, Label: p.Classification})
		raw = append(raw, p.MeanPnL)
	}

	bars := chart.BarChart{
		Title:      "Avg Trader PnL by Sentiment",
		Width:      r.width,
		Height:     r.height,
		BarWidth:   60,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		YAxis:      yAxisFor(raw),
		Bars:       values,
	}
	return bars.Render(chart.PNG, w)
}

// renderTopTraders draws the best accounts by total P&L.
func (r *Renderer) renderTopTraders(top []dataprocessing.AccountPnL, w *os.File) error {
	values := make([]chart.Value, 0, len(top))
	raw := make([]float64, 0, len(top))
	for _, t := range top {
		values = append(values, chart.Value{Value: t.TotalPnL, Label: shorten(t.Account)})
		raw = append(raw, t.TotalPnL)
	}

	bars := chart.BarChart{
		Title:      fmt.Sprintf("Top %d Traders by PnL", len(top)),
		Width:      r.width,
		Height:     r.height,
		BarWidth:   48,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		YAxis:      yAxisFor(raw),
		Bars:       values,
	}
	return bars.Render(chart.PNG, w)
}

// renderTransitions draws day-over-day sentiment transition counts.
func (r *Renderer) renderTransitions(transitions []domain.SentimentTransition, w *os.File) error {
	values := make([]chart.Value, 0, len(transitions))
	raw := make([]float64, 0, len(transitions))
	for _, t := range transitions {
		values = append(values, chart.Value{
			Value: float64(t.Count),
			Label: t.Label(),
			Style: chart.Style{FillColor: drawing.ColorFromHex("87ceeb")},
		})
		raw = append(raw, float64(t.Count))
	}

	bars := chart.BarChart{
		Title:      "Sentiment Transitions Over Time",
		Width:      r.width,
		Height:     r.height,
		BarWidth:   48,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		YAxis:      yAxisFor(raw),
		Bars:       values,
	}
	return bars.Render(chart.PNG, w)
}

// yAxisFor builds an explicit value range. go-chart cannot derive a range
// when every bar has the same value, and bar charts always start ranges at
// zero-adjacent values, so the range is padded on both sides.
func yAxisFor(values []float64) chart.YAxis {
	if len(values) == 0 {
		return chart.YAxis{}
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min > 0 {
		min = 0
	}
	if max < 0 {
		max = 0
	}
	pad := (max - min) * 0.1
	if pad == 0 {
		pad = 1
	}
	return chart.YAxis{
		Range: &chart.ContinuousRange{Min: min - pad, Max: max + pad},
	}
}

// shorten trims long account identifiers (wallet addresses) for bar labels.
func shorten(account string) string {
	if len(account) <= 10 {
		return account
	}
	return account[:6] + ".." + account[len(account)-4:]
}
