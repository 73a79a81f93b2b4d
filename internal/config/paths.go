package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for ALL file paths in the application.
type Paths struct {
	ExecutableDir string
	DataDir       string
	ReportsDir    string
	ChartsDir     string
	LogsDir       string

	// Well-known input files
	TradesCSV    string
	SentimentCSV string

	// Well-known output files
	WorkbookXLSX string
	MetricsCSV   string
}

// GetPaths returns the application paths relative to the executable location.
// All paths are ALWAYS relative to the executable directory, never the current
// working directory.
//
// Directory structure:
//
//	sentiment-report
//	├── data/                (input CSV files)
//	│   ├── historical_data.csv
//	│   └── fear_greed_index.csv
//	├── reports/             (workbook + metrics CSV)
//	│   └── charts/          (PNG chart artifacts)
//	└── logs/
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	return PathsIn(filepath.Dir(exe)), nil
}

// PathsIn builds the path set rooted at the given directory. Split out of
// GetPaths so tests can target a temp directory.
func PathsIn(rootDir string) *Paths {
	dataDir := filepath.Join(rootDir, "data")
	reportsDir := filepath.Join(rootDir, "reports")
	chartsDir := filepath.Join(reportsDir, "charts")

	return &Paths{
		ExecutableDir: rootDir,
		DataDir:       dataDir,
		ReportsDir:    reportsDir,
		ChartsDir:     chartsDir,
		LogsDir:       filepath.Join(rootDir, "logs"),

		TradesCSV:    filepath.Join(dataDir, "historical_data.csv"),
		SentimentCSV: filepath.Join(dataDir, "fear_greed_index.csv"),

		WorkbookXLSX: filepath.Join(reportsDir, "trader_sentiment_analysis.xlsx"),
		MetricsCSV:   filepath.Join(reportsDir, "trader_metrics.csv"),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.ReportsDir,
		p.ChartsDir,
		p.LogsDir,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
	}

	return nil
}

// GetLogPath returns the full path for a log file name
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// GetChartPath returns the full path for a chart artifact name
func (p *Paths) GetChartPath(filename string) string {
	return filepath.Join(p.ChartsDir, filename)
}
