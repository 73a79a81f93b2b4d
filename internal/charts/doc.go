// Package charts renders the fixed set of PNG chart artifacts from the
// aggregated analysis data. A chart with empty inputs is skipped with a
// warning; chart problems never fail the pipeline.
package charts
