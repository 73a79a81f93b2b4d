// Package exporter writes the pipeline's output artifacts: the two-sheet
// xlsx workbook (aggregated trader metrics plus the merged raw data) and
// the trader metrics CSV. Write failures surface as EXPORT errors and are
// fatal to the run.
package exporter
