// Package dataprocessing implements the tabular stages of the sentiment
// report pipeline: loading the two source CSV files, joining trades with
// the daily Fear & Greed classification, aggregating per-trader metrics,
// and deriving sentiment transition counts and plain-text insights.
//
// The stages are strictly sequential and operate on in-memory slices of
// the pkg/contracts/domain types. Row-level problems (unparsable dates,
// short rows) are dropped and counted, never fatal; schema-level problems
// (missing file, missing required column) abort the run.
package dataprocessing
