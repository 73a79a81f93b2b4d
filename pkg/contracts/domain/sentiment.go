package domain

import (
	"time"
)

// SentimentRecord represents one calendar day of the Fear & Greed index.
type SentimentRecord struct {
	Date           time.Time `json:"date" csv:"Date"`
	Classification string    `json:"classification" csv:"Classification"`
}

// DateKey returns the join key for this sentiment day.
func (s SentimentRecord) DateKey() string {
	return s.Date.Format("2006-01-02")
}

// MergedRecord is a trade joined with the sentiment classification of its
// calendar date. The merged Date always equals both constituents' dates.
type MergedRecord struct {
	TradeRecord
	Classification string `json:"classification" csv:"Classification"`
}

// SentimentTransition counts day-over-day moves between two sentiment states.
type SentimentTransition struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Count int    `json:"count"`
}

// Label returns the transition in "From -> To" display form.
func (t SentimentTransition) Label() string {
	return t.From + " -> " + t.To
}
