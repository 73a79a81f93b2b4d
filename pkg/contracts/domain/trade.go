package domain

import (
	"time"
)

// LeverageUnknown is the sentinel stored in TradeRecord.Leverage when the
// source file carries no leverage column. It is applied to every row of the
// table, never mixed with real values within one load.
const LeverageUnknown = "unknown"

// TradeRecord represents a single executed trade from the trader history file.
type TradeRecord struct {
	Account        string    `json:"account" csv:"Account"`
	Symbol         string    `json:"symbol" csv:"Symbol"`
	Time           time.Time `json:"time" csv:"Time"`
	Date           time.Time `json:"date" csv:"Date"`
	Side           string    `json:"side" csv:"Side"`
	Event          string    `json:"event" csv:"Event"`
	Size           float64   `json:"size" csv:"Size"`
	ExecutionPrice float64   `json:"execution_price" csv:"ExecutionPrice"`
	StartPosition  float64   `json:"start_position" csv:"StartPosition"`
	ClosedPnL      float64   `json:"closed_pnl" csv:"ClosedPnL"`
	Leverage       string    `json:"leverage" csv:"Leverage"`
}

// DateKey returns the join key for this trade: its calendar date formatted
// as 2006-01-02. Trades and sentiment records sharing a DateKey merge.
func (t TradeRecord) DateKey() string {
	return t.Date.Format("2006-01-02")
}
