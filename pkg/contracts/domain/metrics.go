package domain

import (
	"time"
)

// TraderMetric holds the aggregates for one (account, date, classification)
// group of merged trades. The triple is unique across a metric table.
type TraderMetric struct {
	Account        string    `json:"account" csv:"Account"`
	Date           time.Time `json:"date" csv:"Date"`
	Classification string    `json:"classification" csv:"Classification"`
	TradeCount     int       `json:"trade_count" csv:"TradeCount"`
	TotalPnL       float64   `json:"total_pnl" csv:"TotalPnL"`
	MeanPnL        float64   `json:"mean_pnl" csv:"MeanPnL"`
	AvgSize        float64   `json:"avg_size" csv:"AvgSize"`

	// AvgLeverage averages only rows whose leverage parsed as a number.
	// Zero when the group has no numeric leverage values.
	AvgLeverage float64 `json:"avg_leverage" csv:"AvgLeverage"`
}
