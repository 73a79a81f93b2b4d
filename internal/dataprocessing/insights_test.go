package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentipulse/pkg/contracts/domain"
)

func TestGenerateInsights(t *testing.T) {
	withLeverage := func(m domain.MergedRecord, lev string) domain.MergedRecord {
		m.Leverage = lev
		return m
	}

	merged := []domain.MergedRecord{
		withLeverage(mergedTrade("A1", day(2024, 1, 2), "Fear", -120), "4"),
		withLeverage(mergedTrade("A1", day(2024, 1, 3), "Greed", 80), "2"),
		withLeverage(mergedTrade("A2", day(2024, 1, 3), "Greed", 40), "6"),
	}

	insights := GenerateInsights(merged)
	require.Len(t, insights, 4)
	assert.Equal(t, "Traders tend to lose more during Fear sentiment.", insights[0])
	assert.Equal(t, "Traders perform better during Greed sentiment.", insights[1])
	assert.Equal(t, "Avg leverage during Fear: 4.00", insights[2])
	assert.Equal(t, "Avg leverage during Greed: 4.00", insights[3])
}

func TestGenerateInsights_NoClaimsWithoutEvidence(t *testing.T) {
	// Profitable Fear days and losing Greed days produce no claims.
	merged := []domain.MergedRecord{
		mergedTrade("A1", day(2024, 1, 2), "Fear", 50),
		mergedTrade("A1", day(2024, 1, 3), "Greed", -50),
	}

	insights := GenerateInsights(merged)
	require.Len(t, insights, 2)
	assert.Equal(t, "Avg leverage during Fear: 0.00", insights[0])
	assert.Equal(t, "Avg leverage during Greed: 0.00", insights[1])
}

func TestGenerateInsights_Empty(t *testing.T) {
	assert.Nil(t, GenerateInsights(nil))
}
