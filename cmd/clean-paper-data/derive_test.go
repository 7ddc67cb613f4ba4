package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeGDP(t *testing.T) {
	rows := []MacroRow{
		newMacroRow(MacroRow{ISO2: "SE", Year: 2013, GDPCurrentLCU: 3800, Population: 10}),
		newMacroRow(MacroRow{ISO2: "SE", Year: 2014, GDPCurrentLCU: 3950, Population: 10}),
		newMacroRow(MacroRow{ISO2: "FI", Year: 2014, GDPCurrentLCU: 200, Population: 5}),
	}
	rows[0].ExchangeRateEuro, rows[0].DeflatorBase = 6.5, 1
	rows[1].ExchangeRateEuro, rows[1].DeflatorBase = 6.86, 1.018
	rows[2].ExchangeRateEuro, rows[2].DeflatorBase = 0.75, 1.01

	computeGDP(rows, 2013)

	assert.InDelta(t, 3800/6.5, rows[0].GDPConstantUSD, 1e-9)
	// base-year rate, not the current one
	assert.InDelta(t, 3950/(1.018*6.5), rows[1].GDPConstantUSD, 1e-9)
	assert.InDelta(t, 3950/(1.018*6.5)/10, rows[1].GDPPerCapita, 1e-9)
	assert.True(t, math.IsNaN(rows[2].GDPConstantUSD), "FI has no base-year row")
}

func TestDerivePaper(t *testing.T) {
	nan := math.NaN()
	rows := []PaperRow{
		newPaperRow(PaperRow{ISO2: "LV", Year: 2014, Production: 25, ImportQuantity: 100, ExportQuantity: 50, ImportValue: 80, ExportValue: 45}),
		newPaperRow(PaperRow{ISO2: "SE", Year: 2014, Production: 10500, ImportQuantity: nan, ExportQuantity: 9700, ImportValue: nan, ExportValue: 8000}),
		newPaperRow(PaperRow{ISO2: "SE", Year: 2015, Production: nan, ImportQuantity: nan, ExportQuantity: nan, ImportValue: nan, ExportValue: nan}),
	}
	macro := []MacroRow{
		newMacroRow(MacroRow{ISO2: "LV", Year: 2014, Population: 2e6}),
	}
	macro[0].GDPConstantUSD = 3e10
	us := map[int]float64{2014: 1.019, 2015: 1.03}

	derivePaper(rows, macro, us)

	lv := rows[0]
	assert.Equal(t, 75.0, lv.Consumption)
	assert.InDelta(t, 125.0/150/1.019*1000, lv.Price, 1e-9)
	assert.InDelta(t, 0.8/1.019*1000, lv.ImportPrice, 1e-9)
	assert.InDelta(t, 0.9/1.019*1000, lv.ExportPrice, 1e-9)
	assert.Equal(t, 1.019, lv.DeflatorUS)
	assert.Equal(t, 3e10, lv.GDPConstantUSD)
	assert.InDelta(t, 75.0*1000/2e6, lv.ConsumptionPerCapita, 1e-12)

	se := rows[1]
	assert.Equal(t, 800.0, se.Consumption, "missing imports count as zero")
	assert.Equal(t, 0.0, se.ImportQuantity)
	assert.True(t, math.IsNaN(se.ImportPrice), "0/0 stays missing")
	assert.InDelta(t, 8000.0/9700/1.019*1000, se.Price, 1e-9)
	assert.True(t, math.IsNaN(se.Population))

	empty := rows[2]
	assert.Equal(t, 0.0, empty.Consumption)
	assert.True(t, math.IsNaN(empty.Price))
}

func TestConsumptionIdentity(t *testing.T) {
	rows := []PaperRow{
		newPaperRow(PaperRow{Year: 2000, Production: 1, ImportQuantity: 2, ExportQuantity: 3}),
		newPaperRow(PaperRow{Year: 2000, Production: math.NaN(), ImportQuantity: 7, ExportQuantity: math.NaN()}),
		newPaperRow(PaperRow{Year: 2000, Production: 4, ImportQuantity: math.NaN(), ExportQuantity: 9}),
	}
	derivePaper(rows, nil, nil)
	for _, r := range rows {
		require.False(t, math.IsNaN(r.Consumption))
		assert.Equal(t, r.Production+r.ImportQuantity-r.ExportQuantity, r.Consumption)
	}
}

func TestSafeDiv(t *testing.T) {
	assert.Equal(t, 2.0, safeDiv(4, 2))
	assert.True(t, math.IsNaN(safeDiv(1, 0)))
	assert.True(t, math.IsNaN(safeDiv(0, 0)))
	assert.True(t, math.IsNaN(safeDiv(math.NaN(), 3)))
}
