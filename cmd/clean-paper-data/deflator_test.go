package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainDeflator(t *testing.T) {
	years := []int{2008, 2009, 2010, 2011, 2012}
	defl := []float64{2, 3, 4, 5, 6}

	got := chainDeflator(years, defl, 2010)
	require.Len(t, got, 5)

	assert.Equal(t, 1.0, got[2])
	assert.InDelta(t, 1.05, got[3], 1e-12)
	assert.InDelta(t, 1.05*1.06, got[4], 1e-12)
	// Before the base year each value divides the next one by its own year's factor.
	assert.InDelta(t, 1/1.03, got[1], 1e-12)
	assert.InDelta(t, 1/1.03/1.02, got[0], 1e-12)
}

func TestChainDeflatorIgnoresBaseYearDeflator(t *testing.T) {
	a := chainDeflator([]int{2009, 2010, 2011}, []float64{3, 4, 5}, 2010)
	b := chainDeflator([]int{2009, 2010, 2011}, []float64{3, 99, 5}, 2010)
	assert.Equal(t, a, b)
}

func TestChainDeflatorSkipsMissing(t *testing.T) {
	nan := math.NaN()
	got := chainDeflator([]int{2008, 2009, 2010, 2011, 2012}, []float64{2, nan, 4, nan, 10}, 2010)

	assert.True(t, math.IsNaN(got[1]))
	assert.InDelta(t, 1/1.02, got[0], 1e-12)
	assert.Equal(t, 1.0, got[2])
	assert.True(t, math.IsNaN(got[3]))
	assert.InDelta(t, 1.1, got[4], 1e-12)
}

func TestChainDeflatorWithoutBaseYearRow(t *testing.T) {
	got := chainDeflator([]int{2008, 2009, 2011}, []float64{10, 25, 20}, 2010)
	assert.InDelta(t, 1/1.25, got[1], 1e-12)
	assert.InDelta(t, 1/1.25/1.1, got[0], 1e-12)
	assert.InDelta(t, 1.2, got[2], 1e-12)
}

func TestApplyDeflatorBasePinsEveryCountry(t *testing.T) {
	var rows []MacroRow
	for _, iso := range []string{"AT", "DE", "SE"} {
		for y, d := range map[int]float64{2008: 2.1, 2009: 0.8, 2010: 1.7, 2011: 2.4} {
			rows = append(rows, newMacroRow(MacroRow{ISO2: iso, Year: y, Deflator: d}))
		}
	}
	sortMacro(rows)
	applyDeflatorBase(rows, 2010)

	for _, r := range rows {
		switch {
		case r.Year == 2010:
			assert.Equal(t, 1.0, r.DeflatorBase, r.ISO2)
		case r.Year < 2010:
			assert.Less(t, r.DeflatorBase, 1.0, "%s %d", r.ISO2, r.Year)
		default:
			assert.Greater(t, r.DeflatorBase, 1.0, "%s %d", r.ISO2, r.Year)
		}
	}
}

func TestNumeraireDeflator(t *testing.T) {
	raw := []MacroRow{
		newMacroRow(MacroRow{ISO2: "US", Year: 2014, Deflator: 1.9}),
		newMacroRow(MacroRow{ISO2: "DE", Year: 2014, Deflator: 50}),
		newMacroRow(MacroRow{ISO2: "US", Year: 2013, Deflator: 1.8}),
	}
	got := numeraireDeflator(raw, "US", 2013)
	require.Len(t, got, 2)
	assert.Equal(t, 1.0, got[2013])
	assert.InDelta(t, 1.019, got[2014], 1e-12)
}
