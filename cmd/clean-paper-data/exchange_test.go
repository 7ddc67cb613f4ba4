package main

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCountries() map[string]Country {
	return map[string]Country{
		"SE": {Name: "Sweden", FAOCode: 210, ISO2: "SE", RateToEuro: math.NaN()},
		"DE": {Name: "Germany", FAOCode: 79, ISO2: "DE", RateToEuro: 1.95583, EuroAdoption: 1999},
		"LT": {Name: "Lithuania", FAOCode: 126, ISO2: "LT", RateToEuro: 3.4528, EuroAdoption: 2015},
	}
}

func macroYears(iso string, rate float64, years ...int) []MacroRow {
	var out []MacroRow
	for _, y := range years {
		out = append(out, newMacroRow(MacroRow{ISO2: iso, Year: y, ExchangeRate: rate}))
	}
	return out
}

func TestCountryClassify(t *testing.T) {
	c := testCountries()
	assert.Equal(t, classNonEuro, c["SE"].classify(2020))
	assert.Equal(t, classPreEuro, c["LT"].classify(2014))
	assert.Equal(t, classPostEuro, c["LT"].classify(2015))
	assert.Equal(t, classPostEuro, c["DE"].classify(2005))
}

func TestPartitionByEuroClass(t *testing.T) {
	var rows []MacroRow
	rows = append(rows, macroYears("SE", 6.5, 2013, 2014, 2015)...)
	rows = append(rows, macroYears("LT", 2.6, 2013, 2014, 2015, 2016)...)
	rows = append(rows, macroYears("DE", math.NaN(), 1998, 1999)...)

	p, err := partitionByEuroClass(rows, testCountries())
	require.NoError(t, err)

	assert.Len(t, p.nonEuro, 3)
	assert.Len(t, p.preEuro, 3) // LT 2013, 2014 and DE 1998
	assert.Len(t, p.postEuro, 3)
	assert.Equal(t, len(rows), p.size())
}

func TestPartitionRejectsUnknownCountry(t *testing.T) {
	rows := macroYears("XX", 1, 2013)
	_, err := partitionByEuroClass(rows, testCountries())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errRowCount))
}

func TestNormalizeExchangeRates(t *testing.T) {
	var rows []MacroRow
	rows = append(rows, macroYears("LT", 2.6, 2014)...)
	rows = append(rows, macroYears("LT", math.NaN(), 2015, 2016)...)
	rows = append(rows, macroYears("SE", 6.86, 2014)...)
	euroArea := map[int]float64{2014: 0.754, 2015: 0.902}

	out, p, err := normalizeExchangeRates(rows, testCountries(), euroArea)
	require.NoError(t, err)
	require.Len(t, out, 4)
	assert.Equal(t, 4, p.size())

	// ordered by (ISO2, year)
	assert.Equal(t, "LT", out[0].ISO2)
	assert.Equal(t, 2014, out[0].Year)
	assert.InDelta(t, 2.6/3.4528, out[0].ExchangeRateEuro, 1e-12)
	assert.Equal(t, classPreEuro, out[0].EuroClass)

	assert.Equal(t, 0.902, out[1].ExchangeRateEuro)
	assert.Equal(t, classPostEuro, out[1].EuroClass)
	assert.True(t, math.IsNaN(out[2].ExchangeRateEuro), "no Euro-area rate for 2016")

	assert.Equal(t, "SE", out[3].ISO2)
	assert.Equal(t, 6.86, out[3].ExchangeRateEuro)
	assert.Equal(t, classNonEuro, out[3].EuroClass)
}

func TestEuroAreaRates(t *testing.T) {
	raw := append(macroYears("XC", 0.75, 2013, 2014), macroYears("DE", 9, 2013)...)
	got := euroAreaRates(raw, "XC")
	assert.Equal(t, map[int]float64{2013: 0.75, 2014: 0.75}, got)
}
