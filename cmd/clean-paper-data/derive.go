package main

import "math"

type countryYear struct {
	iso2 string
	year int
}

// computeGDP fills GDPConstantUSD and GDPPerCapita. The Euro exchange rate
// used is the country's own rate in the base year.
func computeGDP(rows []MacroRow, baseYear int) {
	baseRate := map[string]float64{}
	for _, r := range rows {
		if r.Year == baseYear {
			baseRate[r.ISO2] = r.ExchangeRateEuro
		}
	}
	for i := range rows {
		rate, ok := baseRate[rows[i].ISO2]
		if !ok {
			rate = math.NaN()
		}
		rows[i].GDPConstantUSD = safeDiv(rows[i].GDPCurrentLCU, rows[i].DeflatorBase*rate)
		rows[i].GDPPerCapita = safeDiv(rows[i].GDPConstantUSD, rows[i].Population)
	}
}

// zeroFillTrade replaces missing production and trade figures with zero.
// Known simplification: "no data" becomes "nothing traded".
func zeroFillTrade(r *PaperRow) {
	r.Production = zeroIfNaN(r.Production)
	r.ImportQuantity = zeroIfNaN(r.ImportQuantity)
	r.ExportQuantity = zeroIfNaN(r.ExportQuantity)
	r.ImportValue = zeroIfNaN(r.ImportValue)
	r.ExportValue = zeroIfNaN(r.ExportValue)
}

// derivePaper computes consumption and deflated prices for every row and
// joins the macro figures of the same country and year. Prices are USD per
// tonne at base-year US prices: values are in 1000 USD, hence the x1000.
func derivePaper(rows []PaperRow, macro []MacroRow, usDeflator map[int]float64) {
	byKey := make(map[countryYear]MacroRow, len(macro))
	for _, m := range macro {
		byKey[countryYear{m.ISO2, m.Year}] = m
	}
	for i := range rows {
		r := &rows[i]
		zeroFillTrade(r)
		r.Consumption = r.Production + r.ImportQuantity - r.ExportQuantity

		defl, ok := usDeflator[r.Year]
		if !ok {
			defl = math.NaN()
		}
		r.DeflatorUS = defl
		r.Price = deflatedPrice(r.ImportValue+r.ExportValue, r.ImportQuantity+r.ExportQuantity, defl)
		r.ImportPrice = deflatedPrice(r.ImportValue, r.ImportQuantity, defl)
		r.ExportPrice = deflatedPrice(r.ExportValue, r.ExportQuantity, defl)

		if m, ok := byKey[countryYear{r.ISO2, r.Year}]; ok {
			r.GDPConstantUSD = m.GDPConstantUSD
			r.Population = m.Population
		}
		r.ConsumptionPerCapita = safeDiv(r.Consumption*1000, r.Population)
	}
}

func deflatedPrice(value, quantity, deflator float64) float64 {
	return safeDiv(safeDiv(value, quantity), deflator) * 1000
}
