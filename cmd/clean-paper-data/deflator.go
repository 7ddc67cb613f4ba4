package main

import (
	"math"
	"sort"
)

// chainDeflator turns annual deflator changes (percent) into an index
// equal to 1 at baseYear. years must be sorted ascending.
//
// After the base year the index is the running product of (1 + d/100)
// seeded at 1. Up to the base year the scan runs right to left starting
// from the base-year seed, excluding the base-year row itself:
// index(y) = index(next) / (1 + d(y)/100). A missing deflator leaves that
// year missing without breaking the chain.
func chainDeflator(years []int, deflators []float64, baseYear int) []float64 {
	out := make([]float64, len(years))
	split := sort.SearchInts(years, baseYear+1)

	running := 1.0
	for i := split; i < len(years); i++ {
		if math.IsNaN(deflators[i]) {
			out[i] = math.NaN()
			continue
		}
		running *= 1 + deflators[i]/100
		out[i] = running
	}

	running = 1.0
	for i := split - 1; i >= 0; i-- {
		if years[i] == baseYear {
			out[i] = 1
			continue
		}
		if math.IsNaN(deflators[i]) {
			out[i] = math.NaN()
			continue
		}
		running /= 1 + deflators[i]/100
		out[i] = running
	}
	return out
}

// applyDeflatorBase fills DeflatorBase per country. rows must be ordered
// by (ISO2, year).
func applyDeflatorBase(rows []MacroRow, baseYear int) {
	for start := 0; start < len(rows); {
		end := start
		for end < len(rows) && rows[end].ISO2 == rows[start].ISO2 {
			end++
		}
		group := rows[start:end]
		years := make([]int, len(group))
		defl := make([]float64, len(group))
		for i, r := range group {
			years[i] = r.Year
			defl[i] = r.Deflator
		}
		for i, v := range chainDeflator(years, defl, baseYear) {
			group[i].DeflatorBase = v
		}
		start = end
	}
}

// numeraireDeflator chains the deflator of a single reference country and
// indexes it by year.
func numeraireDeflator(raw []MacroRow, iso2 string, baseYear int) map[int]float64 {
	var rows []MacroRow
	for _, r := range raw {
		if r.ISO2 == iso2 {
			rows = append(rows, r)
		}
	}
	sortMacro(rows)
	years := make([]int, len(rows))
	defl := make([]float64, len(rows))
	for i, r := range rows {
		years[i] = r.Year
		defl[i] = r.Deflator
	}
	out := make(map[int]float64, len(rows))
	for i, v := range chainDeflator(years, defl, baseYear) {
		out[years[i]] = v
	}
	return out
}
