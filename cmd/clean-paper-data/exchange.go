package main

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var errRowCount = errors.New("row count mismatch")

type ratePartition struct {
	nonEuro  []MacroRow
	preEuro  []MacroRow
	postEuro []MacroRow
}

func (p ratePartition) size() int {
	return len(p.nonEuro) + len(p.preEuro) + len(p.postEuro)
}

// partitionByEuroClass splits EU macro rows into the three disjoint Euro
// classes. Rows whose ISO2 code is missing from the reference table
// cannot be classified and fail the split.
func partitionByEuroClass(rows []MacroRow, byISO2 map[string]Country) (ratePartition, error) {
	var p ratePartition
	for _, r := range rows {
		c, ok := byISO2[r.ISO2]
		if !ok {
			return ratePartition{}, fmt.Errorf("partition: unknown country %q (%s): %w", r.Country, r.ISO2, errRowCount)
		}
		r.EuroClass = c.classify(r.Year)
		switch r.EuroClass {
		case classNonEuro:
			p.nonEuro = append(p.nonEuro, r)
		case classPreEuro:
			p.preEuro = append(p.preEuro, r)
		case classPostEuro:
			p.postEuro = append(p.postEuro, r)
		}
	}
	if p.size() != len(rows) {
		return ratePartition{}, fmt.Errorf("partition: %d+%d+%d != %d: %w",
			len(p.nonEuro), len(p.preEuro), len(p.postEuro), len(rows), errRowCount)
	}
	return p, nil
}

// euroAreaRates indexes the synthetic Euro-area rows by year.
func euroAreaRates(raw []MacroRow, iso2 string) map[int]float64 {
	out := map[int]float64{}
	for _, r := range raw {
		if r.ISO2 == iso2 {
			out[r.Year] = r.ExchangeRate
		}
	}
	return out
}

// normalizeExchangeRates fills ExchangeRateEuro for every row. Non-Euro
// countries keep their own rate, pre-adoption rates are converted with the
// fixed conversion factor, post-adoption rows take the Euro-area rate of
// the same year. The recombined table is ordered by (ISO2, year).
func normalizeExchangeRates(rows []MacroRow, byISO2 map[string]Country, euroArea map[int]float64) ([]MacroRow, ratePartition, error) {
	p, err := partitionByEuroClass(rows, byISO2)
	if err != nil {
		return nil, ratePartition{}, err
	}
	for i := range p.nonEuro {
		p.nonEuro[i].ExchangeRateEuro = p.nonEuro[i].ExchangeRate
	}
	for i := range p.preEuro {
		c := byISO2[p.preEuro[i].ISO2]
		p.preEuro[i].ExchangeRateEuro = safeDiv(p.preEuro[i].ExchangeRate, c.RateToEuro)
	}
	for i := range p.postEuro {
		rate, ok := euroArea[p.postEuro[i].Year]
		if !ok {
			rate = math.NaN()
		}
		p.postEuro[i].ExchangeRateEuro = rate
	}

	out := make([]MacroRow, 0, len(rows))
	out = append(out, p.nonEuro...)
	out = append(out, p.preEuro...)
	out = append(out, p.postEuro...)
	if len(out) != len(rows) {
		return nil, ratePartition{}, fmt.Errorf("recombine exchange rates: got %d rows, want %d: %w", len(out), len(rows), errRowCount)
	}
	sortMacro(out)
	return out, p, nil
}

func sortMacro(rows []MacroRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ISO2 != rows[j].ISO2 {
			return rows[i].ISO2 < rows[j].ISO2
		}
		return rows[i].Year < rows[j].Year
	})
}
