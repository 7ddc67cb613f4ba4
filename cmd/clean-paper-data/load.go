package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

type csvTable struct {
	Path    string
	Headers []string
	Rows    []map[string]string
}

var (
	countryColumns = []string{"country", "fao_code", "iso2_code", "exchange_rate_to_euro", "euro_adoption"}
	paperColumns   = []string{"fao_code", "country", "item", "year", "production", "import_quantity", "export_quantity", "import_value", "export_value"}
	macroColumns   = []string{"country", "iso2_code", "year", "gdp_current_lcu", "deflator", "exchange_rate", "population"}
)

func loadCSV(path string) (csvTable, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return csvTable{}, err
	}
	b = bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF})
	r := csv.NewReader(bytes.NewReader(b))
	r.FieldsPerRecord = -1
	headers, err := r.Read()
	if err != nil {
		return csvTable{}, fmt.Errorf("read header %s: %w", path, err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}
	var rows []map[string]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return csvTable{}, err
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = strings.TrimSpace(rec[i])
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return csvTable{Path: path, Headers: headers, Rows: rows}, nil
}

func (t csvTable) requireColumns(cols []string) error {
	have := make(map[string]bool, len(t.Headers))
	for _, h := range t.Headers {
		have[h] = true
	}
	var missing []string
	for _, c := range cols {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: missing columns %s", t.Path, strings.Join(missing, ", "))
	}
	return nil
}

func loadCountries(path string) ([]Country, error) {
	t, err := loadCSV(path)
	if err != nil {
		return nil, err
	}
	if err := t.requireColumns(countryColumns); err != nil {
		return nil, err
	}
	out := make([]Country, 0, len(t.Rows))
	for i, r := range t.Rows {
		fao, err := strconv.Atoi(r["fao_code"])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: fao_code: %w", path, i+2, err)
		}
		adoption := 0
		if s := r["euro_adoption"]; !isMissingText(s) {
			if adoption, err = strconv.Atoi(s); err != nil {
				return nil, fmt.Errorf("%s row %d: euro_adoption: %w", path, i+2, err)
			}
		}
		out = append(out, Country{
			Name:         r["country"],
			FAOCode:      fao,
			ISO2:         r["iso2_code"],
			RateToEuro:   parseNullableFloat(r["exchange_rate_to_euro"]),
			EuroAdoption: adoption,
		})
	}
	return out, nil
}

func loadPaper(path string) ([]PaperRow, error) {
	t, err := loadCSV(path)
	if err != nil {
		return nil, err
	}
	if err := t.requireColumns(paperColumns); err != nil {
		return nil, err
	}
	out := make([]PaperRow, 0, len(t.Rows))
	for i, r := range t.Rows {
		fao, err := strconv.Atoi(r["fao_code"])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: fao_code: %w", path, i+2, err)
		}
		year, err := strconv.Atoi(r["year"])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: year: %w", path, i+2, err)
		}
		out = append(out, newPaperRow(PaperRow{
			FAOCode:        fao,
			Country:        r["country"],
			Item:           r["item"],
			Year:           year,
			Production:     parseNullableFloat(r["production"]),
			ImportQuantity: parseNullableFloat(r["import_quantity"]),
			ExportQuantity: parseNullableFloat(r["export_quantity"]),
			ImportValue:    parseNullableFloat(r["import_value"]),
			ExportValue:    parseNullableFloat(r["export_value"]),
		}))
	}
	return out, nil
}

func loadMacro(path string) ([]MacroRow, error) {
	t, err := loadCSV(path)
	if err != nil {
		return nil, err
	}
	if err := t.requireColumns(macroColumns); err != nil {
		return nil, err
	}
	out := make([]MacroRow, 0, len(t.Rows))
	for i, r := range t.Rows {
		year, err := strconv.Atoi(r["year"])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: year: %w", path, i+2, err)
		}
		out = append(out, newMacroRow(MacroRow{
			Country:       r["country"],
			ISO2:          r["iso2_code"],
			Year:          year,
			GDPCurrentLCU: parseNullableFloat(r["gdp_current_lcu"]),
			Deflator:      parseNullableFloat(r["deflator"]),
			ExchangeRate:  parseNullableFloat(r["exchange_rate"]),
			Population:    parseNullableFloat(r["population"]),
		}))
	}
	return out, nil
}

// isMissingText reports the spellings FAOSTAT and World Bank exports use for no data.
func isMissingText(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "NA", "NaN", "nan", "..":
		return true
	}
	return false
}

func parseNullableFloat(s string) float64 {
	if isMissingText(s) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
