package main

import (
	"database/sql"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

// outTable is a column-ordered view of one output table.
type outTable struct {
	Name    string
	Columns []string
	Types   map[string]string // SQLite affinity per column, TEXT when absent
	Indexes []string
	Rows    [][]any
}

func paperTable(rows []PaperRow) outTable {
	t := outTable{
		Name: "paper",
		Columns: []string{
			"country", "fao_code", "iso2_code", "item", "year",
			"production", "import_quantity", "export_quantity", "import_value", "export_value",
			"consumption", "price", "import_price", "export_price", "deflator_us",
			"gdp_constant_usd", "population", "consumption_per_capita",
		},
		Types:   realColumns("fao_code", "year"),
		Indexes: []string{"iso2_code, year", "item, year"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.Country, r.FAOCode, r.ISO2, r.Item, r.Year,
			r.Production, r.ImportQuantity, r.ExportQuantity, r.ImportValue, r.ExportValue,
			r.Consumption, r.Price, r.ImportPrice, r.ExportPrice, r.DeflatorUS,
			r.GDPConstantUSD, r.Population, r.ConsumptionPerCapita,
		})
	}
	return t
}

func tradeTable(rows []TradeRow) outTable {
	t := outTable{
		Name:    "paper_trade",
		Columns: []string{"country", "iso2_code", "year", "item", "direction", "quantity", "value", "price"},
		Types:   map[string]string{"year": "INTEGER", "quantity": "REAL", "value": "REAL", "price": "REAL"},
		Indexes: []string{"iso2_code, year", "item, direction"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{r.Country, r.ISO2, r.Year, r.Item, r.Direction, r.Quantity, r.Value, r.Price})
	}
	return t
}

func macroTable(rows []MacroRow) outTable {
	t := outTable{
		Name: "macro",
		Columns: []string{
			"country", "iso2_code", "year", "gdp_current_lcu", "deflator", "exchange_rate", "population",
			"euro_class", "exchange_rate_euro", "deflator_base", "gdp_constant_usd", "gdp_per_capita",
		},
		Types: map[string]string{
			"year": "INTEGER", "gdp_current_lcu": "REAL", "deflator": "REAL", "exchange_rate": "REAL", "population": "REAL",
			"exchange_rate_euro": "REAL", "deflator_base": "REAL", "gdp_constant_usd": "REAL", "gdp_per_capita": "REAL",
		},
		Indexes: []string{"iso2_code, year"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.Country, r.ISO2, r.Year, r.GDPCurrentLCU, r.Deflator, r.ExchangeRate, r.Population,
			r.EuroClass.String(), r.ExchangeRateEuro, r.DeflatorBase, r.GDPConstantUSD, r.GDPPerCapita,
		})
	}
	return t
}

func aggregateTable(rows []AggregateRow) outTable {
	t := outTable{
		Name:    "paper_eu",
		Columns: []string{"year", "item", "element", "quantity", "price"},
		Types:   map[string]string{"year": "INTEGER", "quantity": "REAL", "price": "REAL"},
		Indexes: []string{"item, element"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{r.Year, r.Item, r.Element, r.Quantity, r.Price})
	}
	return t
}

// realColumns types every paper column REAL except the given integer ones.
func realColumns(ints ...string) map[string]string {
	m := map[string]string{
		"production": "REAL", "import_quantity": "REAL", "export_quantity": "REAL", "import_value": "REAL", "export_value": "REAL",
		"consumption": "REAL", "price": "REAL", "import_price": "REAL", "export_price": "REAL", "deflator_us": "REAL",
		"gdp_constant_usd": "REAL", "population": "REAL", "consumption_per_capita": "REAL",
	}
	for _, c := range ints {
		m[c] = "INTEGER"
	}
	return m
}

func resultTables(res *Result) []outTable {
	return []outTable{
		paperTable(res.Paper),
		tradeTable(res.Trade),
		macroTable(res.Macro),
		aggregateTable(res.Aggregate),
	}
}

// writeSQLite replaces the file at path with one holding every table.
func writeSQLite(path string, tables []outTable) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	_ = os.Remove(path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, t := range tables {
		if err := writeSQLiteTable(tx, t); err != nil {
			return fmt.Errorf("table %s: %w", t.Name, err)
		}
	}
	return tx.Commit()
}

func writeSQLiteTable(tx *sql.Tx, t outTable) error {
	var defs, qCols []string
	for _, c := range t.Columns {
		typ := t.Types[c]
		if typ == "" {
			typ = "TEXT"
		}
		defs = append(defs, fmt.Sprintf("%q %s", c, typ))
		qCols = append(qCols, fmt.Sprintf("%q", c))
	}
	if _, err := tx.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %q`, t.Name)); err != nil {
		return err
	}
	if _, err := tx.Exec(fmt.Sprintf(`CREATE TABLE %q (%s)`, t.Name, strings.Join(defs, ","))); err != nil {
		return err
	}
	ph := strings.TrimRight(strings.Repeat("?,", len(t.Columns)), ",")
	stmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO %q (%s) VALUES (%s)`, t.Name, strings.Join(qCols, ","), ph))
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range t.Rows {
		args := make([]any, len(r))
		for i, v := range r {
			args[i] = sqliteValue(v)
		}
		if _, err := stmt.Exec(args...); err != nil {
			return err
		}
	}
	for i, cols := range t.Indexes {
		idx := fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_%d ON %q(%s)`, t.Name, i, t.Name, cols)
		if _, err := tx.Exec(idx); err != nil {
			return err
		}
	}
	return nil
}

func sqliteValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		return t
	default:
		return t
	}
}

// writeTableCSV mirrors one output table as <dir>/<name>.csv.
func writeTableCSV(dir string, t outTable) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, t.Name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := writeCSVRecord(f, t.Columns); err != nil {
		return "", err
	}
	rec := make([]string, len(t.Columns))
	for _, r := range t.Rows {
		for i, v := range r {
			rec[i] = csvString(v)
		}
		if err := writeCSVRecord(f, rec); err != nil {
			return "", err
		}
	}
	return path, f.Close()
}

func csvString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case float64:
		return pythonLikeFloatString(t)
	default:
		return fmt.Sprint(t)
	}
}

// pythonLikeFloatString keeps a trailing .0 on integral floats so the CSV
// mirrors read back as floats in pandas.
func pythonLikeFloatString(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		return s + ".0"
	}
	return s
}

func writeCSVRecord(w io.Writer, rec []string) error {
	for i, field := range rec {
		if i > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		if needsCSVQuote(field) {
			field = `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
		}
		if _, err := io.WriteString(w, field); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func needsCSVQuote(s string) bool {
	return strings.ContainsAny(s, ",\"\n\r")
}
