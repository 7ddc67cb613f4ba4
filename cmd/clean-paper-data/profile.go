package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

func buildProfile(res *Result, cfg Config) string {
	s := res.Stats
	lines := []string{
		"# EU paper products cleaning report",
		"",
		"## Inputs",
		fmt.Sprintf("- Base year: %d", cfg.BaseYear),
		fmt.Sprintf("- Paper rows read: %s (EU: %s)", fmtInt(s.PaperRowsRead), fmtInt(s.PaperRowsEU)),
		fmt.Sprintf("- Macro rows read: %s (EU: %s)", fmtInt(s.MacroRowsRead), fmtInt(s.MacroRowsEU)),
		fmt.Sprintf("- Euro-area rate years: %s", fmtInt(s.EuroAreaYears)),
		fmt.Sprintf("- Numeraire (%s) deflator years: %s", cfg.NumeraireISO, fmtInt(s.NumeraireYears)),
		"",
		"## Exchange-rate classes",
		fmt.Sprintf("- Non-Euro: %s", fmtInt(s.NonEuroRows)),
		fmt.Sprintf("- Pre-adoption: %s", fmtInt(s.PreEuroRows)),
		fmt.Sprintf("- Post-adoption: %s", fmtInt(s.PostEuroRows)),
		fmt.Sprintf("- Rows without Euro rate: %s", fmtInt(s.MissingEuroRates)),
		"",
		"## Outputs",
		fmt.Sprintf("- paper: %s rows", fmtInt(len(res.Paper))),
		fmt.Sprintf("- paper_trade: %s rows", fmtInt(len(res.Trade))),
		fmt.Sprintf("- macro: %s rows", fmtInt(len(res.Macro))),
		fmt.Sprintf("- paper_eu: %s rows", fmtInt(len(res.Aggregate))),
		"",
		"## Missingness (paper table)",
	}

	t := paperTable(res.Paper)
	type miss struct {
		col string
		pct float64
	}
	var misses []miss
	for i, col := range t.Columns {
		nulls := 0
		for _, r := range t.Rows {
			if f, ok := r[i].(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
				nulls++
			}
		}
		if nulls > 0 {
			misses = append(misses, miss{col, safeDiv(float64(nulls)*100, float64(len(t.Rows)))})
		}
	}
	sort.SliceStable(misses, func(i, j int) bool {
		if misses[i].pct != misses[j].pct {
			return misses[i].pct > misses[j].pct
		}
		return misses[i].col < misses[j].col
	})
	if len(misses) == 0 {
		lines = append(lines, "- none")
	}
	for _, m := range misses {
		lines = append(lines, fmt.Sprintf("- `%s`: %.1f%% null", m.col, m.pct))
	}
	lines = append(lines,
		"",
		"## Assumptions",
		"- Missing production and trade figures are read as zero before consumption, prices and the EU aggregate.",
		"",
	)
	return strings.Join(lines, "\n")
}

func writeProfile(path, body string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(body), 0o644)
}

func fmtInt(v int) string {
	s := strconv.Itoa(v)
	n := len(s)
	if n <= 3 {
		return s
	}
	var parts []string
	for n > 3 {
		parts = append([]string{s[n-3:]}, parts...)
		s = s[:n-3]
		n = len(s)
	}
	if s != "" {
		parts = append([]string{s}, parts...)
	}
	return strings.Join(parts, ",")
}

// safeDiv returns NaN instead of an infinity when b is zero.
func safeDiv(a, b float64) float64 {
	if b == 0 {
		return math.NaN()
	}
	return a / b
}
