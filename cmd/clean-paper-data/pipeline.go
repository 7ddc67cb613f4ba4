package main

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"
)

type inputs struct {
	Countries []Country
	Paper     []PaperRow
	Macro     []MacroRow
}

func loadInputs(cfg Config) (inputs, error) {
	countries, err := loadCountries(cfg.Input.Countries)
	if err != nil {
		return inputs{}, fmt.Errorf("load countries: %w", err)
	}
	paper, err := loadPaper(cfg.Input.Paper)
	if err != nil {
		return inputs{}, fmt.Errorf("load paper: %w", err)
	}
	macro, err := loadMacro(cfg.Input.Macro)
	if err != nil {
		return inputs{}, fmt.Errorf("load macro: %w", err)
	}
	return inputs{Countries: countries, Paper: paper, Macro: macro}, nil
}

// filterPaper keeps EU rows (and configured items when any are set) and
// stamps them with the reference name and ISO2 code.
func filterPaper(rows []PaperRow, byFAO map[int]Country, items map[string]bool) []PaperRow {
	out := make([]PaperRow, 0, len(rows))
	for _, r := range rows {
		c, ok := byFAO[r.FAOCode]
		if !ok {
			continue
		}
		if len(items) > 0 && !items[r.Item] {
			continue
		}
		r.Country = c.Name
		r.ISO2 = c.ISO2
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ISO2 != b.ISO2 {
			return a.ISO2 < b.ISO2
		}
		if a.Item != b.Item {
			return a.Item < b.Item
		}
		return a.Year < b.Year
	})
	return out
}

func filterMacro(rows []MacroRow, byISO2 map[string]Country) []MacroRow {
	out := make([]MacroRow, 0, len(rows))
	for _, r := range rows {
		if _, ok := byISO2[r.ISO2]; ok {
			out = append(out, r)
		}
	}
	return out
}

// process runs every transformation stage on loaded inputs. It does no I/O.
func process(in inputs, cfg Config, log *zap.Logger) (*Result, error) {
	byISO2 := make(map[string]Country, len(in.Countries))
	byFAO := make(map[int]Country, len(in.Countries))
	for _, c := range in.Countries {
		byISO2[c.ISO2] = c
		byFAO[c.FAOCode] = c
	}
	items := make(map[string]bool, len(cfg.Items))
	for _, it := range cfg.Items {
		items[it] = true
	}

	euroArea := euroAreaRates(in.Macro, cfg.EuroAreaISO2)
	usDeflator := numeraireDeflator(in.Macro, cfg.NumeraireISO, cfg.BaseYear)
	if len(usDeflator) == 0 {
		log.Warn("no numeraire rows, prices will be missing", zap.String("iso2", cfg.NumeraireISO))
	}

	paper := filterPaper(in.Paper, byFAO, items)
	macroEU := filterMacro(in.Macro, byISO2)
	log.Info("filtered to EU",
		zap.Int("paper_rows", len(paper)),
		zap.Int("macro_rows", len(macroEU)),
		zap.Int("countries", len(in.Countries)),
	)

	macro, part, err := normalizeExchangeRates(macroEU, byISO2, euroArea)
	if err != nil {
		return nil, err
	}
	log.Info("exchange rates normalized",
		zap.Int("non_euro", len(part.nonEuro)),
		zap.Int("pre_euro", len(part.preEuro)),
		zap.Int("post_euro", len(part.postEuro)),
	)

	applyDeflatorBase(macro, cfg.BaseYear)
	computeGDP(macro, cfg.BaseYear)
	derivePaper(paper, macro, usDeflator)
	log.Info("derived consumption and prices", zap.Int("base_year", cfg.BaseYear))

	trade, err := tradeToLong(paper)
	if err != nil {
		return nil, err
	}
	agg, err := aggregateEU(paper)
	if err != nil {
		return nil, err
	}
	log.Info("reshaped", zap.Int("trade_rows", len(trade)), zap.Int("eu_rows", len(agg)))

	missingRates := 0
	for _, m := range macro {
		if math.IsNaN(m.ExchangeRateEuro) {
			missingRates++
		}
	}
	if missingRates > 0 {
		log.Warn("macro rows without a Euro exchange rate", zap.Int("rows", missingRates))
	}

	return &Result{
		Paper:     paper,
		Trade:     trade,
		Macro:     macro,
		Aggregate: agg,
		Stats: runStats{
			PaperRowsRead:    len(in.Paper),
			MacroRowsRead:    len(in.Macro),
			PaperRowsEU:      len(paper),
			MacroRowsEU:      len(macroEU),
			NonEuroRows:      len(part.nonEuro),
			PreEuroRows:      len(part.preEuro),
			PostEuroRows:     len(part.postEuro),
			EuroAreaYears:    len(euroArea),
			NumeraireYears:   len(usDeflator),
			MissingEuroRates: missingRates,
		},
	}, nil
}

type outputs struct {
	SQLite  string
	Profile string
	CSV     []string
}

func persist(res *Result, cfg Config) (outputs, error) {
	tables := resultTables(res)
	out := outputs{SQLite: cfg.sqlitePath(), Profile: cfg.profilePath()}
	if err := writeSQLite(out.SQLite, tables); err != nil {
		return out, fmt.Errorf("write sqlite: %w", err)
	}
	if cfg.Output.CSV {
		for _, t := range tables {
			p, err := writeTableCSV(cfg.Output.Dir, t)
			if err != nil {
				return out, fmt.Errorf("write csv %s: %w", t.Name, err)
			}
			out.CSV = append(out.CSV, p)
		}
	}
	if err := writeProfile(out.Profile, buildProfile(res, cfg)); err != nil {
		return out, fmt.Errorf("write profile: %w", err)
	}
	return out, nil
}

// run is the whole command: load, transform, persist.
func run(cfg Config, log *zap.Logger) (outputs, error) {
	if err := cfg.validate(); err != nil {
		return outputs{}, fmt.Errorf("invalid config: %w", err)
	}
	in, err := loadInputs(cfg)
	if err != nil {
		return outputs{}, err
	}
	log.Info("inputs loaded",
		zap.Int("countries", len(in.Countries)),
		zap.Int("paper_rows", len(in.Paper)),
		zap.Int("macro_rows", len(in.Macro)),
	)
	res, err := process(in, cfg, log)
	if err != nil {
		return outputs{}, err
	}
	return persist(res, cfg)
}
