package main

import "math"

// Country is one row of the EU reference table. EuroAdoption is 0 for
// members that never joined the Euro.
type Country struct {
	Name         string
	FAOCode      int
	ISO2         string
	RateToEuro   float64 // local currency units per Euro
	EuroAdoption int
}

type euroClass int

const (
	classNonEuro euroClass = iota
	classPreEuro
	classPostEuro
)

func (c euroClass) String() string {
	switch c {
	case classNonEuro:
		return "non_euro"
	case classPreEuro:
		return "pre_euro"
	case classPostEuro:
		return "post_euro"
	}
	return "unknown"
}

// classify assigns a (country, year) to exactly one Euro class.
func (c Country) classify(year int) euroClass {
	switch {
	case c.EuroAdoption == 0:
		return classNonEuro
	case year < c.EuroAdoption:
		return classPreEuro
	default:
		return classPostEuro
	}
}

type MacroRow struct {
	Country       string
	ISO2          string
	Year          int
	GDPCurrentLCU float64
	Deflator      float64 // annual % change of the GDP deflator
	ExchangeRate  float64 // local currency units per USD
	Population    float64

	EuroClass        euroClass
	ExchangeRateEuro float64
	DeflatorBase     float64
	GDPConstantUSD   float64
	GDPPerCapita     float64
}

func newMacroRow(r MacroRow) MacroRow {
	r.ExchangeRateEuro = math.NaN()
	r.DeflatorBase = math.NaN()
	r.GDPConstantUSD = math.NaN()
	r.GDPPerCapita = math.NaN()
	return r
}

type PaperRow struct {
	FAOCode        int
	Country        string
	ISO2           string
	Item           string
	Year           int
	Production     float64
	ImportQuantity float64
	ExportQuantity float64
	ImportValue    float64 // 1000 USD
	ExportValue    float64 // 1000 USD

	Consumption          float64
	Price                float64
	ImportPrice          float64
	ExportPrice          float64
	DeflatorUS           float64
	GDPConstantUSD       float64
	Population           float64
	ConsumptionPerCapita float64
}

func newPaperRow(r PaperRow) PaperRow {
	r.Consumption = math.NaN()
	r.Price = math.NaN()
	r.ImportPrice = math.NaN()
	r.ExportPrice = math.NaN()
	r.DeflatorUS = math.NaN()
	r.GDPConstantUSD = math.NaN()
	r.Population = math.NaN()
	r.ConsumptionPerCapita = math.NaN()
	return r
}

const (
	directionImport = "Import"
	directionExport = "Export"
)

// TradeRow is the long form of a PaperRow: one row per trade direction.
type TradeRow struct {
	Country   string
	ISO2      string
	Year      int
	Item      string
	Direction string
	Quantity  float64
	Value     float64
	Price     float64
}

const (
	elementConsumption = "Consumption"
	elementProduction  = "Production"
	elementImport      = "Import"
	elementExport      = "Export"
)

// AggregateRow is one (year, item, element) cell of the EU total.
type AggregateRow struct {
	Year     int
	Item     string
	Element  string
	Quantity float64
	Price    float64
}

// Result holds every table the pipeline emits.
type Result struct {
	Paper     []PaperRow
	Trade     []TradeRow
	Macro     []MacroRow
	Aggregate []AggregateRow
	Stats     runStats
}

type runStats struct {
	PaperRowsRead    int
	MacroRowsRead    int
	PaperRowsEU      int
	MacroRowsEU      int
	NonEuroRows      int
	PreEuroRows      int
	PostEuroRows     int
	EuroAreaYears    int
	NumeraireYears   int
	MissingEuroRates int
}
