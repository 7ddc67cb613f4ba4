package main

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// tradeToLong emits an Import and an Export row for every paper row.
func tradeToLong(rows []PaperRow) ([]TradeRow, error) {
	out := make([]TradeRow, 0, 2*len(rows))
	for _, r := range rows {
		out = append(out,
			TradeRow{
				Country: r.Country, ISO2: r.ISO2, Year: r.Year, Item: r.Item,
				Direction: directionImport,
				Quantity:  r.ImportQuantity, Value: r.ImportValue, Price: r.ImportPrice,
			},
			TradeRow{
				Country: r.Country, ISO2: r.ISO2, Year: r.Year, Item: r.Item,
				Direction: directionExport,
				Quantity:  r.ExportQuantity, Value: r.ExportValue, Price: r.ExportPrice,
			},
		)
	}
	if len(out) != 2*len(rows) {
		return nil, fmt.Errorf("trade reshape: got %d rows, want %d: %w", len(out), 2*len(rows), errRowCount)
	}
	return out, nil
}

const (
	colItem        = "item"
	colYear        = "year"
	colConsumption = "consumption"
	colProduction  = "production"
	colImportQty   = "import_quantity"
	colExportQty   = "export_quantity"
	colPrice       = "price"
	colImportPrice = "import_price"
	colExportPrice = "export_price"
)

// paperFrame builds the zero-filled data frame the EU aggregate groups on.
func paperFrame(rows []PaperRow) dataframe.DataFrame {
	n := len(rows)
	items := make([]string, n)
	years := make([]int, n)
	cons := make([]float64, n)
	prod := make([]float64, n)
	imp := make([]float64, n)
	exp := make([]float64, n)
	price := make([]float64, n)
	impPrice := make([]float64, n)
	expPrice := make([]float64, n)
	for i, r := range rows {
		items[i] = r.Item
		years[i] = r.Year
		cons[i] = zeroIfNaN(r.Consumption)
		prod[i] = zeroIfNaN(r.Production)
		imp[i] = zeroIfNaN(r.ImportQuantity)
		exp[i] = zeroIfNaN(r.ExportQuantity)
		price[i] = zeroIfNaN(r.Price)
		impPrice[i] = zeroIfNaN(r.ImportPrice)
		expPrice[i] = zeroIfNaN(r.ExportPrice)
	}
	return dataframe.New(
		series.New(items, series.String, colItem),
		series.New(years, series.Int, colYear),
		series.New(cons, series.Float, colConsumption),
		series.New(prod, series.Float, colProduction),
		series.New(imp, series.Float, colImportQty),
		series.New(exp, series.Float, colExportQty),
		series.New(price, series.Float, colPrice),
		series.New(impPrice, series.Float, colImportPrice),
		series.New(expPrice, series.Float, colExportPrice),
	)
}

func aggCol(col string, typ dataframe.AggregationType) string {
	return fmt.Sprintf("%s_%s", col, typ)
}

// aggregateEU sums quantities and averages prices across countries per
// (item, year) and returns the result in long form keyed by
// (year, item, element).
func aggregateEU(rows []PaperRow) ([]AggregateRow, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	df := paperFrame(rows)
	if df.Err != nil {
		return nil, fmt.Errorf("build paper frame: %w", df.Err)
	}

	sums := []string{colConsumption, colProduction, colImportQty, colExportQty}
	means := []string{colPrice, colImportPrice, colExportPrice}
	var typs []dataframe.AggregationType
	var cols []string
	for _, c := range sums {
		typs = append(typs, dataframe.Aggregation_SUM)
		cols = append(cols, c)
	}
	for _, c := range means {
		typs = append(typs, dataframe.Aggregation_MEAN)
		cols = append(cols, c)
	}

	agg := df.GroupBy(colItem, colYear).Aggregation(typs, cols)
	if agg.Err != nil {
		return nil, fmt.Errorf("aggregate by item and year: %w", agg.Err)
	}

	items := agg.Col(colItem).Records()
	years, err := agg.Col(colYear).Int()
	if err != nil {
		return nil, fmt.Errorf("aggregate year column: %w", err)
	}
	get := func(col string, typ dataframe.AggregationType) []float64 {
		return agg.Col(aggCol(col, typ)).Float()
	}
	cons := get(colConsumption, dataframe.Aggregation_SUM)
	prod := get(colProduction, dataframe.Aggregation_SUM)
	imp := get(colImportQty, dataframe.Aggregation_SUM)
	exp := get(colExportQty, dataframe.Aggregation_SUM)
	price := get(colPrice, dataframe.Aggregation_MEAN)
	impPrice := get(colImportPrice, dataframe.Aggregation_MEAN)
	expPrice := get(colExportPrice, dataframe.Aggregation_MEAN)

	out := make([]AggregateRow, 0, 4*agg.Nrow())
	for i := 0; i < agg.Nrow(); i++ {
		out = append(out,
			AggregateRow{Year: years[i], Item: items[i], Element: elementConsumption, Quantity: cons[i], Price: price[i]},
			AggregateRow{Year: years[i], Item: items[i], Element: elementProduction, Quantity: prod[i], Price: price[i]},
			AggregateRow{Year: years[i], Item: items[i], Element: elementImport, Quantity: imp[i], Price: impPrice[i]},
			AggregateRow{Year: years[i], Item: items[i], Element: elementExport, Quantity: exp[i], Price: expPrice[i]},
		)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		if out[i].Item != out[j].Item {
			return out[i].Item < out[j].Item
		}
		return elementRank[out[i].Element] < elementRank[out[j].Element]
	})
	return out, nil
}

var elementRank = map[string]int{
	elementConsumption: 0,
	elementProduction:  1,
	elementImport:      2,
	elementExport:      3,
}

func zeroIfNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
