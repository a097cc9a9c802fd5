package extract

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	gstat "gonum.org/v1/gonum/stat"

	"sheetscope/models"
)

const (
	chartHeight     = 300
	tableHeight     = 400
	sampleTableRows = 10
	histogramBins   = 10
)

// BuildCharts assembles the chart payloads the browser renders for one
// extraction. detail may be nil; every chart then degrades to either the
// scan counts or an "empty" placeholder. The function never fails.
func BuildCharts(sc models.Scan, detail *models.Detail) []models.Chart {
	charts := []models.Chart{
		gaugeChart(sc),
		nameBarChart("Data Points per Sheet", "No sheet data available", sc.Sheets, countsFor(detail, true)),
		nameBarChart("Data Points per Column", "No column data available", sc.Columns, countsFor(detail, false)),
		typePieChart(detail),
		sampleTableChart(detail),
		summaryTableChart(sc, detail),
	}
	if h := histogramChart(detail); h != nil {
		charts = append(charts, *h)
	}
	return charts
}

func countsFor(detail *models.Detail, sheets bool) map[string]int {
	if detail == nil {
		return nil
	}
	if sheets {
		return detail.SheetCounts
	}
	return detail.ColumnCounts
}

// gaugeChart shows the total data point count on a dial whose axis tops out
// a fifth above the count, never below one.
func gaugeChart(sc models.Scan) models.Chart {
	return models.Chart{
		Kind:   "gauge",
		Title:  "Data Overview",
		Height: chartHeight,
		Values: []float64{float64(sc.TotalRows)},
		Max:    math.Max(float64(sc.TotalRows)*1.2, 1),
	}
}

// nameBarChart draws one bar per name. With detail available the bar height is
// the data-point count for that name; without it every bar falls back to the
// name count itself, which is all the line scan can offer.
func nameBarChart(title, emptyNote string, names []string, counts map[string]int) models.Chart {
	if len(names) == 0 {
		return emptyChart(title, emptyNote)
	}
	values := make([]float64, len(names))
	for i, name := range names {
		if counts != nil {
			values[i] = float64(counts[name])
		} else {
			values[i] = float64(len(names))
		}
	}
	return models.Chart{
		Kind:   "bar",
		Title:  title,
		Height: chartHeight,
		Labels: names,
		Values: values,
	}
}

func typePieChart(detail *models.Detail) models.Chart {
	const title = "Data Types Distribution"
	if detail == nil || len(detail.TypeCounts) == 0 {
		return emptyChart(title, "No data type information available")
	}
	labels := sortedKeys(detail.TypeCounts)
	values := make([]float64, len(labels))
	for i, t := range labels {
		values[i] = float64(detail.TypeCounts[t])
	}
	return models.Chart{
		Kind:   "pie",
		Title:  title,
		Height: chartHeight,
		Labels: labels,
		Values: values,
	}
}

func sampleTableChart(detail *models.Detail) models.Chart {
	title := fmt.Sprintf("Sample Extracted Data (First %d Rows)", sampleTableRows)
	if detail == nil || len(detail.Sample) == 0 {
		return emptyChart("Sample Data", "No data available")
	}
	rows := make([][]string, 0, sampleTableRows)
	for i, c := range detail.Sample {
		if i >= sampleTableRows {
			break
		}
		rows = append(rows, []string{c.Sheet, c.ExcelRC, c.Value, c.Type, c.CHeader, c.RHeader})
	}
	return models.Chart{
		Kind:    "table",
		Title:   title,
		Height:  tableHeight,
		Headers: []string{"Sheet", "Cell", "Value", "Type", "Column Header", "Row Header"},
		Rows:    rows,
	}
}

func summaryTableChart(sc models.Scan, detail *models.Detail) models.Chart {
	rows := [][]string{
		{"Total Rows", strconv.Itoa(sc.TotalRows)},
		{"Sheets", strconv.Itoa(len(sc.Sheets))},
		{"Columns", strconv.Itoa(len(sc.Columns))},
	}
	if detail != nil {
		rows = append(rows,
			[]string{"Data Types", strconv.Itoa(len(detail.TypeCounts))},
			[]string{"Unique Values", strconv.Itoa(detail.UniqueValues)},
		)
	}
	return models.Chart{
		Kind:    "table",
		Title:   "Data Summary",
		Height:  chartHeight,
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}
}

// histogramChart bins the numeric cell values and attaches descriptive
// statistics. Returns nil when there is nothing numeric to show.
func histogramChart(detail *models.Detail) *models.Chart {
	if detail == nil || len(detail.NumericValues) == 0 {
		return nil
	}

	values := append([]float64(nil), detail.NumericValues...)
	sort.Float64s(values)

	vs := describeValues(values)

	min, max := values[0], values[len(values)-1]
	bins := histogramBins
	if len(values) < bins {
		bins = len(values)
	}

	var labels []string
	var counts []float64
	if min == max {
		labels = []string{formatBinLabel(min, max)}
		counts = []float64{float64(len(values))}
	} else {
		dividers := make([]float64, bins+1)
		floats.Span(dividers, min, math.Nextafter(max, math.Inf(1)))
		counts = gstat.Histogram(nil, dividers, values, nil)
		labels = make([]string, bins)
		for i := 0; i < bins; i++ {
			labels[i] = formatBinLabel(dividers[i], dividers[i+1])
		}
	}

	return &models.Chart{
		Kind:   "histogram",
		Title:  "Numeric Value Distribution",
		Height: chartHeight,
		Labels: labels,
		Values: counts,
		Stats:  vs,
	}
}

// describeValues computes descriptive statistics over a non-empty slice.
func describeValues(values []float64) *models.ValueStats {
	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	stdDev, _ := stats.StandardDeviation(values)
	return &models.ValueStats{
		Count:  len(values),
		Mean:   mean,
		Median: median,
		Min:    min,
		Max:    max,
		StdDev: stdDev,
	}
}

func formatBinLabel(lo, hi float64) string {
	return fmt.Sprintf("%.4g-%.4g", lo, hi)
}

func emptyChart(title, note string) models.Chart {
	return models.Chart{
		Kind:   "empty",
		Title:  title,
		Height: chartHeight,
		Note:   note,
	}
}
