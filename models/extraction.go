package models

import "time"

// Scan holds the counts pulled out of the extraction tool's query output:
// non-empty line total plus the sheet and column-header names seen, each
// deduplicated in first-occurrence order.
type Scan struct {
	TotalRows int      `json:"total_rows"`
	Sheets    []string `json:"sheets"`
	Columns   []string `json:"columns"`
}

// Chunk is one row of the excelparse table the extraction tool writes.
type Chunk struct {
	ID      int64  `db:"id" json:"id"`
	Row     int    `db:"row" json:"row"`
	Column  int    `db:"column" json:"column"`
	Value   string `db:"value" json:"value"`
	Type    string `db:"type" json:"type"`
	CHeader string `db:"c_header" json:"c_header"`
	RHeader string `db:"r_header" json:"r_header"`
	ExcelRC string `db:"excel_RC" json:"excel_rc"`
	Name    string `db:"name" json:"name"`
	Sheet   string `db:"sheet" json:"sheet"`
}

// Detail is the richer breakdown read straight from the produced database,
// when it is available. All maps are keyed by the raw names from the tool.
type Detail struct {
	SheetCounts   map[string]int `json:"sheet_counts"`
	ColumnCounts  map[string]int `json:"column_counts"`
	TypeCounts    map[string]int `json:"type_counts"`
	UniqueValues  int            `json:"unique_values"`
	Sample        []Chunk        `json:"sample"`
	NumericValues []float64      `json:"-"`
}

// ValueStats summarizes the numeric cell values found in a workbook.
type ValueStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
}

// Chart is a renderer-agnostic chart payload for the browser UI.
// Kind is one of "gauge", "bar", "pie", "table", "histogram" or "empty".
type Chart struct {
	Kind    string      `json:"kind"`
	Title   string      `json:"title"`
	Height  int         `json:"height"`
	Labels  []string    `json:"labels,omitempty"`
	Values  []float64   `json:"values,omitempty"`
	Max     float64     `json:"max,omitempty"`
	Headers []string    `json:"headers,omitempty"`
	Rows    [][]string  `json:"rows,omitempty"`
	Note    string      `json:"note,omitempty"`
	Stats   *ValueStats `json:"stats,omitempty"`
}

// ExtractionOutput is what one end-to-end run of the external tool produced.
type ExtractionOutput struct {
	WorkDir    string `json:"work_dir"`
	DBPath     string `json:"db_path"`
	StorageURI string `json:"storage_uri"`
	RawOutput  string `json:"-"`
}

// Extraction is a fully processed upload, cached in memory by ID.
type Extraction struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	CreatedAt  time.Time `json:"created_at"`
	StorageURI string    `json:"storage_uri"`
	WorkDir    string    `json:"-"`
	Scan       Scan      `json:"scan"`
	Detail     *Detail   `json:"detail,omitempty"`
	Summary    string    `json:"summary_markdown"`
	Charts     []Chart   `json:"charts"`
}
