// Package sqlite reads the database the extraction tool produced. The tool
// writes a single excelparse table, one row per extracted cell; this package
// only ever reads it.
package sqlite

import (
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"sheetscope/internal/errors"
	"sheetscope/models"
	"sheetscope/ports"
)

const chunkTable = "excelparse"

// ChunkStore opens produced databases read-only.
type ChunkStore struct{}

// NewChunkStore returns a ChunkStore.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{}
}

// Open connects to a produced database file.
func (s *ChunkStore) Open(dbPath string) (ports.ChunkReader, error) {
	db, err := sqlx.Connect("sqlite3", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open chunk database")
	}
	return &chunkRepository{db: db}, nil
}

type chunkRepository struct {
	db *sqlx.DB
}

// Detail reads the excelparse table in one pass and aggregates it the same
// way the summary and charts consume it: counts per sheet, column header and
// type, a unique value tally, numeric values and a capped row sample.
func (r *chunkRepository) Detail(sampleLimit int) (*models.Detail, error) {
	var chunks []models.Chunk
	if err := r.db.Select(&chunks, `SELECT id, "row", "column", value, type, c_header, r_header, excel_RC, name, sheet FROM `+chunkTable+` ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "failed to read "+chunkTable+" table")
	}

	detail := &models.Detail{
		SheetCounts:  make(map[string]int),
		ColumnCounts: make(map[string]int),
		TypeCounts:   make(map[string]int),
		Sample:       []models.Chunk{},
	}

	uniqueValues := make(map[string]bool)
	for _, c := range chunks {
		if c.Sheet != "" {
			detail.SheetCounts[c.Sheet]++
		}
		if c.CHeader != "" {
			detail.ColumnCounts[c.CHeader]++
		}
		if c.Type != "" {
			detail.TypeCounts[c.Type]++
		}
		uniqueValues[c.Value] = true

		if v, ok := numericValue(c.Value); ok {
			detail.NumericValues = append(detail.NumericValues, v)
		}
		if len(detail.Sample) < sampleLimit {
			detail.Sample = append(detail.Sample, c)
		}
	}
	detail.UniqueValues = len(uniqueValues)

	return detail, nil
}

func (r *chunkRepository) Close() error {
	return r.db.Close()
}

// numericValue parses a cell value as a number, tolerating surrounding
// whitespace and thousands separators.
func numericValue(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
