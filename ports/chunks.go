package ports

import "sheetscope/models"

// ChunkReader reads the excelparse table of one produced database.
type ChunkReader interface {
	// Detail aggregates the table into per-sheet, per-column and per-type
	// counts plus a capped sample of raw rows.
	Detail(sampleLimit int) (*models.Detail, error)
	Close() error
}

// ChunkStore opens the relational storage the extraction tool produced.
type ChunkStore interface {
	Open(dbPath string) (ChunkReader, error)
}
