package ports

import (
	"context"

	"sheetscope/models"
)

// Extractor runs the external extraction tool against an uploaded spreadsheet
// and returns where the relational output landed plus the raw query text.
type Extractor interface {
	Extract(ctx context.Context, filePath string) (*models.ExtractionOutput, error)
	// Cleanup removes the scratch directory an extraction left behind.
	Cleanup(workDir string) error
}
