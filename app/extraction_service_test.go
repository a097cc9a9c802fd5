package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetscope/internal/errors"
	"sheetscope/models"
	"sheetscope/ports"
)

// stubExtractor fakes the external tool and records cleanups.
type stubExtractor struct {
	output  *models.ExtractionOutput
	err     error
	cleaned []string
}

func (s *stubExtractor) Extract(_ context.Context, _ string) (*models.ExtractionOutput, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.output, nil
}

func (s *stubExtractor) Cleanup(workDir string) error {
	s.cleaned = append(s.cleaned, workDir)
	return nil
}

type stubChunkStore struct {
	detail  *models.Detail
	openErr error
}

func (s *stubChunkStore) Open(string) (ports.ChunkReader, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	return &stubChunkReader{detail: s.detail}, nil
}

type stubChunkReader struct {
	detail *models.Detail
	closed bool
}

func (s *stubChunkReader) Detail(int) (*models.Detail, error) { return s.detail, nil }
func (s *stubChunkReader) Close() error                       { s.closed = true; return nil }

func happyOutput(rawOutput string) *models.ExtractionOutput {
	return &models.ExtractionOutput{
		WorkDir:    "/scratch/extract-1",
		DBPath:     "/scratch/extract-1/.files/chunks.db",
		StorageURI: "sqlite3:////scratch/extract-1/.files/chunks.db",
		RawOutput:  rawOutput,
	}
}

func TestProcessHappyPath(t *testing.T) {
	extractor := &stubExtractor{output: happyOutput("r1 sheet:Employees c_header:Name\nr2 sheet:Sales c_header:Product")}
	chunks := &stubChunkStore{detail: &models.Detail{
		SheetCounts:  map[string]int{"Employees": 1, "Sales": 1},
		ColumnCounts: map[string]int{"Name": 1, "Product": 1},
		TypeCounts:   map[string]int{"str": 2},
	}}
	svc := NewExtractionService(extractor, chunks, 4)

	ext, err := svc.Process(context.Background(), "/tmp/upload.xlsx", "book.xlsx")
	require.NoError(t, err)

	assert.NotEmpty(t, ext.ID)
	assert.Equal(t, "book.xlsx", ext.FileName)
	assert.Equal(t, 2, ext.Scan.TotalRows)
	assert.Equal(t, []string{"Employees", "Sales"}, ext.Scan.Sheets)
	assert.Contains(t, ext.Summary, "**Employees**: 1 data points")
	assert.NotEmpty(t, ext.Charts)

	got, ok := svc.Get(ext.ID)
	require.True(t, ok)
	assert.Same(t, ext, got)
}

func TestProcessExtractorErrorPassesThrough(t *testing.T) {
	wantErr := errors.ExtractorFailed("bad workbook", fmt.Errorf("exit status 3"))
	svc := NewExtractionService(&stubExtractor{err: wantErr}, &stubChunkStore{}, 4)

	_, err := svc.Process(context.Background(), "/tmp/upload.xlsx", "book.xlsx")
	require.Error(t, err)
	assert.True(t, errors.IsExtractorError(err))
	assert.Contains(t, err.Error(), "bad workbook")
	assert.Empty(t, svc.List())
}

func TestProcessDetailFailureDegradesToScan(t *testing.T) {
	extractor := &stubExtractor{output: happyOutput("r1 sheet:A")}
	chunks := &stubChunkStore{openErr: fmt.Errorf("locked")}
	svc := NewExtractionService(extractor, chunks, 4)

	ext, err := svc.Process(context.Background(), "/tmp/upload.xlsx", "book.xlsx")
	require.NoError(t, err)

	assert.Nil(t, ext.Detail)
	assert.Equal(t, []string{"A"}, ext.Scan.Sheets)
	assert.Contains(t, ext.Summary, "- A")
}

func TestCacheEvictsOldestAndCleansUp(t *testing.T) {
	extractor := &stubExtractor{}
	svc := NewExtractionService(extractor, &stubChunkStore{detail: &models.Detail{}}, 2)

	for i := 0; i < 3; i++ {
		extractor.output = &models.ExtractionOutput{
			WorkDir:   fmt.Sprintf("/scratch/extract-%d", i),
			RawOutput: "row",
		}
		_, err := svc.Process(context.Background(), "/tmp/upload.xlsx", fmt.Sprintf("book-%d.xlsx", i))
		require.NoError(t, err)
	}

	list := svc.List()
	assert.Len(t, list, 2)
	assert.Equal(t, []string{"/scratch/extract-0"}, extractor.cleaned, "oldest extraction's scratch dir removed")
}

func TestShutdownCleansEverything(t *testing.T) {
	extractor := &stubExtractor{output: happyOutput("row")}
	svc := NewExtractionService(extractor, &stubChunkStore{detail: &models.Detail{}}, 4)

	_, err := svc.Process(context.Background(), "/tmp/upload.xlsx", "book.xlsx")
	require.NoError(t, err)

	svc.Shutdown()
	assert.Empty(t, svc.List())
	assert.Len(t, extractor.cleaned, 1)
}
