package app

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"sheetscope/internal"
	"sheetscope/internal/extract"
	"sheetscope/models"
	"sheetscope/ports"
)

// sampleLimit caps how many raw chunk rows are kept per extraction for the
// sample table chart.
const sampleLimit = 10

// ExtractionService orchestrates one upload end to end: run the external
// tool, scan its output, read chunk detail from the produced database, format
// the summary and build the chart payloads. Results are cached in memory.
type ExtractionService struct {
	extractor ports.Extractor
	chunks    ports.ChunkStore
	maxCached int
	logger    *internal.Logger

	mu    sync.RWMutex
	cache map[string]*models.Extraction
}

// NewExtractionService creates an extraction service.
func NewExtractionService(extractor ports.Extractor, chunks ports.ChunkStore, maxCached int) *ExtractionService {
	if maxCached < 1 {
		maxCached = 1
	}
	return &ExtractionService{
		extractor: extractor,
		chunks:    chunks,
		maxCached: maxCached,
		logger:    internal.NewDefaultLogger(),
		cache:     make(map[string]*models.Extraction),
	}
}

// Process runs the full pipeline for an uploaded spreadsheet already written
// to filePath. fileName is the original upload name, kept for display.
func (s *ExtractionService) Process(ctx context.Context, filePath, fileName string) (*models.Extraction, error) {
	out, err := s.extractor.Extract(ctx, filePath)
	if err != nil {
		return nil, err
	}

	scan := extract.ScanOutput(out.RawOutput)
	detail := s.readDetail(out.DBPath)

	ext := &models.Extraction{
		ID:         uuid.New().String(),
		FileName:   fileName,
		CreatedAt:  time.Now().UTC(),
		StorageURI: out.StorageURI,
		WorkDir:    out.WorkDir,
		Scan:       scan,
		Detail:     detail,
		Summary:    extract.FormatSummary(scan, detail),
		Charts:     extract.BuildCharts(scan, detail),
	}

	s.store(ext)
	s.logger.Info("[extraction] %s processed: %d rows, %d sheets, %d columns",
		ext.ID, scan.TotalRows, len(scan.Sheets), len(scan.Columns))
	return ext, nil
}

// readDetail reads the produced database directly. Failure here degrades to
// the scanner-only result rather than failing the extraction.
func (s *ExtractionService) readDetail(dbPath string) *models.Detail {
	if s.chunks == nil || dbPath == "" {
		return nil
	}
	reader, err := s.chunks.Open(dbPath)
	if err != nil {
		s.logger.Warn("[extraction] chunk database unavailable, using scan only: %v", err)
		return nil
	}
	defer reader.Close()

	detail, err := reader.Detail(sampleLimit)
	if err != nil {
		s.logger.Warn("[extraction] chunk detail read failed, using scan only: %v", err)
		return nil
	}
	return detail
}

// Get returns a cached extraction by ID.
func (s *ExtractionService) Get(id string) (*models.Extraction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ext, ok := s.cache[id]
	return ext, ok
}

// List returns all cached extractions, newest first.
func (s *ExtractionService) List() []*models.Extraction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*models.Extraction, 0, len(s.cache))
	for _, ext := range s.cache {
		list = append(list, ext)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}

// store caches an extraction, evicting the oldest one (and its scratch dir)
// once the cap is reached.
func (s *ExtractionService) store(ext *models.Extraction) {
	s.mu.Lock()
	var evicted *models.Extraction
	if len(s.cache) >= s.maxCached {
		evicted = s.oldestLocked()
		if evicted != nil {
			delete(s.cache, evicted.ID)
		}
	}
	s.cache[ext.ID] = ext
	s.mu.Unlock()

	if evicted != nil {
		if err := s.extractor.Cleanup(evicted.WorkDir); err != nil {
			s.logger.Warn("[extraction] cleanup of %s failed: %v", evicted.ID, err)
		}
	}
}

func (s *ExtractionService) oldestLocked() *models.Extraction {
	var oldest *models.Extraction
	for _, ext := range s.cache {
		if oldest == nil || ext.CreatedAt.Before(oldest.CreatedAt) {
			oldest = ext
		}
	}
	return oldest
}

// Shutdown removes the scratch directories of everything still cached.
func (s *ExtractionService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ext := range s.cache {
		if err := s.extractor.Cleanup(ext.WorkDir); err != nil {
			s.logger.Warn("[extraction] cleanup of %s failed: %v", id, err)
		}
		delete(s.cache, id)
	}
}
