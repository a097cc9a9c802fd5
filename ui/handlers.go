package ui

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"sheetscope/adapters/excel"
	"sheetscope/internal/errors"
	"sheetscope/models"
)

// allowedExtensions are the spreadsheet types the upload form accepts.
var allowedExtensions = map[string]bool{
	".xlsx": true,
	".xls":  true,
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderTemplate(c, "index.html", gin.H{
		"Title":       "Excel Data Extraction & Visualization",
		"MaxUploadMB": s.cfg.Upload.MaxBytes >> 20,
	})
}

// handleUpload accepts a multipart spreadsheet upload, runs the extraction
// pipeline and responds with the summary plus chart payloads in one shot.
func (s *Server) handleUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.Upload.MaxBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please upload an Excel file."})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Unsupported file type %q: expected .xlsx or .xls", ext),
		})
		return
	}

	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload"})
		return
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload"})
		return
	}

	extraction, err := s.service.Process(c.Request.Context(), tmpPath, fileHeader.Filename)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.IsExtractorError(err) {
			status = http.StatusBadGateway
		}
		log.Printf("[ui] processing %s failed: %v", fileHeader.Filename, err)
		c.JSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
		return
	}

	c.JSON(http.StatusOK, extractionResponse(extraction))
}

func (s *Server) handleListExtractions(c *gin.Context) {
	list := s.service.List()
	items := make([]gin.H, 0, len(list))
	for _, ext := range list {
		items = append(items, gin.H{
			"id":         ext.ID,
			"file_name":  ext.FileName,
			"created_at": ext.CreatedAt,
			"total_rows": ext.Scan.TotalRows,
			"sheets":     len(ext.Scan.Sheets),
			"columns":    len(ext.Scan.Columns),
		})
	}
	c.JSON(http.StatusOK, gin.H{"extractions": items, "count": len(items)})
}

func (s *Server) handleGetExtraction(c *gin.Context) {
	ext, ok := s.service.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "extraction not found"})
		return
	}
	c.JSON(http.StatusOK, extractionResponse(ext))
}

func (s *Server) handleExtractionCharts(c *gin.Context) {
	ext, ok := s.service.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "extraction not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": ext.ID, "charts": ext.Charts})
}

// handleSampleDownload streams a generated demonstration workbook.
func (s *Server) handleSampleDownload(c *gin.Context) {
	name := s.cfg.Sample.FileName
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := excel.StreamSampleWorkbook(c.Writer); err != nil {
		log.Printf("[ui] sample workbook download failed: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

// extractionResponse is the JSON shape the result panes bind to.
func extractionResponse(ext *models.Extraction) gin.H {
	return gin.H{
		"id":               ext.ID,
		"file_name":        ext.FileName,
		"created_at":       ext.CreatedAt,
		"storage_uri":      ext.StorageURI,
		"scan":             ext.Scan,
		"summary_markdown": ext.Summary,
		"summary_html":     string(RenderMarkdown(ext.Summary)),
		"charts":           ext.Charts,
	}
}
