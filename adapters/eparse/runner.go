// Package eparse shells out to the external extraction tool. The tool is an
// opaque collaborator: given a spreadsheet it populates a SQLite database,
// and given that database it prints line-oriented text tagged with markers
// like "sheet:" and "c_header:". Everything this package knows about the
// tool is the argv shape of those two invocations.
package eparse

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"golang.org/x/sync/semaphore"

	"sheetscope/internal/config"
	"sheetscope/internal/errors"
	"sheetscope/models"
)

const (
	// filesSubdir is where the tool is pointed to write its databases,
	// matching the layout the tool expects.
	filesSubdir = ".files"
	dbFileName  = "chunks.db"
)

// Runner invokes the extraction tool with bounded concurrency. Each Extract
// call gets its own scratch directory under baseDir.
type Runner struct {
	binary  string
	baseDir string
	timeout time.Duration
	sem     *semaphore.Weighted
}

// NewRunner builds a Runner from the extractor configuration.
func NewRunner(cfg config.ExtractorConfig) *Runner {
	return &Runner{
		binary:  cfg.Binary,
		baseDir: cfg.WorkDir,
		timeout: cfg.Timeout,
		sem:     semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
	}
}

// Extract runs the full parse + query round trip for one spreadsheet file.
// On success the returned output names the scratch dir, the produced
// database and the raw query text. The scratch dir is left in place so the
// caller can read the database directly; it owns calling Cleanup later.
func (r *Runner) Extract(ctx context.Context, filePath string) (*models.ExtractionOutput, error) {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return nil, errors.Wrap(err, "waiting for extraction slot")
	}
	defer r.sem.Release(1)

	workDir, err := os.MkdirTemp(r.baseDir, "extract-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create extraction work dir")
	}

	filesDir := filepath.Join(workDir, filesSubdir)
	if err := os.MkdirAll(filesDir, 0o755); err != nil {
		r.removeWorkDir(workDir)
		return nil, errors.Wrap(err, "failed to create files dir")
	}

	uri := StorageURI(filepath.Join(filesDir, dbFileName))
	log.Printf("[eparse] parsing %s into %s", filepath.Base(filePath), uri)

	if _, err := r.run(ctx, ParseArgs(filePath, uri)); err != nil {
		r.removeWorkDir(workDir)
		return nil, err
	}

	dbFiles, err := filepath.Glob(filepath.Join(filesDir, "*.db"))
	if err != nil {
		r.removeWorkDir(workDir)
		return nil, errors.Wrap(err, "failed to list database files")
	}
	if len(dbFiles) == 0 {
		r.removeWorkDir(workDir)
		return nil, errors.InternalError("no database files created")
	}
	dbPath := dbFiles[0]

	queryURI := StorageURI(dbPath)
	out, err := r.run(ctx, QueryArgs(queryURI))
	if err != nil {
		r.removeWorkDir(workDir)
		return nil, err
	}

	log.Printf("[eparse] query returned %d bytes for %s", len(out), filepath.Base(filePath))
	return &models.ExtractionOutput{
		WorkDir:    workDir,
		DBPath:     dbPath,
		StorageURI: queryURI,
		RawOutput:  out,
	}, nil
}

// Cleanup removes an extraction's scratch directory.
func (r *Runner) Cleanup(workDir string) error {
	if workDir == "" {
		return nil
	}
	return os.RemoveAll(workDir)
}

// run executes one tool invocation, classifying a non-zero exit as an
// extractor error carrying the captured stderr.
func (r *Runner) run(ctx context.Context, args []string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", errors.Wrapf(ctx.Err(), "extraction tool timed out after %s", r.timeout)
		}
		if _, ok := err.(*exec.ExitError); ok {
			return "", errors.ExtractorFailed(stderr.String(), err)
		}
		return "", errors.Wrapf(err, "failed to run %s", r.binary)
	}
	return stdout.String(), nil
}

func (r *Runner) removeWorkDir(workDir string) {
	if err := os.RemoveAll(workDir); err != nil {
		log.Printf("[eparse] failed to remove work dir %s: %v", workDir, err)
	}
}

// StorageURI formats a database path as the sqlite URI the tool expects.
func StorageURI(dbPath string) string {
	return fmt.Sprintf("sqlite3:///%s", dbPath)
}

// ParseArgs is the argv for parsing a spreadsheet into relational storage.
func ParseArgs(filePath, outputURI string) []string {
	return []string{"-f", filePath, "-o", outputURI, "parse", "-z"}
}

// QueryArgs is the argv for querying the storage back to stdout text.
func QueryArgs(inputURI string) []string {
	return []string{"-i", inputURI, "-o", "stdout:///", "query"}
}
