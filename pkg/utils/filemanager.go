// =============================================================================
// Bill Generator - File Manager Utility
// =============================================================================
//
// This module provides the file primitives the stores are built on:
//   - Directory management
//   - Whole-file atomic replacement (temp file + fsync + rename)
//   - Monthly report file naming
//
// WRITE STRATEGY:
//   Every store rewrites its whole file on each change. The new content is
//   written to a uniquely named temp file in the same directory, synced, and
//   renamed over the target, so a crash mid-write leaves either the old or the
//   new file, never a torn one.
//
// =============================================================================

package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager owns the directories the application writes into.
type FileManager struct {
	// DataDir holds the ledger, counter and transaction files.
	DataDir string

	// ReportsDir holds the monthly export workbooks.
	ReportsDir string
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(dataDir, reportsDir string) *FileManager {
	return &FileManager{
		DataDir:    dataDir,
		ReportsDir: reportsDir,
	}
}

// EnsureDirectories creates all required directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range []string{fm.DataDir, fm.ReportsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// MonthlyReportPath returns the workbook path for the month containing now,
// e.g. monthly_reports/April_2025.xlsx.
func (fm *FileManager) MonthlyReportPath(now time.Time) string {
	return filepath.Join(fm.ReportsDir, MonthlyReportName(now))
}

// MonthlyReportName returns "<Month>_<Year>.xlsx" for now.
func MonthlyReportName(now time.Time) string {
	return now.Format("January_2006") + ".xlsx"
}

// =============================================================================
// ATOMIC WRITES
// =============================================================================

// WriteFileAtomic replaces path with data. The directory of path must exist.
//
// RETURNS:
//   - An error if the temp file cannot be created, written, synced, or
//     renamed. The original file is untouched in that case.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String()))

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, perm)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// ReadFileIfExists returns the content of path, or (nil, false, nil) when the
// file does not exist.
func ReadFileIfExists(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}
