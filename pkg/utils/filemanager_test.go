package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomicReplacesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bills.json")

	require.NoError(t, WriteFileAtomic(path, []byte("first"), 0644))
	require.NoError(t, WriteFileAtomic(path, []byte("second"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestWriteFileAtomicMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "bills.json")

	err := WriteFileAtomic(path, []byte("x"), 0644)
	require.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestReadFileIfExists(t *testing.T) {
	dir := t.TempDir()

	data, ok, err := ReadFileIfExists(filepath.Join(dir, "nope.json"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)

	path := filepath.Join(dir, "yes.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))
	data, ok, err = ReadFileIfExists(path)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", string(data))
}

func TestFileManagerDirectoriesAndReportPath(t *testing.T) {
	dir := t.TempDir()
	fm := NewFileManager(filepath.Join(dir, "data"), filepath.Join(dir, "reports"))

	require.NoError(t, fm.EnsureDirectories())
	assert.DirExists(t, fm.DataDir)
	assert.DirExists(t, fm.ReportsDir)

	now := time.Date(2025, time.April, 9, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, filepath.Join(dir, "reports", "April_2025.xlsx"), fm.MonthlyReportPath(now))
}
