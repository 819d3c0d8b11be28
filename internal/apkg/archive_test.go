package apkg

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteArchive(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "payload.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("payload"), 0644))
	target := filepath.Join(dir, "out.apkg")

	require.NoError(t, writeArchive(target, []string{filePath}))

	reader, err := zip.OpenReader(target)
	require.NoError(t, err)
	defer reader.Close()
	require.Len(t, reader.File, 1)
	assert.Equal(t, "payload.txt", reader.File[0].Name)
}

func TestWriteArchive_FailureKeepsExistingTarget(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "payload.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("payload"), 0644))
	target := filepath.Join(dir, "existing.apkg")
	require.NoError(t, writeArchive(target, []string{filePath}))

	// A failed repack must not truncate or delete the archive already at
	// target — on update it is the user's only copy.
	missing := filepath.Join(dir, "missing.txt")
	err := writeArchive(target, []string{missing})
	require.Error(t, err)

	reader, err := zip.OpenReader(target)
	require.NoError(t, err)
	defer reader.Close()
	require.Len(t, reader.File, 1)
	assert.Equal(t, "payload.txt", reader.File[0].Name)
}

func TestWriteArchive_FailureLeavesNoFilesBehind(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "fresh.apkg")

	err := writeArchive(target, []string{filepath.Join(dir, "missing.txt")})
	require.Error(t, err)

	// Neither a partial target nor a stray temp file
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExtractArchiveEntry_MissingEntry(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "payload.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("payload"), 0644))
	archivePath := filepath.Join(dir, "archive.apkg")
	require.NoError(t, writeArchive(archivePath, []string{filePath}))

	_, err := extractArchiveEntry(archivePath, "absent", t.TempDir())
	assert.ErrorIs(t, err, errNoArchiveEntry)
}

func TestCountMediaEntries(t *testing.T) {
	t.Run("archive without manifest counts zero", func(t *testing.T) {
		dir := t.TempDir()
		filePath := filepath.Join(dir, "payload.txt")
		require.NoError(t, os.WriteFile(filePath, []byte("payload"), 0644))
		archivePath := filepath.Join(dir, "archive.apkg")
		require.NoError(t, writeArchive(archivePath, []string{filePath}))

		count, err := countMediaEntries(archivePath)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("unreadable archive surfaces the error", func(t *testing.T) {
		notZip := filepath.Join(t.TempDir(), "corrupt.apkg")
		require.NoError(t, os.WriteFile(notZip, []byte("not a zip"), 0644))

		_, err := countMediaEntries(notZip)
		assert.Error(t, err)
	})
}
