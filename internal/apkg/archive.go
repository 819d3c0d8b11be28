package apkg

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// errNoArchiveEntry marks a lookup of an entry name the archive does not
// contain, as opposed to an unreadable archive.
var errNoArchiveEntry = errors.New("archive entry not found")

// writeArchive zips the named files (flat, by base name) into target. The
// zip is written to a temporary file next to target and renamed over it only
// once complete, so a failed pack neither leaves a partial .apkg behind nor
// clobbers an archive already at target — repacking an existing package must
// not destroy it on a write error. The temp file shares target's directory
// because a rename across filesystems would fail.
func writeArchive(target string, files []string) error {
	out, err := os.CreateTemp(filepath.Dir(target), ".apkg-pack-*")
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	tmpPath := out.Name()

	writer := zip.NewWriter(out)
	for _, file := range files {
		if err := addArchiveFile(writer, file); err != nil {
			writer.Close()
			out.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("failed to add %s to archive: %w", filepath.Base(file), err)
		}
	}
	if err := writer.Close(); err != nil {
		out.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close archive: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace archive: %w", err)
	}
	return nil
}

func addArchiveFile(writer *zip.Writer, path string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	entry, err := writer.Create(filepath.Base(path))
	if err != nil {
		return err
	}
	_, err = io.Copy(entry, in)
	return err
}

// extractArchive extracts every entry of the archive into destDir. Entry
// names are flattened to their base name; an .apkg has a flat layout, so a
// path-carrying name is treated as malformed.
func extractArchive(archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if file.FileInfo().IsDir() || file.Name != filepath.Base(file.Name) {
			return fmt.Errorf("malformed archive entry: %q", file.Name)
		}
		if err := extractArchiveFile(file, filepath.Join(destDir, file.Name)); err != nil {
			return fmt.Errorf("failed to extract %s: %w", file.Name, err)
		}
	}
	return nil
}

// extractArchiveEntry extracts the single named entry into destDir and
// returns the extracted path.
func extractArchiveEntry(archivePath, name, destDir string) (string, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", fmt.Errorf("failed to open archive: %w", err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		destPath := filepath.Join(destDir, name)
		if err := extractArchiveFile(file, destPath); err != nil {
			return "", fmt.Errorf("failed to extract %s: %w", name, err)
		}
		return destPath, nil
	}
	return "", fmt.Errorf("%w: %q", errNoArchiveEntry, name)
}

func extractArchiveFile(file *zip.File, destPath string) error {
	in, err := file.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.Mode())
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

// copyFile copies src to dst, creating or truncating dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
