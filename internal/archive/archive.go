// Package archive unpacks .mcworld and .mctemplate bundles (both ZIP files)
// into a local cache directory.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"mclang-tool/internal/textutil"

	"github.com/rs/zerolog/log"
)

// Extractor unpacks world archives into a cache directory and reuses
// previous extractions.
type Extractor struct {
	cacheDir string
}

// NewExtractor creates an Extractor rooted at cacheDir, creating the
// directory if needed.
func NewExtractor(cacheDir string) (*Extractor, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &Extractor{cacheDir: cacheDir}, nil
}

// CacheDir returns the extraction root.
func (e *Extractor) CacheDir() string {
	return e.cacheDir
}

// Extract unpacks the archive into the cache directory and returns the
// extraction path. A previous extraction of the same archive is reused.
func (e *Extractor) Extract(archivePath string) (string, error) {
	if _, err := os.Stat(archivePath); err != nil {
		return "", fmt.Errorf("archive not found: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(archivePath), filepath.Ext(archivePath))
	destDir := filepath.Join(e.cacheDir, textutil.SanitizeFilename(stem))

	if _, err := os.Stat(destDir); err == nil {
		log.Info().Str("dir", destDir).Msg("Using cached extraction")
		return destDir, nil
	}

	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", fmt.Errorf("open archive %s: %w", archivePath, err)
	}
	defer r.Close()

	log.Info().Str("archive", archivePath).Msg("Extracting archive")

	for _, f := range r.File {
		if err := e.extractFile(f, destDir); err != nil {
			os.RemoveAll(destDir)
			return "", err
		}
	}

	log.Info().Str("dir", destDir).Int("files", len(r.File)).Msg("Extraction complete")
	return destDir, nil
}

func (e *Extractor) extractFile(f *zip.File, destDir string) error {
	// Reject paths escaping the destination (zip slip).
	destPath := filepath.Join(destDir, filepath.Clean(f.Name))
	if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("archive entry escapes destination: %s", f.Name)
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(destPath, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("create directory for %s: %w", f.Name, err)
	}

	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("open archive entry %s: %w", f.Name, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create %s: %w", destPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("write %s: %w", destPath, err)
	}
	return nil
}

// ClearCache removes every cached extraction.
func (e *Extractor) ClearCache() error {
	if err := os.RemoveAll(e.cacheDir); err != nil {
		return fmt.Errorf("remove cache directory: %w", err)
	}
	return os.MkdirAll(e.cacheDir, 0755)
}
