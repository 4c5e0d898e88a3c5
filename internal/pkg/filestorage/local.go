package filestorage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yigit/javamaster/internal/pkg/logger"
)

// PublicPrefix is the route the storage directory is served under
const PublicPrefix = "/uploads"

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // root directory on disk
	baseURL  string // optional absolute URL prefix, e.g. https://javamaster.in/uploads
}

// NewLocalStorage creates a new LocalStorage instance.
// basePath is the required directory path on the server.
// baseURL is optional; if provided, it will be prepended to returned file paths.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// SaveBytes writes data to basePath/subPath/name, replacing an existing file
func (ls *LocalStorage) SaveBytes(subPath, name string, data []byte) (string, error) {
	name = filepath.Base(name)
	if name == "" || name == "." || name == "/" || name == ".." {
		return "", fmt.Errorf("invalid file name: %q", name)
	}
	subPath = filepath.Clean("/" + subPath)[1:]

	dir := filepath.Join(ls.basePath, subPath)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dir).Msg("Failed to create subdirectory")
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	// write to a temp file first so readers never see a partial receipt
	dst := filepath.Join(dir, name)
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		logger.Error().Err(err).Str("path", tmp).Msg("Failed to write file")
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to move file into place: %w", err)
	}

	url := ls.URL(subPath, name)
	logger.Info().Str("path", dst).Str("url", url).Msg("File saved successfully")
	return url, nil
}

// URL returns the public URL a file saved under subPath/name is served at
func (ls *LocalStorage) URL(subPath, name string) string {
	subPath = filepath.Clean("/" + subPath)[1:]
	rel := filepath.Base(name)
	if subPath != "" {
		rel = filepath.ToSlash(filepath.Join(subPath, name))
	}
	if ls.baseURL != "" {
		return ls.baseURL + "/" + rel
	}
	return PublicPrefix + "/" + rel
}

// Exists reports whether the file behind fileURL is present on disk
func (ls *LocalStorage) Exists(fileURL string) bool {
	path := ls.GetFullPath(fileURL)
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// DeleteFile removes a stored file. Missing files are not an error.
func (ls *LocalStorage) DeleteFile(fileURL string) error {
	physicalPath := ls.GetFullPath(fileURL)
	if physicalPath == "" {
		return fmt.Errorf("invalid file path: %s", fileURL)
	}

	if err := os.Remove(physicalPath); err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// GetFullPath maps a URL returned by SaveBytes back to its path on disk
func (ls *LocalStorage) GetFullPath(fileURL string) string {
	rel := fileURL
	switch {
	case ls.baseURL != "" && strings.HasPrefix(fileURL, ls.baseURL+"/"):
		rel = strings.TrimPrefix(fileURL, ls.baseURL+"/")
	case strings.HasPrefix(fileURL, PublicPrefix+"/"):
		rel = strings.TrimPrefix(fileURL, PublicPrefix+"/")
	}

	rel = filepath.Clean("/" + filepath.FromSlash(rel))[1:]
	if rel == "" || rel == "." {
		return ""
	}
	return filepath.Join(ls.basePath, rel)
}
