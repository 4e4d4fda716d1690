// Package settings persists the folders the user picked last, so the next
// session starts where the previous one left off.
//
// The file holds one key:value pair per line. Only the first colon splits the
// key from the value, so values may contain colons (drive letters, URLs).
package settings

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// DefaultFilename is the settings file name used when none is configured.
const DefaultFilename = "last_paths.txt"

// Known keys.
const (
	KeyOutputPath    = "output_path"     // Folder the last merge was written to.
	KeyInitialPDFDir = "initial_pdf_dir" // Folder the last input files were picked from.
)

// ErrInvalidEntry is returned by Save for entries that cannot round-trip.
var ErrInvalidEntry = errors.New("invalid settings entry")

// LastUsedPaths maps setting keys to folder paths.
type LastUsedPaths map[string]string

// Get returns the value for key, or fallback when it is unset or empty.
func (p LastUsedPaths) Get(key, fallback string) string {
	if v, ok := p[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Set records value under key.
func (p LastUsedPaths) Set(key, value string) {
	p[key] = value
}

// Load reads the settings file at path. A missing file yields an empty
// mapping and no error.
func Load(path string, logger *zap.Logger) (LastUsedPaths, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug("Settings file does not exist, starting empty", zap.String("filePath", path))
			return LastUsedPaths{}, nil
		}
		logger.Error("Failed to open settings file", zap.String("filePath", path), zap.Error(err))
		return nil, fmt.Errorf("failed to open settings: %w", err)
	}
	defer f.Close()

	paths, err := Parse(f, logger.With(zap.String("filePath", path)))
	if err != nil {
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}
	logger.Debug("Loaded settings", zap.String("filePath", path), zap.Int("entries", len(paths)))
	return paths, nil
}

// Parse reads key:value lines from r. Blank lines are skipped. Lines without
// a colon are skipped and logged.
func Parse(r io.Reader, logger *zap.Logger) (LastUsedPaths, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	paths := LastUsedPaths{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			logger.Warn("Skipping malformed settings line", zap.Int("lineNo", lineNo), zap.String("line", line))
			continue
		}
		paths[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}

// Save writes paths to path, replacing the previous file atomically.
// Keys are written in sorted order.
func Save(path string, paths LastUsedPaths, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	keys := make([]string, 0, len(paths))
	for k := range paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		v := paths[k]
		if k == "" || strings.ContainsAny(k, ":\r\n") || strings.ContainsAny(v, "\r\n") {
			return fmt.Errorf("%w: %q", ErrInvalidEntry, k)
		}
		fmt.Fprintf(&b, "%s:%s\n", k, v)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		logger.Error("Failed to create temporary settings file", zap.String("filePath", path), zap.Error(err))
		return fmt.Errorf("failed to save settings: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(b.String()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		logger.Error("Failed to replace settings file", zap.String("filePath", path), zap.Error(err))
		return fmt.Errorf("failed to save settings: %w", err)
	}

	logger.Debug("Saved settings", zap.String("filePath", path), zap.Int("entries", len(keys)))
	return nil
}
