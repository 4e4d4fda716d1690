// Package collect turns command-line arguments into an ordered list of input
// documents.
package collect

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// PDFExtension is the extension picked up when a directory is expanded.
const PDFExtension = ".pdf"

// Options controls directory expansion.
type Options struct {
	Recursive bool      // Descend into subdirectories of directory arguments.
	Exclude   *Excluder // Paths relative to an expanded directory to leave out.
}

// Paths expands args in order. File arguments are kept as given, even when
// they do not exist or are not PDFs. Directory arguments are replaced by the
// PDFs they contain, sorted by path.
func Paths(args []string, opts Options, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("Starting input collection", zap.Int("argCount", len(args)))

	var collected []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			collected = append(collected, arg)
			continue
		}

		logger.Debug("Expanding directory", zap.String("dir", arg))
		found, err := PDFsInDir(arg, opts, logger)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			logger.Warn("Directory contains no PDF files", zap.String("dir", arg))
		}
		collected = append(collected, found...)
	}

	logger.Debug("Completed input collection", zap.Int("files", len(collected)))
	return collected, nil
}

// PDFsInDir lists the PDFs under dir, sorted by path.
func PDFsInDir(dir string, opts Options, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var found []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
			return nil
		}
		if path != dir {
			rel, _ := filepath.Rel(dir, path)
			if opts.Exclude.Matches(rel) {
				logger.Debug("Skipping excluded path", zap.String("path", path))
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}
		if d.IsDir() {
			if path != dir && !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsPDFName(path) {
			logger.Debug("Skipping non-PDF file", zap.String("filePath", path))
			return nil
		}
		found = append(found, path)
		return nil
	})
	if err != nil {
		logger.Error("Error during directory traversal", zap.String("dir", dir), zap.Error(err))
		return nil, err
	}

	sort.Strings(found)
	return found, nil
}

// IsPDFName reports whether path carries a .pdf extension, ignoring case.
func IsPDFName(path string) bool {
	return strings.EqualFold(filepath.Ext(path), PDFExtension)
}
