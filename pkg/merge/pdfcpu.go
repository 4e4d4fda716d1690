package merge

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"
)

// OutputMode is the permission of a newly created merged document.
const OutputMode os.FileMode = 0o644

// PDFCPUOptions tunes the pdfcpu backend.
type PDFCPUOptions struct {
	Relaxed     bool // Use relaxed validation for slightly broken inputs.
	DividerPage bool // Insert a blank page between inputs.
}

// PDFCPUBackend merges documents with pdfcpu.
type PDFCPUBackend struct {
	opts   PDFCPUOptions
	logger *zap.Logger
}

// NewPDFCPUBackend creates a pdfcpu backed merger.
func NewPDFCPUBackend(opts PDFCPUOptions, logger *zap.Logger) *PDFCPUBackend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PDFCPUBackend{opts: opts, logger: logger}
}

func (b *PDFCPUBackend) configuration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	if b.opts.Relaxed {
		conf.ValidationMode = model.ValidationRelaxed
	}
	return conf
}

// Merge validates every input, merges them into a temporary file next to
// outputPath and renames it into place. The temporary file is removed on
// failure, so outputPath is either a complete document or untouched.
func (b *PDFCPUBackend) Merge(inputs []string, outputPath string) error {
	conf := b.configuration()

	for _, in := range inputs {
		if err := pdfapi.ValidateFile(in, conf); err != nil {
			b.logger.Debug("Input failed validation", zap.String("file", in), zap.Error(err))
			return &BackendError{File: in, Err: err}
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(outputPath), "."+filepath.Base(outputPath)+".*.tmp")
	if err != nil {
		return &BackendError{File: outputPath, Err: fmt.Errorf("failed to create temporary output: %w", err)}
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		b.removeTemp(tmpPath)
		return &BackendError{File: outputPath, Err: err}
	}
	b.logger.Debug("Merging into temporary file", zap.String("tmpPath", tmpPath), zap.Strings("inputs", inputs))

	if err := pdfapi.MergeCreateFile(inputs, tmpPath, b.opts.DividerPage, conf); err != nil {
		b.removeTemp(tmpPath)
		return &BackendError{Err: err}
	}

	if err := os.Chmod(tmpPath, outputMode(outputPath)); err != nil {
		b.removeTemp(tmpPath)
		return &BackendError{File: outputPath, Err: fmt.Errorf("failed to set output permissions: %w", err)}
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		b.removeTemp(tmpPath)
		return &BackendError{File: outputPath, Err: fmt.Errorf("failed to move merged file into place: %w", err)}
	}
	return nil
}

// outputMode keeps the permissions of a document being replaced.
func outputMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		return info.Mode().Perm()
	}
	return OutputMode
}

func (b *PDFCPUBackend) removeTemp(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		b.logger.Warn("Failed to remove temporary output", zap.String("tmpPath", path), zap.Error(err))
	}
}
