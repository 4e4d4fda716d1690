// Package merge validates merge requests and hands them to a PDF backend.
package merge

import (
	"errors"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Backend concatenates whole input documents, in order, into outputPath.
type Backend interface {
	Merge(inputs []string, outputPath string) error
}

// Snapshotter exposes an ordered copy of queued input paths.
type Snapshotter interface {
	Snapshot() []string
}

// Request is one merge attempt. Files must already be a detached copy.
type Request struct {
	Files        []string // Input paths in merge order.
	OutputFolder string   // Destination directory.
	OutputName   string   // Destination file name, extension included.
}

// NewRequest snapshots list so later edits cannot alter the request.
func NewRequest(list Snapshotter, folder, name string) Request {
	return Request{
		Files:        list.Snapshot(),
		OutputFolder: folder,
		OutputName:   name,
	}
}

// Result describes a successful merge.
type Result struct {
	OutputPath string        // Full path of the written document.
	InputCount int           // Number of documents concatenated.
	Elapsed    time.Duration // Time spent in the backend.
}

// Orchestrator checks preconditions and drives a Backend.
type Orchestrator struct {
	backend Backend
	logger  *zap.Logger
}

// NewOrchestrator creates an Orchestrator. A nil logger disables logging.
func NewOrchestrator(backend Backend, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		backend: backend,
		logger:  logger,
	}
}

// Validate reports the first failed precondition of req, or nil.
func Validate(req Request) error {
	if req.OutputFolder == "" {
		return ErrMissingOutputFolder
	}
	if req.OutputName == "" {
		return ErrMissingOutputName
	}
	if len(req.Files) == 0 {
		return ErrNoInputFiles
	}
	return nil
}

// Merge validates req and invokes the backend once with the inputs in order.
// Precondition failures return before the backend or filesystem is touched.
// Backend failures are returned as *BackendError.
func (o *Orchestrator) Merge(req Request) (Result, error) {
	if err := Validate(req); err != nil {
		o.logger.Warn("Merge request rejected", zap.String("kind", Kind(err)), zap.Error(err))
		return Result{}, err
	}

	outputPath := filepath.Join(req.OutputFolder, req.OutputName)
	o.logger.Info("Starting merge",
		zap.String("outputPath", outputPath),
		zap.Int("inputCount", len(req.Files)))

	startTime := time.Now()
	if err := o.backend.Merge(req.Files, outputPath); err != nil {
		var be *BackendError
		if !errors.As(err, &be) {
			be = &BackendError{Err: err}
		}
		o.logger.Error("Merge failed",
			zap.String("outputPath", outputPath),
			zap.String("file", be.File),
			zap.Error(be.Err))
		return Result{}, be
	}

	result := Result{
		OutputPath: outputPath,
		InputCount: len(req.Files),
		Elapsed:    time.Since(startTime),
	}
	o.logger.Info("Merge completed",
		zap.String("outputPath", outputPath),
		zap.Int("inputCount", result.InputCount),
		zap.Duration("elapsed", result.Elapsed))
	return result, nil
}
