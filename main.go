package main

import (
	"log"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"pdfmerge/cmd"
	"pdfmerge/pkg/logging"
	"pdfmerge/pkg/version"
)

func main() {
	if err := logging.Setup(false, version.AppName, version.Version); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger, err := cmd.Execute(logging.Logger)
	syncLogger(logger)
	if err != nil {
		os.Exit(1)
	}
}

// syncLogger flushes the logger. Syncing a console stderr fails with
// "invalid argument" on some platforms, so only terminals and regular files
// are synced and that error is ignored.
func syncLogger(logger *zap.Logger) {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if syncErr := logger.Sync(); syncErr != nil {
		lowerErr := strings.ToLower(syncErr.Error())
		if !strings.Contains(lowerErr, "invalid argument") {
			log.Printf("Logger sync failed: %v", syncErr)
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
