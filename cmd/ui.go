package cmd

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"pdfmerge/pkg/collect"
	"pdfmerge/pkg/filelist"
	"pdfmerge/pkg/inspect"
	"pdfmerge/pkg/logging"
	"pdfmerge/pkg/merge"
	"pdfmerge/pkg/settings"
	"pdfmerge/pkg/tui"
	"pdfmerge/pkg/version"
)

var errNotTerminal = errors.New("the interactive UI needs a terminal")

func newUICmd(root *rootOptions) *cobra.Command {
	var (
		logFile string
		name    string
		relaxed bool
	)

	uiCmd := &cobra.Command{
		Use:   "ui [FILE|DIR...]",
		Short: "Arrange and merge PDF documents interactively",
		Long: `UI opens an interactive list of documents. Files given as arguments are
queued first; more can be pasted or dropped onto the terminal. Reorder them,
set the output folder and name, then merge.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return errNotTerminal
			}

			// Log lines on stderr would draw over the screen.
			if err := logging.SetupFile(logFile, root.debug, version.AppName, version.Version); err != nil {
				return fmt.Errorf("failed to open log file %q: %w", logFile, err)
			}
			logger := logging.Logger
			defer logger.Sync() //nolint:errcheck

			paths, err := settings.Load(root.settingsPath, logger)
			if err != nil {
				return err
			}

			inputs, err := collect.Paths(args, collect.Options{}, logger)
			if err != nil {
				return fmt.Errorf("failed to collect input files: %w", err)
			}
			list := filelist.New(logger)
			list.Add(inputs...)

			backend := merge.NewPDFCPUBackend(merge.PDFCPUOptions{Relaxed: relaxed}, logger)
			model := tui.New(tui.Config{
				List:        list,
				Paths:       paths,
				Merger:      merge.NewOrchestrator(backend, logger),
				PageCounter: inspect.PDFCPUPageCount,
				OutputName:  name,
				Logger:      logger,
				SaveSettings: func(p settings.LastUsedPaths) error {
					return settings.Save(root.settingsPath, p, logger)
				},
			})

			if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
				logger.Error("Interactive UI failed", zap.Error(err))
				return fmt.Errorf("interactive UI failed: %w", err)
			}
			return nil
		},
	}

	uiCmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file while the UI is running")
	uiCmd.Flags().StringVarP(&name, "name", "n", "merged.pdf", "Initial name of the merged PDF")
	uiCmd.Flags().BoolVar(&relaxed, "relaxed", false, "Accept inputs with minor structural defects")
	return uiCmd
}
