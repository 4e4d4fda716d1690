package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pdfmerge/pkg/collect"
	"pdfmerge/pkg/filelist"
	"pdfmerge/pkg/merge"
	"pdfmerge/pkg/settings"
)

// mergeOptions holds the flags of the merge command.
type mergeOptions struct {
	outputDir string   // Destination folder; falls back to the last used one.
	name      string   // Merged file name, extension included.
	recursive bool     // Descend into subdirectories of directory arguments.
	exclude   []string // Globs left out when expanding directories.
	relaxed   bool     // Relaxed pdfcpu validation.
	divider   bool     // Blank page between inputs.
}

func newMergeCmd(root *rootOptions) *cobra.Command {
	opts := &mergeOptions{}

	mergeCmd := &cobra.Command{
		Use:   "merge [flags] FILE|DIR...",
		Short: "Merge PDF documents in the order given",
		Long: `Merge concatenates every page of every input, in argument order, into a
single document at OUTPUT-DIR/NAME. Directory arguments contribute the PDF
files they contain, sorted by name.

When --output-dir is omitted the folder used by the previous merge is reused.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, root, opts, args)
		},
	}

	mergeCmd.Flags().StringVarP(&opts.outputDir, "output-dir", "d", "", "Folder to write the merged PDF to")
	mergeCmd.Flags().StringVarP(&opts.name, "name", "n", "merged.pdf", "Name of the merged PDF")
	mergeCmd.Flags().BoolVarP(&opts.recursive, "recursive", "r", false, "Include PDFs in subdirectories of directory arguments")
	mergeCmd.Flags().StringSliceVarP(&opts.exclude, "exclude", "x", nil, "Glob of files to leave out when expanding directories (repeatable)")
	mergeCmd.Flags().BoolVar(&opts.relaxed, "relaxed", false, "Accept inputs with minor structural defects")
	mergeCmd.Flags().BoolVar(&opts.divider, "divider", false, "Insert a blank page between documents")
	return mergeCmd
}

func runMerge(cmd *cobra.Command, root *rootOptions, opts *mergeOptions, args []string) error {
	logger := root.logger

	paths, err := settings.Load(root.settingsPath, logger)
	if err != nil {
		return err
	}

	excluder, err := collect.NewExcluder(opts.exclude...)
	if err != nil {
		return err
	}
	inputs, err := collect.Paths(args, collect.Options{Recursive: opts.recursive, Exclude: excluder}, logger)
	if err != nil {
		return fmt.Errorf("failed to collect input files: %w", err)
	}

	list := filelist.New(logger)
	list.Add(inputs...)
	if len(inputs) > 0 {
		paths.Set(settings.KeyInitialPDFDir, filepath.Dir(inputs[0]))
	}

	folder := opts.outputDir
	if folder == "" {
		folder = paths.Get(settings.KeyOutputPath, "")
	}

	backend := merge.NewPDFCPUBackend(merge.PDFCPUOptions{
		Relaxed:     opts.relaxed,
		DividerPage: opts.divider,
	}, logger)
	orchestrator := merge.NewOrchestrator(backend, logger)

	result, err := orchestrator.Merge(merge.NewRequest(list, folder, opts.name))
	if err != nil {
		return fmt.Errorf("%s: %w", merge.Kind(err), err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "PDF files merged successfully into %s\n", result.OutputPath)

	paths.Set(settings.KeyOutputPath, folder)
	if err := settings.Save(root.settingsPath, paths, logger); err != nil {
		logger.Warn("Failed to save last used paths", zap.String("filePath", root.settingsPath), zap.Error(err))
	}
	return nil
}
