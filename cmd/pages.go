package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pdfmerge/pkg/collect"
	"pdfmerge/pkg/inspect"
)

func newPagesCmd(root *rootOptions) *cobra.Command {
	var (
		workers   int
		recursive bool
		exclude   []string
	)

	pagesCmd := &cobra.Command{
		Use:   "pages FILE|DIR...",
		Short: "Show the page count of each document",
		Long:  `Pages prints how many pages each input has and how many the merged document would have.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			excluder, err := collect.NewExcluder(exclude...)
			if err != nil {
				return err
			}
			inputs, err := collect.Paths(args, collect.Options{Recursive: recursive, Exclude: excluder}, root.logger)
			if err != nil {
				return fmt.Errorf("failed to collect input files: %w", err)
			}

			infos := inspect.PageCounts(inputs, workers, inspect.PDFCPUPageCount, root.logger)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			failed := 0
			for _, info := range infos {
				if info.Err != nil {
					failed++
					fmt.Fprintf(w, "%d.\t%s\terror: %v\n", info.Index+1, info.Path, info.Err)
					continue
				}
				fmt.Fprintf(w, "%d.\t%s\t%d\n", info.Index+1, info.Path, info.Pages)
			}
			fmt.Fprintf(w, "\ttotal\t%d\n", inspect.Total(infos))
			if err := w.Flush(); err != nil {
				return err
			}

			if failed > 0 {
				return fmt.Errorf("%d file(s) could not be read", failed)
			}
			return nil
		},
	}

	pagesCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Number of files inspected concurrently (0 = one per CPU)")
	pagesCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Include PDFs in subdirectories of directory arguments")
	pagesCmd.Flags().StringSliceVarP(&exclude, "exclude", "x", nil, "Glob of files to leave out when expanding directories (repeatable)")
	return pagesCmd
}
