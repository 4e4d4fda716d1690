package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pdfmerge/pkg/logging"
	"pdfmerge/pkg/settings"
	"pdfmerge/pkg/version"
)

// rootOptions holds state shared by every subcommand.
type rootOptions struct {
	debug        bool        // Development logging at debug level.
	settingsPath string      // File holding the last used folders.
	logger       *zap.Logger // Logger handed to every component.
}

// NewRootCmd builds the command tree. logger is used unless --debug asks
// for a development logger.
func NewRootCmd(logger *zap.Logger) *cobra.Command {
	root, _ := newRoot(logger)
	return root
}

func newRoot(logger *zap.Logger) (*cobra.Command, *rootOptions) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := &rootOptions{logger: logger}

	root := &cobra.Command{
		Use:   "pdfmerge",
		Short: "pdfmerge concatenates PDF documents into a single file",
		Long: `pdfmerge assembles an ordered list of PDF documents and concatenates them,
whole and in order, into one output file. Use "pdfmerge ui" to reorder files
interactively or "pdfmerge merge" to merge them in the order given.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !opts.debug {
				return nil
			}
			if err := logging.Setup(true, version.AppName, version.Version); err != nil {
				return err
			}
			opts.logger = logging.Logger
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&opts.settingsPath, "settings", settings.DefaultFilename, "File remembering the last used folders")

	root.AddCommand(
		newMergeCmd(opts),
		newPagesCmd(opts),
		newUICmd(opts),
		newVersionCmd(),
	)
	return root, opts
}

// Execute runs the command tree with the process arguments and returns the
// logger the command ended up using, so the caller flushes the right one.
func Execute(logger *zap.Logger) (*zap.Logger, error) {
	root, opts := newRoot(logger)
	err := root.Execute()
	return opts.logger, err
}
