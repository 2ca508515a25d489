package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	publishFlag bool
	formatFlag  string
)

// indexCmd is the parent command for index store operations.
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build and inspect the search index",
}

// rebuildCmd rebuilds the index synchronously.
var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the index from the upstream snapshot",
	Long: `Scans the upstream snapshot once, groups printings by canonical key and replaces
the index store in a single transaction. The previous index stays intact on failure.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context(), bootstrapOptions{Storage: publishFlag, Recover: true})
		if err != nil {
			return err
		}
		defer a.Close()

		a.logger.Info("Rebuilding index (this might take a while)...",
			zap.String("upstream", a.cfg.Index.UpstreamPath),
			zap.String("index", a.cfg.Index.IndexPath),
		)
		report, err := a.indexSvc.Rebuild(cmd.Context(), publishFlag)
		if err != nil {
			return fmt.Errorf("rebuild failed: %w", err)
		}
		if report.PublishError != "" {
			a.logger.Warn("Index built but not published", zap.String("error", report.PublishError))
		}
		return render(cmd.OutOrStdout(), formatFlag, report)
	},
}

// statusCmd prints the persisted rebuild status.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of the latest rebuild",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context(), bootstrapOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		view, err := a.indexSvc.Status(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read status: %w", err)
		}
		return render(cmd.OutOrStdout(), formatFlag, view)
	},
}

func init() {
	RootCmd.AddCommand(indexCmd)
	indexCmd.AddCommand(rebuildCmd, statusCmd)
	indexCmd.PersistentFlags().StringVar(&formatFlag, "format", formatYAML, "Output format (json, yaml)")
	rebuildCmd.Flags().BoolVar(&publishFlag, "publish", false, "Upload the built index to object storage")
}
