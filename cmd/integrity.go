package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var integrityFormat string

// integrityCmd runs every integrity check.
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the upstream snapshot, the index store and publication storage",
	Long: `Reports schema drift of the upstream snapshot, broken index invariants, app store
tables that do not match their models and the state of the published index.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrity(cmd, func(a *application, ctx context.Context) (any, error) {
			return a.integrity.CheckAll(ctx), nil
		})
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Report upstream schema drift",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrity(cmd, func(a *application, ctx context.Context) (any, error) {
			report, err := a.integrity.CheckSchema(ctx)
			if err == nil && len(report.Missing) > 0 {
				a.logger.Warn("Upstream fields without a column read as NULL", zap.Strings("missing", report.Missing))
			}
			return report, err
		})
	},
}

var indexCheckCmd = &cobra.Command{
	Use:   "index",
	Short: "Verify the index store invariants",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrity(cmd, func(a *application, ctx context.Context) (any, error) {
			report, err := a.integrity.CheckIndex(ctx)
			if err == nil && report.Status != "ok" {
				a.logger.Warn("Index store is not healthy", zap.String("status", report.Status), zap.Strings("problems", report.Problems))
			}
			return report, err
		})
	},
}

var appCheckCmd = &cobra.Command{
	Use:   "app",
	Short: "Compare the app store tables with their models",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrity(cmd, func(a *application, ctx context.Context) (any, error) {
			return a.integrity.CheckApp(ctx)
		})
	},
}

var storageCheckCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check the publication bucket and the published index",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrity(cmd, func(a *application, ctx context.Context) (any, error) {
			return a.integrity.CheckStorage(ctx)
		})
	},
}

func runIntegrity(cmd *cobra.Command, check func(a *application, ctx context.Context) (any, error)) error {
	a, err := bootstrap(cmd.Context(), bootstrapOptions{Storage: true})
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := check(a, cmd.Context())
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), integrityFormat, report)
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(schemaCmd, indexCheckCmd, appCheckCmd, storageCheckCmd)
	integrityCmd.PersistentFlags().StringVar(&integrityFormat, "format", formatYAML, "Output format (json, yaml)")
}
