package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"condasolver/internal/adapters"
	"condasolver/internal/app"
)

type explainOptions struct {
	Report string
}

func newExplainCommand() *cobra.Command {
	opts := explainOptions{}
	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Render a previously-written solve report as human-readable text",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExplain(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Report, "report", "", "Solve report YAML path")
	_ = viper.BindPFlag("report", cmd.Flags().Lookup("report"))
	return cmd
}

func runExplain(cmd *cobra.Command, opts explainOptions) error {
	path := resolveString(cmd, opts.Report, "report", "report")
	report, err := adapters.NewOutputFileAdapter().Read(path)
	if err != nil {
		return err
	}
	fmt.Print(app.Explain(app.FromReport(report)))
	return nil
}
