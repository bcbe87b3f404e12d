package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"condasolver/internal/app"
	"condasolver/internal/solver"
)

type solveOptions struct {
	Spec                 string
	Output               string
	Subdirs              map[string]string
	PreferInstalledOnTie bool
}

func newSolveCommand() *cobra.Command {
	opts := solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Resolve an environment spec against a repository index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSolve(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Spec, "spec", "", "Environment spec YAML path")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Solve report output path (optional)")
	cmd.Flags().StringToStringVar(&opts.Subdirs, "subdir", nil, "subdir=repodata.json pairs, repeatable")
	cmd.Flags().BoolVar(&opts.PreferInstalledOnTie, "prefer-installed-on-tie", true, "Prefer an installed candidate over others of the same version")

	_ = viper.BindPFlag("spec", cmd.Flags().Lookup("spec"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("prefer_installed_on_tie", cmd.Flags().Lookup("prefer-installed-on-tie"))
	return cmd
}

func runSolve(ctx context.Context, cmd *cobra.Command, opts solveOptions) error {
	service := newAppService()
	result, err := service.Solve(ctx, app.SolveRequest{
		Subdirs:              opts.Subdirs,
		SpecPath:             resolveString(cmd, opts.Spec, "spec", "spec"),
		OutputPath:           resolveString(cmd, opts.Output, "output", "output"),
		PreferInstalledOnTie: resolveBool(cmd, opts.PreferInstalledOnTie, "prefer_installed_on_tie", "prefer-installed-on-tie"),
	})
	if err != nil {
		return err
	}
	switch result.Status {
	case solver.StatusSAT:
		fmt.Printf("solved: %d packages chosen\n", len(result.Chosen))
	case solver.StatusUNSAT:
		fmt.Print(app.Explain(result.Problem))
	case solver.StatusCancelled:
		fmt.Println("solve cancelled")
	}
	return nil
}
