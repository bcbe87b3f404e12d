package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"condasolver/internal/app"
)

type validateOptions struct {
	Spec string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an environment spec",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Spec, "spec", "", "Environment spec YAML path")
	_ = viper.BindPFlag("spec", cmd.Flags().Lookup("spec"))
	return cmd
}

func runValidate(cmd *cobra.Command, opts validateOptions) error {
	service := newAppService()
	result, err := service.Validate(app.ValidateRequest{
		SpecPath: resolveString(cmd, opts.Spec, "spec", "spec"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("valid: %d top-level spec(s)\n", result.SpecCount)
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
