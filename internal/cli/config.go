package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tellnet/tellnet/internal/branding"
	"github.com/tellnet/tellnet/internal/config"
	"github.com/tellnet/tellnet/internal/logger"
	"github.com/tellnet/tellnet/internal/output"
	"github.com/tellnet/tellnet/internal/userdata"
)

func newConfigCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
		Long: `Read the ` + branding.DisplayName() + ` configuration stored at ~/` + branding.HomeDir() + `/config.json.
The endpoint is used when creating networks; ` + branding.EnvVar("ENDPOINT") + ` overrides it.`,
	}
	cmd.AddCommand(newConfigShowCmd(flags))
	cmd.AddCommand(newConfigPathCmd())
	return cmd
}

func newConfigShowCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration, generating it on first run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(flags.output)
			if err != nil {
				return err
			}
			path, err := userdata.GetConfigPath()
			if err != nil {
				return err
			}
			log := logger.New(logger.Config{Debug: flags.debug, Output: cmd.ErrOrStderr()})
			cfg, err := config.Load(path, log)
			if err != nil {
				return err
			}
			return output.New(cmd.OutOrStdout(), format).Config(cfg)
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the path of the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := userdata.GetConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
