package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tellnet/tellnet/internal/branding"
	"github.com/tellnet/tellnet/internal/userdata"
)

func newDoctorCmd() *cobra.Command {
	var doctorFix bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Health check for the " + branding.DisplayName() + " home directory",
		Long: `Check that the home directory exists with private permissions and that
config.json and networks.json are valid. With --fix, missing directories and
loose permissions are repaired; file contents are left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			problems, err := userdata.CheckUserdata(cmd.OutOrStdout(), doctorFix)
			if err != nil {
				return err
			}
			if problems == 0 {
				return nil
			}
			if !doctorFix {
				return fmt.Errorf("%d problem(s) found; run '%s doctor --fix' to repair what can be repaired",
					problems, branding.CLIName())
			}

			remaining, err := userdata.CheckUserdata(io.Discard, false)
			if err != nil {
				return err
			}
			if remaining > 0 {
				return fmt.Errorf("%d problem(s) need manual attention", remaining)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&doctorFix, "fix", false, "Create the home directory and tighten permissions")
	return cmd
}
