package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tellnet/tellnet/internal/branding"
	"github.com/tellnet/tellnet/internal/buildinfo"
	"github.com/tellnet/tellnet/internal/dispatch"
	"github.com/tellnet/tellnet/internal/output"
	"github.com/tellnet/tellnet/internal/remote"
)

// rootFlags holds the persistent flags shared by every command.
type rootFlags struct {
	share   bool
	network string
	alias   optionalString
	debug   bool
	output  string
	qrPNG   string
	timeout time.Duration
}

// NewRootCommand builds the full command tree.
func NewRootCommand(info buildinfo.Info) *cobra.Command {
	flags := &rootFlags{}
	name := branding.CLIName()

	root := &cobra.Command{
		Use:   name + " <component> <action>",
		Short: branding.Description(),
		Long: branding.DisplayName() + ` talks to a messaging service made of networks, their members
and the messages they exchange. Known networks and their credentials are kept
in ` + "~/" + branding.HomeDir() + `/networks.json; the first one is the default.`,
		Example: fmt.Sprintf("  1) %[1]s network create --share\n  2) %[1]s message create Hello There!", name),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&flags.share, "share", false, "Combine network create with member create, to share a newly created network")
	pf.StringVar(&flags.network, "network", "", "Perform the action on this network (it becomes the default)")
	pf.Var(&flags.alias, "alias", "Set the alias for either a network or a member")
	pf.BoolVar(&flags.debug, "debug", false, "Log every request and response to stderr")
	pf.StringVarP(&flags.output, "output", "o", string(output.Text), "Output format: text, json or yaml")
	pf.StringVar(&flags.qrPNG, "qr-png", "", "Also write the share QR code as a PNG image to this path")
	pf.DurationVar(&flags.timeout, "timeout", remote.DefaultTimeout, "Timeout for each request to the service")

	for _, c := range dispatch.Components {
		root.AddCommand(newComponentCmd(c, flags, info))
	}
	root.AddCommand(newVersionCmd(info))
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newConfigCmd(flags))
	return root
}

// Execute runs the root command with build info injected via ldflags.
func Execute(ctx context.Context, version, commit, date string) error {
	return NewRootCommand(buildinfo.New(version, commit, date)).ExecuteContext(ctx)
}

// optionalString is a string flag that remembers whether it was given, so
// an explicit empty --alias differs from no --alias.
type optionalString struct {
	value *string
}

func (o *optionalString) String() string {
	if o.value == nil {
		return ""
	}
	return *o.value
}

func (o *optionalString) Set(s string) error {
	o.value = &s
	return nil
}

func (o *optionalString) Type() string {
	return "string"
}
