package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tellnet/tellnet/internal/buildinfo"
	"github.com/tellnet/tellnet/internal/config"
	"github.com/tellnet/tellnet/internal/dispatch"
	"github.com/tellnet/tellnet/internal/logger"
	"github.com/tellnet/tellnet/internal/output"
	"github.com/tellnet/tellnet/internal/registry"
	"github.com/tellnet/tellnet/internal/remote"
	"github.com/tellnet/tellnet/internal/userdata"
)

var componentShort = map[dispatch.Component]string{
	dispatch.Network: "Create, list and rename networks",
	dispatch.Member:  "Invite members, rename yourself and list members",
	dispatch.Message: "Send and read messages",
}

var actionShort = map[dispatch.Route]string{
	{Component: dispatch.Network, Action: dispatch.Create}: "Create a network and make it the default",
	{Component: dispatch.Network, Action: dispatch.List}:   "List known networks, the default first",
	{Component: dispatch.Network, Action: dispatch.Update}: "Change the alias of a network",
	{Component: dispatch.Member, Action: dispatch.Create}:  "Invite a member and print a share link with its QR code",
	{Component: dispatch.Member, Action: dispatch.List}:    "List the members of a network",
	{Component: dispatch.Member, Action: dispatch.Update}:  "Change your own alias in a network",
	{Component: dispatch.Message, Action: dispatch.Create}: "Send a message; every remaining word is part of it",
	{Component: dispatch.Message, Action: dispatch.List}:   "Show the latest messages of a network",
}

var messageCreate = dispatch.Route{Component: dispatch.Message, Action: dispatch.Create}

func newComponentCmd(c dispatch.Component, flags *rootFlags, info buildinfo.Info) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(c) + " <action>",
		Short: componentShort[c],
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			names := lo.Map(dispatch.Actions, func(a dispatch.Action, _ int) string { return string(a) })
			return fmt.Errorf("unknown action %q for %s (expected one of: %s)", args[0], c, strings.Join(names, ", "))
		},
	}
	for _, a := range dispatch.Actions {
		cmd.AddCommand(newActionCmd(dispatch.Route{Component: c, Action: a}, flags, info))
	}
	return cmd
}

func newActionCmd(route dispatch.Route, flags *rootFlags, info buildinfo.Info) *cobra.Command {
	short, ok := actionShort[route]
	if !ok {
		short = "Not yet supported"
	}

	cmd := &cobra.Command{
		Use:                string(route.Action),
		Short:              short,
		Args:               cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, route, flags, info, nil)
		},
	}

	if route == messageCreate {
		cmd.Use = string(route.Action) + " <message...>"
		// Unknown flags are words of the message, so flags are parsed here.
		cmd.DisableFlagParsing = true
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			words, err := parseMessageArgs(cmd, args)
			if errors.Is(err, pflag.ErrHelp) {
				return cmd.Help()
			}
			if err != nil {
				return err
			}
			return run(cmd, route, flags, info, words)
		}
	}
	return cmd
}

func run(cmd *cobra.Command, route dispatch.Route, flags *rootFlags, info buildinfo.Info, words []string) error {
	app, err := newApp(cmd, flags, info)
	if err != nil {
		return err
	}
	return app.Dispatch(cmd.Context(), route, dispatch.Options{
		NetworkID: flags.network,
		Alias:     flags.alias.value,
		Share:     flags.share,
		Message:   words,
		QRPNG:     flags.qrPNG,
	})
}

// newApp loads configuration and the registry and wires the service client.
// The config file is generated here on first run.
func newApp(cmd *cobra.Command, flags *rootFlags, info buildinfo.Info) (*dispatch.App, error) {
	log := logger.New(logger.Config{Debug: flags.debug, Output: cmd.ErrOrStderr()})

	format, err := output.ParseFormat(flags.output)
	if err != nil {
		return nil, err
	}

	configPath, err := userdata.GetConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath, log)
	if err != nil {
		return nil, err
	}

	networksPath, err := userdata.GetNetworksPath()
	if err != nil {
		return nil, err
	}

	return &dispatch.App{
		Config:   cfg,
		Registry: registry.Load(networksPath, log),
		Remote: remote.New(
			remote.WithLogger(log),
			remote.WithUserAgent(info.UserAgent()),
			remote.WithTimeout(flags.timeout),
		),
		Out: output.New(cmd.OutOrStdout(), format),
		Log: log,
	}, nil
}

// parseMessageArgs applies the known flags found in args and returns every
// other token as a message word. Unknown flags are kept as words.
func parseMessageArgs(cmd *cobra.Command, args []string) ([]string, error) {
	var words []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			words = append(words, args[i+1:]...)
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			words = append(words, arg)
			continue
		}

		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		fs, f := lookupFlag(cmd, name, !strings.HasPrefix(arg, "--"))
		if f == nil {
			words = append(words, arg)
			continue
		}
		if f.Name == "help" {
			return nil, pflag.ErrHelp
		}
		if !hasValue {
			if f.NoOptDefVal != "" {
				value = f.NoOptDefVal
			} else {
				if i+1 >= len(args) {
					return nil, fmt.Errorf("flag needs an argument: %s", arg)
				}
				i++
				value = args[i]
			}
		}
		if err := fs.Set(f.Name, value); err != nil {
			return nil, fmt.Errorf("invalid argument %q for %s: %w", value, arg, err)
		}
	}
	return words, nil
}

func lookupFlag(cmd *cobra.Command, name string, short bool) (*pflag.FlagSet, *pflag.Flag) {
	for _, fs := range []*pflag.FlagSet{cmd.LocalFlags(), cmd.InheritedFlags()} {
		var f *pflag.Flag
		switch {
		case !short:
			f = fs.Lookup(name)
		case len(name) == 1:
			f = fs.ShorthandLookup(name)
		}
		if f != nil {
			return fs, f
		}
	}
	return nil, nil
}
