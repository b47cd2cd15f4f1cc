package dispatch

import (
	"context"
	"log/slog"

	"github.com/tellnet/tellnet/internal/config"
	"github.com/tellnet/tellnet/internal/output"
	"github.com/tellnet/tellnet/internal/registry"
	"github.com/tellnet/tellnet/internal/remote"
)

// App is the state a command runs against.
type App struct {
	Config   *config.Config
	Registry *registry.Registry
	Remote   *remote.Client
	Out      *output.Formatter
	Log      *slog.Logger
}

// Options carries the command-line values handlers read.
type Options struct {
	// NetworkID selects a registered network; empty means the default.
	NetworkID string
	// Alias is nil when --alias was not given.
	Alias *string
	// Share chains network create into member create.
	Share bool
	// Message holds the words of a message body.
	Message []string
	// QRPNG, when set, is where member create writes the QR image.
	QRPNG string
}

type handler func(ctx context.Context, a *App, opts Options) error

var routes = map[Route]handler{
	{Network, Create}: createNetwork,
	{Network, List}:   listNetworks,
	{Network, Update}: updateNetwork,
	{Network, Delete}: unsupported(Route{Network, Delete}),
	{Member, Create}:  createMember,
	{Member, List}:    listMembers,
	{Member, Update}:  updateMember,
	{Member, Delete}:  unsupported(Route{Member, Delete}),
	{Message, Create}: createMessage,
	{Message, List}:   listMessages,
	{Message, Delete}: unsupported(Route{Message, Delete}),
}

// Dispatch runs the handler registered for route.
func (a *App) Dispatch(ctx context.Context, route Route, opts Options) error {
	h, ok := routes[route]
	if !ok {
		return &UnsupportedError{Route: route}
	}
	a.Log.Debug("dispatch", "route", route.String(), "network", opts.NetworkID)
	return h(ctx, a, opts)
}

func unsupported(route Route) handler {
	return func(context.Context, *App, Options) error {
		return &UnsupportedError{Route: route}
	}
}
