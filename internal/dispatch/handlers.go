package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tellnet/tellnet/internal/registry"
	"github.com/tellnet/tellnet/internal/remote"
	"github.com/tellnet/tellnet/internal/share"
)

const (
	networkType = "home"
	inviteRole  = "admin"
)

func target(n registry.Network) remote.Target {
	return remote.Target{
		Endpoint:  n.Endpoint,
		NetworkID: n.NetworkID,
		MemberID:  n.MemberID,
		Secret:    n.MemberSecret,
	}
}

func createNetwork(ctx context.Context, a *App, opts Options) error {
	var auth *remote.Credentials
	if c := a.Config.NewNetworkAuth; c != nil {
		auth = &remote.Credentials{Username: c.Username, Password: c.Password}
	}

	resp, err := a.Remote.CreateNetwork(ctx, a.Config.Endpoint, auth, remote.CreateNetworkRequest{
		Type:  networkType,
		Alias: opts.Alias,
	})
	if err != nil {
		return fmt.Errorf("creating network: %w", err)
	}
	if resp.Member.NetworkID == "" || resp.Member.ID == "" {
		return errors.New("creating network: service reply has no network or member id")
	}

	n := registry.Network{
		NetworkID:    resp.Member.NetworkID,
		Endpoint:     a.Config.Endpoint,
		MemberID:     resp.Member.ID,
		MemberSecret: resp.Member.Secret,
	}
	if opts.Alias != nil {
		n.SetAlias(*opts.Alias)
	}
	if err := a.Registry.InsertAsDefault(n); err != nil {
		return err
	}
	if err := a.Out.NetworkCreated(n); err != nil {
		return err
	}

	if !opts.Share {
		return nil
	}
	// The new network is the default now; --network must not redirect the invite.
	opts.NetworkID = ""
	return createMember(ctx, a, opts)
}

func listNetworks(_ context.Context, a *App, _ Options) error {
	return a.Out.Networks(a.Registry.Networks())
}

func updateNetwork(ctx context.Context, a *App, opts Options) error {
	n, err := a.Registry.SelectActive(opts.NetworkID)
	if err != nil {
		return err
	}
	if opts.Alias == nil {
		return ErrAliasRequired
	}

	info, err := a.Remote.UpdateNetwork(ctx, target(n), *opts.Alias)
	if err != nil {
		return fmt.Errorf("updating network %s: %w", n.NetworkID, err)
	}
	if err := a.Registry.UpdateInPlace(0, func(n *registry.Network) { n.SetAlias(*opts.Alias) }); err != nil {
		return err
	}
	return a.Out.NetworkUpdated(info)
}

func createMember(ctx context.Context, a *App, opts Options) error {
	n, err := a.Registry.SelectActive(opts.NetworkID)
	if err != nil {
		return err
	}

	m, err := a.Remote.CreateMember(ctx, target(n), remote.CreateMemberRequest{
		Role:  inviteRole,
		Alias: opts.Alias,
	})
	if err != nil {
		return fmt.Errorf("inviting member to %s: %w", n.NetworkID, err)
	}

	link, err := share.Link(n.Endpoint, n.NetworkID, m.ID, m.Secret)
	if err != nil {
		return err
	}
	qr, err := share.QR(link)
	if err != nil {
		return err
	}
	if err := a.Out.MemberInvited(n.NetworkID, m, link, qr); err != nil {
		return err
	}

	if opts.QRPNG != "" {
		if err := share.WritePNG(link, opts.QRPNG, share.DefaultPNGSize); err != nil {
			return err
		}
		a.Log.Debug("wrote QR image", "path", opts.QRPNG)
	}
	return nil
}

func updateMember(ctx context.Context, a *App, opts Options) error {
	n, err := a.Registry.SelectActive(opts.NetworkID)
	if err != nil {
		return err
	}
	if opts.Alias == nil {
		return ErrAliasRequired
	}

	// Members can only rename themselves.
	m, err := a.Remote.UpdateMember(ctx, target(n), *opts.Alias)
	if err != nil {
		return fmt.Errorf("updating member %s: %w", n.MemberID, err)
	}
	if err := a.Registry.UpdateInPlace(0, func(n *registry.Network) { n.SetAlias(*opts.Alias) }); err != nil {
		return err
	}
	return a.Out.MemberUpdated(m)
}

func listMembers(ctx context.Context, a *App, opts Options) error {
	n, err := a.Registry.SelectActive(opts.NetworkID)
	if err != nil {
		return err
	}

	list, err := a.Remote.ListMembers(ctx, target(n))
	if err != nil {
		return fmt.Errorf("listing members of %s: %w", n.NetworkID, err)
	}
	return a.Out.Members(list, n.MemberID)
}

func createMessage(ctx context.Context, a *App, opts Options) error {
	text := strings.Join(opts.Message, " ")
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}

	n, err := a.Registry.SelectActive(opts.NetworkID)
	if err != nil {
		return err
	}

	if err := a.Remote.CreateMessage(ctx, target(n), text); err != nil {
		return fmt.Errorf("sending message to %s: %w", n.NetworkID, err)
	}
	return a.Out.MessageSent(n.NetworkID, text)
}

func listMessages(ctx context.Context, a *App, opts Options) error {
	n, err := a.Registry.SelectActive(opts.NetworkID)
	if err != nil {
		return err
	}

	list, err := a.Remote.ListMessages(ctx, target(n))
	if err != nil {
		return fmt.Errorf("listing messages of %s: %w", n.NetworkID, err)
	}
	return a.Out.Messages(list)
}
