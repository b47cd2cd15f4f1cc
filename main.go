package main

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/tellnet/tellnet/internal/cli"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.Execute(ctx, version, commit, date)
	stop()
	if err != nil {
		// One line on stderr; service bodies may span several.
		msg := strings.Join(strings.Fields(err.Error()), " ")
		_, _ = os.Stderr.WriteString("error: " + msg + "\n")
		os.Exit(1)
	}
}
