// Package main is the entry point for the licheck CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/licheck/cmd/licheck/commands"
	"go.trai.ch/licheck/internal/app"
	"go.trai.ch/licheck/internal/core/domain"
	_ "go.trai.ch/licheck/internal/wiring"
)

// Exit codes. A license violation is a verdict, not a malfunction, so it gets
// its own code that CI pipelines can match on.
const (
	exitOK        = 0
	exitViolation = 1
	exitFailure   = 2
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return exitFailure
	}

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		if domain.IsViolation(err) {
			return exitViolation
		}
		return exitFailure
	}
	return exitOK
}
