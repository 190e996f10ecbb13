package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amanthanvi/bloom/internal/cli"
	"github.com/amanthanvi/bloom/internal/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCommand(os.Stdout, cli.BuildInfo{
		Version:   version.Version,
		Commit:    version.Commit,
		BuildTime: version.BuildTime,
	})
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return cli.ExitCodeSuccess
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintf(os.Stderr, "bloom: %s\n", msg)
	}
	var withExitCode interface{ ExitCode() int }
	if errors.As(err, &withExitCode) {
		return withExitCode.ExitCode()
	}
	return cli.ExitCodeGeneric
}
