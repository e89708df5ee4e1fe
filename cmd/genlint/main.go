package main

import (
	"context"
	"os"
	"os/signal"

	"go.followtheprocess.codes/genlint/internal/cmd"
	"go.followtheprocess.codes/msg"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx); err != nil {
		msg.Ferror(os.Stderr, "%v", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	command, err := cmd.Build(os.Args[1:])
	if err != nil {
		return err
	}

	return command.Execute(ctx)
}
