package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/cert-archive/cmd/index"
	"fjacquet/cert-archive/cmd/inspect"
	"fjacquet/cert-archive/cmd/organize"
	"fjacquet/cert-archive/cmd/root"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(index.Cmd)
	root.Cmd.AddCommand(organize.Cmd)
	root.Cmd.AddCommand(inspect.Cmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := root.Cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
