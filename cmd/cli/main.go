package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/todolist/internal/client/cli"
	"github.com/dmitrijs2005/todolist/internal/client/config"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := cli.NewRootCmd(cli.NewApp(cfg)).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}

}
