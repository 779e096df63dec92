package main

import (
	"context"

	"github.com/vaultkeep/vaultkeep/internal/client/cli"
	"github.com/vaultkeep/vaultkeep/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Run(ctx)

}
