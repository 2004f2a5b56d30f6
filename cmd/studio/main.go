package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/artkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/artkeeper/internal/logging"
	"github.com/dmitrijs2005/artkeeper/internal/studio/cli"
	"github.com/dmitrijs2005/artkeeper/internal/studio/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
