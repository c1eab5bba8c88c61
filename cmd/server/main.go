package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/vitibrasil/internal/server"
	"github.com/dmitrijs2005/vitibrasil/internal/server/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
