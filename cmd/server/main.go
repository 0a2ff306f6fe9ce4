package main

import (
	"context"
	"fmt"
	"log"

	"github.com/carnetapp/carnet/internal/server"
	"github.com/carnetapp/carnet/internal/server/accesskey"
	"github.com/carnetapp/carnet/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.MintKey {
		key, err := accesskey.Mint([]byte(cfg.SecretKey), accesskey.RoleAnon, 0)
		if err != nil {
			log.Fatalf("minting access key: %s", err)
		}
		fmt.Println(key)
		return
	}

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("init error: %s", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("server error: %s", err)
	}
}
