package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/meghashyamc/docregistry/api"
	"github.com/meghashyamc/docregistry/config"
)

type CLI struct {
	Env        string `help:"Configuration environment (reads config/config.<env>.yaml)." env:"ENV"`
	Port       string `help:"Port to listen on."`
	BackendURL string `name:"backend-url" help:"Base URL of the document registry backend."`
}

func main() {
	godotenv.Load()

	cli := &CLI{}
	kong.Parse(cli,
		kong.Name("docregistry"),
		kong.Description("Serve the document consult screen over HTTP"),
	)

	cfg, err := config.Load(cli.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %s\n", err)
		os.Exit(1)
	}
	if cli.Port != "" {
		cfg.Set("PORT", cli.Port)
	}
	if cli.BackendURL != "" {
		cfg.Set("BACKEND_URL", cli.BackendURL)
	}

	ctx := context.Background()
	if err := api.Run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
