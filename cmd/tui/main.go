package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/meghashyamc/docregistry/api"
	"github.com/meghashyamc/docregistry/config"
	"github.com/meghashyamc/docregistry/logger"
	"github.com/meghashyamc/docregistry/tui"
)

type CLI struct {
	Env        string `help:"Configuration environment (reads config/config.<env>.yaml)." env:"ENV"`
	BackendURL string `name:"backend-url" help:"Base URL of the document registry backend."`
	LogLevel   string `name:"log-level" help:"Log level; logs go to stderr." default:"error"`
}

func main() {
	godotenv.Load()

	cli := &CLI{}
	kong.Parse(cli,
		kong.Name("docregistry-tui"),
		kong.Description("Consult registered documents from the terminal"),
	)

	cfg, err := config.Load(cli.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %s\n", err)
		os.Exit(1)
	}
	if cli.BackendURL != "" {
		cfg.Set("BACKEND_URL", cli.BackendURL)
	}

	ctx := context.Background()
	view := api.NewView(cfg, logger.New(cli.LogLevel))

	program := tea.NewProgram(tui.NewModel(ctx, view), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
