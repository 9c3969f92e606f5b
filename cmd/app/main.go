package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/docsmcp/internal"
	pkgconfig "github.com/starford/docsmcp/pkg/config"
)

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

// loadConfig layers defaults, the optional config file and flag overrides,
// then validates the result once.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	found, err := pkgconfig.LoadOptional(configPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if !found && cmd.IsSet("config") {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyFlags overrides file values with flags that were set explicitly or
// through their environment variables.
func applyFlags(cmd *cli.Command, cfg *internal.Config) {
	if cmd.IsSet("transport") {
		cfg.Transport.Mode = cmd.String("transport")
	}
	if cmd.IsSet("docs") {
		cfg.Docs.Path = cmd.String("docs")
	}
	if cmd.IsSet("port") {
		cfg.App.HTTP.Port = int(cmd.Int("port"))
	}
	if cmd.IsSet("tools") {
		cfg.Tools.Enabled = cmd.Bool("tools")
	}
	if cmd.IsSet("stateless") {
		cfg.Transport.Stateless = cmd.Bool("stateless")
	}
	if cmd.IsSet("watch") {
		cfg.Docs.Watch = cmd.Bool("watch")
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:   "docsmcp",
		Usage:  "Serve a folder of markdown documentation over the Model Context Protocol",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file (optional)",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "transport",
				Aliases: []string{"t"},
				Usage:   "MCP transport: stdio, sse or http",
				Sources: cli.EnvVars("DOCS_TRANSPORT"),
			},
			&cli.StringFlag{
				Name:    "docs",
				Usage:   "Directory holding the markdown files",
				Sources: cli.EnvVars("DOCS_DIR"),
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "HTTP listen port for the sse and http transports",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.BoolFlag{
				Name:    "tools",
				Usage:   "Expose the list_docs and read_doc tools",
				Sources: cli.EnvVars("DOCS_TOOLS"),
			},
			&cli.BoolFlag{
				Name:    "stateless",
				Usage:   "Run the http transport without session ids",
				Sources: cli.EnvVars("DOCS_STATELESS"),
			},
			&cli.BoolFlag{
				Name:    "watch",
				Usage:   "Notify clients when files in the docs directory change",
				Sources: cli.EnvVars("DOCS_WATCH"),
			},
		},
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
