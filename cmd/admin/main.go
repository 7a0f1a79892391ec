package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"youwatch-api/internal/core/config"
	"youwatch-api/internal/core/logger"
)

func main() {
	_ = godotenv.Load()

	a := &admin{out: os.Stdout}
	if err := newApp(a).Run(context.Background(), os.Args); err != nil {
		if a.log != nil {
			a.log.Error("admin command failed", zap.Error(err))
			a.close()
		} else {
			_, _ = os.Stderr.WriteString(err.Error() + "\n")
		}
		os.Exit(1)
	}
}

func newApp(a *admin) *cli.Command {
	return &cli.Command{
		Name:  "youwatch-admin",
		Usage: "Management tasks for the youwatch api",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "./configs/config.local.yaml",
				Sources: cli.EnvVars("CONFIG_PATH"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg, err := config.Read(cmd.String("config"))
			if err != nil {
				return ctx, err
			}
			a.cfg = cfg
			a.log, a.cleanup = logger.New(cfg.Log.Level, cfg.Log.JSON)
			return ctx, nil
		},
		After: func(ctx context.Context, cmd *cli.Command) error {
			a.close()
			return nil
		},
		Commands: []*cli.Command{
			migrateCommand(a),
			accountCommand("usuario", "Manage Usuario accounts", a.CreateUsuario),
			accountCommand("criador", "Manage Criador accounts", a.CreateCriador),
			tokenCommand(a),
		},
	}
}

func migrateCommand(a *admin) *cli.Command {
	return &cli.Command{
		Name:   "migrate",
		Usage:  "Create or update the database schema",
		Action: a.Migrate,
	}
}

func accountCommand(name, usage string, create cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a " + name + " account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "nome", Usage: "Display name"},
					&cli.StringFlag{Name: "email", Usage: "Login email", Required: true},
					&cli.StringFlag{Name: "senha", Usage: "Plaintext secret (6-72 chars, at most 72 bytes)", Required: true},
				},
				Action: create,
			},
		},
	}
}

func tokenCommand(a *admin) *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Bearer token utilities",
		Commands: []*cli.Command{
			{
				Name:  "issue",
				Usage: "Issue a bearer token for an existing account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Usage: "Account email", Required: true},
				},
				Action: a.IssueToken,
			},
		},
	}
}
