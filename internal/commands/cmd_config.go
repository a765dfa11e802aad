package commands

import (
	"context"
	"errors"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/recur/internal/printer"
)

type ConfigCmd struct {
	flags *Flags

	// flags
	checkAPI bool
}

// NewConfigCmd creates a new config command.
func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags}
}

// Register adds the config command to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "Validate configuration file",
				UsageText: "recur config validate [--check-api]",
				Description: `Validates the configuration file, checking durations, filter globs,
and state file paths. With --check-api the access token is verified
against the TickTick API.`,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "check-api",
						Usage:       "verify the access token with a live API call",
						Destination: &cmd.checkAPI,
					},
				},
				Action: cmd.runValidate,
			},
		},
	})

	return app
}

func (cmd *ConfigCmd) runValidate(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if err := cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath); err != nil {
		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				p.Errorf("%s: %v", fe.Field, fe.Err)
			}
			p.Errorf("%d error(s) found", len(fieldErrs))
			return cli.Exit("", 1)
		}
		return err
	}

	p.Successf("Configuration is valid")

	if cmd.checkAPI {
		client, err := cmd.flags.Client()
		if err != nil {
			p.Errorf("token: %v", err)
			return cli.Exit("", 1)
		}

		projects, err := client.Projects(ctx)
		if err != nil {
			p.Errorf("API check failed: %v", err)
			return cli.Exit("", 1)
		}

		p.Successf("API reachable (%d project(s) visible)", len(projects))
	}

	return nil
}
