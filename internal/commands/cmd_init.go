package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/recur/internal/core/config"
	"github.com/hay-kot/recur/internal/printer"
)

type InitCmd struct {
	flags *Flags

	// flags
	yes   bool
	force bool
}

// NewInitCmd creates a new init command
func NewInitCmd(flags *Flags) *InitCmd {
	return &InitCmd{flags: flags}
}

// Register adds the init command to the application
func (cmd *InitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "init",
		Usage:     "Create a configuration file with an interactive wizard",
		UsageText: "recur init [--yes] [--force]",
		Description: `Walks through the TickTick access token and filter settings and writes
the config file.

Use --yes to write defaults without prompts (the token can then be
supplied via the TICKTICK_ACCESS_TOKEN environment variable).
Use --force to overwrite an existing config file.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "accept defaults without prompting",
				Destination: &cmd.yes,
			},
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "overwrite existing configuration",
				Destination: &cmd.force,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *InitCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)
	path := cmd.flags.ConfigPath

	if _, err := os.Stat(path); err == nil && !cmd.force {
		if cmd.yes {
			return fmt.Errorf("config exists at %s; use --force to overwrite", path)
		}

		var overwrite bool
		err := huh.NewConfirm().
			Title("Config file already exists").
			Description(path + "\nOverwrite?").
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			p.Infof("Init cancelled")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	cfg.DataDir = cmd.flags.DataDir

	if !cmd.yes {
		if err := cmd.promptUser(&cfg); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	p.Successf("Created config: %s", path)

	if cfg.Token == "" {
		p.Warnf("No access token set; export %s before running", config.EnvToken)
	}

	p.Infof("Run 'recur run --dry-run' to preview the first pass")

	return nil
}

func (cmd *InitCmd) promptUser(cfg *config.Config) error {
	tags := strings.Join(cfg.Filter.Tags, ", ")
	window := cfg.Filter.Window.Std().String()

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("TickTick access token").
			Description("From the TickTick developer console (leave empty to use the environment variable)").
			EchoMode(huh.EchoModePassword).
			Value(&cfg.Token),
		huh.NewInput().
			Title("Tag filter").
			Description("Comma-separated tags a completed task must carry (empty matches all)").
			Value(&tags),
		huh.NewInput().
			Title("Title filter").
			Description("Substring the task title must contain, case-insensitive (empty matches all)").
			Value(&cfg.Filter.NameContains),
		huh.NewInput().
			Title("Recency window").
			Description("How far back to look for completed tasks, e.g. 24h").
			Value(&window).
			Validate(func(s string) error {
				if _, err := time.ParseDuration(s); err != nil {
					return fmt.Errorf("not a valid duration")
				}
				return nil
			}),
	))

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Filter.Tags = splitCSV(tags)

	d, err := time.ParseDuration(window)
	if err != nil {
		return err
	}
	cfg.Filter.Window = config.Duration(d)

	return nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
