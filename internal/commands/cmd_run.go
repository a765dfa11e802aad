package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/recur/internal/printer"
)

type RunCmd struct {
	flags *Flags

	// flags
	dryRun bool
}

// NewRunCmd creates a new run command
func NewRunCmd(flags *Flags) *RunCmd {
	return &RunCmd{flags: flags}
}

// Register adds the run command to the application
func (cmd *RunCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "run",
		Usage:     "Run a single duplication pass",
		UsageText: "recur run [--dry-run]",
		Description: `Fetches recently completed tasks, applies the configured filters, and
creates a fresh copy of each eligible task that has not been duplicated
before. Each source task is duplicated at most once, ever.

Use --dry-run to see what would be duplicated without touching the API
or the local state file.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "report eligible tasks without creating anything",
				Destination: &cmd.dryRun,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RunCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	engine, err := cmd.flags.Engine(cmd.dryRun)
	if err != nil {
		return err
	}

	report, err := engine.RunOnce(ctx)
	if err != nil {
		return fmt.Errorf("duplication pass: %w", err)
	}

	if cmd.dryRun {
		p.Infof("Dry run: %s", report)
		return nil
	}

	if report.Failed > 0 {
		p.Warnf("%d task(s) failed and will be retried next pass", report.Failed)
	}

	if report.Duplicated == 0 {
		p.Infof("Nothing to duplicate (%s)", report)
		return nil
	}

	p.Successf("Duplicated %d task(s) (%s)", report.Duplicated, report)

	return nil
}
