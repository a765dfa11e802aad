package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/recur/internal/printer"
)

type PruneCmd struct {
	flags *Flags

	// flags
	olderThan time.Duration
	yes       bool
}

// NewPruneCmd creates a new prune command
func NewPruneCmd(flags *Flags) *PruneCmd {
	return &PruneCmd{flags: flags}
}

// Register adds the prune command to the application
func (cmd *PruneCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "prune",
		Usage:     "Remove old duplication records from the state file",
		UsageText: "recur prune --older-than 720h [--yes]",
		Description: `Removes duplication records older than the given age. A pruned task
becomes eligible for duplication again if it reappears in the recency
window, so keep the retention comfortably longer than the filter window.`,
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:        "older-than",
				Usage:       "remove records older than this duration",
				Required:    true,
				Destination: &cmd.olderThan,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *PruneCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if cmd.olderThan <= 0 {
		return fmt.Errorf("--older-than must be a positive duration")
	}

	cutoff := time.Now().Add(-cmd.olderThan)

	if !cmd.yes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Remove records older than %s?", cmd.olderThan)).
			Description("Pruned tasks may be duplicated again if they return to the recency window.").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			p.Infof("Aborted")
			return nil
		}
	}

	removed, err := cmd.flags.Store().Prune(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("prune state file: %w", err)
	}

	if removed == 0 {
		p.Infof("Nothing to prune")
		return nil
	}

	p.Successf("Removed %d record(s)", removed)

	return nil
}
