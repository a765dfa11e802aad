package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/recur/internal/printer"
	"github.com/hay-kot/recur/internal/recur"
)

type WatchCmd struct {
	flags *Flags

	// flags
	interval time.Duration
}

// NewWatchCmd creates a new watch command
func NewWatchCmd(flags *Flags) *WatchCmd {
	return &WatchCmd{flags: flags}
}

// Register adds the watch command to the application
func (cmd *WatchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "watch",
		Usage:     "Run duplication passes on an interval",
		UsageText: "recur watch [--interval 5m]",
		Description: `Runs a pass immediately and then repeats on a fixed interval until
interrupted. Passes run strictly one at a time; a failed pass is logged
and retried on the next tick.`,
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:        "interval",
				Aliases:     []string{"i"},
				Usage:       "time between passes (defaults to poll_interval from config)",
				Destination: &cmd.interval,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *WatchCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	interval := cmd.interval
	if interval <= 0 {
		interval = cmd.flags.Config.PollInterval.Std()
	}

	engine, err := cmd.flags.Engine(false)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p.Infof("Watching for completed tasks every %s (ctrl-c to stop)", interval)

	engine.Watch(ctx, interval, func(report recur.Report, err error) {
		switch {
		case err != nil:
			p.Errorf("Pass failed: %v", err)
		case report.Duplicated > 0:
			p.Successf("Duplicated %d task(s) (%s)", report.Duplicated, report)
		}
	})

	p.Infof("Stopped")

	return nil
}
