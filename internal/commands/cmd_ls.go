package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/recur/internal/printer"
	"github.com/hay-kot/recur/pkg/iojson"
)

type LsCmd struct {
	flags *Flags

	// flags
	json bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List tasks that have already been duplicated",
		UsageText: "recur ls [--json]",
		Description: `Lists the duplication records from the local state file, newest first.
A task listed here will never be duplicated again.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "emit one JSON object per line",
				Destination: &cmd.json,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	records, err := cmd.flags.Store().List(ctx)
	if err != nil {
		return fmt.Errorf("read state file: %w", err)
	}

	if cmd.json {
		for _, rec := range records {
			if err := iojson.WriteLine(os.Stdout, rec); err != nil {
				return err
			}
		}
		return nil
	}

	if len(records) == 0 {
		printer.Ctx(ctx).Infof("No tasks have been duplicated yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tDUPLICATED\tDUPLICATE ID")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			rec.ID,
			rec.Title,
			rec.DuplicatedAt.Local().Format("2006-01-02 15:04"),
			rec.DuplicateID,
		)
	}

	return w.Flush()
}
