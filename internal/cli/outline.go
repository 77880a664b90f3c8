package cli

import (
	"context"
	"fmt"

	"github.com/calvinalkan/mdplan/internal/config"
	"github.com/calvinalkan/mdplan/internal/plan"

	flag "github.com/spf13/pflag"
)

// OutlineCmd returns the outline command.
func OutlineCmd(cfg *config.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("outline", flag.ContinueOnError),
		Usage: "outline <file>",
		Short: "List sections and top-level tasks",
		Long: `List every section and top-level task with its line number.

Line numbers are what add, move, status, done, detail, delete and act expect.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execOutline(io, cfg, args)
		},
	}
}

func execOutline(io *IO, cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return errFileRequired
	}

	if len(args) > 1 {
		return fmt.Errorf("%w: %v", errTooManyArgs, args[1:])
	}

	buf, err := openBuffer(cfg, args[0])
	if err != nil {
		return err
	}

	doc, err := snapshotMDPlan(buf, args[0])
	if err != nil {
		return err
	}

	for _, lens := range plan.Lenses(doc, cfg.PlanOptions()) {
		switch lens.Kind {
		case plan.LensAddTask:
			io.Printf("%4d  ## %s  [%s]\n", lens.Line+1, lens.Section, lens.Title)
		case plan.LensTaskActions:
			line := plan.Classify(lens.Line, doc.LineAt(lens.Line))
			io.Printf("%4d    [%s] %s  [%s]\n", lens.Line+1, line.StatusRaw, line.Text, lens.Title)
		}
	}

	return nil
}
