package cli

import (
	"context"

	"github.com/calvinalkan/mdplan/internal/actions"
	"github.com/calvinalkan/mdplan/internal/config"

	flag "github.com/spf13/pflag"
)

// DoneCmd returns the done command.
func DoneCmd(cfg *config.Config, svc *actions.Service) *Command {
	return &Command{
		Flags: flag.NewFlagSet("done", flag.ContinueOnError),
		Usage: "done <file> <task-line>",
		Short: "Complete a task",
		Long: `Mark the task on <task-line> done, stamp it with today's date and move it
to the Done section.

The Done section is never created; without one the task goes below the
first section header and a warning is printed.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			path, line, err := fileAndLine(args, "task line")
			if err != nil {
				return err
			}

			buf, err := openBuffer(cfg, path)
			if err != nil {
				return err
			}

			res, err := svc.MoveToDone(buf, line)

			return finishAction(io, res, err, "Completed task")
		},
	}
}
