package cli

import (
	"context"

	"github.com/calvinalkan/mdplan/internal/actions"
	"github.com/calvinalkan/mdplan/internal/config"

	flag "github.com/spf13/pflag"
)

// ActCmd returns the act command.
func ActCmd(cfg *config.Config, svc *actions.Service) *Command {
	return &Command{
		Flags: flag.NewFlagSet("act", flag.ContinueOnError),
		Usage: "act <file> <task-line>",
		Short: "Pick an action for a task",
		Long:  "Ask which action to run on the task on <task-line>: change status, move, or add details.",
		Exec: func(_ context.Context, io *IO, args []string) error {
			path, line, err := fileAndLine(args, "task line")
			if err != nil {
				return err
			}

			buf, err := openBuffer(cfg, path)
			if err != nil {
				return err
			}

			res, err := svc.TaskActions(buf, line)

			return finishAction(io, res, err, "Done")
		},
	}
}
