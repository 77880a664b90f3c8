package cli

import (
	"context"

	"github.com/calvinalkan/mdplan/internal/actions"
	"github.com/calvinalkan/mdplan/internal/config"

	flag "github.com/spf13/pflag"
)

// MoveCmd returns the move command.
func MoveCmd(cfg *config.Config, svc *actions.Service) *Command {
	fs := flag.NewFlagSet("move", flag.ContinueOnError)
	fs.String("to", "", "Destination section name or header line (asked for when omitted)")

	return &Command{
		Flags: fs,
		Usage: "move <file> <task-line> [--to S]",
		Short: "Move a task to another section",
		Long: `Move the task on <task-line>, with its subtasks and comments, to the top
of another section.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			path, line, err := fileAndLine(args, "task line")
			if err != nil {
				return err
			}

			buf, err := openBuffer(cfg, path)
			if err != nil {
				return err
			}

			to, _ := fs.GetString("to")
			res, err := svc.MoveTask(buf, line, to)

			return finishAction(io, res, err, "Moved task")
		},
	}
}
