package cli

import (
	"context"

	"github.com/calvinalkan/mdplan/internal/actions"
	"github.com/calvinalkan/mdplan/internal/config"

	flag "github.com/spf13/pflag"
)

// StatusCmd returns the status command.
func StatusCmd(cfg *config.Config, svc *actions.Service) *Command {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.StringP("set", "s", "", "New status: planned|wip|done|blocked (asked for when omitted)")

	return &Command{
		Flags: fs,
		Usage: "status <file> <task-line> [--set S]",
		Short: "Change a task's status",
		Long: `Change the status of the task on <task-line>.

Setting done moves the task to the Done section with a completion stamp.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			path, line, err := fileAndLine(args, "task line")
			if err != nil {
				return err
			}

			buf, err := openBuffer(cfg, path)
			if err != nil {
				return err
			}

			status, _ := fs.GetString("set")
			res, err := svc.ChangeStatus(buf, line, status)

			return finishAction(io, res, err, "Changed status")
		},
	}
}
