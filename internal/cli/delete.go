package cli

import (
	"context"

	"github.com/calvinalkan/mdplan/internal/actions"
	"github.com/calvinalkan/mdplan/internal/config"

	flag "github.com/spf13/pflag"
)

// DeleteCmd returns the delete command.
func DeleteCmd(cfg *config.Config, svc *actions.Service) *Command {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.BoolP("yes", "y", false, "Do not ask for confirmation")

	return &Command{
		Flags: fs,
		Usage: "delete <file> <task-line> [--yes]",
		Short: "Delete a task and its details",
		Exec: func(_ context.Context, io *IO, args []string) error {
			path, line, err := fileAndLine(args, "task line")
			if err != nil {
				return err
			}

			buf, err := openBuffer(cfg, path)
			if err != nil {
				return err
			}

			yes, _ := fs.GetBool("yes")
			res, err := svc.DeleteTask(buf, line, yes)

			return finishAction(io, res, err, "Deleted task")
		},
	}
}
