package cli

import (
	"context"
	"fmt"

	"github.com/calvinalkan/mdplan/internal/actions"
	"github.com/calvinalkan/mdplan/internal/config"
	"github.com/calvinalkan/mdplan/internal/plan"

	flag "github.com/spf13/pflag"
)

// FixCmd returns the fix command.
func FixCmd(cfg *config.Config, svc *actions.Service) *Command {
	fs := flag.NewFlagSet("fix", flag.ContinueOnError)
	fs.BoolP("dry-run", "n", false, "Print the fixed document instead of writing it")

	return &Command{
		Flags: fs,
		Usage: "fix [--dry-run] <file>",
		Short: "Apply all quick fixes",
		Long: `Apply quick fixes until no fixable issue is left, then write the file once.

Fixes: replace invalid statuses, add a section header above orphan tasks,
reduce excessive nesting, indent misplaced comments. Issues without a fix
(a missing title) are reported as warnings.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			dryRun, _ := fs.GetBool("dry-run")

			return execFix(io, cfg, svc, args, dryRun)
		},
	}
}

func execFix(io *IO, cfg *config.Config, svc *actions.Service, args []string, dryRun bool) error {
	if len(args) == 0 {
		return errFileRequired
	}

	if len(args) > 1 {
		return fmt.Errorf("%w: %v", errTooManyArgs, args[1:])
	}

	path := args[0]

	buf, err := openBuffer(cfg, path)
	if err != nil {
		return err
	}

	doc, err := snapshotMDPlan(buf, path)
	if err != nil {
		return err
	}

	var (
		fixed   *plan.Document
		applied []string
	)

	if dryRun {
		fixed, applied, err = plan.FixAll(doc, cfg.PlanOptions())
		if err != nil {
			return err
		}

		io.Printf("%s", fixed.Text())
	} else {
		var res actions.Result

		res, applied, err = svc.FixAll(buf)
		if err != nil {
			return err
		}

		fixed = res.Doc

		for _, title := range applied {
			io.Println("Fixed:", title)
		}

		if len(applied) == 0 {
			io.Println("Nothing to fix")
		}
	}

	for _, issue := range plan.Validate(fixed, cfg.PlanOptions()) {
		io.Warn(newReport(path, issue).String(), "no automatic fix, edit by hand")
	}

	return nil
}
