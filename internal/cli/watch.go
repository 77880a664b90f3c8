package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/calvinalkan/mdplan/internal/config"
	"github.com/calvinalkan/mdplan/internal/host"
	"github.com/calvinalkan/mdplan/internal/plan"

	flag "github.com/spf13/pflag"
)

// WatchCmd returns the watch command.
func WatchCmd(cfg *config.Config, logger *log.Logger) *Command {
	return &Command{
		Flags: flag.NewFlagSet("watch", flag.ContinueOnError),
		Usage: "watch <file>...",
		Short: "Re-check files on every change",
		Long: `Check the files, then check each one again every time it changes,
until interrupted.`,
		Exec: func(ctx context.Context, io *IO, args []string) error {
			return execWatch(ctx, io, cfg, logger, args)
		},
	}
}

func execWatch(ctx context.Context, io *IO, cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) == 0 {
		return errFileRequired
	}

	buffers := make(map[string]*host.Buffer, len(args))
	names := make(map[string]string, len(args))
	paths := make([]string, 0, len(args))

	for _, arg := range args {
		buf, err := openBuffer(cfg, arg)
		if err != nil {
			return err
		}

		buffers[buf.Path()] = buf
		names[buf.Path()] = arg
		paths = append(paths, buf.Path())
	}

	current := ""
	diagnostics := &host.Diagnostics{
		Options: cfg.PlanOptions(),
		Publish: func(doc *plan.Document, issues []plan.Issue) {
			if !plan.IsMDPlanDocument(doc) {
				io.Printf("%s: not an MDPlan document\n", current)

				return
			}

			io.Printf("%s: %d issue(s)\n", current, len(issues))

			for _, issue := range issues {
				io.Println(newReport(current, issue).String())
			}
		},
	}

	check := func(path string) {
		buf, ok := buffers[path]
		if !ok {
			return
		}

		doc, err := buf.Snapshot()
		if err != nil {
			logger.Warn("cannot read file", "path", names[path], "err", err)

			return
		}

		current = names[path]
		diagnostics.OnDocumentChanged(doc)
	}

	watcher, err := host.NewWatcher(paths, check, logger)
	if err != nil {
		return fmt.Errorf("watching: %w", err)
	}

	for _, path := range paths {
		check(path)
	}

	return watcher.Run(ctx)
}
