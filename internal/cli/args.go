package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/calvinalkan/mdplan/internal/actions"
	"github.com/calvinalkan/mdplan/internal/config"
	"github.com/calvinalkan/mdplan/internal/host"
	"github.com/calvinalkan/mdplan/internal/plan"
)

// fileAndLine parses "<file> <line>" arguments. The line is 1-based on the
// command line and returned 0-based.
func fileAndLine(args []string, what string) (string, int, error) {
	if len(args) == 0 {
		return "", 0, errFileRequired
	}

	if len(args) < 2 {
		return "", 0, fmt.Errorf("%w: %s", errLineRequired, what)
	}

	if len(args) > 2 {
		return "", 0, fmt.Errorf("%w: %v", errTooManyArgs, args[2:])
	}

	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 {
		return "", 0, fmt.Errorf("%w: %s", errInvalidLine, args[1])
	}

	return args[0], n - 1, nil
}

func openBuffer(cfg *config.Config, path string) (*host.Buffer, error) {
	return host.Open(cfg.Resolve(path), cfg.IsMarkdown)
}

// finishAction prints msg for a successful action and reports a dismissed
// prompt as a notice.
func finishAction(o *IO, res actions.Result, err error, msg string) error {
	if errors.Is(err, actions.ErrCancelled) {
		o.Println("Cancelled, nothing changed")

		return nil
	}

	if err != nil {
		return err
	}

	if res.NoDoneSection() {
		o.Warn("no Done section", fmt.Sprintf("task placed at line %d; add a \"## Done\" header", res.Done.InsertLine+1))
	}

	o.Println(msg)

	return nil
}

// snapshotMDPlan reads the buffer and fails for documents without the
// marker.
func snapshotMDPlan(buf *host.Buffer, path string) (*plan.Document, error) {
	doc, err := buf.Snapshot()
	if err != nil {
		return nil, err
	}

	if !plan.IsMDPlanDocument(doc) {
		return nil, fmt.Errorf("%w: %s", plan.ErrNotMDPlan, path)
	}

	return doc, nil
}
