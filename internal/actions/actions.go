// Package actions is the mdplan command surface: structural edits that ask
// the user for missing choices and apply the result as one atomic change.
//
// Every action checks its preconditions against a fresh snapshot before
// asking anything, and leaves the document untouched when a check fails or
// a prompt is dismissed.
package actions

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/calvinalkan/mdplan/internal/host"
	"github.com/calvinalkan/mdplan/internal/plan"
)

// Target is a document that can be snapshotted and edited atomically.
// [host.Buffer] is the file-backed implementation.
type Target interface {
	Snapshot() (*plan.Document, error)
	Apply(base *plan.Document, c plan.Change) (*plan.Document, error)
}

// Service runs actions against targets.
type Service struct {
	Prompter host.Prompter
	Options  plan.Options
	Now      func() time.Time
	Logger   *log.Logger
}

// Result describes an applied action.
type Result struct {
	// Doc is the document after the change.
	Doc *plan.Document

	// Change is what was applied.
	Change plan.Change

	// Done is set by actions that moved a task to the Done section.
	Done *plan.DoneLocation
}

// NoDoneSection reports whether a task was moved to done although the
// document has no Done section.
func (r Result) NoDoneSection() bool {
	return r.Done != nil && !r.Done.Exists()
}

// AddTask adds a planned task to the top of the section at sectionLine.
// An empty text asks for one; an empty answer cancels.
func (s *Service) AddTask(t Target, sectionLine int, text string) (Result, error) {
	doc, err := t.Snapshot()
	if err != nil {
		return Result{}, err
	}

	section, err := plan.SectionAtLine(doc, sectionLine)
	if err != nil {
		return Result{}, err
	}

	if strings.TrimSpace(text) == "" {
		answer, ok, askErr := s.Prompter.Input(fmt.Sprintf("Enter task for section %q", section.Name), "")
		if askErr != nil {
			return Result{}, askErr
		}

		if !ok || strings.TrimSpace(answer) == "" {
			return Result{}, ErrCancelled
		}

		text = answer
	}

	change, err := plan.AddTask(doc, sectionLine, text)
	if err != nil {
		return Result{}, err
	}

	return s.apply(t, doc, change, "add-task")
}

// MoveTask moves the block of the task at taskLine to the top of another
// section. dest is a section name or a 1-based header line; empty asks.
func (s *Service) MoveTask(t Target, taskLine int, dest string) (Result, error) {
	doc, err := t.Snapshot()
	if err != nil {
		return Result{}, err
	}

	sections := plan.FindSections(doc)
	if len(sections) == 0 {
		return Result{}, plan.ErrNoSections
	}

	if _, ok := plan.ExtractBlock(doc, taskLine); !ok {
		return Result{}, plan.ErrNoTaskBlock
	}

	var section plan.Section

	if dest == "" {
		choices := make([]host.Choice, 0, len(sections))
		for _, sec := range sections {
			choices = append(choices, host.Choice{Label: sec.Name, Description: fmt.Sprintf("Line %d", sec.Line+1)})
		}

		index, ok, askErr := s.Prompter.Select("Select destination section", choices)
		if askErr != nil {
			return Result{}, askErr
		}

		if !ok {
			return Result{}, ErrCancelled
		}

		section = sections[index]
	} else {
		section, err = resolveSection(doc, sections, dest)
		if err != nil {
			return Result{}, err
		}
	}

	change, err := plan.MoveTask(doc, taskLine, section.Line)
	if err != nil {
		return Result{}, err
	}

	return s.apply(t, doc, change, "move-task")
}

// resolveSection finds a section by 1-based header line or by name,
// ignoring case.
func resolveSection(doc *plan.Document, sections []plan.Section, dest string) (plan.Section, error) {
	if n, err := strconv.Atoi(dest); err == nil {
		return plan.SectionAtLine(doc, n-1)
	}

	model := plan.Model{Sections: sections}

	section, ok := model.FindSection(dest)
	if !ok {
		return plan.Section{}, fmt.Errorf("%w: %q", ErrUnknownSection, dest)
	}

	return section, nil
}

// ChangeStatus sets the status of the task at taskLine. status is a status
// name ("planned", "wip", "done", "blocked"); empty asks. Done moves the
// task to the Done section.
func (s *Service) ChangeStatus(t Target, taskLine int, status string) (Result, error) {
	doc, err := t.Snapshot()
	if err != nil {
		return Result{}, err
	}

	if _, err := plan.TaskAtLine(doc, taskLine); err != nil {
		return Result{}, err
	}

	var next plan.Status

	if status == "" {
		choices := make([]host.Choice, 0, len(plan.ValidStatuses))
		for _, st := range plan.ValidStatuses {
			choices = append(choices, host.Choice{Label: st.Label(), Description: st.Description()})
		}

		index, ok, askErr := s.Prompter.Select("Select new status", choices)
		if askErr != nil {
			return Result{}, askErr
		}

		if !ok {
			return Result{}, ErrCancelled
		}

		next = plan.ValidStatuses[index]
	} else {
		next, err = plan.StatusFromName(status)
		if err != nil {
			return Result{}, err
		}
	}

	if next == plan.StatusDone {
		return s.moveToDone(t, doc, taskLine)
	}

	change, err := plan.ChangeStatus(doc, taskLine, next, s.Now(), s.Options)
	if err != nil {
		return Result{}, err
	}

	return s.apply(t, doc, change, "change-status")
}

// MoveToDone marks the task at taskLine done and moves it to the Done
// section. Check [Result.NoDoneSection]: the Done header is never created.
func (s *Service) MoveToDone(t Target, taskLine int) (Result, error) {
	doc, err := t.Snapshot()
	if err != nil {
		return Result{}, err
	}

	return s.moveToDone(t, doc, taskLine)
}

func (s *Service) moveToDone(t Target, doc *plan.Document, taskLine int) (Result, error) {
	change, loc, err := plan.MoveToDone(doc, taskLine, s.Now(), s.Options)
	if err != nil {
		return Result{}, err
	}

	if !loc.Exists() {
		s.Logger.Debug("no done section", "insert_line", loc.InsertLine+1)
	}

	res, err := s.apply(t, doc, change, "move-to-done")
	if err != nil {
		return Result{}, err
	}

	res.Done = &loc

	return res, nil
}

// AddTaskDetails inserts a detail template below the task at taskLine.
// kind is a detail kind name; empty asks.
func (s *Service) AddTaskDetails(t Target, taskLine int, kind string) (Result, error) {
	doc, err := t.Snapshot()
	if err != nil {
		return Result{}, err
	}

	if _, err := plan.TaskAtLine(doc, taskLine); err != nil {
		return Result{}, err
	}

	var detail plan.DetailKind

	if kind == "" {
		choices := make([]host.Choice, 0, len(plan.DetailKinds))
		for _, k := range plan.DetailKinds {
			choices = append(choices, host.Choice{Label: k.Label(), Description: k.Description()})
		}

		index, ok, askErr := s.Prompter.Select("Select detail type to add", choices)
		if askErr != nil {
			return Result{}, askErr
		}

		if !ok {
			return Result{}, ErrCancelled
		}

		detail = plan.DetailKinds[index]
	} else {
		detail, err = plan.ParseDetailKind(kind)
		if err != nil {
			return Result{}, err
		}
	}

	change, err := plan.AddTaskDetail(doc, taskLine, detail, s.Now(), s.Options)
	if err != nil {
		return Result{}, err
	}

	return s.apply(t, doc, change, "add-task-details")
}

// DeleteTask removes the block of the task at taskLine after confirmation,
// unless confirmed is already true.
func (s *Service) DeleteTask(t Target, taskLine int, confirmed bool) (Result, error) {
	doc, err := t.Snapshot()
	if err != nil {
		return Result{}, err
	}

	if _, ok := plan.ExtractBlock(doc, taskLine); !ok {
		return Result{}, plan.ErrNoTaskBlock
	}

	if !confirmed {
		question := fmt.Sprintf("Delete task: %q?", strings.TrimSpace(doc.LineAt(taskLine)))

		yes, askErr := s.Prompter.Confirm(question)
		if askErr != nil {
			return Result{}, askErr
		}

		if !yes {
			return Result{}, ErrCancelled
		}
	}

	change, err := plan.DeleteTask(doc, taskLine)
	if err != nil {
		return Result{}, err
	}

	return s.apply(t, doc, change, "delete-task")
}

// FixAll applies quick fixes until no fixable issue is left and writes the
// result as one change. It returns the titles of the applied fixes.
func (s *Service) FixAll(t Target) (Result, []string, error) {
	doc, err := t.Snapshot()
	if err != nil {
		return Result{}, nil, err
	}

	fixed, applied, err := plan.FixAll(doc, s.Options)
	if err != nil {
		return Result{}, nil, err
	}

	if len(applied) == 0 {
		return Result{Doc: doc}, nil, nil
	}

	change := plan.Change{Edits: []plan.Edit{plan.Replace(
		plan.Position{},
		plan.Position{Line: doc.LineCount()},
		fixed.Text(),
	)}}

	res, err := s.apply(t, doc, change, "fix-all")
	if err != nil {
		return Result{}, nil, err
	}

	return res, applied, nil
}

// Task actions offered by [Service.TaskActions], in pick-list order.
var taskActions = []host.Choice{
	{Label: "Change Status", Description: "Update task status"},
	{Label: "Move Task", Description: "Move to different section"},
	{Label: "Add Details", Description: "Add subtask, comment, or code block"},
}

// TaskActions asks which action to run on the top-level task at taskLine
// and runs it.
func (s *Service) TaskActions(t Target, taskLine int) (Result, error) {
	doc, err := t.Snapshot()
	if err != nil {
		return Result{}, err
	}

	if _, err := plan.TaskAtLine(doc, taskLine); err != nil {
		return Result{}, err
	}

	index, ok, err := s.Prompter.Select("Select task action", taskActions)
	if err != nil {
		return Result{}, err
	}

	if !ok {
		return Result{}, ErrCancelled
	}

	switch index {
	case 0:
		return s.ChangeStatus(t, taskLine, "")
	case 1:
		return s.MoveTask(t, taskLine, "")
	case 2:
		return s.AddTaskDetails(t, taskLine, "")
	default:
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownAction, index)
	}
}

func (s *Service) apply(t Target, base *plan.Document, change plan.Change, action string) (Result, error) {
	next, err := t.Apply(base, change)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", action, err)
	}

	s.Logger.Debug("applied", "action", action, "edits", len(change.Edits))

	return Result{Doc: next, Change: change}, nil
}
