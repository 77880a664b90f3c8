package plan

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Timestamp formats t as the YYYY-MM-DD stamp used in comments.
func Timestamp(t time.Time) string {
	return t.Format(time.DateOnly)
}

// AddTask inserts a planned task with the given text at the top of the
// section whose header is at sectionLine, below its description if any.
func AddTask(doc *Document, sectionLine int, text string) (Change, error) {
	if _, err := SectionAtLine(doc, sectionLine); err != nil {
		return Change{}, err
	}

	if strings.TrimSpace(text) == "" {
		return Change{}, ErrEmptyTaskText
	}

	insert := SectionInsertLine(doc, sectionLine)
	taskText := StatusPlanned.Literal() + " " + text

	return Change{Edits: []Edit{insertLines(doc, insert, "- "+taskText+doc.EOL())}}, nil
}

// MoveTask moves the block of the task at taskLine to the top of the
// section whose header is at sectionLine.
//
// The block is deleted first, so an insertion point below the block is
// shifted up by the block's length.
func MoveTask(doc *Document, taskLine, sectionLine int) (Change, error) {
	if _, err := SectionAtLine(doc, sectionLine); err != nil {
		return Change{}, err
	}

	block, ok := ExtractBlock(doc, taskLine)
	if !ok {
		return Change{}, ErrNoTaskBlock
	}

	return relocate(doc, block, block.Text, SectionInsertLine(doc, sectionLine))
}

// DeleteTask removes the block of the task at taskLine.
func DeleteTask(doc *Document, taskLine int) (Change, error) {
	block, ok := ExtractBlock(doc, taskLine)
	if !ok {
		return Change{}, ErrNoTaskBlock
	}

	return Change{Edits: []Edit{deleteLines(block.StartLine, block.EndLine)}}, nil
}

// ChangeStatus rewrites the bracket of the task at taskLine, keeping the
// text around it. Changing to done is a [MoveToDone] instead.
func ChangeStatus(doc *Document, taskLine int, status Status, now time.Time, opts Options) (Change, error) {
	if status == StatusDone {
		change, _, err := MoveToDone(doc, taskLine, now, opts)

		return change, err
	}

	if status == StatusInvalid {
		return Change{}, fmt.Errorf("%w: cannot set an invalid status", ErrInvalidStatus)
	}

	if err := checkLine(doc, taskLine); err != nil {
		return Change{}, err
	}

	raw := doc.LineAt(taskLine)

	updated, ok := withStatus(raw, status)
	if !ok {
		return Change{}, ErrNotTaskLine
	}

	return Change{Edits: []Edit{Replace(
		Position{Line: taskLine},
		Position{Line: taskLine, Col: len(raw)},
		updated,
	)}}, nil
}

// MoveToDone marks the task at taskLine done, stamps it with a
// "completed @YYYY-MM-DD" comment as the block's second line and moves the
// block into the Done section.
//
// Without a Done section the block goes where [FindDoneSection] points; the
// returned location tells the caller whether the section exists.
func MoveToDone(doc *Document, taskLine int, now time.Time, opts Options) (Change, DoneLocation, error) {
	if err := checkLine(doc, taskLine); err != nil {
		return Change{}, DoneLocation{}, err
	}

	block, ok := ExtractBlock(doc, taskLine)
	if !ok {
		return Change{}, DoneLocation{}, ErrNoTaskBlock
	}

	raw := doc.LineAt(taskLine)

	updated, ok := withStatus(raw, StatusDone)
	if !ok {
		return Change{}, DoneLocation{}, ErrNotTaskLine
	}

	indent := leadingSpacePattern.FindString(raw) + opts.indentUnit()
	stamp := indent + "> completed @" + Timestamp(now)

	lines := strings.Split(block.Text, doc.EOL())
	lines[0] = updated
	lines = slices.Insert(lines, 1, stamp)

	done := FindDoneSection(doc)

	change, err := relocate(doc, block, strings.Join(lines, doc.EOL()), done.InsertLine)
	if err != nil {
		return Change{}, DoneLocation{}, err
	}

	return change, done, nil
}

// relocate deletes block and inserts text at insertLine, given in the
// coordinates of doc before the deletion.
func relocate(doc *Document, block Block, text string, insertLine int) (Change, error) {
	del := deleteLines(block.StartLine, block.EndLine)

	switch {
	case insertLine > block.EndLine:
		insertLine -= block.Len()
	case insertLine > block.StartLine:
		insertLine = block.StartLine
	}

	afterDelete, err := doc.Apply(Change{Edits: []Edit{del}})
	if err != nil {
		return Change{}, err
	}

	return Change{Edits: []Edit{del, insertLines(afterDelete, insertLine, text)}}, nil
}

// withStatus replaces the bracket of a task line with status's literal.
func withStatus(raw string, status Status) (string, bool) {
	m := statusLinePattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}

	return m[1] + status.Literal() + m[3], true
}

// SectionAtLine returns the section whose header is at line.
func SectionAtLine(doc *Document, line int) (Section, error) {
	if err := checkLine(doc, line); err != nil {
		return Section{}, err
	}

	l := Classify(line, doc.LineAt(line))
	if l.Kind != KindSection {
		return Section{}, fmt.Errorf("%w: line %d", ErrNotSectionLine, line+1)
	}

	return Section{Name: l.Text, Line: line}, nil
}

// TaskAtLine returns the classified task line at line.
func TaskAtLine(doc *Document, line int) (Line, error) {
	if err := checkLine(doc, line); err != nil {
		return Line{}, err
	}

	l := Classify(line, doc.LineAt(line))
	if l.Kind != KindTask {
		return Line{}, fmt.Errorf("%w: line %d", ErrNotTaskLine, line+1)
	}

	return l, nil
}

func checkLine(doc *Document, line int) error {
	if line < 0 || line >= doc.LineCount() {
		return fmt.Errorf("%w: %d (document has %d lines)", ErrLineOutOfRange, line+1, doc.LineCount())
	}

	return nil
}
