package plan

import (
	"fmt"
	"strings"
)

// Severity grades a validation issue.
type Severity int

// Severities.
const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}

	return "error"
}

// IssueKind identifies the rule that produced an issue.
type IssueKind int

// Issue kinds, one per validation rule.
const (
	IssueMissingTitle IssueKind = iota
	IssueTaskOutsideSection
	IssueInvalidStatus
	IssueExcessiveNesting
	IssueCommentPlacement
)

func (k IssueKind) String() string {
	switch k {
	case IssueMissingTitle:
		return "missing-title"
	case IssueTaskOutsideSection:
		return "task-outside-section"
	case IssueInvalidStatus:
		return "invalid-status"
	case IssueExcessiveNesting:
		return "excessive-nesting"
	case IssueCommentPlacement:
		return "comment-placement"
	default:
		return "unknown"
	}
}

// Issue messages.
const (
	msgMissingTitle       = "MDPlan files should start with a title (# Title)"
	msgTaskOutsideSection = "Tasks must be under a section (## Section Name)"
	msgCommentPlacement   = "Comments should be indented under a task or follow a section header"
)

// Issue is a structural violation. The range is on a single line:
// [StartCol, EndCol) of Line.
type Issue struct {
	Kind     IssueKind
	Line     int
	StartCol int
	EndCol   int
	Message  string
	Severity Severity

	// SuggestedFix is the replacement text for the range, if any.
	SuggestedFix string
}

// none marks running state that has not been seen yet.
const none = -1

// foldState is the running state threaded through the validation pass.
type foldState struct {
	lastSectionLine int
	titleLine       int
}

// Validate checks doc against the structural rules and returns the issues
// in document order. It does not check the MDPlan marker; see [Diagnose].
func Validate(doc *Document, opts Options) []Issue {
	var issues []Issue

	state := foldState{lastSectionLine: none, titleLine: none}

	for i := range doc.LineCount() {
		var found []Issue

		state, found = validateLine(state, Classify(i, doc.LineAt(i)), opts)
		issues = append(issues, found...)
	}

	return issues
}

// Diagnose is what a host publishes for a document: nothing for documents
// that are not MDPlan or are blank, the validation issues otherwise.
func Diagnose(doc *Document, opts Options) []Issue {
	if !IsMDPlanDocument(doc) {
		return nil
	}

	if isBlank(doc.Text()) {
		return nil
	}

	return Validate(doc, opts)
}

func validateLine(state foldState, line Line, opts Options) (foldState, []Issue) {
	var issues []Issue

	raw := line.Raw
	lineRange := func(kind IssueKind, sev Severity, msg string) Issue {
		return Issue{Kind: kind, Line: line.Index, StartCol: 0, EndCol: len(raw), Message: msg, Severity: sev}
	}

	if line.Index == 0 && !isBlank(raw) && line.Kind != KindTitle {
		issues = append(issues, lineRange(IssueMissingTitle, SeverityWarning, msgMissingTitle))
	}

	// Any "# " heading moves the title, not only line 0.
	if line.Kind == KindTitle {
		state.titleLine = line.Index
	}

	switch line.Kind {
	case KindSection:
		state.lastSectionLine = line.Index

		return state, issues

	case KindTask:
		if state.lastSectionLine == none {
			issues = append(issues, lineRange(IssueTaskOutsideSection, SeverityError, msgTaskOutsideSection))
		}

		if line.Status == StatusInvalid {
			start := strings.IndexByte(raw, '[')
			end := start + strings.IndexByte(raw[start:], ']') + 1

			issues = append(issues, Issue{
				Kind:     IssueInvalidStatus,
				Line:     line.Index,
				StartCol: start,
				EndCol:   end,
				Message: fmt.Sprintf("Invalid task status: [%s]. Valid statuses: [ ], [wip], [x], [blocked]",
					line.StatusRaw),
				Severity:     SeverityError,
				SuggestedFix: GuessStatus(line.StatusRaw).Literal(),
			})
		}

		if opts.Level(line.Indent) > opts.MaxNestingLevel {
			issues = append(issues, Issue{
				Kind:     IssueExcessiveNesting,
				Line:     line.Index,
				StartCol: 0,
				EndCol:   len(line.Indent),
				Message:  fmt.Sprintf("Tasks can only be nested %d level deep", opts.MaxNestingLevel),
				Severity: SeverityError,
			})
		}

	case KindComment:
		if opts.Level(line.Indent) != 0 {
			break
		}

		underTitle := state.titleLine != none && line.Index > state.titleLine && state.lastSectionLine == none
		afterSection := state.lastSectionLine != none && state.lastSectionLine == line.Index-1

		if !underTitle && !afterSection {
			issues = append(issues, lineRange(IssueCommentPlacement, SeverityWarning, msgCommentPlacement))
		}
	}

	return state, issues
}
