package plan

import (
	"fmt"
	"regexp"
	"strings"
)

// newSectionHeader is inserted above tasks that have no section.
const newSectionHeader = "## New Section"

var indentedTaskPattern = regexp.MustCompile(`^\s*(-\s+\[.*)`)

// Fix is a quick fix for one issue.
type Fix struct {
	Title     string
	Change    Change
	Preferred bool
}

// QuickFixes returns the fixes available for issue, computed against doc.
// Missing titles have none.
func QuickFixes(doc *Document, issue Issue, opts Options) []Fix {
	raw := doc.LineAt(issue.Line)

	switch issue.Kind {
	case IssueInvalidStatus:
		if issue.SuggestedFix == "" {
			return nil
		}

		return []Fix{{
			Title: "Replace with " + issue.SuggestedFix,
			Change: Change{Edits: []Edit{Replace(
				Position{Line: issue.Line, Col: issue.StartCol},
				Position{Line: issue.Line, Col: issue.EndCol},
				issue.SuggestedFix,
			)}},
			Preferred: true,
		}}

	case IssueTaskOutsideSection:
		return []Fix{{
			Title:  "Add section header above",
			Change: Change{Edits: []Edit{Insert(Position{Line: issue.Line}, newSectionHeader+doc.EOL())}},
		}}

	case IssueExcessiveNesting:
		m := indentedTaskPattern.FindStringSubmatch(raw)
		if m == nil {
			return nil
		}

		indent := strings.Repeat(opts.indentUnit(), max(opts.MaxNestingLevel, 0))

		return []Fix{{
			Title:  fmt.Sprintf("Reduce indentation to %d level", opts.MaxNestingLevel),
			Change: replaceLine(issue.Line, raw, indent+m[1]),
		}}

	case IssueCommentPlacement:
		return []Fix{{
			Title:  "Indent comment under task",
			Change: replaceLine(issue.Line, raw, opts.indentUnit()+strings.TrimLeft(raw, " \t")),
		}}

	case IssueMissingTitle:
	}

	return nil
}

// FixAll repeatedly applies the first fix of the first fixable issue and
// re-validates, until no fixable issue is left. It returns the fixed
// document and the titles of the fixes applied, in order.
func FixAll(doc *Document, opts Options) (*Document, []string, error) {
	var applied []string

	// Every fix removes the issue it targets; the bound only guards
	// against a fix that would reintroduce one.
	limit := 2*doc.LineCount() + 8

	for range limit {
		fix, ok := firstFix(doc, opts)
		if !ok {
			return doc, applied, nil
		}

		next, err := doc.Apply(fix.Change)
		if err != nil {
			return nil, nil, fmt.Errorf("applying %q: %w", fix.Title, err)
		}

		doc = next
		applied = append(applied, fix.Title)
	}

	return doc, applied, nil
}

func firstFix(doc *Document, opts Options) (Fix, bool) {
	for _, issue := range Validate(doc, opts) {
		if fixes := QuickFixes(doc, issue, opts); len(fixes) > 0 {
			return fixes[0], true
		}
	}

	return Fix{}, false
}

func replaceLine(line int, raw, text string) Change {
	return Change{Edits: []Edit{Replace(Position{Line: line}, Position{Line: line, Col: len(raw)}, text)}}
}
