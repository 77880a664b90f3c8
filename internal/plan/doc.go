// Package plan implements the MDPlan dialect: a constrained markdown format
// for tracking tasks in plain text files.
//
// Everything in this package is a pure function of a [Document] snapshot.
// The main entry points are:
//   - [Classify]: single-line classification (title, section, task, comment, plain)
//   - [Scan]: document model (classified lines, sections, tasks)
//   - [Validate]: structural issues with severities and suggested fixes
//   - [ExtractBlock]: the full nested extent of a task
//   - [AddTask], [MoveTask], [ChangeStatus], [MoveToDone], [DeleteTask],
//     [AddTaskDetail]: structural edits expressed as a [Change]
//
// A Change never touches the buffer it was computed from. The host applies
// it as one unit (see [Document.Apply]) and re-scans.
package plan

import (
	"regexp"
	"strings"
)

// LanguageMarkdown is the content kind a host reports for markdown files.
const LanguageMarkdown = "markdown"

// lineBreakPattern matches CRLF, LF and a lone CR. Alternation is
// leftmost-first, so CRLF is one break.
var lineBreakPattern = regexp.MustCompile(`\r\n|\n|\r`)

// Document is an immutable snapshot of a text buffer, addressed by line.
//
// Lines never contain a line break. A text ending in a break has a final
// empty line, so "a\nb\n" has three lines.
type Document struct {
	languageID string
	lines      []string
	eol        string
	source     string
}

// NewDocument splits text into lines at every CRLF, LF or CR. The first
// break decides the separator used by Text, so a document with mixed
// breaks is written back with one kind only.
func NewDocument(languageID, text string) *Document {
	eol := "\n"
	if lineBreakPattern.FindString(text) == "\r\n" {
		eol = "\r\n"
	}

	return &Document{
		languageID: languageID,
		lines:      splitLines(text),
		eol:        eol,
		source:     text,
	}
}

func splitLines(text string) []string {
	return lineBreakPattern.Split(text, -1)
}

// LanguageID returns the content kind the host assigned to the document.
func (d *Document) LanguageID() string {
	return d.languageID
}

// LineCount returns the number of lines. It is always at least 1.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// LineAt returns the text of line i without its separator.
// Out of range indexes return "".
func (d *Document) LineAt(i int) string {
	if i < 0 || i >= len(d.lines) {
		return ""
	}

	return d.lines[i]
}

// EOL returns the line separator used by the document.
func (d *Document) EOL() string {
	return d.eol
}

// Text returns the full document text.
func (d *Document) Text() string {
	return strings.Join(d.lines, d.eol)
}

// Source returns the text the document was read from. It differs from
// Text only when the source mixed line breaks.
func (d *Document) Source() string {
	return d.source
}

// Lines returns a copy of all lines.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)

	return out
}
