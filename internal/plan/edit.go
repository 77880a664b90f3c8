package plan

import (
	"fmt"
	"strings"
)

// Position addresses a point in a document. Col is a byte offset into the
// line's text.
type Position struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// Edit replaces the text between Start and End with Text.
// Start == End is an insertion; Text == "" is a deletion.
type Edit struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
	Text  string   `json:"text"`
}

// Insert returns an edit inserting text at pos.
func Insert(pos Position, text string) Edit {
	return Edit{Start: pos, End: pos, Text: text}
}

// Delete returns an edit removing the text between start and end.
func Delete(start, end Position) Edit {
	return Edit{Start: start, End: end}
}

// Replace returns an edit replacing the text between start and end.
func Replace(start, end Position, text string) Edit {
	return Edit{Start: start, End: end, Text: text}
}

// Change is an ordered list of edits applied as a single unit.
//
// Edits apply in order and each edit's positions refer to the document as
// left by the edits before it. A delete followed by an insert below the
// deleted range must therefore use the shifted line.
type Change struct {
	Edits []Edit

	// Caret is where focus should go after the change, in the coordinates
	// of the resulting document. Nil when the change has no preference.
	Caret *Position
}

// Empty reports whether the change has no edits.
func (c Change) Empty() bool {
	return len(c.Edits) == 0
}

// Apply returns a new document with all edits of c applied, or an error if
// an edit's start lies after its end. The receiver is not modified.
//
// Positions are clamped the way editors do it: a line past the end means
// the end of the text, and a column past the end of a line means the end
// of that line.
func (d *Document) Apply(c Change) (*Document, error) {
	text := d.Text()

	for i, edit := range c.Edits {
		cur := &Document{languageID: d.languageID, lines: splitLines(text), eol: d.eol}
		text = cur.Text()

		start := cur.offsetAt(edit.Start)
		end := cur.offsetAt(edit.End)

		if end < start {
			return nil, fmt.Errorf("%w: edit %d ends before it starts (%d:%d > %d:%d)",
				ErrInvalidEdit, i, edit.Start.Line, edit.Start.Col, edit.End.Line, edit.End.Col)
		}

		text = text[:start] + edit.Text + text[end:]
	}

	next := &Document{languageID: d.languageID, lines: splitLines(text), eol: d.eol}
	next.source = next.Text()

	return next, nil
}

// offsetAt converts a clamped position to a byte offset into Text().
func (d *Document) offsetAt(pos Position) int {
	if pos.Line < 0 {
		return 0
	}

	if pos.Line >= len(d.lines) {
		return len(d.Text())
	}

	offset := 0
	for i := range pos.Line {
		offset += len(d.lines[i]) + len(d.eol)
	}

	col := max(pos.Col, 0)
	col = min(col, len(d.lines[pos.Line]))

	return offset + col
}

// PositionAt converts a byte offset into Text() to a position.
func (d *Document) PositionAt(offset int) Position {
	offset = max(offset, 0)

	for i, line := range d.lines {
		if offset <= len(line) {
			return Position{Line: i, Col: offset}
		}

		offset -= len(line) + len(d.eol)
		if offset < 0 {
			return Position{Line: i, Col: len(line)}
		}
	}

	last := len(d.lines) - 1

	return Position{Line: last, Col: len(d.lines[last])}
}

// insertLines returns an edit inserting text, which ends in the document's
// separator, so that it starts at line. When line is past the last line the
// text is appended after a separator instead of being glued to the last line.
func insertLines(doc *Document, line int, text string) Edit {
	if line < doc.LineCount() {
		return Insert(Position{Line: line}, text)
	}

	last := doc.LineCount() - 1
	end := Position{Line: last, Col: len(doc.LineAt(last))}

	return Insert(end, doc.eol+strings.TrimSuffix(text, doc.eol))
}

// deleteLines returns an edit removing lines start through end inclusive,
// including the separator that follows end.
func deleteLines(start, end int) Edit {
	return Delete(Position{Line: start}, Position{Line: end + 1})
}
