package plan

import "strings"

// Block is a task line plus all of its nested content. EndLine is
// inclusive. Text is the literal span of the source lines, each followed by
// the document's separator.
type Block struct {
	StartLine int
	EndLine   int
	Text      string
}

// Len returns the number of lines in the block.
func (b Block) Len() int {
	return b.EndLine - b.StartLine + 1
}

// ExtractBlock returns the block of the task at taskLine. It reports false
// when taskLine is not a task.
//
// Starting below the task, lines are taken while they belong to it:
//   - a blank line is taken only if the next non-blank line is indented
//     deeper than the task and is neither a task nor a section
//   - a task at the same indent (a sibling) ends the block
//   - a section ends the block
//   - any other line is taken only if indented deeper than the task
func ExtractBlock(doc *Document, taskLine int) (Block, bool) {
	if taskLine < 0 || taskLine >= doc.LineCount() {
		return Block{}, false
	}

	first := doc.LineAt(taskLine)

	m := taskOpenerPattern.FindStringSubmatch(first)
	if m == nil {
		return Block{}, false
	}

	baseIndent := len(m[1])
	endLine := taskLine
	lines := []string{first}

	for i := taskLine + 1; i < doc.LineCount(); i++ {
		line := doc.LineAt(i)

		if isBlank(line) {
			if !continuesAfterGap(doc, i+1, baseIndent) {
				break
			}

			lines = append(lines, line)
			endLine = i

			continue
		}

		if taskOpenerPattern.MatchString(line) && leadingSpace(line) == baseIndent {
			break
		}

		if sectionPattern.MatchString(line) {
			break
		}

		if leadingSpace(line) <= baseIndent {
			break
		}

		lines = append(lines, line)
		endLine = i
	}

	return Block{
		StartLine: taskLine,
		EndLine:   endLine,
		Text:      strings.Join(lines, doc.EOL()) + doc.EOL(),
	}, true
}

// continuesAfterGap looks past blank lines starting at from and reports
// whether the next non-blank line still belongs to a task at baseIndent.
func continuesAfterGap(doc *Document, from, baseIndent int) bool {
	for j := from; j < doc.LineCount(); j++ {
		next := doc.LineAt(j)
		if isBlank(next) {
			continue
		}

		return leadingSpace(next) > baseIndent &&
			!taskOpenerPattern.MatchString(next) &&
			!sectionPattern.MatchString(next)
	}

	return false
}
