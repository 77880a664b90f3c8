package plan

import "strings"

var templateLines = []string{
	"# Project Name",
	"",
	"> Project description",
	"",
	"## Todo",
	"- [ ] First task",
	"",
	"## Done",
	"",
	"",
	Marker,
}

// Template returns the starter document offered for blank markdown files.
func Template(eol string) string {
	return strings.Join(templateLines, eol) + eol
}
