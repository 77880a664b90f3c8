package plan

import "strings"

// Default indentation settings.
const (
	DefaultSpacesPerLevel  = 2
	DefaultMaxNestingLevel = 1
)

// Options holds the indentation settings shared by validation and edits.
type Options struct {
	// SpacesPerLevel is the number of leading spaces per indent level.
	SpacesPerLevel int

	// MaxNestingLevel is the deepest indent level a task may have.
	MaxNestingLevel int

	// User fills the user placeholder of the comment-with-user detail.
	User string
}

// DefaultOptions returns the default indentation settings.
func DefaultOptions() Options {
	return Options{
		SpacesPerLevel:  DefaultSpacesPerLevel,
		MaxNestingLevel: DefaultMaxNestingLevel,
	}
}

// Level converts leading whitespace to an indent level. Partial levels round
// down, so 3 spaces at 2 per level is level 1.
func (o Options) Level(indent string) int {
	spaces := o.SpacesPerLevel
	if spaces <= 0 {
		spaces = DefaultSpacesPerLevel
	}

	return len(indent) / spaces
}

// indentUnit returns one level of indentation.
func (o Options) indentUnit() string {
	spaces := o.SpacesPerLevel
	if spaces <= 0 {
		spaces = DefaultSpacesPerLevel
	}

	return strings.Repeat(" ", spaces)
}
