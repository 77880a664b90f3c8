package cli

import "errors"

var (
	errFileRequired  = errors.New("file is required")
	errLineRequired  = errors.New("line is required")
	errInvalidLine   = errors.New("invalid line (must be a number from 1)")
	errTooManyArgs   = errors.New("too many arguments")
	errIssuesFound   = errors.New("issues found")
	errUnknownFormat = errors.New("unknown format (must be text, json or yaml)")
	errNotMarkdown   = errors.New("not a markdown file")
)
