package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterh/liner"
)

// Choice is one entry of a pick list.
type Choice struct {
	Label       string
	Description string
}

// Prompter asks the user single modal questions. Every method reports
// ok=false when the user dismissed the question.
type Prompter interface {
	// Input asks for free text, pre-filled with placeholder where the
	// terminal supports it.
	Input(prompt, placeholder string) (answer string, ok bool, err error)

	// Select asks for one of choices and returns its index.
	Select(title string, choices []Choice) (index int, ok bool, err error)

	// Confirm asks a yes/no question. Anything but yes is no.
	Confirm(question string) (bool, error)
}

// LinePrompter reads answers line by line from a reader. It serves pipes,
// scripts and tests; [LinerPrompter] serves terminals.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter returns a prompter reading answers from in and writing
// questions to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

func (p *LinePrompter) readLine(prompt string) (string, bool, error) {
	_, _ = fmt.Fprint(p.out, prompt)

	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, fmt.Errorf("reading answer: %w", err)
	}

	if errors.Is(err, io.EOF) && line == "" {
		_, _ = fmt.Fprintln(p.out)

		return "", false, nil
	}

	return strings.TrimRight(line, "\r\n"), true, nil
}

// Input implements [Prompter].
func (p *LinePrompter) Input(prompt, placeholder string) (string, bool, error) {
	if placeholder != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, placeholder)
	}

	answer, ok, err := p.readLine(prompt + ": ")
	if err != nil || !ok {
		return "", ok, err
	}

	if answer == "" {
		answer = placeholder
	}

	return answer, true, nil
}

// Select implements [Prompter]. An empty answer dismisses the list; an
// answer matching no choice asks again.
func (p *LinePrompter) Select(title string, choices []Choice) (int, bool, error) {
	if len(choices) == 0 {
		return 0, false, ErrNoChoices
	}

	printChoices(p.out, title, choices)

	for {
		answer, ok, err := p.readLine(fmt.Sprintf("Choose [1-%d]: ", len(choices)))
		if err != nil || !ok {
			return 0, false, err
		}

		if strings.TrimSpace(answer) == "" {
			return 0, false, nil
		}

		if index, found := pickChoice(answer, choices); found {
			return index, true, nil
		}

		_, _ = fmt.Fprintf(p.out, "no choice matches %q\n", answer)
	}
}

// Confirm implements [Prompter].
func (p *LinePrompter) Confirm(question string) (bool, error) {
	answer, ok, err := p.readLine(question + " (yes/no): ")
	if err != nil || !ok {
		return false, err
	}

	return isYes(answer), nil
}

// LinerPrompter asks questions on an interactive terminal with line
// editing. Ctrl-C dismisses the current question.
type LinerPrompter struct {
	state *liner.State
	out   io.Writer
}

// NewLinerPrompter takes over the terminal until Close is called.
func NewLinerPrompter(out io.Writer) *LinerPrompter {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	return &LinerPrompter{state: state, out: out}
}

// TerminalSupported reports whether stdin is a terminal liner can drive.
func TerminalSupported() bool {
	return liner.TerminalSupported()
}

// Close restores the terminal.
func (p *LinerPrompter) Close() error {
	return p.state.Close()
}

func (p *LinerPrompter) prompt(prompt, suggestion string) (string, bool, error) {
	line, err := p.state.PromptWithSuggestion(prompt, suggestion, -1)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", false, nil
		}

		return "", false, fmt.Errorf("reading answer: %w", err)
	}

	return line, true, nil
}

// Input implements [Prompter].
func (p *LinerPrompter) Input(prompt, placeholder string) (string, bool, error) {
	answer, ok, err := p.prompt(prompt+": ", placeholder)
	if err != nil || !ok {
		return "", ok, err
	}

	p.state.AppendHistory(answer)

	return answer, true, nil
}

// Select implements [Prompter]. Labels complete on tab.
func (p *LinerPrompter) Select(title string, choices []Choice) (int, bool, error) {
	if len(choices) == 0 {
		return 0, false, ErrNoChoices
	}

	printChoices(p.out, title, choices)

	p.state.SetCompleter(func(line string) []string {
		var out []string

		for _, c := range choices {
			if strings.HasPrefix(strings.ToLower(c.Label), strings.ToLower(line)) {
				out = append(out, c.Label)
			}
		}

		return out
	})
	defer p.state.SetCompleter(nil)

	for {
		answer, ok, err := p.prompt(fmt.Sprintf("Choose [1-%d]: ", len(choices)), "")
		if err != nil || !ok {
			return 0, false, err
		}

		if strings.TrimSpace(answer) == "" {
			return 0, false, nil
		}

		if index, found := pickChoice(answer, choices); found {
			return index, true, nil
		}

		_, _ = fmt.Fprintf(p.out, "no choice matches %q\n", answer)
	}
}

// Confirm implements [Prompter].
func (p *LinerPrompter) Confirm(question string) (bool, error) {
	answer, ok, err := p.prompt(question+" (yes/no): ", "")
	if err != nil || !ok {
		return false, err
	}

	return isYes(answer), nil
}

func printChoices(out io.Writer, title string, choices []Choice) {
	_, _ = fmt.Fprintln(out, title)

	for i, c := range choices {
		if c.Description != "" {
			_, _ = fmt.Fprintf(out, "  %d) %s - %s\n", i+1, c.Label, c.Description)
		} else {
			_, _ = fmt.Fprintf(out, "  %d) %s\n", i+1, c.Label)
		}
	}
}

// pickChoice resolves an answer to a choice: a 1-based number, an exact
// label, or a unique case-insensitive label prefix.
func pickChoice(answer string, choices []Choice) (int, bool) {
	answer = strings.TrimSpace(answer)

	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(choices) {
			return n - 1, true
		}

		return 0, false
	}

	for i, c := range choices {
		if c.Label == answer {
			return i, true
		}
	}

	match := -1
	lower := strings.ToLower(answer)

	for i, c := range choices {
		if !strings.HasPrefix(strings.ToLower(c.Label), lower) {
			continue
		}

		if match != -1 {
			return 0, false
		}

		match = i
	}

	return match, match != -1
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
