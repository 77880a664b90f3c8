// Package host is the text-editor side of mdplan: file-backed buffers,
// user prompts, change notifications and diagnostics publishing.
package host

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/calvinalkan/mdplan/internal/plan"
)

// Buffer is a document backed by a file on disk.
//
// A Buffer does not cache content. Snapshot reads the file, and Apply
// writes it back under an exclusive lock, refusing when the file changed
// since the snapshot the change was computed against.
type Buffer struct {
	path        string
	languageID  string
	lockTimeout time.Duration
}

// Open returns a buffer for path. isMarkdown decides the language ID; files
// it rejects get the "plaintext" language and are never MDPlan documents.
func Open(path string, isMarkdown func(path string) bool) (*Buffer, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotFile, path)
	}

	languageID := "plaintext"
	if isMarkdown(path) {
		languageID = plan.LanguageMarkdown
	}

	return &Buffer{path: path, languageID: languageID, lockTimeout: LockTimeout}, nil
}

// Path returns the file path of the buffer.
func (b *Buffer) Path() string {
	return b.path
}

// LanguageID returns the content kind of the buffer.
func (b *Buffer) LanguageID() string {
	return b.languageID
}

// Snapshot reads the current file content as a document.
func (b *Buffer) Snapshot() (*plan.Document, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", b.path, err)
	}

	return plan.NewDocument(b.languageID, string(data)), nil
}

// Apply applies c to base and writes the result as one atomic file
// replacement. It fails with [ErrStale] if the file no longer holds base.
// An empty change writes nothing and returns base.
func (b *Buffer) Apply(base *plan.Document, c plan.Change) (*plan.Document, error) {
	if c.Empty() {
		return base, nil
	}

	next, err := base.Apply(c)
	if err != nil {
		return nil, err
	}

	return next, b.Replace(base, next)
}

// Replace writes next over the file if it still holds base.
func (b *Buffer) Replace(base, next *plan.Document) error {
	return withLock(b.path, b.lockTimeout, func() error {
		current, readErr := os.ReadFile(b.path)
		if readErr != nil {
			return fmt.Errorf("reading %s: %w", b.path, readErr)
		}

		if string(current) != base.Source() {
			return fmt.Errorf("%w: %s", ErrStale, b.path)
		}

		return b.write(next.Text())
	})
}

// Init writes text into the file if it holds only whitespace.
func (b *Buffer) Init(text string) error {
	return withLock(b.path, b.lockTimeout, func() error {
		current, readErr := os.ReadFile(b.path)
		if readErr != nil {
			return fmt.Errorf("reading %s: %w", b.path, readErr)
		}

		if strings.TrimSpace(string(current)) != "" {
			return fmt.Errorf("%w: %s", ErrNotBlank, b.path)
		}

		return b.write(text)
	})
}

func (b *Buffer) write(text string) error {
	writeErr := atomic.WriteFile(b.path, strings.NewReader(text))
	if writeErr != nil {
		return fmt.Errorf("writing %s: %w", b.path, writeErr)
	}

	return nil
}
