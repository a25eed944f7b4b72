package driver

import (
	"fmt"

	"fortio.org/safecast"

	"htmlcheck/internal/check"
	"htmlcheck/internal/diag"
	"htmlcheck/internal/elements"
	"htmlcheck/internal/source"
	"htmlcheck/internal/tree"
)

// CompleteResult is the answer to one completion query.
type CompleteResult struct {
	FileSet     *source.FileSet
	File        *source.File
	Completions []elements.Completion
}

// Complete loads a file and proposes elements insertable at the given
// byte offset. Diagnostics are not collected: the query works the same
// on broken documents.
func Complete(path string, offset uint32) (*CompleteResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	size, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return nil, fmt.Errorf("file length overflow: %w", err)
	}
	if offset > size {
		return nil, fmt.Errorf("offset %d beyond end of file (%d bytes)", offset, size)
	}

	doc := tree.Parse(file, diag.NopReporter{})
	return &CompleteResult{
		FileSet:     fs,
		File:        file,
		Completions: check.CompletionsAt(file, doc, offset),
	}, nil
}

// OffsetOf converts a 1-based line:col position into a byte offset.
func OffsetOf(file *source.File, line, col uint32) (uint32, error) {
	if line == 0 || col == 0 {
		return 0, fmt.Errorf("line and column are 1-based")
	}
	var start uint32
	switch {
	case line == 1:
		start = 0
	case int(line-2) < len(file.LineIdx):
		start = file.LineIdx[line-2] + 1
	default:
		return 0, fmt.Errorf("line %d beyond end of file", line)
	}
	off := start + col - 1
	size, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return 0, fmt.Errorf("file length overflow: %w", err)
	}
	if off > size {
		return 0, fmt.Errorf("column %d beyond end of file", col)
	}
	return off, nil
}
