// Package driver orchestrates the pipeline stages for the CLI: load a
// file, tokenize, build the tree, validate, answer completion queries.
package driver

import (
	"htmlcheck/internal/check"
	"htmlcheck/internal/diag"
	"htmlcheck/internal/lexer"
	"htmlcheck/internal/source"
	"htmlcheck/internal/token"
	"htmlcheck/internal/tree"
)

// lexReporter collects lexer findings into a bag. The lexer reports
// through its own thin interface so it stays decoupled from diag.
type lexReporter struct {
	bag *diag.Bag
}

func (r lexReporter) Report(kind string, sp source.Span, msg string) {
	code := diag.UnknownCode
	switch kind {
	case lexer.KindUnclosedTag:
		code = diag.LexUnclosedTag
	case lexer.KindUnclosedComment:
		code = diag.LexUnclosedComment
	case lexer.KindUnclosedDoctype:
		code = diag.LexUnclosedDoctype
	case lexer.KindUnclosedRawText:
		code = diag.LexUnclosedRawText
	}
	r.bag.Add(diag.New(diag.SevError, code, sp, msg))
}

// TokenizeResult is the output of the tokenize stage for one file.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads and scans a single file.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	toks := lexer.Tokenize(file, lexer.Options{Reporter: lexReporter{bag}})

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  toks,
		Bag:     bag,
	}, nil
}

// ParseResult is the output of the tree stage for one file.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *tree.Tree
	Bag     *diag.Bag
}

// Parse loads a file and builds its document tree.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	doc := tree.Parse(file, diag.BagReporter{Bag: bag})

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Tree:    doc,
		Bag:     bag,
	}, nil
}

// CheckResult is the output of a full validation of one file.
type CheckResult struct {
	Path string
	File *source.File
	Tree *tree.Tree
	Bag  *diag.Bag
}

// CheckFile validates an already loaded file.
func CheckFile(file *source.File, maxDiagnostics int) *CheckResult {
	bag := diag.NewBag(maxDiagnostics)
	rep := diag.BagReporter{Bag: bag}
	doc := tree.Parse(file, rep)
	check.Validate(file, doc, rep)
	bag.Sort()
	return &CheckResult{
		Path: file.Path,
		File: file,
		Tree: doc,
		Bag:  bag,
	}
}

// Check loads and validates a single file.
func Check(path string, maxDiagnostics int) (*source.FileSet, *CheckResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, nil, err
	}
	res := CheckFile(fs.Get(fileID), maxDiagnostics)
	res.Path = path
	return fs, res, nil
}
