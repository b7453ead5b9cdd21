package runner

import (
	"errors"

	"github.com/yaklabco/parkdown/pkg/grammar"
)

// FileOutcome is the parse result for one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Content is the file text. Empty when the file could not be read.
	Content string

	// Nodes is the size of the parse tree. Zero on failure.
	Nodes int

	// Error is set if the file could not be read or parsed. A grammar
	// failure is a *grammar.GrammarError.
	Error error
}

// GrammarError returns the grammar failure for this file, if that is why
// it failed.
func (o FileOutcome) GrammarError() (*grammar.GrammarError, bool) {
	var gerr *grammar.GrammarError
	if errors.As(o.Error, &gerr) {
		return gerr, true
	}
	return nil, false
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesParsed is the number of files that parsed successfully.
	FilesParsed int

	// FilesFailed is the number of files the grammar rejected.
	FilesFailed int

	// FilesErrored is the number of files that could not be read or hit a
	// non-grammar error.
	FilesErrored int

	// Nodes is the total node count across all parsed files.
	Nodes int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed to parse or could not be read.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesFailed > 0 || r.Stats.FilesErrored > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error == nil:
		r.Stats.FilesParsed++
		r.Stats.Nodes += outcome.Nodes
	case isGrammarError(outcome.Error):
		r.Stats.FilesFailed++
	default:
		r.Stats.FilesErrored++
	}
}

func isGrammarError(err error) bool {
	var gerr *grammar.GrammarError
	return errors.As(err, &gerr)
}
