package kicadcfg

import (
	"errors"
	"fmt"
	"io"
)

// Outcome is the result of one registration step.
type Outcome int

const (
	Unchanged Outcome = iota
	Changed
	Skipped
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Changed:
		return "changed"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "unchanged"
	}
}

// Step is one file or directory touched by Register or Deregister.
type Step struct {
	Path    string
	Outcome Outcome
	Detail  string
	Err     error
}

// Report collects the steps of one run in order.
type Report struct {
	Steps []Step
}

func (r *Report) add(path string, outcome Outcome, detail string) {
	r.Steps = append(r.Steps, Step{Path: path, Outcome: outcome, Detail: detail})
}

func (r *Report) fail(path string, err error) {
	r.Steps = append(r.Steps, Step{Path: path, Outcome: Failed, Detail: err.Error(), Err: err})
}

// Changed reports whether any file was modified.
func (r *Report) Changed() bool {
	for _, s := range r.Steps {
		if s.Outcome == Changed {
			return true
		}
	}
	return false
}

// Err joins the errors of all failed steps.
func (r *Report) Err() error {
	var errs []error
	for _, s := range r.Steps {
		if s.Err != nil {
			errs = append(errs, s.Err)
		}
	}
	return errors.Join(errs...)
}

// Print writes one line per step.
func (r *Report) Print(w io.Writer) {
	for _, s := range r.Steps {
		fmt.Fprintf(w, "%-9s %s: %s\n", s.Outcome, s.Path, s.Detail)
	}
}
