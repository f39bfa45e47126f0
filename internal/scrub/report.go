package scrub

import "fmt"

// Op names a filesystem mutation.
type Op string

const (
	OpRemove Op = "remove"
	OpRename Op = "rename"
)

// Outcome is the result of a single file operation.
type Outcome int

const (
	Succeeded Outcome = iota
	Skipped
	Failed
)

// String returns the lowercase outcome name.
func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// OpError records a file operation that failed and was absorbed.
type OpError struct {
	Op   Op
	Path string
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Report counts what a pass did to one directory. In a dry run Deleted and
// Renamed count the actions that would have been taken.
type Report struct {
	Deleted  int
	Renamed  int
	Skipped  int
	Failed   int
	Failures []*OpError
}

// record tallies a single operation outcome.
func (r *Report) record(op Op, path string, outcome Outcome, err error) {
	switch outcome {
	case Succeeded:
		if op == OpRename {
			r.Renamed++
		} else {
			r.Deleted++
		}
	case Skipped:
		r.Skipped++
	case Failed:
		r.Failed++
		r.Failures = append(r.Failures, &OpError{Op: op, Path: path, Err: err})
	}
}

// Merge adds other's counts and failures into r.
func (r *Report) Merge(other Report) {
	r.Deleted += other.Deleted
	r.Renamed += other.Renamed
	r.Skipped += other.Skipped
	r.Failed += other.Failed
	r.Failures = append(r.Failures, other.Failures...)
}

// Total is the number of operations attempted or skipped.
func (r Report) Total() int {
	return r.Deleted + r.Renamed + r.Skipped + r.Failed
}

// DirectoryReport is the outcome of cleaning one directory.
type DirectoryReport struct {
	Dir       string
	Versioned Report
	Auxiliary Report
	// Locked is set when another process held the directory lock and the
	// directory was left alone.
	Locked bool
}

// Combined merges the versioned and auxiliary reports.
func (d DirectoryReport) Combined() Report {
	var r Report
	r.Merge(d.Versioned)
	r.Merge(d.Auxiliary)
	return r
}
