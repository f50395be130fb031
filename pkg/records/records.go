// Package records splits raw source dumps into logical per-entity records.
//
// Flat-text formats are handled by explicit finite-state scanners. Every
// scanner moves between three states: SeekingStart (outside of a record),
// InRecord (accumulating lines) and Terminated (a record boundary was just
// consumed). Scanners are lazy: records are produced one at a time while the
// underlying reader is consumed.
package records

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

// State is the position of a scanner relative to record boundaries.
type State int

const (
	SeekingStart State = iota
	InRecord
	Terminated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case SeekingStart:
		return "seeking-start"
	case InRecord:
		return "in-record"
	case Terminated:
		return "terminated"
	}
	return "unknown"
}

// maxLineSize is the longest line the scanners accept. BRENDA comment lines
// can be several hundred kilobytes long.
const maxLineSize = 16 * 1024 * 1024

// Scanner is implemented by all record scanners. The usage follows
// bufio.Scanner: call Scan until it returns false, then check Err.
type Scanner interface {
	Scan() bool
	Record() string
	Err() error
}

// lineScanner wraps bufio.Scanner with a large buffer and strips carriage
// returns.
type lineScanner struct {
	sc *bufio.Scanner
}

func newLineScanner(r io.Reader) lineScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return lineScanner{sc: sc}
}

func (l lineScanner) next() (string, bool) {
	if !l.sc.Scan() {
		return "", false
	}
	return strings.TrimRight(l.sc.Text(), "\r"), true
}

func (l lineScanner) err() error {
	return l.sc.Err()
}

// seq converts a scanner factory into a restartable iterator. Each iteration
// creates a fresh scanner over the same text.
func seq(text string, newScanner func(io.Reader) Scanner) iter.Seq[string] {
	return func(yield func(string) bool) {
		sc := newScanner(strings.NewReader(text))
		for sc.Scan() {
			if !yield(sc.Record()) {
				return
			}
		}
	}
}
