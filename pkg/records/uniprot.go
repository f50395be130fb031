package records

import (
	"io"
	"iter"
	"strings"
)

// UniProtTerminator ends every entry of a UniProt flat file.
const UniProtTerminator = "//"

// UniProtScanner yields UniProt (Swiss-Prot or TrEMBL) flat-file entries
// that carry at least one EC number in a description line. Entries
// without "EC=" on a DE line are dropped silently.
type UniProtScanner struct {
	lines  lineScanner
	state  State
	buf    strings.Builder
	hasEC  bool
	record string
}

// NewUniProtScanner creates a scanner reading UniProt entries from r.
func NewUniProtScanner(r io.Reader) *UniProtScanner {
	return &UniProtScanner{lines: newLineScanner(r)}
}

// Scan advances to the next entry that contains an EC number.
func (s *UniProtScanner) Scan() bool {
	for {
		line, ok := s.lines.next()
		if !ok {
			return false
		}

		if s.state != InRecord {
			s.buf.Reset()
			s.hasEC = false
			s.state = InRecord
		}

		s.buf.WriteString(line)
		s.buf.WriteByte('\n')
		if strings.HasPrefix(line, "DE") && strings.Contains(line, "EC=") {
			s.hasEC = true
		}

		if line == UniProtTerminator {
			s.state = Terminated
			if s.hasEC {
				s.record = s.buf.String()
				return true
			}
		}
	}
}

// Record returns the last entry found by Scan.
func (s *UniProtScanner) Record() string {
	return s.record
}

// State returns the current state of the scanner.
func (s *UniProtScanner) State() State {
	return s.state
}

// Err returns the first non-EOF error of the underlying reader.
func (s *UniProtScanner) Err() error {
	return s.lines.err()
}

// UniProtRecords iterates over EC-bearing entries of a UniProt flat text.
// The iterator can be ranged over many times with the same result.
func UniProtRecords(text string) iter.Seq[string] {
	return seq(text, func(r io.Reader) Scanner {
		return NewUniProtScanner(r)
	})
}
