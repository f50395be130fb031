package records

import (
	"io"
	"iter"
	"regexp"
	"strings"
)

// BrendaTerminator ends every entry of the BRENDA flat file.
const BrendaTerminator = "///"

// BrendaID matches the first line of a BRENDA entry and captures its EC
// number.
var BrendaID = regexp.MustCompile(`^ID\t([0-9.]+)`)

// BrendaScanner yields BRENDA entries. An entry begins with a line starting
// with "ID" and ends with a line that is exactly "///". An entry is emitted
// only when its ID line carried an EC number and the terminator was seen.
//
// When a new ID line appears before the terminator of the current entry,
// the accumulated partial entry is discarded. An entry that is never
// terminated is dropped at the end of input.
type BrendaScanner struct {
	lines  lineScanner
	state  State
	buf    strings.Builder
	hasEC  bool
	record string
	// discarded counts partial entries dropped by a restart or by EOF.
	discarded int
}

// NewBrendaScanner creates a scanner reading BRENDA entries from r.
func NewBrendaScanner(r io.Reader) *BrendaScanner {
	return &BrendaScanner{lines: newLineScanner(r)}
}

// Scan advances to the next complete entry.
func (s *BrendaScanner) Scan() bool {
	for {
		line, ok := s.lines.next()
		if !ok {
			if s.state == InRecord {
				s.discard()
				s.state = SeekingStart
			}
			return false
		}

		if strings.HasPrefix(line, "ID") {
			if s.state == InRecord {
				s.discard()
			}
			s.buf.Reset()
			s.hasEC = BrendaID.MatchString(line)
			s.state = InRecord
		}

		if s.state != InRecord {
			continue
		}

		s.buf.WriteString(line)
		s.buf.WriteByte('\n')

		if line == BrendaTerminator {
			s.state = Terminated
			if s.hasEC {
				s.record = s.buf.String()
				return true
			}
		}
	}
}

func (s *BrendaScanner) discard() {
	s.buf.Reset()
	s.hasEC = false
	s.discarded++
}

// Record returns the last entry found by Scan.
func (s *BrendaScanner) Record() string {
	return s.record
}

// State returns the current state of the scanner.
func (s *BrendaScanner) State() State {
	return s.state
}

// Discarded returns the number of partial entries dropped so far.
func (s *BrendaScanner) Discarded() int {
	return s.discarded
}

// Err returns the first non-EOF error of the underlying reader.
func (s *BrendaScanner) Err() error {
	return s.lines.err()
}

// BrendaRecords iterates over complete entries of a BRENDA flat text.
// The iterator can be ranged over many times with the same result.
func BrendaRecords(text string) iter.Seq[string] {
	return seq(text, func(r io.Reader) Scanner {
		return NewBrendaScanner(r)
	})
}
