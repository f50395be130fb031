// Package ec provides the Enzyme Commission number grammar used by all
// sources: matching, validation, completeness and the partial numbers
// built from class/subclass/subsubclass triples.
//
// An EC number has four dot-separated components. Each component is a
// non-negative integer or a '-' wildcard (e.g. "1.1.1.1", "1.1.-.-").
package ec

import (
	"regexp"
	"strings"
)

// Wildcard marks an unspecified component of a partial EC number.
const Wildcard = "-"

// Pattern matches an EC number anywhere in a string.
var Pattern = regexp.MustCompile(`((\d+|-)\.){3}(\d+|-)`)

var exact = regexp.MustCompile(`^((\d+|-)\.){3}(\d+|-)$`)

// Valid returns true if s is exactly one EC number.
func Valid(s string) bool {
	return exact.MatchString(s)
}

// IsComplete returns true if the EC number has no wildcard components and
// ends with a digit.
func IsComplete(s string) bool {
	if s == "" || strings.Contains(s, Wildcard) {
		return false
	}
	last := s[len(s)-1]
	return last >= '0' && last <= '9'
}

// Find returns the first EC number in s, or an empty string.
func Find(s string) string {
	return Pattern.FindString(s)
}

// FindAll returns all EC numbers found in s in the order of appearance.
// Duplicates are kept.
func FindAll(s string) []string {
	return Pattern.FindAllString(s, -1)
}

// FromClass builds a partial EC number from the class hierarchy triple
// of ExplorEnz. A "0" subclass collapses everything after the class, a "0"
// subsubclass collapses the last two components.
//
//	FromClass("1", "0", "0") == "1.-.-.-"
//	FromClass("1", "1", "0") == "1.1.-.-"
//	FromClass("1", "1", "1") == "1.1.1.-"
func FromClass(first, second, third string) string {
	var sb strings.Builder
	sb.WriteString(first)
	sb.WriteString(".")
	if second == "0" {
		sb.WriteString("-.-.-")
		return sb.String()
	}
	sb.WriteString(second)
	sb.WriteString(".")
	if third == "0" {
		sb.WriteString("-.-")
		return sb.String()
	}
	sb.WriteString(third)
	sb.WriteString(".-")
	return sb.String()
}

// Components splits an EC number into its four parts. It returns nil if
// the string is not a valid EC number.
func Components(s string) []string {
	if !Valid(s) {
		return nil
	}
	return strings.Split(s, ".")
}
