// Package parserpool provides a pool of gnparser instances for concurrent
// normalization of species names.
// This is a pure package - parsing is computation, not I/O.
package parserpool

import (
	"runtime"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// Pool provides a pool of gnparser instances for concurrent parsing.
type Pool interface {
	// Parse parses a scientific name string. It retrieves a parser from the
	// pool, parses the name, and returns the parser to the pool.
	// This method is safe for concurrent use.
	Parse(nameString string) parsed.Parsed

	// Canonical returns the simple canonical form of a species name, or an
	// empty string if the name cannot be parsed. Species names in BRENDA are
	// lowercase, so the first letter is capitalized before parsing.
	Canonical(nameString string) string

	// Close shuts down the parser pool and releases resources.
	// After calling Close, the pool should not be used.
	Close()
}

type pool struct {
	ch chan gnparser.GNparser
}

// NewPool creates a new parser pool with the specified number of workers.
// If jobsNum is 0, it defaults to runtime.NumCPU().
func NewPool(jobsNum int) Pool {
	poolSize := jobsNum
	if poolSize <= 0 {
		poolSize = runtime.NumCPU()
	}
	cfg := gnparser.NewConfig()
	return &pool{ch: gnparser.NewPool(cfg, poolSize)}
}

func (p *pool) Parse(nameString string) parsed.Parsed {
	parser := <-p.ch
	res := parser.ParseName(nameString)
	p.ch <- parser
	return res
}

func (p *pool) Canonical(nameString string) string {
	name := capitalize(strings.TrimSpace(nameString))
	if name == "" {
		return ""
	}
	res := p.Parse(name)
	if !res.Parsed || res.Canonical == nil {
		return ""
	}
	return res.Canonical.Simple
}

func (p *pool) Close() {
	if p.ch == nil {
		return
	}
	close(p.ch)
	for range p.ch {
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
