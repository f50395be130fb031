// Package fields converts single source records into typed intermediate
// model values and assembles them into the keyed mappings of package model.
//
// Parsers return a value and a boolean. A false boolean means the record
// lacks a mandatory field and must be silently excluded.
package fields

import (
	"iter"
	"regexp"
	"slices"
	"strings"

	"github.com/orenza/orenzadb/pkg/ec"
	"github.com/orenza/orenzadb/pkg/model"
)

// AccessionPattern matches the two shapes of UniProt accession numbers.
var AccessionPattern = regexp.MustCompile(
	`[OPQ][0-9][A-Z0-9]{3}[0-9]|[A-NR-Z][0-9]([A-Z][A-Z0-9]{2}[0-9]){1,2}`,
)

// ecToken matches EC numbers written as "EC=" tokens of DE lines.
// Dotted numbers inside protein names are not EC numbers.
var ecToken = regexp.MustCompile(`EC=(` + ec.Pattern.String() + `)`)

// UniProtEntry parses one UniProt flat-file record. The primary accession
// is the first accession on the first AC line, later AC lines are ignored.
// All EC numbers from DE lines carrying "EC=" are collected as a set
// and classified by completeness.
func UniProtEntry(record string) (*model.UniProtEntry, bool) {
	var accession string
	var seenAC bool
	var numbers []string

	for line := range strings.Lines(record) {
		line = strings.TrimRight(line, "\r\n")
		switch {
		case strings.HasPrefix(line, "AC"):
			if seenAC {
				continue
			}
			seenAC = true
			accession = AccessionPattern.FindString(line)
		case strings.HasPrefix(line, "DE") && strings.Contains(line, "EC="):
			for _, m := range ecToken.FindAllStringSubmatch(line, -1) {
				v := m[1]
				if !slices.Contains(numbers, v) {
					numbers = append(numbers, v)
				}
			}
		}
	}

	if accession == "" {
		return nil, false
	}

	res := &model.UniProtEntry{Accession: accession}
	for _, v := range numbers {
		ref, err := model.NewECRef(v)
		if err != nil {
			continue
		}
		res.ECs = append(res.ECs, ref)
	}
	return res, true
}

// UniProt builds the accession-keyed mapping from a sequence of records.
// It returns the mapping and the number of records without accession.
func UniProt(recs iter.Seq[string]) (model.UniProt, int) {
	res := make(model.UniProt)
	var skipped int
	for rec := range recs {
		entry, ok := UniProtEntry(rec)
		if !ok {
			skipped++
			continue
		}
		if old, ok := res[entry.Accession]; ok {
			entry.ECs = mergeRefs(old.ECs, entry.ECs)
		}
		res[entry.Accession] = entry
	}
	return res, skipped
}

func mergeRefs(a, b []model.ECRef) []model.ECRef {
	res := slices.Clone(a)
	for _, v := range b {
		if !slices.Contains(res, v) {
			res = append(res, v)
		}
	}
	return res
}
