package fields

import (
	"iter"
	"regexp"
	"slices"
	"strings"

	"github.com/orenza/orenzadb/pkg/ec"
	"github.com/orenza/orenzadb/pkg/model"
	"github.com/orenza/orenzadb/pkg/records"
)

// NoActivity is a BRENDA pseudo-organism that is never a species.
const NoActivity = "no activity"

var brendaSpecies = regexp.MustCompile(`^PR\t#[0-9]+# (\w* \w*)`)

// BrendaEntry parses one BRENDA record into its EC number and the species
// of its PR lines. Species keep the order of their first appearance.
// A record without a valid EC number on its ID line is excluded.
func BrendaEntry(record string) (string, []string, bool) {
	var ecNumber string
	var species []string
	for line := range strings.Lines(record) {
		line = strings.TrimRight(line, "\r\n")
		if m := records.BrendaID.FindStringSubmatch(line); m != nil {
			ecNumber = m[1]
			continue
		}
		m := brendaSpecies.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if name == "" || name == NoActivity {
			continue
		}
		if !slices.Contains(species, name) {
			species = append(species, name)
		}
	}

	if !ec.Valid(ecNumber) {
		return "", nil, false
	}
	return ecNumber, species, true
}

// Species builds the EC-keyed species mapping from BRENDA records. An EC
// number seen in several records accumulates species of all of them. It
// also returns the number of records rejected by BrendaEntry.
func Species(recs iter.Seq[string]) (model.Species, int) {
	res := make(model.Species)
	var skipped int
	for rec := range recs {
		ecNumber, species, ok := BrendaEntry(rec)
		if !ok {
			skipped++
			continue
		}
		if _, ok := res[ecNumber]; !ok {
			res[ecNumber] = []string{}
		}
		for _, v := range species {
			res.AddSpecies(ecNumber, v)
		}
	}
	return res, skipped
}
