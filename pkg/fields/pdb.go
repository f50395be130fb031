package fields

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/orenza/orenzadb/pkg/model"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	pdbID        = regexp.MustCompile(`^<PDBx:datablock\s+datablockName="(\w+)"`)
	pdbEC        = regexp.MustCompile(`<PDBx:pdbx_ec>(\d+\.\d+\.\d+\.\d+)`)
	pdbAccession = regexp.MustCompile(`<PDBx:pdbx_db_accession>(\w+)</PDBx:pdbx_db_accession>`)
)

// PDBEntry scans a decompressed PDBML file line by line. The structure ID
// and the accession are reassigned on every match, so the last ones win.
// The EC number is taken from the first match only. A file without an EC
// number yields no association.
func PDBEntry(r io.Reader) (string, model.StructureRef, bool, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var ecNumber string
	var ref model.StructureRef
	for sc.Scan() {
		line := sc.Text()
		if m := pdbID.FindStringSubmatch(line); m != nil {
			ref.PDBID = m[1]
		}
		if ecNumber == "" {
			if m := pdbEC.FindStringSubmatch(line); m != nil {
				ecNumber = m[1]
			}
		}
		if m := pdbAccession.FindStringSubmatch(line); m != nil {
			ref.Accession = m[1]
		}
	}
	if err := sc.Err(); err != nil {
		return "", model.StructureRef{}, false, err
	}

	if ecNumber == "" {
		return "", model.StructureRef{}, false, nil
	}
	return ecNumber, ref, true, nil
}

// PDBStructures parses one PDBML file into a partial mapping with at most
// one key.
func PDBStructures(r io.Reader) (model.Structures, error) {
	res := make(model.Structures)
	ecNumber, ref, ok, err := PDBEntry(r)
	if err != nil || !ok {
		return res, err
	}
	res[ecNumber] = []model.StructureRef{ref}
	return res, nil
}

// PDBSubfolders lists the two-character sub-folders ("00/", "a1/") of the
// divided PDB mirror index page.
func PDBSubfolders(r io.Reader) ([]string, error) {
	return indexLinks(r, func(href string) bool {
		return len(href) == 3 && href != "../" && strings.HasSuffix(href, "/")
	})
}

// PDBFiles lists compressed PDBML files of a mirror sub-folder page.
func PDBFiles(r io.Reader) ([]string, error) {
	return indexLinks(r, func(href string) bool {
		return strings.HasSuffix(href, "xml.gz")
	})
}

func indexLinks(r io.Reader, keep func(string) bool) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	var res []string
	seen := make(map[string]struct{})
	for n := range doc.Descendants() {
		if n.Type != html.ElementNode || n.DataAtom != atom.A {
			continue
		}
		href := attrVal(n, "href")
		if _, ok := seen[href]; ok || !keep(href) {
			continue
		}
		seen[href] = struct{}{}
		res = append(res, href)
	}
	return res, nil
}
