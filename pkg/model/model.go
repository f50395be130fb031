// Package model contains the normalized intermediate representation shared
// by parsers and loaders. Every source produces one keyed mapping: EC number,
// accession or pathway ID to a typed record.
package model

import (
	"fmt"
	"strings"

	"github.com/orenza/orenzadb/pkg/ec"
)

// Source identifies an upstream database or a dataset derived from it.
type Source string

const (
	ExplorEnz Source = "explorenz"
	// Nomenclature is the class hierarchy shipped in the ExplorEnz dump.
	// It is never selected on its own.
	Nomenclature Source = "nomenclature"
	SwissProt    Source = "sprot"
	TrEMBL       Source = "trembl"
	KEGG         Source = "kegg"
	BRENDA       Source = "brenda"
	PDB          Source = "pdb"
)

// Sources lists selectable upstream databases in the order they are
// processed.
var Sources = []Source{ExplorEnz, SwissProt, TrEMBL, KEGG, BRENDA, PDB}

// Datasets returns intermediate datasets produced from a source.
func (s Source) Datasets() []Source {
	if s == ExplorEnz {
		return []Source{ExplorEnz, Nomenclature}
	}
	return []Source{s}
}

// Linked reports whether a source feeds the cross-link counts or
// replaces enzymes, so that its update requires relinking.
func (s Source) Linked() bool {
	return s != KEGG && s != Nomenclature
}

// NewSource converts a string to a Source.
func NewSource(s string) (Source, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, v := range Sources {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown source '%s'", s)
}

// Enzyme is an ExplorEnz entry.
type Enzyme struct {
	ECNumber     string
	AcceptedName string
	SysName      string
	OtherNames   string
	Reaction     string
	Comments     string
	Links        string
	CasNum       string
	Glossary     string
	Class        string
	Subclass     string
	Subsubclass  string
	Serial       string
	// Created is the year the entry was created, taken from its history.
	Created string
}

// NomenclatureNode is a node of the EC class hierarchy.
type NomenclatureNode struct {
	EC           string
	FirstNumber  string
	SecondNumber string
	ThirdNumber  string
	Heading      string
}

// ECRef is an EC number together with its completeness flag.
type ECRef struct {
	Number   string
	Complete bool
}

// NewECRef classifies an EC number. It returns an error if the string is
// not a valid EC number.
func NewECRef(s string) (ECRef, error) {
	if !ec.Valid(s) {
		return ECRef{}, fmt.Errorf("invalid EC number '%s'", s)
	}
	return ECRef{Number: s, Complete: ec.IsComplete(s)}, nil
}

// UniProtEntry is a Swiss-Prot or TrEMBL entry anchored by its primary
// accession.
type UniProtEntry struct {
	Accession string
	ECs       []ECRef
}

// Pathway is a KEGG pathway map with EC numbers found in its diagram.
type Pathway struct {
	ID    string
	Title string
	// Class is the pathway class heading, empty if the pathway was listed
	// before any class heading.
	Class string
	ECs   []string
}

// StructureRef links a structure to the sequence accession it references.
type StructureRef struct {
	PDBID     string
	Accession string
}

// Enzymes maps EC numbers to ExplorEnz entries.
type Enzymes map[string]*Enzyme

// Nomenclatures maps partial EC numbers to class hierarchy nodes.
type Nomenclatures map[string]*NomenclatureNode

// UniProt maps primary accessions to entries.
type UniProt map[string]*UniProtEntry

// Species maps EC numbers to species names.
type Species map[string][]string

// Pathways maps pathway IDs to pathways.
type Pathways map[string]*Pathway

// Structures maps EC numbers to structures.
type Structures map[string][]StructureRef
