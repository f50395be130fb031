package schema

import "github.com/orenza/orenzadb/pkg/model"

// WipeOrder returns tables owned by a dataset, join tables first.
// The shared ec_numbers table is not owned by any dataset.
func WipeOrder(ds model.Source) []string {
	switch ds {
	case model.ExplorEnz:
		return []string{EnzymesTable}
	case model.Nomenclature:
		return []string{NomenclaturesTable}
	case model.SwissProt:
		return []string{SprotECNumbersTable, SprotEntriesTable}
	case model.TrEMBL:
		return []string{TremblECNumbersTable, TremblEntriesTable}
	case model.KEGG:
		return []string{PathwayECNumbersTable, PathwaysTable, PathwayClassesTable}
	case model.BRENDA:
		return []string{SpeciesECNumbersTable, SpeciesTable}
	case model.PDB:
		return []string{StructureECNumbersTable, StructuresTable}
	}
	return nil
}

// Relation describes a join table whose rows are counted per EC number
// and stored in an enzyme column.
type Relation struct {
	Name        string
	JoinTable   string
	CountColumn string
}

// Relations lists join tables reconciled with enzymes.
var Relations = []Relation{
	{Name: "sprot", JoinTable: SprotECNumbersTable, CountColumn: "sprot_count"},
	{Name: "trembl", JoinTable: TremblECNumbersTable, CountColumn: "trembl_count"},
	{Name: "species", JoinTable: SpeciesECNumbersTable, CountColumn: "species_count"},
	{Name: "structure", JoinTable: StructureECNumbersTable, CountColumn: "pdb_count"},
}
