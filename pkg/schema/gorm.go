package schema

import (
	"gorm.io/gorm"
)

// Table names.
const (
	EnzymesTable            = "enzymes"
	NomenclaturesTable      = "nomenclatures"
	ECNumbersTable          = "ec_numbers"
	SprotEntriesTable       = "sprot_entries"
	TremblEntriesTable      = "trembl_entries"
	SprotECNumbersTable     = "sprot_ec_numbers"
	TremblECNumbersTable    = "trembl_ec_numbers"
	SpeciesTable            = "species"
	SpeciesECNumbersTable   = "species_ec_numbers"
	PathwayClassesTable     = "pathway_classes"
	PathwaysTable           = "pathways"
	PathwayECNumbersTable   = "pathway_ec_numbers"
	StructuresTable         = "structures"
	StructureECNumbersTable = "structure_ec_numbers"
)

func (Enzyme) TableName() string            { return EnzymesTable }
func (Nomenclature) TableName() string      { return NomenclaturesTable }
func (ECNumber) TableName() string          { return ECNumbersTable }
func (SprotEntry) TableName() string        { return SprotEntriesTable }
func (TremblEntry) TableName() string       { return TremblEntriesTable }
func (SprotECNumber) TableName() string     { return SprotECNumbersTable }
func (TremblECNumber) TableName() string    { return TremblECNumbersTable }
func (Species) TableName() string           { return SpeciesTable }
func (SpeciesECNumber) TableName() string   { return SpeciesECNumbersTable }
func (PathwayClass) TableName() string      { return PathwayClassesTable }
func (Pathway) TableName() string           { return PathwaysTable }
func (PathwayECNumber) TableName() string   { return PathwayECNumbersTable }
func (Structure) TableName() string         { return StructuresTable }
func (StructureECNumber) TableName() string { return StructureECNumbersTable }

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&Enzyme{},
		&Nomenclature{},
		&ECNumber{},
		&SprotEntry{},
		&TremblEntry{},
		&SprotECNumber{},
		&TremblECNumber{},
		&Species{},
		&SpeciesECNumber{},
		&PathwayClass{},
		&Pathway{},
		&PathwayECNumber{},
		&Structure{},
		&StructureECNumber{},
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
