// Package schema provides database schema models for orenzadb.
// The same models are used for PostgreSQL and SQLite.
package schema

// Enzyme is an ExplorEnz entry together with evidence counts computed by
// the cross-link stage.
type Enzyme struct {
	// ECNumber is a complete or partial EC number, e.g. 1.1.1.1.
	ECNumber string `gorm:"column:ec_number;primaryKey;type:varchar(20)"`

	AcceptedName string `gorm:"type:text"`
	SysName      string `gorm:"type:text"`
	OtherNames   string `gorm:"type:text"`
	Reaction     string `gorm:"type:text"`
	Comments     string `gorm:"type:text"`
	Links        string `gorm:"type:text"`
	CasNum       string `gorm:"type:varchar(255)"`
	Glossary     string `gorm:"type:text"`
	Class        string `gorm:"type:varchar(10)"`
	Subclass     string `gorm:"type:varchar(10)"`
	Subsubclass  string `gorm:"type:varchar(10)"`
	Serial       string `gorm:"type:varchar(10)"`

	// Created is the year of creation of the entry.
	Created string `gorm:"type:varchar(10)"`

	// Orphan is true until some evidence references the enzyme.
	Orphan bool `gorm:"not null;default:true"`

	SprotCount   int `gorm:"column:sprot_count;not null;default:0"`
	TremblCount  int `gorm:"column:trembl_count;not null;default:0"`
	SpeciesCount int `gorm:"column:species_count;not null;default:0"`
	PDBCount     int `gorm:"column:pdb_count;not null;default:0"`
}

// Nomenclature is a node of the EC class hierarchy.
type Nomenclature struct {
	// EC is a partial EC number, e.g. 1.1.-.-.
	EC           string `gorm:"column:ec;primaryKey;type:varchar(20)"`
	FirstNumber  string `gorm:"type:varchar(5)"`
	SecondNumber string `gorm:"type:varchar(5)"`
	ThirdNumber  string `gorm:"type:varchar(5)"`
	Heading      string `gorm:"type:text"`
}

// ECNumber is the lookup table of EC numbers referenced by any source.
type ECNumber struct {
	Number   string `gorm:"primaryKey;type:varchar(20)"`
	Complete bool   `gorm:"not null;default:false"`
}

// SprotEntry is a Swiss-Prot entry.
type SprotEntry struct {
	Accession string `gorm:"primaryKey;type:varchar(20)"`
}

// TremblEntry is a TrEMBL entry.
type TremblEntry struct {
	Accession string `gorm:"primaryKey;type:varchar(20)"`
}

// SprotECNumber links Swiss-Prot entries to EC numbers.
type SprotECNumber struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Accession string `gorm:"type:varchar(20);not null;index"`
	ECID      string `gorm:"column:ec_id;type:varchar(20);not null;index"`
}

// TremblECNumber links TrEMBL entries to EC numbers.
type TremblECNumber struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Accession string `gorm:"type:varchar(20);not null;index"`
	ECID      string `gorm:"column:ec_id;type:varchar(20);not null;index"`
}

// Species is an organism name from BRENDA.
type Species struct {
	Name string `gorm:"primaryKey;type:varchar(255)"`
	// UUID is UUID v5 of the name.
	UUID string `gorm:"column:uuid;type:varchar(36);not null;index"`
	// Canonical is the simple canonical form of the name, empty if the
	// name could not be parsed.
	Canonical string `gorm:"type:varchar(255);index"`
}

// SpeciesECNumber links species to EC numbers.
type SpeciesECNumber struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	SpeciesName string `gorm:"type:varchar(255);not null;index"`
	ECID        string `gorm:"column:ec_id;type:varchar(20);not null;index"`
}

// PathwayClass is a heading that groups KEGG pathways.
type PathwayClass struct {
	Name string `gorm:"primaryKey;type:varchar(255)"`
}

// Pathway is a KEGG pathway map.
type Pathway struct {
	PathwayID string  `gorm:"column:pathway_id;primaryKey;type:varchar(20)"`
	Title     string  `gorm:"type:text"`
	ClassName *string `gorm:"type:varchar(255);index"`
}

// PathwayECNumber links pathways to EC numbers.
type PathwayECNumber struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	PathwayID string `gorm:"column:pathway_id;type:varchar(20);not null;index"`
	ECID      string `gorm:"column:ec_id;type:varchar(20);not null;index"`
}

// Structure is a PDB entry.
type Structure struct {
	PDBID string `gorm:"column:pdb_id;primaryKey;type:varchar(10)"`
}

// StructureECNumber links structures to EC numbers with the sequence
// accession the structure refers to.
type StructureECNumber struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	PDBID     string `gorm:"column:pdb_id;type:varchar(10);not null;index"`
	Accession string `gorm:"type:varchar(20)"`
	ECID      string `gorm:"column:ec_id;type:varchar(20);not null;index"`
}
