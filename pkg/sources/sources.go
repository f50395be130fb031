// Package sources provides configuration and validation of upstream data
// sources.
//
// This package defines the schema for sources.yaml, which tells orenzadb
// where to download raw ExplorEnz, UniProt, KEGG, BRENDA and PDB data.
package sources

type Sources interface {
	Load() (*SourcesConfig, error)
}

// SourcesConfig represents the complete sources.yaml configuration file.
type SourcesConfig struct {
	ExplorEnz ExplorEnzConfig `yaml:"explorenz"`
	SwissProt UniProtConfig   `yaml:"sprot"`
	TrEMBL    UniProtConfig   `yaml:"trembl"`
	KEGG      KEGGConfig      `yaml:"kegg"`
	BRENDA    BRENDAConfig    `yaml:"brenda"`
	PDB       PDBConfig       `yaml:"pdb"`

	// Warnings holds non-fatal validation warnings (not serialized)
	Warnings []ValidationWarning `yaml:"-"`
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Source     string // Name of the source
	Field      string // Field name that has the issue
	Message    string // Description of the issue
	Suggestion string // How to fix it
}

// ExplorEnzConfig describes the location of the ExplorEnz XML dump.
type ExplorEnzConfig struct {
	// URL of the gzipped XML dump.
	URL string `yaml:"url"`
	// File is the local name of the downloaded dump.
	File string `yaml:"file"`
}

// UniProtConfig describes an FTP location of a UniProt flat file.
type UniProtConfig struct {
	// Host is the FTP server with port, e.g. ftp.expasy.org:21.
	Host string `yaml:"host"`
	// RemoteFile is the path to the gzipped flat file on the server.
	RemoteFile string `yaml:"remote_file"`
	// File is the local name of the downloaded file.
	File string `yaml:"file"`
	// User for FTP login, anonymous by default.
	User string `yaml:"user,omitempty"`
	// Password for FTP login.
	Password string `yaml:"password,omitempty"`
}

// KEGGConfig describes KEGG pathway pages.
type KEGGConfig struct {
	// IndexURL is the page listing all pathway maps.
	IndexURL string `yaml:"index_url"`
	// BaseURL is prepended to relative pathway links.
	BaseURL string `yaml:"base_url"`
}

// BRENDAConfig describes the local BRENDA release. BRENDA requires a
// license agreement, so it is never downloaded automatically.
type BRENDAConfig struct {
	// CompressedFile is a path to the tar.gz archive of the release.
	CompressedFile string `yaml:"compressed_file"`
	// TextFile is the name of the flat file inside the archive.
	TextFile string `yaml:"text_file"`
}

// PDBConfig describes the PDB mirror of XML structure files.
type PDBConfig struct {
	// MirrorURL lists two-character sub-folders with *.xml.gz files.
	MirrorURL string `yaml:"mirror_url"`
}

// Default returns configuration with public locations of all sources.
func Default() *SourcesConfig {
	return &SourcesConfig{
		ExplorEnz: ExplorEnzConfig{
			URL:  "https://www.enzyme-database.org/downloads/enzyme-data.xml.gz",
			File: "enzyme-data.xml.gz",
		},
		SwissProt: UniProtConfig{
			Host:       "ftp.expasy.org:21",
			RemoteFile: "/databases/uniprot/current_release/knowledgebase/complete/uniprot_sprot.dat.gz",
			File:       "uniprot_sprot.dat.gz",
		},
		TrEMBL: UniProtConfig{
			Host:       "ftp.expasy.org:21",
			RemoteFile: "/databases/uniprot/current_release/knowledgebase/complete/uniprot_trembl.dat.gz",
			File:       "uniprot_trembl.dat.gz",
		},
		KEGG: KEGGConfig{
			IndexURL: "https://www.genome.jp/kegg/pathway.html",
			BaseURL:  "https://www.genome.jp",
		},
		BRENDA: BRENDAConfig{
			TextFile: "brenda_2023_1.txt",
		},
		PDB: PDBConfig{
			MirrorURL: "https://files.rcsb.org/pub/pdb/data/structures/divided/xml/",
		},
	}
}
