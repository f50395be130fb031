// Package orenzadb builds a relational database of enzyme annotations
// aggregated from ExplorEnz, UniProt, KEGG, BRENDA and PDB.
package orenzadb

var (
	// Version of orenzadb, set during build.
	Version = "v0.1.0"
	// Build timestamp, set during build.
	Build = "n/a"
)
