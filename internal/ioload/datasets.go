package ioload

import (
	"github.com/gnames/gnuuid"
	"github.com/orenza/orenzadb/pkg/model"
	"github.com/orenza/orenzadb/pkg/parserpool"
	"github.com/orenza/orenzadb/pkg/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// loadEnzymes inserts ExplorEnz entries. Counts start at zero and every
// enzyme is an orphan until the cross-link stage runs.
func (l *loader) loadEnzymes(r *run) (int, error) {
	data, err := artifact[model.Enzymes](l.cfg.HomeDir, model.ExplorEnz)
	if err != nil {
		return 0, err
	}
	if err = r.wipe(); err != nil {
		return 0, err
	}

	return r.each(data.Keys(), func(tx *gorm.DB, key string) error {
		e := data[key]
		row := schema.Enzyme{
			ECNumber:     e.ECNumber,
			AcceptedName: e.AcceptedName,
			SysName:      e.SysName,
			OtherNames:   e.OtherNames,
			Reaction:     e.Reaction,
			Comments:     e.Comments,
			Links:        e.Links,
			CasNum:       e.CasNum,
			Glossary:     e.Glossary,
			Class:        e.Class,
			Subclass:     e.Subclass,
			Subsubclass:  e.Subsubclass,
			Serial:       e.Serial,
			Created:      e.Created,
			Orphan:       true,
		}
		return tx.Create(&row).Error
	})
}

func (l *loader) loadNomenclatures(r *run) (int, error) {
	data, err := artifact[model.Nomenclatures](l.cfg.HomeDir, model.Nomenclature)
	if err != nil {
		return 0, err
	}
	if err = r.wipe(); err != nil {
		return 0, err
	}

	return r.each(data.Keys(), func(tx *gorm.DB, key string) error {
		n := data[key]
		row := schema.Nomenclature{
			EC:           n.EC,
			FirstNumber:  n.FirstNumber,
			SecondNumber: n.SecondNumber,
			ThirdNumber:  n.ThirdNumber,
			Heading:      n.Heading,
		}
		return tx.Create(&row).Error
	})
}

// loadUniProt inserts Swiss-Prot or TrEMBL accessions with their EC
// numbers. Both datasets share the code, only the tables differ.
func (l *loader) loadUniProt(r *run) (int, error) {
	data, err := artifact[model.UniProt](l.cfg.HomeDir, r.ds)
	if err != nil {
		return 0, err
	}
	if err = r.wipe(); err != nil {
		return 0, err
	}

	return r.each(data.Keys(), func(tx *gorm.DB, key string) error {
		entry := data[key]
		if err := tx.Create(uniprotEntry(r.ds, key)).Error; err != nil {
			return err
		}
		for _, v := range entry.ECs {
			if err := r.ensureEC(tx, v.Number, v.Complete); err != nil {
				return err
			}
		}

		if r.ds == model.SwissProt {
			rows := make([]schema.SprotECNumber, len(entry.ECs))
			for i, v := range entry.ECs {
				rows[i] = schema.SprotECNumber{Accession: key, ECID: v.Number}
			}
			return insertJoins(tx, rows, r.batchSize)
		}
		rows := make([]schema.TremblECNumber, len(entry.ECs))
		for i, v := range entry.ECs {
			rows[i] = schema.TremblECNumber{Accession: key, ECID: v.Number}
		}
		return insertJoins(tx, rows, r.batchSize)
	})
}

func uniprotEntry(ds model.Source, accession string) any {
	if ds == model.SwissProt {
		return &schema.SprotEntry{Accession: accession}
	}
	return &schema.TremblEntry{Accession: accession}
}

// loadPathways inserts pathway classes, pathways and EC numbers found in
// pathway diagrams.
func (l *loader) loadPathways(r *run) (int, error) {
	data, err := artifact[model.Pathways](l.cfg.HomeDir, model.KEGG)
	if err != nil {
		return 0, err
	}
	if err = r.wipe(); err != nil {
		return 0, err
	}

	return r.each(data.Keys(), func(tx *gorm.DB, key string) error {
		pw := data[key]
		row := schema.Pathway{PathwayID: pw.ID, Title: pw.Title}
		if pw.Class != "" {
			class := schema.PathwayClass{Name: pw.Class}
			err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&class).Error
			if err != nil {
				return err
			}
			row.ClassName = &class.Name
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if err := r.ensureECs(tx, pw.ECs); err != nil {
			return err
		}

		rows := make([]schema.PathwayECNumber, len(pw.ECs))
		for i, v := range pw.ECs {
			rows[i] = schema.PathwayECNumber{PathwayID: pw.ID, ECID: v}
		}
		return insertJoins(tx, rows, r.batchSize)
	})
}

// loadSpecies inserts BRENDA species. A species is shared by many EC
// numbers, its UUID and canonical form are computed once.
func (l *loader) loadSpecies(r *run) (int, error) {
	data, err := artifact[model.Species](l.cfg.HomeDir, model.BRENDA)
	if err != nil {
		return 0, err
	}
	if err = r.wipe(); err != nil {
		return 0, err
	}

	pool := parserpool.NewPool(l.cfg.JobsNumber)
	defer pool.Close()
	known := make(map[string]struct{})

	return r.each(data.Keys(), func(tx *gorm.DB, key string) error {
		names := data[key]
		for _, name := range names {
			if _, ok := known[name]; ok {
				continue
			}
			sp := schema.Species{
				Name:      name,
				UUID:      gnuuid.New(name).String(),
				Canonical: pool.Canonical(name),
			}
			err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&sp).Error
			if err != nil {
				return err
			}
			known[name] = struct{}{}
		}
		if err := r.ensureECs(tx, []string{key}); err != nil {
			return err
		}

		rows := make([]schema.SpeciesECNumber, len(names))
		for i, v := range names {
			rows[i] = schema.SpeciesECNumber{SpeciesName: v, ECID: key}
		}
		return insertJoins(tx, rows, r.batchSize)
	})
}

// loadStructures inserts PDB structures and their EC numbers together
// with the referenced sequence accession.
func (l *loader) loadStructures(r *run) (int, error) {
	data, err := artifact[model.Structures](l.cfg.HomeDir, model.PDB)
	if err != nil {
		return 0, err
	}
	if err = r.wipe(); err != nil {
		return 0, err
	}

	return r.each(data.Keys(), func(tx *gorm.DB, key string) error {
		refs := data[key]
		for _, v := range refs {
			st := schema.Structure{PDBID: v.PDBID}
			err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&st).Error
			if err != nil {
				return err
			}
		}
		if err := r.ensureECs(tx, []string{key}); err != nil {
			return err
		}

		rows := make([]schema.StructureECNumber, len(refs))
		for i, v := range refs {
			rows[i] = schema.StructureECNumber{
				PDBID:     v.PDBID,
				Accession: v.Accession,
				ECID:      key,
			}
		}
		return insertJoins(tx, rows, r.batchSize)
	})
}
