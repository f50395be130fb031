package fields_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/orenza/orenzadb/pkg/fields"
	"github.com/orenza/orenzadb/pkg/model"
	"github.com/orenza/orenzadb/pkg/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniProtEntry(t *testing.T) {
	assert := assert.New(t)
	rec := `ID   ADH_TEST                Reviewed;         375 AA.
AC   P12345; Q00001;
AC   Q99999;
DE   RecName: Full=Alcohol dehydrogenase; EC=1.1.1.1; EC=1.1.1.-;
DE   AltName: Full=Second name; EC=1.1.1.1;
CC   -!- CATALYTIC ACTIVITY: EC=9.9.9.9;
//
`
	entry, ok := fields.UniProtEntry(rec)
	require.True(t, ok)
	assert.Equal("P12345", entry.Accession)
	assert.ElementsMatch([]model.ECRef{
		{Number: "1.1.1.1", Complete: true},
		{Number: "1.1.1.-", Complete: false},
	}, entry.ECs)
}

func TestUniProtEntryNameNumbers(t *testing.T) {
	rec := "AC   P12345;\n" +
		"DE   RecName: Full=Protein 3.1.2.1-like; EC=2.7.1.1;\n" +
		"DE   AltName: Full=Factor 1.2.3.4; EC=2.7.1.-;\n"
	entry, ok := fields.UniProtEntry(rec)
	require.True(t, ok)
	assert.Equal(t, []model.ECRef{
		{Number: "2.7.1.1", Complete: true},
		{Number: "2.7.1.-", Complete: false},
	}, entry.ECs)
}

func TestUniProtEntryAccession(t *testing.T) {
	tests := []struct {
		msg, rec, acc string
		ok            bool
	}{
		{"six chars OPQ", "AC   Q6GZX4;\nDE   EC=1.1.1.1;\n", "Q6GZX4", true},
		{"six chars", "AC   A2BC19;\nDE   EC=1.1.1.1;\n", "A2BC19", true},
		{"ten chars", "AC   A0A023GPI8;\nDE   EC=1.1.1.1;\n", "A0A023GPI8", true},
		{"later AC ignored", "AC   xxx;\nAC   P12345;\nDE   EC=1.1.1.1;\n", "", false},
		{"no AC", "DE   EC=1.1.1.1;\n", "", false},
	}

	for _, v := range tests {
		entry, ok := fields.UniProtEntry(v.rec)
		assert.Equal(t, v.ok, ok, v.msg)
		if ok {
			assert.Equal(t, v.acc, entry.Accession, v.msg)
		}
	}
}

func TestUniProtBuilder(t *testing.T) {
	text := `AC   P12345;
DE   RecName: Full=A; EC=1.1.1.1;
//
AC   P67890;
DE   RecName: Full=B; EC=2.7.11.-;
//
DE   RecName: Full=C; EC=3.1.1.1;
//
AC   P12345;
DE   RecName: Full=A again; EC=1.1.1.2;
//
`
	up, skipped := fields.UniProt(records.UniProtRecords(text))
	assert.Equal(t, 1, skipped)
	assert.Equal(t, []string{"P12345", "P67890"}, up.Keys())
	assert.Len(t, up["P12345"].ECs, 2)
	assert.False(t, up["P67890"].ECs[0].Complete)
}

const brendaText = "ID\t1.1.1.1\n" +
	"********************************************************************************\n" +
	"PROTEIN\n" +
	"PR\t#1# homo sapiens <1,2>\n" +
	"PR\t#2# no activity <3>\n" +
	"PR\t#3# homo sapiens <4>\n" +
	"PR\t#4# Mus musculus P00329 UniProt <5>\n" +
	"///\n" +
	"ID\t1.1.1.2\n" +
	"PR\t#1# escherichia coli <1>\n" +
	"ID\t1.1.1.3\n" +
	"PR\t#1# rattus norvegicus <1>\n" +
	"///\n" +
	"ID\t1.1.1.1 (transferred to EC 1.1.1.2)\n" +
	"PR\t#1# bos taurus <1>\n" +
	"///\n"

func TestBrendaEntry(t *testing.T) {
	rec := "ID\t1.1.1.1\n...\nPR\t#1# homo sapiens\nPR\t#2# no activity\n///\n"
	ecNumber, species, ok := fields.BrendaEntry(rec)
	require.True(t, ok)
	assert.Equal(t, "1.1.1.1", ecNumber)
	assert.Equal(t, []string{"homo sapiens"}, species)

	_, _, ok = fields.BrendaEntry("ID\t1.1\nPR\t#1# homo sapiens\n///\n")
	assert.False(t, ok)
}

func TestSpecies(t *testing.T) {
	assert := assert.New(t)
	sp, skipped := fields.Species(records.BrendaRecords(brendaText))
	assert.Equal(0, skipped)
	assert.Equal([]string{"1.1.1.1", "1.1.1.3"}, sp.Keys())
	assert.Equal(
		[]string{"homo sapiens", "Mus musculus", "bos taurus"},
		sp["1.1.1.1"],
	)
	assert.Equal([]string{"rattus norvegicus"}, sp["1.1.1.3"])
	_, ok := sp["1.1.1.2"]
	assert.False(ok, "partial record is discarded")
}

const explorenzXML = `<?xml version="1.0"?>
<mysqldump xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
<database name="enzymes">
	<table_structure name="entry">
		<field Field="ec_num" Type="varchar(12)" />
	</table_structure>
	<table_data name="hist">
	<row>
		<field name="ec_num">1.1.1.1</field>
		<field name="action">created</field>
		<field name="history">created 1961</field>
	</row>
	<row>
		<field name="ec_num">1.1.1.5</field>
		<field name="action">deleted</field>
		<field name="history">created 1961, deleted 2003</field>
	</row>
	<row>
		<field name="ec_num">1.1.1.74</field>
		<field name="action">transferred</field>
		<field name="history">created 1972, transferred 1976</field>
	</row>
	</table_data>
	<table_data name="entry">
	<row>
		<field name="ec_num">1.1.1.1</field>
		<field name="accepted_name">alcohol dehydrogenase</field>
		<field name="reaction">a primary alcohol + NAD+ = an aldehyde + NADH + H+</field>
		<field name="sys_name">alcohol:NAD+ oxidoreductase</field>
		<field name="class">1</field>
		<field name="subclass">1</field>
		<field name="subsubclass">1</field>
		<field name="serial">1</field>
		<field name="glossary" xsi:nil="true" />
		<field name="id">1</field>
	</row>
	<row>
		<field name="ec_num">1.1.1.5</field>
		<field name="accepted_name">acetoin dehydrogenase</field>
	</row>
	<row>
		<field name="ec_num">1.1.1.74</field>
		<field name="accepted_name">D-aldohexose dehydrogenase</field>
	</row>
	<row>
		<field name="ec_num">1.1.1.2</field>
		<field name="accepted_name">alcohol dehydrogenase (NADP+)</field>
	</row>
	</table_data>
	<table_data name="class">
	<row>
		<field name="id">1</field>
		<field name="class">1</field>
		<field name="subclass">0</field>
		<field name="subsubclass">0</field>
		<field name="heading">Oxidoreductases</field>
	</row>
	<row>
		<field name="class">1</field>
		<field name="subclass">1</field>
		<field name="subsubclass">0</field>
		<field name="heading">Acting on the CH-OH group of donors</field>
	</row>
	<row>
		<field name="class">1</field>
		<field name="subclass">1</field>
		<field name="subsubclass">1</field>
		<field name="heading">With NAD&lt;small&gt;&lt;sup&gt;+&lt;/sup&gt;&lt;/small&gt; or NADP&lt;sup&gt;+&lt;/sup&gt; as acceptor</field>
	</row>
	</table_data>
</database>
</mysqldump>
`

func TestExplorEnz(t *testing.T) {
	assert := assert.New(t)
	res, err := fields.ExplorEnz(strings.NewReader(explorenzXML))
	require.NoError(t, err)

	assert.Equal([]string{"1.1.1.1", "1.1.1.2"}, res.Enzymes.Keys())
	assert.ElementsMatch([]string{"1.1.1.5", "1.1.1.74"}, res.Removed)

	enz := res.Enzymes["1.1.1.1"]
	assert.Equal("alcohol dehydrogenase", enz.AcceptedName)
	assert.Equal("alcohol:NAD+ oxidoreductase", enz.SysName)
	assert.Equal("1961", enz.Created)
	assert.Equal("1", enz.Subsubclass)
	assert.Empty(enz.Glossary)
	assert.Empty(res.Enzymes["1.1.1.2"].Created)

	assert.Equal(
		[]string{"1.-.-.-", "1.1.-.-", "1.1.1.-"},
		res.Nomenclatures.Keys(),
	)
	nom := res.Nomenclatures["1.1.1.-"]
	assert.Equal("1", nom.ThirdNumber)
	assert.NotContains(nom.Heading, "<")
	assert.Contains(nom.Heading, "NADP")
	assert.Equal("Oxidoreductases", res.Nomenclatures["1.-.-.-"].Heading)
}

func TestExplorEnzBadXML(t *testing.T) {
	_, err := fields.ExplorEnz(strings.NewReader("<mysqldump><database><table_data name=\"entry\"><row>"))
	assert.Error(t, err)
}

const keggIndex = `<html><body>
<h4>1. Metabolism</h4>
<a href="/pathway/map01100">Global map</a>
<b>1.1 Carbohydrate metabolism</b>
<dl>
<dt>00010</dt><dd><a href="/pathway/map00010">Glycolysis / Gluconeogenesis</a></dd>
<dt>00020</dt><dd><a href="/pathway/map00020">Citrate cycle (TCA cycle)</a></dd>
</dl>
<b>1.2 Energy metabolism</b>
<dl>
<dt>00190</dt><dd><a href="/pathway/map00190">Oxidative phosphorylation</a></dd>
<dd><a href="/pathway/map00010">Glycolysis again</a></dd>
<dd><a href="/kegg/pathway.html#global">not a pathway</a></dd>
</dl>
</body></html>`

func TestKEGGIndex(t *testing.T) {
	assert := assert.New(t)
	links, err := fields.KEGGIndex(strings.NewReader(keggIndex))
	require.NoError(t, err)
	require.Len(t, links, 4)

	assert.Equal("map01100", links[0].ID)
	assert.Empty(links[0].Class)
	assert.Equal("map00010", links[1].ID)
	assert.Equal("Glycolysis / Gluconeogenesis", links[1].Title)
	assert.Equal("Carbohydrate metabolism", links[1].Class)
	assert.Equal("/pathway/map00010", links[1].Href)
	assert.Equal("Carbohydrate metabolism", links[2].Class)
	assert.Equal("map00190", links[3].ID)
	assert.Equal("Energy metabolism", links[3].Class)
}

const keggPathway = `<html><body>
<img src="map00010.png" usemap="#mapdata">
<map name="mapdata">
<area shape="rect" coords="1,1,2,2" href="/entry/1.1.1.1" title="1.1.1.1 (ADH1), 1.1.1.2 (AKR1A1)">
<area shape="rect" coords="3,3,4,4" title="1.1.1.1">
<area shape="rect" coords="3,3,4,4" title="2.7.1.-">
<area shape="circle" coords="5,5,6" title="9.9.9.9">
<area shape="rect" coords="7,7,8,8" title="C00031 (D-Glucose)">
</map>
</body></html>`

func TestKEGGPathway(t *testing.T) {
	link := fields.PathwayLink{ID: "map00010", Title: "Glycolysis", Class: "Carbohydrate metabolism"}
	pw, err := fields.KEGGPathway(link, strings.NewReader(keggPathway))
	require.NoError(t, err)
	assert.Equal(t, "map00010", pw.ID)
	assert.Equal(t, "Carbohydrate metabolism", pw.Class)
	assert.Equal(t, []string{"1.1.1.1", "1.1.1.2", "2.7.1.-"}, pw.ECs)

	pws := fields.Pathways([]*model.Pathway{pw, nil})
	assert.Equal(t, []string{"map00010"}, pws.Keys())
}

const pdbml = `<?xml version="1.0" encoding="UTF-8" ?>
<PDBx:datablock datablockName="1ABC" xmlns:PDBx="http://pdbml.pdb.org/schema/pdbx-v50.xsd">
   <PDBx:entityCategory>
      <PDBx:entity id="1">
         <PDBx:pdbx_ec>1.1.1.1</PDBx:pdbx_ec>
      </PDBx:entity>
      <PDBx:entity id="2">
         <PDBx:pdbx_ec>2.2.2.2</PDBx:pdbx_ec>
      </PDBx:entity>
   </PDBx:entityCategory>
   <PDBx:struct_refCategory>
      <PDBx:struct_ref id="1">
         <PDBx:pdbx_db_accession>P00001</PDBx:pdbx_db_accession>
      </PDBx:struct_ref>
      <PDBx:struct_ref id="2">
         <PDBx:pdbx_db_accession>P00002</PDBx:pdbx_db_accession>
      </PDBx:struct_ref>
   </PDBx:struct_refCategory>
</PDBx:datablock>
`

func TestPDBEntry(t *testing.T) {
	assert := assert.New(t)
	ecNumber, ref, ok, err := fields.PDBEntry(strings.NewReader(pdbml))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal("1.1.1.1", ecNumber, "first EC wins")
	assert.Equal("1ABC", ref.PDBID)
	assert.Equal("P00002", ref.Accession, "last accession wins")

	noEC := strings.ReplaceAll(pdbml, "pdbx_ec", "pdbx_other")
	st, err := fields.PDBStructures(strings.NewReader(noEC))
	require.NoError(t, err)
	assert.Empty(st)

	st, err = fields.PDBStructures(strings.NewReader(pdbml))
	require.NoError(t, err)
	assert.Equal(model.Structures{
		"1.1.1.1": {{PDBID: "1ABC", Accession: "P00002"}},
	}, st)
}

const mirrorIndex = `<html><body><pre>
<a href="?C=N;O=D">Name</a>
<a href="/pub/pdb/data/structures/">Parent Directory</a>
<a href="../">..</a>
<a href="00/">00/</a>
<a href="a1/">a1/</a>
<a href="a1/">a1/</a>
<a href="pdb100d.xml.gz">pdb100d.xml.gz</a>
<a href="1abc.xml.gz">1abc.xml.gz</a>
<a href="1abc.cif.gz">1abc.cif.gz</a>
</pre></body></html>`

func TestPDBIndex(t *testing.T) {
	dirs, err := fields.PDBSubfolders(strings.NewReader(mirrorIndex))
	require.NoError(t, err)
	assert.Equal(t, []string{"00/", "a1/"}, dirs)

	files, err := fields.PDBFiles(strings.NewReader(mirrorIndex))
	require.NoError(t, err)
	assert.True(t, slices.Equal([]string{"pdb100d.xml.gz", "1abc.xml.gz"}, files))
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "plain", fields.StripTags("plain"))
	assert.Equal(t, "With NAD+", fields.StripTags("With NAD<sup>+</sup>"))
}
