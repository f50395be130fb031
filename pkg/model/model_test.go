package model_test

import (
	"testing"

	"github.com/orenza/orenzadb/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewECRef(t *testing.T) {
	ref, err := model.NewECRef("1.1.1.1")
	require.NoError(t, err)
	assert.Equal(t, model.ECRef{Number: "1.1.1.1", Complete: true}, ref)

	ref, err = model.NewECRef("1.1.1.-")
	require.NoError(t, err)
	assert.False(t, ref.Complete)

	_, err = model.NewECRef("1.1.1")
	assert.Error(t, err)
}

func TestNewSource(t *testing.T) {
	src, err := model.NewSource(" SProt ")
	require.NoError(t, err)
	assert.Equal(t, model.SwissProt, src)

	_, err = model.NewSource("genbank")
	assert.Error(t, err)
}

func TestMergeStructuresCommutative(t *testing.T) {
	a := func() model.Structures {
		return model.Structures{
			"1.1.1.1": {{PDBID: "1ABC", Accession: "P07327"}},
			"2.7.1.1": {{PDBID: "2XYZ", Accession: "P19367"}},
		}
	}
	b := func() model.Structures {
		return model.Structures{
			"1.1.1.1": {{PDBID: "3DEF", Accession: "P00325"}},
			"3.1.1.1": {{PDBID: "4GHI", Accession: ""}},
		}
	}

	ab := model.Structures{}
	model.MergeStructures(ab, a())
	model.MergeStructures(ab, b())

	ba := model.Structures{}
	model.MergeStructures(ba, b())
	model.MergeStructures(ba, a())

	assert.Equal(t, ab.Sorted(), ba.Sorted())
	assert.Len(t, ab["1.1.1.1"], 2)
	assert.Equal(t, []string{"1.1.1.1", "2.7.1.1", "3.1.1.1"}, ab.Keys())
}

func TestMergeStructuresAssociative(t *testing.T) {
	a := model.Structures{"1.1.1.1": {{PDBID: "1ABC"}}}
	b := model.Structures{"1.1.1.1": {{PDBID: "2ABC"}}}
	c := model.Structures{"1.1.1.1": {{PDBID: "3ABC"}}, "1.1.1.2": {{PDBID: "4ABC"}}}

	left := model.Structures{}
	model.MergeStructures(left, a)
	model.MergeStructures(left, b)
	model.MergeStructures(left, c)

	bc := model.Structures{}
	model.MergeStructures(bc, b)
	model.MergeStructures(bc, c)
	right := model.Structures{}
	model.MergeStructures(right, a)
	model.MergeStructures(right, bc)

	assert.Equal(t, left.Sorted(), right.Sorted())
}

func TestAddSpecies(t *testing.T) {
	sp := model.Species{}
	sp.AddSpecies("1.1.1.1", "Homo sapiens")
	sp.AddSpecies("1.1.1.1", "Mus musculus")
	sp.AddSpecies("1.1.1.1", "Homo sapiens")
	assert.Equal(t, []string{"Homo sapiens", "Mus musculus"}, sp["1.1.1.1"])
}

func TestEnzymesRemove(t *testing.T) {
	enz := model.Enzymes{
		"1.1.1.1": {ECNumber: "1.1.1.1"},
		"1.1.1.2": {ECNumber: "1.1.1.2"},
	}
	assert.Equal(t, 1, enz.Remove("1.1.1.2", "9.9.9.9"))
	assert.Equal(t, []string{"1.1.1.1"}, enz.Keys())
}

func TestDatasets(t *testing.T) {
	assert.Equal(t,
		[]model.Source{model.ExplorEnz, model.Nomenclature},
		model.ExplorEnz.Datasets(),
	)
	assert.Equal(t, []model.Source{model.PDB}, model.PDB.Datasets())
	assert.False(t, model.KEGG.Linked())
	assert.True(t, model.BRENDA.Linked())

	_, err := model.NewSource("nomenclature")
	assert.Error(t, err)
}
