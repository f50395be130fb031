package iolink

import (
	"context"
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/orenza/orenzadb/internal/iodb"
	"github.com/orenza/orenzadb/internal/iotesting"
	"github.com/orenza/orenzadb/pkg/errcode"
	"github.com/orenza/orenzadb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seed(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	rows := []any{
		&[]schema.Enzyme{
			{ECNumber: "1.1.1.1", Orphan: true},
			{ECNumber: "1.1.1.2", Orphan: true},
			{ECNumber: "2.7.1.1", Orphan: true},
		},
		&[]schema.ECNumber{
			{Number: "1.1.1.1", Complete: true},
			{Number: "1.1.1.2", Complete: true},
			{Number: "9.9.9.9", Complete: true},
		},
		&[]schema.SprotECNumber{
			{Accession: "P00001", ECID: "1.1.1.1"},
			{Accession: "P00002", ECID: "1.1.1.1"},
			{Accession: "P00003", ECID: "9.9.9.9"},
		},
		&[]schema.TremblECNumber{
			{Accession: "A0A001", ECID: "1.1.1.2"},
		},
		&[]schema.SpeciesECNumber{
			{SpeciesName: "homo sapiens", ECID: "1.1.1.1"},
		},
		&[]schema.StructureECNumber{
			{PDBID: "100D", Accession: "P00001", ECID: "9.9.9.9"},
		},
	}
	for _, v := range rows {
		require.NoError(t, gdb.Create(v).Error)
	}
}

func enzyme(t *testing.T, gdb *gorm.DB, ecNumber string) schema.Enzyme {
	t.Helper()
	var res schema.Enzyme
	require.NoError(t, gdb.First(&res, "ec_number = ?", ecNumber).Error)
	return res
}

func TestLink(t *testing.T) {
	cfg := iotesting.SQLiteConfig(t)
	op := iotesting.NewSQLiteOperator(t, cfg)
	gdb := op.DB()
	seed(t, gdb)

	lk := New(op)
	var first []schema.Enzyme
	for i := range 2 {
		invalid, err := lk.Link(context.Background())
		require.NoError(t, err)
		assert.Equal(t, map[string][]string{
			"sprot":     {"9.9.9.9"},
			"structure": {"9.9.9.9"},
		}, invalid)

		var all []schema.Enzyme
		require.NoError(t, gdb.Order("ec_number").Find(&all).Error)
		if i == 0 {
			first = all
			continue
		}
		assert.Equal(t, first, all)
	}

	e := enzyme(t, gdb, "1.1.1.1")
	assert.Equal(t, 2, e.SprotCount)
	assert.Equal(t, 1, e.SpeciesCount)
	assert.Zero(t, e.TremblCount)
	assert.False(t, e.Orphan)

	e = enzyme(t, gdb, "1.1.1.2")
	assert.Equal(t, 1, e.TremblCount)
	assert.False(t, e.Orphan)

	// not referenced by the lookup table
	e = enzyme(t, gdb, "2.7.1.1")
	assert.True(t, e.Orphan)
	assert.Zero(t, e.SprotCount)
}

func TestLinkRemovedEvidence(t *testing.T) {
	cfg := iotesting.SQLiteConfig(t)
	op := iotesting.NewSQLiteOperator(t, cfg)
	gdb := op.DB()
	seed(t, gdb)

	lk := New(op)
	_, err := lk.Link(context.Background())
	require.NoError(t, err)
	assert.False(t, enzyme(t, gdb, "1.1.1.2").Orphan)

	require.NoError(t, gdb.Exec("DELETE FROM "+schema.TremblECNumbersTable).Error)
	_, err = lk.Link(context.Background())
	require.NoError(t, err)

	e := enzyme(t, gdb, "1.1.1.2")
	assert.Zero(t, e.TremblCount)
	assert.True(t, e.Orphan)
	assert.Equal(t, 2, enzyme(t, gdb, "1.1.1.1").SprotCount)
}

func TestLinkFailureKeepsCounts(t *testing.T) {
	cfg := iotesting.SQLiteConfig(t)
	op := iotesting.NewSQLiteOperator(t, cfg)
	gdb := op.DB()
	seed(t, gdb)

	lk := New(op)
	_, err := lk.Link(context.Background())
	require.NoError(t, err)

	// counting of the last relation fails after all others succeeded
	err = gdb.Migrator().DropTable(schema.StructureECNumbersTable)
	require.NoError(t, err)
	require.NoError(t, gdb.Exec("DELETE FROM "+schema.TremblECNumbersTable).Error)

	_, err = lk.Link(context.Background())
	require.Error(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.LinkCountError, gnErr.Code)

	e := enzyme(t, gdb, "1.1.1.1")
	assert.False(t, e.Orphan)
	assert.Equal(t, 2, e.SprotCount)

	e = enzyme(t, gdb, "1.1.1.2")
	assert.False(t, e.Orphan)
	assert.Equal(t, 1, e.TremblCount)
}

func TestLinkNotConnected(t *testing.T) {
	_, err := New(iodb.NewOperator()).Link(context.Background())
	require.Error(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
}
