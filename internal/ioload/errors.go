package ioload

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/orenza/orenzadb/pkg/errcode"
)

// NotConnectedError is returned when loading starts without a database
// connection.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database is not connected",
		Err:  fmt.Errorf("database not connected"),
	}
}

// WipeError is returned when old rows of a dataset cannot be deleted.
func WipeError(table string, err error) error {
	msg := `Cannot delete rows of table <em>%s</em>

<em>How to fix:</em>
  1. Make sure the schema exists: <em>orenzadb create</em>
  2. Make sure no other orenzadb process uses the database`

	return &gn.Error{
		Code: errcode.LoadWipeError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("cannot wipe table %s: %w", table, err),
	}
}

// InsertError is returned when rows of one top-level key cannot be
// inserted. Keys inserted before it stay committed.
func InsertError(ds, key string, err error) error {
	return &gn.Error{
		Code: errcode.LoadInsertError,
		Msg:  "Cannot insert <em>%s</em> data for <em>%s</em>",
		Vars: []any{ds, key},
		Err:  fmt.Errorf("cannot insert %s key %s: %w", ds, key, err),
	}
}

// UnknownDatasetError is returned for datasets without a loader.
func UnknownDatasetError(ds string) error {
	return &gn.Error{
		Code: errcode.UnknownError,
		Msg:  "Do not know how to load <em>%s</em>",
		Vars: []any{ds},
		Err:  fmt.Errorf("no loader for dataset '%s'", ds),
	}
}
