package iolink

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/orenza/orenzadb/pkg/errcode"
)

// NotConnectedError is returned when linking starts without a database
// connection.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database is not connected",
		Err:  fmt.Errorf("database not connected"),
	}
}

// CountError is returned when join rows of a relation cannot be counted.
func CountError(relation string, err error) error {
	return &gn.Error{
		Code: errcode.LinkCountError,
		Msg:  "Cannot count <em>%s</em> evidence",
		Vars: []any{relation},
		Err:  fmt.Errorf("cannot count %s relation: %w", relation, err),
	}
}

// UpdateError is returned when enzyme counts cannot be written.
func UpdateError(relation string, err error) error {
	return &gn.Error{
		Code: errcode.LinkUpdateError,
		Msg:  "Cannot update enzymes with <em>%s</em> counts",
		Vars: []any{relation},
		Err:  fmt.Errorf("cannot update enzymes for %s: %w", relation, err),
	}
}
