package ioupdate

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/orenza/orenzadb/pkg/errcode"
)

// AllSourcesFailedError is returned when no selected source could be
// processed.
func AllSourcesFailedError(count int) error {
	plural := "s"
	if count == 1 {
		plural = ""
	}

	return &gn.Error{
		Code: errcode.UpdateAllSourcesFailedError,
		Msg:  "Failed number of sources: <em>%d</em>",
		Vars: []any{count},
		Err:  fmt.Errorf("%d source%s failed to process", count, plural),
	}
}

// NoSourcesError is returned when the selection contains no valid source.
func NoSourcesError() error {
	return &gn.Error{
		Code: errcode.UpdateNoSourcesError,
		Msg:  "No valid sources selected, nothing to do",
		Err:  errors.New("no valid sources selected"),
	}
}

// CancelledError is returned when the update is interrupted.
func CancelledError(err error) error {
	return &gn.Error{
		Code: errcode.UnknownError,
		Msg:  "Update was cancelled",
		Err:  fmt.Errorf("update cancelled: %w", err),
	}
}
