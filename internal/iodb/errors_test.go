package iodb_test

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/orenza/orenzadb/internal/iodb"
	"github.com/orenza/orenzadb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
	}{
		{"connection", iodb.ConnectionError("localhost", 5432, "orenza", cause),
			errcode.DBConnectionError},
		{"sqlite", iodb.SQLiteConnectionError("/tmp/x.sqlite", cause),
			errcode.DBConnectionError},
		{"driver", iodb.UnknownDriverError("mysql"), errcode.DBUnknownDriverError},
		{"not connected", iodb.NotConnectedError(), errcode.DBNotConnectedError},
		{"query tables", iodb.QueryTablesError(cause), errcode.DBQueryTablesError},
		{"drop table", iodb.DropTableError("enzymes", cause), errcode.DBDropTableError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gnErr *gn.Error
			require.True(t, errors.As(tt.err, &gnErr))
			assert.Equal(t, tt.code, gnErr.Code)
			assert.NotEmpty(t, gnErr.Msg)
			assert.Error(t, gnErr.Err)
		})
	}
}
