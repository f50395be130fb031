package iofetch

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/orenza/orenzadb/pkg/errcode"
)

// HTTPError is returned when a server answers with a status that is not
// worth retrying.
func HTTPError(url string, status int) error {
	return &gn.Error{
		Code: errcode.FetchHTTPError,
		Msg:  "Server returned status %d for <em>%s</em>",
		Vars: []any{status, url},
		Err:  fmt.Errorf("GET %s: status %d", url, status),
	}
}

// FTPError is returned when an FTP session cannot be established or
// a file cannot be retrieved.
func FTPError(host, file string, err error) error {
	msg := `Cannot download <em>%s</em> from FTP server <em>%s</em>

<em>How to fix:</em>
  1. Check host and remote_file in ~/.config/orenzadb/sources.yaml
  2. Check if the server accepts user and password from sources.yaml`

	return &gn.Error{
		Code: errcode.FetchFTPError,
		Msg:  msg,
		Vars: []any{file, host},
		Err:  fmt.Errorf("ftp %s%s: %w", host, file, err),
	}
}

// RetriesExhaustedError is returned when all download attempts failed.
func RetriesExhaustedError(url string, attempts int, err error) error {
	return &gn.Error{
		Code: errcode.FetchRetriesExhaustedError,
		Msg:  "Download of <em>%s</em> failed after %d attempts",
		Vars: []any{url, attempts},
		Err:  fmt.Errorf("download %s failed after %d attempts: %w", url, attempts, err),
	}
}

// IndexError is returned when an index page cannot be parsed.
func IndexError(url string, err error) error {
	return &gn.Error{
		Code: errcode.FetchIndexError,
		Msg:  "Cannot read links from index page <em>%s</em>",
		Vars: []any{url},
		Err:  fmt.Errorf("index %s: %w", url, err),
	}
}

// UnknownSourceError is returned for sources without a fetcher.
func UnknownSourceError(src string) error {
	return &gn.Error{
		Code: errcode.UnknownError,
		Msg:  "Do not know how to download <em>%s</em>",
		Vars: []any{src},
		Err:  fmt.Errorf("no fetcher for source '%s'", src),
	}
}

// isAbsent reports whether the error means that remote data could not be
// obtained, as opposed to a local failure.
func isAbsent(err error) bool {
	var gnErr *gn.Error
	if !errors.As(err, &gnErr) {
		return false
	}
	return gnErr.Code == errcode.FetchRetriesExhaustedError ||
		gnErr.Code == errcode.FetchHTTPError
}
