package ioparse

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/orenza/orenzadb/pkg/errcode"
)

// SourceFileError is returned when a downloaded file of a source is
// missing or cannot be read.
func SourceFileError(src, path string, err error) error {
	msg := `Cannot read <em>%s</em> file <em>%s</em>

<em>How to fix:</em>
  1. Download the data again: <em>orenzadb download --sources %s</em>
  2. Keep downloaded files with <em>--keep-files</em> to parse them later`

	return &gn.Error{
		Code: errcode.ParseSourceFileError,
		Msg:  msg,
		Vars: []any{src, path, src},
		Err:  fmt.Errorf("cannot read %s file %s: %w", src, path, err),
	}
}

// XMLError is returned when the ExplorEnz dump is not well-formed.
func XMLError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ParseXMLError,
		Msg:  "Cannot parse XML file <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("cannot parse XML %s: %w", path, err),
	}
}

// GzipError is returned when a compressed file cannot be read. For PDB
// files it stops scheduling of new files.
func GzipError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ParseGzipError,
		Msg:  "Cannot decompress <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("cannot decompress %s: %w", path, err),
	}
}

// ArtifactSaveError is returned when an intermediate artifact cannot be
// written.
func ArtifactSaveError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ParseArtifactSaveError,
		Msg:  "Cannot save intermediate data to <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("cannot save artifact %s: %w", path, err),
	}
}

// ArtifactLoadError is returned when an intermediate artifact is missing
// or cannot be decoded.
func ArtifactLoadError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ParseArtifactLoadError,
		Msg:  "Cannot read intermediate data from <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("cannot load artifact %s: %w", path, err),
	}
}

// UnknownSourceError is returned for sources without a parser.
func UnknownSourceError(src string) error {
	return &gn.Error{
		Code: errcode.UnknownError,
		Msg:  "Do not know how to parse <em>%s</em>",
		Vars: []any{src},
		Err:  fmt.Errorf("no parser for source '%s'", src),
	}
}
