package ioparse

import (
	"os"
	"path/filepath"

	"github.com/gnames/gnfmt"
	"github.com/orenza/orenzadb/pkg/config"
	"github.com/orenza/orenzadb/pkg/model"
)

// ArtifactPath returns the location of the intermediate artifact of a
// dataset.
func ArtifactPath(homeDir string, ds model.Source) string {
	return filepath.Join(config.DataDir(homeDir), string(ds)+".gob")
}

// SaveArtifact encodes a mapping of the intermediate model and writes it
// to the data directory, replacing an older artifact of the dataset.
func SaveArtifact(homeDir string, ds model.Source, data any) error {
	path := ArtifactPath(homeDir, ds)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return ArtifactSaveError(path, err)
	}

	enc := gnfmt.GNgob{}
	bs, err := enc.Encode(data)
	if err != nil {
		return ArtifactSaveError(path, err)
	}

	tmp := path + ".tmp"
	if err = os.WriteFile(tmp, bs, 0644); err != nil {
		return ArtifactSaveError(path, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return ArtifactSaveError(path, err)
	}
	return nil
}

// LoadArtifact decodes the artifact of a dataset into data, which must be
// a pointer to the mapping type of the dataset.
func LoadArtifact(homeDir string, ds model.Source, data any) error {
	path := ArtifactPath(homeDir, ds)
	bs, err := os.ReadFile(path)
	if err != nil {
		return ArtifactLoadError(path, err)
	}

	enc := gnfmt.GNgob{}
	if err = enc.Decode(bs, data); err != nil {
		return ArtifactLoadError(path, err)
	}
	return nil
}
