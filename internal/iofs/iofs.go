package iofs

import (
	"archive/tar"
	_ "embed"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/gnames/gnsys"
	"github.com/klauspost/compress/gzip"
	"github.com/orenza/orenzadb/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

//go:embed sources.yaml
var SourcesYAML string

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.DownloadDir(homeDir),
		config.DataDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

func EnsureConfigFile(homeDir string) error {
	return ensureFile(config.ConfigFilePath(homeDir), ConfigYAML)
}

func EnsureSourcesFile(homeDir string) error {
	return ensureFile(config.SourcesFilePath(homeDir), SourcesYAML)
}

func ensureFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return CopyFileError(path, err)
	}

	return nil
}

// Names of scraped pages inside the KEGG staging directory.
const (
	KEGGIndexFile = "index.html"
	KEGGPagesDir  = "pathways"
)

// StagingDir creates an empty directory for raw files of a source
// inside the download directory and returns its path.
func StagingDir(homeDir, source string) (string, error) {
	dir := filepath.Join(config.DownloadDir(homeDir), source)
	if err := gnsys.MakeDir(dir); err != nil {
		return "", CreateDirError(dir, err)
	}
	if err := gnsys.CleanDir(dir); err != nil {
		return "", CreateDirError(dir, err)
	}
	return dir, nil
}

// SourceDir returns the staging directory of a source without touching it.
func SourceDir(homeDir, source string) string {
	return filepath.Join(config.DownloadDir(homeDir), source)
}

// RemoveStaging deletes raw files of a source.
func RemoveStaging(homeDir, source string) error {
	return os.RemoveAll(SourceDir(homeDir, source))
}

// Exists checks if a file or directory exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Gunzip decompresses src into dst.
func Gunzip(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return ReadFileError(src, err)
	}
	defer in.Close()

	zr, err := gzip.NewReader(in)
	if err != nil {
		return DecompressError(src, err)
	}
	defer zr.Close()

	out, err := os.Create(dst)
	if err != nil {
		return WriteFileError(dst, err)
	}
	defer out.Close()

	if _, err = io.Copy(out, zr); err != nil {
		return DecompressError(src, err)
	}
	return nil
}

// ExtractTarFile finds a file by its base name inside a tar.gz archive
// and writes it to dstDir. It returns the path of the extracted file.
func ExtractTarFile(archive, name, dstDir string) (string, error) {
	in, err := os.Open(archive)
	if err != nil {
		return "", ReadFileError(archive, err)
	}
	defer in.Close()

	zr, err := gzip.NewReader(in)
	if err != nil {
		return "", DecompressError(archive, err)
	}
	defer zr.Close()

	tr := tar.NewReader(zr)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", DecompressError(archive, err)
		}
		if hdr.Typeflag != tar.TypeReg || filepath.Base(hdr.Name) != name {
			continue
		}

		dst := filepath.Join(dstDir, name)
		out, err := os.Create(dst)
		if err != nil {
			return "", WriteFileError(dst, err)
		}
		if _, err = io.Copy(out, tr); err != nil {
			out.Close()
			return "", DecompressError(archive, err)
		}
		if err = out.Close(); err != nil {
			return "", WriteFileError(dst, err)
		}
		return dst, nil
	}
	return "", DecompressError(archive, os.ErrNotExist)
}
