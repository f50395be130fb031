package iofs

import (
	"archive/tar"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/klauspost/compress/gzip"
	"github.com/orenza/orenzadb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnsureDirs_CreatesDirectories verifies all required
// directories are created.
func TestEnsureDirs_CreatesDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	dirs := []string{
		filepath.Join(tmpDir, ".config", "orenzadb"),
		filepath.Join(tmpDir, ".cache", "orenzadb"),
		filepath.Join(tmpDir, ".cache", "orenzadb", "downloads"),
		filepath.Join(tmpDir, ".cache", "orenzadb", "data"),
		filepath.Join(tmpDir, ".local", "share", "orenzadb", "logs"),
	}
	for _, v := range dirs {
		info, err := os.Stat(v)
		require.NoError(t, err)
		assert.True(t, info.IsDir(), v)
	}
}

// TestEnsureDirs_Idempotent verifies multiple calls work.
func TestEnsureDirs_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))
	require.NoError(t, EnsureDirs(tmpDir))
}

func TestTouchDir_CreatesNewDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	newDir := filepath.Join(tmpDir, "test", "subdir")

	err := touchDir(newDir)
	require.NoError(t, err)

	info, err := os.Stat(newDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))
	require.NoError(t, EnsureConfigFile(tmpDir))

	configPath := filepath.Join(tmpDir, ".config", "orenzadb", "config.yaml")
	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(content))

	// existing file is not overwritten
	customContent := "# Custom config\ndatabase:\n  driver: sqlite"
	require.NoError(t, os.WriteFile(configPath, []byte(customContent), 0644))
	require.NoError(t, EnsureConfigFile(tmpDir))
	content, err = os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, customContent, string(content))
}

func TestEnsureSourcesFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))
	require.NoError(t, EnsureSourcesFile(tmpDir))

	path := filepath.Join(tmpDir, ".config", "orenzadb", "sources.yaml")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, SourcesYAML, string(content))
	assert.Contains(t, SourcesYAML, "enzyme-data.xml.gz")
}

func TestStagingDir(t *testing.T) {
	tmpDir := t.TempDir()
	dir, err := StagingDir(tmpDir, "kegg")
	require.NoError(t, err)
	assert.Equal(t, SourceDir(tmpDir, "kegg"), dir)

	stale := filepath.Join(dir, "stale.html")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	_, err = StagingDir(tmpDir, "kegg")
	require.NoError(t, err)
	assert.False(t, Exists(stale), "staging dir is cleaned")

	require.NoError(t, RemoveStaging(tmpDir, "kegg"))
	assert.False(t, Exists(dir))
}

func TestGunzip(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "data.txt.gz")
	dst := filepath.Join(tmpDir, "data.txt")

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte("ID   ADH1_HUMAN\n//\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(src, buf.Bytes(), 0644))

	require.NoError(t, Gunzip(src, dst))
	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "ID   ADH1_HUMAN\n//\n", string(content))

	require.NoError(t, os.WriteFile(src, []byte("not gzip"), 0644))
	assert.Error(t, Gunzip(src, dst))
}

func TestExtractTarFile(t *testing.T) {
	tmpDir := t.TempDir()
	archive := filepath.Join(tmpDir, "brenda.tar.gz")

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(zw)
	files := map[string]string{
		"brenda/README":            "readme",
		"brenda/brenda_2023_1.txt": "ID\t1.1.1.1\n///\n",
	}
	for name, body := range files {
		hdr := &tar.Header{
			Name:     name,
			Mode:     0644,
			Size:     int64(len(body)),
			Typeflag: tar.TypeReg,
		}
		require.NoError(t, tw.WriteHeader(hdr))
		_, err := tw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(archive, buf.Bytes(), 0644))

	path, err := ExtractTarFile(archive, "brenda_2023_1.txt", tmpDir)
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ID\t1.1.1.1\n///\n", string(content))

	_, err = ExtractTarFile(archive, "missing.txt", tmpDir)
	require.Error(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.DecompressError, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, os.ErrNotExist)
}
