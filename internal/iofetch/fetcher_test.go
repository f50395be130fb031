package iofetch

import (
	"archive/tar"
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/jarcoal/httpmock"
	"github.com/klauspost/compress/gzip"
	"github.com/orenza/orenzadb/internal/iofs"
	"github.com/orenza/orenzadb/pkg/config"
	"github.com/orenza/orenzadb/pkg/errcode"
	"github.com/orenza/orenzadb/pkg/model"
	"github.com/orenza/orenzadb/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHTTPMock(t *testing.T) {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
}

func newTestFetcher(t *testing.T) *fetcher {
	t.Helper()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptFetchMaxRetries(3),
		config.OptFetchPDBWorkers(2),
	})
	f := New(cfg, sources.Default()).(*fetcher)
	f.delay = time.Millisecond
	return f
}

func errCode(err error) gn.ErrorCode {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return gnErr.Code
	}
	return errcode.UnknownError
}

func TestFetchExplorEnz(t *testing.T) {
	setupHTTPMock(t)
	f := newTestFetcher(t)
	url := f.sources.ExplorEnz.URL
	httpmock.RegisterResponder("GET", url,
		httpmock.NewStringResponder(http.StatusOK, "dump"))

	err := f.Fetch(context.Background(), model.ExplorEnz)
	require.NoError(t, err)

	path := filepath.Join(
		iofs.SourceDir(f.cfg.HomeDir, "explorenz"), f.sources.ExplorEnz.File,
	)
	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "dump", string(bs))
}

func TestFetchRetry(t *testing.T) {
	setupHTTPMock(t)
	f := newTestFetcher(t)
	url := f.sources.ExplorEnz.URL

	var calls int
	httpmock.RegisterResponder("GET", url,
		func(*http.Request) (*http.Response, error) {
			calls++
			if calls < 3 {
				return httpmock.NewStringResponse(http.StatusServiceUnavailable, ""), nil
			}
			return httpmock.NewStringResponse(http.StatusOK, "dump"), nil
		})

	err := f.Fetch(context.Background(), model.ExplorEnz)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestFetchBulkFailure(t *testing.T) {
	setupHTTPMock(t)
	f := newTestFetcher(t)
	url := f.sources.ExplorEnz.URL
	httpmock.RegisterResponder("GET", url,
		httpmock.NewStringResponder(http.StatusInternalServerError, ""))

	err := f.Fetch(context.Background(), model.ExplorEnz)
	require.Error(t, err)
	assert.Equal(t, errcode.FetchRetriesExhaustedError, errCode(err))
	assert.Equal(t, 3, httpmock.GetTotalCallCount())

	path := filepath.Join(
		iofs.SourceDir(f.cfg.HomeDir, "explorenz"), f.sources.ExplorEnz.File,
	)
	assert.False(t, iofs.Exists(path))
}

func TestFetchNotFoundNoRetry(t *testing.T) {
	setupHTTPMock(t)
	f := newTestFetcher(t)
	url := f.sources.ExplorEnz.URL
	httpmock.RegisterResponder("GET", url,
		httpmock.NewStringResponder(http.StatusNotFound, ""))

	err := f.Fetch(context.Background(), model.ExplorEnz)
	require.Error(t, err)
	assert.Equal(t, errcode.FetchHTTPError, errCode(err))
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

const keggIndex = `<html><body>
<b>1.1 Carbohydrate metabolism</b>
<a href="/pathway/map00010">Glycolysis</a>
<a href="/pathway/map00020">Citrate cycle</a>
</body></html>`

func TestFetchKEGG(t *testing.T) {
	setupHTTPMock(t)
	f := newTestFetcher(t)
	cfg := f.sources.KEGG
	httpmock.RegisterResponder("GET", cfg.IndexURL,
		httpmock.NewStringResponder(http.StatusOK, keggIndex))
	httpmock.RegisterResponder("GET", cfg.BaseURL+"/pathway/map00010",
		httpmock.NewStringResponder(http.StatusOK, `<area shape="rect" title="1.1.1.1">`))
	httpmock.RegisterResponder("GET", cfg.BaseURL+"/pathway/map00020",
		httpmock.NewStringResponder(http.StatusInternalServerError, ""))

	err := f.Fetch(context.Background(), model.KEGG)
	require.NoError(t, err)

	dir := iofs.SourceDir(f.cfg.HomeDir, "kegg")
	assert.True(t, iofs.Exists(filepath.Join(dir, iofs.KEGGIndexFile)))
	assert.True(t, iofs.Exists(filepath.Join(dir, iofs.KEGGPagesDir, "map00010.html")))
	assert.False(t, iofs.Exists(filepath.Join(dir, iofs.KEGGPagesDir, "map00020.html")))
}

func TestFetchKEGGIndexAbsent(t *testing.T) {
	setupHTTPMock(t)
	f := newTestFetcher(t)
	httpmock.RegisterResponder("GET", f.sources.KEGG.IndexURL,
		httpmock.NewErrorResponder(errors.New("connection reset")))

	err := f.Fetch(context.Background(), model.KEGG)
	require.NoError(t, err)
	dir := iofs.SourceDir(f.cfg.HomeDir, "kegg")
	assert.False(t, iofs.Exists(filepath.Join(dir, iofs.KEGGIndexFile)))
}

func registerPDBMirror(root string) {
	httpmock.RegisterResponder("GET", root,
		httpmock.NewStringResponder(http.StatusOK,
			`<a href="../">up</a><a href="00/">00/</a><a href="a1/">a1/</a>`))
	httpmock.RegisterResponder("GET", root+"00/",
		httpmock.NewStringResponder(http.StatusOK,
			`<a href="100d.xml.gz">100d.xml.gz</a><a href="200d.xml.gz">200d.xml.gz</a>`))
	httpmock.RegisterResponder("GET", root+"00/100d.xml.gz",
		httpmock.NewBytesResponder(http.StatusOK, []byte("gz")))
	httpmock.RegisterResponder("GET", root+"00/200d.xml.gz",
		httpmock.NewStringResponder(http.StatusNotFound, ""))
	httpmock.RegisterResponder("GET", root+"a1/",
		httpmock.NewStringResponder(http.StatusBadGateway, ""))
}

func TestFetchPDB(t *testing.T) {
	setupHTTPMock(t)
	f := newTestFetcher(t)
	registerPDBMirror(f.sources.PDB.MirrorURL)

	err := f.Fetch(context.Background(), model.PDB)
	require.NoError(t, err)

	dir := iofs.SourceDir(f.cfg.HomeDir, "pdb")
	assert.True(t, iofs.Exists(filepath.Join(dir, "00", "100d.xml.gz")))
	assert.False(t, iofs.Exists(filepath.Join(dir, "00", "200d.xml.gz")))
	assert.False(t, iofs.Exists(filepath.Join(dir, "a1")))
}

func TestFetchPDBNoWorkers(t *testing.T) {
	setupHTTPMock(t)
	f := newTestFetcher(t)
	f.cfg.Fetch.PDBWorkers = 0
	registerPDBMirror(f.sources.PDB.MirrorURL)

	done := make(chan error, 1)
	go func() { done <- f.Fetch(context.Background(), model.PDB) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("PDB download did not finish")
	}
	dir := iofs.SourceDir(f.cfg.HomeDir, "pdb")
	assert.True(t, iofs.Exists(filepath.Join(dir, "00", "100d.xml.gz")))
}

type failingCloser struct {
	bytes.Buffer
}

func (*failingCloser) Close() error {
	return errors.New("disk full")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestSaveStream(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "ok.dat.gz")
	require.NoError(t, saveStream(path, strings.NewReader("data")))
	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(bs))

	path = filepath.Join(dir, "broken.dat.gz")
	err = saveStream(path, failingReader{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errRetry)
	assert.False(t, iofs.Exists(path))
}

func TestSaveStreamCloseError(t *testing.T) {
	orig := createFile
	t.Cleanup(func() { createFile = orig })
	var out failingCloser
	createFile = func(string) (io.WriteCloser, error) { return &out, nil }

	err := saveStream(filepath.Join(t.TempDir(), "dump.dat.gz"),
		strings.NewReader("data"))
	require.Error(t, err)
	assert.Equal(t, errcode.WriteFileError, errCode(err))
	assert.Equal(t, "data", out.String())
}

func TestFetchFTPFailure(t *testing.T) {
	f := newTestFetcher(t)
	f.retries = 2
	f.sources.SwissProt.Host = "127.0.0.1:1"

	err := f.Fetch(context.Background(), model.SwissProt)
	require.Error(t, err)
	assert.Equal(t, errcode.FetchFTPError, errCode(err))
}

func TestFetchBRENDA(t *testing.T) {
	f := newTestFetcher(t)
	archive := filepath.Join(t.TempDir(), "brenda.tar.gz")
	writeTarGz(t, archive, "release/brenda_2023_1.txt", "ID\t1.1.1.1\n///\n")
	f.sources.BRENDA.CompressedFile = archive

	err := f.Fetch(context.Background(), model.BRENDA)
	require.NoError(t, err)

	path := filepath.Join(iofs.SourceDir(f.cfg.HomeDir, "brenda"), "brenda_2023_1.txt")
	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ID\t1.1.1.1\n///\n", string(bs))

	f.sources.BRENDA.TextFile = "missing.txt"
	err = f.Fetch(context.Background(), model.BRENDA)
	assert.Error(t, err)
}

func TestFetchUnknownSource(t *testing.T) {
	f := newTestFetcher(t)
	err := f.Fetch(context.Background(), model.Nomenclature)
	assert.Error(t, err)
}

func writeTarGz(t *testing.T, path, name, content string) {
	t.Helper()
	out, err := os.Create(path)
	require.NoError(t, err)
	defer out.Close()

	zw := gzip.NewWriter(out)
	tw := tar.NewWriter(zw)
	err = tw.WriteHeader(&tar.Header{
		Name:     name,
		Mode:     0644,
		Size:     int64(len(content)),
		Typeflag: tar.TypeReg,
	})
	require.NoError(t, err)
	_, err = tw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, zw.Close())
}
