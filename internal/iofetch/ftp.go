package iofetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/jlaffaye/ftp"
	"github.com/orenza/orenzadb/internal/iofs"
	"github.com/orenza/orenzadb/pkg/sources"
)

// downloadFTP retrieves a UniProt flat file. Every attempt opens a new
// session, exhausting the attempts aborts the stage.
func (f *fetcher) downloadFTP(
	ctx context.Context,
	cfg sources.UniProtConfig,
	path string,
) error {
	target := cfg.Host + cfg.RemoteFile
	err := f.withRetry(ctx, target, func() error {
		return f.retrieve(ctx, cfg, path)
	})
	if err != nil {
		return FTPError(cfg.Host, cfg.RemoteFile, err)
	}
	return nil
}

func (f *fetcher) retrieve(
	ctx context.Context,
	cfg sources.UniProtConfig,
	path string,
) error {
	conn, err := ftp.Dial(
		cfg.Host,
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(time.Duration(f.cfg.Fetch.Timeout)*time.Second),
	)
	if err != nil {
		return fmt.Errorf("%w: connection failed: %w", errRetry, err)
	}
	defer func() {
		if qerr := conn.Quit(); qerr != nil {
			slog.Debug("Cannot quit FTP session", "host", cfg.Host, "error", qerr)
		}
	}()

	if err = conn.Login(cfg.User, cfg.Password); err != nil {
		return fmt.Errorf("login as %s failed: %w", cfg.User, err)
	}

	size, err := conn.FileSize(cfg.RemoteFile)
	if err != nil {
		slog.Debug("Cannot get remote file size", "file", cfg.RemoteFile, "error", err)
		size = 0
	}

	resp, err := conn.Retr(cfg.RemoteFile)
	if err != nil {
		return fmt.Errorf("%w: RETR %s: %w", errRetry, cfg.RemoteFile, err)
	}
	defer resp.Close()

	bar := pb.Full.Start64(size)
	bar.Set("prefix", "Downloading: ")
	bar.Set(pb.Bytes, true)
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	return saveStream(path, bar.NewProxyReader(resp))
}

// createFile opens a local file for a transfer.
var createFile = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// saveStream writes r to path. A partial file is removed. Interrupted
// transfers can be retried, failures to write or close the file cannot.
func saveStream(path string, r io.Reader) error {
	out, err := createFile(path)
	if err != nil {
		return iofs.WriteFileError(path, err)
	}

	var werr error
	if _, err = io.Copy(out, r); err != nil {
		werr = fmt.Errorf("%w: transfer interrupted: %w", errRetry, err)
	}
	if err = out.Close(); err != nil && werr == nil {
		werr = iofs.WriteFileError(path, err)
	}
	if werr != nil {
		os.Remove(path)
	}
	return werr
}
