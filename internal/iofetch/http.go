package iofetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/orenza/orenzadb/internal/iofs"
)

// errRetry marks a failed attempt that can be repeated.
var errRetry = errors.New("transient failure")

// withRetry runs op up to f.retries times. The pause between attempts
// doubles after every failure. Errors not wrapping errRetry stop the loop
// at once.
func (f *fetcher) withRetry(
	ctx context.Context,
	target string,
	op func() error,
) error {
	var lastErr error
	delay := f.delay
	for attempt := range f.retries {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := op()
		if err == nil {
			return nil
		}
		if !errors.Is(err, errRetry) {
			return err
		}
		lastErr = err

		if attempt == f.retries-1 {
			break
		}
		slog.Debug("Retrying download",
			"target", target,
			"attempt", attempt+1,
			"delay", delay,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return RetriesExhaustedError(target, f.retries, lastErr)
}

// get downloads a page into memory.
func (f *fetcher) get(ctx context.Context, url string) ([]byte, error) {
	var res []byte
	err := f.withRetry(ctx, url, func() error {
		var buf bytes.Buffer
		if err := f.request(ctx, url, &buf); err != nil {
			return err
		}
		res = buf.Bytes()
		return nil
	})
	return res, err
}

// download saves a remote file to path.
func (f *fetcher) download(ctx context.Context, url, path string) error {
	return f.withRetry(ctx, url, func() error {
		out, err := os.Create(path)
		if err != nil {
			return iofs.WriteFileError(path, err)
		}
		err = f.request(ctx, url, out)
		if cerr := out.Close(); err == nil && cerr != nil {
			err = iofs.WriteFileError(path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
		return err
	})
}

func (f *fetcher) request(ctx context.Context, url string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("cannot create request for %s: %w", url, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", errRetry, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: GET %s: status %d", errRetry, url, resp.StatusCode)
	default:
		return HTTPError(url, resp.StatusCode)
	}

	if _, err = io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("%w: %w", errRetry, err)
	}
	return nil
}
