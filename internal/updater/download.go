package updater

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/nvup/nvup/internal/platform"
)

const chunkSize = 32 * 1024

// Fetcher downloads the release asset to a local path.
type Fetcher interface {
	Download(ctx context.Context, dest string) error
}

// Downloader streams the nightly asset to disk and checks that the number of
// bytes written equals the advertised Content-Length.
type Downloader struct {
	url        string
	httpClient *http.Client
	userAgent  string
	progress   ProgressFunc
	atomic     bool
}

// DownloadOption configures a Downloader.
type DownloadOption func(*Downloader)

// WithDownloadClient sets a custom HTTP client (useful for testing).
func WithDownloadClient(c *http.Client) DownloadOption {
	return func(d *Downloader) {
		d.httpClient = c
	}
}

// WithProgress registers a callback invoked after every chunk. A nil fn
// leaves progress unreported.
func WithProgress(fn ProgressFunc) DownloadOption {
	return func(d *Downloader) {
		if fn != nil {
			d.progress = fn
		}
	}
}

// WithAtomicReplace makes the download go to "<dest>.partial" and only move
// over dest once the size check passed.
func WithAtomicReplace(atomic bool) DownloadOption {
	return func(d *Downloader) {
		d.atomic = atomic
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) DownloadOption {
	return func(d *Downloader) {
		d.userAgent = ua
	}
}

// NewDownloader creates a Downloader for the asset at url.
func NewDownloader(url string, opts ...DownloadOption) *Downloader {
	d := &Downloader{
		url:        url,
		httpClient: http.DefaultClient,
		userAgent:  defaultUserAgent,
		progress:   func(Progress) {},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// URL returns the asset address.
func (d *Downloader) URL() string {
	return d.url
}

// Download writes the asset to dest. On a short transfer the partially
// written file is left in place and ErrIncompleteDownload is returned.
func (d *Downloader) Download(ctx context.Context, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, nil)
	if err != nil {
		return fmt.Errorf("%w: creating download request: %w", ErrTransport, err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: downloading %s: %w", ErrTransport, d.url, err)
	}
	defer resp.Body.Close()

	if !statusOK(resp.StatusCode) {
		return fmt.Errorf("%w: download returned status %d", ErrTransport, resp.StatusCode)
	}
	if resp.ContentLength < 0 {
		return fmt.Errorf("%w: %s did not send Content-Length", ErrSizeUnknown, d.url)
	}
	total := uint64(resp.ContentLength)

	target := dest
	if d.atomic {
		target = partialPath(dest)
	}

	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrFilesystem, target, err)
	}
	closed := false
	defer func() {
		if !closed {
			f.Close()
		}
	}()

	downloaded, stopErr := copyChunks(f, resp.Body, total, d.progress)
	if downloaded != total {
		if stopErr != nil {
			return fmt.Errorf("%w: wrote %d of %d bytes to %s: %w", ErrIncompleteDownload, downloaded, total, target, stopErr)
		}
		return fmt.Errorf("%w: wrote %d of %d bytes to %s", ErrIncompleteDownload, downloaded, total, target)
	}

	if err := f.Sync(); err != nil {
		return fmt.Errorf("%w: syncing %s: %w", ErrFilesystem, target, err)
	}
	closed = true
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", ErrFilesystem, target, err)
	}
	if err := platform.MakeExecutable(target); err != nil {
		return fmt.Errorf("%w: marking %s executable: %w", ErrFilesystem, target, err)
	}

	if d.atomic {
		if err := commitPartial(target, dest); err != nil {
			return fmt.Errorf("%w: %w", ErrFilesystem, err)
		}
	}
	return nil
}

// copyChunks moves body to w one chunk at a time, reporting progress after
// each write. It stops at the first read or write failure and returns the
// number of bytes written together with that failure. A clean end of stream
// returns a nil error.
func copyChunks(w io.Writer, body io.Reader, total uint64, progress ProgressFunc) (uint64, error) {
	var downloaded uint64
	buf := make([]byte, chunkSize)
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			written, writeErr := w.Write(buf[:n])
			downloaded += uint64(written)
			progress(Progress{Downloaded: min(downloaded, total), Total: total})
			if writeErr != nil {
				return downloaded, fmt.Errorf("writing download: %w", writeErr)
			}
		}
		if readErr == io.EOF {
			return downloaded, nil
		}
		if readErr != nil {
			return downloaded, fmt.Errorf("reading download stream: %w", readErr)
		}
	}
}
