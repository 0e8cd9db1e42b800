// Package thumbnails downloads remote preview images into local temporary files.
package thumbnails

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/vidfriends/mediafinders/internal/logging"
)

// File is a downloaded thumbnail. The caller owns the underlying temporary
// file and should call Remove once the contents have been consumed.
type File struct {
	Path string
	Name string
	Size int64
}

// Open opens the downloaded file for reading.
func (f *File) Open() (*os.File, error) {
	return os.Open(f.Path)
}

// Remove deletes the temporary file. Removing an already missing file is not an error.
func (f *File) Remove() error {
	if f == nil || f.Path == "" {
		return nil
	}
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Downloader fetches thumbnails on a best-effort basis: every failure yields a
// nil *File rather than an error.
type Downloader struct {
	Client *http.Client
	// Dir is where temporary files are created; empty means os.TempDir().
	Dir string
}

// NewDownloader constructs a Downloader writing into dir.
func NewDownloader(client *http.Client, dir string) *Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Downloader{Client: client, Dir: dir}
}

// Download streams rawURL into a new temporary file named after prefix and the
// URL's last path segment. It returns nil when the URL is empty, has no file
// name, cannot be fetched, or produces an empty or unreadable file.
func (d *Downloader) Download(ctx context.Context, rawURL, prefix string) *File {
	if strings.TrimSpace(rawURL) == "" {
		return nil
	}

	name := fileName(rawURL)
	if name == "" {
		return nil
	}
	if prefix != "" {
		name = prefix + "_" + name
	}

	ctx, span := logging.StartSpan(ctx, "thumbnails.download")
	defer span.End()
	logger := logging.FromContext(ctx).With(slog.String("url", rawURL))

	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		logger.Warn("thumbnail request invalid", "error", err)
		return nil
	}

	resp, err := client.Do(req)
	if err != nil {
		logger.Warn("thumbnail request failed", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("thumbnail request rejected", "status", resp.StatusCode)
		return nil
	}

	tmp, err := os.CreateTemp(d.Dir, "*_"+name)
	if err != nil {
		logger.Error("create thumbnail temp file", "error", err)
		return nil
	}

	size, copyErr := io.Copy(tmp, resp.Body)
	closeErr := tmp.Close()

	file := &File{Path: tmp.Name(), Name: name, Size: size}
	if copyErr != nil || closeErr != nil {
		logger.Warn("thumbnail download interrupted", "copyError", copyErr, "closeError", closeErr)
		_ = file.Remove()
		return nil
	}

	if !readable(file) {
		logger.Warn("thumbnail download empty or unreadable", "path", file.Path)
		_ = file.Remove()
		return nil
	}

	logger.Debug("thumbnail downloaded", "path", file.Path, "size", file.Size)
	return file
}

func fileName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	base := path.Base(u.Path)
	if base == "/" || base == "." {
		return ""
	}
	return base
}

func readable(f *File) bool {
	info, err := os.Stat(f.Path)
	if err != nil || info.Size() <= 0 {
		return false
	}
	fh, err := f.Open()
	if err != nil {
		return false
	}
	_ = fh.Close()
	f.Size = info.Size()
	return true
}
