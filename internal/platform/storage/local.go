// Copyright (c) 2026 Dugout. All rights reserved.

/*
Package storage persists uploaded media on the local filesystem and turns
stored references into download URLs.

Stored references are relative ("/uploads/<file>"); absolute URLs such as
YouTube links are kept as-is. [Local.URL] is the single place where a
reference becomes a fully qualified URL.
*/
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dugoutlab/dugout/internal/platform/apperr"
	"github.com/dugoutlab/dugout/internal/platform/ctxutil"
	"github.com/dugoutlab/dugout/pkg/slug"
	"github.com/dugoutlab/dugout/pkg/uuid"
)

// File describes a stored upload.
type File struct {
	Filename string `json:"filename"`
	// Path is the relative reference persisted in media lists.
	Path string `json:"path"`
	URL  string `json:"url"`
}

// Local stores files in a single flat directory.
type Local struct {
	dir       string
	urlPrefix string
	baseURL   string
	maxBytes  int64
}

// NewLocal creates the upload directory if needed.
func NewLocal(dir, urlPrefix, publicBaseURL string, maxBytes int64) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create upload dir %s: %w", dir, err)
	}

	prefix := "/" + strings.Trim(urlPrefix, "/")
	return &Local{
		dir:       dir,
		urlPrefix: prefix,
		baseURL:   strings.TrimRight(publicBaseURL, "/"),
		maxBytes:  maxBytes,
	}, nil
}

// Prefix is the URL path the static handler is mounted at.
func (l *Local) Prefix() string { return l.urlPrefix }

// MaxBytes is the per-file upload limit.
func (l *Local) MaxBytes() int64 { return l.maxBytes }

// Save stores r under "<uuid><ext>", keeping only the original extension.
func (l *Local) Save(ctx context.Context, originalName string, r io.Reader) (File, error) {
	return l.write(ctx, uuid.New()+strings.ToLower(filepath.Ext(originalName)), r)
}

// SaveReadable stores r under "<uuid>_<slugged original name>".
func (l *Local) SaveReadable(ctx context.Context, originalName string, r io.Reader) (File, error) {
	return l.write(ctx, uuid.New()+"_"+slug.FileName(originalName), r)
}

func (l *Local) write(ctx context.Context, filename string, r io.Reader) (File, error) {
	target := filepath.Join(l.dir, filename)

	out, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return File{}, apperr.Internal(fmt.Errorf("storage: create %s: %w", filename, err))
	}

	written, copyErr := io.Copy(out, io.LimitReader(r, l.maxBytes+1))
	closeErr := out.Close()

	if copyErr == nil && written > l.maxBytes {
		copyErr = apperr.PayloadTooLarge(fmt.Sprintf("File exceeds the %d byte upload limit", l.maxBytes))
	}
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		_ = os.Remove(target)
		if apperr.IsAppError(copyErr) {
			return File{}, copyErr
		}
		return File{}, apperr.Internal(fmt.Errorf("storage: write %s: %w", filename, copyErr))
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "upload_stored",
		slog.String("filename", filename),
		slog.Int64("bytes", written),
	)

	ref := path.Join(l.urlPrefix, filename)
	return File{Filename: filename, Path: ref, URL: l.URL(ref)}, nil
}

// Remove deletes a stored file by reference. Absolute URLs and missing files are ignored.
func (l *Local) Remove(ref string) error {
	if ref == "" || IsAbsolute(ref) {
		return nil
	}
	err := os.Remove(filepath.Join(l.dir, path.Base(ref)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: remove %s: %w", ref, err)
	}
	return nil
}

// URL resolves a stored reference to a download URL.
//
// Scheme-prefixed references pass through unchanged; relative ones are
// rebuilt from their base name under the public upload prefix.
func (l *Local) URL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || IsAbsolute(ref) {
		return ref
	}
	return l.baseURL + l.urlPrefix + "/" + path.Base(strings.ReplaceAll(ref, `\`, "/"))
}

// Relative turns a download URL served by this store back into the stored
// reference. Other values are returned trimmed but otherwise unchanged.
func (l *Local) Relative(ref string) string {
	ref = strings.TrimSpace(ref)
	served := l.baseURL + l.urlPrefix + "/"
	if strings.HasPrefix(ref, served) {
		return l.urlPrefix + "/" + path.Base(strings.TrimPrefix(ref, served))
	}
	return ref
}

// URLs maps [Local.URL] over a list, preserving order.
func (l *Local) URLs(refs []string) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, l.URL(ref))
	}
	return out
}

// Handler serves stored files read-only, without directory listings.
func (l *Local) Handler() http.Handler {
	return http.StripPrefix(l.urlPrefix, http.FileServer(noListing{http.Dir(l.dir)}))
}

// IsAbsolute reports whether ref carries a URL scheme.
func IsAbsolute(ref string) bool {
	scheme, _, found := strings.Cut(ref, "://")
	return found && scheme != "" && !strings.ContainsAny(scheme, "/.")
}

// noListing hides directories from http.FileServer.
type noListing struct {
	fs http.FileSystem
}

func (n noListing) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
