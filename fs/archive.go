// Package fs provides file-based storage for crawled HTML.
package fs

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/andybalholm/brotli"
	"github.com/tasanda/ceu"
)

var _ ceu.HTMLArchive = (*Archive)(nil)

// archiveExt is the file extension of archived pages.
const archiveExt = ".html.br"

// providerName restricts provider directory names.
var providerName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Archive stores brotli-compressed copies of crawled HTML under
// baseDir/<provider>/<url hash>.html.br. Writes are atomic: a page is
// written to a temporary file and renamed into place.
type Archive struct {
	baseDir string
	quality int
}

// NewArchive creates an Archive rooted at baseDir.
func NewArchive(baseDir string) *Archive {
	return &Archive{
		baseDir: baseDir,
		quality: brotli.DefaultCompression,
	}
}

// Path returns the file an archived page is stored in.
func (a *Archive) Path(provider, url string) (string, error) {
	if !providerName.MatchString(provider) {
		return "", ceu.Errorf(ceu.EINVALID, "invalid provider name %q", provider)
	}
	if url == "" {
		return "", ceu.Errorf(ceu.EINVALID, "archive URL required")
	}
	return filepath.Join(a.baseDir, provider, ceu.HashContent(url)+archiveExt), nil
}

// Save archives html for the page at url and returns the file path.
// An existing copy is replaced.
func (a *Archive) Save(provider, url, html string) (string, error) {
	path, err := a.Path(provider, url)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, a.quality)
	if _, err := io.WriteString(w, html); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, ".archive-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}

// Load returns the archived HTML for the page at url.
// Returns ENOTFOUND if the page is not archived.
func (a *Archive) Load(provider, url string) (string, error) {
	path, err := a.Path(provider, url)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ceu.Errorf(ceu.ENOTFOUND, "page %s not archived", url)
	} else if err != nil {
		return "", err
	}
	defer f.Close()

	html, err := io.ReadAll(brotli.NewReader(f))
	if err != nil {
		return "", err
	}
	return string(html), nil
}

// Exists reports whether a page is archived.
func (a *Archive) Exists(provider, url string) bool {
	path, err := a.Path(provider, url)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}
