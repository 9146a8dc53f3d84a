// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns a PDF document into marked-up plain text: one
// section per page, each headed by a page marker, joined by blank lines.
// Text extraction itself is delegated to a backend behind the Opener
// interface.
package convert

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/pdftext/pkg/types"
)

const (
	// pageMarker heads every section; the verb is the 1-based page number.
	pageMarker = "--- PAGE %d ---\n"
	// sectionSep separates consecutive sections in the output text.
	sectionSep = "\n\n"
)

// Page is one page of an opened document.
type Page interface {
	// Text returns the page's extracted text. An empty string with a nil
	// error means the page has no text.
	Text() (string, error)
}

// Document is an opened, read-only PDF exposing its pages in order.
type Document interface {
	// NumPages returns the number of pages.
	NumPages() int

	// Page returns page n, where n runs from 1 to NumPages.
	Page(n int) Page

	// Info returns the document information the backend could read.
	Info() types.DocumentInfo

	// Close releases the underlying file or buffers.
	Close() error
}

// Opener opens a path as a Document. Backends (native, pdftotext)
// implement this interface.
type Opener interface {
	// Name returns the backend name recorded in conversion results.
	Name() string

	// Open parses the file at path.
	Open(ctx context.Context, path string) (Document, error)
}

// Options controls how page extraction failures are handled.
type Options struct {
	// Strict turns any page extraction error into a PageExtractError.
	Strict bool

	// Warn receives one line per failed page when Strict is false.
	// A nil Warn discards the warnings.
	Warn io.Writer
}

// Section formats the text of page n with its marker.
func Section(n int, text string) string {
	return fmt.Sprintf(pageMarker, n) + text
}

// Format builds the output text from per-page texts, numbering pages from 1.
// No pages yields the empty string.
func Format(texts []string) string {
	sections := make([]string, len(texts))
	for i, text := range texts {
		sections[i] = Section(i+1, text)
	}
	return strings.Join(sections, sectionSep)
}

// Extract reads the text of every page of doc in order. A page whose
// extraction fails contributes an empty string and its number is returned
// in failed, unless opts.Strict is set, in which case the first failure is
// returned as a *PageExtractError.
func Extract(doc Document, opts Options) (texts []string, failed []int, err error) {
	warn := opts.Warn
	if warn == nil {
		warn = io.Discard
	}

	// NumPages may come from an untrusted page count, so texts grows with
	// the pages actually read.
	n := doc.NumPages()
	for i := 1; i <= n; i++ {
		text, err := doc.Page(i).Text()
		if err != nil {
			if opts.Strict {
				return nil, nil, &PageExtractError{Page: i, Err: err}
			}
			fmt.Fprintf(warn, "warning: page %d: %v\n", i, err)
			failed = append(failed, i)
			text = ""
		}
		texts = append(texts, text)
	}
	return texts, failed, nil
}

// ConvertFile opens src with o, extracts and formats every page, and writes
// the result to dst in a single atomic write. On any error no file is left
// at dst (an existing file there is left untouched).
func ConvertFile(ctx context.Context, o Opener, src, dst string, opts Options) (*types.Conversion, error) {
	doc, err := o.Open(ctx, src)
	if err != nil {
		return nil, &DocumentOpenError{Path: src, Err: err}
	}
	defer doc.Close()

	texts, failed, err := Extract(doc, opts)
	if err != nil {
		return nil, err
	}

	if err := writeAtomic(dst, []byte(Format(texts))); err != nil {
		return nil, &DestinationWriteError{Path: dst, Err: err}
	}

	var empty []int
	for i, text := range texts {
		if text == "" {
			empty = append(empty, i+1)
		}
	}

	return &types.Conversion{
		Source:      src,
		Output:      dst,
		Backend:     o.Name(),
		Pages:       len(texts),
		EmptyPages:  empty,
		FailedPages: failed,
		Info:        doc.Info(),
		ConvertedAt: time.Now().UTC(),
	}, nil
}

// writeAtomic writes data to a temporary file beside path and renames it
// into place, so readers see either the old file or the complete new one.
// A symlinked path is written through to its target. An existing file keeps
// its permissions; a new one is created 0644 minus the umask.
func writeAtomic(path string, data []byte) (err error) {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}

	perm := os.FileMode(0o644)
	keepMode := false
	if fi, err := os.Stat(path); err == nil {
		perm, keepMode = fi.Mode().Perm(), true
	}

	tmp, err := createTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-", perm)
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if keepMode {
		if err = os.Chmod(tmpName, perm); err != nil {
			return err
		}
	}
	return os.Rename(tmpName, path)
}

// createTemp is os.CreateTemp with a caller-chosen mode, so the umask
// applies to new files.
func createTemp(dir, prefix string, perm os.FileMode) (*os.File, error) {
	for i := 0; ; i++ {
		name := filepath.Join(dir, prefix+strconv.FormatUint(uint64(rand.Uint32()), 36))
		f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, perm)
		if os.IsExist(err) && i < 10000 {
			continue
		}
		return f, err
	}
}
