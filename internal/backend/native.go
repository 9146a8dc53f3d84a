// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backend

import (
	"context"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/pdftext/internal/convert"
	"github.com/pdiddy/pdftext/pkg/types"
)

// Native extracts text in-process with github.com/ledongthuc/pdf.
type Native struct{}

// NewNative creates the pure-Go backend.
func NewNative() *Native { return &Native{} }

func (n *Native) Name() string { return string(types.BackendNative) }

// maxTreeDepth bounds page tree recursion; cyclic Kids references hit it.
const maxTreeDepth = 32

// Open parses the PDF at path and walks its page tree. The parser panics on
// malformed objects; panics in the document structure are returned as
// errors, while a page object that cannot be loaded becomes a page whose
// Text returns the error.
func (n *Native) Open(ctx context.Context, path string) (doc convert.Document, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("parsing %s: %v", path, r)
		}
		if err != nil {
			f.Close()
		}
	}()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	r, err := pdf.NewReader(f, fi.Size())
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	root := r.Trailer().Key("Root").Key("Pages")
	count := root.Key("Count").Int64()
	if count < 0 {
		return nil, fmt.Errorf("parsing %s: negative page count %d", path, count)
	}

	var pages []nativePage
	if err := collectPages(root, 0, count, &pages); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if int64(len(pages)) != count {
		return nil, fmt.Errorf("parsing %s: page tree holds %d pages but /Count is %d", path, len(pages), count)
	}

	return &nativeDocument{file: f, pages: pages, info: readInfo(r)}, nil
}

// collectPages appends every leaf under node to pages in document order.
// It stops as soon as the tree holds more leaves than the declared count.
func collectPages(node pdf.Value, depth int, count int64, pages *[]nativePage) error {
	if depth > maxTreeDepth {
		return fmt.Errorf("page tree deeper than %d levels", maxTreeDepth)
	}
	kids := node.Key("Kids")
	for i := 0; i < kids.Len(); i++ {
		if int64(len(*pages)) > count {
			return fmt.Errorf("page tree holds more pages than /Count %d", count)
		}
		kid, typ, err := loadKid(kids, i)
		if err != nil {
			*pages = append(*pages, nativePage{err: err})
			continue
		}
		if typ == "Pages" {
			if err := collectPages(kid, depth+1, count, pages); err != nil {
				return err
			}
			continue
		}
		*pages = append(*pages, nativePage{v: kid})
	}
	return nil
}

// loadKid resolves entry i of a Kids array and its /Type.
func loadKid(kids pdf.Value, i int) (kid pdf.Value, typ string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("loading page object: %v", r)
		}
	}()
	kid = kids.Index(i)
	return kid, kid.Key("Type").Name(), nil
}

// readInfo reads the trailer /Info dictionary. A damaged dictionary yields
// empty info rather than failing the open.
func readInfo(r *pdf.Reader) (info types.DocumentInfo) {
	defer func() {
		if recover() != nil {
			info = types.DocumentInfo{}
		}
	}()
	v := r.Trailer().Key("Info")
	if v.IsNull() {
		return types.DocumentInfo{}
	}
	return types.DocumentInfo{
		Title:    v.Key("Title").Text(),
		Author:   v.Key("Author").Text(),
		Creator:  v.Key("Creator").Text(),
		Producer: v.Key("Producer").Text(),
	}
}

type nativeDocument struct {
	file  *os.File
	pages []nativePage
	info  types.DocumentInfo
}

func (d *nativeDocument) NumPages() int { return len(d.pages) }

func (d *nativeDocument) Page(n int) convert.Page { return d.pages[n-1] }

func (d *nativeDocument) Info() types.DocumentInfo { return d.info }

func (d *nativeDocument) Close() error { return d.file.Close() }

// nativePage is one leaf of the page tree, or the error met loading it.
type nativePage struct {
	v   pdf.Value
	err error
}

// Text returns the page's plain text. A missing page object has no text.
func (p nativePage) Text() (text string, err error) {
	if p.err != nil {
		return "", p.err
	}
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("extracting text: %v", r)
		}
	}()
	if p.v.IsNull() {
		return "", nil
	}
	return pdf.Page{V: p.v}.GetPlainText(nil)
}
