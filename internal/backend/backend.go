// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package backend provides the PDF text extraction backends behind
// convert.Opener: a pure-Go parser and the poppler pdftotext tool.
package backend

import (
	"fmt"

	"github.com/pdiddy/pdftext/internal/convert"
	"github.com/pdiddy/pdftext/pkg/types"
)

// New returns the backend selected by cfg.Backend. An empty name selects
// the native backend.
func New(cfg types.ConversionConfig) (convert.Opener, error) {
	switch cfg.Backend {
	case "", types.BackendNative:
		return NewNative(), nil
	case types.BackendPdftotext:
		return NewPdftotext(cfg.PdftotextBin), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want %s or %s)",
			cfg.Backend, types.BackendNative, types.BackendPdftotext)
	}
}

// textDocument is a Document whose pages were already extracted to memory.
type textDocument struct {
	pages []string
	info  types.DocumentInfo
}

func (d *textDocument) NumPages() int            { return len(d.pages) }
func (d *textDocument) Page(n int) convert.Page  { return textPage(d.pages[n-1]) }
func (d *textDocument) Info() types.DocumentInfo { return d.info }
func (d *textDocument) Close() error             { return nil }

type textPage string

func (p textPage) Text() (string, error) { return string(p), nil }
