// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DocumentInfo holds the document information dictionary entries a backend
// could read. Backends that cannot read them leave the fields empty.
type DocumentInfo struct {
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Author   string `json:"author,omitempty" yaml:"author,omitempty"`
	Creator  string `json:"creator,omitempty" yaml:"creator,omitempty"`
	Producer string `json:"producer,omitempty" yaml:"producer,omitempty"`
}

// Conversion records the outcome of converting one PDF to text.
type Conversion struct {
	// Source is the input PDF path as given on the command line.
	Source string `json:"source" yaml:"source"`

	// Output is the destination text file path.
	Output string `json:"output" yaml:"output"`

	// Backend names the extraction tool that produced the text.
	Backend string `json:"backend" yaml:"backend"`

	// Pages is the number of pages in the document, and the number of
	// sections in the output.
	Pages int `json:"pages" yaml:"pages"`

	// EmptyPages lists 1-based page numbers whose section has no text.
	EmptyPages []int `json:"empty_pages,omitempty" yaml:"empty_pages,omitempty"`

	// FailedPages lists 1-based page numbers whose extraction returned an
	// error. They are a subset of EmptyPages.
	FailedPages []int `json:"failed_pages,omitempty" yaml:"failed_pages,omitempty"`

	Info DocumentInfo `json:"info" yaml:"info,omitempty"`

	// ConvertedAt is when the output file was written (UTC).
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}
