// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Backend identifies the PDF text extraction tool.
type Backend string

const (
	BackendNative    Backend = "native"
	BackendPdftotext Backend = "pdftotext"
)

// ConversionConfig holds settings for a single PDF-to-text conversion.
type ConversionConfig struct {
	// Backend selects the extraction tool: native or pdftotext.
	Backend Backend `json:"backend" yaml:"backend"`

	// PdftotextBin is the pdftotext binary name or path (default "pdftotext").
	PdftotextBin string `json:"pdftotext_bin,omitempty" yaml:"pdftotext_bin,omitempty"`

	// Strict aborts the run when any page fails to extract instead of
	// writing an empty section for it.
	Strict bool `json:"strict" yaml:"strict"`

	// MetaPath is where the YAML conversion record is written. Empty disables it.
	MetaPath string `json:"meta,omitempty" yaml:"meta,omitempty"`

	// HistoryPath is the SQLite history database. Empty disables recording.
	HistoryPath string `json:"history,omitempty" yaml:"history,omitempty"`
}
