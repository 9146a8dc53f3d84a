// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "fmt"

// UsageError reports a wrong number of command-line arguments.
type UsageError struct {
	Program string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("Usage: %s <input.pdf> <output.txt>", e.Program)
}

// DocumentOpenError reports that the source could not be opened as a PDF:
// it is missing, unreadable, or not a valid document.
type DocumentOpenError struct {
	Path string
	Err  error
}

func (e *DocumentOpenError) Error() string {
	return fmt.Sprintf("cannot open document %s: %v", e.Path, e.Err)
}

func (e *DocumentOpenError) Unwrap() error { return e.Err }

// DestinationWriteError reports that the output text could not be written.
type DestinationWriteError struct {
	Path string
	Err  error
}

func (e *DestinationWriteError) Error() string {
	return fmt.Sprintf("cannot write %s: %v", e.Path, e.Err)
}

func (e *DestinationWriteError) Unwrap() error { return e.Err }

// PageExtractError reports a page whose text extraction failed in strict mode.
type PageExtractError struct {
	Page int
	Err  error
}

func (e *PageExtractError) Error() string {
	return fmt.Sprintf("extracting page %d: %v", e.Page, e.Err)
}

func (e *PageExtractError) Unwrap() error { return e.Err }
