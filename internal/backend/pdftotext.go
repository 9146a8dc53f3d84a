// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdftext/internal/convert"
	"github.com/pdiddy/pdftext/pkg/types"
)

const (
	defaultPdftotextBin = "pdftotext"
	pdfinfoBin          = "pdfinfo"
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stdout io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, name string, args []string, stdout io.Writer) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// Pdftotext extracts text by running poppler's pdftotext and splitting its
// output on the form feed it emits after every page.
type Pdftotext struct {
	bin  string
	exec executor
}

// NewPdftotext creates a backend that runs bin, or "pdftotext" from PATH
// when bin is empty.
func NewPdftotext(bin string) *Pdftotext {
	return newPdftotext(bin, &osExecutor{})
}

func newPdftotext(bin string, exec executor) *Pdftotext {
	if bin == "" {
		bin = defaultPdftotextBin
	}
	return &Pdftotext{bin: bin, exec: exec}
}

func (p *Pdftotext) Name() string { return string(types.BackendPdftotext) }

// Open runs pdftotext over the whole file and holds the page texts in memory.
func (p *Pdftotext) Open(ctx context.Context, path string) (convert.Document, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	if _, err := p.exec.LookPath(p.bin); err != nil {
		return nil, fmt.Errorf("%s not found on PATH: %w", p.bin, err)
	}

	var out bytes.Buffer
	args := []string{"-enc", "UTF-8", path, "-"}
	if err := p.exec.Run(ctx, p.bin, args, &out); err != nil {
		return nil, fmt.Errorf("running %s on %s: %w", p.bin, path, err)
	}

	return &textDocument{
		pages: splitPages(out.String()),
		info:  p.readInfo(ctx, path),
	}, nil
}

// readInfo runs pdfinfo from the same directory as the pdftotext binary.
// Any failure yields empty info.
func (p *Pdftotext) readInfo(ctx context.Context, path string) types.DocumentInfo {
	bin := filepath.Join(filepath.Dir(p.bin), pdfinfoBin)
	if filepath.Dir(p.bin) == "." {
		bin = pdfinfoBin
	}
	if _, err := p.exec.LookPath(bin); err != nil {
		return types.DocumentInfo{}
	}

	var out bytes.Buffer
	if err := p.exec.Run(ctx, bin, []string{"-enc", "UTF-8", path}, &out); err != nil {
		return types.DocumentInfo{}
	}
	return parseInfo(out.String())
}

// parseInfo reads the "Key: value" lines printed by pdfinfo.
func parseInfo(out string) types.DocumentInfo {
	var info types.DocumentInfo
	for _, line := range strings.Split(out, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch key {
		case "Title":
			info.Title = value
		case "Author":
			info.Author = value
		case "Creator":
			info.Creator = value
		case "Producer":
			info.Producer = value
		}
	}
	return info
}

// splitPages splits pdftotext output into per-page texts. Each page is
// terminated by a form feed, so the element after the last one is dropped.
// Trailing newlines are trimmed from every page.
func splitPages(out string) []string {
	if out == "" {
		return nil
	}
	pages := strings.Split(out, "\f")
	if pages[len(pages)-1] == "" {
		pages = pages[:len(pages)-1]
	}
	for i, page := range pages {
		pages[i] = strings.TrimRight(page, "\n")
	}
	return pages
}
