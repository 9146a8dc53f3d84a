//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds the CLI and converts every PDF under samples/ into
// samples/text/, one .txt per PDF.
func Convert() error {
	mg.Deps(Build)

	pdfs, err := filepath.Glob(filepath.Join(samplesDir, "*.pdf"))
	if err != nil {
		return err
	}
	if len(pdfs) == 0 {
		fmt.Printf("[convert] No PDFs in %s/.\n", samplesDir)
		return nil
	}

	outDir := filepath.Join(samplesDir, "text")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}

	bin := filepath.Join(binDir, binName)
	for _, pdf := range pdfs {
		base := filepath.Base(pdf)
		out := filepath.Join(outDir, base[:len(base)-len(filepath.Ext(base))]+".txt")
		if err := sh.RunV(bin, pdf, out); err != nil {
			return fmt.Errorf("converting %s: %w", pdf, err)
		}
	}
	return nil
}
