// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backend

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdftext/internal/convert"
	"github.com/pdiddy/pdftext/internal/pdftest"
	"github.com/pdiddy/pdftext/pkg/types"
)

func TestNative_Open(t *testing.T) {
	path := pdftest.Write(t, "Sample", "Hello", "", "World")

	doc, err := NewNative().Open(context.Background(), path)
	require.NoError(t, err)
	defer doc.Close()

	require.Equal(t, 3, doc.NumPages())

	var got []string
	for i := 1; i <= doc.NumPages(); i++ {
		text, err := doc.Page(i).Text()
		require.NoError(t, err)
		got = append(got, strings.TrimSpace(text))
	}
	assert.Equal(t, []string{"Hello", "", "World"}, got)

	info := doc.Info()
	assert.Equal(t, "Sample", info.Title)
	assert.Equal(t, "pdftest", info.Producer)
}

func TestNative_ZeroPages(t *testing.T) {
	path := pdftest.Write(t, "Empty")

	doc, err := NewNative().Open(context.Background(), path)
	require.NoError(t, err)
	defer doc.Close()

	assert.Equal(t, 0, doc.NumPages())
}

func TestNative_OpenErrors(t *testing.T) {
	dir := t.TempDir()
	notPDF := filepath.Join(dir, "notes.pdf")
	require.NoError(t, os.WriteFile(notPDF, []byte("this is not a pdf"), 0o644))

	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.pdf")},
		{name: "not a pdf", path: notPDF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewNative().Open(context.Background(), tt.path)
			assert.Error(t, err)
			assert.Nil(t, doc)
		})
	}
}

func TestNative_CancelledContext(t *testing.T) {
	path := pdftest.Write(t, "Sample", "Hello")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewNative().Open(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNative_ConvertFile(t *testing.T) {
	src := pdftest.Write(t, "Sample", "Hello", "World")
	dst := filepath.Join(t.TempDir(), "out.txt")

	conv, err := convert.ConvertFile(context.Background(), NewNative(), src, dst, convert.Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, conv.Pages)
	assert.Equal(t, "native", conv.Backend)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.HasPrefix(out, "--- PAGE 1 ---\n"))
	assert.Contains(t, out, "\n\n--- PAGE 2 ---\n")
	assert.Contains(t, out, "Hello")
	assert.Contains(t, out, "World")
	assert.Less(t, strings.Index(out, "Hello"), strings.Index(out, "World"))
}

// writeCorruptPDF builds a PDF and overwrites old with replacement, which
// must have the same length so the xref offsets stay valid.
func writeCorruptPDF(t *testing.T, old, replacement string, pages ...string) string {
	t.Helper()
	require.Len(t, replacement, len(old))
	data := pdftest.Build("Sample", pages...)
	require.True(t, bytes.Contains(data, []byte(old)), "fixture lacks %q", old)
	data = bytes.Replace(data, []byte(old), []byte(replacement), 1)

	path := filepath.Join(t.TempDir(), "corrupt.pdf")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestNative_CorruptDocument(t *testing.T) {
	tests := []struct {
		name        string
		old         string
		replacement string
		pages       []string
	}{
		{
			name:        "broken pages object",
			old:         "2 0 obj",
			replacement: "xxxxxxx",
			pages:       []string{"Hello"},
		},
		{
			name:        "huge page count",
			old:         "/Kids [4 0 R] /Count 1",
			replacement: "/Count 99999999999999 ",
			pages:       []string{"Hello"},
		},
		{
			name:        "count larger than tree",
			old:         "/Count 1",
			replacement: "/Count 5",
			pages:       []string{"Hello"},
		},
		{
			name:        "count smaller than tree",
			old:         "/Count 2",
			replacement: "/Count 1",
			pages:       []string{"Hello", "World"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := writeCorruptPDF(t, tt.old, tt.replacement, tt.pages...)
			dst := filepath.Join(t.TempDir(), "out.txt")

			_, err := convert.ConvertFile(context.Background(), NewNative(), src, dst, convert.Options{})
			var openErr *convert.DocumentOpenError
			require.ErrorAs(t, err, &openErr)

			_, statErr := os.Stat(dst)
			assert.True(t, os.IsNotExist(statErr), "no output file should exist")
		})
	}
}

func TestNative_CorruptPage(t *testing.T) {
	// Object 6 is the second page dictionary.
	src := writeCorruptPDF(t, "6 0 obj", "xxxxxxx", "Hello", "World")
	dst := filepath.Join(t.TempDir(), "out.txt")

	var warn bytes.Buffer
	conv, err := convert.ConvertFile(context.Background(), NewNative(), src, dst, convert.Options{Warn: &warn})
	require.NoError(t, err)
	assert.Equal(t, 2, conv.Pages)
	assert.Equal(t, []int{2}, conv.FailedPages)
	assert.Contains(t, warn.String(), "warning: page 2:")

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Hello")
	assert.True(t, strings.HasSuffix(string(data), "\n\n--- PAGE 2 ---\n"))
}

func TestNative_CorruptPageStrict(t *testing.T) {
	src := writeCorruptPDF(t, "6 0 obj", "xxxxxxx", "Hello", "World")
	dst := filepath.Join(t.TempDir(), "out.txt")

	_, err := convert.ConvertFile(context.Background(), NewNative(), src, dst, convert.Options{Strict: true})
	var pageErr *convert.PageExtractError
	require.ErrorAs(t, err, &pageErr)
	assert.Equal(t, 2, pageErr.Page)

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr))
}

func TestNative_CorruptInfo(t *testing.T) {
	// Object 6 is the information dictionary of a one-page document.
	src := writeCorruptPDF(t, "6 0 obj", "xxxxxxx", "Hello")

	doc, err := NewNative().Open(context.Background(), src)
	require.NoError(t, err)
	defer doc.Close()

	assert.Equal(t, 1, doc.NumPages())
	assert.Equal(t, types.DocumentInfo{}, doc.Info())
}
