package compiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_MissingToolFallsBack(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir, func(o *Options) { o.Tool = "no-such-typesetter" })
	require.NoError(t, err)

	res, err := c.Compile(context.Background(), `\documentclass{article}`, "resume_test", "John Doe, software engineer")
	require.NoError(t, err)

	assert.False(t, res.PDFGenerated)
	assert.Equal(t, "resume_test_simple.pdf", res.PDFName)
	assert.Equal(t, "resume_test.tex", res.TexName)
	assert.NotEmpty(t, res.Log)

	info, err := os.Stat(filepath.Join(dir, res.PDFName))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// The source is kept next to the artifact.
	src, err := os.ReadFile(filepath.Join(dir, res.TexName))
	require.NoError(t, err)
	assert.Equal(t, `\documentclass{article}`, string(src))
}

func TestCompile_StubToolProducesPDF(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub tool is a shell script")
	}
	dir := t.TempDir()

	// Stand-in typesetter: writes a plausibly sized PDF next to the source.
	tool := filepath.Join(dir, "fakelatex")
	script := "#!/bin/sh\nbase=\"${2%.tex}\"\nhead -c 2048 /dev/zero > \"$base.pdf\"\n"
	require.NoError(t, os.WriteFile(tool, []byte(script), 0o755))

	c, err := New(dir, func(o *Options) { o.Tool = tool })
	require.NoError(t, err)

	res, err := c.Compile(context.Background(), `\documentclass{article}\begin{document}x\end{document}`, "resume_ok", "fallback")
	require.NoError(t, err)

	assert.True(t, res.PDFGenerated)
	assert.Equal(t, "resume_ok.pdf", res.PDFName)

	info, err := os.Stat(filepath.Join(dir, res.PDFName))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(minPDFSize))
}

func TestCompile_NonZeroExitStillRunsBothPasses(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub tool is a shell script")
	}
	dir := t.TempDir()

	// Grumbles (exit 1) on every pass yet leaves a plausible PDF, the way
	// pdflatex behaves in nonstopmode on recoverable errors. Each run is
	// tallied outside the scoped working directory.
	counter := filepath.Join(dir, "runs.txt")
	tool := filepath.Join(dir, "grumpylatex")
	script := fmt.Sprintf("#!/bin/sh\necho run >> %q\nbase=\"${2%%.tex}\"\nhead -c 2048 /dev/zero > \"$base.pdf\"\nexit 1\n", counter)
	require.NoError(t, os.WriteFile(tool, []byte(script), 0o755))

	c, err := New(dir, func(o *Options) { o.Tool = tool })
	require.NoError(t, err)

	res, err := c.Compile(context.Background(), "x", "resume_grumpy", "fallback")
	require.NoError(t, err)
	assert.True(t, res.PDFGenerated)
	assert.Equal(t, "resume_grumpy.pdf", res.PDFName)

	runs, err := os.ReadFile(counter)
	require.NoError(t, err)
	assert.Equal(t, "run\nrun\n", string(runs))
}

func TestCompile_UndersizedOutputIsRejected(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub tool is a shell script")
	}
	dir := t.TempDir()

	tool := filepath.Join(dir, "tinylatex")
	script := "#!/bin/sh\nbase=\"${2%.tex}\"\nprintf tiny > \"$base.pdf\"\n"
	require.NoError(t, os.WriteFile(tool, []byte(script), 0o755))

	c, err := New(dir, func(o *Options) { o.Tool = tool })
	require.NoError(t, err)

	res, err := c.Compile(context.Background(), "x", "resume_tiny", "fallback text")
	require.NoError(t, err)
	assert.False(t, res.PDFGenerated)
	assert.Equal(t, "resume_tiny_simple.pdf", res.PDFName)
}

func TestCompile_CleansUpTempDirs(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir, func(o *Options) { o.Tool = "no-such-typesetter" })
	require.NoError(t, err)

	_, err = c.Compile(context.Background(), "x", "resume_tmp", "text")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, e.IsDir(), "leftover directory %s", e.Name())
	}
}

func TestNew_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	_, err := New(dir)
	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
