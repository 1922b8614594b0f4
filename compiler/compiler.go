// Package compiler turns LaTeX markup into a PDF. It shells out to an
// external typesetting tool (pdflatex by default) and, when that fails for
// any reason, programmatically draws a minimal single-page PDF so callers
// always receive a usable artifact.
package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/Ishan11032005GitHub/career-navigator-backend/logging"
)

const (
	// passTimeout bounds one typesetting pass. A timeout is a compile
	// failure, not a fatal error.
	passTimeout = 60 * time.Second
	// minPDFSize is the smallest plausible output. Anything smaller is
	// treated as a garbage compile even on exit status zero.
	minPDFSize = 1000
	// fallbackBodyLimit caps the text drawn into the fallback document.
	fallbackBodyLimit = 1500
)

// Result describes one compile attempt. PDFName is always set: it names
// either the typeset document or the fallback one.
type Result struct {
	PDFGenerated bool   // true when the typesetting tool produced the PDF
	Log          string // combined stdout/stderr of both passes
	PDFName      string // file name under the output directory
	TexName      string // source file name under the output directory
}

// Options configure a Compiler.
type Options struct {
	// Tool is the typesetting executable. Defaults to pdflatex.
	Tool   string
	Logger logging.Logger
}

// Compiler compiles LaTeX sources into PDFs under OutputDir. Concurrent
// calls are safe: every compile works on per-request file names inside its
// own temporary directory.
type Compiler struct {
	outputDir string
	tool      string
	logger    logging.Logger
}

// New creates a Compiler writing artifacts under outputDir, creating the
// directory if needed.
func New(outputDir string, optFns ...func(o *Options)) (*Compiler, error) {
	opts := Options{Tool: "pdflatex", Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Compiler{outputDir: outputDir, tool: opts.Tool, logger: opts.Logger}, nil
}

// OutputDir returns the directory compiled artifacts are written to.
func (c *Compiler) OutputDir() string { return c.outputDir }

// Compile writes code to <baseName>.tex, runs the typesetting tool twice
// (the second pass resolves cross-references) and moves the resulting PDF
// next to the source. On any typesetting failure it draws a fallback
// document named <baseName>_simple.pdf from fallbackText instead. Only
// filesystem errors are returned; everything else degrades to the
// fallback path.
func (c *Compiler) Compile(ctx context.Context, code, baseName, fallbackText string) (Result, error) {
	res := Result{
		TexName: baseName + ".tex",
		PDFName: baseName + ".pdf",
	}

	texPath := filepath.Join(c.outputDir, res.TexName)
	if err := os.WriteFile(texPath, []byte(code), 0o644); err != nil {
		return res, fmt.Errorf("write latex source: %w", err)
	}

	log, ok := c.typeset(ctx, texPath, baseName)
	res.Log = log
	if ok {
		res.PDFGenerated = true
		c.logger.Info("latex compile succeeded", "pdf", res.PDFName)
		return res, nil
	}

	c.logger.Warn("latex compile failed, drawing fallback pdf", "base", baseName)
	res.PDFName = baseName + "_simple.pdf"
	if err := c.drawFallback(filepath.Join(c.outputDir, res.PDFName), fallbackText); err != nil {
		return res, fmt.Errorf("fallback pdf: %w", err)
	}
	return res, nil
}

// typeset runs the external tool in a scoped temp directory and reports
// whether a plausible PDF landed in the output directory.
func (c *Compiler) typeset(ctx context.Context, texPath, baseName string) (string, bool) {
	var combined bytes.Buffer

	tmpDir, err := os.MkdirTemp(c.outputDir, "tex-")
	if err != nil {
		combined.WriteString(err.Error())
		return combined.String(), false
	}
	defer os.RemoveAll(tmpDir)

	src, err := os.ReadFile(texPath)
	if err != nil {
		combined.WriteString(err.Error())
		return combined.String(), false
	}
	tmpTex := filepath.Join(tmpDir, filepath.Base(texPath))
	if err := os.WriteFile(tmpTex, src, 0o644); err != nil {
		combined.WriteString(err.Error())
		return combined.String(), false
	}

	for pass := 0; pass < 2; pass++ {
		passCtx, cancel := context.WithTimeout(ctx, passTimeout)
		cmd := exec.CommandContext(passCtx, c.tool, "-interaction=nonstopmode", filepath.Base(texPath))
		cmd.Dir = tmpDir
		out, err := cmd.CombinedOutput()
		timedOut := passCtx.Err() != nil
		cancel()
		combined.Write(out)
		if err != nil {
			combined.WriteString("\n" + err.Error())
			c.logger.Warn("typesetting pass failed", "pass", pass+1, "error", err)
			// Non-zero exits are routine in nonstopmode and can still
			// leave a usable PDF, so the cross-reference pass proceeds.
			// Only a tool that never ran, or one killed on timeout,
			// makes the second pass pointless.
			var exitErr *exec.ExitError
			if timedOut || !errors.As(err, &exitErr) {
				break
			}
		}
	}

	produced := filepath.Join(tmpDir, baseName+".pdf")
	info, err := os.Stat(produced)
	if err != nil || info.Size() <= minPDFSize {
		return combined.String(), false
	}
	if err := os.Rename(produced, filepath.Join(c.outputDir, baseName+".pdf")); err != nil {
		combined.WriteString("\n" + err.Error())
		return combined.String(), false
	}
	return combined.String(), true
}

// drawFallback emits a single-page PDF with a fixed title and the first
// fallbackBodyLimit characters of text. This path cannot fail to produce
// a file barring filesystem errors.
func (c *Compiler) drawFallback(path, text string) error {
	if len(text) > fallbackBodyLimit {
		text = text[:fallbackBodyLimit]
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "SOFTWARE ENGINEER RESUME", "", 1, "L", false, 0, "")
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, text, "", "L", false)
	return pdf.OutputFileAndClose(path)
}
