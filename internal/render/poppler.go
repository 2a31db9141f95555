// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/pdfraster/internal/logging"
	"github.com/pdiddy/pdfraster/internal/pdfinfo"
	"github.com/pdiddy/pdfraster/pkg/types"
)

const (
	pdftoppmBin = "pdftoppm"

	// pageRoot is the filename root handed to pdftoppm; it appends
	// "-<index>.<ext>" per page.
	pageRoot = "page"
)

// executor abstracts command execution for testing.
type executor interface {
	Run(name string, args ...string) error
}

// osExecutor runs commands through os/exec, surfacing stderr in errors
// since pdftoppm reports its failures there.
type osExecutor struct{}

func (osExecutor) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%v: %s", err, msg)
		}
		return err
	}
	return nil
}

// PopplerRenderer rasterizes PDFs with poppler's pdftoppm. Page images are
// staged in a temporary directory inside the output directory, verified
// against the document's page count, and renamed into place as
// page_<n>.<ext> with n counting from 1.
type PopplerRenderer struct {
	exec       executor
	countPages func(path string) (int, error)
}

// NewPopplerRenderer creates the production renderer.
func NewPopplerRenderer() *PopplerRenderer {
	return &PopplerRenderer{
		exec:       osExecutor{},
		countPages: pdfinfo.PageCount,
	}
}

// binary resolves the pdftoppm invocation path. With a poppler directory
// the full path is used; otherwise PATH resolution is left to the OS.
func (p *PopplerRenderer) binary(popplerPath string) string {
	bin := pdftoppmBin
	if runtime.GOOS == "windows" {
		bin += ".exe"
	}
	if popplerPath != "" {
		return filepath.Join(popplerPath, bin)
	}
	return bin
}

// Render implements Renderer.
func (p *PopplerRenderer) Render(req types.Request) (*Result, error) {
	start := time.Now()

	pages, err := p.countPages(req.InputPath)
	if err != nil {
		return nil, &ConversionError{Input: req.InputPath, Err: err}
	}
	logging.Info("rendering", "input", req.InputPath, "pages", pages, "dpi", req.DPI, "format", string(req.Format))

	// Staging inside the output directory keeps the final renames on one
	// filesystem.
	staging, err := os.MkdirTemp(req.OutputDir, ".pdfraster-")
	if err != nil {
		return nil, &ConversionError{Input: req.InputPath, Err: fmt.Errorf("creating staging directory: %w", err)}
	}
	defer os.RemoveAll(staging)

	args := []string{"-r", strconv.Itoa(req.DPI)}
	if flag := req.Format.PdftoppmFlag(); flag != "" {
		args = append(args, flag)
	}
	args = append(args, req.InputPath, filepath.Join(staging, pageRoot))

	if err := p.exec.Run(p.binary(req.PopplerPath), args...); err != nil {
		return nil, &ConversionError{Input: req.InputPath, Err: err}
	}

	produced, err := collectPages(staging, req.Format.Ext())
	if err != nil {
		return nil, &ConversionError{Input: req.InputPath, Err: err}
	}
	if len(produced) != pages {
		return nil, &ConversionError{
			Input: req.InputPath,
			Err:   fmt.Errorf("rasterizer produced %d page(s), document has %d", len(produced), pages),
		}
	}

	paths := make([]string, 0, pages)
	for i, src := range produced {
		dst := filepath.Join(req.OutputDir, fmt.Sprintf("%s_%d.%s", pageRoot, i+1, req.Format.Ext()))
		if err := os.Rename(src, dst); err != nil {
			return nil, &ConversionError{Input: req.InputPath, Err: fmt.Errorf("placing page %d: %w", i+1, err)}
		}
		logging.Info("wrote page", "page", i+1, "path", dst)
		paths = append(paths, dst)
	}

	return &Result{Pages: pages, Paths: paths, Duration: time.Since(start)}, nil
}

// collectPages lists the staged page files in page order. pdftoppm pads
// page indices to a uniform width within one run, but the pad width varies
// with the page count, so ordering parses the numeric index instead of
// relying on lexical sort.
func collectPages(staging, ext string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(staging, pageRoot+"-*."+ext))
	if err != nil {
		return nil, fmt.Errorf("listing staged pages: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("rasterizer produced no %s pages", ext)
	}

	index := func(path string) int {
		base := strings.TrimSuffix(filepath.Base(path), "."+ext)
		n, err := strconv.Atoi(strings.TrimPrefix(base, pageRoot+"-"))
		if err != nil {
			return -1
		}
		return n
	}
	sort.Slice(matches, func(i, j int) bool {
		return index(matches[i]) < index(matches[j])
	})
	return matches, nil
}
